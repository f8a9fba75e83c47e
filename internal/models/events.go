package models

import "time"

// Event types carried on the notification topic.
const (
	EventTypeUserRegistered  = "user.registered"
	EventTypeOrderPlaced     = "order.placed"
	EventTypeOrderApproved   = "order.approved"
	EventTypeOrderRejected   = "order.rejected"
	EventTypeOrderPickedUp   = "order.picked_up"
	EventTypeOrderCompleted  = "order.completed"
	EventTypeOrderCancelled  = "order.cancelled"
	EventTypePaymentVerified = "payment.verified"
)

// BaseEvent is embedded in every published event.
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// Party is a notification recipient.
type Party struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserRegisteredEvent is published after a successful registration.
type UserRegisteredEvent struct {
	BaseEvent
	User Party `json:"user"`
}

// OrderEvent is published on every order lifecycle transition.
type OrderEvent struct {
	BaseEvent
	OrderID      int64       `json:"order_id"`
	MaterialName string      `json:"material_name"`
	Buyer        Party       `json:"buyer"`
	Seller       Party       `json:"seller"`
	CancelledBy  CancelledBy `json:"cancelled_by,omitempty"`
}

// PaymentVerifiedEvent is published once a payment signature has been
// accepted and the order marked paid.
type PaymentVerifiedEvent struct {
	BaseEvent
	OrderID int64  `json:"order_id"`
	Amount  string `json:"amount"`
	Buyer   Party  `json:"buyer"`
}
