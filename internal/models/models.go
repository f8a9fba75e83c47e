package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role identifies what a user is allowed to do.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	return r == RoleBuyer || r == RoleSeller || r == RoleAdmin
}

// User represents a registered account.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	CompanyName  string    `db:"company_name" json:"company_name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         Role      `db:"role" json:"role"`
	IsBlocked    bool      `db:"is_blocked" json:"is_blocked"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// MaterialStatus is the listing lifecycle of a material.
type MaterialStatus string

const (
	MaterialActive   MaterialStatus = "active"
	MaterialInactive MaterialStatus = "inactive"
	MaterialRemoved  MaterialStatus = "removed"
)

// Material is a seller's listed quantity of a reclaimed industrial by-product.
type Material struct {
	ID          int64           `db:"id" json:"id"`
	SellerID    int64           `db:"seller_id" json:"seller_id"`
	Name        string          `db:"name" json:"name"`
	Type        string          `db:"type" json:"type"`
	Description string          `db:"description" json:"description"`
	Quantity    int             `db:"quantity" json:"quantity"`
	Unit        string          `db:"unit" json:"unit"`
	BasePrice   decimal.Decimal `db:"base_price" json:"base_price"`
	Location    string          `db:"location" json:"location"`
	Co2Savings  decimal.Decimal `db:"co2_savings" json:"co2_savings"`
	Status      MaterialStatus  `db:"status" json:"status"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// LogisticsMode is the delivery arrangement selected at order time.
// Stored but not enforced by the order lifecycle.
type LogisticsMode string

const (
	LogisticsDirect LogisticsMode = "direct"
	Logistics3PL    LogisticsMode = "3pl"
	LogisticsHub    LogisticsMode = "hub"
)

// ValidLogisticsMode reports whether m is a known delivery arrangement.
func ValidLogisticsMode(m LogisticsMode) bool {
	return m == LogisticsDirect || m == Logistics3PL || m == LogisticsHub
}

// OrderStatus is the order lifecycle state.
type OrderStatus string

const (
	OrderPlaced    OrderStatus = "PLACED"
	OrderApproved  OrderStatus = "APPROVED"
	OrderPickedUp  OrderStatus = "PICKED_UP"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// PaymentStatus tracks settlement of an order, independent of the
// order lifecycle state.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
	PaymentFailed  PaymentStatus = "FAILED"
)

// CancelledBy records which party cancelled an order.
type CancelledBy string

const (
	CancelledByAdmin  CancelledBy = "ADMIN"
	CancelledBySeller CancelledBy = "SELLER"
	CancelledByBuyer  CancelledBy = "BUYER"
)

var validNext = map[OrderStatus]map[OrderStatus]bool{
	OrderPlaced:    {OrderApproved: true, OrderCancelled: true},
	OrderApproved:  {OrderPickedUp: true, OrderCancelled: true},
	OrderPickedUp:  {OrderCompleted: true, OrderCancelled: true},
	OrderCompleted: {},
	OrderCancelled: {},
}

// CanTransition reports whether an order may move from one lifecycle
// state to another.
func CanTransition(from, to OrderStatus) bool {
	return validNext[from][to]
}

// Terminal reports whether s is a final lifecycle state.
func Terminal(s OrderStatus) bool {
	return s == OrderCompleted || s == OrderCancelled
}

// Order is a buyer's claim on a quantity of a material. The seller id is
// denormalized from the material at creation time.
type Order struct {
	ID            int64         `db:"id" json:"id"`
	BuyerID       int64         `db:"buyer_id" json:"buyer_id"`
	SellerID      int64         `db:"seller_id" json:"seller_id"`
	MaterialID    int64         `db:"material_id" json:"material_id"`
	Quantity      int           `db:"quantity" json:"quantity"`
	LogisticsMode LogisticsMode `db:"logistics_mode" json:"logistics_mode"`
	OrderStatus   OrderStatus   `db:"order_status" json:"order_status"`
	PaymentStatus PaymentStatus `db:"payment_status" json:"payment_status"`
	CancelledBy   CancelledBy   `db:"cancelled_by" json:"cancelled_by,omitempty"`

	GatewayOrderID   string `db:"gateway_order_id" json:"gateway_order_id,omitempty"`
	GatewayPaymentID string `db:"gateway_payment_id" json:"gateway_payment_id,omitempty"`
	GatewaySignature string `db:"gateway_signature" json:"-"`

	ApprovedAt  *time.Time `db:"approved_at" json:"approved_at,omitempty"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	CancelledAt *time.Time `db:"cancelled_at" json:"cancelled_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}
