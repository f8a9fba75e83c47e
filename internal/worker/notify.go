// Package worker runs the notification dispatcher: it consumes
// lifecycle events from the broker and sends the matching emails.
// Delivery is best effort; a failed send is logged, counted and the
// message committed so a flaky mailbox can never wedge the topic.
package worker

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"reclaim-market/internal/broker"
	"reclaim-market/internal/mailer"
	"reclaim-market/internal/models"
	"reclaim-market/internal/util"
)

// Sender delivers a single email.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

// NotifyWorker consumes notification events and sends emails.
type NotifyWorker struct {
	consumer *broker.Consumer
	sender   Sender
	logger   *zap.Logger
}

// NewNotifyWorker creates a new notification worker
func NewNotifyWorker(consumer *broker.Consumer, sender Sender) *NotifyWorker {
	return &NotifyWorker{
		consumer: consumer,
		sender:   sender,
		logger:   util.GetLogger(),
	}
}

// Start starts the worker
func (w *NotifyWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting notification worker")
	return w.consumer.StartConsuming(ctx, w.HandleMessage)
}

// Stop stops the worker
func (w *NotifyWorker) Stop() error {
	w.logger.Info("Stopping notification worker")
	return w.consumer.Close()
}

// HandleMessage routes one event to its email template and recipients.
// It always returns nil: notification delivery must never hold up the
// consumer group offset.
func (w *NotifyWorker) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var base models.BaseEvent
	if err := json.Unmarshal(msg.Value, &base); err != nil {
		w.logger.Error("Failed to unmarshal event envelope", zap.Error(err))
		return nil
	}

	switch base.EventType {
	case models.EventTypeUserRegistered:
		var event models.UserRegisteredEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			w.logger.Error("Failed to unmarshal UserRegistered event", zap.Error(err))
			return nil
		}
		subject, body := mailer.WelcomeEmail(event.User.Name)
		w.send(event.User.Email, subject, body)

	case models.EventTypePaymentVerified:
		var event models.PaymentVerifiedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			w.logger.Error("Failed to unmarshal PaymentVerified event", zap.Error(err))
			return nil
		}
		subject, body := mailer.PaymentVerifiedEmail(event.Amount)
		w.send(event.Buyer.Email, subject, body)

	default:
		var event models.OrderEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			w.logger.Error("Failed to unmarshal order event", zap.Error(err))
			return nil
		}
		w.handleOrderEvent(&event)
	}

	return nil
}

func (w *NotifyWorker) handleOrderEvent(event *models.OrderEvent) {
	switch event.EventType {
	case models.EventTypeOrderPlaced:
		subject, body := mailer.OrderPlacedEmail(event.MaterialName)
		w.send(event.Seller.Email, subject, body)

	case models.EventTypeOrderApproved:
		subject, body := mailer.OrderApprovedEmail(event.MaterialName)
		w.send(event.Buyer.Email, subject, body)

	case models.EventTypeOrderRejected:
		subject, body := mailer.OrderRejectedEmail(event.MaterialName)
		w.send(event.Buyer.Email, subject, body)

	case models.EventTypeOrderPickedUp:
		subject, body := mailer.OrderShippedEmail(event.MaterialName)
		w.send(event.Buyer.Email, subject, body)

	case models.EventTypeOrderCompleted:
		subject, body := mailer.OrderCompletedEmail(event.MaterialName)
		w.send(event.Seller.Email, subject, body)

	case models.EventTypeOrderCancelled:
		// Admin cancellation notifies both parties.
		subject, body := mailer.OrderCancelledEmail(event.MaterialName)
		w.send(event.Buyer.Email, subject, body)
		w.send(event.Seller.Email, subject, body)

	default:
		w.logger.Warn("Unknown event type", zap.String("event_type", event.EventType))
	}
}

func (w *NotifyWorker) send(to, subject, body string) {
	if to == "" {
		return
	}
	if err := w.sender.Send(to, subject, body); err != nil {
		util.EmailsFailedTotal.Inc()
		w.logger.Error("Failed to send notification email",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err))
		return
	}
	util.EmailsSentTotal.Inc()
}
