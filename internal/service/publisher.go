package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"reclaim-market/internal/models"
)

func newBaseEvent(eventType string) models.BaseEvent {
	return models.BaseEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now(),
	}
}

// Publisher pushes notification events onto the dispatch topic. Publish
// failures never fail the operation that triggered them; callers log
// and move on.
type Publisher interface {
	PublishUserRegistered(ctx context.Context, event *models.UserRegisteredEvent) error
	PublishOrderEvent(ctx context.Context, event *models.OrderEvent) error
	PublishPaymentVerified(ctx context.Context, event *models.PaymentVerifiedEvent) error
}

// ListingCache caches the public marketplace view.
type ListingCache interface {
	GetListing(ctx context.Context) ([]models.Material, error)
	SetListing(ctx context.Context, materials []models.Material, ttl time.Duration) error
	InvalidateListing(ctx context.Context) error
}
