package ports

import (
	"context"
	"time"
)

// OutboxMessage is a domain event as stored in the outbox and handed to the
// event publisher. Payload is JSON.
type OutboxMessage struct {
	ID            string
	AggregateID   string
	AggregateType string
	Type          string
	Payload       []byte
	OccurredAt    time.Time
}

// EventPublisher delivers outbox messages to subscribers.
type EventPublisher interface {
	Publish(ctx context.Context, msg OutboxMessage) error
}

// Outbox is the relay's view of stored, unpublished messages.
type Outbox interface {
	Pending(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkPublished(ctx context.Context, id string, at time.Time) error
}

// Message types the relay routes on.
const (
	BookingCreatedMessage       = "booking.created"
	BookingStatusChangedMessage = "booking.status_changed"
)

// BookingStatusChange is the payload of booking.status_changed messages.
// booking.created messages carry a BookingDocument.
type BookingStatusChange struct {
	BookingID string    `json:"booking_id"`
	LRNumber  string    `json:"lr_number"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	ChangedAt time.Time `json:"changed_at"`
}
