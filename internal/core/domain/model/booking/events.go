package booking

import (
	"freight/internal/core/domain/model/kernel"
)

const (
	CreatedEventName       = "booking.created"
	StatusChangedEventName = "booking.status_changed"
)

// CreatedEvent is recorded when a booking is first persisted. Its payload
// is a full snapshot so subscribers and the search index need no lookup.
type CreatedEvent struct {
	kernel.EventBase
	Snapshot Snapshot
}

// StatusChangedEvent is recorded on every status transition.
type StatusChangedEvent struct {
	kernel.EventBase
	LRNumber string
	From     Status
	To       Status
}

// Snapshot is a flat, read-only view of a booking.
type Snapshot struct {
	ID                  string
	OrganizationID      string
	LRNumber            string
	LRType              string
	Status              string
	OriginBranchID      string
	DestinationBranchID string
	Consignment         Consignment
	CreatedAt           string
	UpdatedAt           string
}

// SnapshotOf flattens b for events and read models.
func SnapshotOf(b *Booking) Snapshot {
	return Snapshot{
		ID:                  b.id.String(),
		OrganizationID:      b.organizationID.String(),
		LRNumber:            b.lrNumber,
		LRType:              b.lrType.String(),
		Status:              b.status.String(),
		OriginBranchID:      optionalID(b.originBranchID),
		DestinationBranchID: optionalID(b.destinationBranchID),
		Consignment:         b.consignment,
		CreatedAt:           b.createdAt.Format(timestampLayout),
		UpdatedAt:           b.updatedAt.Format(timestampLayout),
	}
}

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

func newCreatedEvent(b *Booking) CreatedEvent {
	return CreatedEvent{
		EventBase: kernel.NewEventBase(CreatedEventName, AggregateType, b.id, b.createdAt),
		Snapshot:  SnapshotOf(b),
	}
}

func newStatusChangedEvent(b *Booking, from Status) StatusChangedEvent {
	return StatusChangedEvent{
		EventBase: kernel.NewEventBase(StatusChangedEventName, AggregateType, b.id, b.updatedAt),
		LRNumber:  b.lrNumber,
		From:      from,
		To:        b.status,
	}
}

func optionalID(id *kernel.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
