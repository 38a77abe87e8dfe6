package kernel

import "time"

// DomainEvent is a fact recorded by an aggregate during a state change.
// Aggregates buffer events until the unit of work writes them to the outbox.
type DomainEvent interface {
	EventID() UUID
	EventName() string
	AggregateID() UUID
	AggregateType() string
	OccurredAt() time.Time
}

// EventBase carries the envelope fields shared by all domain events.
// Concrete events embed it and add their own payload.
type EventBase struct {
	id            UUID
	name          string
	aggregateID   UUID
	aggregateType string
	occurredAt    time.Time
}

func NewEventBase(name, aggregateType string, aggregateID UUID, occurredAt time.Time) EventBase {
	return EventBase{
		id:            NewUUID(),
		name:          name,
		aggregateID:   aggregateID,
		aggregateType: aggregateType,
		occurredAt:    occurredAt.UTC(),
	}
}

func (e EventBase) EventID() UUID         { return e.id }
func (e EventBase) EventName() string     { return e.name }
func (e EventBase) AggregateID() UUID     { return e.aggregateID }
func (e EventBase) AggregateType() string { return e.aggregateType }
func (e EventBase) OccurredAt() time.Time { return e.occurredAt }

// EventRecorder buffers domain events for an aggregate root.
type EventRecorder struct {
	events []DomainEvent
}

func (r *EventRecorder) Record(event DomainEvent) {
	r.events = append(r.events, event)
}

// DomainEvents returns the buffered events in the order they were recorded.
func (r *EventRecorder) DomainEvents() []DomainEvent {
	out := make([]DomainEvent, len(r.events))
	copy(out, r.events)
	return out
}

func (r *EventRecorder) ClearDomainEvents() {
	r.events = nil
}
