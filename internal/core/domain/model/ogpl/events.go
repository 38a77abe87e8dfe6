package ogpl

import (
	"freight/internal/core/domain/model/kernel"
)

const (
	CreatedEventName       = "ogpl.created"
	StatusChangedEventName = "ogpl.status_changed"
	LoadedEventName        = "ogpl.loaded"
	UnloadedEventName      = "ogpl.unloaded"
)

type CreatedEvent struct {
	kernel.EventBase
	Number        string
	VehicleNumber string
}

type StatusChangedEvent struct {
	kernel.EventBase
	Number string
	From   Status
	To     Status
}

// LoadedEvent lists the bookings added in one loading batch.
type LoadedEvent struct {
	kernel.EventBase
	Number     string
	BookingIDs []kernel.UUID
}

// UnloadedEvent carries the per-booking conditions of the closing record.
type UnloadedEvent struct {
	kernel.EventBase
	Number     string
	Conditions map[kernel.UUID]Condition
}

func newCreatedEvent(o *OGPL) CreatedEvent {
	return CreatedEvent{
		EventBase:     kernel.NewEventBase(CreatedEventName, AggregateType, o.id, o.createdAt),
		Number:        o.number,
		VehicleNumber: o.vehicleNumber,
	}
}

func newStatusChangedEvent(o *OGPL, from Status) StatusChangedEvent {
	return StatusChangedEvent{
		EventBase: kernel.NewEventBase(StatusChangedEventName, AggregateType, o.id, o.updatedAt),
		Number:    o.number,
		From:      from,
		To:        o.status,
	}
}

func newLoadedEvent(o *OGPL, bookingIDs []kernel.UUID) LoadedEvent {
	return LoadedEvent{
		EventBase:  kernel.NewEventBase(LoadedEventName, AggregateType, o.id, o.updatedAt),
		Number:     o.number,
		BookingIDs: append([]kernel.UUID(nil), bookingIDs...),
	}
}

func newUnloadedEvent(o *OGPL, record UnloadingRecord) UnloadedEvent {
	return UnloadedEvent{
		EventBase:  kernel.NewEventBase(UnloadedEventName, AggregateType, o.id, record.unloadedAt),
		Number:     o.number,
		Conditions: record.Conditions(),
	}
}
