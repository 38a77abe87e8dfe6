package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/ogpl"
	"freight/internal/core/ports"
)

type ogplCreatedPayload struct {
	OGPLID        string    `json:"ogpl_id"`
	Number        string    `json:"ogpl_number"`
	VehicleNumber string    `json:"vehicle_number"`
	CreatedAt     time.Time `json:"created_at"`
}

type ogplStatusChangedPayload struct {
	OGPLID    string    `json:"ogpl_id"`
	Number    string    `json:"ogpl_number"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	ChangedAt time.Time `json:"changed_at"`
}

type ogplLoadedPayload struct {
	OGPLID     string    `json:"ogpl_id"`
	Number     string    `json:"ogpl_number"`
	BookingIDs []string  `json:"booking_ids"`
	LoadedAt   time.Time `json:"loaded_at"`
}

type conditionPayload struct {
	Status  string `json:"status"`
	Remarks string `json:"remarks,omitempty"`
	Photo   string `json:"photo,omitempty"`
}

type ogplUnloadedPayload struct {
	OGPLID     string                      `json:"ogpl_id"`
	Number     string                      `json:"ogpl_number"`
	Conditions map[string]conditionPayload `json:"conditions"`
	UnloadedAt time.Time                   `json:"unloaded_at"`
}

// outboxRow encodes a domain event for the outbox table.
func outboxRow(event kernel.DomainEvent) (OutboxEventDTO, error) {
	payload, err := eventPayload(event)
	if err != nil {
		return OutboxEventDTO{}, err
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return OutboxEventDTO{}, fmt.Errorf("encode %s: %w", event.EventName(), err)
	}

	return OutboxEventDTO{
		ID:            event.EventID().Bytes(),
		AggregateID:   event.AggregateID().Bytes(),
		AggregateType: event.AggregateType(),
		Type:          event.EventName(),
		Payload:       string(raw),
		OccurredAt:    event.OccurredAt(),
	}, nil
}

func eventPayload(event kernel.DomainEvent) (any, error) {
	switch e := event.(type) {
	case booking.CreatedEvent:
		return bookingDocument(e.Snapshot, e.OccurredAt()), nil
	case booking.StatusChangedEvent:
		return ports.BookingStatusChange{
			BookingID: e.AggregateID().String(),
			LRNumber:  e.LRNumber,
			From:      e.From.String(),
			To:        e.To.String(),
			ChangedAt: e.OccurredAt(),
		}, nil
	case ogpl.CreatedEvent:
		return ogplCreatedPayload{
			OGPLID:        e.AggregateID().String(),
			Number:        e.Number,
			VehicleNumber: e.VehicleNumber,
			CreatedAt:     e.OccurredAt(),
		}, nil
	case ogpl.StatusChangedEvent:
		return ogplStatusChangedPayload{
			OGPLID:    e.AggregateID().String(),
			Number:    e.Number,
			From:      e.From.String(),
			To:        e.To.String(),
			ChangedAt: e.OccurredAt(),
		}, nil
	case ogpl.LoadedEvent:
		ids := make([]string, 0, len(e.BookingIDs))
		for _, id := range e.BookingIDs {
			ids = append(ids, id.String())
		}
		return ogplLoadedPayload{
			OGPLID:     e.AggregateID().String(),
			Number:     e.Number,
			BookingIDs: ids,
			LoadedAt:   e.OccurredAt(),
		}, nil
	case ogpl.UnloadedEvent:
		conditions := make(map[string]conditionPayload, len(e.Conditions))
		for id, c := range e.Conditions {
			conditions[id.String()] = conditionPayload{Status: c.Status.String(), Remarks: c.Remarks, Photo: c.Photo}
		}
		return ogplUnloadedPayload{
			OGPLID:     e.AggregateID().String(),
			Number:     e.Number,
			Conditions: conditions,
			UnloadedAt: e.OccurredAt(),
		}, nil
	}
	return nil, fmt.Errorf("unsupported domain event %T", event)
}

func bookingDocument(s booking.Snapshot, createdAt time.Time) ports.BookingDocument {
	return ports.BookingDocument{
		ID:                  s.ID,
		OrganizationID:      s.OrganizationID,
		LRNumber:            s.LRNumber,
		LRType:              s.LRType,
		Status:              s.Status,
		OriginBranchID:      s.OriginBranchID,
		DestinationBranchID: s.DestinationBranchID,
		Sender:              s.Consignment.Sender,
		Receiver:            s.Consignment.Receiver,
		Article:             s.Consignment.Article,
		Quantity:            s.Consignment.Quantity,
		CreatedAt:           createdAt,
		UpdatedAt:           createdAt,
	}
}
