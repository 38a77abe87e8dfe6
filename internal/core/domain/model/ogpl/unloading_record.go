package ogpl

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// UnloadingRecord captures the condition of every unloaded booking.
type UnloadingRecord struct {
	id         kernel.UUID
	ogplID     kernel.UUID
	conditions map[kernel.UUID]Condition
	unloadedAt time.Time
}

// NewUnloadingRecord validates every condition before building the record.
// All condition errors are reported together.
func NewUnloadingRecord(
	id, ogplID kernel.UUID,
	conditions map[kernel.UUID]Condition,
	unloadedAt time.Time,
) (UnloadingRecord, error) {
	if err := errors.Join(id.Validate(), ogplID.Validate()); err != nil {
		return UnloadingRecord{}, err
	}
	if len(conditions) == 0 {
		return UnloadingRecord{}, errs.NewValueIsRequiredError("conditions")
	}

	copied := make(map[kernel.UUID]Condition, len(conditions))
	var problems []error
	for bookingID, c := range conditions {
		if err := c.Validate(); err != nil {
			problems = append(problems, fmt.Errorf("booking %s: %w", bookingID, err))
			continue
		}
		copied[bookingID] = c
	}
	if err := errors.Join(problems...); err != nil {
		return UnloadingRecord{}, err
	}

	return UnloadingRecord{
		id:         id,
		ogplID:     ogplID,
		conditions: copied,
		unloadedAt: unloadedAt.UTC(),
	}, nil
}

func (r UnloadingRecord) ID() kernel.UUID       { return r.id }
func (r UnloadingRecord) OGPLID() kernel.UUID   { return r.ogplID }
func (r UnloadingRecord) UnloadedAt() time.Time { return r.unloadedAt }

// Condition returns the recorded condition for bookingID.
func (r UnloadingRecord) Condition(bookingID kernel.UUID) (Condition, bool) {
	c, ok := r.conditions[bookingID]
	return c, ok
}

// Conditions returns a copy of the recorded conditions.
func (r UnloadingRecord) Conditions() map[kernel.UUID]Condition {
	out := make(map[kernel.UUID]Condition, len(r.conditions))
	for k, v := range r.conditions {
		out[k] = v
	}
	return out
}

// BookingIDs returns the covered bookings in a stable order.
func (r UnloadingRecord) BookingIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(r.conditions))
	for id := range r.conditions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}
