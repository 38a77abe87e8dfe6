package services

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/ogpl"
	"freight/internal/pkg/errs"
)

// Reconciler applies the rules that move bookings on and off a loading
// sheet.
//
// Business rules:
//   - Loading is all or nothing: if any booking in the batch is not Booked,
//     or is already on the sheet, nothing is loaded
//   - Unloading validates every condition and every booking before any
//     change, then completes the sheet
//   - Missing bookings keep their prior status
//   - Cancelling a sheet returns its in-transit bookings to Booked
//
// Example usage:
//
//	r := services.NewReconciler()
//	records, err := r.Load(sheet, bookings, ids, time.Now())
//	if err != nil {
//	    // nothing was changed
//	}
type Reconciler struct{}

func NewReconciler() Reconciler {
	return Reconciler{}
}

// UnloadPlan is the outcome of a validated unloading. The sheet is already
// completed; Deliver lists the bookings the caller still has to deliver and
// persist, Missing the ones left untouched.
type UnloadPlan struct {
	Record  ogpl.UnloadingRecord
	Deliver []*booking.Booking
	Missing []kernel.UUID
}

// Load validates the whole batch, then adds one loading record per booking
// and moves each booking to InTransit.
//
// Parameters:
//   - sheet: the sheet being loaded, in Created status
//   - bookings: the bookings named by bookingIDs, in any order
//   - bookingIDs: the batch, in the order records should be created
//
// Returns the created loading records.
func (r Reconciler) Load(
	sheet *ogpl.OGPL,
	bookings []*booking.Booking,
	bookingIDs []kernel.UUID,
	now time.Time,
) ([]ogpl.LoadingRecord, error) {
	if err := sheet.ValidateLoad(bookingIDs); err != nil {
		return nil, err
	}

	ordered, err := r.resolve(bookings, bookingIDs)
	if err != nil {
		return nil, err
	}

	var problems []error
	for _, b := range ordered {
		if !b.OrganizationID().IsEqual(sheet.OrganizationID()) {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
				"booking ids", fmt.Errorf("booking %s belongs to another organization", b.LRNumber())))
			continue
		}
		if _, err := b.Status().Load(); err != nil {
			problems = append(problems, fmt.Errorf("booking %s: %w", b.LRNumber(), err))
		}
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	records, err := sheet.Load(bookingIDs, now)
	if err != nil {
		return nil, err
	}
	for _, b := range ordered {
		if err := b.Load(now); err != nil {
			return nil, err
		}
	}

	return records, nil
}

// PrepareUnload runs every unloading check before mutating anything:
//   - bookingIDs is non-empty and has no repeats
//   - conditions covers exactly bookingIDs and each condition is valid
//   - the sheet is InTransit (a completed sheet is rejected)
//   - every booking was loaded on this sheet and is InTransit
//
// On success the unloading record is attached and the sheet completed. The
// bookings are not touched; the caller delivers the ones in UnloadPlan.Deliver.
func (r Reconciler) PrepareUnload(
	sheet *ogpl.OGPL,
	bookings []*booking.Booking,
	bookingIDs []kernel.UUID,
	conditions map[kernel.UUID]ogpl.Condition,
	now time.Time,
) (UnloadPlan, error) {
	if err := sheet.ValidateUnload(); err != nil {
		return UnloadPlan{}, err
	}
	if err := r.validateConditions(bookingIDs, conditions); err != nil {
		return UnloadPlan{}, err
	}

	ordered, err := r.resolve(bookings, bookingIDs)
	if err != nil {
		return UnloadPlan{}, err
	}

	var problems []error
	for _, b := range ordered {
		if !sheet.HasBooking(b.ID()) {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
				"booking ids", fmt.Errorf("booking %s is not on sheet %s", b.LRNumber(), sheet.Number())))
			continue
		}
		if conditions[b.ID()].Delivers() {
			if _, err := b.Status().Deliver(); err != nil {
				problems = append(problems, fmt.Errorf("booking %s: %w", b.LRNumber(), err))
			}
		}
	}
	if err := errors.Join(problems...); err != nil {
		return UnloadPlan{}, err
	}

	record, err := ogpl.NewUnloadingRecord(kernel.NewUUID(), sheet.ID(), conditions, now)
	if err != nil {
		return UnloadPlan{}, err
	}
	if err := sheet.Unload(record, now); err != nil {
		return UnloadPlan{}, err
	}

	plan := UnloadPlan{Record: record}
	for _, b := range ordered {
		if conditions[b.ID()].Delivers() {
			plan.Deliver = append(plan.Deliver, b)
		} else {
			plan.Missing = append(plan.Missing, b.ID())
		}
	}
	return plan, nil
}

// Release cancels the sheet and returns its in-transit bookings to Booked.
// Bookings that were cancelled individually in the meantime are skipped.
// It returns the bookings whose status changed.
func (r Reconciler) Release(sheet *ogpl.OGPL, bookings []*booking.Booking, now time.Time) ([]*booking.Booking, error) {
	if err := sheet.Cancel(now); err != nil {
		return nil, err
	}

	released := make([]*booking.Booking, 0, len(bookings))
	for _, b := range bookings {
		if !sheet.HasBooking(b.ID()) || b.Status() != booking.InTransit {
			continue
		}
		if err := b.Release(now); err != nil {
			return nil, err
		}
		released = append(released, b)
	}
	return released, nil
}

func (r Reconciler) validateConditions(bookingIDs []kernel.UUID, conditions map[kernel.UUID]ogpl.Condition) error {
	if len(bookingIDs) == 0 {
		return errs.NewValueIsRequiredError("booking ids")
	}

	seen := make(map[kernel.UUID]struct{}, len(bookingIDs))
	var problems []error
	for _, id := range bookingIDs {
		if _, dup := seen[id]; dup {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
				"booking ids", fmt.Errorf("booking %s is listed twice", id)))
			continue
		}
		seen[id] = struct{}{}

		c, ok := conditions[id]
		if !ok {
			problems = append(problems, errs.NewValueIsRequiredErrorWithCause(
				"condition", fmt.Errorf("booking %s has no condition", id)))
			continue
		}
		if err := c.Validate(); err != nil {
			problems = append(problems, fmt.Errorf("booking %s: %w", id, err))
		}
	}
	for id := range conditions {
		if _, ok := seen[id]; !ok {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
				"conditions", fmt.Errorf("booking %s is not being unloaded", id)))
		}
	}
	return errors.Join(problems...)
}

// resolve orders bookings by ids and reports ids with no matching booking.
func (r Reconciler) resolve(bookings []*booking.Booking, ids []kernel.UUID) ([]*booking.Booking, error) {
	byID := make(map[kernel.UUID]*booking.Booking, len(bookings))
	for _, b := range bookings {
		if err := b.Validate(); err != nil {
			return nil, err
		}
		byID[b.ID()] = b
	}

	ordered := make([]*booking.Booking, 0, len(ids))
	for _, id := range ids {
		b, ok := byID[id]
		if !ok {
			return nil, errs.NewObjectNotFoundError("booking", id.String())
		}
		ordered = append(ordered, b)
	}
	return ordered, nil
}
