package ogpl

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// AggregateType names loading sheets in the outbox.
const AggregateType = "ogpl"

const (
	maxVehicleNumberLength = 20
	maxDriverNameLength    = 100
)

var (
	// ErrOGPLIsNotConstructed is returned when an OGPL was not created
	// through NewOGPL or RestoreOGPL.
	ErrOGPLIsNotConstructed = errors.New("OGPL must be created via NewOGPL constructor")

	// ErrNoLoadingRecords is returned when a sheet with no bookings departs
	// or completes.
	ErrNoLoadingRecords = errs.NewValueIsInvalidErrorWithCause(
		"loading records", errors.New("sheet has no loaded bookings"))
)

// OGPL is the aggregate root for a loading sheet.
//
// Invariants:
//   - the number is assigned at construction and never changes
//   - a booking appears in at most one loading record of the sheet
//   - loading records are only added while the sheet is Created
//   - the unloading record is set exactly when the sheet is Completed
type OGPL struct {
	kernel.EventRecorder

	id             kernel.UUID
	organizationID kernel.UUID
	number         string
	status         Status
	vehicleNumber  string
	driverName     string
	fromBranchID   *kernel.UUID
	toBranchID     *kernel.UUID
	loadingRecords []LoadingRecord
	unloading      *UnloadingRecord
	createdAt      time.Time
	updatedAt      time.Time

	isConstructed bool
}

// NewOGPL creates an empty sheet in Created status.
func NewOGPL(
	id kernel.UUID,
	organizationID kernel.UUID,
	number string,
	vehicleNumber string,
	driverName string,
	fromBranchID *kernel.UUID,
	toBranchID *kernel.UUID,
	now time.Time,
) (*OGPL, error) {
	o := &OGPL{
		status:        Created,
		createdAt:     now.UTC(),
		updatedAt:     now.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrganizationID(organizationID),
		o.setNumber(number),
		o.setVehicle(vehicleNumber, driverName),
		o.setBranches(fromBranchID, toBranchID),
	); err != nil {
		return nil, err
	}

	o.Record(newCreatedEvent(o))
	return o, nil
}

// RestoreOGPL rebuilds a sheet from persisted state without recording
// events.
func RestoreOGPL(
	id kernel.UUID,
	organizationID kernel.UUID,
	number string,
	status Status,
	vehicleNumber string,
	driverName string,
	fromBranchID *kernel.UUID,
	toBranchID *kernel.UUID,
	loadingRecords []LoadingRecord,
	unloading *UnloadingRecord,
	createdAt time.Time,
	updatedAt time.Time,
) (*OGPL, error) {
	o := &OGPL{
		vehicleNumber: vehicleNumber,
		driverName:    driverName,
		createdAt:     createdAt.UTC(),
		updatedAt:     updatedAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrganizationID(organizationID),
		o.setNumber(number),
		o.setStatus(status),
		o.setBranches(fromBranchID, toBranchID),
		o.setLoadingRecords(loadingRecords),
	); err != nil {
		return nil, err
	}

	o.unloading = unloading
	return o, nil
}

func (o *OGPL) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOGPLIsNotConstructed
	}
	return nil
}

func (o *OGPL) IsEqual(other *OGPL) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *OGPL) ID() kernel.UUID             { return o.id }
func (o *OGPL) OrganizationID() kernel.UUID { return o.organizationID }
func (o *OGPL) Number() string              { return o.number }
func (o *OGPL) Status() Status              { return o.status }
func (o *OGPL) VehicleNumber() string       { return o.vehicleNumber }
func (o *OGPL) DriverName() string          { return o.driverName }
func (o *OGPL) FromBranchID() *kernel.UUID  { return o.fromBranchID }
func (o *OGPL) ToBranchID() *kernel.UUID    { return o.toBranchID }
func (o *OGPL) CreatedAt() time.Time        { return o.createdAt }
func (o *OGPL) UpdatedAt() time.Time        { return o.updatedAt }

// LoadingRecords returns a copy of the sheet's loading records in load order.
func (o *OGPL) LoadingRecords() []LoadingRecord {
	out := make([]LoadingRecord, len(o.loadingRecords))
	copy(out, o.loadingRecords)
	return out
}

// UnloadingRecord returns the closing record, or nil before unloading.
func (o *OGPL) UnloadingRecord() *UnloadingRecord {
	return o.unloading
}

// BookingIDs lists the loaded bookings in load order.
func (o *OGPL) BookingIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(o.loadingRecords))
	for _, r := range o.loadingRecords {
		ids = append(ids, r.bookingID)
	}
	return ids
}

// HasBooking reports whether bookingID was loaded on this sheet.
func (o *OGPL) HasBooking(bookingID kernel.UUID) bool {
	for _, r := range o.loadingRecords {
		if r.bookingID.IsEqual(bookingID) {
			return true
		}
	}
	return false
}

// ValidateLoad checks, without side effects, that every id can be loaded:
// the sheet is Created, the batch is non-empty, and no id is repeated or
// already on the sheet.
func (o *OGPL) ValidateLoad(bookingIDs []kernel.UUID) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := o.status.ValidateLoad(); err != nil {
		return fmt.Errorf("sheet %s: %w", o.number, err)
	}
	if len(bookingIDs) == 0 {
		return errs.NewValueIsRequiredError("booking ids")
	}

	seen := make(map[kernel.UUID]struct{}, len(bookingIDs))
	var problems []error
	for _, id := range bookingIDs {
		if err := id.Validate(); err != nil {
			problems = append(problems, err)
			continue
		}
		if _, dup := seen[id]; dup {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
				"booking ids", fmt.Errorf("booking %s is listed twice", id)))
			continue
		}
		seen[id] = struct{}{}
		if o.HasBooking(id) {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
				"booking ids", fmt.Errorf("booking %s is already on sheet %s", id, o.number)))
		}
	}
	return errors.Join(problems...)
}

// Load appends one loading record per booking. The batch is validated as a
// whole first; on error the sheet is unchanged.
func (o *OGPL) Load(bookingIDs []kernel.UUID, now time.Time) ([]LoadingRecord, error) {
	if err := o.ValidateLoad(bookingIDs); err != nil {
		return nil, err
	}

	o.touch(now)
	added := make([]LoadingRecord, 0, len(bookingIDs))
	for _, bookingID := range bookingIDs {
		added = append(added, LoadingRecord{
			id:        kernel.NewUUID(),
			ogplID:    o.id,
			bookingID: bookingID,
			loadedAt:  o.updatedAt,
		})
	}
	o.loadingRecords = append(o.loadingRecords, added...)

	o.Record(newLoadedEvent(o, bookingIDs))
	return added, nil
}

// Depart marks the vehicle as having left.
func (o *OGPL) Depart(now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if len(o.loadingRecords) == 0 {
		return fmt.Errorf("sheet %s: %w", o.number, ErrNoLoadingRecords)
	}
	return o.transition(Status.Depart, now)
}

// Unload attaches the unloading record and completes the sheet. A sheet
// that is already Completed rejects the call.
func (o *OGPL) Unload(record UnloadingRecord, now time.Time) error {
	if err := o.ValidateUnload(); err != nil {
		return err
	}
	if !record.ogplID.IsEqual(o.id) {
		return errs.NewValueIsInvalidErrorWithCause(
			"unloading record", fmt.Errorf("record belongs to sheet %s", record.ogplID))
	}

	if err := o.transition(Status.Complete, now); err != nil {
		return err
	}
	o.unloading = &record
	o.Record(newUnloadedEvent(o, record))
	return nil
}

// ValidateUnload checks that the sheet can be completed.
func (o *OGPL) ValidateUnload() error {
	if err := o.Validate(); err != nil {
		return err
	}
	if _, err := o.status.Complete(); err != nil {
		return fmt.Errorf("sheet %s: %w", o.number, err)
	}
	if len(o.loadingRecords) == 0 {
		return fmt.Errorf("sheet %s: %w", o.number, ErrNoLoadingRecords)
	}
	return nil
}

// Cancel withdraws a sheet that has not been completed.
func (o *OGPL) Cancel(now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	return o.transition(Status.Cancel, now)
}

func (o *OGPL) transition(next func(Status) (Status, error), now time.Time) error {
	newStatus, err := next(o.status)
	if err != nil {
		return fmt.Errorf("sheet %s: %w", o.number, err)
	}

	previous := o.status
	o.status = newStatus
	o.touch(now)
	o.Record(newStatusChangedEvent(o, previous))
	return nil
}

func (o *OGPL) touch(now time.Time) {
	now = now.UTC()
	if now.Before(o.updatedAt) {
		now = o.updatedAt
	}
	o.updatedAt = now
}

func (o *OGPL) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *OGPL) setOrganizationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("organization id", err)
	}
	o.organizationID = id
	return nil
}

func (o *OGPL) setNumber(number string) error {
	if strings.TrimSpace(number) == "" {
		return errs.NewValueIsRequiredError("ogpl number")
	}
	o.number = number
	return nil
}

func (o *OGPL) setVehicle(vehicleNumber, driverName string) error {
	vehicleNumber = strings.ToUpper(strings.TrimSpace(vehicleNumber))
	driverName = strings.TrimSpace(driverName)

	var problems []error
	if vehicleNumber == "" {
		problems = append(problems, errs.NewValueIsRequiredError("vehicle number"))
	} else if len(vehicleNumber) > maxVehicleNumberLength {
		problems = append(problems, errs.NewValueIsOutOfRangeError(
			"vehicle number length", len(vehicleNumber), 1, maxVehicleNumberLength))
	}
	if len(driverName) > maxDriverNameLength {
		problems = append(problems, errs.NewValueIsOutOfRangeError(
			"driver name length", len(driverName), 0, maxDriverNameLength))
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}

	o.vehicleNumber = vehicleNumber
	o.driverName = driverName
	return nil
}

func (o *OGPL) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *OGPL) setBranches(from, to *kernel.UUID) error {
	for _, id := range []*kernel.UUID{from, to} {
		if id == nil {
			continue
		}
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("branch id", err)
		}
	}
	o.fromBranchID = from
	o.toBranchID = to
	return nil
}

func (o *OGPL) setLoadingRecords(records []LoadingRecord) error {
	seen := make(map[kernel.UUID]struct{}, len(records))
	for _, r := range records {
		if !r.ogplID.IsEqual(o.id) {
			return errs.NewValueIsInvalidErrorWithCause(
				"loading records", fmt.Errorf("record %s belongs to sheet %s", r.id, r.ogplID))
		}
		if _, dup := seen[r.bookingID]; dup {
			return errs.NewValueIsInvalidErrorWithCause(
				"loading records", fmt.Errorf("booking %s loaded twice", r.bookingID))
		}
		seen[r.bookingID] = struct{}{}
	}
	o.loadingRecords = append([]LoadingRecord(nil), records...)
	return nil
}
