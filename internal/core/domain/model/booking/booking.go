package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// AggregateType names bookings in the outbox and the search index.
const AggregateType = "booking"

const maxLRNumberLength = 32

// ErrBookingIsNotConstructed is returned when a Booking was not created
// through NewBooking or RestoreBooking.
var ErrBookingIsNotConstructed = errors.New("Booking must be created via NewBooking constructor")

// Booking is the aggregate root for a single shipment.
//
// Invariants:
//   - id, organization and LR number are set at construction and never change
//   - status is always one of the defined statuses
//   - updatedAt is never before createdAt
type Booking struct {
	kernel.EventRecorder

	id                  kernel.UUID
	organizationID      kernel.UUID
	lrNumber            string
	lrType              LRType
	status              Status
	originBranchID      *kernel.UUID
	destinationBranchID *kernel.UUID
	consignment         Consignment
	createdAt           time.Time
	updatedAt           time.Time

	isConstructed bool
}

// NewBooking creates a booking in Booked status and records a
// CreatedEvent.
//
// Example:
//
//	b, err := booking.NewBooking(kernel.NewUUID(), orgID, "MU2501-0007", booking.System,
//	    &originID, &destinationID, consignment, time.Now())
func NewBooking(
	id kernel.UUID,
	organizationID kernel.UUID,
	lrNumber string,
	lrType LRType,
	originBranchID *kernel.UUID,
	destinationBranchID *kernel.UUID,
	consignment Consignment,
	now time.Time,
) (*Booking, error) {
	b := &Booking{
		status:        Booked,
		createdAt:     now.UTC(),
		updatedAt:     now.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		b.setID(id),
		b.setOrganizationID(organizationID),
		b.setLRNumber(lrNumber),
		b.setLRType(lrType),
		b.setBranches(originBranchID, destinationBranchID),
		b.setConsignment(consignment),
	); err != nil {
		return nil, err
	}

	b.Record(newCreatedEvent(b))
	return b, nil
}

// RestoreBooking rebuilds a booking from persisted state without recording
// events. The consignment is not re-validated so historic rows stay readable.
func RestoreBooking(
	id kernel.UUID,
	organizationID kernel.UUID,
	lrNumber string,
	lrType LRType,
	status Status,
	originBranchID *kernel.UUID,
	destinationBranchID *kernel.UUID,
	consignment Consignment,
	createdAt time.Time,
	updatedAt time.Time,
) (*Booking, error) {
	b := &Booking{
		consignment:   consignment,
		createdAt:     createdAt.UTC(),
		updatedAt:     updatedAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		b.setID(id),
		b.setOrganizationID(organizationID),
		b.setLRNumber(lrNumber),
		b.setLRType(lrType),
		b.setStatus(status),
		b.setBranches(originBranchID, destinationBranchID),
	); err != nil {
		return nil, err
	}

	return b, nil
}

// Validate ensures the booking was built by a constructor.
func (b *Booking) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBookingIsNotConstructed
	}
	return nil
}

func (b *Booking) IsEqual(other *Booking) bool {
	return other != nil && b.id.IsEqual(other.id)
}

func (b *Booking) ID() kernel.UUID                   { return b.id }
func (b *Booking) OrganizationID() kernel.UUID       { return b.organizationID }
func (b *Booking) LRNumber() string                  { return b.lrNumber }
func (b *Booking) LRType() LRType                    { return b.lrType }
func (b *Booking) Status() Status                    { return b.status }
func (b *Booking) OriginBranchID() *kernel.UUID      { return b.originBranchID }
func (b *Booking) DestinationBranchID() *kernel.UUID { return b.destinationBranchID }
func (b *Booking) Consignment() Consignment          { return b.consignment }
func (b *Booking) CreatedAt() time.Time              { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time              { return b.updatedAt }

// Load marks the booking as placed on a loading sheet.
func (b *Booking) Load(now time.Time) error {
	return b.transition(Status.Load, now)
}

// Deliver marks an in-transit booking as delivered at unloading.
func (b *Booking) Deliver(now time.Time) error {
	return b.transition(Status.Deliver, now)
}

// Cancel withdraws a booked or in-transit shipment.
func (b *Booking) Cancel(now time.Time) error {
	return b.transition(Status.Cancel, now)
}

// Release returns an in-transit booking to Booked after its loading sheet
// was cancelled.
func (b *Booking) Release(now time.Time) error {
	return b.transition(Status.Release, now)
}

func (b *Booking) transition(next func(Status) (Status, error), now time.Time) error {
	if err := b.Validate(); err != nil {
		return err
	}

	newStatus, err := next(b.status)
	if err != nil {
		return fmt.Errorf("booking %s: %w", b.lrNumber, err)
	}

	previous := b.status
	b.status = newStatus
	b.touch(now)
	b.Record(newStatusChangedEvent(b, previous))
	return nil
}

func (b *Booking) touch(now time.Time) {
	now = now.UTC()
	if now.Before(b.updatedAt) {
		now = b.updatedAt
	}
	b.updatedAt = now
}

func (b *Booking) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Booking) setOrganizationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("organization id", err)
	}
	b.organizationID = id
	return nil
}

func (b *Booking) setLRNumber(lrNumber string) error {
	lrNumber = strings.TrimSpace(lrNumber)
	if lrNumber == "" {
		return errs.NewValueIsRequiredError("lr number")
	}
	if len(lrNumber) > maxLRNumberLength {
		return errs.NewValueIsOutOfRangeError("lr number length", len(lrNumber), 1, maxLRNumberLength)
	}
	b.lrNumber = lrNumber
	return nil
}

func (b *Booking) setLRType(lrType LRType) error {
	if err := lrType.Validate(); err != nil {
		return err
	}
	b.lrType = lrType
	return nil
}

func (b *Booking) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	b.status = status
	return nil
}

func (b *Booking) setBranches(origin, destination *kernel.UUID) error {
	for _, id := range []*kernel.UUID{origin, destination} {
		if id == nil {
			continue
		}
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("branch id", err)
		}
	}
	b.originBranchID = origin
	b.destinationBranchID = destination
	return nil
}

func (b *Booking) setConsignment(c Consignment) error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.Sender = strings.TrimSpace(c.Sender)
	c.Receiver = strings.TrimSpace(c.Receiver)
	c.Article = strings.TrimSpace(c.Article)
	b.consignment = c
	return nil
}
