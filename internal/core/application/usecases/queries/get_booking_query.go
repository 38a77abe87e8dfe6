package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrGetBookingQueryIsNotConstructed = errors.New(
	"GetBookingQuery must be created via NewGetBookingQuery constructor",
)

type GetBookingQuery struct {
	bookingID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetBookingQuery(bookingID kernel.UUID) (GetBookingQuery, error) {
	if err := bookingID.Validate(); err != nil {
		return GetBookingQuery{}, errs.NewValueIsRequiredErrorWithCause("booking id", err)
	}
	return GetBookingQuery{bookingID: bookingID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetBookingQuery) Validate() error {
	return q.guard.Validate(ErrGetBookingQueryIsNotConstructed)
}

func (q GetBookingQuery) BookingID() kernel.UUID { return q.bookingID }

// BookingResponse is the booking read model shared by the booking queries.
// Status and LRType carry their stored snake_case names.
type BookingResponse struct {
	ID                  kernel.UUID
	OrganizationID      kernel.UUID
	LRNumber            string
	LRType              string
	Status              string
	OriginBranchID      *kernel.UUID
	DestinationBranchID *kernel.UUID
	Sender              string
	Receiver            string
	Article             string
	Quantity            int
	WeightKg            float64
	FreightCharge       float64
	OtherCharges        float64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Total returns freight plus other charges.
func (r BookingResponse) Total() float64 {
	return r.FreightCharge + r.OtherCharges
}
