package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrCancelBookingCommandIsNotConstructed = errors.New(
	"CancelBookingCommand must be created via NewCancelBookingCommand constructor",
)

// CancelBookingCommand withdraws a booked or in-transit shipment.
type CancelBookingCommand struct { //nolint:recvcheck //using for validation
	bookingID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCancelBookingCommand(bookingID kernel.UUID) (CancelBookingCommand, error) {
	if err := bookingID.Validate(); err != nil {
		return CancelBookingCommand{}, err
	}
	return CancelBookingCommand{
		bookingID: bookingID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CancelBookingCommand) Validate() error {
	return c.guard.Validate(ErrCancelBookingCommandIsNotConstructed)
}

func (c CancelBookingCommand) BookingID() kernel.UUID {
	return c.bookingID
}
