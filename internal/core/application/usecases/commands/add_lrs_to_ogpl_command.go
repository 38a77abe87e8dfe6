package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrAddLRsToOGPLCommandIsNotConstructed = errors.New(
	"AddLRsToOGPLCommand must be created via NewAddLRsToOGPLCommand constructor",
)

// AddLRsToOGPLCommand loads a batch of booked shipments onto a sheet.
type AddLRsToOGPLCommand struct { //nolint:recvcheck //using for validation
	ogplID     kernel.UUID
	bookingIDs []kernel.UUID

	guard guard.ConstructorGuard
}

func NewAddLRsToOGPLCommand(ogplID kernel.UUID, bookingIDs []kernel.UUID) (AddLRsToOGPLCommand, error) {
	cmd := AddLRsToOGPLCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOGPLID(ogplID),
		cmd.setBookingIDs(bookingIDs),
	); err != nil {
		return AddLRsToOGPLCommand{}, err
	}

	return cmd, nil
}

func (c AddLRsToOGPLCommand) Validate() error {
	return c.guard.Validate(ErrAddLRsToOGPLCommandIsNotConstructed)
}

func (c AddLRsToOGPLCommand) OGPLID() kernel.UUID { return c.ogplID }

func (c AddLRsToOGPLCommand) BookingIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.bookingIDs...)
}

func (c *AddLRsToOGPLCommand) setOGPLID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("ogpl id", err)
	}
	c.ogplID = id
	return nil
}

func (c *AddLRsToOGPLCommand) setBookingIDs(ids []kernel.UUID) error {
	if len(ids) == 0 {
		return errs.NewValueIsRequiredError("booking ids")
	}
	if err := validateBookingIDs(ids); err != nil {
		return err
	}
	c.bookingIDs = append([]kernel.UUID(nil), ids...)
	return nil
}
