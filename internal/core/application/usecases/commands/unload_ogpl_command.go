package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/ogpl"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrUnloadOGPLCommandIsNotConstructed = errors.New(
	"UnloadOGPLCommand must be created via NewUnloadOGPLCommand constructor",
)

// UnloadOGPLCommand closes a sheet at its destination with the condition
// of each unloaded booking.
type UnloadOGPLCommand struct { //nolint:recvcheck //using for validation
	ogplID     kernel.UUID
	bookingIDs []kernel.UUID
	conditions map[kernel.UUID]ogpl.Condition

	guard guard.ConstructorGuard
}

// NewUnloadOGPLCommand checks the shape of the request. Coverage of the
// conditions and the damaged-needs-remarks rule are enforced by the
// reconciler, before anything is changed.
func NewUnloadOGPLCommand(
	ogplID kernel.UUID,
	bookingIDs []kernel.UUID,
	conditions map[kernel.UUID]ogpl.Condition,
) (UnloadOGPLCommand, error) {
	cmd := UnloadOGPLCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOGPLID(ogplID),
		cmd.setBookingIDs(bookingIDs),
		cmd.setConditions(conditions),
	); err != nil {
		return UnloadOGPLCommand{}, err
	}

	return cmd, nil
}

func (c UnloadOGPLCommand) Validate() error {
	return c.guard.Validate(ErrUnloadOGPLCommandIsNotConstructed)
}

func (c UnloadOGPLCommand) OGPLID() kernel.UUID { return c.ogplID }

func (c UnloadOGPLCommand) BookingIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.bookingIDs...)
}

func (c UnloadOGPLCommand) Conditions() map[kernel.UUID]ogpl.Condition {
	out := make(map[kernel.UUID]ogpl.Condition, len(c.conditions))
	for k, v := range c.conditions {
		out[k] = v
	}
	return out
}

func (c *UnloadOGPLCommand) setOGPLID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("ogpl id", err)
	}
	c.ogplID = id
	return nil
}

func (c *UnloadOGPLCommand) setBookingIDs(ids []kernel.UUID) error {
	if len(ids) == 0 {
		return errs.NewValueIsRequiredError("booking ids")
	}
	if err := validateBookingIDs(ids); err != nil {
		return err
	}
	c.bookingIDs = append([]kernel.UUID(nil), ids...)
	return nil
}

func (c *UnloadOGPLCommand) setConditions(conditions map[kernel.UUID]ogpl.Condition) error {
	if len(conditions) == 0 {
		return errs.NewValueIsRequiredError("conditions")
	}
	c.conditions = make(map[kernel.UUID]ogpl.Condition, len(conditions))
	for k, v := range conditions {
		c.conditions[k] = v
	}
	return nil
}
