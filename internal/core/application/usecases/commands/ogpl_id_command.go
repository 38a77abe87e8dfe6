package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var (
	ErrDepartOGPLCommandIsNotConstructed = errors.New(
		"DepartOGPLCommand must be created via NewDepartOGPLCommand constructor",
	)
	ErrCancelOGPLCommandIsNotConstructed = errors.New(
		"CancelOGPLCommand must be created via NewCancelOGPLCommand constructor",
	)
)

// DepartOGPLCommand records that the vehicle left the origin branch.
type DepartOGPLCommand struct { //nolint:recvcheck //using for validation
	ogplID kernel.UUID
	guard  guard.ConstructorGuard
}

func NewDepartOGPLCommand(ogplID kernel.UUID) (DepartOGPLCommand, error) {
	if err := ogplID.Validate(); err != nil {
		return DepartOGPLCommand{}, errs.NewValueIsRequiredErrorWithCause("ogpl id", err)
	}
	return DepartOGPLCommand{ogplID: ogplID, guard: guard.NewConstructorGuard()}, nil
}

func (c DepartOGPLCommand) Validate() error {
	return c.guard.Validate(ErrDepartOGPLCommandIsNotConstructed)
}

func (c DepartOGPLCommand) OGPLID() kernel.UUID { return c.ogplID }

// CancelOGPLCommand withdraws a sheet and frees its bookings for loading.
type CancelOGPLCommand struct { //nolint:recvcheck //using for validation
	ogplID kernel.UUID
	guard  guard.ConstructorGuard
}

func NewCancelOGPLCommand(ogplID kernel.UUID) (CancelOGPLCommand, error) {
	if err := ogplID.Validate(); err != nil {
		return CancelOGPLCommand{}, errs.NewValueIsRequiredErrorWithCause("ogpl id", err)
	}
	return CancelOGPLCommand{ogplID: ogplID, guard: guard.NewConstructorGuard()}, nil
}

func (c CancelOGPLCommand) Validate() error {
	return c.guard.Validate(ErrCancelOGPLCommandIsNotConstructed)
}

func (c CancelOGPLCommand) OGPLID() kernel.UUID { return c.ogplID }
