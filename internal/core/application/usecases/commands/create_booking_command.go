package commands

import (
	"errors"
	"strings"

	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrCreateBookingCommandIsNotConstructed = errors.New(
	"CreateBookingCommand must be created via NewCreateBookingCommand constructor",
)

// CreateBookingCommand registers a new shipment. An empty manual LR number
// asks the sequence generator for one.
//
// Example:
//
//	cmd, err := NewCreateBookingCommand(orgID, &originID, &destinationID, "", consignment)
//	if err != nil {
//	    return err
//	}
//	b, err := handler.Handle(ctx, cmd)
type CreateBookingCommand struct { //nolint:recvcheck //using for validation
	organizationID      kernel.UUID
	originBranchID      *kernel.UUID
	destinationBranchID *kernel.UUID
	manualLRNumber      string
	consignment         booking.Consignment

	guard guard.ConstructorGuard
}

func NewCreateBookingCommand(
	organizationID kernel.UUID,
	originBranchID *kernel.UUID,
	destinationBranchID *kernel.UUID,
	manualLRNumber string,
	consignment booking.Consignment,
) (CreateBookingCommand, error) {
	cmd := CreateBookingCommand{
		originBranchID:      originBranchID,
		destinationBranchID: destinationBranchID,
		manualLRNumber:      strings.TrimSpace(manualLRNumber),
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrganizationID(organizationID),
		cmd.setConsignment(consignment),
	); err != nil {
		return CreateBookingCommand{}, err
	}

	return cmd, nil
}

func (c CreateBookingCommand) Validate() error {
	return c.guard.Validate(ErrCreateBookingCommandIsNotConstructed)
}

func (c CreateBookingCommand) OrganizationID() kernel.UUID       { return c.organizationID }
func (c CreateBookingCommand) OriginBranchID() *kernel.UUID      { return c.originBranchID }
func (c CreateBookingCommand) DestinationBranchID() *kernel.UUID { return c.destinationBranchID }
func (c CreateBookingCommand) ManualLRNumber() string            { return c.manualLRNumber }
func (c CreateBookingCommand) Consignment() booking.Consignment  { return c.consignment }

// IsManual reports whether the operator supplied the LR number.
func (c CreateBookingCommand) IsManual() bool {
	return c.manualLRNumber != ""
}

func (c *CreateBookingCommand) setOrganizationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("organization id", err)
	}
	c.organizationID = id
	return nil
}

func (c *CreateBookingCommand) setConsignment(consignment booking.Consignment) error {
	if err := consignment.Validate(); err != nil {
		return err
	}
	c.consignment = consignment
	return nil
}
