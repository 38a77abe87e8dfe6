package commands

import (
	"errors"
	"strings"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrCreateOGPLCommandIsNotConstructed = errors.New(
	"CreateOGPLCommand must be created via NewCreateOGPLCommand constructor",
)

// CreateOGPLCommand opens a loading sheet, optionally loading an initial
// set of bookings in the same transaction.
type CreateOGPLCommand struct { //nolint:recvcheck //using for validation
	organizationID kernel.UUID
	vehicleNumber  string
	driverName     string
	fromBranchID   *kernel.UUID
	toBranchID     *kernel.UUID
	bookingIDs     []kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreateOGPLCommand(
	organizationID kernel.UUID,
	vehicleNumber string,
	driverName string,
	fromBranchID *kernel.UUID,
	toBranchID *kernel.UUID,
	bookingIDs []kernel.UUID,
) (CreateOGPLCommand, error) {
	cmd := CreateOGPLCommand{
		driverName:   strings.TrimSpace(driverName),
		fromBranchID: fromBranchID,
		toBranchID:   toBranchID,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrganizationID(organizationID),
		cmd.setVehicleNumber(vehicleNumber),
		cmd.setBookingIDs(bookingIDs),
	); err != nil {
		return CreateOGPLCommand{}, err
	}

	return cmd, nil
}

func (c CreateOGPLCommand) Validate() error {
	return c.guard.Validate(ErrCreateOGPLCommandIsNotConstructed)
}

func (c CreateOGPLCommand) OrganizationID() kernel.UUID { return c.organizationID }
func (c CreateOGPLCommand) VehicleNumber() string       { return c.vehicleNumber }
func (c CreateOGPLCommand) DriverName() string          { return c.driverName }
func (c CreateOGPLCommand) FromBranchID() *kernel.UUID  { return c.fromBranchID }
func (c CreateOGPLCommand) ToBranchID() *kernel.UUID    { return c.toBranchID }

// BookingIDs returns the bookings to load on creation, possibly none.
func (c CreateOGPLCommand) BookingIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.bookingIDs...)
}

func (c *CreateOGPLCommand) setOrganizationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("organization id", err)
	}
	c.organizationID = id
	return nil
}

func (c *CreateOGPLCommand) setVehicleNumber(vehicleNumber string) error {
	vehicleNumber = strings.TrimSpace(vehicleNumber)
	if vehicleNumber == "" {
		return errs.NewValueIsRequiredError("vehicle number")
	}
	c.vehicleNumber = vehicleNumber
	return nil
}

func (c *CreateOGPLCommand) setBookingIDs(ids []kernel.UUID) error {
	if err := validateBookingIDs(ids); err != nil {
		return err
	}
	c.bookingIDs = append([]kernel.UUID(nil), ids...)
	return nil
}
