package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrGetOGPLQueryIsNotConstructed = errors.New(
	"GetOGPLQuery must be created via NewGetOGPLQuery constructor",
)

type GetOGPLQuery struct {
	ogplID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOGPLQuery(ogplID kernel.UUID) (GetOGPLQuery, error) {
	if err := ogplID.Validate(); err != nil {
		return GetOGPLQuery{}, errs.NewValueIsRequiredErrorWithCause("ogpl id", err)
	}
	return GetOGPLQuery{ogplID: ogplID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOGPLQuery) Validate() error {
	return q.guard.Validate(ErrGetOGPLQueryIsNotConstructed)
}

func (q GetOGPLQuery) OGPLID() kernel.UUID { return q.ogplID }

// GetOGPLQueryResponse is a sheet with its loading records in load order
// and, once completed, the unloading conditions.
type GetOGPLQueryResponse struct {
	ID             kernel.UUID
	OrganizationID kernel.UUID
	Number         string
	Status         string
	VehicleNumber  string
	DriverName     string
	FromBranchID   *kernel.UUID
	ToBranchID     *kernel.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
	LoadingRecords []LoadingRecordResponse
	Unloading      *UnloadingRecordResponse
}

// LoadingRecordResponse joins a loading record with the booking's current
// LR number and status.
type LoadingRecordResponse struct {
	ID            kernel.UUID
	BookingID     kernel.UUID
	LRNumber      string
	BookingStatus string
	LoadedAt      time.Time
}

type UnloadingRecordResponse struct {
	ID         kernel.UUID
	UnloadedAt time.Time
	Conditions []ConditionResponse
}

type ConditionResponse struct {
	BookingID kernel.UUID
	Status    string
	Remarks   string
	Photo     string
}
