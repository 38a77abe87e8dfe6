package queries

import (
	"errors"

	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

var ErrListBookingsQueryIsNotConstructed = errors.New(
	"ListBookingsQuery must be created via NewListBookingsQuery constructor",
)

// ListBookingsQuery pages through the bookings of an organization, newest
// first, optionally restricted to one status.
//
// Example:
//
//	query, err := NewListBookingsQuery(orgID, "in_transit", 0, 0)
//	page, err := handler.Handle(ctx, query)
type ListBookingsQuery struct {
	organizationID kernel.UUID
	status         booking.Status
	limit          int
	offset         int

	guard guard.ConstructorGuard
}

// NewListBookingsQuery accepts an empty status for all bookings. A zero
// limit means DefaultPageSize.
func NewListBookingsQuery(organizationID kernel.UUID, status string, limit, offset int) (ListBookingsQuery, error) {
	q := ListBookingsQuery{
		organizationID: organizationID,
		limit:          limit,
		offset:         offset,
		guard:          guard.NewConstructorGuard(),
	}

	var problems []error
	if err := organizationID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("organization id", err))
	}
	if status != "" {
		parsed, err := booking.ParseStatus(status)
		if err != nil {
			problems = append(problems, err)
		}
		q.status = parsed
	}
	if q.limit == 0 {
		q.limit = DefaultPageSize
	}
	if q.limit < 1 || q.limit > MaxPageSize {
		problems = append(problems, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxPageSize))
	}
	if offset < 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded"))
	}

	if err := errors.Join(problems...); err != nil {
		return ListBookingsQuery{}, err
	}
	return q, nil
}

func (q ListBookingsQuery) Validate() error {
	return q.guard.Validate(ErrListBookingsQueryIsNotConstructed)
}

func (q ListBookingsQuery) OrganizationID() kernel.UUID { return q.organizationID }
func (q ListBookingsQuery) Limit() int                  { return q.limit }
func (q ListBookingsQuery) Offset() int                 { return q.offset }

// Status returns the filter and whether one is set.
func (q ListBookingsQuery) Status() (booking.Status, bool) {
	return q.status, q.status != booking.Unknown
}
