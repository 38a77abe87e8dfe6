package queries

import (
	"errors"
	"strings"

	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

const maxSearchTextLength = 200

var ErrSearchBookingsQueryIsNotConstructed = errors.New(
	"SearchBookingsQuery must be created via NewSearchBookingsQuery constructor",
)

// SearchBookingsQuery matches free text against LR numbers and parties.
type SearchBookingsQuery struct {
	organizationID kernel.UUID
	text           string
	status         booking.Status
	limit          int

	guard guard.ConstructorGuard
}

func NewSearchBookingsQuery(organizationID kernel.UUID, text, status string, limit int) (SearchBookingsQuery, error) {
	q := SearchBookingsQuery{
		organizationID: organizationID,
		text:           strings.TrimSpace(text),
		limit:          limit,
		guard:          guard.NewConstructorGuard(),
	}

	var problems []error
	if err := organizationID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("organization id", err))
	}
	if q.text == "" {
		problems = append(problems, errs.NewValueIsRequiredError("search text"))
	} else if len(q.text) > maxSearchTextLength {
		problems = append(problems, errs.NewValueIsOutOfRangeError("search text length", len(q.text), 1, maxSearchTextLength))
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

	if err := errors.Join(problems...); err != nil {
		return SearchBookingsQuery{}, err
	}
	return q, nil
}

func (q SearchBookingsQuery) Validate() error {
	return q.guard.Validate(ErrSearchBookingsQueryIsNotConstructed)
}

func (q SearchBookingsQuery) OrganizationID() kernel.UUID { return q.organizationID }
func (q SearchBookingsQuery) Text() string                { return q.text }
func (q SearchBookingsQuery) Limit() int                  { return q.limit }

func (q SearchBookingsQuery) Status() (booking.Status, bool) {
	return q.status, q.status != booking.Unknown
}
