// Package queries contains the read side: number previews, booking and
// sheet lookups and booking search. Handlers read with raw SQL or the
// search index and return flat read models.
package queries

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var (
	ErrGenerateLRNumberQueryIsNotConstructed = errors.New(
		"GenerateLRNumberQuery must be created via NewGenerateLRNumberQuery constructor",
	)
	ErrGenerateOGPLNumberQueryIsNotConstructed = errors.New(
		"GenerateOGPLNumberQuery must be created via NewGenerateOGPLNumberQuery constructor",
	)
)

// GenerateLRNumberQuery previews the LR number the next system-numbered
// booking of the organization would get. The branch is optional; without
// one the number carries the default branch code.
//
// Example:
//
//	query, err := NewGenerateLRNumberQuery(orgID, &branchID)
//	if err != nil {
//	    return err
//	}
//	number, err := handler.Handle(ctx, query) // "MU2501-0008"
type GenerateLRNumberQuery struct {
	organizationID kernel.UUID
	branchID       *kernel.UUID

	guard guard.ConstructorGuard
}

func NewGenerateLRNumberQuery(organizationID kernel.UUID, branchID *kernel.UUID) (GenerateLRNumberQuery, error) {
	if err := organizationID.Validate(); err != nil {
		return GenerateLRNumberQuery{}, errs.NewValueIsRequiredErrorWithCause("organization id", err)
	}
	if branchID != nil {
		if err := branchID.Validate(); err != nil {
			return GenerateLRNumberQuery{}, errs.NewValueIsInvalidErrorWithCause("branch id", err)
		}
	}

	return GenerateLRNumberQuery{
		organizationID: organizationID,
		branchID:       branchID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (q GenerateLRNumberQuery) Validate() error {
	return q.guard.Validate(ErrGenerateLRNumberQueryIsNotConstructed)
}

func (q GenerateLRNumberQuery) OrganizationID() kernel.UUID { return q.organizationID }
func (q GenerateLRNumberQuery) BranchID() *kernel.UUID      { return q.branchID }

// GenerateOGPLNumberQuery previews the next sheet number of the
// organization.
type GenerateOGPLNumberQuery struct {
	organizationID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGenerateOGPLNumberQuery(organizationID kernel.UUID) (GenerateOGPLNumberQuery, error) {
	if err := organizationID.Validate(); err != nil {
		return GenerateOGPLNumberQuery{}, errs.NewValueIsRequiredErrorWithCause("organization id", err)
	}

	return GenerateOGPLNumberQuery{
		organizationID: organizationID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (q GenerateOGPLNumberQuery) Validate() error {
	return q.guard.Validate(ErrGenerateOGPLNumberQueryIsNotConstructed)
}

func (q GenerateOGPLNumberQuery) OrganizationID() kernel.UUID { return q.organizationID }
