// Package numbering produces the next LR and OGPL numbers by combining the
// stored latest number with the pure rules of the sequence package.
//
// Generation is a read: two callers may compute the same number. The unique
// indexes on (organization, number) reject the second insert and the
// creation handlers retry with a fresh number.
package numbering

import (
	"context"
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/sequence"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

// LRNumberSource reads the latest stored LR number for a prefix.
type LRNumberSource interface {
	LatestLRNumber(ctx context.Context, organizationID kernel.UUID, prefix string) (*string, error)
}

// OGPLNumberSource reads the number of the newest sheet.
type OGPLNumberSource interface {
	LatestNumber(ctx context.Context, organizationID kernel.UUID) (*string, error)
}

// Generator is safe for concurrent use.
type Generator struct {
	branches ports.BranchDirectory
	location *time.Location
	now      func() time.Time
}

// NewGenerator builds a generator whose periods (month for LR numbers, day
// for OGPL numbers) are computed in location. A nil location means UTC.
func NewGenerator(branches ports.BranchDirectory, location *time.Location, now func() time.Time) *Generator {
	if location == nil {
		location = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &Generator{
		branches: branches,
		location: location,
		now:      now,
	}
}

// Now returns the current time in the generator's location.
func (g *Generator) Now() time.Time {
	return g.now().In(g.location)
}

// BranchCode resolves the two-letter code for branchID. An absent or
// unknown branch yields kernel.DefaultBranchCode; a failing lookup is a
// DataAccessError.
func (g *Generator) BranchCode(ctx context.Context, branchID *kernel.UUID) (kernel.BranchCode, error) {
	if branchID == nil {
		return kernel.DefaultBranchCode, nil
	}

	branch, err := g.branches.Branch(ctx, *branchID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return kernel.DefaultBranchCode, nil
		}
		return "", asDataAccess("lookup branch", err)
	}
	return kernel.BranchCodeFrom(branch.Code), nil
}

// NextLRNumber returns the candidate LR number for a booking of the
// organization originating at branchID.
func (g *Generator) NextLRNumber(
	ctx context.Context,
	source LRNumberSource,
	organizationID kernel.UUID,
	branchID *kernel.UUID,
) (string, error) {
	if err := organizationID.Validate(); err != nil {
		return "", errs.NewValueIsRequiredErrorWithCause("organization id", err)
	}

	code, err := g.BranchCode(ctx, branchID)
	if err != nil {
		return "", err
	}

	now := g.Now()
	last, err := source.LatestLRNumber(ctx, organizationID, sequence.LRPrefix(code, now))
	if err != nil {
		return "", asDataAccess("latest lr number", err)
	}
	return sequence.NextLR(code, now, last), nil
}

// NextOGPLNumber returns the candidate number for a new sheet of the
// organization.
func (g *Generator) NextOGPLNumber(
	ctx context.Context,
	source OGPLNumberSource,
	organizationID kernel.UUID,
) (string, error) {
	if err := organizationID.Validate(); err != nil {
		return "", errs.NewValueIsRequiredErrorWithCause("organization id", err)
	}

	now := g.Now()
	last, err := source.LatestNumber(ctx, organizationID)
	if err != nil {
		return "", asDataAccess("latest ogpl number", err)
	}
	return sequence.NextOGPL(now, last), nil
}

func asDataAccess(operation string, err error) error {
	if errors.Is(err, errs.ErrDataAccess) {
		return err
	}
	return errs.NewDataAccessError(operation, err)
}
