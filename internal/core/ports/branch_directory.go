package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
)

// Branch is the part of a branch record the core needs.
type Branch struct {
	ID             kernel.UUID
	OrganizationID kernel.UUID
	Name           string
	Code           string
}

// BranchDirectory looks up branches. Unknown ids are reported as
// errs.ObjectNotFoundError; any other error is an access failure.
type BranchDirectory interface {
	Branch(ctx context.Context, id kernel.UUID) (Branch, error)
}
