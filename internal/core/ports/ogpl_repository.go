package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/ogpl"
)

// OGPLRepository defines the persistence contract for loading sheets
// together with their loading and unloading records.
type OGPLRepository interface {
	// Add inserts a new sheet and any loading records it already holds. A
	// clash on (organization, ogpl_number) is reported as a DataAccessError
	// wrapping ErrDuplicateIdentifier.
	Add(ctx context.Context, aggregate *ogpl.OGPL) error

	// Update persists the sheet status, appends loading records not yet
	// stored and writes the unloading record once it is set.
	Update(ctx context.Context, aggregate *ogpl.OGPL) error

	// Get loads a sheet with its records and locks the sheet row.
	Get(ctx context.Context, id kernel.UUID) (*ogpl.OGPL, error)

	// LatestNumber returns the number of the most recently created sheet of
	// the organization, or nil when there is none.
	LatestNumber(ctx context.Context, organizationID kernel.UUID) (*string, error)
}
