package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Domain events recorded by
// aggregates passed to its repositories are written to the outbox on
// Commit, in the same transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// SavePoint marks a point inside the open transaction that RollbackTo
	// can return to without aborting the rest of the work.
	SavePoint(ctx context.Context, name string) error
	RollbackTo(ctx context.Context, name string) error

	BookingRepository() BookingRepository
	OGPLRepository() OGPLRepository
}
