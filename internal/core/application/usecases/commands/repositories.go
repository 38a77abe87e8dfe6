// Package commands contains the operations that change bookings and loading
// sheets. Every handler validates its command, opens a unit of work, loads
// the aggregates it needs, applies domain rules and commits.
package commands

import (
	"context"
	"time"

	"freight/internal/core/application/numbering"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// SavePointManager scopes partial rollbacks inside an open transaction.
	SavePointManager interface {
		SavePoint(ctx context.Context, name string) error
		RollbackTo(ctx context.Context, name string) error
	}

	// BookingRepoFactory provides the booking repository bound to the
	// transaction.
	BookingRepoFactory interface {
		BookingRepository() ports.BookingRepository
	}

	// OGPLRepoFactory provides the sheet repository bound to the transaction.
	OGPLRepoFactory interface {
		OGPLRepository() ports.OGPLRepository
	}

	// BookingUoW is used by commands that only touch bookings.
	BookingUoW interface {
		TxManager
		BookingRepoFactory
	}

	BookingUoWFactory interface {
		Create() BookingUoW
	}

	// UoW spans bookings and sheets, with savepoints for the unloading
	// loop.
	UoW interface {
		TxManager
		SavePointManager
		BookingRepoFactory
		OGPLRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)

// NumberGenerator hands out candidate LR and OGPL numbers.
type NumberGenerator interface {
	Now() time.Time
	NextLRNumber(
		ctx context.Context,
		source numbering.LRNumberSource,
		organizationID kernel.UUID,
		branchID *kernel.UUID,
	) (string, error)
	NextOGPLNumber(ctx context.Context, source numbering.OGPLNumberSource, organizationID kernel.UUID) (string, error)
}
