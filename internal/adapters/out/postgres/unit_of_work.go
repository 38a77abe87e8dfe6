// Package postgres provides the GORM-based Unit of Work, the transactional
// outbox and the schema migration.
//
// A unit of work wraps one database transaction. Repositories obtained from
// it run inside that transaction and report every aggregate they write;
// on Commit the domain events recorded by those aggregates are inserted
// into outbox_events before the transaction is committed, so a state change
// and its events are stored together or not at all.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.BookingRepository().Add(ctx, b); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Savepoints scope partial failures inside the transaction: aggregates
// tracked after a savepoint are forgotten when the work rolls back to it,
// so their events never reach the outbox.
//
// Each UnitOfWork instance is meant for a single goroutine.
package postgres

import (
	"context"
	"errors"

	"freight/internal/adapters/out/postgres/bookingrepo"
	"freight/internal/adapters/out/postgres/ogplrepo"
	"freight/internal/adapters/out/postgres/pgerr"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"

	"gorm.io/gorm"
)

// eventSource is implemented by aggregates embedding kernel.EventRecorder.
type eventSource interface {
	DomainEvents() []kernel.DomainEvent
	ClearDomainEvents()
}

// trackedAggregate represents an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection
// pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a fresh unit of work with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
		savePoints:        make(map[string]int),
	}
}

// GormUnitOfWork coordinates one transaction and the aggregates written in
// it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
	savePoints        map[string]int
}

// Begin opens the transaction. Calling it again while a transaction is
// open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return pgerr.Wrap("begin transaction", err)
	}

	return nil
}

// Commit writes the pending domain events to the outbox and commits. On
// success the events are cleared from their aggregates.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	sources := uow.eventSources()
	rows := make([]OutboxEventDTO, 0)
	for _, source := range sources {
		for _, event := range source.DomainEvents() {
			row, err := outboxRow(event)
			if err != nil {
				return err
			}
			rows = append(rows, row)
		}
	}

	if len(rows) > 0 {
		if err := uow.tx.Create(&rows).Error; err != nil {
			return pgerr.Wrap("insert outbox events", err)
		}
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return pgerr.Wrap("commit transaction", err)
	}

	for _, source := range sources {
		source.ClearDomainEvents()
	}
	uow.reset()
	return nil
}

// Rollback discards the transaction and everything tracked in it. Without
// an open transaction it returns gorm.ErrInvalidTransaction, which deferred
// callers ignore after a successful Commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.reset()
	return err
}

func (uow *GormUnitOfWork) SavePoint(_ context.Context, name string) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	if err := uow.tx.SavePoint(name).Error; err != nil {
		return pgerr.Wrap("savepoint "+name, err)
	}
	uow.savePoints[name] = len(uow.trackedAggregates)
	return nil
}

// RollbackTo undoes the work done since the savepoint, including the
// aggregates tracked after it.
func (uow *GormUnitOfWork) RollbackTo(_ context.Context, name string) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	mark, ok := uow.savePoints[name]
	if !ok {
		return errors.New("unknown savepoint " + name)
	}

	if err := uow.tx.RollbackTo(name).Error; err != nil {
		return pgerr.Wrap("rollback to "+name, err)
	}
	uow.trackedAggregates = uow.trackedAggregates[:mark]
	return nil
}

// BookingRepository returns a repository bound to the open transaction, or
// to the pool when none is open.
func (uow *GormUnitOfWork) BookingRepository() ports.BookingRepository {
	return bookingrepo.NewGormBookingRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) OGPLRepository() ports.OGPLRepository {
	return ogplrepo.NewGormOGPLRepository(uow.conn(), uow)
}

// TrackAggregate registers an aggregate written in this unit of work.
// Repositories call it after a successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// eventSources returns each tracked aggregate once, in first-write order.
func (uow *GormUnitOfWork) eventSources() []eventSource {
	seen := make(map[any]struct{}, len(uow.trackedAggregates))
	sources := make([]eventSource, 0, len(uow.trackedAggregates))
	for _, tracked := range uow.trackedAggregates {
		source, ok := tracked.Aggregate.(eventSource)
		if !ok {
			continue
		}
		if _, dup := seen[tracked.Aggregate]; dup {
			continue
		}
		seen[tracked.Aggregate] = struct{}{}
		sources = append(sources, source)
	}
	return sources
}

func (uow *GormUnitOfWork) reset() {
	uow.trackedAggregates = uow.trackedAggregates[:0]
	clear(uow.savePoints)
}
