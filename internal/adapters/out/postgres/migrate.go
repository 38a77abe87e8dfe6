package postgres

import (
	"freight/internal/adapters/out/postgres/bookingrepo"
	"freight/internal/adapters/out/postgres/branchrepo"
	"freight/internal/adapters/out/postgres/ogplrepo"

	"gorm.io/gorm"
)

// Models lists every table owned by the service, in creation order.
func Models() []any {
	return []any{
		&branchrepo.BranchDTO{},
		&bookingrepo.BookingDTO{},
		&ogplrepo.OGPLDTO{},
		&ogplrepo.LoadingRecordDTO{},
		&ogplrepo.UnloadingRecordDTO{},
		&OutboxEventDTO{},
	}
}

// Migrate creates or updates the schema, then adds the partial index the
// outbox relay polls.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}

	return db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_outbox_events_unpublished
		ON outbox_events (occurred_at)
		WHERE published_at IS NULL
	`).Error
}
