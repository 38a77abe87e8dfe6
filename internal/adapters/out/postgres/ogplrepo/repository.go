package ogplrepo

import (
	"context"

	"freight/internal/adapters/out/postgres/pgerr"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/ogpl"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOGPLRepository implements ports.OGPLRepository using GORM.
type GormOGPLRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOGPLRepository(db *gorm.DB, tracker aggregateTracker) *GormOGPLRepository {
	return &GormOGPLRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the sheet together with any loading records it already holds.
func (r *GormOGPLRepository) Add(ctx context.Context, aggregate *ogpl.OGPL) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Wrap("insert ogpl", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the sheet status, inserts loading records that are not yet
// stored and stores the unloading record once it exists. Records are never
// changed after insertion.
func (r *GormOGPLRepository) Update(ctx context.Context, aggregate *ogpl.OGPL) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	db := r.db.WithContext(ctx)

	result := db.Model(&OGPLDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":     dto.Status,
			"updated_at": dto.UpdatedAt,
		})
	if result.Error != nil {
		return pgerr.Wrap("update ogpl", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("ogpl", aggregate.ID().String())
	}

	if len(dto.LoadingRecords) > 0 {
		err = db.Clauses(clause.OnConflict{DoNothing: true}).Create(&dto.LoadingRecords).Error
		if err != nil {
			return pgerr.Wrap("insert loading records", err)
		}
	}

	if dto.UnloadingRecord != nil {
		err = db.Clauses(clause.OnConflict{DoNothing: true}).Create(dto.UnloadingRecord).Error
		if err != nil {
			return pgerr.Wrap("insert unloading record", err)
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get locks the sheet row, then reads its records.
func (r *GormOGPLRepository) Get(ctx context.Context, id kernel.UUID) (*ogpl.OGPL, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)

	var dto OGPLDTO
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		return nil, pgerr.NotFound("get ogpl", "ogpl", id.String(), err)
	}

	if err = db.Where("ogpl_id = ?", dto.ID).Order("position").Find(&dto.LoadingRecords).Error; err != nil {
		return nil, pgerr.Wrap("get loading records", err)
	}

	var unloading []UnloadingRecordDTO
	if err = db.Where("ogpl_id = ?", dto.ID).Limit(1).Find(&unloading).Error; err != nil {
		return nil, pgerr.Wrap("get unloading record", err)
	}
	if len(unloading) > 0 {
		dto.UnloadingRecord = &unloading[0]
	}

	return toDomain(dto)
}

// LatestNumber returns the number of the newest sheet of the organization.
func (r *GormOGPLRepository) LatestNumber(ctx context.Context, organizationID kernel.UUID) (*string, error) {
	var numbers []string
	err := r.db.WithContext(ctx).
		Model(&OGPLDTO{}).
		Where("organization_id = ?", organizationID.Bytes()).
		Order("created_at DESC, length(ogpl_number) DESC, ogpl_number DESC").
		Limit(1).
		Pluck("ogpl_number", &numbers).Error
	if err != nil {
		return nil, pgerr.Wrap("latest ogpl number", err)
	}

	if len(numbers) == 0 {
		return nil, nil
	}
	return &numbers[0], nil
}
