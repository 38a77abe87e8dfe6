package bookingrepo

import (
	"context"
	"regexp"
	"strings"

	"freight/internal/adapters/out/postgres/pgerr"
	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBookingRepository implements ports.BookingRepository using GORM.
type GormBookingRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker receives every aggregate that was written so the unit of
// work can store its domain events.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormBookingRepository(db *gorm.DB, tracker aggregateTracker) *GormBookingRepository {
	return &GormBookingRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormBookingRepository) Add(ctx context.Context, aggregate *booking.Booking) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Wrap("insert booking", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the mutable columns. LR number, parties and charges never
// change after creation.
func (r *GormBookingRepository) Update(ctx context.Context, aggregate *booking.Booking) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&BookingDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Updates(map[string]any{
			"status":     aggregate.Status().String(),
			"updated_at": aggregate.UpdatedAt(),
		})
	if result.Error != nil {
		return pgerr.Wrap("update booking", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("booking", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormBookingRepository) Get(ctx context.Context, id kernel.UUID) (*booking.Booking, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BookingDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		return nil, pgerr.NotFound("get booking", "booking", id.String(), err)
	}

	return toDomain(dto)
}

// GetMany locks rows in id order so concurrent batches cannot deadlock.
func (r *GormBookingRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*booking.Booking, error) {
	if len(ids) == 0 {
		return []*booking.Booking{}, nil
	}

	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.String())
	}

	var dtos []BookingDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ANY(?)", pq.Array(raw)).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, pgerr.Wrap("get bookings", err)
	}

	bookings := make([]*booking.Booking, 0, len(dtos))
	for _, dto := range dtos {
		b, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

// LatestLRNumber returns the greatest number with the prefix and an
// all-digit suffix, manual or generated. Manual numbers that fit the pattern
// occupy the sequence; others are ignored. Longer suffixes sort first so the
// sequence keeps counting past 9999.
func (r *GormBookingRepository) LatestLRNumber(
	ctx context.Context,
	organizationID kernel.UUID,
	prefix string,
) (*string, error) {
	var numbers []string
	err := r.db.WithContext(ctx).
		Model(&BookingDTO{}).
		Where("organization_id = ? AND lr_number LIKE ? AND lr_number ~ ?",
			organizationID.Bytes(), EscapeLike(prefix)+"%", SequencePattern(prefix)).
		Order("length(lr_number) DESC, lr_number DESC").
		Limit(1).
		Pluck("lr_number", &numbers).Error
	if err != nil {
		return nil, pgerr.Wrap("latest lr number", err)
	}

	if len(numbers) == 0 {
		return nil, nil
	}
	return &numbers[0], nil
}

// SequencePattern is the POSIX regular expression matching prefix followed
// by one or more digits.
func SequencePattern(prefix string) string {
	return "^" + regexp.QuoteMeta(prefix) + "[0-9]+$"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike quotes LIKE wildcards so s matches literally.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
