package postgres

import (
	"context"
	"time"

	"freight/internal/adapters/out/postgres/pgerr"
	"freight/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OutboxEventDTO is an outbox_events row. Rows are written in the same
// transaction as the aggregate change and stamped once relayed.
type OutboxEventDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	AggregateID   uuid.UUID `gorm:"type:uuid;not null;index"`
	AggregateType string    `gorm:"type:varchar(32);not null"`
	Type          string    `gorm:"type:varchar(64);not null"`
	Payload       string    `gorm:"type:jsonb;not null"`
	OccurredAt    time.Time `gorm:"not null"`
	PublishedAt   *time.Time
}

func (OutboxEventDTO) TableName() string {
	return "outbox_events"
}

func (dto OutboxEventDTO) toPort() ports.OutboxMessage {
	return ports.OutboxMessage{
		ID:            dto.ID.String(),
		AggregateID:   dto.AggregateID.String(),
		AggregateType: dto.AggregateType,
		Type:          dto.Type,
		Payload:       []byte(dto.Payload),
		OccurredAt:    dto.OccurredAt,
	}
}

// GormOutbox implements ports.Outbox.
type GormOutbox struct {
	db *gorm.DB
}

func NewGormOutbox(db *gorm.DB) *GormOutbox {
	return &GormOutbox{db: db}
}

// Pending returns up to limit unpublished messages, oldest first.
func (o *GormOutbox) Pending(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var dtos []OutboxEventDTO
	err := o.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("occurred_at, id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, pgerr.Wrap("pending outbox events", err)
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		messages = append(messages, dto.toPort())
	}
	return messages, nil
}

func (o *GormOutbox) MarkPublished(ctx context.Context, id string, at time.Time) error {
	raw, err := uuid.Parse(id)
	if err != nil {
		return err
	}

	err = o.db.WithContext(ctx).
		Model(&OutboxEventDTO{}).
		Where("id = ? AND published_at IS NULL", raw).
		Update("published_at", at.UTC()).Error
	return pgerr.Wrap("mark outbox event published", err)
}
