// Package bookingrepo persists booking aggregates with gorm.
package bookingrepo

import (
	"time"

	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// BookingDTO is the bookings table row. Status and LR type are stored by
// name so the read side and ad-hoc SQL stay readable.
type BookingDTO struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrganizationID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_bookings_org_lr,priority:1;index:idx_bookings_org_status,priority:1"`
	LRNumber            string     `gorm:"type:varchar(32);not null;uniqueIndex:idx_bookings_org_lr,priority:2"`
	LRType              string     `gorm:"type:varchar(16);not null"`
	Status              string     `gorm:"type:varchar(16);not null;index:idx_bookings_org_status,priority:2"`
	OriginBranchID      *uuid.UUID `gorm:"type:uuid"`
	DestinationBranchID *uuid.UUID `gorm:"type:uuid"`
	Sender              string     `gorm:"type:varchar(200);not null"`
	Receiver            string     `gorm:"type:varchar(200);not null"`
	Article             string     `gorm:"type:varchar(200);not null"`
	Quantity            int        `gorm:"type:int;not null"`
	WeightKg            float64    `gorm:"type:numeric(12,2);not null"`
	FreightCharge       float64    `gorm:"type:numeric(12,2);not null"`
	OtherCharges        float64    `gorm:"type:numeric(12,2);not null"`
	CreatedAt           time.Time  `gorm:"not null;autoCreateTime:false"`
	UpdatedAt           time.Time  `gorm:"not null;autoUpdateTime:false"`
}

func (BookingDTO) TableName() string {
	return "bookings"
}

func fromDomain(b *booking.Booking) BookingDTO {
	c := b.Consignment()
	return BookingDTO{
		ID:                  b.ID().Bytes(),
		OrganizationID:      b.OrganizationID().Bytes(),
		LRNumber:            b.LRNumber(),
		LRType:              b.LRType().String(),
		Status:              b.Status().String(),
		OriginBranchID:      optionalBytes(b.OriginBranchID()),
		DestinationBranchID: optionalBytes(b.DestinationBranchID()),
		Sender:              c.Sender,
		Receiver:            c.Receiver,
		Article:             c.Article,
		Quantity:            c.Quantity,
		WeightKg:            c.WeightKg,
		FreightCharge:       c.FreightCharge,
		OtherCharges:        c.OtherCharges,
		CreatedAt:           b.CreatedAt(),
		UpdatedAt:           b.UpdatedAt(),
	}
}

func toDomain(dto BookingDTO) (*booking.Booking, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	org, err := kernel.UUIDFromBytes(dto.OrganizationID[:])
	if err != nil {
		return nil, err
	}
	lrType, err := booking.ParseLRType(dto.LRType)
	if err != nil {
		return nil, err
	}
	status, err := booking.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	origin, err := optionalUUID(dto.OriginBranchID)
	if err != nil {
		return nil, err
	}
	destination, err := optionalUUID(dto.DestinationBranchID)
	if err != nil {
		return nil, err
	}

	return booking.RestoreBooking(
		id,
		org,
		dto.LRNumber,
		lrType,
		status,
		origin,
		destination,
		booking.Consignment{
			Sender:        dto.Sender,
			Receiver:      dto.Receiver,
			Article:       dto.Article,
			Quantity:      dto.Quantity,
			WeightKg:      dto.WeightKg,
			FreightCharge: dto.FreightCharge,
			OtherCharges:  dto.OtherCharges,
		},
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

func optionalBytes(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
