// Package ogplrepo persists loading sheets with their loading and unloading
// records.
package ogplrepo

import (
	"encoding/json"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/ogpl"

	"github.com/google/uuid"
)

type OGPLDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_ogpls_org_number,priority:1"`
	Number         string     `gorm:"column:ogpl_number;type:varchar(32);not null;uniqueIndex:idx_ogpls_org_number,priority:2"`
	Status         string     `gorm:"type:varchar(16);not null;index"`
	VehicleNumber  string     `gorm:"type:varchar(20);not null"`
	DriverName     string     `gorm:"type:varchar(100);not null;default:''"`
	FromBranchID   *uuid.UUID `gorm:"type:uuid"`
	ToBranchID     *uuid.UUID `gorm:"type:uuid"`
	CreatedAt      time.Time  `gorm:"not null;autoCreateTime:false"`
	UpdatedAt      time.Time  `gorm:"not null;autoUpdateTime:false"`

	LoadingRecords  []LoadingRecordDTO  `gorm:"foreignKey:OGPLID;constraint:OnDelete:CASCADE"`
	UnloadingRecord *UnloadingRecordDTO `gorm:"foreignKey:OGPLID;constraint:OnDelete:CASCADE"`
}

func (OGPLDTO) TableName() string {
	return "ogpls"
}

// LoadingRecordDTO keeps the position of the record on its sheet so the
// load order survives batches that share a timestamp.
type LoadingRecordDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OGPLID    uuid.UUID `gorm:"column:ogpl_id;type:uuid;not null;uniqueIndex:idx_loading_records_ogpl_booking,priority:1"`
	BookingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_loading_records_ogpl_booking,priority:2;index"`
	Position  int       `gorm:"type:int;not null"`
	LoadedAt  time.Time `gorm:"not null"`
}

func (LoadingRecordDTO) TableName() string {
	return "loading_records"
}

// UnloadingRecordDTO stores the per-booking conditions as a jsonb object
// keyed by booking id.
type UnloadingRecordDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OGPLID     uuid.UUID `gorm:"column:ogpl_id;type:uuid;not null;uniqueIndex"`
	Conditions string    `gorm:"type:jsonb;not null"`
	UnloadedAt time.Time `gorm:"not null"`
}

func (UnloadingRecordDTO) TableName() string {
	return "unloading_records"
}

// ConditionDTO is one entry of UnloadingRecordDTO.Conditions.
type ConditionDTO struct {
	Status  string `json:"status"`
	Remarks string `json:"remarks,omitempty"`
	Photo   string `json:"photo,omitempty"`
}

func fromDomain(o *ogpl.OGPL) (OGPLDTO, error) {
	id := o.ID().Bytes()

	records := make([]LoadingRecordDTO, 0, len(o.LoadingRecords()))
	for i, r := range o.LoadingRecords() {
		records = append(records, LoadingRecordDTO{
			ID:        r.ID().Bytes(),
			OGPLID:    id,
			BookingID: r.BookingID().Bytes(),
			Position:  i,
			LoadedAt:  r.LoadedAt(),
		})
	}

	var unloading *UnloadingRecordDTO
	if record := o.UnloadingRecord(); record != nil {
		dto, err := unloadingFromDomain(*record)
		if err != nil {
			return OGPLDTO{}, err
		}
		unloading = &dto
	}

	return OGPLDTO{
		ID:              id,
		OrganizationID:  o.OrganizationID().Bytes(),
		Number:          o.Number(),
		Status:          o.Status().String(),
		VehicleNumber:   o.VehicleNumber(),
		DriverName:      o.DriverName(),
		FromBranchID:    optionalBytes(o.FromBranchID()),
		ToBranchID:      optionalBytes(o.ToBranchID()),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
		LoadingRecords:  records,
		UnloadingRecord: unloading,
	}, nil
}

func unloadingFromDomain(r ogpl.UnloadingRecord) (UnloadingRecordDTO, error) {
	conditions := make(map[string]ConditionDTO, len(r.Conditions()))
	for bookingID, c := range r.Conditions() {
		conditions[bookingID.String()] = ConditionDTO{
			Status:  c.Status.String(),
			Remarks: c.Remarks,
			Photo:   c.Photo,
		}
	}

	raw, err := json.Marshal(conditions)
	if err != nil {
		return UnloadingRecordDTO{}, fmt.Errorf("encode conditions: %w", err)
	}

	return UnloadingRecordDTO{
		ID:         r.ID().Bytes(),
		OGPLID:     r.OGPLID().Bytes(),
		Conditions: string(raw),
		UnloadedAt: r.UnloadedAt(),
	}, nil
}

func toDomain(dto OGPLDTO) (*ogpl.OGPL, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	org, err := kernel.UUIDFromBytes(dto.OrganizationID[:])
	if err != nil {
		return nil, err
	}
	status, err := ogpl.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	from, err := optionalUUID(dto.FromBranchID)
	if err != nil {
		return nil, err
	}
	to, err := optionalUUID(dto.ToBranchID)
	if err != nil {
		return nil, err
	}

	records := make([]ogpl.LoadingRecord, 0, len(dto.LoadingRecords))
	for _, r := range dto.LoadingRecords {
		record, recordErr := loadingToDomain(r)
		if recordErr != nil {
			return nil, recordErr
		}
		records = append(records, record)
	}

	var unloading *ogpl.UnloadingRecord
	if dto.UnloadingRecord != nil {
		record, recordErr := unloadingToDomain(*dto.UnloadingRecord)
		if recordErr != nil {
			return nil, recordErr
		}
		unloading = &record
	}

	return ogpl.RestoreOGPL(
		id,
		org,
		dto.Number,
		status,
		dto.VehicleNumber,
		dto.DriverName,
		from,
		to,
		records,
		unloading,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

func loadingToDomain(dto LoadingRecordDTO) (ogpl.LoadingRecord, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ogpl.LoadingRecord{}, err
	}
	ogplID, err := kernel.UUIDFromBytes(dto.OGPLID[:])
	if err != nil {
		return ogpl.LoadingRecord{}, err
	}
	bookingID, err := kernel.UUIDFromBytes(dto.BookingID[:])
	if err != nil {
		return ogpl.LoadingRecord{}, err
	}
	return ogpl.RestoreLoadingRecord(id, ogplID, bookingID, dto.LoadedAt)
}

func unloadingToDomain(dto UnloadingRecordDTO) (ogpl.UnloadingRecord, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ogpl.UnloadingRecord{}, err
	}
	ogplID, err := kernel.UUIDFromBytes(dto.OGPLID[:])
	if err != nil {
		return ogpl.UnloadingRecord{}, err
	}

	var raw map[string]ConditionDTO
	if err = json.Unmarshal([]byte(dto.Conditions), &raw); err != nil {
		return ogpl.UnloadingRecord{}, fmt.Errorf("decode conditions: %w", err)
	}

	conditions := make(map[kernel.UUID]ogpl.Condition, len(raw))
	for key, c := range raw {
		bookingID, idErr := kernel.UUIDFromString(key)
		if idErr != nil {
			return ogpl.UnloadingRecord{}, idErr
		}
		status, statusErr := ogpl.ParseConditionStatus(c.Status)
		if statusErr != nil {
			return ogpl.UnloadingRecord{}, statusErr
		}
		conditions[bookingID] = ogpl.Condition{Status: status, Remarks: c.Remarks, Photo: c.Photo}
	}

	return ogpl.NewUnloadingRecord(id, ogplID, conditions, dto.UnloadedAt)
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
