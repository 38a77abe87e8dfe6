package queries

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOGPLQueryHandler reads a sheet in three statements: the sheet row, its
// loading records joined to bookings, and the unloading record.
type GetOGPLQueryHandler struct {
	db *gorm.DB
}

func NewGetOGPLQueryHandler(db *gorm.DB) GetOGPLQueryHandler {
	return GetOGPLQueryHandler{db: db}
}

type ogplRow struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Number         string
	Status         string
	VehicleNumber  string
	DriverName     string
	FromBranchID   uuid.NullUUID
	ToBranchID     uuid.NullUUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type loadingRow struct {
	ID            uuid.UUID
	BookingID     uuid.UUID
	LRNumber      string
	BookingStatus string
	LoadedAt      time.Time
}

type unloadingRow struct {
	ID         uuid.UUID
	Conditions string
	UnloadedAt time.Time
}

type conditionJSON struct {
	Status  string `json:"status"`
	Remarks string `json:"remarks"`
	Photo   string `json:"photo"`
}

func (h GetOGPLQueryHandler) Handle(ctx context.Context, query GetOGPLQuery) (GetOGPLQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOGPLQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	id := query.OGPLID().String()

	var sheets []ogplRow
	err := db.Raw(`
		SELECT
			id,
			organization_id,
			ogpl_number AS number,
			status,
			vehicle_number,
			driver_name,
			from_branch_id,
			to_branch_id,
			created_at,
			updated_at
		FROM ogpls
		WHERE id = ?
	`, id).Scan(&sheets).Error
	if err != nil {
		return GetOGPLQueryResponse{}, errs.NewDataAccessError("get ogpl", err)
	}
	if len(sheets) == 0 {
		return GetOGPLQueryResponse{}, errs.NewObjectNotFoundError("ogpl", id)
	}

	var loading []loadingRow
	err = db.Raw(`
		SELECT
			lr.id,
			lr.booking_id,
			COALESCE(b.lr_number, '') AS lr_number,
			COALESCE(b.status, '') AS booking_status,
			lr.loaded_at
		FROM loading_records lr
		LEFT JOIN bookings b ON b.id = lr.booking_id
		WHERE lr.ogpl_id = ?
		ORDER BY lr.position
	`, id).Scan(&loading).Error
	if err != nil {
		return GetOGPLQueryResponse{}, errs.NewDataAccessError("get loading records", err)
	}

	var unloading []unloadingRow
	err = db.Raw(`
		SELECT id, conditions, unloaded_at
		FROM unloading_records
		WHERE ogpl_id = ?
	`, id).Scan(&unloading).Error
	if err != nil {
		return GetOGPLQueryResponse{}, errs.NewDataAccessError("get unloading record", err)
	}

	resp, err := sheetResponse(sheets[0], loading)
	if err != nil {
		return GetOGPLQueryResponse{}, errs.NewDataAccessError("read ogpl", err)
	}
	if len(unloading) > 0 {
		record, recordErr := unloadingResponse(unloading[0], loading)
		if recordErr != nil {
			return GetOGPLQueryResponse{}, errs.NewDataAccessError("read unloading record", recordErr)
		}
		resp.Unloading = &record
	}
	return resp, nil
}

func sheetResponse(row ogplRow, loading []loadingRow) (GetOGPLQueryResponse, error) {
	resp := GetOGPLQueryResponse{
		Number:         row.Number,
		Status:         row.Status,
		VehicleNumber:  row.VehicleNumber,
		DriverName:     row.DriverName,
		CreatedAt:      row.CreatedAt.UTC(),
		UpdatedAt:      row.UpdatedAt.UTC(),
		LoadingRecords: make([]LoadingRecordResponse, 0, len(loading)),
	}

	var err error
	if resp.ID, err = kernel.UUIDFromBytes(row.ID[:]); err != nil {
		return GetOGPLQueryResponse{}, err
	}
	if resp.OrganizationID, err = kernel.UUIDFromBytes(row.OrganizationID[:]); err != nil {
		return GetOGPLQueryResponse{}, err
	}
	if resp.FromBranchID, err = optionalUUID(row.FromBranchID); err != nil {
		return GetOGPLQueryResponse{}, err
	}
	if resp.ToBranchID, err = optionalUUID(row.ToBranchID); err != nil {
		return GetOGPLQueryResponse{}, err
	}

	for _, l := range loading {
		recordID, idErr := kernel.UUIDFromBytes(l.ID[:])
		if idErr != nil {
			return GetOGPLQueryResponse{}, idErr
		}
		bookingID, idErr := kernel.UUIDFromBytes(l.BookingID[:])
		if idErr != nil {
			return GetOGPLQueryResponse{}, idErr
		}
		resp.LoadingRecords = append(resp.LoadingRecords, LoadingRecordResponse{
			ID:            recordID,
			BookingID:     bookingID,
			LRNumber:      l.LRNumber,
			BookingStatus: l.BookingStatus,
			LoadedAt:      l.LoadedAt.UTC(),
		})
	}
	return resp, nil
}

// unloadingResponse lists conditions in load order; conditions for
// bookings not on the sheet follow, sorted by id.
func unloadingResponse(row unloadingRow, loading []loadingRow) (UnloadingRecordResponse, error) {
	var raw map[string]conditionJSON
	if err := json.Unmarshal([]byte(row.Conditions), &raw); err != nil {
		return UnloadingRecordResponse{}, err
	}

	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return UnloadingRecordResponse{}, err
	}

	order := make([]string, 0, len(raw))
	listed := make(map[string]struct{}, len(raw))
	for _, l := range loading {
		key := l.BookingID.String()
		if _, ok := raw[key]; ok {
			order = append(order, key)
			listed[key] = struct{}{}
		}
	}
	var rest []string
	for key := range raw {
		if _, ok := listed[key]; !ok {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	order = append(order, rest...)

	conditions := make([]ConditionResponse, 0, len(order))
	for _, key := range order {
		bookingID, idErr := kernel.UUIDFromString(key)
		if idErr != nil {
			return UnloadingRecordResponse{}, idErr
		}
		c := raw[key]
		conditions = append(conditions, ConditionResponse{
			BookingID: bookingID,
			Status:    c.Status,
			Remarks:   c.Remarks,
			Photo:     c.Photo,
		})
	}

	return UnloadingRecordResponse{
		ID:         id,
		UnloadedAt: row.UnloadedAt.UTC(),
		Conditions: conditions,
	}, nil
}
