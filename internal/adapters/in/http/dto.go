package http

import (
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/ogpl"
	"freight/internal/core/ports"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type NumberResponse struct {
	Number string `json:"number"`
}

type NewBooking struct {
	OrganizationID      string  `json:"organization_id" validate:"required,uuid"`
	OriginBranchID      *string `json:"origin_branch_id,omitempty" validate:"omitempty,uuid"`
	DestinationBranchID *string `json:"destination_branch_id,omitempty" validate:"omitempty,uuid"`
	// LRNumber is set for pre-printed receipts; empty means generate.
	LRNumber      string  `json:"lr_number,omitempty" validate:"omitempty,max=32"`
	Sender        string  `json:"sender" validate:"required,max=200"`
	Receiver      string  `json:"receiver" validate:"required,max=200"`
	Article       string  `json:"article" validate:"required,max=200"`
	Quantity      int     `json:"quantity" validate:"gte=1"`
	WeightKg      float64 `json:"weight_kg" validate:"gte=0"`
	FreightCharge float64 `json:"freight_charge" validate:"gte=0"`
	OtherCharges  float64 `json:"other_charges" validate:"gte=0"`
}

type Booking struct {
	ID                  string    `json:"id"`
	OrganizationID      string    `json:"organization_id"`
	LRNumber            string    `json:"lr_number"`
	LRType              string    `json:"lr_type"`
	Status              string    `json:"status"`
	OriginBranchID      *string   `json:"origin_branch_id,omitempty"`
	DestinationBranchID *string   `json:"destination_branch_id,omitempty"`
	Sender              string    `json:"sender"`
	Receiver            string    `json:"receiver"`
	Article             string    `json:"article"`
	Quantity            int       `json:"quantity"`
	WeightKg            float64   `json:"weight_kg"`
	FreightCharge       float64   `json:"freight_charge"`
	OtherCharges        float64   `json:"other_charges"`
	Total               float64   `json:"total"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// BookingSummary is a search hit. Charges are not indexed.
type BookingSummary struct {
	ID                  string    `json:"id"`
	OrganizationID      string    `json:"organization_id"`
	LRNumber            string    `json:"lr_number"`
	LRType              string    `json:"lr_type"`
	Status              string    `json:"status"`
	OriginBranchID      string    `json:"origin_branch_id,omitempty"`
	DestinationBranchID string    `json:"destination_branch_id,omitempty"`
	Sender              string    `json:"sender"`
	Receiver            string    `json:"receiver"`
	Article             string    `json:"article"`
	Quantity            int       `json:"quantity"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type NewOGPL struct {
	OrganizationID string   `json:"organization_id" validate:"required,uuid"`
	VehicleNumber  string   `json:"vehicle_number" validate:"required,max=32"`
	DriverName     string   `json:"driver_name,omitempty" validate:"max=200"`
	FromBranchID   *string  `json:"from_branch_id,omitempty" validate:"omitempty,uuid"`
	ToBranchID     *string  `json:"to_branch_id,omitempty" validate:"omitempty,uuid"`
	BookingIDs     []string `json:"booking_ids,omitempty" validate:"max=500,dive,uuid"`
}

type LoadBookings struct {
	BookingIDs []string `json:"booking_ids" validate:"required,min=1,max=500,dive,uuid"`
}

type ConditionReport struct {
	Status  string `json:"status" validate:"required,oneof=good damaged missing"`
	Remarks string `json:"remarks,omitempty" validate:"max=1000"`
	Photo   string `json:"photo,omitempty" validate:"max=2048"`
}

type UnloadReport struct {
	BookingIDs []string                   `json:"booking_ids" validate:"required,min=1,max=500,dive,uuid"`
	Conditions map[string]ConditionReport `json:"conditions" validate:"required,dive,keys,uuid,endkeys"`
}

type OGPL struct {
	ID             string          `json:"id"`
	OrganizationID string          `json:"organization_id"`
	Number         string          `json:"number"`
	Status         string          `json:"status"`
	VehicleNumber  string          `json:"vehicle_number"`
	DriverName     string          `json:"driver_name,omitempty"`
	FromBranchID   *string         `json:"from_branch_id,omitempty"`
	ToBranchID     *string         `json:"to_branch_id,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	LoadingRecords []LoadingRecord `json:"loading_records"`
	Unloading      *Unloading      `json:"unloading,omitempty"`
}

type LoadingRecord struct {
	ID            string    `json:"id"`
	BookingID     string    `json:"booking_id"`
	LRNumber      string    `json:"lr_number,omitempty"`
	BookingStatus string    `json:"booking_status,omitempty"`
	LoadedAt      time.Time `json:"loaded_at"`
}

type Unloading struct {
	ID         string      `json:"id"`
	UnloadedAt time.Time   `json:"unloaded_at"`
	Conditions []Condition `json:"conditions"`
}

type Condition struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
	Remarks   string `json:"remarks,omitempty"`
	Photo     string `json:"photo,omitempty"`
}

type UnloadResult struct {
	OGPL     OGPL             `json:"ogpl"`
	Outcomes []BookingOutcome `json:"outcomes"`
}

type BookingOutcome struct {
	BookingID string `json:"booking_id"`
	LRNumber  string `json:"lr_number"`
	Result    string `json:"result"`
	Error     string `json:"error,omitempty"`
}

type CancelOGPLResult struct {
	OGPL     OGPL     `json:"ogpl"`
	Released []string `json:"released_booking_ids"`
}

func parseUUID(name, raw string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, invalidParam(name, err)
	}
	return id, nil
}

func parseOptionalUUID(name string, raw *string) (*kernel.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := parseUUID(name, *raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseUUIDs(name string, raw []string) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := parseUUID(name, r)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func optionalString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func (r NewBooking) consignment() booking.Consignment {
	return booking.Consignment{
		Sender:        r.Sender,
		Receiver:      r.Receiver,
		Article:       r.Article,
		Quantity:      r.Quantity,
		WeightKg:      r.WeightKg,
		FreightCharge: r.FreightCharge,
		OtherCharges:  r.OtherCharges,
	}
}

func (r UnloadReport) conditions() (map[kernel.UUID]ogpl.Condition, error) {
	conditions := make(map[kernel.UUID]ogpl.Condition, len(r.Conditions))
	for raw, report := range r.Conditions {
		id, err := parseUUID("conditions", raw)
		if err != nil {
			return nil, err
		}
		status, err := ogpl.ParseConditionStatus(report.Status)
		if err != nil {
			return nil, err
		}
		condition, err := ogpl.NewCondition(status, report.Remarks, report.Photo)
		if err != nil {
			return nil, err
		}
		conditions[id] = condition
	}
	return conditions, nil
}

func bookingFromAggregate(b *booking.Booking) Booking {
	c := b.Consignment()
	return Booking{
		ID:                  b.ID().String(),
		OrganizationID:      b.OrganizationID().String(),
		LRNumber:            b.LRNumber(),
		LRType:              b.LRType().String(),
		Status:              b.Status().String(),
		OriginBranchID:      optionalString(b.OriginBranchID()),
		DestinationBranchID: optionalString(b.DestinationBranchID()),
		Sender:              c.Sender,
		Receiver:            c.Receiver,
		Article:             c.Article,
		Quantity:            c.Quantity,
		WeightKg:            c.WeightKg,
		FreightCharge:       c.FreightCharge,
		OtherCharges:        c.OtherCharges,
		Total:               c.Total(),
		CreatedAt:           b.CreatedAt(),
		UpdatedAt:           b.UpdatedAt(),
	}
}

func bookingFromResponse(r queries.BookingResponse) Booking {
	return Booking{
		ID:                  r.ID.String(),
		OrganizationID:      r.OrganizationID.String(),
		LRNumber:            r.LRNumber,
		LRType:              r.LRType,
		Status:              r.Status,
		OriginBranchID:      optionalString(r.OriginBranchID),
		DestinationBranchID: optionalString(r.DestinationBranchID),
		Sender:              r.Sender,
		Receiver:            r.Receiver,
		Article:             r.Article,
		Quantity:            r.Quantity,
		WeightKg:            r.WeightKg,
		FreightCharge:       r.FreightCharge,
		OtherCharges:        r.OtherCharges,
		Total:               r.Total(),
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

func bookingFromDocument(d ports.BookingDocument) BookingSummary {
	return BookingSummary{
		ID:                  d.ID,
		OrganizationID:      d.OrganizationID,
		LRNumber:            d.LRNumber,
		LRType:              d.LRType,
		Status:              d.Status,
		OriginBranchID:      d.OriginBranchID,
		DestinationBranchID: d.DestinationBranchID,
		Sender:              d.Sender,
		Receiver:            d.Receiver,
		Article:             d.Article,
		Quantity:            d.Quantity,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}

func ogplFromAggregate(sheet *ogpl.OGPL) OGPL {
	response := OGPL{
		ID:             sheet.ID().String(),
		OrganizationID: sheet.OrganizationID().String(),
		Number:         sheet.Number(),
		Status:         sheet.Status().String(),
		VehicleNumber:  sheet.VehicleNumber(),
		DriverName:     sheet.DriverName(),
		FromBranchID:   optionalString(sheet.FromBranchID()),
		ToBranchID:     optionalString(sheet.ToBranchID()),
		CreatedAt:      sheet.CreatedAt(),
		UpdatedAt:      sheet.UpdatedAt(),
		LoadingRecords: loadingRecords(sheet.LoadingRecords()),
	}
	if record := sheet.UnloadingRecord(); record != nil {
		unloading := unloadingFromRecord(*record, sheet.BookingIDs())
		response.Unloading = &unloading
	}
	return response
}

func loadingRecords(records []ogpl.LoadingRecord) []LoadingRecord {
	response := make([]LoadingRecord, 0, len(records))
	for _, r := range records {
		response = append(response, LoadingRecord{
			ID:        r.ID().String(),
			BookingID: r.BookingID().String(),
			LoadedAt:  r.LoadedAt(),
		})
	}
	return response
}

// unloadingFromRecord lists conditions in load order.
func unloadingFromRecord(record ogpl.UnloadingRecord, loadOrder []kernel.UUID) Unloading {
	conditions := make([]Condition, 0, len(loadOrder))
	for _, id := range loadOrder {
		c, ok := record.Condition(id)
		if !ok {
			continue
		}
		conditions = append(conditions, Condition{
			BookingID: id.String(),
			Status:    c.Status.String(),
			Remarks:   c.Remarks,
			Photo:     c.Photo,
		})
	}
	return Unloading{
		ID:         record.ID().String(),
		UnloadedAt: record.UnloadedAt(),
		Conditions: conditions,
	}
}

func ogplFromResponse(r queries.GetOGPLQueryResponse) OGPL {
	response := OGPL{
		ID:             r.ID.String(),
		OrganizationID: r.OrganizationID.String(),
		Number:         r.Number,
		Status:         r.Status,
		VehicleNumber:  r.VehicleNumber,
		DriverName:     r.DriverName,
		FromBranchID:   optionalString(r.FromBranchID),
		ToBranchID:     optionalString(r.ToBranchID),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
		LoadingRecords: make([]LoadingRecord, 0, len(r.LoadingRecords)),
	}
	for _, lr := range r.LoadingRecords {
		response.LoadingRecords = append(response.LoadingRecords, LoadingRecord{
			ID:            lr.ID.String(),
			BookingID:     lr.BookingID.String(),
			LRNumber:      lr.LRNumber,
			BookingStatus: lr.BookingStatus,
			LoadedAt:      lr.LoadedAt,
		})
	}
	if r.Unloading != nil {
		unloading := Unloading{
			ID:         r.Unloading.ID.String(),
			UnloadedAt: r.Unloading.UnloadedAt,
			Conditions: make([]Condition, 0, len(r.Unloading.Conditions)),
		}
		for _, c := range r.Unloading.Conditions {
			unloading.Conditions = append(unloading.Conditions, Condition{
				BookingID: c.BookingID.String(),
				Status:    c.Status,
				Remarks:   c.Remarks,
				Photo:     c.Photo,
			})
		}
		response.Unloading = &unloading
	}
	return response
}

func outcomes(result commands.UnloadOGPLResult) []BookingOutcome {
	response := make([]BookingOutcome, 0, len(result.Outcomes))
	for _, o := range result.Outcomes {
		outcome := BookingOutcome{
			BookingID: o.BookingID.String(),
			LRNumber:  o.LRNumber,
			Result:    o.Result.String(),
		}
		if o.Err != nil {
			outcome.Error = publicMessage(o.Err)
		}
		response = append(response, outcome)
	}
	return response
}
