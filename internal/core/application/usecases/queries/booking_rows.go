package queries

import (
	"database/sql"

	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

const bookingColumns = `
	id,
	organization_id,
	lr_number,
	lr_type,
	status,
	origin_branch_id,
	destination_branch_id,
	sender,
	receiver,
	article,
	quantity,
	weight_kg,
	freight_charge,
	other_charges,
	created_at,
	updated_at`

// scanBooking reads one row selected with bookingColumns.
func scanBooking(rows *sql.Rows) (BookingResponse, error) {
	var (
		b                   BookingResponse
		id, org             uuid.UUID
		origin, destination uuid.NullUUID
	)

	err := rows.Scan(
		&id,
		&org,
		&b.LRNumber,
		&b.LRType,
		&b.Status,
		&origin,
		&destination,
		&b.Sender,
		&b.Receiver,
		&b.Article,
		&b.Quantity,
		&b.WeightKg,
		&b.FreightCharge,
		&b.OtherCharges,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return BookingResponse{}, err
	}

	if b.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return BookingResponse{}, err
	}
	if b.OrganizationID, err = kernel.UUIDFromBytes(org[:]); err != nil {
		return BookingResponse{}, err
	}
	if b.OriginBranchID, err = optionalUUID(origin); err != nil {
		return BookingResponse{}, err
	}
	if b.DestinationBranchID, err = optionalUUID(destination); err != nil {
		return BookingResponse{}, err
	}
	b.CreatedAt = b.CreatedAt.UTC()
	b.UpdatedAt = b.UpdatedAt.UTC()
	return b, nil
}

func optionalUUID(id uuid.NullUUID) (*kernel.UUID, error) {
	if !id.Valid {
		return nil, nil
	}
	parsed, err := kernel.UUIDFromBytes(id.UUID[:])
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
