package queries

import (
	"context"

	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// ListBookingsQueryHandler serves the booking register. It reads through
// idx_bookings_org_status.
type ListBookingsQueryHandler struct {
	db *gorm.DB
}

func NewListBookingsQueryHandler(db *gorm.DB) ListBookingsQueryHandler {
	return ListBookingsQueryHandler{db: db}
}

func (h ListBookingsQueryHandler) Handle(ctx context.Context, query ListBookingsQuery) ([]BookingResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `SELECT` + bookingColumns + `
		FROM bookings
		WHERE organization_id = ?`
	args := []any{query.OrganizationID().String()}
	if status, ok := query.Status(); ok {
		sql += ` AND status = ?`
		args = append(args, status.String())
	}
	sql += `
		ORDER BY created_at DESC, lr_number DESC
		LIMIT ? OFFSET ?`
	args = append(args, query.Limit(), query.Offset())

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, errs.NewDataAccessError("list bookings", err)
	}
	defer rows.Close()

	bookings := make([]BookingResponse, 0)
	for rows.Next() {
		b, scanErr := scanBooking(rows)
		if scanErr != nil {
			return nil, errs.NewDataAccessError("scan booking", scanErr)
		}
		bookings = append(bookings, b)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewDataAccessError("list bookings", err)
	}
	return bookings, nil
}
