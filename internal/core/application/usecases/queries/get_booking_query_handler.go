package queries

import (
	"context"

	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetBookingQueryHandler reads one booking without locking it.
type GetBookingQueryHandler struct {
	db *gorm.DB
}

func NewGetBookingQueryHandler(db *gorm.DB) GetBookingQueryHandler {
	return GetBookingQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError for an unknown id.
func (h GetBookingQueryHandler) Handle(ctx context.Context, query GetBookingQuery) (BookingResponse, error) {
	if err := query.Validate(); err != nil {
		return BookingResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT`+bookingColumns+`
		FROM bookings
		WHERE id = ?
	`, query.BookingID().String()).Rows()
	if err != nil {
		return BookingResponse{}, errs.NewDataAccessError("get booking", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return BookingResponse{}, errs.NewDataAccessError("get booking", err)
		}
		return BookingResponse{}, errs.NewObjectNotFoundError("booking", query.BookingID().String())
	}

	booking, err := scanBooking(rows)
	if err != nil {
		return BookingResponse{}, errs.NewDataAccessError("scan booking", err)
	}
	return booking, nil
}
