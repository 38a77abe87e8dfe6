package ports

import (
	"context"

	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/kernel"
)

// BookingRepository defines the persistence contract for booking aggregates.
type BookingRepository interface {
	// Add inserts a new booking. A clash on (organization, lr_number) is
	// reported as a DataAccessError wrapping ErrDuplicateIdentifier.
	Add(ctx context.Context, aggregate *booking.Booking) error

	// Update persists status and timestamp changes of an existing booking.
	Update(ctx context.Context, aggregate *booking.Booking) error

	// Get loads one booking and locks its row for the current transaction.
	// A missing booking is reported as errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*booking.Booking, error)

	// GetMany loads and locks the given bookings. Ids with no row are
	// absent from the result; callers decide whether that is an error.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*booking.Booking, error)

	// LatestLRNumber returns the greatest LR number of the organization made
	// of prefix and a numeric suffix, manual or generated, or nil when there
	// is none. A longer suffix counts as greater.
	LatestLRNumber(ctx context.Context, organizationID kernel.UUID, prefix string) (*string, error)
}
