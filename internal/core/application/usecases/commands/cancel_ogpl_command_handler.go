package commands

import (
	"context"
	"time"

	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/ogpl"
	"freight/internal/core/domain/services"
)

// CancelOGPLCommandHandler cancels a sheet and releases its in-transit
// bookings back to Booked in the same transaction.
type CancelOGPLCommandHandler struct {
	uowFactory UoWFactory
	reconciler services.Reconciler
	now        func() time.Time
}

func NewCancelOGPLCommandHandler(uowFactory UoWFactory, now func() time.Time) CancelOGPLCommandHandler {
	return CancelOGPLCommandHandler{
		uowFactory: uowFactory,
		reconciler: services.NewReconciler(),
		now:        now,
	}
}

// Handle returns the cancelled sheet and the bookings that were released.
func (h CancelOGPLCommandHandler) Handle(
	ctx context.Context,
	cmd CancelOGPLCommand,
) (*ogpl.OGPL, []*booking.Booking, error) {
	if err := cmd.Validate(); err != nil {
		return nil, nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sheetRepo := uow.OGPLRepository()
	bookingRepo := uow.BookingRepository()

	sheet, err := sheetRepo.Get(ctx, cmd.OGPLID())
	if err != nil {
		return nil, nil, err
	}

	var bookings []*booking.Booking
	if ids := sheet.BookingIDs(); len(ids) > 0 {
		if bookings, err = bookingRepo.GetMany(ctx, ids); err != nil {
			return nil, nil, err
		}
	}

	released, err := h.reconciler.Release(sheet, bookings, h.now())
	if err != nil {
		return nil, nil, err
	}

	if err = sheetRepo.Update(ctx, sheet); err != nil {
		return nil, nil, err
	}

	for _, b := range released {
		if err = bookingRepo.Update(ctx, b); err != nil {
			return nil, nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}

	return sheet, released, nil
}
