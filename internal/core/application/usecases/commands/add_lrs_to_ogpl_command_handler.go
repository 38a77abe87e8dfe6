package commands

import (
	"context"
	"time"

	"freight/internal/core/domain/model/ogpl"
	"freight/internal/core/domain/services"
)

// AddLRsToOGPLCommandHandler applies the whole-batch loading rule: either
// every booking is loaded and moved to InTransit, or nothing changes.
type AddLRsToOGPLCommandHandler struct {
	uowFactory UoWFactory
	reconciler services.Reconciler
	now        func() time.Time
}

func NewAddLRsToOGPLCommandHandler(uowFactory UoWFactory, now func() time.Time) AddLRsToOGPLCommandHandler {
	return AddLRsToOGPLCommandHandler{
		uowFactory: uowFactory,
		reconciler: services.NewReconciler(),
		now:        now,
	}
}

// Handle returns the loading records created for the batch.
func (h AddLRsToOGPLCommandHandler) Handle(ctx context.Context, cmd AddLRsToOGPLCommand) ([]ogpl.LoadingRecord, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sheetRepo := uow.OGPLRepository()
	bookingRepo := uow.BookingRepository()

	sheet, err := sheetRepo.Get(ctx, cmd.OGPLID())
	if err != nil {
		return nil, err
	}

	bookings, err := bookingRepo.GetMany(ctx, cmd.BookingIDs())
	if err != nil {
		return nil, err
	}

	records, err := h.reconciler.Load(sheet, bookings, cmd.BookingIDs(), h.now())
	if err != nil {
		return nil, err
	}

	if err = sheetRepo.Update(ctx, sheet); err != nil {
		return nil, err
	}

	for _, b := range bookings {
		if err = bookingRepo.Update(ctx, b); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return records, nil
}
