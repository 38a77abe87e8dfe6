package commands

import (
	"context"
	"time"

	"freight/internal/core/domain/model/booking"
)

// CancelBookingCommandHandler moves a booking to Cancelled.
type CancelBookingCommandHandler struct {
	uowFactory BookingUoWFactory
	now        func() time.Time
}

func NewCancelBookingCommandHandler(uowFactory BookingUoWFactory, now func() time.Time) CancelBookingCommandHandler {
	return CancelBookingCommandHandler{
		uowFactory: uowFactory,
		now:        now,
	}
}

func (h CancelBookingCommandHandler) Handle(ctx context.Context, cmd CancelBookingCommand) (*booking.Booking, error) {
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

	repo := uow.BookingRepository()

	b, err := repo.Get(ctx, cmd.BookingID())
	if err != nil {
		return nil, err
	}

	if err = b.Cancel(h.now()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, b); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return b, nil
}
