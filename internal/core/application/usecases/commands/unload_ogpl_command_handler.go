package commands

import (
	"context"
	"fmt"
	"time"

	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/ogpl"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"

	"go.uber.org/zap"
)

// DeliveryResult is what happened to one booking during unloading.
type DeliveryResult int

const (
	// Delivered: the booking is now Delivered.
	Delivered DeliveryResult = iota + 1
	// NotDelivered: the booking was reported missing and kept its status.
	NotDelivered
	// Failed: the update failed and was rolled back on its own; the rest of
	// the unloading stands. The caller may retry the booking.
	Failed
)

func (r DeliveryResult) String() string {
	switch r {
	case Delivered:
		return "delivered"
	case NotDelivered:
		return "not_delivered"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// BookingOutcome reports the result for one unloaded booking.
type BookingOutcome struct {
	BookingID kernel.UUID
	LRNumber  string
	Result    DeliveryResult
	Err       error
}

// UnloadOGPLResult is the closed sheet with its per-booking outcomes, in
// the order the bookings were listed.
type UnloadOGPLResult struct {
	Sheet    *ogpl.OGPL
	Record   ogpl.UnloadingRecord
	Outcomes []BookingOutcome
}

// Failures returns the outcomes that need a retry.
func (r UnloadOGPLResult) Failures() []BookingOutcome {
	var failed []BookingOutcome
	for _, o := range r.Outcomes {
		if o.Result == Failed {
			failed = append(failed, o)
		}
	}
	return failed
}

// UnloadOGPLCommandHandler completes a sheet from its unloading report.
//
// All validation happens before any write. Once valid, the unloading record
// and the sheet completion are written, then each deliverable booking is
// updated inside its own savepoint: a failing booking is rolled back to its
// savepoint, logged and reported as Failed, while the sheet completion and
// the other bookings are committed.
type UnloadOGPLCommandHandler struct {
	uowFactory UoWFactory
	reconciler services.Reconciler
	now        func() time.Time
	logger     *zap.Logger
}

func NewUnloadOGPLCommandHandler(uowFactory UoWFactory, now func() time.Time, logger *zap.Logger) UnloadOGPLCommandHandler {
	return UnloadOGPLCommandHandler{
		uowFactory: uowFactory,
		reconciler: services.NewReconciler(),
		now:        now,
		logger:     logger.With(zap.String("handler", "unload_ogpl")),
	}
}

func (h UnloadOGPLCommandHandler) Handle(ctx context.Context, cmd UnloadOGPLCommand) (UnloadOGPLResult, error) {
	if err := cmd.Validate(); err != nil {
		return UnloadOGPLResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return UnloadOGPLResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sheetRepo := uow.OGPLRepository()
	bookingRepo := uow.BookingRepository()

	sheet, err := sheetRepo.Get(ctx, cmd.OGPLID())
	if err != nil {
		return UnloadOGPLResult{}, err
	}

	bookings, err := bookingRepo.GetMany(ctx, cmd.BookingIDs())
	if err != nil {
		return UnloadOGPLResult{}, err
	}

	now := h.now()
	plan, err := h.reconciler.PrepareUnload(sheet, bookings, cmd.BookingIDs(), cmd.Conditions(), now)
	if err != nil {
		return UnloadOGPLResult{}, err
	}

	if err = sheetRepo.Update(ctx, sheet); err != nil {
		return UnloadOGPLResult{}, err
	}

	lrNumbers := make(map[kernel.UUID]string, len(bookings))
	for _, b := range bookings {
		lrNumbers[b.ID()] = b.LRNumber()
	}

	outcomes := make(map[kernel.UUID]BookingOutcome, len(bookings))
	for _, id := range plan.Missing {
		outcomes[id] = BookingOutcome{BookingID: id, LRNumber: lrNumbers[id], Result: NotDelivered}
	}

	for i, b := range plan.Deliver {
		outcome := BookingOutcome{BookingID: b.ID(), LRNumber: b.LRNumber(), Result: Delivered}

		savePoint := fmt.Sprintf("deliver_%d", i)
		if err = uow.SavePoint(ctx, savePoint); err != nil {
			return UnloadOGPLResult{}, err
		}

		if deliverErr := h.deliver(ctx, bookingRepo, b, now); deliverErr != nil {
			if err = uow.RollbackTo(ctx, savePoint); err != nil {
				return UnloadOGPLResult{}, err
			}
			h.logger.Warn("booking not delivered during unloading",
				zap.String("ogpl_id", sheet.ID().String()),
				zap.String("ogpl_number", sheet.Number()),
				zap.String("booking_id", b.ID().String()),
				zap.String("lr_number", b.LRNumber()),
				zap.Error(deliverErr))
			outcome.Result = Failed
			outcome.Err = deliverErr
		}
		outcomes[b.ID()] = outcome
	}

	if err = uow.Commit(ctx); err != nil {
		return UnloadOGPLResult{}, err
	}

	result := UnloadOGPLResult{Sheet: sheet, Record: plan.Record}
	for _, id := range cmd.BookingIDs() {
		result.Outcomes = append(result.Outcomes, outcomes[id])
	}
	return result, nil
}

func (h UnloadOGPLCommandHandler) deliver(
	ctx context.Context,
	repo ports.BookingRepository,
	b *booking.Booking,
	now time.Time,
) error {
	if err := b.Deliver(now); err != nil {
		return err
	}
	return repo.Update(ctx, b)
}
