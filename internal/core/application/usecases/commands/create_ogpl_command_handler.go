package commands

import (
	"context"
	"errors"
	"fmt"

	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/ogpl"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"

	"go.uber.org/zap"
)

// CreateOGPLCommandHandler numbers and stores a new loading sheet. Initial
// bookings go through the same whole-batch loading rules as AddLRsToOGPL.
type CreateOGPLCommandHandler struct {
	uowFactory  UoWFactory
	generator   NumberGenerator
	reconciler  services.Reconciler
	maxAttempts int
	logger      *zap.Logger
}

func NewCreateOGPLCommandHandler(
	uowFactory UoWFactory,
	generator NumberGenerator,
	maxAttempts int,
	logger *zap.Logger,
) CreateOGPLCommandHandler {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return CreateOGPLCommandHandler{
		uowFactory:  uowFactory,
		generator:   generator,
		reconciler:  services.NewReconciler(),
		maxAttempts: maxAttempts,
		logger:      logger.With(zap.String("handler", "create_ogpl")),
	}
}

func (h CreateOGPLCommandHandler) Handle(ctx context.Context, cmd CreateOGPLCommand) (*ogpl.OGPL, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= h.maxAttempts; attempt++ {
		sheet, err := h.create(ctx, cmd)
		if err == nil {
			return sheet, nil
		}
		if !errors.Is(err, ports.ErrDuplicateIdentifier) {
			return nil, err
		}

		lastErr = err
		h.logger.Warn("ogpl number already taken", zap.Int("attempt", attempt), zap.Error(err))
	}

	return nil, fmt.Errorf("no free ogpl number after %d attempts: %w", h.maxAttempts, lastErr)
}

func (h CreateOGPLCommandHandler) create(ctx context.Context, cmd CreateOGPLCommand) (*ogpl.OGPL, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sheetRepo := uow.OGPLRepository()

	number, err := h.generator.NextOGPLNumber(ctx, sheetRepo, cmd.OrganizationID())
	if err != nil {
		return nil, err
	}

	now := h.generator.Now()
	sheet, err := ogpl.NewOGPL(
		kernel.NewUUID(),
		cmd.OrganizationID(),
		number,
		cmd.VehicleNumber(),
		cmd.DriverName(),
		cmd.FromBranchID(),
		cmd.ToBranchID(),
		now,
	)
	if err != nil {
		return nil, err
	}

	bookingRepo := uow.BookingRepository()
	bookingIDs := cmd.BookingIDs()

	var bookings []*booking.Booking
	if len(bookingIDs) > 0 {
		if bookings, err = bookingRepo.GetMany(ctx, bookingIDs); err != nil {
			return nil, err
		}
		if _, err = h.reconciler.Load(sheet, bookings, bookingIDs, now); err != nil {
			return nil, err
		}
	}

	if err = sheetRepo.Add(ctx, sheet); err != nil {
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

	return sheet, nil
}
