package commands

import (
	"context"
	"errors"
	"fmt"

	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"

	"go.uber.org/zap"
)

// DefaultMaxAttempts bounds how often creation handlers retry after a
// number clash.
const DefaultMaxAttempts = 5

// CreateBookingCommandHandler assigns an LR number and stores the booking.
// Generated numbers that collide with a concurrent insert are regenerated
// up to maxAttempts times; a colliding manual number fails immediately.
type CreateBookingCommandHandler struct {
	uowFactory  BookingUoWFactory
	generator   NumberGenerator
	maxAttempts int
	logger      *zap.Logger
}

func NewCreateBookingCommandHandler(
	uowFactory BookingUoWFactory,
	generator NumberGenerator,
	maxAttempts int,
	logger *zap.Logger,
) CreateBookingCommandHandler {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return CreateBookingCommandHandler{
		uowFactory:  uowFactory,
		generator:   generator,
		maxAttempts: maxAttempts,
		logger:      logger.With(zap.String("handler", "create_booking")),
	}
}

func (h CreateBookingCommandHandler) Handle(ctx context.Context, cmd CreateBookingCommand) (*booking.Booking, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	attempts := h.maxAttempts
	if cmd.IsManual() {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		b, err := h.create(ctx, cmd)
		if err == nil {
			return b, nil
		}
		if !errors.Is(err, ports.ErrDuplicateIdentifier) {
			return nil, err
		}

		lastErr = err
		h.logger.Warn("lr number already taken",
			zap.Int("attempt", attempt),
			zap.Bool("manual", cmd.IsManual()),
			zap.Error(err))
	}

	if cmd.IsManual() {
		return nil, lastErr
	}
	return nil, fmt.Errorf("no free lr number after %d attempts: %w", attempts, lastErr)
}

func (h CreateBookingCommandHandler) create(ctx context.Context, cmd CreateBookingCommand) (*booking.Booking, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.BookingRepository()

	lrNumber, lrType := cmd.ManualLRNumber(), booking.Manual
	if !cmd.IsManual() {
		generated, err := h.generator.NextLRNumber(ctx, repo, cmd.OrganizationID(), cmd.OriginBranchID())
		if err != nil {
			return nil, err
		}
		lrNumber, lrType = generated, booking.System
	}

	b, err := booking.NewBooking(
		kernel.NewUUID(),
		cmd.OrganizationID(),
		lrNumber,
		lrType,
		cmd.OriginBranchID(),
		cmd.DestinationBranchID(),
		cmd.Consignment(),
		h.generator.Now(),
	)
	if err != nil {
		return nil, err
	}

	if err = repo.Add(ctx, b); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return b, nil
}
