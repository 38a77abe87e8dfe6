package commands_test

import (
	"errors"
	"testing"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/ogpl"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// inTransitSheet returns a departed sheet carrying the given bookings.
func inTransitSheet(t *testing.T, org kernel.UUID, bookings ...*booking.Booking) *ogpl.OGPL {
	t.Helper()

	sheet := newSheet(org)
	_, err := sheet.Load(idsOf(bookings...), fixedNow.Add(-50*time.Minute))
	require.NoError(t, err)
	for _, b := range bookings {
		require.NoError(t, b.Load(fixedNow.Add(-50*time.Minute)))
		b.ClearDomainEvents()
	}
	require.NoError(t, sheet.Depart(fixedNow.Add(-40*time.Minute)))
	sheet.ClearDomainEvents()
	return sheet
}

func condition(t *testing.T, status ogpl.ConditionStatus, remarks string) ogpl.Condition {
	t.Helper()

	c, err := ogpl.NewCondition(status, remarks, "")
	require.NoError(t, err)
	return c
}

func TestCreateOGPLCommandHandler_Handle_WithInitialBookings(t *testing.T) {
	ctx := t.Context()
	org := kernel.NewUUID()
	b1, b2 := newBooking(org, "DC2501-0001"), newBooking(org, "DC2501-0002")
	cmd, err := commands.NewCreateOGPLCommand(org, "mh12ab1234", "Ramesh", nil, nil, idsOf(b1, b2))
	require.NoError(t, err)

	sheetRepo := new(MockOGPLRepository)
	bookingRepo := new(MockBookingRepository)
	uow := new(MockUoW)
	gen := new(MockNumberGenerator)
	factory := new(MockUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OGPLRepository").Return(sheetRepo).Once(),
		gen.On("NextOGPLNumber", ctx, sheetRepo, org).Return("OGPL-20250115-0002", nil).Once(),
		uow.On("BookingRepository").Return(bookingRepo).Once(),
		bookingRepo.On("GetMany", ctx, idsOf(b1, b2)).Return([]*booking.Booking{b1, b2}, nil).Once(),
		sheetRepo.On("Add", ctx, mock.AnythingOfType("*ogpl.OGPL")).Return(nil).Once(),
		bookingRepo.On("Update", ctx, b1).Return(nil).Once(),
		bookingRepo.On("Update", ctx, b2).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewCreateOGPLCommandHandler(factory, gen, 3, zap.NewNop())
	sheet, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "OGPL-20250115-0002", sheet.Number())
	assert.Equal(t, "MH12AB1234", sheet.VehicleNumber())
	assert.Equal(t, ogpl.Created, sheet.Status())
	assert.Equal(t, idsOf(b1, b2), sheet.BookingIDs())
	assert.Equal(t, booking.InTransit, b1.Status())
	assert.Equal(t, booking.InTransit, b2.Status())
	uow.AssertExpectations(t)
	sheetRepo.AssertExpectations(t)
	bookingRepo.AssertExpectations(t)
}

func TestCreateOGPLCommandHandler_Handle_RejectsWholeBatch(t *testing.T) {
	ctx := t.Context()
	org := kernel.NewUUID()
	booked := newBooking(org, "DC2501-0001")
	cancelled := newBooking(org, "DC2501-0002")
	require.NoError(t, cancelled.Cancel(fixedNow))
	cmd, err := commands.NewCreateOGPLCommand(org, "MH12AB1234", "", nil, nil, idsOf(booked, cancelled))
	require.NoError(t, err)

	sheetRepo := new(MockOGPLRepository)
	bookingRepo := new(MockBookingRepository)
	uow := new(MockUoW)
	gen := new(MockNumberGenerator)
	factory := new(MockUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OGPLRepository").Return(sheetRepo).Once()
	uow.On("BookingRepository").Return(bookingRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	gen.On("NextOGPLNumber", ctx, sheetRepo, org).Return("OGPL-20250115-0001", nil).Once()
	bookingRepo.On("GetMany", ctx, idsOf(booked, cancelled)).Return([]*booking.Booking{booked, cancelled}, nil).Once()

	handler := commands.NewCreateOGPLCommandHandler(factory, gen, 3, zap.NewNop())
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "DC2501-0002")
	assert.Equal(t, booking.Booked, booked.Status())
	sheetRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	bookingRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestCreateOGPLCommandHandler_Handle_RetriesOnConflict(t *testing.T) {
	ctx := t.Context()
	org := kernel.NewUUID()
	cmd, err := commands.NewCreateOGPLCommand(org, "MH12AB1234", "", nil, nil, nil)
	require.NoError(t, err)

	sheetRepo := new(MockOGPLRepository)
	bookingRepo := new(MockBookingRepository)
	uow := new(MockUoW)
	gen := new(MockNumberGenerator)
	factory := new(MockUoWFactory)

	factory.On("Create").Return(uow).Times(2)
	uow.On("Begin", ctx).Return(nil).Times(2)
	uow.On("OGPLRepository").Return(sheetRepo).Times(2)
	uow.On("BookingRepository").Return(bookingRepo).Times(2)
	uow.On("Rollback", ctx).Return(nil).Times(2)
	uow.On("Commit", ctx).Return(nil).Once()
	gen.On("NextOGPLNumber", ctx, sheetRepo, org).Return("OGPL-20250115-0001", nil).Once()
	gen.On("NextOGPLNumber", ctx, sheetRepo, org).Return("OGPL-20250115-0002", nil).Once()
	sheetRepo.On("Add", ctx, mock.Anything).
		Return(duplicateErr()).Once()
	sheetRepo.On("Add", ctx, mock.Anything).Return(nil).Once()

	handler := commands.NewCreateOGPLCommandHandler(factory, gen, 3, zap.NewNop())
	sheet, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "OGPL-20250115-0002", sheet.Number())
	assert.Empty(t, sheet.BookingIDs())
	bookingRepo.AssertNotCalled(t, "GetMany", mock.Anything, mock.Anything)
	gen.AssertExpectations(t)
}

func TestAddLRsToOGPLCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	org := kernel.NewUUID()
	sheet := newSheet(org)
	b := newBooking(org, "DC2501-0007")
	cmd, err := commands.NewAddLRsToOGPLCommand(sheet.ID(), idsOf(b))
	require.NoError(t, err)

	sheetRepo := new(MockOGPLRepository)
	bookingRepo := new(MockBookingRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OGPLRepository").Return(sheetRepo).Once(),
		uow.On("BookingRepository").Return(bookingRepo).Once(),
		sheetRepo.On("Get", ctx, sheet.ID()).Return(sheet, nil).Once(),
		bookingRepo.On("GetMany", ctx, idsOf(b)).Return([]*booking.Booking{b}, nil).Once(),
		sheetRepo.On("Update", ctx, sheet).Return(nil).Once(),
		bookingRepo.On("Update", ctx, b).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewAddLRsToOGPLCommandHandler(factory, clock)
	records, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, b.ID(), records[0].BookingID())
	assert.Equal(t, fixedNow, records[0].LoadedAt())
	assert.Equal(t, booking.InTransit, b.Status())
	assert.True(t, sheet.HasBooking(b.ID()))
	uow.AssertExpectations(t)
}

func TestAddLRsToOGPLCommandHandler_Handle_MissingBooking(t *testing.T) {
	ctx := t.Context()
	org := kernel.NewUUID()
	sheet := newSheet(org)
	present := newBooking(org, "DC2501-0007")
	absent := kernel.NewUUID()
	cmd, err := commands.NewAddLRsToOGPLCommand(sheet.ID(), []kernel.UUID{present.ID(), absent})
	require.NoError(t, err)

	sheetRepo := new(MockOGPLRepository)
	bookingRepo := new(MockBookingRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OGPLRepository").Return(sheetRepo).Once()
	uow.On("BookingRepository").Return(bookingRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	sheetRepo.On("Get", ctx, sheet.ID()).Return(sheet, nil).Once()
	bookingRepo.On("GetMany", ctx, []kernel.UUID{present.ID(), absent}).
		Return([]*booking.Booking{present}, nil).Once()

	handler := commands.NewAddLRsToOGPLCommandHandler(factory, clock)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Empty(t, sheet.BookingIDs())
	assert.Equal(t, booking.Booked, present.Status())
	sheetRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAddLRsToOGPLCommandHandler_Handle_SheetAlreadyDeparted(t *testing.T) {
	ctx := t.Context()
	org := kernel.NewUUID()
	loaded := newBooking(org, "DC2501-0001")
	sheet := inTransitSheet(t, org, loaded)
	extra := newBooking(org, "DC2501-0002")
	cmd, err := commands.NewAddLRsToOGPLCommand(sheet.ID(), idsOf(extra))
	require.NoError(t, err)

	sheetRepo := new(MockOGPLRepository)
	bookingRepo := new(MockBookingRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OGPLRepository").Return(sheetRepo).Once()
	uow.On("BookingRepository").Return(bookingRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	sheetRepo.On("Get", ctx, sheet.ID()).Return(sheet, nil).Once()
	bookingRepo.On("GetMany", ctx, idsOf(extra)).Return([]*booking.Booking{extra}, nil).Once()

	handler := commands.NewAddLRsToOGPLCommandHandler(factory, clock)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, booking.Booked, extra.Status())
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestDepartOGPLCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	org := kernel.NewUUID()
	sheet := newSheet(org)
	_, err := sheet.Load([]kernel.UUID{kernel.NewUUID()}, fixedNow.Add(-time.Minute))
	require.NoError(t, err)
	cmd, err := commands.NewDepartOGPLCommand(sheet.ID())
	require.NoError(t, err)

	repo := new(MockOGPLRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OGPLRepository").Return(repo).Once(),
		repo.On("Get", ctx, sheet.ID()).Return(sheet, nil).Once(),
		repo.On("Update", ctx, sheet).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewDepartOGPLCommandHandler(factory, clock)
	departed, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, ogpl.InTransit, departed.Status())
	assert.Equal(t, fixedNow, departed.UpdatedAt())
	repo.AssertExpectations(t)
}

func TestDepartOGPLCommandHandler_Handle_EmptySheet(t *testing.T) {
	ctx := t.Context()
	sheet := newSheet(kernel.NewUUID())
	cmd, err := commands.NewDepartOGPLCommand(sheet.ID())
	require.NoError(t, err)

	repo := new(MockOGPLRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OGPLRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", ctx, sheet.ID()).Return(sheet, nil).Once()

	handler := commands.NewDepartOGPLCommandHandler(factory, clock)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, ogpl.ErrNoLoadingRecords)
	assert.Equal(t, ogpl.Created, sheet.Status())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDepartOGPLCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewDepartOGPLCommand(id)
	require.NoError(t, err)

	repo := new(MockOGPLRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OGPLRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("ogpl", id.String())).Once()

	handler := commands.NewDepartOGPLCommandHandler(factory, clock)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestCancelOGPLCommandHandler_Handle_ReleasesBookings(t *testing.T) {
	ctx := t.Context()
	org := kernel.NewUUID()
	b1, b2 := newBooking(org, "DC2501-0001"), newBooking(org, "DC2501-0002")
	sheet := inTransitSheet(t, org, b1, b2)
	require.NoError(t, b2.Cancel(fixedNow.Add(-30*time.Minute)))
	cmd, err := commands.NewCancelOGPLCommand(sheet.ID())
	require.NoError(t, err)

	sheetRepo := new(MockOGPLRepository)
	bookingRepo := new(MockBookingRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OGPLRepository").Return(sheetRepo).Once(),
		uow.On("BookingRepository").Return(bookingRepo).Once(),
		sheetRepo.On("Get", ctx, sheet.ID()).Return(sheet, nil).Once(),
		bookingRepo.On("GetMany", ctx, idsOf(b1, b2)).Return([]*booking.Booking{b1, b2}, nil).Once(),
		sheetRepo.On("Update", ctx, sheet).Return(nil).Once(),
		bookingRepo.On("Update", ctx, b1).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewCancelOGPLCommandHandler(factory, clock)
	cancelled, released, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, ogpl.Cancelled, cancelled.Status())
	require.Len(t, released, 1)
	assert.Equal(t, b1.ID(), released[0].ID())
	assert.Equal(t, booking.Booked, b1.Status())
	assert.Equal(t, booking.Cancelled, b2.Status())
	bookingRepo.AssertNotCalled(t, "Update", ctx, b2)
	uow.AssertExpectations(t)
}

func TestCancelOGPLCommandHandler_Handle_EmptySheetSkipsBookings(t *testing.T) {
	ctx := t.Context()
	sheet := newSheet(kernel.NewUUID())
	cmd, err := commands.NewCancelOGPLCommand(sheet.ID())
	require.NoError(t, err)

	sheetRepo := new(MockOGPLRepository)
	bookingRepo := new(MockBookingRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OGPLRepository").Return(sheetRepo).Once()
	uow.On("BookingRepository").Return(bookingRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	sheetRepo.On("Get", ctx, sheet.ID()).Return(sheet, nil).Once()
	sheetRepo.On("Update", ctx, sheet).Return(nil).Once()

	handler := commands.NewCancelOGPLCommandHandler(factory, clock)
	_, released, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Empty(t, released)
	bookingRepo.AssertNotCalled(t, "GetMany", mock.Anything, mock.Anything)
}

func TestUnloadOGPLCommandHandler_Handle_PartialFailure(t *testing.T) {
	ctx := t.Context()
	org := kernel.NewUUID()
	good := newBooking(org, "DC2501-0001")
	damaged := newBooking(org, "DC2501-0002")
	missing := newBooking(org, "DC2501-0003")
	sheet := inTransitSheet(t, org, good, damaged, missing)

	ids := idsOf(good, damaged, missing)
	cmd, err := commands.NewUnloadOGPLCommand(sheet.ID(), ids, map[kernel.UUID]ogpl.Condition{
		good.ID():    condition(t, ogpl.Good, ""),
		damaged.ID(): condition(t, ogpl.Damaged, "crushed corner"),
		missing.ID(): condition(t, ogpl.Missing, ""),
	})
	require.NoError(t, err)

	sheetRepo := new(MockOGPLRepository)
	bookingRepo := new(MockBookingRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	updateErr := errs.NewDataAccessError("update booking", errors.New("deadlock detected"))

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OGPLRepository").Return(sheetRepo).Once(),
		uow.On("BookingRepository").Return(bookingRepo).Once(),
		sheetRepo.On("Get", ctx, sheet.ID()).Return(sheet, nil).Once(),
		bookingRepo.On("GetMany", ctx, ids).Return([]*booking.Booking{good, damaged, missing}, nil).Once(),
		sheetRepo.On("Update", ctx, sheet).Return(nil).Once(),
		uow.On("SavePoint", ctx, "deliver_0").Return(nil).Once(),
		bookingRepo.On("Update", ctx, good).Return(nil).Once(),
		uow.On("SavePoint", ctx, "deliver_1").Return(nil).Once(),
		bookingRepo.On("Update", ctx, damaged).Return(updateErr).Once(),
		uow.On("RollbackTo", ctx, "deliver_1").Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewUnloadOGPLCommandHandler(factory, clock, zap.NewNop())
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, ogpl.Completed, result.Sheet.Status())
	require.NotNil(t, result.Sheet.UnloadingRecord())
	assert.Equal(t, fixedNow, result.Record.UnloadedAt())

	require.Len(t, result.Outcomes, 3)
	assert.Equal(t, commands.Delivered, result.Outcomes[0].Result)
	assert.Equal(t, commands.Failed, result.Outcomes[1].Result)
	assert.Equal(t, "DC2501-0002", result.Outcomes[1].LRNumber)
	require.ErrorIs(t, result.Outcomes[1].Err, errs.ErrDataAccess)
	assert.Equal(t, commands.NotDelivered, result.Outcomes[2].Result)
	assert.Equal(t, booking.InTransit, missing.Status())

	failures := result.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, damaged.ID(), failures[0].BookingID)
	uow.AssertExpectations(t)
	bookingRepo.AssertNotCalled(t, "Update", ctx, missing)
}

func TestUnloadOGPLCommandHandler_Handle_DamagedWithoutRemarksWritesNothing(t *testing.T) {
	ctx := t.Context()
	org := kernel.NewUUID()
	b := newBooking(org, "DC2501-0001")
	sheet := inTransitSheet(t, org, b)

	cmd, err := commands.NewUnloadOGPLCommand(sheet.ID(), idsOf(b), map[kernel.UUID]ogpl.Condition{
		b.ID(): {Status: ogpl.Damaged},
	})
	require.NoError(t, err)

	sheetRepo := new(MockOGPLRepository)
	bookingRepo := new(MockBookingRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OGPLRepository").Return(sheetRepo).Once()
	uow.On("BookingRepository").Return(bookingRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	sheetRepo.On("Get", ctx, sheet.ID()).Return(sheet, nil).Once()
	bookingRepo.On("GetMany", ctx, idsOf(b)).Return([]*booking.Booking{b}, nil).Once()

	handler := commands.NewUnloadOGPLCommandHandler(factory, clock, zap.NewNop())
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Equal(t, ogpl.InTransit, sheet.Status())
	assert.Equal(t, booking.InTransit, b.Status())
	sheetRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "SavePoint", mock.Anything, mock.Anything)
}

func TestUnloadOGPLCommandHandler_Handle_AlreadyCompleted(t *testing.T) {
	ctx := t.Context()
	org := kernel.NewUUID()
	b := newBooking(org, "DC2501-0001")
	sheet := inTransitSheet(t, org, b)
	record, err := ogpl.NewUnloadingRecord(kernel.NewUUID(), sheet.ID(),
		map[kernel.UUID]ogpl.Condition{b.ID(): condition(t, ogpl.Good, "")}, fixedNow)
	require.NoError(t, err)
	require.NoError(t, sheet.Unload(record, fixedNow))

	cmd, err := commands.NewUnloadOGPLCommand(sheet.ID(), idsOf(b), map[kernel.UUID]ogpl.Condition{
		b.ID(): condition(t, ogpl.Good, ""),
	})
	require.NoError(t, err)

	sheetRepo := new(MockOGPLRepository)
	bookingRepo := new(MockBookingRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OGPLRepository").Return(sheetRepo).Once()
	uow.On("BookingRepository").Return(bookingRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	sheetRepo.On("Get", ctx, sheet.ID()).Return(sheet, nil).Once()
	bookingRepo.On("GetMany", ctx, idsOf(b)).Return([]*booking.Booking{b}, nil).Once()

	handler := commands.NewUnloadOGPLCommandHandler(factory, clock, zap.NewNop())
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "already completed")
}
