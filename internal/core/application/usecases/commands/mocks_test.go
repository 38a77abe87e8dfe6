package commands_test

import (
	"context"
	"time"

	"freight/internal/core/application/numbering"
	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/ogpl"
	"freight/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var fixedNow = time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type MockBookingRepository struct{ mock.Mock }

func (m *MockBookingRepository) Add(ctx context.Context, b *booking.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBookingRepository) Get(ctx context.Context, id kernel.UUID) (*booking.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*booking.Booking, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) LatestLRNumber(ctx context.Context, org kernel.UUID, prefix string) (*string, error) {
	args := m.Called(ctx, org, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*string), args.Error(1)
}

type MockOGPLRepository struct{ mock.Mock }

func (m *MockOGPLRepository) Add(ctx context.Context, o *ogpl.OGPL) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOGPLRepository) Update(ctx context.Context, o *ogpl.OGPL) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOGPLRepository) Get(ctx context.Context, id kernel.UUID) (*ogpl.OGPL, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ogpl.OGPL), args.Error(1)
}

func (m *MockOGPLRepository) LatestNumber(ctx context.Context, org kernel.UUID) (*string, error) {
	args := m.Called(ctx, org)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*string), args.Error(1)
}

// MockUoW satisfies both commands.UoW and commands.BookingUoW.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) SavePoint(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func (m *MockUoW) RollbackTo(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func (m *MockUoW) BookingRepository() ports.BookingRepository {
	return m.Called().Get(0).(ports.BookingRepository)
}

func (m *MockUoW) OGPLRepository() ports.OGPLRepository {
	return m.Called().Get(0).(ports.OGPLRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

type MockBookingUoWFactory struct{ mock.Mock }

func (m *MockBookingUoWFactory) Create() commands.BookingUoW {
	return m.Called().Get(0).(commands.BookingUoW)
}

type MockNumberGenerator struct{ mock.Mock }

func (m *MockNumberGenerator) Now() time.Time { return fixedNow }

func (m *MockNumberGenerator) NextLRNumber(
	ctx context.Context,
	source numbering.LRNumberSource,
	org kernel.UUID,
	branchID *kernel.UUID,
) (string, error) {
	args := m.Called(ctx, source, org, branchID)
	return args.String(0), args.Error(1)
}

func (m *MockNumberGenerator) NextOGPLNumber(
	ctx context.Context,
	source numbering.OGPLNumberSource,
	org kernel.UUID,
) (string, error) {
	args := m.Called(ctx, source, org)
	return args.String(0), args.Error(1)
}

func consignment() booking.Consignment {
	return booking.Consignment{
		Sender:        "Shree Traders",
		Receiver:      "Patil Hardware",
		Article:       "Cartons",
		Quantity:      4,
		WeightKg:      80,
		FreightCharge: 600,
	}
}

func newBooking(org kernel.UUID, lr string) *booking.Booking {
	b, err := booking.NewBooking(kernel.NewUUID(), org, lr, booking.System, nil, nil, consignment(), fixedNow.Add(-time.Hour))
	if err != nil {
		panic(err)
	}
	b.ClearDomainEvents()
	return b
}

func newSheet(org kernel.UUID) *ogpl.OGPL {
	s, err := ogpl.NewOGPL(kernel.NewUUID(), org, "OGPL-20250115-0001", "MH12AB1234", "Ramesh", nil, nil, fixedNow.Add(-time.Hour))
	if err != nil {
		panic(err)
	}
	s.ClearDomainEvents()
	return s
}

func idsOf(bookings ...*booking.Booking) []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.ID())
	}
	return ids
}
