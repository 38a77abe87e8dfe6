package queries_test

import (
	"context"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockBranchDirectory struct {
	mock.Mock
}

func (m *MockBranchDirectory) Branch(ctx context.Context, id kernel.UUID) (ports.Branch, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.Branch), args.Error(1)
}

type MockNumberSource struct {
	mock.Mock
}

func (m *MockNumberSource) LatestLRNumber(ctx context.Context, org kernel.UUID, prefix string) (*string, error) {
	args := m.Called(ctx, org, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*string), args.Error(1)
}

func (m *MockNumberSource) LatestNumber(ctx context.Context, org kernel.UUID) (*string, error) {
	args := m.Called(ctx, org)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*string), args.Error(1)
}

type MockBookingIndex struct {
	mock.Mock
}

func (m *MockBookingIndex) Index(ctx context.Context, doc ports.BookingDocument) error {
	return m.Called(ctx, doc).Error(0)
}

func (m *MockBookingIndex) UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error {
	return m.Called(ctx, id, status, updatedAt).Error(0)
}

func (m *MockBookingIndex) Search(ctx context.Context, q ports.BookingSearch) ([]ports.BookingDocument, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.BookingDocument), args.Error(1)
}

func ptr(s string) *string { return &s }
