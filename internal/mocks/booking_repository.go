package mocks

import (
	"context"
	"time"

	models "github.com/chrisdamba/babysitter/internal"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	args := m.Called(ctx, booking)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetBookingByID(ctx context.Context, id int64) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetBookingsPaginated(ctx context.Context, afterCursor string, limit int, status models.Status) ([]models.Booking, string, error) {
	args := m.Called(ctx, afterCursor, limit, status)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]models.Booking), args.String(1), args.Error(2)
}

func (m *MockBookingRepository) UpdateBooking(ctx context.Context, booking *models.Booking, expected models.Status) error {
	args := m.Called(ctx, booking, expected)
	return args.Error(0)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, from, to models.Status, at time.Time) error {
	args := m.Called(ctx, id, from, to, at)
	return args.Error(0)
}

func (m *MockBookingRepository) UpdateHandler(ctx context.Context, id int64, handlerID *int64, expected models.Status, at time.Time) error {
	args := m.Called(ctx, id, handlerID, expected, at)
	return args.Error(0)
}

func (m *MockBookingRepository) AddCareRecipient(ctx context.Context, recipient *models.CareRecipient, limit int) (*models.CareRecipient, error) {
	args := m.Called(ctx, recipient, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CareRecipient), args.Error(1)
}

func (m *MockBookingRepository) GetCareRecipient(ctx context.Context, id int64) (*models.CareRecipient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CareRecipient), args.Error(1)
}

func (m *MockBookingRepository) UpdateCareRecipient(ctx context.Context, recipient *models.CareRecipient) error {
	args := m.Called(ctx, recipient)
	return args.Error(0)
}

func (m *MockBookingRepository) RemoveCareRecipient(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockBookingRepository) ListStatuses(ctx context.Context) ([]models.StatusInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StatusInfo), args.Error(1)
}
