package mocks

import (
	"context"

	models "github.com/chrisdamba/babysitter/internal"
	"github.com/stretchr/testify/mock"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) CreateBooking(ctx context.Context, request *models.BookingRequest, requesterID *int64) (*models.Booking, error) {
	args := m.Called(ctx, request, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingService) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingService) AllBookings(ctx context.Context, req models.GetBookingsRequest) (*models.BookingPage, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingPage), args.Error(1)
}

func (m *MockBookingService) UpdateBooking(ctx context.Context, id int64, update *models.BookingUpdate) (*models.Booking, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingService) ChangeStatus(ctx context.Context, id int64, target models.Status) (*models.Booking, error) {
	args := m.Called(ctx, id, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingService) AssignHandler(ctx context.Context, id int64, handlerID *int64) (*models.Booking, error) {
	args := m.Called(ctx, id, handlerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingService) AddCareRecipient(ctx context.Context, bookingID int64, request *models.CareRecipientRequest) (*models.CareRecipient, error) {
	args := m.Called(ctx, bookingID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CareRecipient), args.Error(1)
}

func (m *MockBookingService) GetCareRecipient(ctx context.Context, id int64) (*models.CareRecipient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CareRecipient), args.Error(1)
}

func (m *MockBookingService) UpdateCareRecipient(ctx context.Context, id int64, update *models.CareRecipientUpdate) (*models.CareRecipient, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CareRecipient), args.Error(1)
}

func (m *MockBookingService) RemoveCareRecipient(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
