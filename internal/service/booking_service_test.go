package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	models "github.com/chrisdamba/babysitter/internal"
	"github.com/chrisdamba/babysitter/internal/mocks"
	"github.com/chrisdamba/babysitter/internal/ports"
	"github.com/chrisdamba/babysitter/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 14, 12, 0, 0, 0, time.UTC)

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time { return c.t }

func newTestService(repo *mocks.MockBookingRepository, opts ...service.Option) ports.BookingService {
	all := append([]service.Option{service.WithClock(fixedClock{t: now})}, opts...)
	return service.NewBookingService(repo, all...)
}

// expectCreate makes CreateBooking echo the booking back with an ID.
func expectCreate(repo *mocks.MockBookingRepository, ctx context.Context) *models.Booking {
	saved := &models.Booking{}
	repo.On("CreateBooking", ctx, mock.AnythingOfType("*models.Booking")).
		Run(func(args mock.Arguments) {
			*saved = *args.Get(1).(*models.Booking)
			saved.ID = 1
		}).
		Return(saved, nil).Once()
	return saved
}

func TestGenerateBookingNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^BKS-20250614-\d{4}$`)
	for i := 0; i < 100; i++ {
		number := service.GenerateBookingNumber(now)
		assert.Regexp(t, pattern, number)
	}
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful booking creation", func(t *testing.T) {
		mockRepo := new(mocks.MockBookingRepository)
		svc := newTestService(mockRepo)
		expectCreate(mockRepo, ctx)

		booking, err := svc.CreateBooking(ctx, validRequest(), nil)

		require.NoError(t, err)
		assert.Equal(t, int64(1), booking.ID)
		assert.Equal(t, "Jane Doe", booking.Name)
		assert.Equal(t, models.StatusPending, booking.Status)
		assert.Equal(t, 1, booking.CareRecipientCount)
		assert.Len(t, booking.CareRecipients, 1)
		assert.Regexp(t, `^BKS-20250614-\d{4}$`, booking.BookingNumber)
		assert.Nil(t, booking.RequesterID)
		assert.Equal(t, now, booking.CreatedAt)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Requester is recorded", func(t *testing.T) {
		mockRepo := new(mocks.MockBookingRepository)
		svc := newTestService(mockRepo)
		expectCreate(mockRepo, ctx)

		userID := int64(42)
		booking, err := svc.CreateBooking(ctx, validRequest(), &userID)

		require.NoError(t, err)
		require.NotNil(t, booking.RequesterID)
		assert.Equal(t, userID, *booking.RequesterID)
	})

	t.Run("Child too old", func(t *testing.T) {
		mockRepo := new(mocks.MockBookingRepository)
		svc := newTestService(mockRepo)

		req := validRequest()
		req.CareRecipients[0].DateOfBirth = models.DateOf(now.AddDate(-13, 0, 0))

		booking, err := svc.CreateBooking(ctx, req, nil)

		assert.Nil(t, booking)
		assert.True(t, errors.Is(err, models.ErrInvalidAge))
		var verr *models.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, []string{"The child must be at most 12 years and 11 months old."},
			verr.Fields["care_recipients.0.date_of_birth"])
		mockRepo.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
	})

	t.Run("No care recipients", func(t *testing.T) {
		mockRepo := new(mocks.MockBookingRepository)
		svc := newTestService(mockRepo)

		req := validRequest()
		req.CareRecipients = nil

		_, err := svc.CreateBooking(ctx, req, nil)

		assert.False(t, errors.Is(err, models.ErrCapacityExceeded))
		var verr *models.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, []string{"At least one child is required for babysitting."}, verr.Fields["care_recipients"])
		mockRepo.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
	})

	t.Run("Blank contact fields", func(t *testing.T) {
		mockRepo := new(mocks.MockBookingRepository)
		svc := newTestService(mockRepo)

		req := validRequest()
		req.Name = "   "
		req.City = "\t"
		req.CareRecipients[0].Name = " "

		booking, err := svc.CreateBooking(ctx, req, nil)

		assert.Nil(t, booking)
		var verr *models.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, []string{"The name field must not be blank."}, verr.Fields["name"])
		assert.Equal(t, []string{"The city field must not be blank."}, verr.Fields["city"])
		assert.Contains(t, verr.Fields, "care_recipients.0.name")
		mockRepo.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
	})

	t.Run("Unparseable dates", func(t *testing.T) {
		mockRepo := new(mocks.MockBookingRepository)
		svc := newTestService(mockRepo)

		var req models.BookingRequest
		require.NoError(t, json.Unmarshal([]byte(`{
			"name": "Jane Doe", "email": "jane@example.com", "phone": "555-0100",
			"address": "1 Main St", "city": "Springfield", "state": "IL", "zip_code": "62701",
			"start_datetime": "tomorrow", "end_datetime": "2025-06-15 16:00:00",
			"care_recipients": [{"name": "Kid A", "date_of_birth": "not-a-date"}]
		}`), &req))

		_, err := svc.CreateBooking(ctx, &req, nil)

		var verr *models.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, []string{"The start datetime field must be a valid date."}, verr.Fields["start_datetime"])
		assert.Equal(t, []string{"The date of birth field must be a valid date."}, verr.Fields["care_recipients.0.date_of_birth"])
		assert.NotContains(t, verr.Fields, "end_datetime")
		assert.False(t, errors.Is(err, models.ErrInvalidAge))
		mockRepo.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
	})

	t.Run("Space separated datetimes", func(t *testing.T) {
		mockRepo := new(mocks.MockBookingRepository)
		svc := newTestService(mockRepo)
		saved := expectCreate(mockRepo, ctx)

		req := validRequest()
		require.NoError(t, json.Unmarshal([]byte(`{"start_datetime": "2025-06-15 12:00:00", "end_datetime": "2025-06-15 16:00:00"}`), req))

		_, err := svc.CreateBooking(ctx, req, nil)

		require.NoError(t, err)
		assert.True(t, saved.StartDatetime.Equal(time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)))
		assert.True(t, saved.EndDatetime.Equal(time.Date(2025, 6, 15, 16, 0, 0, 0, time.UTC)))
	})

	t.Run("Five care recipients", func(t *testing.T) {
		mockRepo := new(mocks.MockBookingRepository)
		svc := newTestService(mockRepo)

		req := validRequest()
		for i := 0; i < 4; i++ {
			req.CareRecipients = append(req.CareRecipients, req.CareRecipients[0])
		}

		_, err := svc.CreateBooking(ctx, req, nil)

		assert.True(t, errors.Is(err, models.ErrCapacityExceeded))
		mockRepo.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
	})

	t.Run("Four care recipients", func(t *testing.T) {
		mockRepo := new(mocks.MockBookingRepository)
		svc := newTestService(mockRepo)
		expectCreate(mockRepo, ctx)

		req := validRequest()
		for i := 0; i < 3; i++ {
			req.CareRecipients = append(req.CareRecipients, req.CareRecipients[0])
		}

		booking, err := svc.CreateBooking(ctx, req, nil)

		require.NoError(t, err)
		assert.Equal(t, 4, booking.CareRecipientCount)
		assert.Len(t, booking.CareRecipients, 4)
	})

	t.Run("End before start", func(t *testing.T) {
		mockRepo := new(mocks.MockBookingRepository)
		svc := newTestService(mockRepo)

		req := validRequest()
		req.EndDatetime = req.StartDatetime

		_, err := svc.CreateBooking(ctx, req, nil)

		var verr *models.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Fields, "end_datetime")
	})

	t.Run("Booking number collision is retried", func(t *testing.T) {
		mockRepo := new(mocks.MockBookingRepository)
		numbers := []string{"BKS-20250614-1111", "BKS-20250614-2222"}
		calls := 0
		svc := newTestService(mockRepo, service.WithNumberGenerator(func(time.Time) string {
			n := numbers[calls]
			calls++
			return n
		}))

		mockRepo.On("CreateBooking", ctx, mock.AnythingOfType("*models.Booking")).
			Return(nil, models.ErrDuplicateBookingNumber).Once()
		expectCreate(mockRepo, ctx)

		booking, err := svc.CreateBooking(ctx, validRequest(), nil)

		require.NoError(t, err)
		assert.Equal(t, "BKS-20250614-2222", booking.BookingNumber)
		mockRepo.AssertNumberOfCalls(t, "CreateBooking", 2)
	})

	t.Run("Booking number attempts exhausted", func(t *testing.T) {
		mockRepo := new(mocks.MockBookingRepository)
		svc := newTestService(mockRepo, service.WithNumberAttempts(3))

		mockRepo.On("CreateBooking", ctx, mock.AnythingOfType("*models.Booking")).
			Return(nil, models.ErrDuplicateBookingNumber)

		booking, err := svc.CreateBooking(ctx, validRequest(), nil)

		assert.Nil(t, booking)
		assert.True(t, errors.Is(err, models.ErrDuplicateBookingNumber))
		mockRepo.AssertNumberOfCalls(t, "CreateBooking", 3)
	})

	t.Run("Repository failure", func(t *testing.T) {
		mockRepo := new(mocks.MockBookingRepository)
		svc := newTestService(mockRepo)

		mockRepo.On("CreateBooking", ctx, mock.AnythingOfType("*models.Booking")).Return(nil, assert.AnError)

		_, err := svc.CreateBooking(ctx, validRequest(), nil)

		assert.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "error creating booking")
		mockRepo.AssertNumberOfCalls(t, "CreateBooking", 1)
	})
}

func TestCreateBookingWindow(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		start   time.Time
		wantMsg string
	}{
		{name: "Exactly six hours ahead", start: now.Add(6 * time.Hour)},
		{name: "Exactly thirty days ahead", start: now.Add(30 * 24 * time.Hour)},
		{name: "One second too soon", start: now.Add(6*time.Hour - time.Second), wantMsg: "Booking must be at least 6 hours in advance."},
		{name: "One second too far", start: now.Add(30*24*time.Hour + time.Second), wantMsg: "Booking must be within the next 30 days."},
		{name: "In the past", start: now.Add(-time.Hour), wantMsg: "Booking must be at least 6 hours in advance."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.MockBookingRepository)
			svc := newTestService(mockRepo)

			req := validRequest()
			req.StartDatetime = models.DateTimeOf(tt.start)
			req.EndDatetime = models.DateTimeOf(tt.start.Add(4 * time.Hour))

			if tt.wantMsg == "" {
				expectCreate(mockRepo, ctx)
				_, err := svc.CreateBooking(ctx, req, nil)
				assert.NoError(t, err)
				return
			}

			_, err := svc.CreateBooking(ctx, req, nil)
			var verr *models.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, []string{tt.wantMsg}, verr.Fields["start_datetime"])
			mockRepo.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
		})
	}
}

func TestAllBookings(t *testing.T) {
	ctx := context.Background()

	t.Run("Default limit", func(t *testing.T) {
		mockRepo := new(mocks.MockBookingRepository)
		svc := newTestService(mockRepo)

		bookings := []models.Booking{{ID: 1}, {ID: 2}}
		mockRepo.On("GetBookingsPaginated", ctx, "", 10, models.Status("")).Return(bookings, "next", nil)

		page, err := svc.AllBookings(ctx, models.GetBookingsRequest{})

		require.NoError(t, err)
		assert.Equal(t, 10, page.Limit)
		assert.Equal(t, "next", page.Cursor)
		assert.Len(t, page.Bookings, 2)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Status filter", func(t *testing.T) {
		mockRepo := new(mocks.MockBookingRepository)
		svc := newTestService(mockRepo)

		mockRepo.On("GetBookingsPaginated", ctx, "abc", 5, models.StatusAssigned).Return([]models.Booking{}, "", nil)

		page, err := svc.AllBookings(ctx, models.GetBookingsRequest{Limit: 5, Cursor: "abc", Status: models.StatusAssigned})

		require.NoError(t, err)
		assert.Empty(t, page.Bookings)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unknown status filter", func(t *testing.T) {
		mockRepo := new(mocks.MockBookingRepository)
		svc := newTestService(mockRepo)

		_, err := svc.AllBookings(ctx, models.GetBookingsRequest{Status: "archived"})

		var verr *models.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Fields, "status")
		mockRepo.AssertNotCalled(t, "GetBookingsPaginated", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUpdateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("Contact change on pending booking", func(t *testing.T) {
		mockRepo := new(mocks.MockBookingRepository)
		svc := newTestService(mockRepo)

		existing := existingBooking(models.StatusPending)
		mockRepo.On("GetBookingByID", ctx, int64(7)).Return(existing, nil)
		mockRepo.On("UpdateBooking", ctx, mock.AnythingOfType("*models.Booking"), models.StatusPending).Return(nil)

		name := "Janet Doe"
		booking, err := svc.UpdateBooking(ctx, 7, &models.BookingUpdate{Name: &name})

		require.NoError(t, err)
		assert.Equal(t, "Janet Doe", booking.Name)
		assert.Equal(t, "jane@example.com", booking.Email)
		assert.Equal(t, now, booking.UpdatedAt)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Pending booking may move within six hours notice", func(t *testing.T) {
		mockRepo := new(mocks.MockBookingRepository)
		svc := newTestService(mockRepo)

		mockRepo.On("GetBookingByID", ctx, int64(7)).Return(existingBooking(models.StatusPending), nil)
		mockRepo.On("UpdateBooking", ctx, mock.AnythingOfType("*models.Booking"), models.StatusPending).Return(nil)

		start := now.Add(12 * time.Hour)
		end := start.Add(2 * time.Hour)
		booking, err := svc.UpdateBooking(ctx, 7, &models.BookingUpdate{StartDatetime: dateTime(start), EndDatetime: dateTime(end)})

		require.NoError(t, err)
		assert.Equal(t, start, booking.StartDatetime)
	})

	t.Run("Confirmed booking needs a day of notice", func(t *testing.T) {
		mockRepo := new(mocks.MockBookingRepository)
		svc := newTestService(mockRepo)

		mockRepo.On("GetBookingByID", ctx, int64(7)).Return(existingBooking(models.StatusConfirmed), nil)

		start := now.Add(12 * time.Hour)
		end := start.Add(2 * time.Hour)
		booking, err := svc.UpdateBooking(ctx, 7, &models.BookingUpdate{StartDatetime: dateTime(start), EndDatetime: dateTime(end)})

		assert.Nil(t, booking)
		var verr *models.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, []string{"Changes must be made at least 24 hours in advance."}, verr.Fields["start_datetime"])
		mockRepo.AssertNotCalled(t, "UpdateBooking", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("End moved before existing start", func(t *testing.T) {
		mockRepo := new(mocks.MockBookingRepository)
		svc := newTestService(mockRepo)

		existing := existingBooking(models.StatusPending)
		mockRepo.On("GetBookingByID", ctx, int64(7)).Return(existing, nil)

		end := existing.StartDatetime.Add(-time.Hour)
		_, err := svc.UpdateBooking(ctx, 7, &models.BookingUpdate{EndDatetime: dateTime(end)})

		var verr *models.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Fields, "end_datetime")
		mockRepo.AssertNotCalled(t, "UpdateBooking", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Invalid field never reaches the store", func(t *testing.T) {
		mockRepo := new(mocks.MockBookingRepository)
		svc := newTestService(mockRepo)

		mockRepo.On("GetBookingByID", ctx, int64(7)).Return(existingBooking(models.StatusPending), nil)

		email := "not-an-email"
		_, err := svc.UpdateBooking(ctx, 7, &models.BookingUpdate{Email: &email})

		var verr *models.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Fields, "email")
		mockRepo.AssertNotCalled(t, "UpdateBooking", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Booking not found", func(t *testing.T) {
		mockRepo := new(mocks.MockBookingRepository)
		svc := newTestService(mockRepo)

		mockRepo.On("GetBookingByID", ctx, int64(9)).Return(nil, models.ErrBookingNotFound)

		name := "Janet"
		_, err := svc.UpdateBooking(ctx, 9, &models.BookingUpdate{Name: &name})

		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("Concurrent status change", func(t *testing.T) {
		mockRepo := new(mocks.MockBookingRepository)
		svc := newTestService(mockRepo)

		mockRepo.On("GetBookingByID", ctx, int64(7)).Return(existingBooking(models.StatusPending), nil)
		mockRepo.On("UpdateBooking", ctx, mock.Anything, models.StatusPending).Return(models.ErrStaleBooking)

		name := "Janet"
		_, err := svc.UpdateBooking(ctx, 7, &models.BookingUpdate{Name: &name})

		assert.ErrorIs(t, err, models.ErrStaleBooking)
	})
}

func TestChangeStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Cancel then confirm", func(t *testing.T) {
		mockRepo := new(mocks.MockBookingRepository)
		svc := newTestService(mockRepo)

		mockRepo.On("GetBookingByID", ctx, int64(7)).Return(existingBooking(models.StatusPending), nil).Once()
		mockRepo.On("UpdateStatus", ctx, int64(7), models.StatusPending, models.StatusCancelled, now).Return(nil).Once()

		booking, err := svc.ChangeStatus(ctx, 7, models.StatusCancelled)
		require.NoError(t, err)
		assert.Equal(t, models.StatusCancelled, booking.Status)

		mockRepo.On("GetBookingByID", ctx, int64(7)).Return(existingBooking(models.StatusCancelled), nil).Once()

		booking, err = svc.ChangeStatus(ctx, 7, models.StatusConfirmed)
		assert.Nil(t, booking)
		assert.ErrorIs(t, err, models.ErrIllegalTransition)
		var terr *models.TransitionError
		require.True(t, errors.As(err, &terr))
		assert.Equal(t, models.StatusCancelled, terr.From)
		assert.Equal(t, models.StatusConfirmed, terr.To)
		mockRepo.AssertNumberOfCalls(t, "UpdateStatus", 1)
	})

	t.Run("Pending to assigned", func(t *testing.T) {
		mockRepo := new(mocks.MockBookingRepository)
		svc := newTestService(mockRepo)

		mockRepo.On("GetBookingByID", ctx, int64(7)).Return(existingBooking(models.StatusPending), nil)
		mockRepo.On("UpdateStatus", ctx, int64(7), models.StatusPending, models.StatusAssigned, now).Return(nil)

		booking, err := svc.ChangeStatus(ctx, 7, models.StatusAssigned)

		require.NoError(t, err)
		assert.Equal(t, models.StatusAssigned, booking.Status)
	})

	t.Run("Unknown status", func(t *testing.T) {
		mockRepo := new(mocks.MockBookingRepository)
		svc := newTestService(mockRepo)

		_, err := svc.ChangeStatus(ctx, 7, models.Status("archived"))

		var verr *models.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Fields, "status")
		mockRepo.AssertNotCalled(t, "GetBookingByID", mock.Anything, mock.Anything)
	})

	t.Run("Lost race", func(t *testing.T) {
		mockRepo := new(mocks.MockBookingRepository)
		svc := newTestService(mockRepo)

		mockRepo.On("GetBookingByID", ctx, int64(7)).Return(existingBooking(models.StatusAssigned), nil)
		mockRepo.On("UpdateStatus", ctx, int64(7), models.StatusAssigned, models.StatusNoShow, now).Return(models.ErrStaleBooking)

		_, err := svc.ChangeStatus(ctx, 7, models.StatusNoShow)

		assert.ErrorIs(t, err, models.ErrStaleBooking)
	})
}

func TestAssignHandler(t *testing.T) {
	ctx := context.Background()
	handler := int64(3)

	t.Run("Assign", func(t *testing.T) {
		mockRepo := new(mocks.MockBookingRepository)
		svc := newTestService(mockRepo)

		mockRepo.On("GetBookingByID", ctx, int64(7)).Return(existingBooking(models.StatusConfirmed), nil)
		mockRepo.On("UpdateHandler", ctx, int64(7), &handler, models.StatusConfirmed, now).Return(nil)

		booking, err := svc.AssignHandler(ctx, 7, &handler)

		require.NoError(t, err)
		assert.Equal(t, &handler, booking.HandlerID)
		assert.Equal(t, models.StatusConfirmed, booking.Status)
	})

	t.Run("Terminal booking", func(t *testing.T) {
		mockRepo := new(mocks.MockBookingRepository)
		svc := newTestService(mockRepo)

		mockRepo.On("GetBookingByID", ctx, int64(7)).Return(existingBooking(models.StatusCompleted), nil)

		_, err := svc.AssignHandler(ctx, 7, &handler)

		assert.ErrorIs(t, err, models.ErrTerminalBooking)
		mockRepo.AssertNotCalled(t, "UpdateHandler", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func dateTime(t time.Time) *models.DateTime {
	d := models.DateTimeOf(t)
	return &d
}

func validRequest() *models.BookingRequest {
	start := now.Add(24 * time.Hour)
	return &models.BookingRequest{
		Name:          "Jane Doe",
		Email:         "jane@example.com",
		Phone:         "555-0100",
		Address:       "1 Main St",
		City:          "Springfield",
		State:         "IL",
		ZipCode:       "62701",
		StartDatetime: models.DateTimeOf(start),
		EndDatetime:   models.DateTimeOf(start.Add(4 * time.Hour)),
		CareRecipients: []models.CareRecipientRequest{
			{Name: "Kid A", DateOfBirth: models.DateOf(now.AddDate(-5, 0, 0))},
		},
	}
}

func existingBooking(status models.Status) *models.Booking {
	start := now.Add(72 * time.Hour)
	return &models.Booking{
		ID:                 7,
		BookingNumber:      "BKS-20250610-1234",
		Name:               "Jane Doe",
		Email:              "jane@example.com",
		Phone:              "555-0100",
		Address:            "1 Main St",
		City:               "Springfield",
		State:              "IL",
		ZipCode:            "62701",
		StartDatetime:      start,
		EndDatetime:        start.Add(4 * time.Hour),
		CareRecipientCount: 1,
		Status:             status,
		CareRecipients: []models.CareRecipient{
			{ID: 11, BookingID: 7, Name: "Kid A", DateOfBirth: now.AddDate(-5, 0, 0).Truncate(24 * time.Hour)},
		},
		CreatedAt: now.Add(-48 * time.Hour),
		UpdatedAt: now.Add(-48 * time.Hour),
	}
}
