package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	models "github.com/chrisdamba/babysitter/internal"
	"github.com/chrisdamba/babysitter/internal/policy"
	"github.com/chrisdamba/babysitter/internal/ports"
	"github.com/chrisdamba/babysitter/internal/validator"
	"github.com/chrisdamba/babysitter/internal/workflow"
)

const (
	defaultLimit          = 10
	defaultNumberAttempts = 5

	msgTooSoon          = "Booking must be at least 6 hours in advance."
	msgRescheduleSoon   = "Changes must be made at least 24 hours in advance."
	msgTooFar           = "Booking must be within the next 30 days."
	msgEndAfterStart    = "The end datetime field must be a date after start datetime."
	msgNoRecipients     = "At least one child is required for babysitting."
	msgTooManyRecipient = "Maximum 4 children allowed per booking."
	msgUnknownStatus    = "The selected status is invalid."
)

type malformable interface {
	Malformed() bool
}

type Option func(*bookingService)

func WithClock(clock ports.Clock) Option {
	return func(s *bookingService) {
		s.clock = clock
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *bookingService) {
		s.logger = logger
	}
}

// WithNumberGenerator replaces the booking number generator.
func WithNumberGenerator(fn func(time.Time) string) Option {
	return func(s *bookingService) {
		s.newNumber = fn
	}
}

func WithNumberAttempts(n int) Option {
	return func(s *bookingService) {
		if n > 0 {
			s.attempts = n
		}
	}
}

type bookingService struct {
	repo      ports.BookingRepository
	validator *validator.CustomValidator
	clock     ports.Clock
	logger    *slog.Logger
	newNumber func(time.Time) string
	attempts  int
}

func NewBookingService(repo ports.BookingRepository, opts ...Option) *bookingService {
	s := &bookingService{
		repo:      repo,
		validator: validator.NewCustomValidator(),
		clock:     ports.SystemClock{},
		logger:    slog.Default(),
		newNumber: GenerateBookingNumber,
		attempts:  defaultNumberAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateBookingNumber returns BKS-YYYYMMDD-NNNN with a random NNNN.
func GenerateBookingNumber(now time.Time) string {
	return fmt.Sprintf("BKS-%s-%04d", now.Format("20060102"), 1000+rand.IntN(9000))
}

func (s *bookingService) CreateBooking(ctx context.Context, request *models.BookingRequest, requesterID *int64) (*models.Booking, error) {
	now := s.clock.Now()

	verr, err := s.validator.FieldErrors(request)
	if err != nil {
		return nil, err
	}
	startOK := checkWellFormed(verr, "start_datetime", request.StartDatetime)
	endOK := checkWellFormed(verr, "end_datetime", request.EndDatetime)
	if startOK && endOK {
		minStart, maxStart := policy.BookingWindow(now)
		checkSchedule(verr, request.StartDatetime.Time, request.EndDatetime.Time, minStart, maxStart, msgTooSoon)
	}
	checkRecipients(verr, now, request.CareRecipients)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	booking := &models.Booking{
		RequesterID:   requesterID,
		Name:          request.Name,
		Email:         request.Email,
		Phone:         request.Phone,
		Address:       request.Address,
		City:          request.City,
		State:         request.State,
		ZipCode:       request.ZipCode,
		StartDatetime: request.StartDatetime.Time,
		EndDatetime:   request.EndDatetime.Time,
		Message:       request.Message,
		Status:        workflow.InitialStatus(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, r := range request.CareRecipients {
		booking.CareRecipients = append(booking.CareRecipients, models.CareRecipient{
			Name:        r.Name,
			DateOfBirth: r.DateOfBirth.Time,
			Remarks:     r.Remarks,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	booking.CareRecipientCount = len(booking.CareRecipients)

	for attempt := 1; attempt <= s.attempts; attempt++ {
		booking.BookingNumber = s.newNumber(now)
		saved, err := s.repo.CreateBooking(ctx, booking)
		if err == nil {
			s.logger.InfoContext(ctx, "booking created",
				slog.Int64("booking_id", saved.ID),
				slog.String("booking_number", saved.BookingNumber),
				slog.Int("care_recipients", saved.CareRecipientCount))
			return saved, nil
		}
		if !errors.Is(err, models.ErrDuplicateBookingNumber) {
			return nil, fmt.Errorf("error creating booking: %w", err)
		}
		s.logger.WarnContext(ctx, "booking number collision, retrying",
			slog.String("booking_number", booking.BookingNumber),
			slog.Int("attempt", attempt))
	}
	return nil, fmt.Errorf("error creating booking after %d attempts: %w", s.attempts, models.ErrDuplicateBookingNumber)
}

func (s *bookingService) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	booking, err := s.repo.GetBookingByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error fetching booking: %w", err)
	}
	return booking, nil
}

func (s *bookingService) AllBookings(ctx context.Context, req models.GetBookingsRequest) (*models.BookingPage, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	if req.Status != "" && !req.Status.Valid() {
		verr := models.NewValidationError()
		verr.Add("status", msgUnknownStatus)
		return nil, verr
	}

	bookings, nextCursor, err := s.repo.GetBookingsPaginated(ctx, req.Cursor, limit, req.Status)
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings: %w", err)
	}

	return &models.BookingPage{
		Bookings: bookings,
		Limit:    limit,
		Cursor:   nextCursor,
	}, nil
}

// UpdateBooking applies the non-nil fields of update. A schedule change is
// checked against the reschedule window for the booking's current status.
func (s *bookingService) UpdateBooking(ctx context.Context, id int64, update *models.BookingUpdate) (*models.Booking, error) {
	now := s.clock.Now()

	verr, err := s.validator.FieldErrors(update)
	if err != nil {
		return nil, err
	}

	booking, err := s.repo.GetBookingByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error fetching booking: %w", err)
	}

	startOK := update.StartDatetime == nil || checkWellFormed(verr, "start_datetime", *update.StartDatetime)
	endOK := update.EndDatetime == nil || checkWellFormed(verr, "end_datetime", *update.EndDatetime)
	if update.ChangesSchedule() && startOK && endOK {
		start, end := booking.StartDatetime, booking.EndDatetime
		if update.StartDatetime != nil {
			start = update.StartDatetime.Time
		}
		if update.EndDatetime != nil {
			end = update.EndDatetime.Time
		}
		minStart, maxStart := policy.RescheduleWindow(now, booking.Status)
		tooSoon := msgTooSoon
		if booking.Status != models.StatusPending {
			tooSoon = msgRescheduleSoon
		}
		checkSchedule(verr, start, end, minStart, maxStart, tooSoon)
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	expected := booking.Status
	applyUpdate(booking, update)
	booking.UpdatedAt = now

	if err := s.repo.UpdateBooking(ctx, booking, expected); err != nil {
		return nil, fmt.Errorf("error updating booking: %w", err)
	}
	return booking, nil
}

func (s *bookingService) ChangeStatus(ctx context.Context, id int64, target models.Status) (*models.Booking, error) {
	if !target.Valid() {
		verr := models.NewValidationError()
		verr.Add("status", msgUnknownStatus)
		return nil, verr
	}

	booking, err := s.repo.GetBookingByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error fetching booking: %w", err)
	}

	if err := workflow.Transition(booking.Status, target); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if err := s.repo.UpdateStatus(ctx, id, booking.Status, target, now); err != nil {
		return nil, fmt.Errorf("error changing booking status: %w", err)
	}

	s.logger.InfoContext(ctx, "booking status changed",
		slog.Int64("booking_id", id),
		slog.String("from", string(booking.Status)),
		slog.String("to", string(target)))

	booking.Status = target
	booking.UpdatedAt = now
	return booking, nil
}

// AssignHandler sets or clears the staff member handling the booking.
func (s *bookingService) AssignHandler(ctx context.Context, id int64, handlerID *int64) (*models.Booking, error) {
	booking, err := s.repo.GetBookingByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error fetching booking: %w", err)
	}
	if workflow.IsTerminal(booking.Status) {
		return nil, fmt.Errorf("cannot assign handler to %s booking: %w", booking.Status, models.ErrTerminalBooking)
	}

	now := s.clock.Now()
	if err := s.repo.UpdateHandler(ctx, id, handlerID, booking.Status, now); err != nil {
		return nil, fmt.Errorf("error assigning handler: %w", err)
	}

	booking.HandlerID = handlerID
	booking.UpdatedAt = now
	return booking, nil
}

func checkSchedule(verr *models.ValidationError, start, end, minStart, maxStart time.Time, tooSoon string) {
	if !start.IsZero() {
		switch {
		case start.Before(minStart):
			verr.Add("start_datetime", tooSoon)
		case start.After(maxStart):
			verr.Add("start_datetime", msgTooFar)
		}
	}
	if !start.IsZero() && !end.IsZero() && !end.After(start) {
		verr.Add("end_datetime", msgEndAfterStart)
	}
}

// checkWellFormed records a field error for a date that could not be parsed.
func checkWellFormed(verr *models.ValidationError, field string, v malformable) bool {
	if !v.Malformed() {
		return true
	}
	attr := field[strings.LastIndex(field, ".")+1:]
	verr.Add(field, fmt.Sprintf("The %s field must be a valid date.", strings.ReplaceAll(attr, "_", " ")))
	return false
}

func checkRecipients(verr *models.ValidationError, now time.Time, recipients []models.CareRecipientRequest) {
	switch n := len(recipients); {
	case n == 0:
		verr.Add("care_recipients", msgNoRecipients)
	case n > models.MaxCareRecipients:
		verr.AddCause("care_recipients", msgTooManyRecipient, models.ErrCapacityExceeded)
	}

	for i, r := range recipients {
		field := fmt.Sprintf("care_recipients.%d.date_of_birth", i)
		if !checkWellFormed(verr, field, r.DateOfBirth) || r.DateOfBirth.IsZero() {
			continue
		}
		if err := policy.CheckRecipientAge(now, r.DateOfBirth.Time); err != nil {
			verr.AddCause(field, err.Error(), err)
		}
	}
}

func applyUpdate(booking *models.Booking, update *models.BookingUpdate) {
	if update.Name != nil {
		booking.Name = *update.Name
	}
	if update.Email != nil {
		booking.Email = *update.Email
	}
	if update.Phone != nil {
		booking.Phone = *update.Phone
	}
	if update.Address != nil {
		booking.Address = *update.Address
	}
	if update.City != nil {
		booking.City = *update.City
	}
	if update.State != nil {
		booking.State = *update.State
	}
	if update.ZipCode != nil {
		booking.ZipCode = *update.ZipCode
	}
	if update.StartDatetime != nil {
		booking.StartDatetime = update.StartDatetime.Time
	}
	if update.EndDatetime != nil {
		booking.EndDatetime = update.EndDatetime.Time
	}
	if update.Message != nil {
		if *update.Message == "" {
			booking.Message = nil
		} else {
			msg := *update.Message
			booking.Message = &msg
		}
	}
}
