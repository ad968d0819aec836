package service

import (
	"context"
	"fmt"
	"log/slog"

	models "github.com/chrisdamba/babysitter/internal"
	"github.com/chrisdamba/babysitter/internal/policy"
)

// AddCareRecipient attaches a recipient to an existing booking. The count is
// checked here for an early answer and again by the repository under lock.
func (s *bookingService) AddCareRecipient(ctx context.Context, bookingID int64, request *models.CareRecipientRequest) (*models.CareRecipient, error) {
	now := s.clock.Now()

	verr, err := s.validator.FieldErrors(request)
	if err != nil {
		return nil, err
	}
	if checkWellFormed(verr, "date_of_birth", request.DateOfBirth) && !request.DateOfBirth.IsZero() {
		if err := policy.CheckRecipientAge(now, request.DateOfBirth.Time); err != nil {
			verr.AddCause("date_of_birth", err.Error(), err)
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("error fetching booking: %w", err)
	}
	if len(booking.CareRecipients) >= models.MaxCareRecipients {
		return nil, models.ErrCapacityExceeded
	}

	recipient := &models.CareRecipient{
		BookingID:   bookingID,
		Name:        request.Name,
		DateOfBirth: request.DateOfBirth.Time,
		Remarks:     request.Remarks,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	saved, err := s.repo.AddCareRecipient(ctx, recipient, models.MaxCareRecipients)
	if err != nil {
		return nil, fmt.Errorf("error adding care recipient: %w", err)
	}

	s.logger.InfoContext(ctx, "care recipient added",
		slog.Int64("booking_id", bookingID),
		slog.Int64("care_recipient_id", saved.ID))
	return saved, nil
}

func (s *bookingService) GetCareRecipient(ctx context.Context, id int64) (*models.CareRecipient, error) {
	recipient, err := s.repo.GetCareRecipient(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error fetching care recipient: %w", err)
	}
	return recipient, nil
}

// UpdateCareRecipient applies a partial update. The resulting date of birth
// is always re-checked, even when it was not part of the update.
func (s *bookingService) UpdateCareRecipient(ctx context.Context, id int64, update *models.CareRecipientUpdate) (*models.CareRecipient, error) {
	now := s.clock.Now()

	verr, err := s.validator.FieldErrors(update)
	if err != nil {
		return nil, err
	}

	recipient, err := s.repo.GetCareRecipient(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error fetching care recipient: %w", err)
	}

	dob := recipient.DateOfBirth
	if update.DateOfBirth != nil && checkWellFormed(verr, "date_of_birth", *update.DateOfBirth) {
		dob = update.DateOfBirth.Time
	}
	if err := policy.CheckRecipientAge(now, dob); err != nil {
		verr.AddCause("date_of_birth", err.Error(), err)
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if update.Name != nil {
		recipient.Name = *update.Name
	}
	recipient.DateOfBirth = dob
	if update.Remarks != nil {
		if *update.Remarks == "" {
			recipient.Remarks = nil
		} else {
			remarks := *update.Remarks
			recipient.Remarks = &remarks
		}
	}
	recipient.UpdatedAt = now

	if err := s.repo.UpdateCareRecipient(ctx, recipient); err != nil {
		return nil, fmt.Errorf("error updating care recipient: %w", err)
	}
	return recipient, nil
}

func (s *bookingService) RemoveCareRecipient(ctx context.Context, id int64) error {
	if err := s.repo.RemoveCareRecipient(ctx, id, s.clock.Now()); err != nil {
		return fmt.Errorf("error removing care recipient: %w", err)
	}
	s.logger.InfoContext(ctx, "care recipient removed", slog.Int64("care_recipient_id", id))
	return nil
}
