// Package policy holds the time-based booking rules. Every function takes the
// current instant explicitly so callers can inject a clock.
package policy

import (
	"fmt"
	"time"

	models "github.com/chrisdamba/babysitter/internal"
)

const (
	MinBookingNotice    = 6 * time.Hour
	MinRescheduleNotice = 24 * time.Hour
	MaxBookingHorizon   = 30 * 24 * time.Hour

	MinRecipientAgeMonths = 1
	MaxRecipientAgeMonths = 155 // 12 years and 11 months
)

// BookingWindow returns the inclusive range a new booking may start in.
func BookingWindow(now time.Time) (time.Time, time.Time) {
	return now.Add(MinBookingNotice), now.Add(MaxBookingHorizon)
}

// RescheduleWindow is the booking window while pending, and requires a full
// day of notice once the booking has moved on.
func RescheduleWindow(now time.Time, current models.Status) (time.Time, time.Time) {
	if current == models.StatusPending {
		return BookingWindow(now)
	}
	return now.Add(MinRescheduleNotice), now.Add(MaxBookingHorizon)
}

func InWindow(t, min, max time.Time) bool {
	return !t.Before(min) && !t.After(max)
}

// AgeInMonths counts whole calendar months from dob to now. The result is
// negative when dob lies in the future.
func AgeInMonths(now, dob time.Time) int {
	from := dateOf(dob, now.Location())
	to := dateOf(now, now.Location())
	if to.Before(from) {
		return -monthsBetween(to, from)
	}
	return monthsBetween(from, to)
}

func IsRecipientAgeValid(now, dob time.Time) bool {
	return CheckRecipientAge(now, dob) == nil
}

// AgeError explains a rejected date of birth and matches models.ErrInvalidAge.
type AgeError struct {
	Reason string
}

func (e *AgeError) Error() string { return e.Reason }

func (e *AgeError) Unwrap() error { return models.ErrInvalidAge }

// CheckRecipientAge returns an *AgeError when dob is outside the accepted
// range, nil otherwise.
func CheckRecipientAge(now, dob time.Time) error {
	today := dateOf(now, now.Location())
	if !dateOf(dob, now.Location()).Before(today) {
		return &AgeError{Reason: "The date of birth must be a date before today."}
	}

	months := AgeInMonths(now, dob)
	if months < MinRecipientAgeMonths {
		return &AgeError{Reason: "The child must be at least 1 month old."}
	}
	if months > MaxRecipientAgeMonths {
		return &AgeError{Reason: "The child must be at most 12 years and 11 months old."}
	}
	return nil
}

func AgeYears(now, dob time.Time) int {
	if dob.IsZero() {
		return 0
	}
	from := dateOf(dob, now.Location())
	to := dateOf(now, now.Location())
	if to.Before(from) {
		return 0
	}
	years := to.Year() - from.Year()
	if to.Month() < from.Month() || (to.Month() == from.Month() && to.Day() < from.Day()) {
		years--
	}
	return years
}

// AgeMonths is the month part of the "X years, Y months" age.
func AgeMonths(now, dob time.Time) int {
	if dob.IsZero() {
		return 0
	}
	years := AgeYears(now, dob)
	anchor := dateOf(now, now.Location()).AddDate(-years, 0, 0)
	months := monthsBetween(dateOf(dob, now.Location()), anchor)
	if months < 0 {
		return 0
	}
	return months
}

func AgeDisplay(now, dob time.Time) string {
	if dob.IsZero() {
		return "Unknown"
	}
	years := AgeYears(now, dob)
	months := AgeMonths(now, dob)
	if years > 0 {
		s := pluralize(years, "year")
		if months > 0 {
			s += ", " + pluralize(months, "month")
		}
		return s
	}
	return pluralize(months, "month")
}

func monthsBetween(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	return months
}

func dateOf(t time.Time, loc *time.Location) time.Time {
	if t.Location() != loc && !isDateOnly(t) {
		t = t.In(loc)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// isDateOnly reports whether t is a bare calendar date, which must not be
// shifted into another zone before taking its day.
func isDateOnly(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
