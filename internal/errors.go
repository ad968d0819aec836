package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound              = errors.New("not found")
	ErrBookingNotFound       = fmt.Errorf("booking %w", ErrNotFound)
	ErrCareRecipientNotFound = fmt.Errorf("care recipient %w", ErrNotFound)
)

var (
	ErrCapacityExceeded       = errors.New("maximum of 4 children allowed per request")
	ErrInvalidAge             = errors.New("invalid care recipient age")
	ErrIllegalTransition      = errors.New("the selected status transition is not allowed")
	ErrDuplicateBookingNumber = errors.New("booking number already exists")
	ErrStaleBooking           = errors.New("booking was modified concurrently")
	ErrTerminalBooking        = errors.New("booking is in a terminal status")
)

// ValidationError collects per-field messages. Causes carry the underlying
// error kinds so callers can still match ErrInvalidAge or ErrCapacityExceeded.
type ValidationError struct {
	Fields map[string][]string
	causes []error
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

func (v *ValidationError) Add(field, msg string) {
	if v.Fields == nil {
		v.Fields = make(map[string][]string)
	}
	v.Fields[field] = append(v.Fields[field], msg)
}

func (v *ValidationError) AddCause(field, msg string, cause error) {
	v.Add(field, msg)
	if cause != nil {
		v.causes = append(v.causes, cause)
	}
}

func (v *ValidationError) HasErrors() bool {
	return len(v.Fields) > 0
}

// OrNil returns nil when nothing was recorded so the result can be returned
// directly as an error.
func (v *ValidationError) OrNil() error {
	if v == nil || !v.HasErrors() {
		return nil
	}
	return v
}

func (v *ValidationError) Merge(other *ValidationError) {
	if other == nil {
		return
	}
	for field, msgs := range other.Fields {
		for _, msg := range msgs {
			v.Add(field, msg)
		}
	}
	v.causes = append(v.causes, other.causes...)
}

func (v *ValidationError) Error() string {
	fields := make([]string, 0, len(v.Fields))
	for f := range v.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, strings.Join(v.Fields[f], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (v *ValidationError) Unwrap() []error {
	return v.causes
}

type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot change status from %s to %s: %s", e.From, e.To, ErrIllegalTransition)
}

func (e *TransitionError) Unwrap() error {
	return ErrIllegalTransition
}
