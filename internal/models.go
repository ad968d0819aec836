package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	MaxCareRecipients = 4
	DateFormat        = "2006-01-02"
)

type BookingRequest struct {
	Name           string                 `json:"name" validate:"required,not_blank,max=255"`
	Email          string                 `json:"email" validate:"required,email,max=255"`
	Phone          string                 `json:"phone" validate:"required,not_blank,max=20"`
	Address        string                 `json:"address" validate:"required,not_blank,max=255"`
	City           string                 `json:"city" validate:"required,not_blank,max=100"`
	State          string                 `json:"state" validate:"required,not_blank,max=100"`
	ZipCode        string                 `json:"zip_code" validate:"required,not_blank,max=20"`
	StartDatetime  DateTime               `json:"start_datetime" validate:"required"`
	EndDatetime    DateTime               `json:"end_datetime" validate:"required"`
	Message        *string                `json:"message,omitempty" validate:"omitnil,max=1000"`
	CareRecipients []CareRecipientRequest `json:"care_recipients" validate:"dive"`
}

// BookingUpdate carries a partial update. Nil fields are left untouched.
type BookingUpdate struct {
	Name          *string    `json:"name,omitempty" validate:"omitnil,not_blank,max=255"`
	Email         *string    `json:"email,omitempty" validate:"omitnil,email,max=255"`
	Phone         *string    `json:"phone,omitempty" validate:"omitnil,not_blank,max=20"`
	Address       *string    `json:"address,omitempty" validate:"omitnil,not_blank,max=255"`
	City          *string    `json:"city,omitempty" validate:"omitnil,not_blank,max=100"`
	State         *string    `json:"state,omitempty" validate:"omitnil,not_blank,max=100"`
	ZipCode       *string    `json:"zip_code,omitempty" validate:"omitnil,not_blank,max=20"`
	StartDatetime *DateTime  `json:"start_datetime,omitempty"`
	EndDatetime   *DateTime  `json:"end_datetime,omitempty"`
	Message       *string    `json:"message,omitempty" validate:"omitnil,max=1000"`
}

func (u *BookingUpdate) ChangesSchedule() bool {
	return u.StartDatetime != nil || u.EndDatetime != nil
}

type CareRecipientRequest struct {
	Name        string  `json:"name" validate:"required,not_blank,max=255"`
	DateOfBirth Date    `json:"date_of_birth" validate:"required"`
	Remarks     *string `json:"remarks,omitempty" validate:"omitnil,max=1000"`
}

type CareRecipientUpdate struct {
	Name        *string `json:"name,omitempty" validate:"omitnil,not_blank,max=255"`
	DateOfBirth *Date   `json:"date_of_birth,omitempty"`
	Remarks     *string `json:"remarks,omitempty" validate:"omitnil,max=1000"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

type HandlerRequest struct {
	HandlerID *int64 `json:"handler_id"`
}

type AllBookingsResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Limit    int               `json:"limit"`
	Cursor   string            `json:"cursor"`
}

type BookingPage struct {
	Bookings []Booking
	Limit    int
	Cursor   string
}

type GetBookingsRequest struct {
	Limit  int
	Cursor string
	Status Status
}

type Booking struct {
	ID                 int64           `json:"id"`
	BookingNumber      string          `json:"booking_number"`
	RequesterID        *int64          `json:"user_id"`
	HandlerID          *int64          `json:"handled_by"`
	Name               string          `json:"name"`
	Email              string          `json:"email"`
	Phone              string          `json:"phone"`
	Address            string          `json:"address"`
	City               string          `json:"city"`
	State              string          `json:"state"`
	ZipCode            string          `json:"zip_code"`
	StartDatetime      time.Time       `json:"start_datetime"`
	EndDatetime        time.Time       `json:"end_datetime"`
	Message            *string         `json:"message"`
	CareRecipientCount int             `json:"care_recipient_count"`
	Status             Status          `json:"status"`
	CareRecipients     []CareRecipient `json:"care_recipients"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

type CareRecipient struct {
	ID          int64     `json:"id"`
	BookingID   int64     `json:"booking_id"`
	Name        string    `json:"name"`
	DateOfBirth time.Time `json:"date_of_birth"`
	Remarks     *string   `json:"remarks"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type BookingResponse struct {
	ID                 int64                   `json:"id" xml:"id"`
	BookingNumber      string                  `json:"booking_number" xml:"booking_number"`
	Name               string                  `json:"name" xml:"name"`
	Email              string                  `json:"email" xml:"email"`
	Phone              string                  `json:"phone" xml:"phone"`
	Address            string                  `json:"address" xml:"address"`
	City               string                  `json:"city" xml:"city"`
	State              string                  `json:"state" xml:"state"`
	ZipCode            string                  `json:"zip_code" xml:"zip_code"`
	StartDatetime      time.Time               `json:"start_datetime" xml:"start_datetime"`
	EndDatetime        time.Time               `json:"end_datetime" xml:"end_datetime"`
	Message            *string                 `json:"message" xml:"message,omitempty"`
	CareRecipientCount int                     `json:"care_recipient_count" xml:"care_recipient_count"`
	Status             Status                  `json:"status" xml:"status"`
	StatusLabel        string                  `json:"status_label" xml:"status_label"`
	StatusColor        string                  `json:"status_color" xml:"status_color"`
	RequesterID        *int64                  `json:"user_id" xml:"user_id,omitempty"`
	HandlerID          *int64                  `json:"handled_by" xml:"handled_by,omitempty"`
	CareRecipients     []CareRecipientResponse `json:"care_recipients" xml:"care_recipients>care_recipient"`
	CreatedAt          time.Time               `json:"created_at" xml:"created_at"`
	UpdatedAt          time.Time               `json:"updated_at" xml:"updated_at"`
}

type CareRecipientResponse struct {
	ID          int64     `json:"id" xml:"id"`
	Name        string    `json:"name" xml:"name"`
	DateOfBirth string    `json:"date_of_birth" xml:"date_of_birth"`
	Age         string    `json:"age" xml:"age"`
	AgeYears    int       `json:"age_years" xml:"age_years"`
	AgeMonths   int       `json:"age_months" xml:"age_months"`
	Remarks     *string   `json:"remarks" xml:"remarks,omitempty"`
	CreatedAt   time.Time `json:"created_at" xml:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" xml:"updated_at"`
}

// Date is a calendar date exchanged as YYYY-MM-DD. Input that cannot be
// parsed decodes without error and reports Malformed, so it surfaces as a
// field error instead of failing the whole body.
type Date struct {
	time.Time
	raw string
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func (d Date) Malformed() bool {
	return d.raw != ""
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateFormat))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s, ok := jsonScalar(data)
	if ok && s == "" {
		*d = Date{}
		return nil
	}
	t, err := parseTime(s)
	if !ok || err != nil {
		*d = Date{raw: string(data)}
		return nil
	}
	*d = DateOf(t)
	return nil
}

// DateTime is an instant accepted as RFC 3339, "2006-01-02 15:04:05" or a
// bare date. Zone-less input is read as UTC. Like Date, unparseable input
// reports Malformed instead of failing the decode.
type DateTime struct {
	time.Time
	raw string
}

func DateTimeOf(t time.Time) DateTime {
	return DateTime{Time: t}
}

func (d DateTime) Malformed() bool {
	return d.raw != ""
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(time.RFC3339))
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	s, ok := jsonScalar(data)
	if ok && s == "" {
		*d = DateTime{}
		return nil
	}
	t, err := parseTime(s)
	if !ok || err != nil {
		*d = DateTime{raw: string(data)}
		return nil
	}
	*d = DateTime{Time: t}
	return nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	DateFormat,
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q", s)
}

// jsonScalar returns the string content of a JSON string or null. ok is
// false for any other JSON value.
func jsonScalar(data []byte) (string, bool) {
	if string(data) == "null" {
		return "", true
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", false
	}
	return strings.TrimSpace(s), true
}
