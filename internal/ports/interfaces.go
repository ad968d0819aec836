package ports

import (
	"context"
	"time"

	models "github.com/chrisdamba/babysitter/internal"
)

// BookingRepository is the store. Every method is atomic on its own.
type BookingRepository interface {
	CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error)
	GetBookingByID(ctx context.Context, id int64) (*models.Booking, error)
	GetBookingsPaginated(ctx context.Context, afterCursor string, limit int, status models.Status) ([]models.Booking, string, error)
	UpdateBooking(ctx context.Context, booking *models.Booking, expected models.Status) error
	UpdateStatus(ctx context.Context, id int64, from, to models.Status, at time.Time) error
	UpdateHandler(ctx context.Context, id int64, handlerID *int64, expected models.Status, at time.Time) error
	AddCareRecipient(ctx context.Context, recipient *models.CareRecipient, limit int) (*models.CareRecipient, error)
	GetCareRecipient(ctx context.Context, id int64) (*models.CareRecipient, error)
	UpdateCareRecipient(ctx context.Context, recipient *models.CareRecipient) error
	RemoveCareRecipient(ctx context.Context, id int64, at time.Time) error
	ListStatuses(ctx context.Context) ([]models.StatusInfo, error)
}

type BookingService interface {
	CreateBooking(ctx context.Context, request *models.BookingRequest, requesterID *int64) (*models.Booking, error)
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	AllBookings(ctx context.Context, req models.GetBookingsRequest) (*models.BookingPage, error)
	UpdateBooking(ctx context.Context, id int64, update *models.BookingUpdate) (*models.Booking, error)
	ChangeStatus(ctx context.Context, id int64, target models.Status) (*models.Booking, error)
	AssignHandler(ctx context.Context, id int64, handlerID *int64) (*models.Booking, error)
	AddCareRecipient(ctx context.Context, bookingID int64, request *models.CareRecipientRequest) (*models.CareRecipient, error)
	GetCareRecipient(ctx context.Context, id int64) (*models.CareRecipient, error)
	UpdateCareRecipient(ctx context.Context, id int64, update *models.CareRecipientUpdate) (*models.CareRecipient, error)
	RemoveCareRecipient(ctx context.Context, id int64) error
}

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// Actor is the authenticated caller of a request.
type Actor struct {
	UserID int64
	Role   Role
}

type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
	RoleAdmin    Role = "admin"
)

type Action string

const (
	ActionView         Action = "view"
	ActionList         Action = "list"
	ActionUpdate       Action = "update"
	ActionUpdateStatus Action = "update status"
	ActionAssign       Action = "assign"
	ActionDelete       Action = "delete"
)

// Authorizer is consulted by callers before privileged operations. The
// booking may be nil for actions that are not about a single booking.
type Authorizer interface {
	Can(actor *Actor, action Action, booking *models.Booking) bool
}
