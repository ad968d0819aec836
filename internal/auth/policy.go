package auth

import (
	models "github.com/chrisdamba/babysitter/internal"
	"github.com/chrisdamba/babysitter/internal/ports"
)

// Policy lets staff and admins do anything. Customers may view and edit
// bookings they requested, including the care recipients on them.
type Policy struct{}

func (Policy) Can(actor *ports.Actor, action ports.Action, booking *models.Booking) bool {
	if actor == nil {
		return false
	}
	switch actor.Role {
	case ports.RoleStaff, ports.RoleAdmin:
		return true
	case ports.RoleCustomer:
		switch action {
		case ports.ActionView, ports.ActionUpdate, ports.ActionDelete:
			return owns(actor, booking)
		}
	}
	return false
}

func owns(actor *ports.Actor, booking *models.Booking) bool {
	return booking != nil && booking.RequesterID != nil && *booking.RequesterID == actor.UserID
}
