// Package workflow is the booking status state machine.
package workflow

import (
	models "github.com/chrisdamba/babysitter/internal"
)

var transitions = map[models.Status][]models.Status{
	models.StatusPending:   {models.StatusConfirmed, models.StatusAssigned, models.StatusCancelled},
	models.StatusConfirmed: {models.StatusAssigned, models.StatusCancelled},
	models.StatusAssigned:  {models.StatusCompleted, models.StatusCancelled, models.StatusNoShow},
	models.StatusCompleted: nil,
	models.StatusCancelled: nil,
	models.StatusNoShow:    nil,
}

func InitialStatus() models.Status {
	return models.StatusPending
}

// AllowedTransitions returns a copy of the statuses reachable from s.
func AllowedTransitions(s models.Status) []models.Status {
	allowed := transitions[s]
	out := make([]models.Status, len(allowed))
	copy(out, allowed)
	return out
}

func CanTransition(from, to models.Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func IsTerminal(s models.Status) bool {
	return s.Valid() && len(transitions[s]) == 0
}

// Transition validates a requested move and returns a *models.TransitionError
// when it is not allowed.
func Transition(from, to models.Status) error {
	if !CanTransition(from, to) {
		return &models.TransitionError{From: from, To: to}
	}
	return nil
}
