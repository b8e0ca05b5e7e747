package statemachine

import (
	"fmt"

	"urbanease-api/models"
)

// bookingTransitions is branching, unlike the order chain: a requested
// booking may be accepted or cancelled, an accepted one completed or
// cancelled. completed and cancelled are terminal.
var bookingTransitions = map[models.BookingStatus][]models.BookingStatus{
	models.BookingRequested: {models.BookingAccepted, models.BookingCancelled},
	models.BookingAccepted:  {models.BookingCompleted, models.BookingCancelled},
}

// ValidBookingTransitionsFrom returns all legal next states from current.
func ValidBookingTransitionsFrom(current models.BookingStatus) []models.BookingStatus {
	return bookingTransitions[current]
}

// ValidateBookingTransition decides whether current → requested is legal
// and returns the state to persist.
func ValidateBookingTransition(current models.BookingStatus, requested string) (models.BookingStatus, error) {
	if requested == "" {
		return "", ErrNoStatus
	}
	allowed, ok := bookingTransitions[current]
	if !ok {
		return "", fmt.Errorf("%w: booking is %s", ErrTerminalState, current)
	}
	for _, next := range allowed {
		if string(next) == requested {
			return next, nil
		}
	}
	return "", fmt.Errorf("%w from %s to %s", ErrInvalidTransition, current, requested)
}
