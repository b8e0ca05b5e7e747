package statemachine

import (
	"errors"
	"fmt"

	"urbanease-api/models"
)

// Sentinel errors shared by both transition tables. Handlers map these to
// HTTP codes: ErrNoStatus and ErrInvalidTransition and ErrTerminalState are
// all client errors (400).
var (
	ErrNoStatus          = errors.New("new status required")
	ErrTerminalState     = errors.New("status cannot be updated")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// orderChain is the authoritative order state machine: each state has at
// most one legal successor, delivered has none.
var orderChain = map[models.OrderStatus]models.OrderStatus{
	models.OrderPlaced:         models.OrderPreparing,
	models.OrderPreparing:      models.OrderOutForDelivery,
	models.OrderOutForDelivery: models.OrderDelivered,
}

// NextOrderStatus returns the single legal successor of current, if any.
func NextOrderStatus(current models.OrderStatus) (models.OrderStatus, bool) {
	next, ok := orderChain[current]
	return next, ok
}

// ValidateOrderTransition decides whether current → requested is legal and
// returns the state to persist. Ownership of the order must already have
// been established by the caller.
func ValidateOrderTransition(current models.OrderStatus, requested string) (models.OrderStatus, error) {
	if requested == "" {
		return "", ErrNoStatus
	}
	next, ok := orderChain[current]
	if !ok {
		return "", fmt.Errorf("%w: order is %s", ErrTerminalState, current)
	}
	if string(next) != requested {
		return "", fmt.Errorf("%w from %s to %s", ErrInvalidTransition, current, requested)
	}
	return next, nil
}
