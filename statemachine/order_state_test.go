package statemachine

import (
	"testing"

	"urbanease-api/models"

	"github.com/stretchr/testify/assert"
)

func TestOrderChainWalksForward(t *testing.T) {
	steps := []struct {
		current models.OrderStatus
		next    models.OrderStatus
	}{
		{models.OrderPlaced, models.OrderPreparing},
		{models.OrderPreparing, models.OrderOutForDelivery},
		{models.OrderOutForDelivery, models.OrderDelivered},
	}
	for _, step := range steps {
		got, err := ValidateOrderTransition(step.current, string(step.next))
		assert.NoError(t, err, "from %s", step.current)
		assert.Equal(t, step.next, got)
	}
}

func TestOrderDeliveredIsTerminal(t *testing.T) {
	for _, requested := range []string{"placed", "preparing", "out_for_delivery", "delivered", "refunded"} {
		_, err := ValidateOrderTransition(models.OrderDelivered, requested)
		assert.ErrorIs(t, err, ErrTerminalState, "requested %s", requested)
	}
}

func TestOrderRejectsSkippedAndBackwardSteps(t *testing.T) {
	cases := []struct {
		current   models.OrderStatus
		requested string
	}{
		{models.OrderPlaced, "out_for_delivery"},
		{models.OrderPlaced, "delivered"},
		{models.OrderPreparing, "placed"},
		{models.OrderPreparing, "delivered"},
		{models.OrderOutForDelivery, "preparing"},
	}
	for _, tc := range cases {
		_, err := ValidateOrderTransition(tc.current, tc.requested)
		assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s", tc.current, tc.requested)
	}
}

func TestOrderEmptyStatus(t *testing.T) {
	_, err := ValidateOrderTransition(models.OrderPlaced, "")
	assert.ErrorIs(t, err, ErrNoStatus)
}

func TestOrderUnknownCurrentState(t *testing.T) {
	_, err := ValidateOrderTransition(models.OrderStatus("refunded"), "delivered")
	assert.ErrorIs(t, err, ErrTerminalState)
}

func TestNextOrderStatus(t *testing.T) {
	next, ok := NextOrderStatus(models.OrderPlaced)
	assert.True(t, ok)
	assert.Equal(t, models.OrderPreparing, next)

	_, ok = NextOrderStatus(models.OrderDelivered)
	assert.False(t, ok)
}
