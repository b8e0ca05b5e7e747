// Package pricing computes order price breakdowns from trusted server-side
// data. Client-submitted amounts are never used.
package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

// FastDeliveryCharge is the flat surcharge applied when the customer asks
// for fast delivery and the kitchen offers it.
var FastDeliveryCharge = decimal.NewFromInt(20)

var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// Quote is the immutable price breakdown persisted onto an order.
type Quote struct {
	BasePrice          decimal.Decimal
	Quantity           int
	FastDelivery       bool
	FastDeliveryCharge decimal.Decimal
	TotalPrice         decimal.Decimal
}

// QuoteOrder prices a meal order. The fast delivery charge applies only
// when both the customer requested it and the listing supports it.
func QuoteOrder(mealPrice decimal.Decimal, quantity int, fastRequested, fastAvailable bool) (Quote, error) {
	if quantity < 1 {
		return Quote{}, ErrInvalidQuantity
	}

	effectiveFast := fastRequested && fastAvailable
	charge := decimal.Zero
	if effectiveFast {
		charge = FastDeliveryCharge
	}

	total := mealPrice.Mul(decimal.NewFromInt(int64(quantity))).Add(charge)

	return Quote{
		BasePrice:          mealPrice,
		Quantity:           quantity,
		FastDelivery:       effectiveFast,
		FastDeliveryCharge: charge,
		TotalPrice:         total,
	}, nil
}
