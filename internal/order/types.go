package order

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Side is the direction of an order.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Order is an immutable order intent. Quantity is signed: positive means
// buy, negative means sell.
type Order struct {
	ID       string
	Symbol   string
	Quantity decimal.Decimal
	Price    decimal.Decimal
	Side     Side
}

// ValidationError reports a malformed order that must not reach the ledger.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid order %s: %s", e.Field, e.Msg)
}

// New builds an Order from raw numeric inputs, rejecting values that would
// corrupt ledger arithmetic (NaN, infinities, empty symbol, unknown side).
func New(symbol string, qty, price float64, side Side) (Order, error) {
	if symbol == "" {
		return Order{}, &ValidationError{Field: "symbol", Msg: "must not be empty"}
	}
	if math.IsNaN(qty) || math.IsInf(qty, 0) {
		return Order{}, &ValidationError{Field: "quantity", Msg: fmt.Sprintf("not finite: %v", qty)}
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return Order{}, &ValidationError{Field: "price", Msg: fmt.Sprintf("not finite: %v", price)}
	}
	if side != SideBuy && side != SideSell {
		return Order{}, &ValidationError{Field: "side", Msg: fmt.Sprintf("unknown side %q", side)}
	}
	return Order{
		ID:       uuid.NewString(),
		Symbol:   symbol,
		Quantity: decimal.NewFromFloat(qty),
		Price:    decimal.NewFromFloat(price),
		Side:     side,
	}, nil
}

// NewFromDecimal builds an Order for callers that already hold exact values.
func NewFromDecimal(symbol string, qty, price decimal.Decimal, side Side) (Order, error) {
	if symbol == "" {
		return Order{}, &ValidationError{Field: "symbol", Msg: "must not be empty"}
	}
	if side != SideBuy && side != SideSell {
		return Order{}, &ValidationError{Field: "side", Msg: fmt.Sprintf("unknown side %q", side)}
	}
	return Order{
		ID:       uuid.NewString(),
		Symbol:   symbol,
		Quantity: qty,
		Price:    price,
		Side:     side,
	}, nil
}

// Notional returns |quantity| * price.
func (o Order) Notional() decimal.Decimal {
	return o.Quantity.Abs().Mul(o.Price)
}
