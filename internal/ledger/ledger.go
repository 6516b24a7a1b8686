package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PricingError reports a non-positive mark price. The mark is rejected at
// the boundary and no state changes.
type PricingError struct {
	Symbol string
	Price  decimal.Decimal
}

func (e *PricingError) Error() string {
	return fmt.Sprintf("invalid price %s for %s", e.Price, e.Symbol)
}

// PnLSnapshot aggregates realized and unrealized P&L over all positions.
type PnLSnapshot struct {
	Realized   float64 `json:"realized"`
	Unrealized float64 `json:"unrealized"`
	Total      float64 `json:"total"`
}

// Ledger tracks per-symbol positions with weighted-average cost accounting
// and keeps a bounded in-memory history of P&L snapshots.
//
// The ledger itself is not locked; callers serialize access (the risk
// manager holds a single mutex across fills, marks and validations).
type Ledger struct {
	positions  map[string]*Position
	history    []PnLSnapshot
	historyCap int
}

// New creates an empty ledger retaining up to historyCap snapshots.
func New(historyCap int) *Ledger {
	if historyCap <= 0 {
		historyCap = 1024
	}
	return &Ledger{
		positions:  make(map[string]*Position),
		historyCap: historyCap,
	}
}

// RecordFill applies a signed fill quantity at the given price.
func (l *Ledger) RecordFill(symbol string, qty, price decimal.Decimal) {
	pos, ok := l.positions[symbol]
	if !ok {
		pos = &Position{}
		l.positions[symbol] = pos
	}
	pos.ApplyFill(qty, price)
}

// Mark updates the last observed price for a symbol. A non-positive price
// is rejected with *PricingError; an unknown symbol is a no-op.
func (l *Ledger) Mark(symbol string, price decimal.Decimal) error {
	if price.Sign() <= 0 {
		return &PricingError{Symbol: symbol, Price: price}
	}
	pos, ok := l.positions[symbol]
	if !ok {
		return nil
	}
	pos.LastPrice = price
	return nil
}

// Position returns a copy of the position for symbol and whether it exists.
func (l *Ledger) Position(symbol string) (Position, bool) {
	pos, ok := l.positions[symbol]
	if !ok {
		return Position{}, false
	}
	return *pos, true
}

// Each visits every position in the ledger.
func (l *Ledger) Each(fn func(symbol string, pos Position)) {
	for sym, pos := range l.positions {
		fn(sym, *pos)
	}
}

// Prices returns the latest mark for every symbol with one.
func (l *Ledger) Prices() map[string]decimal.Decimal {
	prices := make(map[string]decimal.Decimal, len(l.positions))
	for sym, pos := range l.positions {
		if !pos.LastPrice.IsZero() {
			prices[sym] = pos.LastPrice
		}
	}
	return prices
}

// Snapshot sums realized and unrealized P&L across all positions and
// appends the result to the history ring, evicting the oldest entry once
// the retention cap is reached.
func (l *Ledger) Snapshot() PnLSnapshot {
	realized := decimal.Zero
	unrealized := decimal.Zero
	for _, pos := range l.positions {
		realized = realized.Add(pos.Realized)
		unrealized = unrealized.Add(pos.Unrealized())
	}

	snap := PnLSnapshot{
		Realized:   realized.InexactFloat64(),
		Unrealized: unrealized.InexactFloat64(),
		Total:      realized.Add(unrealized).InexactFloat64(),
	}

	if len(l.history) >= l.historyCap {
		l.history = l.history[1:]
	}
	l.history = append(l.history, snap)
	return snap
}

// History returns a copy of the retained snapshots, oldest first.
func (l *Ledger) History() []PnLSnapshot {
	out := make([]PnLSnapshot, len(l.history))
	copy(out, l.history)
	return out
}
