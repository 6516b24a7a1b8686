package portfolio

import (
	"github.com/shopspring/decimal"
)

// Position is the simplified per-symbol view used by limit checks.
type Position struct {
	Quantity decimal.Decimal
	AvgPrice decimal.Decimal
}

// Portfolio is a lightweight net-exposure tracker. It deliberately keeps a
// simpler P&L than the ledger: a running cash-flow proxy accumulated as
// -price*qty on every update. Limit checks read this view so they never
// depend on full mark-to-market accounting.
type Portfolio struct {
	positions map[string]*Position
	pnl       decimal.Decimal
}

// New creates an empty portfolio.
func New() *Portfolio {
	return &Portfolio{positions: make(map[string]*Position)}
}

// Update folds a signed fill into the tracker. Unlike the ledger this
// always blends the average toward the combined quantity regardless of
// side; a net-zero result clears the position.
func (p *Portfolio) Update(symbol string, qty, price decimal.Decimal) {
	pos, ok := p.positions[symbol]
	if !ok {
		pos = &Position{}
		p.positions[symbol] = pos
	}

	newQty := pos.Quantity.Add(qty)
	if newQty.IsZero() {
		pos.Quantity = decimal.Zero
		pos.AvgPrice = decimal.Zero
	} else {
		pos.AvgPrice = pos.AvgPrice.Mul(pos.Quantity).Add(price.Mul(qty)).Div(newQty)
		pos.Quantity = newQty
	}

	p.pnl = p.pnl.Add(price.Mul(qty).Neg())
}

// PnL returns the running cash-flow P&L.
func (p *Portfolio) PnL() decimal.Decimal {
	return p.pnl
}

// Quantity returns the net quantity for symbol (zero if untracked).
func (p *Portfolio) Quantity(symbol string) decimal.Decimal {
	if pos, ok := p.positions[symbol]; ok {
		return pos.Quantity
	}
	return decimal.Zero
}

// Position returns a copy of the tracked position and whether it exists.
func (p *Portfolio) Position(symbol string) (Position, bool) {
	pos, ok := p.positions[symbol]
	if !ok {
		return Position{}, false
	}
	return *pos, true
}

// TotalAbsQuantity sums |quantity| over all symbols.
func (p *Portfolio) TotalAbsQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, pos := range p.positions {
		total = total.Add(pos.Quantity.Abs())
	}
	return total
}

// Len returns the number of tracked symbols.
func (p *Portfolio) Len() int {
	return len(p.positions)
}

// Each visits every tracked position.
func (p *Portfolio) Each(fn func(symbol string, pos Position)) {
	for sym, pos := range p.positions {
		fn(sym, *pos)
	}
}
