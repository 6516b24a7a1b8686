package ledger

import (
	"github.com/shopspring/decimal"
)

// Position is the mark-to-market view of one symbol: signed net quantity,
// weighted-average cost of the open quantity, cumulative realized P&L and
// the latest observed price.
type Position struct {
	Quantity  decimal.Decimal
	AvgPrice  decimal.Decimal
	Realized  decimal.Decimal
	LastPrice decimal.Decimal
}

// ApplyFill folds a signed fill into the position.
//
// A same-side fill blends the average price by quantity weight. An
// opposite-side fill realizes P&L on the closed portion; if the fill is
// larger than the open quantity the excess opens a new position at the
// fill price. When the net quantity reaches zero the average resets to
// zero. Every fill also refreshes LastPrice.
func (p *Position) ApplyFill(qty, price decimal.Decimal) {
	sameSide := p.Quantity.Mul(qty).Sign() >= 0
	if sameSide {
		total := p.Quantity.Add(qty)
		if !total.IsZero() {
			p.AvgPrice = p.AvgPrice.Mul(p.Quantity).Add(price.Mul(qty)).Div(total)
		}
		p.Quantity = total
	} else {
		closed := decimal.Min(qty.Abs(), p.Quantity.Abs())
		sign := decimal.NewFromInt(1)
		if p.Quantity.Sign() < 0 {
			sign = decimal.NewFromInt(-1)
		}
		p.Realized = p.Realized.Add(price.Sub(p.AvgPrice).Mul(closed).Mul(sign))
		p.Quantity = p.Quantity.Add(qty)
		if p.Quantity.IsZero() {
			p.AvgPrice = decimal.Zero
		}
		if qty.Abs().GreaterThan(closed) {
			// Flip: the excess opens fresh at the fill price.
			p.AvgPrice = price
		}
	}
	p.LastPrice = price
}

// Unrealized returns (LastPrice - AvgPrice) * Quantity.
func (p *Position) Unrealized() decimal.Decimal {
	return p.LastPrice.Sub(p.AvgPrice).Mul(p.Quantity)
}
