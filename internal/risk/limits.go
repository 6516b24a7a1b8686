package risk

import (
	"time"

	"github.com/shopspring/decimal"

	"risk-core/internal/order"
	"risk-core/internal/portfolio"
)

// Limit is the single capability every policy in the chain implements.
// A non-empty reason means the order is rejected; the chain stops at the
// first breach.
type Limit interface {
	Check(o order.Order, pf *portfolio.Portfolio, prices map[string]decimal.Decimal) string
}

// PositionLimit enforces per-symbol and total position size caps.
type PositionLimit struct {
	SymbolLimit decimal.Decimal
	TotalLimit  decimal.Decimal
}

func (l *PositionLimit) Check(o order.Order, pf *portfolio.Portfolio, _ map[string]decimal.Decimal) string {
	current := pf.Quantity(o.Symbol)
	if current.Add(o.Quantity).Abs().GreaterThan(l.SymbolLimit) {
		return "symbol position limit"
	}
	if pf.TotalAbsQuantity().Add(o.Quantity.Abs()).GreaterThan(l.TotalLimit) {
		return "total position limit"
	}
	return ""
}

// DailyLossLimit stops trading once the tracker P&L falls below -MaxLoss.
type DailyLossLimit struct {
	MaxLoss decimal.Decimal
}

func (l *DailyLossLimit) Check(_ order.Order, pf *portfolio.Portfolio, _ map[string]decimal.Decimal) string {
	if pf.PnL().LessThan(l.MaxLoss.Neg()) {
		return "daily loss limit"
	}
	return ""
}

// ConcentrationLimit caps the post-trade share of one symbol in total
// portfolio notional. Positions are valued at the best-known price,
// falling back to their average cost (or the order price for the
// candidate symbol).
type ConcentrationLimit struct {
	MaxFraction decimal.Decimal
}

func (l *ConcentrationLimit) Check(o order.Order, pf *portfolio.Portfolio, prices map[string]decimal.Decimal) string {
	total := decimal.Zero
	pf.Each(func(sym string, pos portfolio.Position) {
		total = total.Add(pos.Quantity.Mul(priceFor(prices, sym, pos.AvgPrice)).Abs())
	})
	orderValue := o.Quantity.Mul(priceFor(prices, o.Symbol, o.Price)).Abs()
	total = total.Add(orderValue)
	if total.IsZero() {
		return ""
	}

	symValue := orderValue
	if existing, ok := pf.Position(o.Symbol); ok {
		symValue = symValue.Add(existing.Quantity.Mul(priceFor(prices, o.Symbol, existing.AvgPrice)).Abs())
	}
	if symValue.Div(total).GreaterThan(l.MaxFraction) {
		return "concentration limit"
	}
	return ""
}

func priceFor(prices map[string]decimal.Decimal, symbol string, fallback decimal.Decimal) decimal.Decimal {
	if p, ok := prices[symbol]; ok {
		return p
	}
	return fallback
}

// VelocityLimit caps trade frequency inside a sliding window. Every Check
// call consumes velocity budget, including calls that end up rejected.
type VelocityLimit struct {
	MaxTrades int
	Window    time.Duration

	history []time.Time
	now     func() time.Time
}

// NewVelocityLimit creates a velocity limit with a windowSec-second window.
func NewVelocityLimit(maxTrades, windowSec int) *VelocityLimit {
	return &VelocityLimit{
		MaxTrades: maxTrades,
		Window:    time.Duration(windowSec) * time.Second,
		now:       time.Now,
	}
}

func (l *VelocityLimit) Check(_ order.Order, _ *portfolio.Portfolio, _ map[string]decimal.Decimal) string {
	now := l.now()
	l.history = append(l.history, now)
	for len(l.history) > 0 && now.Sub(l.history[0]) > l.Window {
		l.history = l.history[1:]
	}
	if len(l.history) > l.MaxTrades {
		return "velocity limit"
	}
	return ""
}

// DrawdownLimit rejects orders once tracker P&L has fallen more than
// MaxDrawdown below its own high-watermark. The watermark is private to
// this limit; the circuit breaker keeps a separate one.
type DrawdownLimit struct {
	MaxDrawdown   decimal.Decimal
	highWatermark decimal.Decimal
}

func (l *DrawdownLimit) Check(_ order.Order, pf *portfolio.Portfolio, _ map[string]decimal.Decimal) string {
	pnl := pf.PnL()
	if pnl.GreaterThan(l.highWatermark) {
		l.highWatermark = pnl
	}
	if l.highWatermark.Sub(pnl).GreaterThan(l.MaxDrawdown) {
		return "drawdown limit"
	}
	return ""
}
