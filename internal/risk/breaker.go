package risk

import (
	"github.com/shopspring/decimal"
)

// DrawdownBreaker halts all trading once drawdown from its high-watermark
// exceeds the threshold. The trip is a latch: once tripped every check
// fails, even after P&L recovers, until an operator calls Reset.
type DrawdownBreaker struct {
	Threshold decimal.Decimal

	highWatermark decimal.Decimal
	tripped       bool
}

// NewDrawdownBreaker creates an armed breaker.
func NewDrawdownBreaker(threshold decimal.Decimal) *DrawdownBreaker {
	return &DrawdownBreaker{Threshold: threshold}
}

// Check evaluates the breaker against current P&L. It returns
// *CircuitBreakerTrippedError when already tripped or when this call
// trips it.
func (b *DrawdownBreaker) Check(pnl decimal.Decimal) error {
	if b.tripped {
		return &CircuitBreakerTrippedError{Reason: "circuit breaker active"}
	}
	if pnl.GreaterThan(b.highWatermark) {
		b.highWatermark = pnl
	}
	if b.highWatermark.Sub(pnl).GreaterThan(b.Threshold) {
		b.tripped = true
		return &CircuitBreakerTrippedError{Reason: "drawdown threshold exceeded"}
	}
	return nil
}

// Tripped reports whether the breaker has latched.
func (b *DrawdownBreaker) Tripped() bool {
	return b.tripped
}

// Reset re-arms a tripped breaker. This is an administrative action; the
// high-watermark is cleared so a stale peak cannot re-trip immediately.
func (b *DrawdownBreaker) Reset() {
	b.tripped = false
	b.highWatermark = decimal.Zero
}
