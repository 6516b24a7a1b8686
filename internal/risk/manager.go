package risk

import (
	"errors"
	"log"
	"sync"

	"github.com/shopspring/decimal"

	"risk-core/internal/alert"
	"risk-core/internal/ledger"
	"risk-core/internal/order"
	"risk-core/internal/portfolio"
	"risk-core/pkg/config"
)

// marginRequirement is the fixed 10% margin factor applied to notional
// exposure.
var marginRequirement = decimal.RequireFromString("0.1")

// Manager is the pre-trade admission gate. It owns the portfolio tracker,
// the ordered limit chain and the circuit breakers; the ledger may be
// shared with an external P&L consumer and is only read and mutated here,
// never closed.
//
// A single mutex serializes every entry point, so callers on different
// goroutines (order intake, fill feed, price feed) do not interleave
// mid-check. The inner components carry no locking of their own.
type Manager struct {
	mu sync.Mutex

	tracker  *portfolio.Portfolio
	ledger   *ledger.Ledger
	limits   []Limit
	breakers []*DrawdownBreaker
	sink     alert.Sink
	reporter Reporter
}

// NewManager builds the manager with the fixed limit chain from config.
// Evaluation order is significant: position, daily loss, concentration,
// velocity, drawdown.
func NewManager(cfg *config.Config, led *ledger.Ledger, sink alert.Sink) *Manager {
	if led == nil {
		led = ledger.New(cfg.PnLHistoryLimit)
	}
	if sink == nil {
		sink = alert.Discard{}
	}
	return &Manager{
		tracker: portfolio.New(),
		ledger:  led,
		limits: []Limit{
			&PositionLimit{SymbolLimit: cfg.PositionLimitSymbol, TotalLimit: cfg.PositionLimitTotal},
			&DailyLossLimit{MaxLoss: cfg.DailyLossLimit},
			&ConcentrationLimit{MaxFraction: cfg.ConcentrationLimit},
			NewVelocityLimit(cfg.VelocityLimit, cfg.VelocityWindow),
			&DrawdownLimit{MaxDrawdown: cfg.DrawdownLimit},
		},
		breakers: []*DrawdownBreaker{
			NewDrawdownBreaker(cfg.CircuitBreakerDrawdown),
		},
		sink: sink,
	}
}

// ValidateOrder runs the circuit breakers and then every limit in chain
// order against live ledger prices. The first breach is alerted and
// returned as a typed error; a clean pass returns nil. Apart from the
// velocity window's timestamp there are no side effects.
func (m *Manager) ValidateOrder(o order.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	pnl := m.tracker.PnL()
	for _, b := range m.breakers {
		if err := b.Check(pnl); err != nil {
			var tripped *CircuitBreakerTrippedError
			if errors.As(err, &tripped) {
				m.sink.Publish(alert.Alert{Kind: alert.KindBreaker, Reason: tripped.Reason})
			}
			return err
		}
	}

	prices := m.ledger.Prices()
	for _, l := range m.limits {
		if reason := l.Check(o, m.tracker, prices); reason != "" {
			m.sink.Publish(alert.Alert{Kind: alert.KindLimit, Reason: reason})
			return &LimitBreachedError{Reason: reason}
		}
	}
	return nil
}

// OnFill applies an executed order to the tracker and the ledger. It does
// not re-validate; admission control happens in ValidateOrder.
func (m *Manager) OnFill(o order.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tracker.Update(o.Symbol, o.Quantity, o.Price)
	m.ledger.RecordFill(o.Symbol, o.Quantity, o.Price)
}

// Mark forwards a price tick to the ledger.
func (m *Manager) Mark(symbol string, price decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ledger.Mark(symbol, price)
}

// Report returns the reporter's tracker snapshot.
func (m *Manager) Report() Report {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reporter.Snapshot(m.tracker)
}

// PnLSnapshot returns the ledger's aggregated P&L snapshot.
func (m *Manager) PnLSnapshot() ledger.PnLSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ledger.Snapshot()
}

// Margin returns total mark-valued exposure scaled by the 10% requirement.
func (m *Manager) Margin() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := decimal.Zero
	m.ledger.Each(func(_ string, pos ledger.Position) {
		total = total.Add(pos.Quantity.Mul(pos.LastPrice).Abs())
	})
	return total.Mul(marginRequirement).InexactFloat64()
}

// StressTest projects the P&L impact of instantaneous price shocks per
// symbol. Symbols without a shock contribute zero.
func (m *Manager) StressTest(shocks map[string]decimal.Decimal) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	impact := decimal.Zero
	m.ledger.Each(func(sym string, pos ledger.Position) {
		if shock, ok := shocks[sym]; ok {
			impact = impact.Add(pos.Quantity.Mul(shock))
		}
	})
	return impact.InexactFloat64()
}

// Rebalance diffs target quantities against the tracker and emits a
// synthetic order per non-zero diff, priced at the ledger's last mark (or
// zero when unknown). The orders are neither validated nor executed.
func (m *Manager) Rebalance(targets map[string]decimal.Decimal) []order.Order {
	m.mu.Lock()
	defer m.mu.Unlock()

	var orders []order.Order
	for sym, target := range targets {
		diff := target.Sub(m.tracker.Quantity(sym))
		if diff.IsZero() {
			continue
		}
		side := order.SideBuy
		if diff.Sign() < 0 {
			side = order.SideSell
		}
		price := decimal.Zero
		if pos, ok := m.ledger.Position(sym); ok {
			price = pos.LastPrice
		}
		o, err := order.NewFromDecimal(sym, diff, price, side)
		if err != nil {
			// Cannot happen for generated orders; log and skip.
			log.Printf("rebalance: skip %s: %v", sym, err)
			continue
		}
		orders = append(orders, o)
	}
	return orders
}

// ResetBreakers re-arms every circuit breaker. Administrative use only.
func (m *Manager) ResetBreakers() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.breakers {
		b.Reset()
	}
}
