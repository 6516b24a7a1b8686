package risk

import (
	"github.com/shopspring/decimal"

	"risk-core/internal/portfolio"
)

// Report is a point-in-time view of the tracker state.
type Report struct {
	PnL       float64 `json:"pnl"`
	Positions int     `json:"positions"`
	Margin    float64 `json:"margin"`
}

// Reporter derives reports from portfolio tracker state. Its margin figure
// values positions at average cost, which differs from Manager.Margin's
// mark-based figure; the two are kept as independent quantities.
type Reporter struct{}

// Snapshot is a pure function of the current portfolio.
func (Reporter) Snapshot(pf *portfolio.Portfolio) Report {
	margin := decimal.Zero
	pf.Each(func(_ string, pos portfolio.Position) {
		margin = margin.Add(pos.Quantity.Mul(pos.AvgPrice).Abs())
	})
	return Report{
		PnL:       pf.PnL().InexactFloat64(),
		Positions: pf.Len(),
		Margin:    margin.Mul(marginRequirement).InexactFloat64(),
	}
}
