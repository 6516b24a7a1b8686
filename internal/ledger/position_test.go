package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestApplyFillAccounting(t *testing.T) {
	tests := []struct {
		name           string
		fills          [][2]string // qty, price
		mark           string      // optional final mark
		wantQty        string
		wantAvg        string
		wantRealized   string
		wantUnrealized string
	}{
		{
			name:           "open long and mark up",
			fills:          [][2]string{{"10", "100"}},
			mark:           "110",
			wantQty:        "10",
			wantAvg:        "100",
			wantRealized:   "0",
			wantUnrealized: "100",
		},
		{
			name:         "partial close locks in profit",
			fills:        [][2]string{{"10", "100"}, {"-5", "115"}},
			wantQty:      "5",
			wantAvg:      "100",
			wantRealized: "75",
		},
		{
			name:           "full close resets average",
			fills:          [][2]string{{"5", "100"}, {"-5", "110"}},
			wantQty:        "0",
			wantAvg:        "0",
			wantRealized:   "50",
			wantUnrealized: "0",
		},
		{
			name:         "flip opens short at fill price",
			fills:        [][2]string{{"5", "100"}, {"-10", "90"}},
			wantQty:      "-5",
			wantAvg:      "90",
			wantRealized: "-50",
		},
		{
			name:    "same side blend",
			fills:   [][2]string{{"10", "100"}, {"10", "110"}},
			wantQty: "20",
			wantAvg: "105",
		},
		{
			name:    "short blend",
			fills:   [][2]string{{"-4", "50"}, {"-4", "60"}},
			wantQty: "-8",
			wantAvg: "55",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var pos Position
			for _, f := range tt.fills {
				pos.ApplyFill(d(f[0]), d(f[1]))
			}
			if tt.mark != "" {
				pos.LastPrice = d(tt.mark)
			}

			if !pos.Quantity.Equal(d(tt.wantQty)) {
				t.Fatalf("Quantity=%s, expected %s", pos.Quantity, tt.wantQty)
			}
			if tt.wantAvg != "" && !pos.AvgPrice.Equal(d(tt.wantAvg)) {
				t.Fatalf("AvgPrice=%s, expected %s", pos.AvgPrice, tt.wantAvg)
			}
			if tt.wantRealized != "" && !pos.Realized.Equal(d(tt.wantRealized)) {
				t.Fatalf("Realized=%s, expected %s", pos.Realized, tt.wantRealized)
			}
			if tt.wantUnrealized != "" && !pos.Unrealized().Equal(d(tt.wantUnrealized)) {
				t.Fatalf("Unrealized=%s, expected %s", pos.Unrealized(), tt.wantUnrealized)
			}
		})
	}
}

// Whenever net quantity returns to zero the average must be zero too,
// regardless of the fill sequence.
func TestFlatPositionHasZeroAverage(t *testing.T) {
	sequences := [][][2]string{
		{{"10", "100"}, {"-10", "120"}},
		{{"-5", "80"}, {"5", "70"}},
		{{"3", "10"}, {"4", "12"}, {"-7", "11"}},
		{{"10", "100"}, {"-20", "90"}, {"10", "95"}},
	}

	for _, seq := range sequences {
		var pos Position
		for _, f := range seq {
			pos.ApplyFill(d(f[0]), d(f[1]))
		}
		if pos.Quantity.IsZero() && !pos.AvgPrice.IsZero() {
			t.Fatalf("flat position has AvgPrice=%s after %v", pos.AvgPrice, seq)
		}
	}
}

func TestApplyFillUpdatesLastPrice(t *testing.T) {
	var pos Position
	pos.ApplyFill(d("10"), d("100"))
	if !pos.LastPrice.Equal(d("100")) {
		t.Fatalf("LastPrice=%s, expected 100", pos.LastPrice)
	}
	pos.ApplyFill(d("-5"), d("115"))
	if !pos.LastPrice.Equal(d("115")) {
		t.Fatalf("LastPrice=%s, expected 115", pos.LastPrice)
	}
}
