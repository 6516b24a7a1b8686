package ledger

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMarkRejectsNonPositivePrice(t *testing.T) {
	tests := []struct {
		name  string
		price string
	}{
		{"zero", "0"},
		{"negative", "-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(16)
			l.RecordFill("BTCUSDT", decimal.NewFromInt(1), decimal.NewFromInt(100))

			err := l.Mark("BTCUSDT", decimal.RequireFromString(tt.price))
			var perr *PricingError
			if !errors.As(err, &perr) {
				t.Fatalf("expected PricingError, got %v", err)
			}

			pos, _ := l.Position("BTCUSDT")
			if !pos.LastPrice.Equal(decimal.NewFromInt(100)) {
				t.Fatalf("LastPrice=%s, expected unchanged 100", pos.LastPrice)
			}
		})
	}
}

func TestMarkUnknownSymbolIsNoOp(t *testing.T) {
	l := New(16)
	if err := l.Mark("ETHUSDT", decimal.NewFromInt(50)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := l.Position("ETHUSDT"); ok {
		t.Fatal("mark must not create a position")
	}
}

func TestSnapshotAggregatesAcrossSymbols(t *testing.T) {
	l := New(16)
	l.RecordFill("BTCUSDT", decimal.NewFromInt(10), decimal.NewFromInt(100))
	l.RecordFill("ETHUSDT", decimal.NewFromInt(5), decimal.NewFromInt(20))
	if err := l.Mark("BTCUSDT", decimal.NewFromInt(110)); err != nil {
		t.Fatalf("mark: %v", err)
	}
	l.RecordFill("ETHUSDT", decimal.NewFromInt(-5), decimal.NewFromInt(25))

	snap := l.Snapshot()
	if snap.Realized != 25 {
		t.Fatalf("Realized=%v, expected 25", snap.Realized)
	}
	if snap.Unrealized != 100 {
		t.Fatalf("Unrealized=%v, expected 100", snap.Unrealized)
	}
	if snap.Total != 125 {
		t.Fatalf("Total=%v, expected 125", snap.Total)
	}
}

func TestHistoryRetentionIsBounded(t *testing.T) {
	l := New(3)
	for i := 0; i < 5; i++ {
		l.Snapshot()
	}
	if got := len(l.History()); got != 3 {
		t.Fatalf("history length=%d, expected 3", got)
	}
}

func TestPricesOnlyIncludeMarkedSymbols(t *testing.T) {
	l := New(16)
	l.RecordFill("BTCUSDT", decimal.NewFromInt(1), decimal.NewFromInt(100))

	prices := l.Prices()
	if len(prices) != 1 {
		t.Fatalf("prices=%v, expected one entry", prices)
	}
	if !prices["BTCUSDT"].Equal(decimal.NewFromInt(100)) {
		t.Fatalf("BTCUSDT price=%s, expected 100", prices["BTCUSDT"])
	}
}
