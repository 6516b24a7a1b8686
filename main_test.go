package main

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"risk-core/internal/events"
	"risk-core/internal/monitor"
	"risk-core/internal/order"
	"risk-core/internal/risk"
	"risk-core/pkg/config"
)

func bridgeConfig() *config.Config {
	return &config.Config{
		PositionLimitSymbol:    decimal.RequireFromString("10"),
		PositionLimitTotal:     decimal.RequireFromString("50"),
		DailyLossLimit:         decimal.RequireFromString("1000"),
		ConcentrationLimit:     decimal.RequireFromString("1"),
		VelocityLimit:          10,
		VelocityWindow:         60,
		DrawdownLimit:          decimal.RequireFromString("500"),
		CircuitBreakerDrawdown: decimal.RequireFromString("1000"),
		PnLHistoryLimit:        64,
	}
}

func TestBridgeOrderFlow(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := events.NewBus()
	metrics := monitor.NewMetrics()
	mgr := risk.NewManager(bridgeConfig(), nil, nil)

	bridgeOrderFlow(ctx, bus, mgr, metrics)

	o, err := order.New("BTCUSDT", 5, 100, order.SideBuy)
	if err != nil {
		t.Fatalf("order.New: %v", err)
	}
	bus.Publish(events.EventOrderSubmitted, o)
	bus.Publish(events.EventOrderFilled, o)

	deadline := time.After(2 * time.Second)
	for {
		snap := metrics.GetSnapshot()
		if snap.ChecksTotal == 1 && snap.FillsTotal == 1 && snap.ValidationLatency.Count == 1 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("bridge did not record metrics: %+v", snap)
		case <-time.After(5 * time.Millisecond):
		}
	}

	if got := mgr.Report().Positions; got != 1 {
		t.Fatalf("Positions=%d, expected the fill to reach the manager", got)
	}
}

func TestBridgeOrderFlowIgnoresForeignPayloads(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := events.NewBus()
	metrics := monitor.NewMetrics()
	mgr := risk.NewManager(bridgeConfig(), nil, nil)

	bridgeOrderFlow(ctx, bus, mgr, metrics)

	bus.Publish(events.EventOrderSubmitted, "not an order")
	bus.Publish(events.EventOrderFilled, 42)

	time.Sleep(50 * time.Millisecond)
	snap := metrics.GetSnapshot()
	if snap.ChecksTotal != 0 || snap.FillsTotal != 0 {
		t.Fatalf("foreign payloads counted: %+v", snap)
	}
}
