package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"risk-core/internal/alert"
	"risk-core/internal/events"
	"risk-core/internal/ledger"
	"risk-core/internal/market"
	"risk-core/internal/monitor"
	"risk-core/internal/order"
	"risk-core/internal/risk"
	"risk-core/pkg/config"
	"risk-core/pkg/db"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	log.Printf("risk core starting: symbol_limit=%s total_limit=%s breaker_drawdown=%s",
		cfg.PositionLimitSymbol, cfg.PositionLimitTotal, cfg.CircuitBreakerDrawdown)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := events.NewBus()
	queue := alert.NewQueue()
	metrics := monitor.NewMetrics()

	var journal *monitor.Journal
	if cfg.AlertDBPath != "" {
		database, err := db.New(cfg.AlertDBPath)
		if err != nil {
			log.Printf("alert journal disabled: %v", err)
		} else {
			defer database.Close()
			if err := db.ApplyMigrations(database); err != nil {
				log.Printf("alert journal disabled: %v", err)
			} else {
				journal = monitor.NewJournal(database)
			}
		}
	}

	led := ledger.New(cfg.PnLHistoryLimit)
	mgr := risk.NewManager(cfg, led, queue)

	mon := &monitor.Monitor{Queue: queue, Bus: bus, Journal: journal, Metrics: metrics}
	mon.Start(ctx)

	// Price ticks into the ledger's mark.
	ticks, unsubTicks := bus.Subscribe(events.EventPriceTick, 100)
	defer unsubTicks()
	go func() {
		for payload := range ticks {
			tick, ok := payload.(market.Tick)
			if !ok {
				continue
			}
			metrics.IncrementTicks()
			if err := mgr.Mark(tick.Symbol, decimal.NewFromFloat(tick.Price)); err != nil {
				var perr *ledger.PricingError
				if errors.As(err, &perr) {
					log.Printf("rejected mark: %v", perr)
					continue
				}
				log.Printf("mark error: %v", err)
			}
		}
	}()

	bridgeOrderFlow(ctx, bus, mgr, metrics)

	if cfg.UseMockFeed {
		feed := &market.MockFeed{
			Bus:      bus,
			Symbols:  cfg.FeedSymbols,
			Interval: time.Duration(cfg.FeedIntervalMs) * time.Millisecond,
		}
		feed.Start(ctx)
		log.Printf("mock feed started for %v", cfg.FeedSymbols)
	}

	// Periodic P&L snapshot into the bounded history.
	go func() {
		t := time.NewTicker(10 * time.Second)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				snap := mgr.PnLSnapshot()
				log.Printf("pnl snapshot: realized=%.2f unrealized=%.2f total=%.2f",
					snap.Realized, snap.Unrealized, snap.Total)
			}
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down")
	cancel()

	report := mgr.Report()
	log.Printf("final report: pnl=%.2f positions=%d margin=%.2f",
		report.PnL, report.Positions, report.Margin)
	log.Printf("metrics: %+v", metrics.GetSnapshot())
}

// bridgeOrderFlow connects the bus-published order flow to the manager:
// submissions pass through ValidateOrder (timed into the latency window),
// executions land in OnFill. Both loops stop when ctx is done.
func bridgeOrderFlow(ctx context.Context, bus *events.Bus, mgr *risk.Manager, metrics *monitor.Metrics) {
	submissions, unsubOrders := bus.Subscribe(events.EventOrderSubmitted, 100)
	go func() {
		defer unsubOrders()
		for {
			select {
			case <-ctx.Done():
				return
			case payload := <-submissions:
				o, ok := payload.(order.Order)
				if !ok {
					continue
				}
				start := time.Now()
				err := mgr.ValidateOrder(o)
				metrics.ValidationLatency.RecordDuration(time.Since(start))
				metrics.IncrementChecks()
				if err != nil {
					log.Printf("order %s rejected: %v", o.ID, err)
					continue
				}
				log.Printf("order %s accepted: %s %s %s @ %s",
					o.ID, o.Side, o.Quantity, o.Symbol, o.Price)
			}
		}
	}()

	fills, unsubFills := bus.Subscribe(events.EventOrderFilled, 100)
	go func() {
		defer unsubFills()
		for {
			select {
			case <-ctx.Done():
				return
			case payload := <-fills:
				o, ok := payload.(order.Order)
				if !ok {
					continue
				}
				mgr.OnFill(o)
				metrics.IncrementFills()
			}
		}
	}()
}
