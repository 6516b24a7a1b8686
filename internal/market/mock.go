package market

import (
	"context"
	"log"
	"math/rand"
	"time"

	"risk-core/internal/events"
)

// Tick is one price observation from the feed boundary.
type Tick struct {
	Symbol string
	Price  float64
}

// MockFeed generates synthetic ticks for local development. Real market
// data transport lives outside this core; anything publishing Tick values
// on EventPriceTick can replace it.
type MockFeed struct {
	Bus        *events.Bus
	Symbols    []string
	StartPrice float64
	Step       float64
	Interval   time.Duration
}

func (m *MockFeed) Start(ctx context.Context) {
	if m.Bus == nil {
		log.Println("mock feed: bus not set")
		return
	}
	if len(m.Symbols) == 0 {
		m.Symbols = []string{"BTCUSDT"}
	}
	price := m.StartPrice
	if price == 0 {
		price = 100.0
	}
	if m.Step == 0 {
		m.Step = 0.5
	}
	if m.Interval == 0 {
		m.Interval = time.Second
	}

	go func() {
		t := time.NewTicker(m.Interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				for _, sym := range m.Symbols {
					// simple random walk, floored above zero
					price += (rand.Float64()*2 - 1) * m.Step
					if price <= m.Step {
						price = m.Step
					}
					m.Bus.Publish(events.EventPriceTick, Tick{Symbol: sym, Price: price})
				}
			}
		}
	}()
}
