package monitor

import (
	"context"
	"log"
	"time"

	"risk-core/internal/alert"
	"risk-core/internal/events"
)

// Monitor drains the breach queue, logs each alert, republishes it on the
// bus for external consumers and best-effort journals it. Journal failures
// are logged and never surfaced; the breach already reached the caller.
type Monitor struct {
	Queue   *alert.Queue
	Bus     *events.Bus
	Journal *Journal
	Metrics *Metrics
}

func (m *Monitor) Start(ctx context.Context) {
	if m.Queue == nil {
		log.Println("monitor: no alert queue configured; skipping")
		return
	}
	go func() {
		for {
			a, ok := m.Queue.Next(ctx)
			if !ok {
				return
			}
			log.Printf("risk alert [%s]: %s", a.Kind, a.Reason)
			if m.Metrics != nil {
				m.Metrics.IncrementBreaches()
			}
			if m.Bus != nil {
				topic := events.EventRiskAlert
				if a.Kind == alert.KindBreaker {
					topic = events.EventBreakerTripped
				}
				m.Bus.Publish(topic, formatAlert(a.Reason))
			}
			if m.Journal != nil {
				if err := m.Journal.Record(ctx, a.Reason); err != nil {
					log.Printf("alert journal: %v", err)
				}
			}
		}
	}()
}

func formatAlert(reason string) string {
	return "[" + time.Now().Format(time.RFC3339) + "] " + reason
}
