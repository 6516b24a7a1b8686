package alert

import (
	"context"
	"sync"
)

// Kind classifies a breach alert so consumers can route it without
// inspecting the reason text.
type Kind string

const (
	KindLimit   Kind = "limit"
	KindBreaker Kind = "breaker"
)

// Alert is one breach notification. Reason carries the breach reason
// verbatim.
type Alert struct {
	Kind   Kind
	Reason string
}

// Sink is a one-way breach notification channel. Publish must never block
// the caller and must never fail; delivery downstream is best-effort.
type Sink interface {
	Publish(a Alert)
}

// Discard is a Sink that drops every alert.
type Discard struct{}

func (Discard) Publish(Alert) {}

// Queue is an unbounded FIFO Sink. Producers hand off under a short
// critical section; a consumer drains with Next.
type Queue struct {
	mu    sync.Mutex
	items []Alert
	wake  chan struct{}
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{wake: make(chan struct{}, 1)}
}

// Publish appends an alert and wakes the consumer.
func (q *Queue) Publish(a Alert) {
	q.mu.Lock()
	q.items = append(q.items, a)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Next returns the oldest alert, blocking until one arrives or ctx is
// done. The second return is false only on context cancellation.
func (q *Queue) Next(ctx context.Context) (Alert, bool) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			a := q.items[0]
			q.items = q.items[1:]
			q.mu.Unlock()
			return a, true
		}
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return Alert{}, false
		case <-q.wake:
		}
	}
}

// Len returns the number of queued alerts.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
