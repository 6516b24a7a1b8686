package events

import (
	"sync"
)

type subscriber struct {
	topic Event
	ch    chan any
}

// Bus is a lightweight pub/sub broker using channels. Publishing never
// blocks: a subscriber that falls behind loses messages rather than
// stalling the producer.
type Bus struct {
	mu   sync.RWMutex
	subs []*subscriber
}

// NewBus creates an event bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a listener for a topic and returns the receive
// channel plus an unsubscribe function that closes it.
func (b *Bus) Subscribe(topic Event, buffer int) (<-chan any, func()) {
	sub := &subscriber{topic: topic, ch: make(chan any, buffer)}

	b.mu.Lock()
	b.subs = append(b.subs, sub)
	b.mu.Unlock()

	unsub := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s == sub {
				close(s.ch)
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}

	return sub.ch, unsub
}

// Publish fans the payload out to every subscriber of the topic.
func (b *Bus) Publish(topic Event, payload any) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, s := range b.subs {
		if s.topic != topic {
			continue
		}
		select {
		case s.ch <- payload:
		default:
			// slow subscriber; drop to keep the broker non-blocking
		}
	}
}
