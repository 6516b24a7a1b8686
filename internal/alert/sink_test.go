package alert

import (
	"context"
	"testing"
	"time"
)

func TestQueueDeliversInOrder(t *testing.T) {
	q := NewQueue()
	q.Publish(Alert{Kind: KindLimit, Reason: "first"})
	q.Publish(Alert{Kind: KindBreaker, Reason: "second"})

	if q.Len() != 2 {
		t.Fatalf("Len=%d, expected 2", q.Len())
	}

	ctx := context.Background()
	want := []Alert{
		{Kind: KindLimit, Reason: "first"},
		{Kind: KindBreaker, Reason: "second"},
	}
	for _, w := range want {
		got, ok := q.Next(ctx)
		if !ok || got != w {
			t.Fatalf("Next=%+v ok=%v, expected %+v", got, ok, w)
		}
	}
	if q.Len() != 0 {
		t.Fatalf("Len=%d after drain, expected 0", q.Len())
	}
}

func TestQueueNextBlocksUntilPublish(t *testing.T) {
	q := NewQueue()

	done := make(chan Alert, 1)
	go func() {
		a, _ := q.Next(context.Background())
		done <- a
	}()

	time.Sleep(10 * time.Millisecond)
	q.Publish(Alert{Kind: KindLimit, Reason: "late"})

	select {
	case got := <-done:
		if got.Reason != "late" {
			t.Fatalf("Next=%+v, expected reason late", got)
		}
	case <-time.After(time.Second):
		t.Fatal("Next did not wake on publish")
	}
}

func TestQueueNextHonorsContext(t *testing.T) {
	q := NewQueue()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, ok := q.Next(ctx); ok {
		t.Fatal("Next returned ok on cancelled context")
	}
}

func TestPublishNeverBlocks(t *testing.T) {
	q := NewQueue()
	// No consumer; a large burst must complete immediately.
	for i := 0; i < 10000; i++ {
		q.Publish(Alert{Kind: KindLimit, Reason: "x"})
	}
	if q.Len() != 10000 {
		t.Fatalf("Len=%d, expected 10000", q.Len())
	}
}
