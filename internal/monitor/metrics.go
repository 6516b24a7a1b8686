package monitor

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics tracks risk-core throughput and validation latency.
type Metrics struct {
	ValidationLatency *LatencyHistogram

	checksTotal   uint64
	breachesTotal uint64
	fillsTotal    uint64
	ticksTotal    uint64
}

// NewMetrics creates a metrics instance with a 1000-sample latency window.
func NewMetrics() *Metrics {
	return &Metrics{ValidationLatency: NewLatencyHistogram(1000)}
}

// LatencyHistogram tracks latency samples with a sliding window.
type LatencyHistogram struct {
	mu      sync.Mutex
	samples []float64
	maxSize int
}

// NewLatencyHistogram creates a sliding window histogram.
func NewLatencyHistogram(size int) *LatencyHistogram {
	if size <= 0 {
		size = 1000
	}
	return &LatencyHistogram{
		samples: make([]float64, 0, size),
		maxSize: size,
	}
}

// Record adds a latency sample in milliseconds.
func (h *LatencyHistogram) Record(latencyMs float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.samples) >= h.maxSize {
		// Shift window: remove oldest
		h.samples = h.samples[1:]
	}
	h.samples = append(h.samples, latencyMs)
}

// RecordDuration converts duration to ms and records.
func (h *LatencyHistogram) RecordDuration(d time.Duration) {
	h.Record(float64(d.Nanoseconds()) / 1e6)
}

// Stats returns min, max, avg, p50, p95, p99.
func (h *LatencyHistogram) Stats() LatencyStats {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := len(h.samples)
	if n == 0 {
		return LatencyStats{}
	}

	sorted := make([]float64, n)
	copy(sorted, h.samples)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}

	return LatencyStats{
		Min:   sorted[0],
		Max:   sorted[n-1],
		Avg:   sum / float64(n),
		P50:   sorted[n/2],
		P95:   sorted[int(float64(n)*0.95)],
		P99:   sorted[int(float64(n)*0.99)],
		Count: n,
	}
}

// LatencyStats holds computed latency statistics.
type LatencyStats struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Avg   float64 `json:"avg"`
	P50   float64 `json:"p50"`
	P95   float64 `json:"p95"`
	P99   float64 `json:"p99"`
	Count int     `json:"count"`
}

// IncrementChecks increments the validation counter.
func (m *Metrics) IncrementChecks() {
	atomic.AddUint64(&m.checksTotal, 1)
}

// IncrementBreaches increments the breach counter.
func (m *Metrics) IncrementBreaches() {
	atomic.AddUint64(&m.breachesTotal, 1)
}

// IncrementFills increments the fill counter.
func (m *Metrics) IncrementFills() {
	atomic.AddUint64(&m.fillsTotal, 1)
}

// IncrementTicks increments the tick counter.
func (m *Metrics) IncrementTicks() {
	atomic.AddUint64(&m.ticksTotal, 1)
}

// MetricsSnapshot is a point-in-time metrics view.
type MetricsSnapshot struct {
	ValidationLatency LatencyStats `json:"validation_latency"`
	ChecksTotal       uint64       `json:"checks_total"`
	BreachesTotal     uint64       `json:"breaches_total"`
	FillsTotal        uint64       `json:"fills_total"`
	TicksTotal        uint64       `json:"ticks_total"`
	Timestamp         time.Time    `json:"timestamp"`
}

// GetSnapshot returns a point-in-time metrics snapshot.
func (m *Metrics) GetSnapshot() MetricsSnapshot {
	return MetricsSnapshot{
		ValidationLatency: m.ValidationLatency.Stats(),
		ChecksTotal:       atomic.LoadUint64(&m.checksTotal),
		BreachesTotal:     atomic.LoadUint64(&m.breachesTotal),
		FillsTotal:        atomic.LoadUint64(&m.fillsTotal),
		TicksTotal:        atomic.LoadUint64(&m.ticksTotal),
		Timestamp:         time.Now(),
	}
}
