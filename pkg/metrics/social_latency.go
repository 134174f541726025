// Package metrics tracks request latencies with percentile summaries.
package metrics

import (
	"sort"
	"sync"
	"time"
)

const defaultWindow = 1000

// Tracker keeps the most recent latency samples of one route in a ring buffer.
type Tracker struct {
	mu      sync.Mutex
	samples []time.Duration
	next    int
	full    bool
	total   int64
}

// NewTracker creates a tracker holding up to window samples.
func NewTracker(window int) *Tracker {
	if window <= 0 {
		window = defaultWindow
	}
	return &Tracker{samples: make([]time.Duration, window)}
}

// Record adds one sample, overwriting the oldest once the window is full.
func (t *Tracker) Record(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.samples[t.next] = d
	t.next++
	if t.next == len(t.samples) {
		t.next = 0
		t.full = true
	}
	t.total++
}

// Snapshot summarizes the samples currently in the window.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	n := t.next
	if t.full {
		n = len(t.samples)
	}
	window := make([]time.Duration, n)
	copy(window, t.samples[:n])
	total := t.total
	t.mu.Unlock()

	if n == 0 {
		return Snapshot{}
	}

	sort.Slice(window, func(i, j int) bool { return window[i] < window[j] })

	var sum time.Duration
	for _, d := range window {
		sum += d
	}

	return Snapshot{
		Count:   total,
		Samples: n,
		MinMS:   millis(window[0]),
		MaxMS:   millis(window[n-1]),
		AvgMS:   millis(sum / time.Duration(n)),
		P50MS:   millis(percentile(window, 0.50)),
		P95MS:   millis(percentile(window, 0.95)),
		P99MS:   millis(percentile(window, 0.99)),
	}
}

// percentile expects sorted input.
func percentile(sorted []time.Duration, p float64) time.Duration {
	return sorted[int(float64(len(sorted)-1)*p)]
}

func millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}

// Snapshot is a point-in-time latency summary.
type Snapshot struct {
	Count   int64   `json:"count"`
	Samples int     `json:"samples"`
	MinMS   float64 `json:"min_ms"`
	MaxMS   float64 `json:"max_ms"`
	AvgMS   float64 `json:"avg_ms"`
	P50MS   float64 `json:"p50_ms"`
	P95MS   float64 `json:"p95_ms"`
	P99MS   float64 `json:"p99_ms"`
}

// Registry holds one tracker per route.
type Registry struct {
	mu       sync.RWMutex
	trackers map[string]*Tracker
	window   int
}

// NewRegistry creates an empty registry.
func NewRegistry(window int) *Registry {
	return &Registry{
		trackers: make(map[string]*Tracker),
		window:   window,
	}
}

// Record adds a sample for route.
func (r *Registry) Record(route string, d time.Duration) {
	r.mu.RLock()
	t, ok := r.trackers[route]
	r.mu.RUnlock()

	if !ok {
		r.mu.Lock()
		if t, ok = r.trackers[route]; !ok {
			t = NewTracker(r.window)
			r.trackers[route] = t
		}
		r.mu.Unlock()
	}

	t.Record(d)
}

// Snapshot returns the summary of every route seen so far.
func (r *Registry) Snapshot() map[string]Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]Snapshot, len(r.trackers))
	for route, t := range r.trackers {
		out[route] = t.Snapshot()
	}
	return out
}
