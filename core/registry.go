package core

import (
	"sort"
	"sync"

	"github.com/huangsam/secpulse/schema"
)

// MetricsRegistry collects the latest metrics snapshot per calculator so one
// calculator's results can feed a combined report. It is an explicit value
// passed to whichever component needs it rather than ambient shared state.
// The mutex covers the HTTP surface, where handlers may record concurrently.
type MetricsRegistry struct {
	mu      sync.Mutex
	entries map[string]schema.Metrics
}

// NewMetricsRegistry creates an empty registry.
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{entries: make(map[string]schema.Metrics)}
}

// Record stores the metrics for a calculator, replacing any prior snapshot.
func (r *MetricsRegistry) Record(name string, m schema.Metrics) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = m
}

// Snapshot returns a copy of every recorded entry.
func (r *MetricsRegistry) Snapshot() map[string]schema.Metrics {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]schema.Metrics, len(r.entries))
	for name, m := range r.entries {
		out[name] = m
	}
	return out
}

// Names returns the recorded calculator names in sorted order.
func (r *MetricsRegistry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clear removes every recorded entry.
func (r *MetricsRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[string]schema.Metrics)
}
