package mocks

import (
	"maps"
	"sync"
	"time"

	"github.com/skadi15/fruitstand/internal/core"
)

var _ core.MetricsSink = (*RecordingMetrics)(nil)

// RecordingMetrics is a hand-written MetricsSink that keeps running totals
// per metric name. Safe for concurrent use.
type RecordingMetrics struct {
	mu      sync.Mutex
	counts  map[string]int64
	timings map[string][]time.Duration
	tags    map[string]map[string]string
}

// NewRecordingMetrics returns an empty recorder.
func NewRecordingMetrics() *RecordingMetrics {
	return &RecordingMetrics{
		counts:  make(map[string]int64),
		timings: make(map[string][]time.Duration),
		tags:    make(map[string]map[string]string),
	}
}

func (r *RecordingMetrics) Count(name string, value int64, tags map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[name] += value
	if len(tags) > 0 {
		r.tags[name] = maps.Clone(tags)
	}
}

func (r *RecordingMetrics) Timing(name string, value time.Duration, _ map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.timings[name] = append(r.timings[name], value)
}

// Counter returns the accumulated value for name.
func (r *RecordingMetrics) Counter(name string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[name]
}

// Timings returns how many timings were recorded for name.
func (r *RecordingMetrics) Timings(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.timings[name])
}

// LastTags returns the tags of the most recent tagged Count for name.
func (r *RecordingMetrics) LastTags(name string) map[string]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return maps.Clone(r.tags[name])
}
