package wishes

import (
	"sync/atomic"
	"time"
)

// Metrics tracks calls to the wish generator
type Metrics struct {
	calls     int64
	errors    int64
	fallbacks int64
	latency   int64 // total latency in nanoseconds
}

// Stats is a point-in-time copy of Metrics
type Stats struct {
	Calls            int64   `json:"calls"`
	Errors           int64   `json:"errors"`
	Fallbacks        int64   `json:"fallbacks"`
	AverageLatencyMs float64 `json:"average_latency_ms"`
}

func (m *Metrics) recordCall(d time.Duration, err error) {
	atomic.AddInt64(&m.calls, 1)
	atomic.AddInt64(&m.latency, d.Nanoseconds())
	if err != nil {
		atomic.AddInt64(&m.errors, 1)
	}
}

func (m *Metrics) recordFallback() {
	atomic.AddInt64(&m.fallbacks, 1)
}

// Snapshot returns the current counters
func (m *Metrics) Snapshot() Stats {
	s := Stats{
		Calls:     atomic.LoadInt64(&m.calls),
		Errors:    atomic.LoadInt64(&m.errors),
		Fallbacks: atomic.LoadInt64(&m.fallbacks),
	}
	if s.Calls > 0 {
		s.AverageLatencyMs = float64(atomic.LoadInt64(&m.latency)) / float64(s.Calls) / 1e6
	}
	return s
}
