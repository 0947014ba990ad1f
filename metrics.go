package authguard

import (
	"sync/atomic"
	"time"
)

// MetricID indexes a counter or histogram slot in [Metrics].
type MetricID uint16

const (
	// MetricAttemptAllowed counts rate-limit checks that admitted an attempt.
	MetricAttemptAllowed MetricID = iota
	// MetricAttemptDenied counts sliding-window denials.
	MetricAttemptDenied
	// MetricLimiterReset counts explicit ledger resets after success.
	MetricLimiterReset
	// MetricCleanupRun counts invocations of the retention sweep.
	MetricCleanupRun
	// MetricEntriesPruned counts ledger entries removed by cleanup sweeps.
	MetricEntriesPruned
	// MetricEmailRejected counts structurally invalid email inputs.
	MetricEmailRejected
	// MetricPasswordRejected counts passwords failing the credential policy.
	MetricPasswordRejected
	// MetricInputAltered counts inputs changed by the scrubber.
	MetricInputAltered
	// MetricErrorMatched counts errors classified by a table rule.
	MetricErrorMatched
	// MetricErrorUnmatched counts errors resolved to the generic fallback.
	MetricErrorUnmatched
	// MetricErrorVerbose counts raw diagnostics returned in verbose mode.
	MetricErrorVerbose
	// MetricProtectSuccess counts protected operations that completed.
	MetricProtectSuccess
	// MetricProtectFailure counts protected operations that returned an error.
	MetricProtectFailure
	// MetricProtectRefused counts Protect calls refused before the operation ran.
	MetricProtectRefused
	// MetricProtectLatency is the histogram of protected-operation durations.
	MetricProtectLatency

	metricIDCount
)

const histBucketCount = 8

type metricHistogram struct {
	buckets [histBucketCount]uint64
}

// paddedCounter keeps each hot counter on its own cache line.
type paddedCounter struct {
	value uint64
	_     [7]uint64
}

// Metrics is a fixed table of atomic counters plus one latency histogram.
// All methods are allocation-free on the write path and safe for concurrent
// use. A disabled Metrics ignores writes and snapshots empty.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      [metricIDCount]paddedCounter
	histograms    [metricIDCount]metricHistogram
}

// MetricsSnapshot is a point-in-time copy of all metric values, read by the
// exporters under metrics/export.
type MetricsSnapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

// NewMetrics creates a metric table per cfg.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled:       cfg.Enabled,
		enableLatency: cfg.Enabled && cfg.EnableLatencyHistograms,
	}
}

// Enabled reports whether writes are recorded.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// LatencyEnabled reports whether histogram observations are recorded.
func (m *Metrics) LatencyEnabled() bool {
	return m != nil && m.enableLatency
}

// Inc adds one to the counter for id.
func (m *Metrics) Inc(id MetricID) {
	m.Add(id, 1)
}

// Add adds n to the counter for id.
func (m *Metrics) Add(id MetricID, n uint64) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, n)
}

// Observe records a duration in the histogram for id. Only
// [MetricProtectLatency] carries a histogram.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.enableLatency || id != MetricProtectLatency {
		return
	}
	b := bucketIndex(d)
	atomic.AddUint64(&m.histograms[id].buckets[b], 1)
}

// Value returns the current counter value for id.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot copies every counter and histogram into maps the caller owns.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil || !m.enabled {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}

	s := MetricsSnapshot{
		Counters:   make(map[MetricID]uint64, int(metricIDCount)),
		Histograms: make(map[MetricID][]uint64, 1),
	}

	for id := MetricID(0); id < metricIDCount; id++ {
		s.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}

	if m.enableLatency {
		buckets := make([]uint64, histBucketCount)
		for i := 0; i < histBucketCount; i++ {
			buckets[i] = atomic.LoadUint64(&m.histograms[MetricProtectLatency].buckets[i])
		}
		s.Histograms[MetricProtectLatency] = buckets
	}

	return s
}

func bucketIndex(d time.Duration) int {
	ms := d.Milliseconds()

	switch {
	case ms <= 5:
		return 0
	case ms <= 10:
		return 1
	case ms <= 25:
		return 2
	case ms <= 50:
		return 3
	case ms <= 100:
		return 4
	case ms <= 250:
		return 5
	case ms <= 500:
		return 6
	default:
		return 7
	}
}
