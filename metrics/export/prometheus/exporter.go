package prometheus

import (
	"net/http"

	authguard "github.com/authguard/authguard"
	"github.com/authguard/authguard/metrics/export/internaldefs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metricsSource interface {
	MetricsSnapshot() authguard.MetricsSnapshot
	AuditDropped() uint64
}

// histogramBounds are the numeric upper bounds matching
// [internaldefs.HistogramBounds], excluding the implicit +Inf bucket.
var histogramBounds = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5}

type counterDesc struct {
	id   authguard.MetricID
	desc *prometheus.Desc
}

type histogramDesc struct {
	id   authguard.MetricID
	desc *prometheus.Desc
}

// Collector implements [prometheus.Collector] over guard snapshots. Every
// scrape reads one [authguard.MetricsSnapshot]; the collector holds no metric
// state of its own.
type Collector struct {
	source     metricsSource
	counters   []counterDesc
	histograms []histogramDesc
	dropped    *prometheus.Desc
}

// NewCollector creates a collector that reads from the given [authguard.Guard].
func NewCollector(guard *authguard.Guard) *Collector {
	return NewCollectorFromSource(guard)
}

// NewCollectorFromSource creates a collector from a custom metrics source.
func NewCollectorFromSource(source metricsSource) *Collector {
	c := &Collector{
		source:     source,
		counters:   make([]counterDesc, 0, len(internaldefs.CounterDefs)),
		histograms: make([]histogramDesc, 0, len(internaldefs.HistogramDefs)),
		dropped: prometheus.NewDesc(
			"authguard_audit_dropped_total",
			"Dropped audit events due to dispatcher backpressure.",
			nil, nil,
		),
	}

	for _, def := range internaldefs.CounterDefs {
		c.counters = append(c.counters, counterDesc{
			id:   def.ID,
			desc: prometheus.NewDesc(def.Name, def.Help, nil, nil),
		})
	}
	for _, def := range internaldefs.HistogramDefs {
		c.histograms = append(c.histograms, histogramDesc{
			id:   def.ID,
			desc: prometheus.NewDesc(def.Name, def.Help, nil, nil),
		})
	}
	return c
}

// Describe implements [prometheus.Collector].
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	if c == nil {
		return
	}
	for _, def := range c.counters {
		ch <- def.desc
	}
	for _, def := range c.histograms {
		ch <- def.desc
	}
	ch <- c.dropped
}

// Collect implements [prometheus.Collector].
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	if c == nil || c.source == nil {
		return
	}

	snapshot := c.source.MetricsSnapshot()

	for _, def := range c.counters {
		ch <- prometheus.MustNewConstMetric(def.desc, prometheus.CounterValue, float64(snapshot.Counters[def.id]))
	}

	for _, def := range c.histograms {
		raw := internaldefs.NormalizeBuckets(snapshot.Histograms[def.id])
		cumulative := internaldefs.CumulativeBuckets(raw)

		buckets := make(map[float64]uint64, len(histogramBounds))
		for i, bound := range histogramBounds {
			buckets[bound] = cumulative[i]
		}
		count := cumulative[len(cumulative)-1]

		// The guard tracks bucket counts only; the sum is not observed.
		ch <- prometheus.MustNewConstHistogram(def.desc, count, 0, buckets)
	}

	ch <- prometheus.MustNewConstMetric(c.dropped, prometheus.CounterValue, float64(c.source.AuditDropped()))
}

// Handler returns an http.Handler serving this collector from a private
// registry, for callers that do not manage their own.
func (c *Collector) Handler() http.Handler {
	registry := prometheus.NewRegistry()
	registry.MustRegister(c)
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
