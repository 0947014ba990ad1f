// Package prometheus provides a Prometheus collector for authguard metrics.
//
// [NewCollector] accepts an [authguard.Guard] and implements
// [prometheus.Collector] over point-in-time snapshots, so the guard's write
// path stays allocation-free and unaware of Prometheus. Counter names are
// prefixed authguard_*_total; the single histogram is
// authguard_protect_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in the global Prometheus registry — callers choose the
//     registry, or mount [Collector.Handler] which owns a private one.
//   - Mutate guard state.
package prometheus
