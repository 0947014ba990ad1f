package internaldefs

import (
	authguard "github.com/authguard/authguard"
)

// CounterDef ties a [authguard.MetricID] to its exported name and help text.
type CounterDef struct {
	ID   authguard.MetricID
	Name string
	Help string
}

// HistogramDef ties a histogram metric to its exported name and help text.
type HistogramDef struct {
	ID   authguard.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported counter, in stable output order.
var CounterDefs = []CounterDef{
	{ID: authguard.MetricAttemptAllowed, Name: "authguard_attempt_allowed_total", Help: "Rate-limit checks that admitted an attempt."},
	{ID: authguard.MetricAttemptDenied, Name: "authguard_attempt_denied_total", Help: "Sliding-window denials."},
	{ID: authguard.MetricLimiterReset, Name: "authguard_limiter_reset_total", Help: "Explicit ledger resets after successful operations."},
	{ID: authguard.MetricCleanupRun, Name: "authguard_cleanup_run_total", Help: "Retention sweep invocations."},
	{ID: authguard.MetricEntriesPruned, Name: "authguard_entries_pruned_total", Help: "Ledger entries removed by cleanup sweeps."},
	{ID: authguard.MetricEmailRejected, Name: "authguard_email_rejected_total", Help: "Structurally invalid email inputs."},
	{ID: authguard.MetricPasswordRejected, Name: "authguard_password_rejected_total", Help: "Passwords failing the credential policy."},
	{ID: authguard.MetricInputAltered, Name: "authguard_input_altered_total", Help: "Inputs changed by the scrubber."},
	{ID: authguard.MetricErrorMatched, Name: "authguard_error_matched_total", Help: "Errors classified by a sanitizer rule."},
	{ID: authguard.MetricErrorUnmatched, Name: "authguard_error_unmatched_total", Help: "Errors resolved to the generic fallback."},
	{ID: authguard.MetricErrorVerbose, Name: "authguard_error_verbose_total", Help: "Raw diagnostics returned in verbose mode."},
	{ID: authguard.MetricProtectSuccess, Name: "authguard_protect_success_total", Help: "Protected operations that completed."},
	{ID: authguard.MetricProtectFailure, Name: "authguard_protect_failure_total", Help: "Protected operations that returned an error."},
	{ID: authguard.MetricProtectRefused, Name: "authguard_protect_refused_total", Help: "Protect calls refused before the operation ran."},
}

// HistogramDefs lists every exported histogram.
var HistogramDefs = []HistogramDef{
	{ID: authguard.MetricProtectLatency, Name: "authguard_protect_latency_seconds", Help: "Protected-operation latency histogram."},
}

// HistogramBounds are the upper bounds, in seconds, of the 8 fixed buckets.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix mirrors HistogramBounds with identifier-safe names for
// exporters that cannot carry an "le" label.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets pads or truncates a raw snapshot slice to the fixed width.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts into the cumulative form both
// Prometheus and OTel expect.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
