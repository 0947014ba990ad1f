package prometheus

import (
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	authguard "github.com/authguard/authguard"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type fakeSource struct {
	mu       sync.RWMutex
	snapshot authguard.MetricsSnapshot
	dropped  uint64
}

func (f *fakeSource) MetricsSnapshot() authguard.MetricsSnapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := authguard.MetricsSnapshot{
		Counters:   make(map[authguard.MetricID]uint64, len(f.snapshot.Counters)),
		Histograms: make(map[authguard.MetricID][]uint64, len(f.snapshot.Histograms)),
	}
	for k, v := range f.snapshot.Counters {
		out.Counters[k] = v
	}
	for k, buckets := range f.snapshot.Histograms {
		next := make([]uint64, len(buckets))
		copy(next, buckets)
		out.Histograms[k] = next
	}
	return out
}

func (f *fakeSource) AuditDropped() uint64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.dropped
}

func TestCollectorExportsCounters(t *testing.T) {
	source := &fakeSource{
		snapshot: authguard.MetricsSnapshot{
			Counters: map[authguard.MetricID]uint64{
				authguard.MetricAttemptAllowed: 7,
				authguard.MetricAttemptDenied:  3,
			},
			Histograms: map[authguard.MetricID][]uint64{},
		},
		dropped: 2,
	}

	c := NewCollectorFromSource(source)

	if problems, err := testutil.CollectAndLint(c); err != nil || len(problems) > 0 {
		t.Fatalf("collector lint: err=%v problems=%v", err, problems)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	c.Handler().ServeHTTP(rec, req)

	body := rec.Body.String()
	for _, want := range []string{
		"authguard_attempt_allowed_total 7",
		"authguard_attempt_denied_total 3",
		"authguard_audit_dropped_total 2",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("exposition missing %q:\n%s", want, body)
		}
	}
}

func TestCollectorExportsHistogram(t *testing.T) {
	source := &fakeSource{
		snapshot: authguard.MetricsSnapshot{
			Counters: map[authguard.MetricID]uint64{},
			Histograms: map[authguard.MetricID][]uint64{
				authguard.MetricProtectLatency: {1, 0, 2, 0, 0, 0, 0, 1},
			},
		},
	}

	c := NewCollectorFromSource(source)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	c.Handler().ServeHTTP(rec, req)

	body := rec.Body.String()
	for _, want := range []string{
		`authguard_protect_latency_seconds_bucket{le="0.005"} 1`,
		`authguard_protect_latency_seconds_bucket{le="0.025"} 3`,
		`authguard_protect_latency_seconds_bucket{le="+Inf"} 4`,
		"authguard_protect_latency_seconds_count 4",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("exposition missing %q:\n%s", want, body)
		}
	}
}

func TestCollectorFromGuard(t *testing.T) {
	g, err := authguard.New().WithMetricsEnabled(true).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer g.Close()

	g.ValidEmail("nope")

	c := NewCollector(g)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	c.Handler().ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), "authguard_email_rejected_total 1") {
		t.Fatalf("guard-backed exposition missing rejection counter:\n%s", rec.Body.String())
	}
}
