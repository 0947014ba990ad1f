package authguard

import (
	"context"
	"time"

	"github.com/authguard/authguard/ratelimit"
	"github.com/authguard/authguard/sanitize"
	"github.com/authguard/authguard/validate"
)

// Guard composes the sliding-window limiter, credential validators, and error
// sanitizer behind one instance. Construct through [Builder.Build]; a Guard
// is immutable after construction and safe for concurrent use.
type Guard struct {
	config    Config
	limiter   *ratelimit.Limiter
	sanitizer *sanitize.Sanitizer
	metrics   *Metrics
	audit     *auditDispatcher
	clock     func() time.Time
}

// CanAttempt checks key against the configured default budget and records the
// attempt when allowed. A denial is not recorded, so saturated keys recover
// as soon as their window elapses. The error is non-nil only for contract
// violations (empty key); rate-limit denial is the boolean, never an error.
func (g *Guard) CanAttempt(ctx context.Context, key string) (bool, error) {
	if g == nil {
		return false, ErrGuardNotReady
	}
	return g.CanAttemptN(ctx, key, g.config.RateLimit.MaxAttempts, g.config.RateLimit.Window)
}

// CanAttemptN is [Guard.CanAttempt] with a per-call budget, for callers that
// throttle different operations at different rates over one shared table.
func (g *Guard) CanAttemptN(ctx context.Context, key string, maxAttempts int, window time.Duration) (bool, error) {
	if g == nil {
		return false, ErrGuardNotReady
	}

	ok, err := g.limiter.Attempt(key, maxAttempts, window)
	if err != nil {
		return false, err
	}

	if ok {
		g.metricInc(MetricAttemptAllowed)
		return true, nil
	}

	g.metricInc(MetricAttemptDenied)
	g.emitAudit(ctx, AuditEvent{
		EventType: AuditAttemptDenied,
		Key:       key,
		Success:   false,
	})
	return false, nil
}

// Reset removes the attempt ledger for key. Called after a successful
// sensitive operation; resetting an absent key is a no-op.
func (g *Guard) Reset(key string) {
	if g == nil || key == "" {
		return
	}
	g.limiter.Reset(key)
	g.metricInc(MetricLimiterReset)
}

// Cleanup sweeps the limiter table with the configured retention horizon and
// returns the number of entries removed. The embedding application drives the
// schedule, either directly or through [Guard.StartCleanup].
func (g *Guard) Cleanup() int {
	if g == nil {
		return 0
	}
	removed := g.limiter.Cleanup(g.config.RateLimit.CleanupMaxAge)
	g.metricInc(MetricCleanupRun)
	g.metricAdd(MetricEntriesPruned, uint64(removed))
	return removed
}

// TrackedKeys returns the current size of the limiter table.
func (g *Guard) TrackedKeys() int {
	if g == nil {
		return 0
	}
	return g.limiter.Size()
}

// SanitizeError maps err onto the safe-message vocabulary. Never fails; nil
// and unmatched errors resolve to the generic fallback, and in verbose mode
// the raw (redacted) message is returned instead.
func (g *Guard) SanitizeError(err error) string {
	if g == nil {
		return sanitize.FallbackMessage
	}

	msg := g.sanitizer.Sanitize(err)
	switch {
	case g.sanitizer.Verbose():
		g.metricInc(MetricErrorVerbose)
	case msg == sanitize.FallbackMessage:
		g.metricInc(MetricErrorUnmatched)
	default:
		g.metricInc(MetricErrorMatched)
	}
	return msg
}

// ValidEmail reports whether s is structurally acceptable as an email
// address. Pure delegation to [validate.Email] plus a rejection counter.
func (g *Guard) ValidEmail(s string) bool {
	ok := validate.Email(s)
	if !ok {
		g.metricInc(MetricEmailRejected)
	}
	return ok
}

// ValidPassword reports whether s satisfies the credential policy.
func (g *Guard) ValidPassword(s string) bool {
	ok := validate.Password(s)
	if !ok {
		g.metricInc(MetricPasswordRejected)
	}
	return ok
}

// CleanInput scrubs free-form input (trim, strip angle brackets, truncate).
func (g *Guard) CleanInput(s string) string {
	out := validate.CleanInput(s)
	if len(out) != len(s) {
		g.metricInc(MetricInputAltered)
	}
	return out
}

// Close flushes and stops the audit dispatcher. The Guard must not be used
// after Close.
func (g *Guard) Close() {
	if g == nil {
		return
	}
	if g.audit != nil {
		g.audit.Close()
	}
}

// AuditDropped returns the number of audit events dropped under backpressure.
func (g *Guard) AuditDropped() uint64 {
	if g == nil || g.audit == nil {
		return 0
	}
	return g.audit.Dropped()
}

// MetricsSnapshot returns a point-in-time copy of all counters and histograms.
func (g *Guard) MetricsSnapshot() MetricsSnapshot {
	if g == nil || g.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return g.metrics.Snapshot()
}

func (g *Guard) metricInc(id MetricID) {
	if g == nil || g.metrics == nil {
		return
	}
	g.metrics.Inc(id)
}

func (g *Guard) metricAdd(id MetricID, n uint64) {
	if g == nil || g.metrics == nil {
		return
	}
	g.metrics.Add(id, n)
}

func (g *Guard) metricObserve(id MetricID, d time.Duration) {
	if g == nil || g.metrics == nil {
		return
	}
	g.metrics.Observe(id, d)
}

func (g *Guard) emitAudit(ctx context.Context, event AuditEvent) {
	if g == nil || g.audit == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = g.clock()
	}
	g.audit.Emit(ctx, event)
}
