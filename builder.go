package authguard

import (
	"errors"
	"time"

	"github.com/authguard/authguard/ratelimit"
	"github.com/authguard/authguard/sanitize"
)

// Builder assembles a [Guard]. A Builder is single-use: Build returns an
// error on reuse so half-configured guards cannot leak into production.
type Builder struct {
	config    Config
	auditSink AuditSink
	clock     func() time.Time
	built     bool
}

// New creates a Builder seeded with production defaults.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the entire configuration. The config is cloned; later
// mutation of cfg by the caller has no effect on the built Guard.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithAuditSink installs the destination for audit events. A nil sink with
// auditing enabled falls back to [NoOpSink].
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithClock injects a time source for the limiter. Tests use this for
// deterministic window control; production builds use the wall clock.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.clock = now
	return b
}

// WithVerboseErrors toggles raw diagnostics mode. Intended to be fed from
// [VerboseErrorsFromEnv] at startup and never flipped afterwards.
func (b *Builder) WithVerboseErrors(enabled bool) *Builder {
	b.config.Sanitizer.VerboseErrors = enabled
	return b
}

// WithMetricsEnabled toggles the in-memory metrics table.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates the configuration and assembles an immutable [Guard].
func (b *Builder) Build() (*Guard, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	if err := validateConfig(b.config); err != nil {
		return nil, err
	}

	clock := b.clock
	if clock == nil {
		clock = time.Now
	}

	g := &Guard{
		config:  b.config,
		limiter: ratelimit.NewWithClock(clock),
		sanitizer: sanitize.New(sanitize.Config{
			Verbose: b.config.Sanitizer.VerboseErrors,
			Rules:   b.config.Sanitizer.Rules,
		}),
		metrics: NewMetrics(b.config.Metrics),
		audit:   newAuditDispatcher(b.config.Audit, b.auditSink),
		clock:   clock,
	}

	b.built = true
	return g, nil
}
