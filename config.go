package authguard

import (
	"os"
	"strconv"
	"time"

	"github.com/authguard/authguard/sanitize"
)

// Config defines the composed security layer's tuning parameters.
//
// Config instances are intended to be configured during initialization and
// then treated as immutable; [Builder.Build] clones and validates them.
type Config struct {
	RateLimit RateLimitConfig
	Sanitizer SanitizerConfig
	Audit     AuditConfig
	Metrics   MetricsConfig
}

/*
====================================
RATE LIMIT CONFIG
====================================
*/

// RateLimitConfig sets the default attempt budget applied by [Guard.CanAttempt]
// and [Guard.Protect]. Per-call overrides go through [Guard.CanAttemptN].
//
// CleanupMaxAge is the long retention horizon used by [Guard.Cleanup]; it
// bounds memory for abandoned keys and is distinct from the throttling window.
type RateLimitConfig struct {
	MaxAttempts   int
	Window        time.Duration
	CleanupMaxAge time.Duration
}

/*
====================================
SANITIZER CONFIG
====================================
*/

// SanitizerConfig controls error classification. VerboseErrors returns raw
// (redacted) diagnostics instead of safe messages and must stay false in
// deployed instances; source it from the environment via
// [VerboseErrorsFromEnv]. Rules overrides the classification table; nil keeps
// [sanitize.DefaultRules].
type SanitizerConfig struct {
	VerboseErrors bool
	Rules         []sanitize.Rule
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig controls the async audit dispatcher. DropIfFull favors caller
// latency over delivery when the buffer saturates; dropped events are counted
// and exposed through [Guard.AuditDropped].
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig controls the in-memory counter table. Latency histograms
// observe the duration of operations wrapped by [Guard.Protect].
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// VerboseErrorsEnv is the environment variable consulted by
// [VerboseErrorsFromEnv]. It is the only configuration this layer reads from
// the environment.
const VerboseErrorsEnv = "AUTHGUARD_VERBOSE_ERRORS"

// VerboseErrorsFromEnv reports whether verbose diagnostics are requested via
// the environment. Unset or unparsable values mean false, so a misconfigured
// deployment fails closed to sanitized output.
func VerboseErrorsFromEnv() bool {
	v, err := strconv.ParseBool(os.Getenv(VerboseErrorsEnv))
	return err == nil && v
}

func defaultConfig() Config {
	return Config{
		RateLimit: RateLimitConfig{
			MaxAttempts:   5,
			Window:        15 * time.Minute,
			CleanupMaxAge: time.Hour,
		},
		Sanitizer: SanitizerConfig{
			VerboseErrors: false,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	if cfg.Sanitizer.Rules != nil {
		out.Sanitizer.Rules = append([]sanitize.Rule(nil), cfg.Sanitizer.Rules...)
	}
	return out
}

// validateConfig enforces the fail-fast contract: malformed limits are
// programmer errors and are rejected at Build time, never absorbed into an
// always-deny or always-allow limiter.
func validateConfig(cfg Config) error {
	if cfg.RateLimit.MaxAttempts <= 0 {
		return ErrConfigMaxAttempts
	}
	if cfg.RateLimit.Window <= 0 {
		return ErrConfigWindow
	}
	if cfg.RateLimit.CleanupMaxAge <= 0 {
		return ErrConfigCleanupMaxAge
	}
	if cfg.RateLimit.CleanupMaxAge < cfg.RateLimit.Window {
		return ErrConfigCleanupHorizon
	}
	return nil
}
