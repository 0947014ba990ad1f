package authguard

import (
	"time"

	"github.com/authguard/authguard/sanitize"
)

// SecurityReport describes the effective posture of a built Guard, for
// startup logging and operational review. VerboseErrors true in a deployed
// instance is the thing reviewers are expected to catch here.
type SecurityReport struct {
	VerboseErrors      bool
	RateLimitingActive bool
	MaxAttempts        int
	Window             time.Duration
	CleanupMaxAge      time.Duration
	AuditingActive     bool
	MetricsActive      bool
	SanitizerRules     int
	TrackedKeys        int
}

// SecurityReport returns the Guard's effective configuration.
func (g *Guard) SecurityReport() SecurityReport {
	if g == nil {
		return SecurityReport{}
	}

	rules := g.config.Sanitizer.Rules
	ruleCount := len(rules)
	if rules == nil {
		ruleCount = len(sanitize.DefaultRules())
	}

	return SecurityReport{
		VerboseErrors:      g.config.Sanitizer.VerboseErrors,
		RateLimitingActive: g.config.RateLimit.MaxAttempts > 0 && g.config.RateLimit.Window > 0,
		MaxAttempts:        g.config.RateLimit.MaxAttempts,
		Window:             g.config.RateLimit.Window,
		CleanupMaxAge:      g.config.RateLimit.CleanupMaxAge,
		AuditingActive:     g.audit != nil,
		MetricsActive:      g.metrics.Enabled(),
		SanitizerRules:     ruleCount,
		TrackedKeys:        g.limiter.Size(),
	}
}
