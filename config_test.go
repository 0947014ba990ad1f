package authguard

import (
	"errors"
	"testing"
	"time"

	"github.com/authguard/authguard/sanitize"
)

func TestBuildWithDefaults(t *testing.T) {
	g, err := New().Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer g.Close()

	report := g.SecurityReport()
	if !report.RateLimitingActive {
		t.Fatal("default config should activate rate limiting")
	}
	if report.VerboseErrors {
		t.Fatal("default config must not enable verbose errors")
	}
	if report.MaxAttempts != 5 || report.Window != 15*time.Minute {
		t.Fatalf("unexpected default budget: %d in %v", report.MaxAttempts, report.Window)
	}
}

func TestBuildRejectsMalformedConfig(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero attempts", func(c *Config) { c.RateLimit.MaxAttempts = 0 }, ErrConfigMaxAttempts},
		{"negative attempts", func(c *Config) { c.RateLimit.MaxAttempts = -3 }, ErrConfigMaxAttempts},
		{"zero window", func(c *Config) { c.RateLimit.Window = 0 }, ErrConfigWindow},
		{"negative window", func(c *Config) { c.RateLimit.Window = -time.Minute }, ErrConfigWindow},
		{"zero max age", func(c *Config) { c.RateLimit.CleanupMaxAge = 0 }, ErrConfigCleanupMaxAge},
		{
			"max age below window",
			func(c *Config) { c.RateLimit.CleanupMaxAge = c.RateLimit.Window / 2 },
			ErrConfigCleanupHorizon,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(&cfg)

			_, err := New().WithConfig(cfg).Build()
			if !errors.Is(err, tc.want) {
				t.Fatalf("Build error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestBuilderIsSingleUse(t *testing.T) {
	b := New()
	g, err := b.Build()
	if err != nil {
		t.Fatalf("first Build failed: %v", err)
	}
	defer g.Close()

	if _, err := b.Build(); err == nil {
		t.Fatal("second Build should fail")
	}
}

func TestConfigIsClonedOnWith(t *testing.T) {
	cfg := defaultConfig()
	cfg.Sanitizer.Rules = []sanitize.Rule{{Pattern: "boom", Message: "safe"}}

	b := New().WithConfig(cfg)
	cfg.Sanitizer.Rules[0] = sanitize.Rule{Pattern: "boom", Message: "mutated"}

	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer g.Close()

	if got := g.SanitizeError(errors.New("boom happened")); got != "safe" {
		t.Fatalf("SanitizeError = %q; caller mutation leaked into guard", got)
	}
}

func TestVerboseErrorsFromEnv(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"", false},
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{"0", false},
		{"false", false},
		{"banana", false},
	}

	for _, tc := range cases {
		t.Run("value="+tc.value, func(t *testing.T) {
			t.Setenv(VerboseErrorsEnv, tc.value)
			if got := VerboseErrorsFromEnv(); got != tc.want {
				t.Fatalf("VerboseErrorsFromEnv() with %q = %v, want %v", tc.value, got, tc.want)
			}
		})
	}
}
