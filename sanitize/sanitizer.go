package sanitize

import "strings"

// Config controls sanitizer construction.
//
// Verbose selects raw diagnostics over classification and must stay false in
// deployed instances. Rules overrides the classification table; nil keeps
// [DefaultRules]. The table is copied at construction and never mutated.
type Config struct {
	Verbose bool
	Rules   []Rule
}

type loweredRule struct {
	pattern string
	message string
}

// Sanitizer classifies error messages against a fixed rule table.
// The zero value is not usable; construct with [New].
type Sanitizer struct {
	rules   []loweredRule
	verbose bool
}

// New builds a Sanitizer from cfg.
func New(cfg Config) *Sanitizer {
	rules := cfg.Rules
	if rules == nil {
		rules = DefaultRules()
	}

	s := &Sanitizer{
		rules:   make([]loweredRule, 0, len(rules)),
		verbose: cfg.Verbose,
	}
	for _, r := range rules {
		if r.Pattern == "" {
			continue
		}
		s.rules = append(s.rules, loweredRule{
			pattern: strings.ToLower(r.Pattern),
			message: r.Message,
		})
	}
	return s
}

// Sanitize returns a user-safe message for err. It never fails: a nil error
// or an unmatched message resolves to [FallbackMessage]. In verbose mode the
// raw message is returned instead, redacted of obvious secrets.
func (s *Sanitizer) Sanitize(err error) string {
	if s == nil {
		return FallbackMessage
	}

	msg := ""
	if err != nil {
		msg = err.Error()
	}

	if s.verbose {
		if msg == "" {
			return FallbackMessage
		}
		return Redact(msg)
	}

	lowered := strings.ToLower(msg)
	for _, r := range s.rules {
		if strings.Contains(lowered, r.pattern) {
			return r.message
		}
	}
	return FallbackMessage
}

// Verbose reports whether raw diagnostics mode is active.
func (s *Sanitizer) Verbose() bool {
	return s != nil && s.verbose
}
