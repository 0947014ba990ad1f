package sanitize

import "regexp"

// RedactedPlaceholder replaces secret material in verbose diagnostics.
const RedactedPlaceholder = "[REDACTED]"

// secretPatterns covers credential shapes that routinely leak through raw
// provider errors. Compiled once at package init.
var secretPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9._-]{20,}`),
	regexp.MustCompile(`(?i)sk-[a-zA-Z0-9_-]{20,}`),
	regexp.MustCompile(`(?i)password\s*[:=]\s*[^\s,;]+`),
	regexp.MustCompile(`(?i)secret\s*[:=]\s*[^\s,;]+`),
	regexp.MustCompile(`(?i)token\s*[:=]\s*[^\s,;]+`),
	regexp.MustCompile(`(?i)api_?key\s*[:=]\s*[^\s,;]+`),
}

// Redact replaces recognized secret material in s with [RedactedPlaceholder].
// Pure function; applied to verbose output before it leaves the sanitizer.
func Redact(s string) string {
	if s == "" {
		return s
	}
	for _, p := range secretPatterns {
		s = p.ReplaceAllString(s, RedactedPlaceholder)
	}
	return s
}
