// Package validate provides pure acceptance predicates for credentials and a
// best-effort input scrubber. All functions are stateless and safe for
// unsynchronized concurrent use.
//
// The checks are structural, not authoritative: [Email] approximates address
// syntax without attempting deliverability, and [CleanInput] is a
// defense-in-depth scrub, not a substitute for output encoding at render time.
package validate
