// Package sanitize converts arbitrary upstream failures into fixed, user-safe
// messages so raw backend errors never reach an end user.
//
// Classification is an ordered table of case-insensitive substring rules;
// the first matching rule wins and unmatched errors resolve to a generic
// fallback rather than passing raw text through. A verbose mode, intended
// only for non-production diagnostics, returns the raw message instead —
// after a redaction pass for obvious secrets.
//
// # What this package must NOT do
//
//   - Fail. [Sanitizer.Sanitize] always returns a string, for any input.
//   - Mutate its rule table after construction.
package sanitize
