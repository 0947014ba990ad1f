// Package middleware exposes HTTP middleware adapters for per-client rate
// limiting built on top of authguard.Guard.
//
// # Guards
//
//   - [RateLimit] — sliding-window admission keyed by a caller-supplied KeyFunc.
//   - [RateLimitByIP] — admission keyed by the client address.
//
// Each guard derives a limiter key from the request, calls Guard.CanAttempt,
// and rejects denied requests with 429 before the wrapped handler runs.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Guard calls. It does NOT count
// attempts itself — all admission decisions are delegated to Guard.CanAttempt.
//
// # What this package must NOT do
//
//   - Track per-client state (Guard owns the attempt ledger).
//   - Expose upstream error details in responses.
//   - Make admission decisions beyond allow/deny from Guard.CanAttempt.
package middleware
