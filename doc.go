// Package authguard provides a client-embeddable security layer for
// authentication boundaries: a sliding-window attempt limiter, credential
// validators, and an error sanitizer, composed behind a single [Guard].
//
// The package is designed for concurrent server workloads: Guard methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// authguard is the public surface. It exposes [Guard], [Builder], [Config],
// and value types (MetricsSnapshot, AuditEvent, SecurityReport). The three
// leaf components live in their own importable packages — ratelimit,
// validate, and sanitize — so an embedder can take any one of them without
// the composed Guard.
//
// # What this package must NOT do
//
//   - Perform blocking I/O inside Guard decision paths (all checks are
//     synchronous, CPU-bound, in-memory).
//   - Persist or distribute rate-limit state; a cooperating backend is
//     assumed to perform its own authoritative enforcement.
//   - Surface raw upstream error text unless verbose diagnostics are enabled.
//
// # Usage pattern
//
// The intended flow for a sensitive operation is fixed: rate-limit check,
// then input validation, then the protected operation; on failure sanitize
// and surface, on success reset the limiter entry. [Guard.Protect] implements
// the pattern end to end.
package authguard
