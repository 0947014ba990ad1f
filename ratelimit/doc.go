// Package ratelimit provides an in-memory sliding-window attempt limiter
// keyed by opaque strings, used to throttle security-sensitive operations
// such as login, registration, and password reset.
//
// # Window semantics
//
// Sliding window log: every allowed attempt records a timestamp, and a key is
// denied once the number of timestamps younger than the window reaches the
// configured maximum. Pruning happens lazily on each check, so an exhausted
// key recovers without timers once its window elapses. Stale keys are
// reclaimed by [Limiter.Cleanup], which the embedding application is expected
// to drive on its own schedule.
//
// # What this package must NOT do
//
//   - Persist or share state across processes (single-instance ownership).
//   - Generate user-facing messages (denial is a bare boolean).
//   - Self-schedule background sweeps.
package ratelimit
