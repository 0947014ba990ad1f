package ratelimit

import (
	"sync"
	"time"
)

// Limiter tracks recent attempt timestamps per key and decides whether a new
// attempt fits inside a rolling window. All methods are safe for concurrent
// use; the check-then-record sequence in [Limiter.Attempt] is atomic per call.
type Limiter struct {
	mu      sync.Mutex
	entries map[string][]time.Time
	now     func() time.Time
}

// New creates a Limiter using the wall clock.
func New() *Limiter {
	return NewWithClock(time.Now)
}

// NewWithClock creates a Limiter with an injected time source. Tests use this
// to advance time deterministically; production callers use [New].
func NewWithClock(now func() time.Time) *Limiter {
	if now == nil {
		now = time.Now
	}
	return &Limiter{
		entries: make(map[string][]time.Time),
		now:     now,
	}
}

// Attempt reports whether the action identified by key may proceed given at
// most maxAttempts within the trailing window. An allowed attempt is recorded;
// a denied attempt is not, so a saturated key recovers as soon as its oldest
// recorded timestamp ages out of the window.
//
// An error is returned only for contract violations (empty key, non-positive
// maxAttempts or window). These are programmer errors, never runtime states.
func (l *Limiter) Attempt(key string, maxAttempts int, window time.Duration) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}
	if maxAttempts <= 0 {
		return false, ErrInvalidAttempts
	}
	if window <= 0 {
		return false, ErrInvalidWindow
	}

	now := l.now()
	cutoff := now.Add(-window)

	l.mu.Lock()
	defer l.mu.Unlock()

	recent := pruneBefore(l.entries[key], cutoff)
	if len(recent) >= maxAttempts {
		l.entries[key] = recent
		return false, nil
	}

	l.entries[key] = append(recent, now)
	return true, nil
}

// Reset removes all recorded attempts for key. Resetting an absent key is a
// no-op. Called after a successful sensitive operation so an earlier failed
// streak does not penalize future legitimate attempts.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	delete(l.entries, key)
	l.mu.Unlock()
}

// Cleanup drops timestamps older than maxAge across all keys and removes
// entries that become empty. It bounds memory for keys that are never checked
// again; maxAge is a retention horizon, not a throttling window. Returns the
// number of entries removed.
func (l *Limiter) Cleanup(maxAge time.Duration) int {
	if maxAge <= 0 {
		return 0
	}

	cutoff := l.now().Add(-maxAge)

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, stamps := range l.entries {
		recent := pruneBefore(stamps, cutoff)
		if len(recent) == 0 {
			delete(l.entries, key)
			removed++
			continue
		}
		l.entries[key] = recent
	}
	return removed
}

// Size returns the number of keys currently tracked.
func (l *Limiter) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// pruneBefore returns the suffix of stamps at or after cutoff. Timestamps are
// appended in non-decreasing order, so a single scan for the first survivor
// is enough.
func pruneBefore(stamps []time.Time, cutoff time.Time) []time.Time {
	first := len(stamps)
	for i, ts := range stamps {
		if !ts.Before(cutoff) {
			first = i
			break
		}
	}
	if first == 0 {
		return stamps
	}
	return append([]time.Time(nil), stamps[first:]...)
}
