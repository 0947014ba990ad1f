package authguard

import (
	"context"
	"time"
)

// StartCleanup runs [Guard.Cleanup] every interval until ctx is canceled.
// The sweep schedule is the embedding application's responsibility; this
// helper is the common case of "one ticker for the life of the process".
// Non-positive intervals are rejected so a zero-value config cannot spin.
func (g *Guard) StartCleanup(ctx context.Context, interval time.Duration) error {
	if g == nil {
		return ErrGuardNotReady
	}
	if interval <= 0 {
		return ErrCleanupInterval
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				g.Cleanup()
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}
