package engine

import (
	"context"
	"time"
)

// Delay suspends the caller for d. It returns nil once d has elapsed, or the
// context's error if ctx is done first. It is the only place a recovery run
// observes cancellation.
type Delay func(ctx context.Context, d time.Duration) error

// TimerDelay is the Delay backed by a runtime timer. An already-done context
// fails immediately, even for a zero duration.
func TimerDelay(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
