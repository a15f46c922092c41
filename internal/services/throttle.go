package services

import (
	"context"
	"time"
)

// pause waits for the courtesy throttle between successive external calls.
// The delay respects the rate limits of public geocoding/routing instances;
// a zero duration (the test configuration) returns immediately.
func pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
