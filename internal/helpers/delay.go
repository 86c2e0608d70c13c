package helpers

import (
	"context"
	"math/rand"
	"time"
)

// RandomDelay sleeps for a random duration inside [min, max]. A non-positive
// window returns immediately. Cancelling the context aborts the sleep.
func RandomDelay(ctx context.Context, min, max time.Duration) error {
	if min < 0 {
		min = 0
	}
	if max < min {
		max = min
	}
	d := min
	if max > min {
		d = min + time.Duration(rand.Int63n(int64(max-min)))
	}
	if d <= 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
