// Package clock holds the time helpers shared by the store adapters and the chain client.
package clock

import (
	"context"
	"time"
)

// Sleep blocks for d or until ctx is done. A non-positive d only reports ctx state.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
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

// FromUnixNano converts a NEAR block timestamp (nanoseconds since epoch) into UTC time.
func FromUnixNano(ns int64) time.Time {
	return time.Unix(0, ns).UTC()
}

// ToUnixNano is the inverse of FromUnixNano.
func ToUnixNano(t time.Time) int64 {
	return t.UnixNano()
}
