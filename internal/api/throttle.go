package api

import (
	"context"
	"log/slog"
	"time"
)

// RateStore records when the most recent request was allowed to start.
// Implementations must make Reserve atomic: concurrent callers each get a
// distinct slot spaced at least spacing apart.
type RateStore interface {
	// Reserve claims the next start slot, max(now, previous+spacing), and
	// returns the previous slot (zero if there was none).
	Reserve(ctx context.Context, now time.Time, spacing time.Duration) (time.Time, error)
}

// SlotReleaser is implemented by stores that can hand back a reserved slot.
// Release resets the store to prev only if slot is still the latest
// reservation, so later reservations are never disturbed.
type SlotReleaser interface {
	Release(ctx context.Context, slot, prev time.Time) error
}

// reservedSlot mirrors the slot a RateStore claims in Reserve.
func reservedSlot(prev, now time.Time, spacing time.Duration) time.Time {
	if earliest := prev.Add(spacing); !prev.IsZero() && earliest.After(now) {
		return earliest
	}
	return now
}

// ThrottleOptions controls Throttle.
type ThrottleOptions struct {
	// RateLimit is the allowed requests per hour. Zero disables throttling.
	RateLimit float64
	Verbose   bool
	Logger    *slog.Logger
}

// Spacing returns the minimum gap between request starts for a requests/hour
// budget, or zero when there is no budget.
func Spacing(rateLimit float64) time.Duration {
	if rateLimit <= 0 {
		return 0
	}
	return time.Duration(float64(time.Hour) / rateLimit)
}

// Throttle waits until at least Spacing(opts.RateLimit) has passed since last
// and returns the time it resumed. It returns immediately when no limit is set
// or the gap has already elapsed.
func Throttle(ctx context.Context, last time.Time, opts ThrottleOptions) (time.Time, error) {
	spacing := Spacing(opts.RateLimit)
	if spacing == 0 {
		return time.Now(), nil
	}

	now := time.Now()
	elapsed := now.Sub(last)
	if elapsed >= spacing {
		return now, nil
	}

	wait := spacing - elapsed
	if opts.Verbose {
		logger := opts.Logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.Info("rate limited",
			"wait", wait,
			"now", now.UTC().Format("15:04:05.000"),
			"until", now.Add(wait).UTC().Format("15:04:05.000"))
	}
	if err := sleepWithContext(ctx, wait); err != nil {
		return time.Time{}, err
	}
	return time.Now(), nil
}

// sleepWithContext waits for the duration or returns early on context cancellation.
func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
