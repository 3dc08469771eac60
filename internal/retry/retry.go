// Package retry re-runs remote operations with exponential backoff.
package retry

import (
	"context"
	"time"

	"github.com/sallieha/HabitTrackerApp/internal/clock"
	"github.com/sallieha/HabitTrackerApp/internal/constants"
	"github.com/sallieha/HabitTrackerApp/internal/logger"
)

// Policy controls how many times an operation is retried and how long
// to wait between attempts. The wait doubles after every failure; there
// is no jitter and no cap.
type Policy struct {
	MaxRetries   int
	InitialDelay time.Duration
	Clock        clock.Clock
}

// DefaultPolicy returns three retries starting at one second.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:   constants.DefaultMaxRetries,
		InitialDelay: constants.DefaultInitialDelay,
		Clock:        clock.Real(),
	}
}

// Do runs op up to MaxRetries+1 times. Every error is retried. When the
// retries are exhausted the last error is returned unchanged. A
// cancelled context aborts the wait and returns ctx.Err().
//
// Only wrap operations that are safe to repeat: reads, deletes by key,
// and upserts keyed by a client-generated ID.
func Do[T any](ctx context.Context, p Policy, op func(context.Context) (T, error)) (T, error) {
	clk := p.Clock
	if clk == nil {
		clk = clock.Real()
	}
	delay := p.InitialDelay

	for attempt := 0; ; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		if attempt >= p.MaxRetries {
			return result, err
		}

		logger.Debug("Retrying operation", "attempt", attempt+1, "delay", delay, "error", err)
		select {
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		case <-clk.After(delay):
		}
		delay *= 2
	}
}

// Run is Do for operations that return only an error.
func Run(ctx context.Context, p Policy, op func(context.Context) error) error {
	_, err := Do(ctx, p, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}
