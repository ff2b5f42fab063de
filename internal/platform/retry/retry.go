// Package retry runs idempotent backend reads with exponential backoff.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Policy controls how many attempts are made and how long to wait between them.
type Policy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	OnRetry        func(attempt int, err error, backoff time.Duration)
}

// DefaultPolicy suits interactive reads: quick retries, fail fast.
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: 3, InitialBackoff: 200 * time.Millisecond}
}

// Operation is one attempt of the guarded call.
type Operation[T any] func() (T, error)

// Do runs op until it succeeds, the error is not retryable, or attempts run
// out. Backoff doubles between attempts. Non-retryable errors are returned
// unchanged so callers can classify them.
func Do[T any](ctx context.Context, p Policy, retryable func(error) bool, op Operation[T]) (T, error) {
	backoff := p.InitialBackoff

	for attempt := 1; ; attempt++ {
		val, err := op()
		if err == nil {
			return val, nil
		}

		if !retryable(err) {
			var zero T
			return zero, err
		}

		if attempt >= p.MaxAttempts {
			var zero T
			return zero, fmt.Errorf("failed after %d attempts: %w", p.MaxAttempts, err)
		}

		if p.OnRetry != nil {
			p.OnRetry(attempt, err, backoff)
		}

		select {
		case <-time.After(backoff):
			backoff *= 2
		case <-ctx.Done():
			var zero T
			return zero, fmt.Errorf("context cancelled during retry: %w", ctx.Err())
		}
	}
}
