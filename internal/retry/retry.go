// Package retry provides a bounded, fixed-delay retry combinator.
package retry

import (
	"context"
	"time"
)

// Policy is a fixed-delay retry policy. There is no backoff and no jitter,
// and every error is retried until attempts are exhausted.
type Policy struct {
	Attempts int
	Delay    time.Duration

	// OnRetry is called after a failed attempt that will be retried.
	OnRetry func(attempt int, err error)
}

// DefaultPolicy makes two attempts, 500ms apart.
var DefaultPolicy = Policy{Attempts: 2, Delay: 500 * time.Millisecond}

// Do runs op until it succeeds or the policy's attempts are exhausted,
// returning the first result or the last error.
func Do[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var (
		result T
		err    error
	)
	for attempt := 1; attempt <= attempts; attempt++ {
		result, err = op(ctx)
		if err == nil {
			return result, nil
		}
		if attempt == attempts {
			break
		}
		if p.OnRetry != nil {
			p.OnRetry(attempt, err)
		}
		if waitErr := sleep(ctx, p.Delay); waitErr != nil {
			return result, err
		}
	}
	return result, err
}

func sleep(ctx context.Context, d time.Duration) error {
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
