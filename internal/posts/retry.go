package posts

import (
	"context"
	"errors"
	"time"
)

// RetryPolicy bounds how store failures are retried. Attempts counts the
// first call; values below one mean a single attempt.
type RetryPolicy struct {
	Attempts int
	Backoff  time.Duration
}

// DefaultRetryPolicy makes three attempts starting at 100ms.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: 3, Backoff: 100 * time.Millisecond}
}

// run calls operation until it succeeds, fails terminally, or the attempts are
// spent. Only store failures are retried. When idempotent is false a failure is
// retried only if the store was never reached, so a write that may have been
// applied is not repeated.
func (p RetryPolicy) run(ctx context.Context, idempotent bool, operation func() error) error {
	attempts := max(p.Attempts, 1)
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = operation()
		if lastErr == nil || !retryable(lastErr, idempotent) {
			return lastErr
		}

		if attempt < attempts-1 && p.Backoff > 0 {
			backoff := p.Backoff << attempt
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}
	}
	return lastErr
}

func retryable(err error, idempotent bool) bool {
	var storeErr *StoreError
	if !errors.As(err, &storeErr) {
		return false
	}
	return idempotent || storeErr.Unavailable
}
