// Package retry provides a bounded retry loop with linear backoff.
package retry

import (
	"context"
	"time"
)

// Do runs fn up to maxAttempts times, sleeping baseDelay*attempt between
// failures. The context is checked before each attempt and during backoff;
// cancellation returns the context's error immediately. When every attempt
// fails, the last error is returned unchanged so callers can classify it.
func Do(ctx context.Context, maxAttempts int, baseDelay time.Duration, fn func(attempt int) error) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn(attempt)
		if lastErr == nil {
			return nil
		}
		if attempt == maxAttempts {
			break
		}

		delay := baseDelay * time.Duration(attempt)
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return lastErr
}
