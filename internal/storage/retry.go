package storage

import (
	"context"
	"fmt"
	"time"
)

// RetryBaseDelay is the wait before the second attempt; each later attempt
// waits one more multiple of it.
var RetryBaseDelay = 500 * time.Millisecond

// Retry calls fn up to attempts times, stopping early on success, on an error
// shouldRetry rejects, or when ctx is done.
func Retry[T any](ctx context.Context, attempts int, shouldRetry func(error) bool, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for i := 0; i < attempts; i++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		if shouldRetry != nil && !shouldRetry(err) {
			return zero, err
		}
		if i == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(RetryBaseDelay * time.Duration(i+1)):
		}
	}
	return zero, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}
