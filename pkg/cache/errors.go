package cache

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks an error as transient. RetryWithBackoff retries
// only errors carrying this marker; everything else fails fast.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable wraps err as transient. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err carries the transient marker anywhere
// in its chain.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// retryAttempts bounds RetryWithBackoff. Feed fetches either succeed
// within a few tries or the source is down; more attempts just delay the
// error the user will see anyway.
const retryAttempts = 3

// RetryWithBackoff runs fn, retrying transient failures with exponential
// backoff (1s, 2s). The context cancels the wait between attempts.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := time.Second
	var lastErr error

	for attempt := 0; attempt < retryAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !IsRetryable(lastErr) {
			return lastErr
		}
		if attempt == retryAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return lastErr
}
