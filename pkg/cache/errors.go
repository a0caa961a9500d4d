package cache

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors shared by the client and retry helpers.
var (
	// ErrNotFound is returned when the Bugzilla endpoint reports 404.
	ErrNotFound = errors.New("not found")

	// ErrNetwork covers HTTP failures worth retrying: timeouts,
	// connection errors, 5xx responses.
	ErrNetwork = errors.New("network error")
)

// RetryableError marks an error as transient so RetryWithBackoff will
// try the operation again.
type RetryableError struct{ Err error }

// Retryable wraps an error as a RetryableError.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// Error returns the message of the wrapped error.
func (e *RetryableError) Error() string { return e.Err.Error() }

// Unwrap returns the wrapped error.
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err carries a RetryableError anywhere in
// its chain.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff runs fn up to 3 times, doubling the delay between
// attempts starting at one second. Only errors marked with Retryable
// trigger another attempt; anything else returns immediately. Bugzilla
// queries can be slow under load, so transient 5xx responses usually
// clear within a retry or two.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	const attempts = 3
	delay := time.Second
	var lastErr error

	for i := 0; i < attempts; i++ {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}
