package suggest

import (
	"context"
	"math/rand"
	"time"
)

type rateLimitError struct{}

func (e *rateLimitError) Error() string { return "rate limited" }

type authError struct {
	message string
}

func (e *authError) Error() string {
	return "authentication error: " + e.message
}

type serverError struct {
	statusCode int
	body       string
}

func (e *serverError) Error() string {
	return "server error: " + e.body
}

type transportError struct {
	err error
}

func (e *transportError) Error() string { return "transport error: " + e.err.Error() }

func (e *transportError) Unwrap() error { return e.err }

// retryWithBackoff runs fn until it succeeds or attempts are exhausted.
// Rate-limit, server, and transport errors are retried with exponential
// back-off plus jitter; auth errors return immediately so the caller can
// switch credentials.
func retryWithBackoff(ctx context.Context, maxRetries int, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		switch lastErr.(type) {
		case *rateLimitError, *serverError, *transportError:
		default:
			return lastErr
		}

		if attempt < maxRetries {
			backoff := time.Duration(1<<uint(attempt))*time.Second +
				time.Duration(rand.Int63n(int64(time.Second)))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}
	}
	return lastErr
}
