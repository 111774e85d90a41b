package github

import (
	"errors"
	"fmt"

	gh "github.com/google/go-github/v62/github"
)

// Sentinel errors for upstream failures the HTTP layer maps to status codes.
var (
	// ErrNotFound indicates the repository or path does not exist.
	ErrNotFound = errors.New("repository not found")

	// ErrUnauthorized indicates the GitHub token was rejected.
	ErrUnauthorized = errors.New("unauthorized: invalid GitHub token")

	// ErrRateLimited indicates the GitHub API quota is exhausted.
	ErrRateLimited = errors.New("rate limited: GitHub API quota exceeded")
)

// wrapError translates go-github errors into sentinel errors with context.
func wrapError(err error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)

	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return fmt.Errorf("%s: %w", msg, ErrRateLimited)
	}
	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return fmt.Errorf("%s: %w", msg, ErrRateLimited)
	}

	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		switch respErr.Response.StatusCode {
		case 404:
			return fmt.Errorf("%s: %w", msg, ErrNotFound)
		case 401:
			return fmt.Errorf("%s: %w", msg, ErrUnauthorized)
		case 403, 429:
			return fmt.Errorf("%s: %w", msg, ErrRateLimited)
		}
	}

	return fmt.Errorf("%s: %w", msg, err)
}
