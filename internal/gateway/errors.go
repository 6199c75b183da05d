package gateway

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
)

var (
	// ErrRepoNotFound indicates the repository does not exist or is not visible.
	ErrRepoNotFound = errors.New("github: repository not found")

	// ErrInvalidRepo indicates an identifier that is not of the form "owner/name".
	ErrInvalidRepo = errors.New("github: invalid repository identifier")
)

// RateLimitError represents a primary or secondary rate limit rejection.
type RateLimitError struct {
	ResetAt time.Time
	Err     error
}

func (e *RateLimitError) Error() string {
	if e.ResetAt.IsZero() {
		return "github: rate limit exceeded"
	}
	return fmt.Sprintf("github: rate limit exceeded, resets at %s", e.ResetAt.Format(time.RFC3339))
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// IsNotFound checks if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrRepoNotFound) {
		return true
	}
	var ghErr *github.ErrorResponse
	return errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

// wrapError converts go-github errors to our error types.
func wrapError(err error, operation string) error {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return &RateLimitError{ResetAt: rateErr.Rate.Reset.Time, Err: err}
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		resetAt := time.Time{}
		if abuseErr.RetryAfter != nil {
			resetAt = time.Now().Add(*abuseErr.RetryAfter)
		}
		return &RateLimitError{ResetAt: resetAt, Err: err}
	}

	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		switch ghErr.Response.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%s: %w", operation, ErrRepoNotFound)
		case http.StatusTooManyRequests:
			return &RateLimitError{Err: err}
		}
	}
	return fmt.Errorf("%s: %w", operation, err)
}
