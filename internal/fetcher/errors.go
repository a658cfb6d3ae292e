package fetcher

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"contextmcp/internal/data/models"
)

// ErrNotFound marks an identifier that does not exist upstream. It is benign:
// fetchers turn it into a NotFound outcome instead of an error.
var ErrNotFound = errors.New("not found")

// ErrUnresolvableRepository is returned when a selection cannot be mapped to
// an owner/repo pair.
var ErrUnresolvableRepository = errors.New("unresolvable repository")

// UpstreamError is a non-2xx, non-404 response from a collaborator.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("upstream returned status %d", e.Status)
	}
	return fmt.Sprintf("upstream returned status %d: %s", e.Status, body)
}

// RateLimitedError is an UpstreamError that carried rate-limit telemetry.
type RateLimitedError struct {
	UpstreamError
	Remaining int
	Reset     time.Time
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("%s (rate limit remaining: %d, resets at %s)", e.UpstreamError.Error(), e.Remaining, e.Reset.UTC().Format(time.RFC3339))
}

func (e *RateLimitedError) Unwrap() error {
	return &e.UpstreamError
}

// OutcomeFromError converts a fetch result into an Outcome so failures never
// escape a single-item fetch.
func OutcomeFromError[T any](v T, err error) models.Outcome[T] {
	switch {
	case err == nil:
		return models.Found(v)
	case errors.Is(err, ErrNotFound):
		return models.NotFound[T]()
	default:
		return models.Failed[T](err)
	}
}
