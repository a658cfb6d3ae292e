package engine

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"contextmcp/internal/fetcher"

	"go.uber.org/zap"
)

// failure logs err and renders the in-band message for an operation that
// could not run at all: "Error <doing>: <reason>".
func (e *Engine) failure(doing string, err error) string {
	e.logger.Error("operation failed", zap.String("op", doing), zap.Error(err))
	return fmt.Sprintf("Error %s: %s", doing, presentError(err))
}

// presentError turns an upstream failure into a short reason. Structured
// errors are preferred so request URLs do not leak into the prompt.
func presentError(err error) string {
	if err == nil {
		return "unknown error"
	}

	var rl *fetcher.RateLimitedError
	if errors.As(err, &rl) {
		return fmt.Sprintf("%s%s", statusMessage(rl.Status, rl.Body), rateSuffix(rl))
	}

	var up *fetcher.UpstreamError
	if errors.As(err, &up) {
		return statusMessage(up.Status, up.Body)
	}

	switch {
	case errors.Is(err, context.Canceled):
		return "request canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	}

	// Transport failures carry the full request URL; keep only the cause.
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Err != nil {
		return strings.TrimSpace(uerr.Err.Error())
	}
	return strings.TrimSpace(err.Error())
}

func statusMessage(status int, body string) string {
	line := fmt.Sprintf("%d", status)
	if text := http.StatusText(status); text != "" {
		line = fmt.Sprintf("%d %s", status, text)
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return line
	}
	return fmt.Sprintf("%s: %s", line, body)
}

func rateSuffix(rl *fetcher.RateLimitedError) string {
	if rl.Reset.IsZero() {
		return fmt.Sprintf(" (rate limit remaining: %d)", rl.Remaining)
	}
	return fmt.Sprintf(" (rate limit remaining: %d, resets at %s)", rl.Remaining, rl.Reset.UTC().Format(time.RFC3339))
}
