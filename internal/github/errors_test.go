package github

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"contextmcp/internal/fetcher"

	"github.com/google/go-github/v81/github"
)

func responseWith(status int, headers map[string]string) *http.Response {
	h := http.Header{}
	for k, v := range headers {
		h.Set(k, v)
	}
	return &http.Response{StatusCode: status, Header: h, Request: &http.Request{
		Method: http.MethodGet,
		URL:    &url.URL{Scheme: "https", Host: "api.github.com", Path: "/repos/acme/widgets"},
	}}
}

func TestClassifyError(t *testing.T) {
	reset := time.Unix(1700000000, 0)

	t.Run("primary rate limit", func(t *testing.T) {
		err := classifyError(&github.RateLimitError{
			Rate:     github.Rate{Remaining: 0, Reset: github.Timestamp{Time: reset}},
			Response: responseWith(http.StatusForbidden, nil),
			Message:  "API rate limit exceeded",
		})
		var rl *fetcher.RateLimitedError
		if !errors.As(err, &rl) {
			t.Fatalf("want RateLimitedError, got %T", err)
		}
		if rl.Status != http.StatusForbidden || !rl.Reset.Equal(reset) {
			t.Fatalf("unexpected classification: %+v", rl)
		}
	})

	t.Run("secondary rate limit", func(t *testing.T) {
		retry := 30 * time.Second
		err := classifyError(&github.AbuseRateLimitError{
			Response:   responseWith(http.StatusForbidden, nil),
			Message:    "You have exceeded a secondary rate limit",
			RetryAfter: &retry,
		})
		var rl *fetcher.RateLimitedError
		if !errors.As(err, &rl) {
			t.Fatalf("want RateLimitedError, got %T", err)
		}
		if rl.Reset.IsZero() {
			t.Fatalf("expected reset derived from Retry-After")
		}
	})

	t.Run("403 with quota left is a plain upstream error", func(t *testing.T) {
		err := classifyError(&github.ErrorResponse{
			Response: responseWith(http.StatusForbidden, map[string]string{"X-RateLimit-Remaining": "42"}),
			Message:  "Resource not accessible by integration",
		})
		var rl *fetcher.RateLimitedError
		if errors.As(err, &rl) {
			t.Fatalf("did not expect RateLimitedError")
		}
		var up *fetcher.UpstreamError
		if !errors.As(err, &up) || up.Status != http.StatusForbidden {
			t.Fatalf("want UpstreamError 403, got %v", err)
		}
	})

	t.Run("429 with exhausted quota", func(t *testing.T) {
		err := classifyError(&github.ErrorResponse{
			Response: responseWith(http.StatusTooManyRequests, map[string]string{"X-RateLimit-Remaining": "0"}),
			Message:  "slow down",
		})
		var rl *fetcher.RateLimitedError
		if !errors.As(err, &rl) {
			t.Fatalf("want RateLimitedError, got %v", err)
		}
	})

	t.Run("non-github error passes through", func(t *testing.T) {
		base := errors.New("dial tcp: connection refused")
		if got := classifyError(base); got != base {
			t.Fatalf("got %v", got)
		}
	})
}

func TestDescribeError(t *testing.T) {
	t.Run("validation errors joined", func(t *testing.T) {
		msg := describeError(&github.ErrorResponse{
			Response: responseWith(http.StatusUnprocessableEntity, nil),
			Message:  "Validation Failed",
			Errors:   []github.Error{{Resource: "Tree", Field: "sha", Code: "invalid"}},
		})
		want := "GitHub API error (422 Unprocessable Entity): Validation Failed; Tree sha invalid"
		if msg != want {
			t.Fatalf("got %q, want %q", msg, want)
		}
	})

	t.Run("telemetry appended when present", func(t *testing.T) {
		msg := describeError(&github.ErrorResponse{
			Response: responseWith(http.StatusInternalServerError, map[string]string{"X-RateLimit-Remaining": "12"}),
			Message:  "boom",
		})
		if !strings.HasSuffix(msg, "(rate limit remaining: 12)") {
			t.Fatalf("got %q", msg)
		}
	})
}

func TestScrubRequestFromError(t *testing.T) {
	in := "GET https://api.github.com/repos/acme/widgets/contents/x: dial tcp: timeout"
	if got := scrubRequestFromError(in); got != "dial tcp: timeout" {
		t.Fatalf("got %q", got)
	}
	if got := scrubRequestFromError("plain"); got != "plain" {
		t.Fatalf("got %q", got)
	}
}
