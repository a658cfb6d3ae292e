package github

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"contextmcp/internal/fetcher"

	"github.com/google/go-github/v81/github"
)

// classifyError maps a go-github failure onto the upstream error taxonomy.
// Exhausted quota (primary or secondary limit) yields a
// *fetcher.RateLimitedError; other HTTP failures a *fetcher.UpstreamError.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	var rle *github.RateLimitError
	if errors.As(err, &rle) {
		return &fetcher.RateLimitedError{
			UpstreamError: fetcher.UpstreamError{Status: statusOf(rle.Response, http.StatusForbidden), Body: strings.TrimSpace(rle.Message)},
			Remaining:     rle.Rate.Remaining,
			Reset:         rle.Rate.Reset.Time,
		}
	}

	var abuse *github.AbuseRateLimitError
	if errors.As(err, &abuse) {
		reset := time.Time{}
		if abuse.RetryAfter != nil {
			reset = time.Now().Add(*abuse.RetryAfter)
		}
		return &fetcher.RateLimitedError{
			UpstreamError: fetcher.UpstreamError{Status: statusOf(abuse.Response, http.StatusForbidden), Body: strings.TrimSpace(abuse.Message)},
			Remaining:     0,
			Reset:         reset,
		}
	}

	var er *github.ErrorResponse
	if errors.As(err, &er) {
		up := fetcher.UpstreamError{Status: statusOf(er.Response, 0), Body: errorBody(er)}
		if up.Status == http.StatusForbidden || up.Status == http.StatusTooManyRequests {
			if info, ok := rateFromError(er); ok && info.Remaining == 0 {
				return &fetcher.RateLimitedError{UpstreamError: up, Remaining: info.Remaining, Reset: info.Reset}
			}
		}
		return &up
	}

	return err
}

// describeError renders a repository fetch failure for FileFetchResult.Error:
// status, body text and, when the response carried them, remaining quota and
// reset time.
func describeError(err error) string {
	classified := classifyError(err)

	var rl *fetcher.RateLimitedError
	if errors.As(classified, &rl) {
		return fmt.Sprintf("GitHub API error (%s): %s%s", statusLine(rl.Status), rl.Body, rateSuffix(rl.Remaining, rl.Reset))
	}

	var up *fetcher.UpstreamError
	if errors.As(classified, &up) {
		msg := fmt.Sprintf("GitHub API error (%s): %s", statusLine(up.Status), up.Body)
		var er *github.ErrorResponse
		if errors.As(err, &er) {
			if info, ok := rateFromError(er); ok {
				msg += rateSuffix(info.Remaining, info.Reset)
			}
		}
		return msg
	}

	return scrubRequestFromError(classified.Error())
}

func rateFromError(er *github.ErrorResponse) (fetcher.RateInfo, bool) {
	if er == nil || er.Response == nil {
		return fetcher.RateInfo{}, false
	}
	info, ok := fetcher.ParseRateHeaders(er.Response.Header)
	if !ok || info.Remaining < 0 {
		return fetcher.RateInfo{}, false
	}
	return info, true
}

func rateSuffix(remaining int, reset time.Time) string {
	if reset.IsZero() {
		return fmt.Sprintf(" (rate limit remaining: %d)", remaining)
	}
	return fmt.Sprintf(" (rate limit remaining: %d, resets at %s)", remaining, reset.UTC().Format(time.RFC3339))
}

// errorBody reconstructs the response body text go-github consumed while
// decoding the error.
func errorBody(er *github.ErrorResponse) string {
	parts := []string{strings.TrimSpace(er.Message)}
	for _, e := range er.Errors {
		if m := strings.TrimSpace(e.Message); m != "" {
			parts = append(parts, m)
		} else if e.Code != "" {
			parts = append(parts, fmt.Sprintf("%s %s %s", e.Resource, e.Field, e.Code))
		}
	}
	body := strings.TrimSpace(strings.Join(parts, "; "))
	body = strings.Trim(body, "; ")
	if body == "" && er.Response != nil {
		body = http.StatusText(er.Response.StatusCode)
	}
	return body
}

func statusOf(resp *http.Response, fallback int) int {
	if resp == nil {
		return fallback
	}
	return resp.StatusCode
}

func statusLine(status int) string {
	if text := http.StatusText(status); text != "" {
		return fmt.Sprintf("%d %s", status, text)
	}
	return fmt.Sprintf("%d", status)
}

// scrubRequestFromError drops the leading "GET https://...: " that go-github
// puts in transport errors so messages do not leak full request URLs.
func scrubRequestFromError(s string) string {
	s = strings.TrimSpace(s)
	methods := []string{"GET ", "POST ", "PUT ", "PATCH ", "DELETE "}
	for _, m := range methods {
		if strings.HasPrefix(s, m) {
			if i := strings.Index(s, "://"); i >= 0 {
				if j := strings.Index(s[i:], ": "); j >= 0 {
					return strings.TrimSpace(s[i+j+2:])
				}
			}
			break
		}
	}
	return s
}
