package fetcher

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

// RateInfo is the rate-limit telemetry carried by one response.
type RateInfo struct {
	Remaining  int
	Reset      time.Time
	RetryAfter time.Duration
}

// ParseRateHeaders extracts X-RateLimit-Remaining, X-RateLimit-Reset and
// Retry-After. ok is false when none of them is present and valid.
func ParseRateHeaders(h http.Header) (info RateInfo, ok bool) {
	if h == nil {
		return RateInfo{}, false
	}
	info.Remaining = -1

	if remaining := h.Get("X-RateLimit-Remaining"); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil && val >= 0 {
			info.Remaining = val
			ok = true
		}
	}

	if reset := h.Get("X-RateLimit-Reset"); reset != "" {
		if val, err := strconv.ParseInt(reset, 10, 64); err == nil && val > 0 {
			info.Reset = time.Unix(val, 0)
			ok = true
		}
	}

	if retryAfter := h.Get("Retry-After"); retryAfter != "" {
		if seconds, err := strconv.Atoi(retryAfter); err == nil && seconds > 0 {
			info.RetryAfter = time.Duration(seconds) * time.Second
			ok = true
		}
	}

	return info, ok
}

// RateTracker remembers the most recent rate-limit telemetry observed across
// requests. It is diagnostic only: it never delays or rejects a request.
type RateTracker struct {
	mu       sync.Mutex
	last     RateInfo
	observed bool
}

func NewRateTracker() *RateTracker {
	return &RateTracker{last: RateInfo{Remaining: -1}}
}

func (t *RateTracker) UpdateFromResponse(resp *http.Response) {
	if t == nil || resp == nil {
		return
	}
	info, ok := ParseRateHeaders(resp.Header)
	if !ok {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if info.Remaining >= 0 {
		t.last.Remaining = info.Remaining
	}
	if !info.Reset.IsZero() {
		t.last.Reset = info.Reset
	}
	t.last.RetryAfter = info.RetryAfter
	t.observed = true
}

// Snapshot returns the last observed telemetry and whether any was seen.
func (t *RateTracker) Snapshot() (RateInfo, bool) {
	if t == nil {
		return RateInfo{Remaining: -1}, false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last, t.observed
}
