package upstream

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// loggingRoundTripper wraps an underlying transport and emits one debug line
// per request and response (including latency).
type loggingRoundTripper struct {
	base   http.RoundTripper
	logger *zap.Logger
	name   string
}

// NewLoggingTransport wraps base so every call is logged under name. A nil
// base means http.DefaultTransport.
func NewLoggingTransport(base http.RoundTripper, logger *zap.Logger, name string) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	if logger == nil {
		return base
	}
	return &loggingRoundTripper{base: base, logger: logger, name: name}
}

func (t *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	t.logger.Debug("upstream request",
		zap.String("upstream", t.name),
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
	)
	resp, err := t.base.RoundTrip(req)
	dur := time.Since(start).Truncate(time.Millisecond)
	if err != nil {
		t.logger.Debug("upstream error",
			zap.String("upstream", t.name),
			zap.Duration("elapsed", dur),
			zap.Error(err),
		)
		return resp, err
	}
	t.logger.Debug("upstream response",
		zap.String("upstream", t.name),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", dur),
	)
	return resp, err
}
