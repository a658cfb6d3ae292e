package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"contextmcp/internal/fetcher"

	"go.uber.org/zap"
)

// maxErrorBody bounds how much of a failed response body is kept for error
// messages.
const maxErrorBody = 4 << 10

// Client is a small JSON-over-HTTP client for the Log Store and Selection
// Store. It applies no timeout of its own: the caller's context is the only
// bound on a request.
type Client struct {
	base string
	http *http.Client
}

type options struct {
	verbose bool
	logger  *zap.Logger
	http    *http.Client
	name    string
}

type Option func(*options)

// WithVerbose logs every request and response at debug level.
func WithVerbose(enabled bool, logger *zap.Logger) Option {
	return func(o *options) {
		o.verbose = enabled
		o.logger = logger
	}
}

// WithHTTPClient overrides the underlying HTTP client (used by tests).
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.http = c
	}
}

// WithName labels log lines emitted by this client.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, fmt.Errorf("upstream client: base URL is empty")
	}

	o := &options{name: "upstream"}
	for _, apply := range opts {
		if apply != nil {
			apply(o)
		}
	}

	hc := o.http
	if hc == nil {
		transport := http.DefaultTransport
		if o.verbose {
			transport = NewLoggingTransport(transport, o.logger, o.name)
		}
		hc = &http.Client{Transport: transport}
	}

	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: hc,
	}, nil
}

// BaseURL returns the base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.base
}

// URL joins the base URL and a relative path. Absolute URLs are returned
// unchanged.
func (c *Client) URL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if path == "" {
		return c.base
	}
	return c.base + "/" + strings.TrimLeft(path, "/")
}

// GetJSON issues a GET and decodes a 2xx JSON body into out.
//
// 404 returns fetcher.ErrNotFound; any other non-2xx status returns a
// *fetcher.UpstreamError carrying the status and body text.
func (c *Client) GetJSON(ctx context.Context, path string, out any) (int, error) {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// SendJSON issues method with body encoded as JSON and decodes the response
// into out (when out is non-nil).
func (c *Client) SendJSON(ctx context.Context, method, path string, body, out any) (int, error) {
	return c.do(ctx, method, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) (int, error) {
	if ctx == nil {
		return 0, fmt.Errorf("%s %s: nil context", method, path)
	}

	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("encode request body: %w", err)
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.URL(path), rdr)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, fetcher.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		text := strings.TrimSpace(string(raw))
		if text == "" {
			text = http.StatusText(resp.StatusCode)
		}
		return resp.StatusCode, &fetcher.UpstreamError{Status: resp.StatusCode, Body: text}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode response from %s: %w", req.URL.Path, err)
	}
	return resp.StatusCode, nil
}
