package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"contextmcp/internal/fetcher"
	"contextmcp/internal/upstream"

	"github.com/google/go-github/v81/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// Client is the repository content provider client. The bearer token is fixed
// at construction and shared read-only by every concurrent call.
type Client struct {
	Client        *github.Client
	HTTP          *http.Client
	rate          *fetcher.RateTracker
	logger        *zap.Logger
	authenticated bool
}

type options struct {
	verbose bool
	logger  *zap.Logger
	baseURL string
}

type Option func(*options)

// WithVerbose logs every GitHub API request and response at debug level.
func WithVerbose(enabled bool) Option {
	return func(o *options) {
		o.verbose = enabled
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithBaseURL points the client at a different API root (GitHub Enterprise,
// tests). Empty keeps https://api.github.com/.
func WithBaseURL(raw string) Option {
	return func(o *options) {
		o.baseURL = raw
	}
}

func NewClient(ctx context.Context, token string, opts ...Option) (*Client, error) {
	if ctx == nil {
		return nil, fmt.Errorf("github client: ctx is nil")
	}

	o := &options{}
	for _, apply := range opts {
		if apply != nil {
			apply(o)
		}
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	transport := http.DefaultTransport
	if o.verbose {
		transport = upstream.NewLoggingTransport(transport, o.logger, "github")
	}
	token = strings.TrimSpace(token)
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		transport = &oauth2.Transport{Source: ts, Base: transport}
	} else {
		o.logger.Warn("GITHUB_TOKEN not set; GitHub API calls are unauthenticated and subject to a much lower rate limit")
	}
	// Always provide an http.Client so verbose logging works even without a token.
	tc := &http.Client{Transport: transport}

	gc := github.NewClient(tc)
	if base := strings.TrimSpace(o.baseURL); base != "" {
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("github client: invalid base URL %q: %w", o.baseURL, err)
		}
		gc.BaseURL = u
		gc.UploadURL = u
	}

	return &Client{
		Client:        gc,
		HTTP:          tc,
		rate:          fetcher.NewRateTracker(),
		logger:        o.logger,
		authenticated: token != "",
	}, nil
}

// Authenticated reports whether requests carry a bearer token.
func (c *Client) Authenticated() bool {
	return c.authenticated
}

// Rate returns the last rate-limit telemetry seen on any response.
func (c *Client) Rate() (fetcher.RateInfo, bool) {
	return c.rate.Snapshot()
}

func (c *Client) observe(resp *github.Response) {
	if resp == nil {
		return
	}
	c.rate.UpdateFromResponse(resp.Response)
}
