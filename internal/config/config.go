package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"strings"

	"contextmcp/internal/flags"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// DefaultAPIURL is the backend root used when API_URL is unset.
const DefaultAPIURL = "http://localhost:8001"

type Config struct {
	// MAINTAINER NOTE: If you add/change/remove config fields, keep these in
	// sync:
	// - CLI flags in internal/cli/root.go
	// - the env binding table in envBindings
	Upstream Upstream
	GitHub   GitHub
	Server   Server
	Runtime  Runtime
}

type Upstream struct {
	// APIURL is the backend root (API_URL, see --api-url). The store URLs
	// below default to paths under it.
	APIURL string

	// LogURL is the Log Store base (LOG_API_URL, see --log-api-url).
	// Default: $API_URL/api/logs.
	LogURL string

	// SelectionURL is the Selection Store base (SELECTION_API_URL, see
	// --selection-api-url). It may point at a proxy layer.
	// Default: $API_URL/api/github.
	SelectionURL string
}

type GitHub struct {
	// Token is an explicit bearer token (see --github-token). When empty the
	// token is resolved from GITHUB_TOKEN, GH_TOKEN, then the gh CLI.
	Token string

	// APIURL overrides the REST API root (GITHUB_API_URL, see
	// --github-api-url) for GitHub Enterprise.
	APIURL string
}

type Server struct {
	// HTTPAddr serves MCP over streamable HTTP on this address instead of
	// stdio (see --http).
	HTTPAddr string
}

type Runtime struct {
	// LogLevel is the zap level name (CONTEXTMCP_LOG_LEVEL, see --log-level).
	LogLevel string

	// Verbose logs every upstream request and forces debug level.
	Verbose bool
}

func New() *Config {
	return &Config{
		Upstream: Upstream{
			APIURL: DefaultAPIURL,
		},
		Runtime: Runtime{
			LogLevel: "info",
		},
	}
}

type envBinding struct {
	env    string
	flag   string
	target func(c *Config) *string
}

var envBindings = []envBinding{
	{"API_URL", flags.FlagAPIURL, func(c *Config) *string { return &c.Upstream.APIURL }},
	{"LOG_API_URL", flags.FlagLogURL, func(c *Config) *string { return &c.Upstream.LogURL }},
	{"SELECTION_API_URL", flags.FlagSelectionURL, func(c *Config) *string { return &c.Upstream.SelectionURL }},
	{"GITHUB_API_URL", flags.FlagGitHubAPIURL, func(c *Config) *string { return &c.GitHub.APIURL }},
	{"CONTEXTMCP_LOG_LEVEL", flags.FlagLogLevel, func(c *Config) *string { return &c.Runtime.LogLevel }},
}

// LoadEnv loads the given .env files (".env" when none are named; missing
// files are ignored) into the process environment, then copies recognized
// variables into c. Fields whose flag was set explicitly (explicit returns
// true for its name) keep the flag value.
//
// godotenv never overrides variables that are already set, so the real
// environment wins over .env files.
func (c *Config) LoadEnv(explicit func(flag string) bool, files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}

	for _, b := range envBindings {
		if explicit != nil && explicit(b.flag) {
			continue
		}
		if v := strings.TrimSpace(os.Getenv(b.env)); v != "" {
			*b.target(c) = v
		}
	}
	return nil
}

func (c *Config) Validate() error {
	api, err := normalizeBaseURL(c.Upstream.APIURL)
	if err != nil {
		return fmt.Errorf("invalid --%s value: %w", flags.FlagAPIURL, err)
	}
	if api == "" {
		return fmt.Errorf("--%s must not be empty", flags.FlagAPIURL)
	}
	c.Upstream.APIURL = api

	if c.Upstream.LogURL == "" {
		c.Upstream.LogURL = api + "/api/logs"
	}
	if c.Upstream.LogURL, err = normalizeBaseURL(c.Upstream.LogURL); err != nil {
		return fmt.Errorf("invalid --%s value: %w", flags.FlagLogURL, err)
	}

	if c.Upstream.SelectionURL == "" {
		c.Upstream.SelectionURL = api + "/api/github"
	}
	if c.Upstream.SelectionURL, err = normalizeBaseURL(c.Upstream.SelectionURL); err != nil {
		return fmt.Errorf("invalid --%s value: %w", flags.FlagSelectionURL, err)
	}

	if c.GitHub.APIURL != "" {
		if c.GitHub.APIURL, err = normalizeBaseURL(c.GitHub.APIURL); err != nil {
			return fmt.Errorf("invalid --%s value: %w", flags.FlagGitHubAPIURL, err)
		}
	}
	c.GitHub.Token = strings.TrimSpace(c.GitHub.Token)

	c.Server.HTTPAddr = strings.TrimSpace(c.Server.HTTPAddr)
	if c.Server.HTTPAddr != "" {
		if _, _, err := net.SplitHostPort(c.Server.HTTPAddr); err != nil {
			return fmt.Errorf("invalid --%s address %q: %w", flags.FlagHTTP, c.Server.HTTPAddr, err)
		}
	}

	c.Runtime.LogLevel = strings.ToLower(strings.TrimSpace(c.Runtime.LogLevel))
	if c.Runtime.LogLevel == "" {
		c.Runtime.LogLevel = "info"
	}
	if _, err := zapcore.ParseLevel(c.Runtime.LogLevel); err != nil {
		return fmt.Errorf("unsupported --%s: %s (must be one of: debug, info, warn, error)", flags.FlagLogLevel, c.Runtime.LogLevel)
	}

	return nil
}

// normalizeBaseURL trims whitespace and trailing slashes and requires an
// absolute http(s) URL. Empty input stays empty.
func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	if raw == "" {
		return "", nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%q: missing host", raw)
	}
	return raw, nil
}
