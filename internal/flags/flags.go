package flags

// Package flags defines canonical CLI flag names shared by the CLI and the
// config layer, which needs them to tell flags that were set explicitly from
// values that may be filled from the environment.
// IMPORTANT: These are flag *names* without leading dashes.
// Example usage:
//
//	cmd.Flags().StringVar(&cfg.Upstream.APIURL, flags.FlagAPIURL, "", "...")
//	arg := "--" + flags.FlagAPIURL
const (
	// Upstreams
	FlagAPIURL       = "api-url"
	FlagLogURL       = "log-api-url"
	FlagSelectionURL = "selection-api-url"

	// GitHub
	FlagGitHubToken  = "github-token"
	FlagGitHubAPIURL = "github-api-url"

	// Server
	FlagHTTP = "http"

	// Runtime
	FlagLogLevel = "log-level"
	FlagVerbose  = "verbose"

	// upload
	FlagURIGet  = "uri-get"
	FlagURIPost = "uri-post"
)
