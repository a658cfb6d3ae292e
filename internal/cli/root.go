package cli

import (
	"fmt"
	"os"

	"contextmcp/internal/config"
	"contextmcp/internal/flags"
	"contextmcp/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var (
	cfg    = config.New()
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "contextmcp",
	Short: "Aggregate stored logs and GitHub files into LLM-ready prompts",
	Long: `contextmcp assembles uploaded log files and selected GitHub repository files
into one bounded, structured prompt and serves it to MCP clients.

Examples:
	# Serve the MCP tools over stdio (for an editor or agent)
	contextmcp serve

	# Render the latest log prompt to stdout
	contextmcp prompt latest

	# List the MCP tools
	contextmcp tools list

	# Print build info
	contextmcp version

Environment:
	API_URL               backend root (default: http://localhost:8001)
	LOG_API_URL           Log Store base (default: $API_URL/api/logs)
	SELECTION_API_URL     Selection Store base (default: $API_URL/api/github)
	GITHUB_TOKEN          GitHub bearer token (falls back to GH_TOKEN, then gh auth token)
	GITHUB_API_URL        GitHub REST API root (GitHub Enterprise)
	CONTEXTMCP_LOG_LEVEL  debug|info|warn|error (default: info)

	A .env file in the working directory is loaded first. Flags win over the
	environment.

Output:
	Prompts are written to stdout. Logs are JSON lines on stderr.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.LoadEnv(flagChanged(cmd)); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		l, _, err := logging.New(cfg.Runtime.LogLevel, cfg.Runtime.Verbose)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// flagChanged reports whether a flag was set on the command line, looking at
// local and inherited flags.
func flagChanged(cmd *cobra.Command) func(name string) bool {
	return func(name string) bool {
		f := cmd.Flag(name)
		return f != nil && f.Changed
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.Upstream.APIURL, flags.FlagAPIURL, cfg.Upstream.APIURL, "Backend root URL (env: API_URL)")
	pf.StringVar(&cfg.Upstream.LogURL, flags.FlagLogURL, "", "Log Store base URL (env: LOG_API_URL; default: <api-url>/api/logs)")
	pf.StringVar(&cfg.Upstream.SelectionURL, flags.FlagSelectionURL, "", "Selection Store base URL (env: SELECTION_API_URL; default: <api-url>/api/github)")
	pf.StringVar(&cfg.GitHub.Token, flags.FlagGitHubToken, "", "GitHub token (default: GITHUB_TOKEN, GH_TOKEN, then gh auth token)")
	pf.StringVar(&cfg.GitHub.APIURL, flags.FlagGitHubAPIURL, "", "GitHub REST API root for GitHub Enterprise (env: GITHUB_API_URL)")
	pf.StringVar(&cfg.Runtime.LogLevel, flags.FlagLogLevel, cfg.Runtime.LogLevel, "Log level: debug|info|warn|error (env: CONTEXTMCP_LOG_LEVEL)")
	pf.BoolVar(&cfg.Runtime.Verbose, flags.FlagVerbose, false, "Enable verbose logging (logs every upstream request at debug level)")
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
