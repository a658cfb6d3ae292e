package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"contextmcp/internal/flags"

	"github.com/spf13/cobra"
)

var (
	uploadURIGet  string
	uploadURIPost string
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Render a prompt to stdout without an MCP client",
	Long: `Render the same prompt text the MCP tools return, for scripting and
debugging. Failures are described in the output text, as they are for MCP
clients; the exit code is 0 unless the command could not start.

Examples:
  contextmcp prompt latest
  contextmcp prompt log 7
  contextmcp prompt logs 3 1 2
  contextmcp prompt selection 3f2b8a4e-1c2d-4e5f-8a9b-0c1d2e3f4a5b
  contextmcp prompt add-repo https://github.com/acme/widgets
  contextmcp prompt upload ./logs
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var promptLatestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Render the most recently stored log",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)
		eng, err := buildEngine(ctx, cfg, logger, false)
		if err != nil {
			return err
		}
		return writePrompt(cmd.OutOrStdout(), eng.LatestLog(ctx))
	},
}

var promptLogCmd = &cobra.Command{
	Use:   "log <id>",
	Short: "Render one log by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseLogIDs(args)
		if err != nil {
			return err
		}
		ctx := commandContext(cmd)
		eng, err := buildEngine(ctx, cfg, logger, false)
		if err != nil {
			return err
		}
		return writePrompt(cmd.OutOrStdout(), eng.LogByID(ctx, ids[0]))
	},
}

var promptLogsCmd = &cobra.Command{
	Use:   "logs <id>...",
	Short: "Render several logs, in the order given",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseLogIDs(args)
		if err != nil {
			return err
		}
		ctx := commandContext(cmd)
		eng, err := buildEngine(ctx, cfg, logger, false)
		if err != nil {
			return err
		}
		return writePrompt(cmd.OutOrStdout(), eng.MultipleLogs(ctx, ids))
	},
}

var promptSelectionCmd = &cobra.Command{
	Use:   "selection <uuid>",
	Short: "Render the selected files of a saved GitHub selection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)
		eng, err := buildEngine(ctx, cfg, logger, true)
		if err != nil {
			return err
		}
		return writePrompt(cmd.OutOrStdout(), eng.GithubSelection(ctx, args[0]))
	},
}

var promptTreeCmd = &cobra.Command{
	Use:   "tree <repo-url> [branch]",
	Short: "List the files of a GitHub repository",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		branch := ""
		if len(args) == 2 {
			branch = args[1]
		}
		ctx := commandContext(cmd)
		eng, err := buildEngine(ctx, cfg, logger, true)
		if err != nil {
			return err
		}
		return writePrompt(cmd.OutOrStdout(), eng.RepoTree(ctx, args[0], branch))
	},
}

var promptAddRepoCmd = &cobra.Command{
	Use:   "add-repo <repo-url>",
	Short: "Save a GitHub repository as a selection and print its ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)
		eng, err := buildEngine(ctx, cfg, logger, false)
		if err != nil {
			return err
		}
		return writePrompt(cmd.OutOrStdout(), eng.AddRepository(ctx, args[0]))
	},
}

var promptUploadCmd = &cobra.Command{
	Use:   "upload <folder>",
	Short: "Upload a folder's .txt files and render every stored log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)
		eng, err := buildEngine(ctx, cfg, logger, false)
		if err != nil {
			return err
		}
		return writePrompt(cmd.OutOrStdout(), eng.UploadFolder(ctx, args[0], uploadURIGet, uploadURIPost))
	},
}

func parseLogIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, raw := range args {
		id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid log id %q: must be an integer", raw)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func writePrompt(w io.Writer, text string) error {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, err := io.WriteString(w, text)
	return err
}

func init() {
	rootCmd.AddCommand(promptCmd)
	promptCmd.AddCommand(promptLatestCmd, promptLogCmd, promptLogsCmd, promptSelectionCmd, promptTreeCmd, promptAddRepoCmd, promptUploadCmd)

	promptUploadCmd.Flags().StringVar(&uploadURIGet, flags.FlagURIGet, "", "URL to read logs back from (default: the Log Store base)")
	promptUploadCmd.Flags().StringVar(&uploadURIPost, flags.FlagURIPost, "", "URL to upload logs to (default: <log-api-url>/upload-json-logs/)")
}
