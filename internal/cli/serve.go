package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"contextmcp/internal/flags"
	"contextmcp/internal/mcp"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the prompt tools over MCP",
	Long: `Serve the prompt tools to MCP clients.

By default the server speaks MCP over stdio, so stdout carries protocol
messages only. With --http it serves the streamable HTTP transport instead.

Examples:
  # stdio (configure your editor to launch this command)
  contextmcp serve

  # streamable HTTP
  contextmcp serve --http :8080
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()

		eng, err := buildEngine(ctx, cfg, logger, true)
		if err != nil {
			return err
		}
		server := mcp.NewServer(eng, buildVersion, logger)

		logger.Info("starting MCP server",
			zap.String("log_api", cfg.Upstream.LogURL),
			zap.String("selection_api", cfg.Upstream.SelectionURL),
		)
		if err := mcp.Serve(ctx, server, cfg.Server.HTTPAddr, logger); err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&cfg.Server.HTTPAddr, flags.FlagHTTP, "", "Serve streamable HTTP on this address (e.g. :8080) instead of stdio")
}

// commandContext returns cmd's context, or Background when the command runs
// outside Execute (tests).
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
