package cli

import (
	"fmt"
	"io"
	"strings"

	"contextmcp/internal/mcp"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var toolsListQuiet bool

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Inspect the MCP tools",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var toolsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the MCP tools served by this build",
	Long: `List every MCP tool served by "contextmcp serve", sorted by name.

Output:
  A vertical list of tools:
    ----------------------------------------
    TOOL: {NAME}
    ----------------------------------------
    {DESCRIPTION}
    Inputs: {INPUTS}
`,
	Args: cobra.NoArgs,
	// Listing needs neither upstreams nor a logger.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, t := range mcp.Tools() {
			if toolsListQuiet {
				fmt.Fprintln(cmd.OutOrStdout(), t.Name)
				continue
			}
			printTool(cmd.OutOrStdout(), t)
		}
		return nil
	},
}

func printTool(w io.Writer, t mcp.ToolInfo) {
	bold := color.New(color.Bold)
	fmt.Fprintln(w, "----------------------------------------")
	bold.Fprintf(w, "TOOL: %s\n", t.Name)
	fmt.Fprintln(w, "----------------------------------------")
	fmt.Fprintln(w, t.Description)
	if len(t.Inputs) > 0 {
		fmt.Fprintf(w, "Inputs: %s\n", strings.Join(t.Inputs, ", "))
	} else {
		fmt.Fprintln(w, "Inputs: none")
	}
	fmt.Fprintln(w)
}

func init() {
	rootCmd.AddCommand(toolsCmd)
	toolsCmd.AddCommand(toolsListCmd)
	toolsListCmd.Flags().BoolVarP(&toolsListQuiet, "quiet", "q", false, "Only print tool names")
}
