package cli

import (
	"context"

	"github.com/spf13/cobra"

	"gitpilot.dev/gitpilot/internal/cli/helpers"
	"gitpilot.dev/gitpilot/internal/mcpserver"
	"gitpilot.dev/gitpilot/internal/runtime"
)

// serveMCP is replaced in tests
var serveMCP = mcpserver.Serve

// newMCPCmd creates the mcp command
func newMCPCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the drafting tools over MCP on stdio",
		Long: `Run a Model Context Protocol server on standard input and output exposing
generate_commit_messages, generate_pr_description and generate_branch_name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(_ context.Context, rt *runtime.Context) error {
				// stdout carries the protocol; logs still reach the log file
				rt.Splog.SetQuiet(true)
				return serveMCP(rt.Drafter, version)
			})
		},
	}
}
