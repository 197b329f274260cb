// Package cli defines the gitpilot command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gitpilot",
		Short: "Draft commit messages, pull requests and branch names with GitHub Copilot",
		Long: `gitpilot drafts commit messages, pull request descriptions and branch names
with the GitHub Copilot CLI.

When copilot is missing, out of quota or returns something unusable, gitpilot
falls back to a draft built from your changes, so every command still works.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newCommitCmd())
	rootCmd.AddCommand(newPRCmd())
	rootCmd.AddCommand(newBranchCmd())
	rootCmd.AddCommand(newModelsCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newMCPCmd(version))

	return rootCmd
}
