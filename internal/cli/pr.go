package cli

import (
	"context"

	"github.com/spf13/cobra"

	"gitpilot.dev/gitpilot/internal/actions"
	"gitpilot.dev/gitpilot/internal/cli/helpers"
	"gitpilot.dev/gitpilot/internal/runtime"
)

// newPRCmd creates the pr command
func newPRCmd() *cobra.Command {
	var opts actions.PROptions

	cmd := &cobra.Command{
		Use:   "pr",
		Short: "Open a pull request with a generated title and description",
		Long: `Draft a pull request from the commits between the base branch and the current
branch, review it, push the branch and create the pull request on GitHub.

Link an issue with --issue to include its title and body in the draft and a
closing reference in the description.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx context.Context, rt *runtime.Context) error {
				return actions.PRAction(ctx, rt, opts)
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Base, "base", "b", "", "Branch to merge into (default: the repository's default branch)")
	cmd.Flags().IntVarP(&opts.Issue, "issue", "i", 0, "Issue number to link")
	cmd.Flags().BoolVarP(&opts.Draft, "draft", "d", false, "Create the pull request as a draft")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Print the draft without pushing or creating a pull request")
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "Create the pull request without confirmation")
	cmd.Flags().BoolVarP(&opts.Web, "web", "w", false, "Open the created pull request in the browser")

	return cmd
}
