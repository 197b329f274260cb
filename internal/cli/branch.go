package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gitpilot.dev/gitpilot/internal/actions"
	"gitpilot.dev/gitpilot/internal/ai"
	"gitpilot.dev/gitpilot/internal/cli/helpers"
	"gitpilot.dev/gitpilot/internal/runtime"
)

// newBranchCmd creates the branch command
func newBranchCmd() *cobra.Command {
	var opts actions.BranchOptions

	cmd := &cobra.Command{
		Use:   "branch [description...]",
		Short: "Create a branch with a generated name",
		Long: fmt.Sprintf(`Suggest a branch name of the form type/[issue-]slug for the described work and
create it at HEAD.

With --issue and no description the issue title is used.
Types: %s`, strings.Join(ai.BranchTypes, ", ")),
		Example: `  gitpilot branch add login page
  gitpilot branch --type fix --issue 42 --checkout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Description = strings.Join(args, " ")
			return helpers.Run(cmd, func(ctx context.Context, rt *runtime.Context) error {
				return actions.BranchAction(ctx, rt, opts)
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Type, "type", "t", ai.DefaultBranchType, "Branch type prefix")
	cmd.Flags().IntVarP(&opts.Issue, "issue", "i", 0, "Issue number to include in the name")
	cmd.Flags().BoolVarP(&opts.Checkout, "checkout", "c", false, "Check out the new branch")
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "Use the suggested name without prompting")

	_ = cmd.RegisterFlagCompletionFunc("type", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return ai.BranchTypes, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}
