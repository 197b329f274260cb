package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"gitpilot.dev/gitpilot/internal/actions"
	"gitpilot.dev/gitpilot/internal/cli/helpers"
	"gitpilot.dev/gitpilot/internal/runtime"
	"gitpilot.dev/gitpilot/internal/utils"
)

var errNoStdin = errors.New("--stdin given but nothing was piped in")

// newCommitCmd creates the commit command
func newCommitCmd() *cobra.Command {
	var (
		all   bool
		push  bool
		yes   bool
		stdin bool
	)

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Commit staged changes with a generated message",
		Long: `Generate commit message suggestions for the staged changes, pick one and commit.

With --stdin the diff is read from standard input and the suggestions are
printed instead, e.g. git diff main | gitpilot commit --stdin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx context.Context, rt *runtime.Context) error {
				opts := actions.CommitOptions{
					All:  all,
					Push: push,
					Yes:  yes,
				}
				if stdin {
					diff, err := utils.ReadFromStdin()
					if err != nil {
						return err
					}
					if diff == "" {
						return errNoStdin
					}
					opts.Diff = diff
				}
				return actions.CommitAction(ctx, rt, opts)
			})
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Stage all changes, including untracked files, before generating")
	cmd.Flags().BoolVar(&push, "push", false, "Push the current branch after committing")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Use the first suggestion without prompting")
	cmd.Flags().BoolVar(&stdin, "stdin", false, "Read a diff from standard input and print suggestions without committing")
	cmd.MarkFlagsMutuallyExclusive("stdin", "all")
	cmd.MarkFlagsMutuallyExclusive("stdin", "push")

	return cmd
}
