package cli

import (
	"context"

	"github.com/spf13/cobra"

	"gitpilot.dev/gitpilot/internal/actions"
	"gitpilot.dev/gitpilot/internal/cli/helpers"
	"gitpilot.dev/gitpilot/internal/history"
	"gitpilot.dev/gitpilot/internal/runtime"
)

// newHistoryCmd creates the history command
func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent generations and how often fallbacks were used",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx context.Context, rt *runtime.Context) error {
				return actions.HistoryAction(ctx, rt, limit)
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", history.DefaultLimit, "Number of entries to show")

	return cmd
}
