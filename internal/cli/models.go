package cli

import (
	"context"

	"github.com/spf13/cobra"

	"gitpilot.dev/gitpilot/internal/actions"
	"gitpilot.dev/gitpilot/internal/cli/helpers"
	"gitpilot.dev/gitpilot/internal/runtime"
)

// newModelsCmd creates the models command
func newModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the models copilot accepts with their cost tier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx context.Context, rt *runtime.Context) error {
				return actions.ModelsAction(ctx, rt)
			})
		},
	}
}
