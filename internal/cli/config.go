package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gitpilot.dev/gitpilot/internal/actions"
	"gitpilot.dev/gitpilot/internal/cli/helpers"
	"gitpilot.dev/gitpilot/internal/config"
	"gitpilot.dev/gitpilot/internal/runtime"
)

// newConfigCmd creates the config command
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read and write gitpilot settings",
		Long: fmt.Sprintf(`Read and write settings in the user config file.

Keys: %s`, strings.Join(config.Keys(), ", ")),
	}

	cmd.AddCommand(newConfigGetCmd())
	cmd.AddCommand(newConfigSetCmd())

	return cmd
}

func completeConfigKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return config.Keys(), cobra.ShellCompDirectiveNoFileComp
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "get [key]",
		Short:             "Print a setting, or all settings",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeConfigKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(_ context.Context, rt *runtime.Context) error {
				key := ""
				if len(args) > 0 {
					key = args[0]
				}
				return actions.ConfigGetAction(rt, key)
			})
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "set <key> [value]",
		Short:             "Change a setting; omit the value to reset it",
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: completeConfigKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(_ context.Context, rt *runtime.Context) error {
				value := ""
				if len(args) > 1 {
					value = args[1]
				}
				return actions.ConfigSetAction(rt, args[0], value)
			})
		},
	}
}
