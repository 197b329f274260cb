// Package helpers provides shared plumbing for CLI commands.
package helpers

import (
	"context"

	"github.com/spf13/cobra"

	"gitpilot.dev/gitpilot/internal/runtime"
)

// Run provides a runtime context to a command's execution function. A
// context injected with runtime.WithContext is used as is; otherwise one is
// loaded for the working directory and closed afterwards.
func Run(cmd *cobra.Command, fn func(ctx context.Context, rt *runtime.Context) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if rt, ok := runtime.FromContext(ctx); ok {
		return fn(ctx, rt)
	}

	rt, err := runtime.Load()
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()
	return fn(ctx, rt)
}
