package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"gitpilot.dev/gitpilot/internal/cli"
	"gitpilot.dev/gitpilot/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cli.NewRootCmd(version, commit, date)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		splog, _ := tui.NewSplogWithConfig(os.Stderr, "")
		splog.Error("%v", err)
		stop()
		os.Exit(1)
	}
}
