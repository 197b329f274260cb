package actions

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gitpilot.dev/gitpilot/internal/ai"
	"gitpilot.dev/gitpilot/internal/history"
	"gitpilot.dev/gitpilot/internal/runtime"
	"gitpilot.dev/gitpilot/internal/tui"
)

const historyTimeLayout = "2006-01-02 15:04"

// HistoryAction prints recent generation runs and totals
func HistoryAction(ctx context.Context, rt *runtime.Context, limit int) error {
	splog := rt.Splog
	if rt.History == nil {
		splog.Info("History is disabled. Enable it with: gitpilot config set history true")
		return nil
	}
	if limit <= 0 {
		limit = history.DefaultLimit
	}

	entries, err := rt.History.Recent(ctx, limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		splog.Info("No generations recorded yet.")
		return nil
	}

	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(formatEntry(e))
		sb.WriteString("\n")
	}
	splog.Page(sb.String())

	stats, err := rt.History.Stats(ctx)
	if err != nil {
		return err
	}
	splog.Newline()
	splog.Page(formatStats(stats) + "\n")
	return nil
}

func formatEntry(e history.Entry) string {
	source := tui.ColorGreen(string(e.Source))
	if e.Source == ai.SourceFallback {
		source = tui.ColorYellow(string(e.Source))
	}

	line := fmt.Sprintf("%s  %-6s  %-8s  %s",
		tui.ColorDim(e.CreatedAt.Local().Format(historyTimeLayout)), e.Kind, source, e.Model)
	if e.Retried {
		line += " (retried)"
	}
	if e.Reason != "" {
		line += "  " + tui.ColorDim(e.Reason)
	}
	return line
}

func formatStats(s history.Stats) string {
	line := fmt.Sprintf("%d runs: %d generated, %d fallback, %d retried", s.Total, s.AI, s.Fallback, s.Retried)
	if len(s.ByFailure) == 0 {
		return line
	}

	kinds := make([]string, 0, len(s.ByFailure))
	for kind := range s.ByFailure {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	parts := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		parts = append(parts, fmt.Sprintf("%s %d", kind, s.ByFailure[kind]))
	}
	return line + "\nFailures: " + strings.Join(parts, ", ")
}
