package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gitpilot.dev/gitpilot/internal/ai"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	draftStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// ColorRed colors text red
func ColorRed(text string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(text)
}

// ColorGreen colors text green
func ColorGreen(text string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Render(text)
}

// ColorYellow colors text yellow
func ColorYellow(text string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Render(text)
}

// ColorCyan colors text cyan
func ColorCyan(text string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Render(text)
}

// ColorDim makes text dim/gray
func ColorDim(text string) string {
	return dimStyle.Render(text)
}

// Heading renders a section heading
func Heading(text string) string {
	return headingStyle.Render(text)
}

// RenderDraft frames a PR draft for preview
func RenderDraft(draft ai.PRDraft) string {
	return draftStyle.Render(Heading(draft.Title) + "\n\n" + draft.Body)
}

// ColorTier colors a model tier label
func ColorTier(tier ai.Tier) string {
	switch tier {
	case ai.TierFree:
		return ColorGreen(string(tier))
	case ai.TierExpensive:
		return ColorRed(string(tier))
	case ai.TierNew:
		return ColorYellow(string(tier))
	default:
		return ColorCyan(string(tier))
	}
}

// RenderModels renders the model catalog as an aligned table
func RenderModels(models []ai.ModelDescriptor, current string) string {
	idWidth := 0
	for _, m := range models {
		idWidth = max(idWidth, lipgloss.Width(m.ID))
	}

	var sb strings.Builder
	for _, m := range models {
		marker := "  "
		if m.ID == current {
			marker = "* "
		}
		id := lipgloss.NewStyle().Width(idWidth).Render(m.ID)
		tier := lipgloss.NewStyle().Width(10).Render(ColorTier(m.Tier))
		fmt.Fprintf(&sb, "%s%s  %s  %s", marker, id, tier, ColorDim(m.CostLabel()))
		if m.Description != "" {
			fmt.Fprintf(&sb, "  %s", m.Description)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
