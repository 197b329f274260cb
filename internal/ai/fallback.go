package ai

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"gitpilot.dev/gitpilot/internal/utils"
)

// Commit is a commit as seen by the PR generators
type Commit struct {
	Hash    string
	Message string
	Author  string
	Date    time.Time
}

// Subject returns the first line of the commit message
func (c Commit) Subject() string {
	return utils.Subject(c.Message)
}

// ShortHash returns the abbreviated hash
func (c Commit) ShortHash() string {
	if len(c.Hash) > 7 {
		return c.Hash[:7]
	}
	return c.Hash
}

// FallbackCommitMessages returns fixed suggestions parameterized by the
// number of added and removed lines in diff. File header lines (+++ and ---)
// are counted too.
func FallbackCommitMessages(diff string) []string {
	added, removed := countDiffLines(diff)
	return []string{
		fmt.Sprintf("feat: update files (+%d -%d)", added, removed),
		"fix: improve code quality",
		"chore: update documentation",
	}
}

func countDiffLines(diff string) (added, removed int) {
	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+"):
			added++
		case strings.HasPrefix(line, "-"):
			removed++
		}
	}
	return added, removed
}

// changeGroup collects commits sharing a conventional type
type changeGroup struct {
	heading  string
	singular string
	plural   string
	commits  []Commit
}

// commitTypeRegex captures the conventional type of a subject
var commitTypeRegex = regexp.MustCompile(`^(\w+)(?:\([^)]*\))?!?:`)

// FallbackPRDescription builds a Markdown description from commit subjects
// grouped by conventional type.
func FallbackPRDescription(commits []Commit, issueContext string) PRDraft {
	groups := []*changeGroup{
		{heading: "Features", singular: "feature", plural: "features"},
		{heading: "Bug Fixes", singular: "bug fix", plural: "bug fixes"},
		{heading: "Maintenance", singular: "maintenance change", plural: "maintenance changes"},
		{heading: "Other Changes", singular: "other change", plural: "other changes"},
	}
	for _, c := range commits {
		g := groups[3]
		if m := commitTypeRegex.FindStringSubmatch(c.Subject()); m != nil {
			switch strings.ToLower(m[1]) {
			case "feat":
				g = groups[0]
			case "fix":
				g = groups[1]
			case "chore":
				g = groups[2]
			}
		}
		g.commits = append(g.commits, c)
	}

	var sections []string
	sections = append(sections, "## Summary\n\n"+summarize(commits, groups))

	changes := []string{"## Changes"}
	for _, g := range groups {
		if len(g.commits) == 0 {
			continue
		}
		lines := []string{"### " + g.heading, ""}
		for _, c := range g.commits {
			lines = append(lines, changeLine(c))
		}
		changes = append(changes, strings.Join(lines, "\n"))
	}
	if len(changes) == 1 {
		changes = append(changes, "No commits found.")
	}
	sections = append(sections, strings.Join(changes, "\n\n"))

	if ctx := strings.TrimSpace(issueContext); ctx != "" {
		sections = append(sections, "## Related Issue\n\n"+ctx)
	}

	sections = append(sections, "## Testing\n\n- [ ] Existing tests pass\n- [ ] New behavior verified manually")

	title := "Update"
	if len(commits) > 0 {
		if s := commits[0].Subject(); s != "" {
			title = s
		}
	}
	return PRDraft{Title: title, Body: strings.Join(sections, "\n\n")}
}

func summarize(commits []Commit, groups []*changeGroup) string {
	switch len(commits) {
	case 0:
		return "This PR has no commits yet."
	case 1:
		return strings.TrimSpace(commits[0].Message)
	}

	var parts []string
	for _, g := range groups {
		switch n := len(g.commits); n {
		case 0:
		case 1:
			parts = append(parts, "1 "+g.singular)
		default:
			parts = append(parts, fmt.Sprintf("%d %s", n, g.plural))
		}
	}
	return fmt.Sprintf("This PR includes %d commits: %s.", len(commits), strings.Join(parts, ", "))
}

func changeLine(c Commit) string {
	text := utils.StripConventionalPrefix(c.Subject())
	if text == "" {
		text = c.Subject()
	}
	if h := c.ShortHash(); h != "" {
		return fmt.Sprintf("- %s (%s)", text, h)
	}
	return "- " + text
}

// branchPunctuationReplacer drops punctuation that would otherwise split words
var branchPunctuationReplacer = strings.NewReplacer("'", "", "’", "", "\"", "", "#", "", "`", "")

// FallbackBranchName derives a branch name from a free-text description
func FallbackBranchName(description, branchType, issueNumber string) string {
	return SanitizeBranchName(branchPunctuationReplacer.Replace(description), branchType, issueNumber)
}
