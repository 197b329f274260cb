package ai

import (
	"fmt"
	"strings"
)

const (
	// maxDiffSize is the maximum size of diff to include in prompt (in characters)
	// Larger diffs are cut to a head and tail excerpt
	maxDiffSize = 30000

	// maxIssueContextSize is the maximum size of issue text to include
	maxIssueContextSize = 4000
)

// BuildCommitMessagePrompt creates a prompt asking for three numbered
// commit message suggestions for diff.
func BuildCommitMessagePrompt(diff string) string {
	sections := []string{
		"Generate three alternative commit messages for the following staged git diff.",
		`## Requirements

- Follow Conventional Commits: <type>[optional scope]: <description>
- Use one of: feat, fix, docs, style, refactor, perf, test, chore, ci, build
- Keep each message on a single line, at most 72 characters
- Use imperative mood ("add feature", not "added feature")
- Order the suggestions from most to least fitting`,
		buildDiffSection(diff),
		`## Output Format

Return exactly three lines and nothing else, no markdown, no code blocks:
1. <first message>
2. <second message>
3. <third message>`,
	}
	return strings.Join(sections, "\n\n")
}

// BuildPRPrompt creates a prompt for a pull request title and body
func BuildPRPrompt(commits []Commit, issueContext string) string {
	sections := []string{
		"You are helping to write a pull request description. Use the following context to create a clear, reviewable PR description.",
	}

	if len(commits) > 0 {
		sections = append(sections, buildCommitSection(commits))
	}

	if issueContext = strings.TrimSpace(issueContext); issueContext != "" {
		sections = append(sections, buildIssueSection(issueContext))
	}

	sections = append(sections, buildPROutputFormatSection())
	return strings.Join(sections, "\n\n")
}

// BuildBranchNamePrompt creates a prompt for a branch name slug
func BuildBranchNamePrompt(description, branchType, issueNumber string) string {
	var lines []string
	lines = append(lines, "Suggest a git branch name for the following work.")
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("- **Type**: %s", normalizeBranchType(branchType)))
	if issueNumber != "" {
		lines = append(lines, fmt.Sprintf("- **Issue**: #%s", issueNumber))
	}
	lines = append(lines, fmt.Sprintf("- **Description**: %s", strings.TrimSpace(description)))
	lines = append(lines, "")
	lines = append(lines, `## Output Format

Return ONLY a short kebab-case slug of 2 to 5 words on a single line, using
lowercase letters, digits and hyphens. Do not include the type, the issue
number, quotes or any explanation.`)
	return strings.Join(lines, "\n")
}

// buildCommitSection formats commit messages
func buildCommitSection(commits []Commit) string {
	lines := make([]string, 0, len(commits)+2)
	lines = append(lines, "## Commit Messages")
	lines = append(lines, "")
	for i, c := range commits {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, strings.TrimSpace(c.Message)))
	}
	return strings.Join(lines, "\n")
}

// buildIssueSection formats the related issue, truncating if too large
func buildIssueSection(issueContext string) string {
	var lines []string
	lines = append(lines, "## Related Issue")
	lines = append(lines, "")
	if len(issueContext) > maxIssueContextSize {
		lines = append(lines, issueContext[:maxIssueContextSize])
		lines = append(lines, "")
		lines = append(lines, "... (truncated) ...")
	} else {
		lines = append(lines, issueContext)
	}
	return strings.Join(lines, "\n")
}

// buildDiffSection formats code diff, truncating if too large
func buildDiffSection(diff string) string {
	var lines []string
	lines = append(lines, "## Git Diff")
	lines = append(lines, "")

	if len(diff) > maxDiffSize {
		// Include summary and first/last portions
		lines = append(lines, fmt.Sprintf("_Diff is large (%d characters). Showing excerpts._", len(diff)))
		lines = append(lines, "")
		lines = append(lines, "```")
		lines = append(lines, diff[:maxDiffSize/2])
		lines = append(lines, "```")
		lines = append(lines, "")
		lines = append(lines, "... (diff truncated) ...")
		lines = append(lines, "")
		lines = append(lines, "```")
		lines = append(lines, diff[len(diff)-maxDiffSize/2:])
		lines = append(lines, "```")
	} else {
		lines = append(lines, "```")
		lines = append(lines, diff)
		lines = append(lines, "```")
	}

	return strings.Join(lines, "\n")
}

// buildPROutputFormatSection provides instructions for structured output
func buildPROutputFormatSection() string {
	return `## Output Format

Write a concise title (at most 72 characters) and a Markdown body with a
Summary, a Changes list and, if applicable, Testing notes.

Format your response exactly as:
TITLE: <title here>
BODY:
<full body here>`
}
