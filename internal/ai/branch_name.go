package ai

import (
	"strings"

	"gitpilot.dev/gitpilot/internal/utils"
)

const (
	// MaxBranchNameLength is the longest branch name produced
	MaxBranchNameLength = 50

	// DefaultBranchType is used when the requested type is empty or unusable
	DefaultBranchType = "feature"

	maxBranchTypeLength = 20
	maxIssueDigits      = 10

	// emptySlug stands in when nothing usable remains of the description
	emptySlug = "update"
)

// BranchTypes are the types offered by the branch command
var BranchTypes = []string{"feature", "fix", "chore", "docs", "refactor"}

// SanitizeBranchName normalizes raw into "{type}/{issue-}{slug}". The result
// is at most MaxBranchNameLength bytes and contains only [a-z0-9-] segments.
func SanitizeBranchName(raw, branchType, issueNumber string) string {
	name, _ := sanitizeBranchName(raw, branchType, issueNumber)
	return name
}

// sanitizeBranchName also reports whether raw contributed nothing to the slug
func sanitizeBranchName(raw, branchType, issueNumber string) (string, bool) {
	typ := normalizeBranchType(branchType)

	prefix := ""
	if issue := utils.DigitsOnly(issueNumber); issue != "" {
		if len(issue) > maxIssueDigits {
			issue = issue[:maxIssueDigits]
		}
		prefix = issue + "-"
	}

	s := strings.TrimSpace(raw)
	if echoed := typ + "/"; len(s) >= len(echoed) && strings.EqualFold(s[:len(echoed)], echoed) {
		s = s[len(echoed):]
	}

	slug := utils.Slugify(s)
	if prefix != "" {
		slug = strings.TrimPrefix(slug, prefix)
		if slug+"-" == prefix {
			slug = ""
		}
	}

	maxSlug := MaxBranchNameLength - len(typ) - len(prefix) - 1
	slug = utils.TruncateSlug(slug, maxSlug)

	empty := slug == ""
	if empty {
		slug = emptySlug
	}
	return typ + "/" + prefix + slug, empty
}

func normalizeBranchType(branchType string) string {
	typ := utils.TruncateSlug(utils.Slugify(branchType), maxBranchTypeLength)
	if typ == "" {
		return DefaultBranchType
	}
	return typ
}
