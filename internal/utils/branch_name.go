package utils

import (
	"regexp"
	"strings"
)

var (
	// slugReplaceRegex matches characters that are not allowed in a branch slug
	slugReplaceRegex = regexp.MustCompile(`[^a-z0-9-]+`)

	// hyphenRunRegex matches runs of consecutive hyphens
	hyphenRunRegex = regexp.MustCompile(`-{2,}`)

	// refInvalidRegex matches characters git rejects in ref names
	refInvalidRegex = regexp.MustCompile("[\\x00-\\x20~^:?*\\[\\\\\\x7f]")

	// conventionalPrefixRegex matches a leading conventional commit type
	conventionalPrefixRegex = regexp.MustCompile(`^(feat|fix|chore|docs|style|refactor|perf|test|build|ci)(\([^)]*\))?!?:\s*`)
)

// Slugify lowercases s, replaces every character outside [a-z0-9-] with a
// hyphen, collapses hyphen runs and trims leading/trailing hyphens.
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = slugReplaceRegex.ReplaceAllString(s, "-")
	s = hyphenRunRegex.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// TruncateSlug cuts slug to at most maxLen bytes and strips a trailing hyphen
// left by the cut. slug must already be ASCII (see Slugify).
func TruncateSlug(slug string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if len(slug) > maxLen {
		slug = slug[:maxLen]
	}
	return strings.TrimRight(slug, "-")
}

// DigitsOnly returns s with every non-digit removed
func DigitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// IsValidRefName reports whether name is acceptable to git as a branch name
func IsValidRefName(name string) bool {
	if name == "" || strings.HasPrefix(name, "-") || strings.HasPrefix(name, "/") {
		return false
	}
	if strings.HasSuffix(name, "/") || strings.HasSuffix(name, ".") || strings.HasSuffix(name, ".lock") {
		return false
	}
	if strings.Contains(name, "..") || strings.Contains(name, "//") || strings.Contains(name, "@{") {
		return false
	}
	return !refInvalidRegex.MatchString(name)
}

// StripConventionalPrefix removes a leading "type(scope): " from a commit subject
func StripConventionalPrefix(subject string) string {
	return conventionalPrefixRegex.ReplaceAllString(subject, "")
}

// Subject returns the first line of a commit message, trimmed
func Subject(message string) string {
	message = strings.TrimSpace(message)
	if idx := strings.IndexByte(message, '\n'); idx >= 0 {
		message = message[:idx]
	}
	return strings.TrimSpace(message)
}
