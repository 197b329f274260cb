package ai

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// ParseStatus tags how well a response parsed
type ParseStatus int

const (
	// Unparseable means nothing usable was found
	Unparseable ParseStatus = iota
	// Weak means the response parsed but failed the usefulness check
	Weak
	// Parsed means the response is usable as is
	Parsed
)

func (s ParseStatus) String() string {
	switch s {
	case Parsed:
		return "parsed"
	case Weak:
		return "weak"
	default:
		return "unparseable"
	}
}

// MaxCommitSuggestions is the most suggestions returned for one diff
const MaxCommitSuggestions = 3

// minPRBodyLength is the body length a draft must exceed to be usable
const minPRBodyLength = 50

const conventionalTypes = `feat|fix|docs|style|refactor|perf|test|chore|ci|build`

// lineRule extracts a commit message from a single response line
type lineRule struct {
	name    string
	pattern *regexp.Regexp
	extract func(m []string) string
}

// commitLineRules is evaluated in order against every line; the first
// matching rule decides what the line contributes.
var commitLineRules = []lineRule{
	{
		name:    "numbered",
		pattern: regexp.MustCompile(`^\d+[.)]\s+(.+)$`),
		extract: func(m []string) string { return m[1] },
	},
	{
		name:    "conventional",
		pattern: regexp.MustCompile(`^(?:` + conventionalTypes + `)(?:\([^)]*\))?!?:\s+.+$`),
		extract: func(m []string) string { return m[0] },
	},
	{
		name:    "bullet",
		pattern: regexp.MustCompile(`^[-*+]\s+((?:` + conventionalTypes + `)(?:\([^)]*\))?!?:\s+.+)$`),
		extract: func(m []string) string { return m[1] },
	},
}

var (
	boldRegex       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	inlineCodeRegex = regexp.MustCompile("`([^`]+)`")

	// wrappedUnderscoreRegex only matches a line wrapped whole in __ so
	// identifiers such as __init__ survive
	wrappedUnderscoreRegex = regexp.MustCompile(`^__(.+)__$`)
)

// stripEmphasis removes paired markdown emphasis and inline code markers
func stripEmphasis(s string) string {
	s = boldRegex.ReplaceAllString(s, "$1")
	s = inlineCodeRegex.ReplaceAllString(s, "$1")
	return wrappedUnderscoreRegex.ReplaceAllString(strings.TrimSpace(s), "$1")
}

// bulletPrefixRegex matches a leading markdown bullet
var bulletPrefixRegex = regexp.MustCompile(`^[-*+]\s+`)

// CommitParse is the result of parsing a commit suggestion response
type CommitParse struct {
	Messages []string
	Status   ParseStatus
}

// ParseCommitMessages extracts up to three commit messages, in order.
func ParseCommitMessages(response string) CommitParse {
	var messages []string
	for _, raw := range strings.Split(stripMarkdownCodeBlocks(response), "\n") {
		line := stripEmphasis(raw)
		if line == "" {
			continue
		}
		for _, rule := range commitLineRules {
			m := rule.pattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			if msg := cleanCommitMessage(rule.extract(m)); msg != "" {
				messages = append(messages, msg)
			}
			break
		}
		if len(messages) == MaxCommitSuggestions {
			break
		}
	}

	if len(messages) == 0 {
		return CommitParse{Status: Unparseable}
	}
	return CommitParse{Messages: messages, Status: Parsed}
}

func cleanCommitMessage(msg string) string {
	msg = strings.TrimSpace(msg)
	msg = stripEmphasis(bulletPrefixRegex.ReplaceAllString(msg, ""))
	return strings.TrimSpace(strings.Trim(msg, `"'`))
}

// PRDraft is a pull request title and body
type PRDraft struct {
	Title string
	Body  string
}

// Usable reports whether the draft is good enough to show without a fallback.
// Body length is measured in characters, not bytes.
func (d PRDraft) Usable() bool {
	return d.Title != "" && d.Body != "" && utf8.RuneCountInString(d.Body) > minPRBodyLength
}

var (
	// titleMarkerRegex matches a TITLE: line, optionally wrapped in emphasis
	titleMarkerRegex = regexp.MustCompile(`(?i)^(?:\*\*|__)?title(?:\*\*|__)?:(?:\*\*|__)?\s*(.*)$`)

	// bodyMarkerRegex matches a BODY: line, optionally wrapped in emphasis
	bodyMarkerRegex = regexp.MustCompile(`(?i)^(?:\*\*|__)?body(?:\*\*|__)?:(?:\*\*|__)?\s*(.*)$`)

	// headingPrefixRegex matches a leading markdown heading marker
	headingPrefixRegex = regexp.MustCompile(`^#{1,6}\s+`)
)

// PRParse is the result of parsing a pull request response
type PRParse struct {
	Draft  PRDraft
	Status ParseStatus
}

// ParsePRResponse extracts a title and body. TITLE:/BODY: markers are
// preferred; without them the first non-blank line is the title and the
// remaining non-blank lines are the body.
func ParsePRResponse(response string) PRParse {
	lines := strings.Split(strings.TrimSpace(response), "\n")

	draft, ok := parseMarkedPR(lines)
	if !ok {
		draft = parseUnmarkedPR(lines)
	}

	switch {
	case draft.Usable():
		return PRParse{Draft: draft, Status: Parsed}
	case draft.Title == "" && draft.Body == "":
		return PRParse{Status: Unparseable}
	default:
		return PRParse{Draft: draft, Status: Weak}
	}
}

func parseMarkedPR(lines []string) (PRDraft, bool) {
	titleIdx := -1
	var title string
	for i, line := range lines {
		if m := titleMarkerRegex.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			titleIdx = i
			title = m[1]
			break
		}
	}
	if titleIdx < 0 {
		return PRDraft{}, false
	}

	for i := titleIdx + 1; i < len(lines); i++ {
		m := bodyMarkerRegex.FindStringSubmatch(strings.TrimSpace(lines[i]))
		if m == nil {
			// title text may sit on the line after the marker
			if strings.TrimSpace(title) == "" && !isSeparator(lines[i]) {
				title = lines[i]
			}
			continue
		}
		bodyLines := append([]string{m[1]}, lines[i+1:]...)
		return PRDraft{
			Title: cleanTitle(title),
			Body:  strings.TrimSpace(strings.Join(bodyLines, "\n")),
		}, true
	}
	return PRDraft{}, false
}

func parseUnmarkedPR(lines []string) PRDraft {
	var nonBlank []string
	for _, line := range lines {
		if strings.TrimSpace(line) == "" || isSeparator(line) {
			continue
		}
		nonBlank = append(nonBlank, strings.TrimRight(line, " \t\r"))
	}
	if len(nonBlank) == 0 {
		return PRDraft{}
	}
	title := nonBlank[0]
	if m := titleMarkerRegex.FindStringSubmatch(strings.TrimSpace(title)); m != nil {
		title = m[1]
	}
	return PRDraft{
		Title: cleanTitle(title),
		Body:  strings.TrimSpace(strings.Join(nonBlank[1:], "\n")),
	}
}

func isSeparator(line string) bool {
	return strings.TrimSpace(line) == "---"
}

func cleanTitle(title string) string {
	title = stripEmphasis(title)
	title = headingPrefixRegex.ReplaceAllString(title, "")
	return strings.TrimSpace(strings.Trim(title, `"'`))
}

// branchLabelRegex matches a "Branch name:" style label before the name
var branchLabelRegex = regexp.MustCompile(`(?i)^branch(?:\s+name)?\s*:\s*`)

// BranchParse is the result of parsing a branch name response
type BranchParse struct {
	Name   string
	Status ParseStatus
}

// ParseBranchName takes the first line of response and sanitizes it into a
// branch name for branchType and issueNumber.
func ParseBranchName(response, branchType, issueNumber string) BranchParse {
	var first string
	for _, line := range strings.Split(stripMarkdownCodeBlocks(response), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			first = line
			break
		}
	}

	first = strings.Trim(first, "`\"' ")
	first = branchLabelRegex.ReplaceAllString(first, "")
	first = strings.Trim(first, "`\"' ")

	name, empty := sanitizeBranchName(first, branchType, issueNumber)
	if empty {
		return BranchParse{Status: Unparseable}
	}
	return BranchParse{Name: name, Status: Parsed}
}

// stripMarkdownCodeBlocks removes a surrounding code fence and wrapping backticks
func stripMarkdownCodeBlocks(text string) string {
	text = strings.TrimSpace(text)

	// Remove opening ```language or just ```
	if strings.HasPrefix(text, "```") {
		if firstNewline := strings.Index(text, "\n"); firstNewline > 0 {
			text = text[firstNewline+1:]
		} else {
			text = strings.TrimPrefix(text, "```")
		}
	}

	text = strings.TrimSuffix(strings.TrimSpace(text), "```")

	// Also handle single backticks that might wrap the entire message
	text = strings.Trim(text, "`")

	return strings.TrimSpace(text)
}
