package ai

import (
	"regexp"
	"strings"
)

// maxDiagnosticLength is the longest diagnostic surfaced to the user verbatim
const maxDiagnosticLength = 200

// redactionMarker replaces credential-like substrings
const redactionMarker = "[REDACTED]"

// genericAuthMessage replaces diagnostics that are too long or look sensitive
const genericAuthMessage = "copilot failed; check authentication with `copilot` and `gh auth status`"

type classifierRule struct {
	pattern *regexp.Regexp
	kind    FailureKind
}

// classifierRules is evaluated in order; the first match wins.
var classifierRules = []classifierRule{
	{regexp.MustCompile(`(?i)premium request`), FailureQuotaExceeded},
	{regexp.MustCompile(`(?i)rate[ -]?limit`), FailureQuotaExceeded},
	{regexp.MustCompile(`(?i)quota`), FailureQuotaExceeded},
	{regexp.MustCompile(`(?i)exceeded.*allowance`), FailureQuotaExceeded},
	{regexp.MustCompile(`(?i)budget.*reached`), FailureQuotaExceeded},
	{regexp.MustCompile(`(?i)limit.*reached`), FailureQuotaExceeded},
	{regexp.MustCompile(`(?i)too many requests`), FailureQuotaExceeded},
	{regexp.MustCompile(`\b429\b`), FailureQuotaExceeded},
	{regexp.MustCompile(`\b401\b`), FailureAuth},
	{regexp.MustCompile(`(?i)unauthori[sz]ed`), FailureAuth},
	{regexp.MustCompile(`(?i)not authenticated`), FailureAuth},
	{regexp.MustCompile(`(?i)authentication failed`), FailureAuth},
	{regexp.MustCompile(`\b403\b`), FailureAuth},
	{regexp.MustCompile(`(?i)forbidden`), FailureAuth},
}

// Classify maps a raw tool error to a FailureKind
func Classify(raw string) FailureKind {
	for _, rule := range classifierRules {
		if rule.pattern.MatchString(raw) {
			return rule.kind
		}
	}
	return FailureGeneric
}

// redactionPatterns match credential-like substrings
var redactionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`gh[pousr]_[A-Za-z0-9]{8,}`),
	regexp.MustCompile(`github_pat_[A-Za-z0-9_]{8,}`),
	regexp.MustCompile(`sk-[A-Za-z0-9_-]{8,}`),
	regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9._~+/=-]+`),
	regexp.MustCompile(`\b[0-9a-fA-F]{32,}\b`),
}

// labeledSecretRegex matches a value following a credential label such as
// "api_key=" or "Authorization: token". The label is kept.
var labeledSecretRegex = regexp.MustCompile(
	`(?i)\b((?:token|api[_-]?key|secret|password|passwd|authorization)\s*[:=]?\s*(?:(?:token|bearer|basic)\s+)?)[^\s"',;]{8,}`)

// sensitiveKeywordRegex matches words that suggest a diagnostic is about credentials
var sensitiveKeywordRegex = regexp.MustCompile(`(?i)token|auth|key|secret|password`)

// Redact replaces credential-like substrings in s
func Redact(s string) string {
	for _, p := range redactionPatterns {
		s = p.ReplaceAllString(s, redactionMarker)
	}
	return labeledSecretRegex.ReplaceAllString(s, "${1}"+redactionMarker)
}

// SanitizeMessage prepares raw stderr for display. Credentials are redacted,
// and messages that are long or mention credentials are replaced outright.
func SanitizeMessage(raw string) string {
	msg := strings.TrimSpace(Redact(raw))
	if msg == "" {
		return ""
	}
	if len(msg) > maxDiagnosticLength || sensitiveKeywordRegex.MatchString(msg) {
		return genericAuthMessage
	}
	return msg
}
