package ai

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

const (
	listModelsAuthMessage   = "copilot could not list models (HTTP 401): run `copilot` and use /login to re-authenticate"
	listModelsAccessMessage = "copilot could not list models (HTTP 403): check that your account has an active Copilot subscription"
)

var (
	// errorTagRegex matches a log line tagged as an error and captures the text after the tag
	errorTagRegex = regexp.MustCompile(`\[ERROR\]\s*(.*)$`)

	listModelsRegex = regexp.MustCompile(`(?i)failed to list models`)
	status401Regex  = regexp.MustCompile(`\b401\b`)
	status403Regex  = regexp.MustCompile(`\b403\b`)
)

// DefaultLogDir returns the directory where copilot writes its logs
func DefaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".copilot", "logs")
}

// ReadLatestLog extracts the most informative error from the newest log file
// in dir. Log file names start with a fixed-width timestamp, so the
// lexicographically last name is the newest.
func ReadLatestLog(dir string) (string, bool) {
	if dir == "" {
		return "", false
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".log") {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return "", false
	}
	sort.Strings(names)

	data, err := os.ReadFile(filepath.Join(dir, names[len(names)-1]))
	if err != nil {
		return "", false
	}
	return diagnoseLog(string(data))
}

// diagnoseLog picks a message from the [ERROR] lines of a log
func diagnoseLog(content string) (string, bool) {
	var errorLines []string
	for _, line := range strings.Split(content, "\n") {
		if m := errorTagRegex.FindStringSubmatch(line); m != nil {
			errorLines = append(errorLines, strings.TrimSpace(m[1]))
		}
	}
	if len(errorLines) == 0 {
		return "", false
	}

	for _, line := range errorLines {
		if !listModelsRegex.MatchString(line) {
			continue
		}
		switch {
		case status401Regex.MatchString(line):
			return listModelsAuthMessage, true
		case status403Regex.MatchString(line):
			return listModelsAccessMessage, true
		}
	}

	last := strings.TrimSpace(Redact(errorLines[len(errorLines)-1]))
	if last == "" || len(last) > maxDiagnosticLength {
		return "", false
	}
	return last, true
}
