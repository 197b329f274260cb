package tui

import (
	"os"
	"path/filepath"
)

// GetLogFilePath returns the path to the log file.
// If GITPILOT_LOG_FILE is set, uses that path.
// Otherwise, uses ~/.gitpilot/logs/gitpilot.log
func GetLogFilePath() string {
	if customPath := os.Getenv("GITPILOT_LOG_FILE"); customPath != "" {
		return customPath
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "gitpilot.log"
	}
	return filepath.Join(homeDir, ".gitpilot", "logs", "gitpilot.log")
}
