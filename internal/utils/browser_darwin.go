//go:build darwin

package utils

import (
	"os/exec"
)

// OpenBrowser opens a URL with the macOS open command
func OpenBrowser(url string) error {
	return exec.Command("open", url).Start()
}
