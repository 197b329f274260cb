//go:build linux

package utils

import (
	"os/exec"
)

// OpenBrowser opens a URL with xdg-open without waiting for the browser to exit
func OpenBrowser(url string) error {
	return exec.Command("xdg-open", url).Start()
}
