//go:build windows

package utils

import (
	"os/exec"
)

// OpenBrowser opens a URL through the Windows shell's start builtin
func OpenBrowser(url string) error {
	return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
}
