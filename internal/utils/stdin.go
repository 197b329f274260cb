package utils

import (
	"io"
	"os"
	"strings"
)

// maxStdinBytes bounds how much piped input is read, e.g. `git diff | gitpilot commit --stdin`
const maxStdinBytes = 10 << 20

// ReadFromStdin reads piped content from standard input.
// It returns an empty string without blocking when stdin is a terminal.
func ReadFromStdin() (string, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return "", err
	}

	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return "", nil
	}

	// An empty regular file would otherwise be read as an empty diff
	if stat.Mode().IsRegular() && stat.Size() == 0 {
		return "", nil
	}

	data, err := io.ReadAll(io.LimitReader(os.Stdin, maxStdinBytes))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(data)), nil
}
