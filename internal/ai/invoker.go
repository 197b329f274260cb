package ai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"
)

const (
	// DefaultBinary is the generation tool executable
	DefaultBinary = "copilot"

	// maxStderrBytes caps captured stderr
	maxStderrBytes = 64 << 10

	// maxHelpBytes caps captured help output
	maxHelpBytes = 256 << 10

	// waitDelay bounds how long Wait blocks on pipes after the process is killed
	waitDelay = 2 * time.Second
)

// Runner starts name with args and streams its output into stdout and stderr.
// It must not involve a shell.
type Runner func(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error

func execRunner(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = waitDelay
	return cmd.Run()
}

// CopilotInvoker runs the Copilot CLI in non-interactive mode.
type CopilotInvoker struct {
	binary string
	logDir string
	runner Runner
}

// InvokerOption configures a CopilotInvoker
type InvokerOption func(*CopilotInvoker)

// WithBinary overrides the executable name or path
func WithBinary(binary string) InvokerOption {
	return func(c *CopilotInvoker) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithLogDir sets the directory consulted when the tool fails silently
func WithLogDir(dir string) InvokerOption {
	return func(c *CopilotInvoker) {
		c.logDir = dir
	}
}

// WithRunner replaces process execution, mainly for tests
func WithRunner(r Runner) InvokerOption {
	return func(c *CopilotInvoker) {
		if r != nil {
			c.runner = r
		}
	}
}

// NewCopilotInvoker creates a CopilotInvoker
func NewCopilotInvoker(opts ...InvokerOption) *CopilotInvoker {
	c := &CopilotInvoker{
		binary: DefaultBinary,
		logDir: DefaultLogDir(),
		runner: execRunner,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// buildArgs returns the argument vector for req. The prompt is always a
// single element.
func buildArgs(req Request) []string {
	args := make([]string, 0, 5)
	if req.Model != "" {
		args = append(args, "--model", req.Model)
	}
	return append(args, "-s", "--prompt", req.Prompt)
}

// Run implements Invoker
func (c *CopilotInvoker) Run(ctx context.Context, req Request, limits Limits) Outcome {
	limits = limits.withDefaults()

	ctx, cancel := context.WithTimeout(ctx, limits.Timeout)
	defer cancel()

	// abort kills the process as soon as stdout overflows
	runCtx, abort := context.WithCancel(ctx)
	defer abort()

	stdout := &cappedBuffer{max: limits.MaxOutputBytes, onOverflow: abort}
	stderr := &cappedBuffer{max: maxStderrBytes}

	err := c.runner(runCtx, c.binary, buildArgs(req), stdout, stderr)

	if stdout.Overflowed() {
		return Failed(FailureBufferExceeded, fmt.Sprintf("copilot output exceeded %d bytes", limits.MaxOutputBytes))
	}
	if err != nil {
		switch {
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			return Failed(FailureTimeout, fmt.Sprintf("copilot did not respond within %s; try a faster model such as %s", limits.Timeout, FreeTierFallbackID()))
		case errors.Is(ctx.Err(), context.Canceled):
			return Failed(FailureGeneric, "generation cancelled")
		default:
			return c.failure(err, stderr.String())
		}
	}

	out := strings.TrimSpace(stdout.String())
	if out == "" {
		return Failed(FailureGeneric, "copilot returned empty output")
	}
	return Succeeded(out)
}

func (c *CopilotInvoker) failure(err error, stderr string) Outcome {
	if errors.Is(err, exec.ErrNotFound) {
		return Failed(FailureToolUnavailable, fmt.Sprintf("%s CLI not found in PATH; install it with `npm install -g @github/copilot`", c.binary))
	}

	if raw := strings.TrimSpace(stderr); raw != "" {
		return Failed(Classify(raw), SanitizeMessage(raw))
	}

	if msg, ok := ReadLatestLog(c.logDir); ok {
		return Failed(Classify(msg), msg)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Failed(FailureGeneric, fmt.Sprintf("copilot exited with code %d and no diagnostics", exitErr.ExitCode()))
	}
	return Failed(FailureGeneric, "copilot failed without diagnostics")
}

// Help implements HelpSource
func (c *CopilotInvoker) Help(ctx context.Context) (string, error) {
	stdout := &cappedBuffer{max: maxHelpBytes}
	stderr := &cappedBuffer{max: maxStderrBytes}
	if err := c.runner(ctx, c.binary, []string{"--help"}, stdout, stderr); err != nil {
		return "", fmt.Errorf("%s --help: %w", c.binary, err)
	}
	return stdout.String(), nil
}

// cappedBuffer keeps at most max bytes. Writes past the cap are discarded
// rather than rejected so the child never blocks on a full pipe.
type cappedBuffer struct {
	buf        bytes.Buffer
	max        int
	overflowed bool
	onOverflow func()
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	if b.overflowed {
		return len(p), nil
	}
	if room := b.max - b.buf.Len(); len(p) > room {
		b.buf.Write(p[:room])
		b.overflowed = true
		if b.onOverflow != nil {
			b.onOverflow()
		}
		return len(p), nil
	}
	b.buf.Write(p)
	return len(p), nil
}

func (b *cappedBuffer) Overflowed() bool {
	return b.overflowed
}

func (b *cappedBuffer) String() string {
	return b.buf.String()
}
