// Package ai provides AI-powered drafting for gitpilot: commit messages,
// pull request descriptions and branch names.
//
// Generation is delegated to the GitHub Copilot CLI. Every public entry point
// on Generator degrades to a deterministic fallback, so callers never see a
// generation error.
package ai

import (
	"context"
	"fmt"
	"time"

	gperrors "gitpilot.dev/gitpilot/internal/errors"
)

const (
	// DefaultTimeout bounds a single generation call
	DefaultTimeout = 60 * time.Second

	// DefaultMaxOutputBytes caps captured stdout of a generation call
	DefaultMaxOutputBytes = 1 << 20
)

// Request is a single prompt sent to the generation tool.
type Request struct {
	Prompt string
	Model  string
}

// Limits bounds one invocation.
type Limits struct {
	Timeout        time.Duration
	MaxOutputBytes int
}

// DefaultLimits returns the standard invocation limits.
func DefaultLimits() Limits {
	return Limits{Timeout: DefaultTimeout, MaxOutputBytes: DefaultMaxOutputBytes}
}

func (l Limits) withDefaults() Limits {
	if l.Timeout <= 0 {
		l.Timeout = DefaultTimeout
	}
	if l.MaxOutputBytes <= 0 {
		l.MaxOutputBytes = DefaultMaxOutputBytes
	}
	return l
}

// FailureKind categorizes a failed invocation.
type FailureKind int

const (
	FailureGeneric FailureKind = iota
	FailureTimeout
	FailureBufferExceeded
	FailureQuotaExceeded
	FailureAuth
	FailureToolUnavailable
)

func (k FailureKind) String() string {
	switch k {
	case FailureTimeout:
		return "timeout"
	case FailureBufferExceeded:
		return "buffer-exceeded"
	case FailureQuotaExceeded:
		return "quota-exceeded"
	case FailureAuth:
		return "auth-failure"
	case FailureToolUnavailable:
		return "tool-unavailable"
	default:
		return "generic"
	}
}

func (k FailureKind) sentinel() error {
	switch k {
	case FailureTimeout:
		return gperrors.ErrTimeout
	case FailureBufferExceeded:
		return gperrors.ErrBufferExceeded
	case FailureQuotaExceeded:
		return gperrors.ErrQuotaExceeded
	case FailureAuth:
		return gperrors.ErrAuthFailure
	case FailureToolUnavailable:
		return gperrors.ErrToolUnavailable
	default:
		return gperrors.ErrGeneric
	}
}

// Failure describes why an invocation produced no usable stdout.
// Message is already sanitized and safe to show to the user.
type Failure struct {
	Kind    FailureKind
	Message string
}

func (f *Failure) Error() string {
	if f.Message == "" {
		return f.Kind.sentinel().Error()
	}
	return fmt.Sprintf("%s: %s", f.Kind.sentinel(), f.Message)
}

// Is matches the sentinel error for the failure kind
func (f *Failure) Is(target error) bool {
	return target == f.Kind.sentinel()
}

// Outcome is the result of one invocation: either Stdout or a Failure.
type Outcome struct {
	Stdout  string
	Failure *Failure
}

// OK reports whether the invocation succeeded.
func (o Outcome) OK() bool {
	return o.Failure == nil
}

// Succeeded builds a successful Outcome.
func Succeeded(stdout string) Outcome {
	return Outcome{Stdout: stdout}
}

// Failed builds a failed Outcome.
func Failed(kind FailureKind, message string) Outcome {
	return Outcome{Failure: &Failure{Kind: kind, Message: message}}
}

// Invoker runs one prompt against the generation tool.
//
// Implementations must never return a zero Outcome for a failed call and must
// pass the prompt to the tool as an opaque value, never through a shell.
type Invoker interface {
	Run(ctx context.Context, req Request, limits Limits) Outcome
}

// Notifier receives advisory messages emitted while generating.
// None of these affect the generation result.
type Notifier interface {
	// BeforeCall is emitted before each invocation with the model about to be used.
	BeforeCall(model ModelDescriptor)
	// QuotaRetry is emitted when a quota failure triggers the free-tier retry.
	QuotaRetry(from, to string)
	// SuggestDefaultModel is emitted once after a successful free-tier retry.
	SuggestDefaultModel(model string)
	// FallbackUsed is emitted when a deterministic fallback replaces generation.
	FallbackUsed(kind OutputKind, reason string)
}

// NopNotifier discards all notices.
type NopNotifier struct{}

func (NopNotifier) BeforeCall(ModelDescriptor) {}
func (NopNotifier) QuotaRetry(string, string) {}
func (NopNotifier) SuggestDefaultModel(string) {}
func (NopNotifier) FallbackUsed(OutputKind, string) {}
