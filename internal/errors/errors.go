// Package errors provides sentinel errors and custom error types for the gitpilot application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for generation failures. These never escape the ai package's
// public entry points; they exist so failures can be matched with errors.Is.
var (
	// ErrTimeout indicates the generation tool did not finish in time
	ErrTimeout = errors.New("generation timed out")

	// ErrBufferExceeded indicates the generation tool produced more output than allowed
	ErrBufferExceeded = errors.New("generation output exceeded limit")

	// ErrQuotaExceeded indicates a rate limit or plan allowance was exhausted
	ErrQuotaExceeded = errors.New("generation quota exceeded")

	// ErrAuthFailure indicates the generation tool could not authenticate
	ErrAuthFailure = errors.New("generation tool authentication failed")

	// ErrGeneric is an unclassified generation tool failure
	ErrGeneric = errors.New("generation tool failed")

	// ErrToolUnavailable indicates the generation tool could not be started
	ErrToolUnavailable = errors.New("generation tool unavailable")

	// ErrWeakParse indicates a response parsed but was not usable
	ErrWeakParse = errors.New("generated output not usable")
)

// Sentinel errors for collaborator conditions
var (
	// ErrNotARepository indicates the working directory is not inside a git repository
	ErrNotARepository = errors.New("not a git repository")

	// ErrNotOnBranch indicates that HEAD is not on a branch
	ErrNotOnBranch = errors.New("not on a branch")

	// ErrNoStagedChanges indicates there is nothing staged to commit
	ErrNoStagedChanges = errors.New("no staged changes")

	// ErrIssueNotFound indicates that an issue does not exist
	ErrIssueNotFound = errors.New("issue not found")

	// ErrNoGitHubToken indicates no GitHub token could be resolved
	ErrNoGitHubToken = errors.New("no GitHub token found")
)

// IssueNotFoundError represents an error when an issue is not found
type IssueNotFoundError struct {
	Owner  string
	Repo   string
	Number int
}

func (e *IssueNotFoundError) Error() string {
	return fmt.Sprintf("issue #%d not found in %s/%s", e.Number, e.Owner, e.Repo)
}

// Is returns true if the target error is ErrIssueNotFound
func (e *IssueNotFoundError) Is(target error) bool {
	return target == ErrIssueNotFound
}

// NewIssueNotFoundError creates a new IssueNotFoundError
func NewIssueNotFoundError(owner, repo string, number int) *IssueNotFoundError {
	return &IssueNotFoundError{Owner: owner, Repo: repo, Number: number}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}
