package git

import (
	"context"
	"fmt"
	"strings"

	gperrors "gitpilot.dev/gitpilot/internal/errors"
)

// StageAll stages all changes including untracked files
func (r *Repo) StageAll(ctx context.Context) error {
	if _, err := r.runner.Run(ctx, "add", "-A"); err != nil {
		return fmt.Errorf("failed to stage all changes: %w", err)
	}
	return nil
}

// HasStagedChanges checks if there are staged changes
func (r *Repo) HasStagedChanges(ctx context.Context) (bool, error) {
	output, err := r.runner.Run(ctx, "diff", "--cached", "--shortstat")
	if err != nil {
		return false, fmt.Errorf("failed to check staged changes: %w", err)
	}
	return strings.TrimSpace(output) != "", nil
}

// StagedDiff returns the unified diff of the index against HEAD
func (r *Repo) StagedDiff(ctx context.Context) (string, error) {
	diff, err := r.runner.RunRaw(ctx, "diff", "--cached", "--no-color", "--no-ext-diff")
	if err != nil {
		return "", fmt.Errorf("failed to get staged diff: %w", err)
	}
	return diff, nil
}

// Commit records the staged changes with message
func (r *Repo) Commit(ctx context.Context, message string) error {
	staged, err := r.HasStagedChanges(ctx)
	if err != nil {
		return err
	}
	if !staged {
		return gperrors.ErrNoStagedChanges
	}

	if _, err := r.runner.Run(ctx, "commit", "-m", message); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
