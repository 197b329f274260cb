package github

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	gperrors "gitpilot.dev/gitpilot/internal/errors"
	"gitpilot.dev/gitpilot/internal/git"
)

const ghTokenTimeout = 10 * time.Second

// TokenSource resolves a GitHub token
type TokenSource func(ctx context.Context) (string, error)

// GHCLIToken asks the gh CLI for its token
func GHCLIToken(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, ghTokenTimeout)
	defer cancel()
	return git.RunGHCommand(ctx, "auth", "token")
}

// ResolveToken returns the first token found in GITHUB_TOKEN, the configured
// token, then the gh CLI.
func ResolveToken(ctx context.Context, configured string, gh TokenSource) (string, error) {
	if token := strings.TrimSpace(os.Getenv("GITHUB_TOKEN")); token != "" {
		return token, nil
	}
	if token := strings.TrimSpace(configured); token != "" {
		return token, nil
	}
	if gh != nil {
		token, err := gh(ctx)
		if err != nil {
			return "", fmt.Errorf("%w: %w", gperrors.ErrNoGitHubToken, err)
		}
		if token = strings.TrimSpace(token); token != "" {
			return token, nil
		}
	}
	return "", gperrors.ErrNoGitHubToken
}
