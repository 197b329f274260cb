package git

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// DefaultRemote is the remote gitpilot pushes to
const DefaultRemote = "origin"

// matches git@host:owner/repo(.git), ssh://git@host/owner/repo(.git) and
// https://host/owner/repo(.git)
var remoteURLRegex = regexp.MustCompile(`^(?:[a-z+]+://)?(?:[^@/]+@)?([^:/]+)(?::\d+)?[:/]([^/]+)/([^/]+?)(?:\.git)?/?$`)

// RemoteInfo identifies a hosted repository
type RemoteInfo struct {
	Hostname string
	Owner    string
	Name     string
}

// ParseRemoteURL extracts host, owner and repository name from a remote URL
func ParseRemoteURL(url string) (RemoteInfo, error) {
	matches := remoteURLRegex.FindStringSubmatch(strings.TrimSpace(url))
	if matches == nil {
		return RemoteInfo{}, fmt.Errorf("unrecognized remote URL %q", url)
	}
	return RemoteInfo{Hostname: matches[1], Owner: matches[2], Name: matches[3]}, nil
}

// Remote returns the parsed URL of the default remote
func (r *Repo) Remote(ctx context.Context) (RemoteInfo, error) {
	url, err := r.runner.Run(ctx, "remote", "get-url", DefaultRemote)
	if err != nil {
		return RemoteInfo{}, fmt.Errorf("failed to read remote %s: %w", DefaultRemote, err)
	}
	return ParseRemoteURL(url)
}

// Push pushes branch to the default remote and sets it as upstream
func (r *Repo) Push(ctx context.Context, branch string) error {
	if _, err := r.runner.Run(ctx, "push", "-u", DefaultRemote, branch); err != nil {
		return fmt.Errorf("failed to push branch %s: %w", branch, err)
	}
	return nil
}
