package git

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	gperrors "gitpilot.dev/gitpilot/internal/errors"
)

// Repo is an opened repository. Reads go through go-git, writes through the
// git CLI so hooks and signing configuration are honored.
type Repo struct {
	repo   *gogit.Repository
	root   string
	runner *CommandRunner

	// go-git is not safe for concurrent packfile access
	mu sync.Mutex
}

// Open finds the repository containing path
func Open(path string) (*Repo, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := gogit.PlainOpenWithOptions(absPath, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%s: %w", absPath, gperrors.ErrNotARepository)
		}
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}
	root := worktree.Filesystem.Root()

	return &Repo{
		repo:   repo,
		root:   root,
		runner: NewCommandRunner(root),
	}, nil
}

// Root returns the top-level directory of the working tree
func (r *Repo) Root() string {
	return r.root
}

// CurrentBranch returns the short name of the checked out branch
func (r *Repo) CurrentBranch() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", gperrors.ErrNotOnBranch
	}
	return head.Name().Short(), nil
}

// DefaultBranch guesses the branch pull requests should target: the remote
// HEAD when it is known, otherwise main or master if either exists locally.
func (r *Repo) DefaultBranch() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ref, err := r.repo.Reference(plumbing.NewRemoteHEADReferenceName(DefaultRemote), false); err == nil {
		prefix := "refs/remotes/" + DefaultRemote + "/"
		if target := ref.Target().String(); strings.HasPrefix(target, prefix) {
			return strings.TrimPrefix(target, prefix)
		}
	}

	for _, name := range []string{"main", "master"} {
		if _, err := r.repo.Reference(plumbing.NewBranchReferenceName(name), true); err == nil {
			return name
		}
	}
	return "main"
}

// BranchExists reports whether a local branch exists
func (r *Repo) BranchExists(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.repo.Reference(plumbing.NewBranchReferenceName(name), true)
	return err == nil
}

// CreateBranch creates a branch at HEAD, checking it out when checkout is set
func (r *Repo) CreateBranch(ctx context.Context, name string, checkout bool) error {
	args := []string{"branch", name}
	if checkout {
		args = []string{"checkout", "-b", name}
	}
	if _, err := r.runner.Run(ctx, args...); err != nil {
		return fmt.Errorf("failed to create branch %s: %w", name, err)
	}
	return nil
}

// resolveRefHash resolves a ref (branch name, SHA, or ref path) to a hash.
// The caller must hold r.mu.
func (r *Repo) resolveRefHash(ref string) (plumbing.Hash, error) {
	candidates := []plumbing.ReferenceName{
		plumbing.ReferenceName(ref),
		plumbing.NewBranchReferenceName(ref),
		plumbing.NewRemoteReferenceName(DefaultRemote, ref),
		plumbing.NewTagReferenceName(ref),
	}
	for _, name := range candidates {
		if found, err := r.repo.Reference(name, true); err == nil {
			return found.Hash(), nil
		}
	}

	// handles SHAs, short SHAs and expressions like HEAD~1
	hash, err := r.repo.ResolveRevision(plumbing.Revision(ref))
	if err == nil {
		return *hash, nil
	}

	return plumbing.ZeroHash, fmt.Errorf("failed to resolve ref %s: reference not found", ref)
}
