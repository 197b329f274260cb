package git

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"gitpilot.dev/gitpilot/internal/ai"
)

// CommitsBetween returns the commits reachable from head but not from base,
// oldest first.
func (r *Repo) CommitsBetween(base, head string) ([]ai.Commit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	headHash, err := r.resolveRefHash(head)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve head: %w", err)
	}
	baseHash, err := r.resolveRefHash(base)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base: %w", err)
	}

	excluded, err := r.ancestors(baseHash)
	if err != nil {
		return nil, err
	}

	commits, err := r.iterateCommits(headHash, excluded)
	if err != nil {
		return nil, fmt.Errorf("failed to iterate commits: %w", err)
	}

	// the walk yields newest first; reverse, then order by date keeping
	// topological order for commits made in the same second
	slices.Reverse(commits)
	slices.SortStableFunc(commits, func(a, b *object.Commit) int {
		return a.Committer.When.Compare(b.Committer.When)
	})

	result := make([]ai.Commit, 0, len(commits))
	for _, c := range commits {
		result = append(result, ai.Commit{
			Hash:    c.Hash.String(),
			Message: strings.TrimSpace(c.Message),
			Author:  c.Author.Name,
			Date:    c.Committer.When,
		})
	}
	return result, nil
}

// ancestors returns every commit reachable from start, including start.
// The caller must hold r.mu.
func (r *Repo) ancestors(start plumbing.Hash) (map[plumbing.Hash]bool, error) {
	seen := make(map[plumbing.Hash]bool)
	queue := []plumbing.Hash{start}
	for len(queue) > 0 {
		hash := queue[0]
		queue = queue[1:]
		if seen[hash] {
			continue
		}
		seen[hash] = true

		commit, err := r.repo.CommitObject(hash)
		if err != nil {
			return nil, fmt.Errorf("failed to get commit %s: %w", hash, err)
		}
		queue = append(queue, commit.ParentHashes...)
	}
	return seen, nil
}

// iterateCommits walks from head breadth-first, stopping at excluded commits.
// The caller must hold r.mu.
func (r *Repo) iterateCommits(head plumbing.Hash, excluded map[plumbing.Hash]bool) ([]*object.Commit, error) {
	var commits []*object.Commit
	visited := make(map[plumbing.Hash]bool)
	queue := []plumbing.Hash{head}

	for len(queue) > 0 {
		hash := queue[0]
		queue = queue[1:]
		if visited[hash] || excluded[hash] {
			continue
		}
		visited[hash] = true

		commit, err := r.repo.CommitObject(hash)
		if err != nil {
			return nil, fmt.Errorf("failed to get commit %s: %w", hash, err)
		}
		commits = append(commits, commit)

		for _, parentHash := range commit.ParentHashes {
			if !visited[parentHash] && !excluded[parentHash] {
				queue = append(queue, parentHash)
			}
		}
	}

	return commits, nil
}
