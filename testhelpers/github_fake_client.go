package testhelpers

import (
	"context"
	"fmt"
	"sync"

	githubpkg "gitpilot.dev/gitpilot/internal/github"

	gperrors "gitpilot.dev/gitpilot/internal/errors"
)

// FakeGitHubClient is an in-memory githubpkg.Client
type FakeGitHubClient struct {
	mu      sync.Mutex
	owner   string
	repo    string
	issues  map[int]*githubpkg.Issue
	created []githubpkg.CreatePROptions
	err     error
}

// NewFakeGitHubClient creates an empty fake for owner/repo
func NewFakeGitHubClient(owner, repo string) *FakeGitHubClient {
	return &FakeGitHubClient{
		owner:  owner,
		repo:   repo,
		issues: make(map[int]*githubpkg.Issue),
	}
}

// AddIssue registers an issue
func (c *FakeGitHubClient) AddIssue(issue githubpkg.Issue) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issues[issue.Number] = &issue
}

// SetCreateError makes CreatePullRequest fail with err
func (c *FakeGitHubClient) SetCreateError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

// Created returns the pull requests opened so far
func (c *FakeGitHubClient) Created() []githubpkg.CreatePROptions {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]githubpkg.CreatePROptions(nil), c.created...)
}

// GetOwnerRepo returns the repository owner and name
func (c *FakeGitHubClient) GetOwnerRepo() (string, string) {
	return c.owner, c.repo
}

// GetIssue returns a registered issue
func (c *FakeGitHubClient) GetIssue(_ context.Context, number int) (*githubpkg.Issue, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	issue, ok := c.issues[number]
	if !ok {
		return nil, gperrors.NewIssueNotFoundError(c.owner, c.repo, number)
	}
	found := *issue
	return &found, nil
}

// CreatePullRequest records the request
func (c *FakeGitHubClient) CreatePullRequest(_ context.Context, opts githubpkg.CreatePROptions) (*githubpkg.PullRequestInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	c.created = append(c.created, opts)
	number := len(c.created)
	return &githubpkg.PullRequestInfo{
		Number:  number,
		HTMLURL: fmt.Sprintf("https://github.com/%s/%s/pull/%d", c.owner, c.repo, number),
		Title:   opts.Title,
		Body:    opts.Body,
		Draft:   opts.Draft,
		Base:    opts.Base,
		Head:    opts.Head,
	}, nil
}
