// Package github provides the small slice of the GitHub API gitpilot uses:
// reading issues for context and opening pull requests.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	gperrors "gitpilot.dev/gitpilot/internal/errors"
)

// Issue is the part of a GitHub issue used as generation context
type Issue struct {
	Number int
	Title  string
	Body   string
	URL    string
}

// Context renders the issue as the free-form context string handed to the
// PR generator.
func (i Issue) Context() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "#%d: %s", i.Number, i.Title)
	if body := strings.TrimSpace(i.Body); body != "" {
		sb.WriteString("\n\n")
		sb.WriteString(body)
	}
	return sb.String()
}

// PullRequestInfo contains information about a pull request
// This is a simplified struct to avoid coupling to go-github library
type PullRequestInfo struct {
	Number  int
	HTMLURL string
	Title   string
	Body    string
	Draft   bool
	Base    string
	Head    string
}

// CreatePROptions describes a pull request to open
type CreatePROptions struct {
	Title string
	Body  string
	Head  string
	Base  string
	Draft bool
}

// Client is an interface for GitHub API interactions
type Client interface {
	// GetIssue fetches an issue by number
	GetIssue(ctx context.Context, number int) (*Issue, error)

	// CreatePullRequest creates a new pull request
	CreatePullRequest(ctx context.Context, opts CreatePROptions) (*PullRequestInfo, error)

	// GetOwnerRepo returns the repository owner and name
	GetOwnerRepo() (owner, repo string)
}

// RESTClient implements Client on the GitHub REST API
type RESTClient struct {
	client *github.Client
	owner  string
	repo   string
}

// NewRESTClient creates a client for owner/repo on hostname, authenticating
// with token. GitHub Enterprise hosts use the /api/v3/ endpoints.
func NewRESTClient(ctx context.Context, hostname, token, owner, repo string) (*RESTClient, error) {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	client := github.NewClient(oauth2.NewClient(ctx, ts))

	if hostname != "" && hostname != "github.com" {
		baseURL, err := url.Parse(fmt.Sprintf("https://%s/api/v3/", hostname))
		if err != nil {
			return nil, fmt.Errorf("failed to parse base URL for hostname %s: %w", hostname, err)
		}
		uploadURL, err := url.Parse(fmt.Sprintf("https://%s/api/uploads/", hostname))
		if err != nil {
			return nil, fmt.Errorf("failed to parse upload URL for hostname %s: %w", hostname, err)
		}
		client.BaseURL = baseURL
		client.UploadURL = uploadURL
	}

	return &RESTClient{client: client, owner: owner, repo: repo}, nil
}

// NewRESTClientFromGitHub wraps an existing go-github client
func NewRESTClientFromGitHub(client *github.Client, owner, repo string) *RESTClient {
	return &RESTClient{client: client, owner: owner, repo: repo}
}

// GetOwnerRepo returns the repository owner and name
func (c *RESTClient) GetOwnerRepo() (string, string) {
	return c.owner, c.repo
}

// GetIssue fetches an issue by number
func (c *RESTClient) GetIssue(ctx context.Context, number int) (*Issue, error) {
	issue, resp, err := c.client.Issues.Get(ctx, c.owner, c.repo, number)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, gperrors.NewIssueNotFoundError(c.owner, c.repo, number)
		}
		var errResp *github.ErrorResponse
		if errors.As(err, &errResp) && errResp.Response != nil && errResp.Response.StatusCode == http.StatusNotFound {
			return nil, gperrors.NewIssueNotFoundError(c.owner, c.repo, number)
		}
		return nil, fmt.Errorf("failed to get issue #%d: %w", number, err)
	}

	return &Issue{
		Number: issue.GetNumber(),
		Title:  issue.GetTitle(),
		Body:   issue.GetBody(),
		URL:    issue.GetHTMLURL(),
	}, nil
}

// CreatePullRequest creates a new pull request
func (c *RESTClient) CreatePullRequest(ctx context.Context, opts CreatePROptions) (*PullRequestInfo, error) {
	pr := &github.NewPullRequest{
		Title: github.String(opts.Title),
		Head:  github.String(opts.Head),
		Base:  github.String(opts.Base),
		Draft: github.Bool(opts.Draft),
	}
	if opts.Body != "" {
		pr.Body = github.String(opts.Body)
	}

	created, _, err := c.client.PullRequests.Create(ctx, c.owner, c.repo, pr)
	if err != nil {
		return nil, fmt.Errorf("failed to create pull request: %w", err)
	}
	return toPullRequestInfo(created), nil
}

// toPullRequestInfo converts a github.PullRequest to PullRequestInfo
func toPullRequestInfo(pr *github.PullRequest) *PullRequestInfo {
	if pr == nil {
		return nil
	}
	return &PullRequestInfo{
		Number:  pr.GetNumber(),
		HTMLURL: pr.GetHTMLURL(),
		Title:   pr.GetTitle(),
		Body:    pr.GetBody(),
		Draft:   pr.GetDraft(),
		Base:    pr.GetBase().GetRef(),
		Head:    pr.GetHead().GetRef(),
	}
}
