package testhelpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"

	"github.com/google/go-github/v62/github"
)

// MockGitHubServerConfig configures the behavior of a mock GitHub server
type MockGitHubServerConfig struct {
	mu sync.Mutex

	// Issues maps issue numbers to the issue returned for them
	Issues map[int]*github.Issue
	// CreatedPRs stores PRs that were created (for testing)
	CreatedPRs []*github.NewPullRequest
	// FailCreate makes pull request creation return 422
	FailCreate bool
	// Owner and Repo for the mock server
	Owner string
	Repo  string
}

// NewMockGitHubServerConfig creates a new mock server config with defaults
func NewMockGitHubServerConfig() *MockGitHubServerConfig {
	return &MockGitHubServerConfig{
		Issues: make(map[int]*github.Issue),
		Owner:  "owner",
		Repo:   "repo",
	}
}

// AddIssue registers an issue with the mock server
func (c *MockGitHubServerConfig) AddIssue(number int, title, body string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Issues[number] = &github.Issue{
		Number:  github.Int(number),
		Title:   github.String(title),
		Body:    github.String(body),
		HTMLURL: github.String(fmt.Sprintf("https://github.com/%s/%s/issues/%d", c.Owner, c.Repo, number)),
	}
}

// SetFailCreate makes pull request creation fail
func (c *MockGitHubServerConfig) SetFailCreate(fail bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.FailCreate = fail
}

// Created returns a copy of the pull requests created so far
func (c *MockGitHubServerConfig) Created() []*github.NewPullRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*github.NewPullRequest(nil), c.CreatedPRs...)
}

// NewMockGitHubServer creates an httptest server that mocks the issue and
// pull request endpoints
func NewMockGitHubServer(t *testing.T, config *MockGitHubServerConfig) *httptest.Server {
	if config == nil {
		config = NewMockGitHubServerConfig()
	}

	repoPath := "/repos/" + config.Owner + "/" + config.Repo
	mux := http.NewServeMux()

	mux.HandleFunc("GET "+repoPath+"/issues/{number}", func(w http.ResponseWriter, r *http.Request) {
		number, err := strconv.Atoi(r.PathValue("number"))
		if err != nil {
			http.Error(w, "invalid issue number", http.StatusBadRequest)
			return
		}

		config.mu.Lock()
		issue, ok := config.Issues[number]
		config.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
			return
		}
		writeJSON(w, http.StatusOK, issue)
	})

	mux.HandleFunc("POST "+repoPath+"/pulls", func(w http.ResponseWriter, r *http.Request) {
		var newPR github.NewPullRequest
		if err := json.NewDecoder(r.Body).Decode(&newPR); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		config.mu.Lock()
		if config.FailCreate {
			config.mu.Unlock()
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"message": "Validation Failed"})
			return
		}
		config.CreatedPRs = append(config.CreatedPRs, &newPR)
		prNumber := len(config.CreatedPRs)
		config.mu.Unlock()

		writeJSON(w, http.StatusCreated, &github.PullRequest{
			Number:  github.Int(prNumber),
			Title:   newPR.Title,
			Body:    newPR.Body,
			Head:    &github.PullRequestBranch{Ref: newPR.Head},
			Base:    &github.PullRequestBranch{Ref: newPR.Base},
			Draft:   newPR.Draft,
			HTMLURL: github.String(fmt.Sprintf("https://github.com/%s/%s/pull/%d", config.Owner, config.Repo, prNumber)),
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(func() { server.Close() })
	return server
}

// NewMockGitHubClient creates a GitHub client configured to use a mock server
func NewMockGitHubClient(t *testing.T, config *MockGitHubServerConfig) (*github.Client, string, string) {
	server := NewMockGitHubServer(t, config)
	client := github.NewClient(nil)
	baseURL, _ := url.Parse(server.URL + "/")
	client.BaseURL = baseURL
	client.UploadURL = baseURL

	return client, config.Owner, config.Repo
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
