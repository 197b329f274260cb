package runtime

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gitpilot.dev/gitpilot/internal/ai"
	"gitpilot.dev/gitpilot/internal/config"
	gperrors "gitpilot.dev/gitpilot/internal/errors"
	"gitpilot.dev/gitpilot/internal/git"
	"gitpilot.dev/gitpilot/internal/github"
	"gitpilot.dev/gitpilot/internal/history"
	"gitpilot.dev/gitpilot/internal/tui"
	"gitpilot.dev/gitpilot/internal/utils"
)

// GitHubClientFactory builds a GitHub client for repo on first use
type GitHubClientFactory func(ctx context.Context, repo *git.Repo) (github.Client, error)

// Context provides access to shared dependencies for commands
type Context struct {
	Splog      *tui.Splog
	Config     *config.Config
	ConfigPath string

	// Repo is nil when the working directory is not inside a repository
	Repo *git.Repo

	Drafter  ai.Drafter
	Models   ai.HelpSource
	Prompter tui.Prompter

	// History is nil when recording is disabled or the store could not be opened
	History *history.Store

	// Interactive is false when stdin/stdout are not terminals
	Interactive bool

	NewGitHubClient GitHubClientFactory
	githubClient    github.Client
}

type contextKey struct{}

// WithContext returns a copy of parent carrying rt. Commands executed with
// the returned context use rt instead of loading their own.
func WithContext(parent context.Context, rt *Context) context.Context {
	return context.WithValue(parent, contextKey{}, rt)
}

// FromContext returns the runtime context carried by ctx, if any
func FromContext(ctx context.Context) (*Context, bool) {
	if ctx == nil {
		return nil, false
	}
	rt, ok := ctx.Value(contextKey{}).(*Context)
	return rt, ok && rt != nil
}

// NewContext creates a context with defaults suitable for tests: console
// logging, an empty config and a never-interactive terminal prompter.
func NewContext(splog *tui.Splog, repo *git.Repo, drafter ai.Drafter) *Context {
	if splog == nil {
		splog = tui.NewSplog()
	}
	return &Context{
		Splog:    splog,
		Config:   &config.Config{},
		Repo:     repo,
		Drafter:  drafter,
		Prompter: tui.TerminalPrompter{},
	}
}

// RequireRepo returns the repository or ErrNotARepository
func (c *Context) RequireRepo() (*git.Repo, error) {
	if c.Repo == nil {
		return nil, gperrors.ErrNotARepository
	}
	return c.Repo, nil
}

// GitHubClient returns the GitHub client, creating it on first use
func (c *Context) GitHubClient(ctx context.Context) (github.Client, error) {
	if c.githubClient != nil {
		return c.githubClient, nil
	}
	repo, err := c.RequireRepo()
	if err != nil {
		return nil, err
	}
	factory := c.NewGitHubClient
	if factory == nil {
		factory = RESTGitHubClientFactory(c.Config)
	}
	client, err := factory(ctx, repo)
	if err != nil {
		return nil, err
	}
	c.githubClient = client
	return client, nil
}

// SetGitHubClient injects a client, mainly for tests
func (c *Context) SetGitHubClient(client github.Client) {
	c.githubClient = client
}

// Close releases the history store and log file
func (c *Context) Close() error {
	var errs []error
	if c.History != nil {
		errs = append(errs, c.History.Close())
	}
	if c.Splog != nil {
		errs = append(errs, c.Splog.Close())
	}
	return errors.Join(errs...)
}

// RESTGitHubClientFactory resolves a token and targets the origin remote's
// repository through the REST API.
func RESTGitHubClientFactory(cfg *config.Config) GitHubClientFactory {
	return func(ctx context.Context, repo *git.Repo) (github.Client, error) {
		remote, err := repo.Remote(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to determine GitHub repository: %w", err)
		}

		var configured string
		if cfg != nil {
			configured = cfg.Token()
		}
		token, err := github.ResolveToken(ctx, configured, github.GHCLIToken)
		if err != nil {
			return nil, fmt.Errorf("%w; set GITHUB_TOKEN, run `gitpilot config set github-token`, or `gh auth login`", err)
		}
		return github.NewRESTClient(ctx, remote.Hostname, token, remote.Owner, remote.Name)
	}
}

// Load builds the production context for the current working directory.
// A missing repository is not an error; commands that need one call RequireRepo.
func Load() (*Context, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	splog, err := tui.NewSplogWithConfig(os.Stdout, tui.GetLogFilePath())
	if err != nil {
		splog = tui.NewSplog()
		splog.Debug("file logging disabled: %v", err)
	}

	if err := config.LoadDotEnv(cwd); err != nil {
		splog.Warn("Ignoring .env: %v", err)
	}

	configPath, err := config.DefaultPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	repo, err := git.Open(cwd)
	if err != nil && !errors.Is(err, gperrors.ErrNotARepository) {
		return nil, err
	}

	var invokerOpts []ai.InvokerOption
	if dir := cfg.LogDir(); dir != "" {
		invokerOpts = append(invokerOpts, ai.WithLogDir(dir))
	}
	invoker := ai.NewCopilotInvoker(invokerOpts...)
	orch := ai.NewOrchestrator(invoker, splog, ai.DefaultLimits())

	ctx := NewContext(splog, repo, nil)
	ctx.Config = cfg
	ctx.ConfigPath = configPath
	ctx.Models = invoker
	ctx.Interactive = tui.IsTTY() && utils.IsInteractive()
	ctx.History = openHistory(cfg, repo, splog)

	var genOpts []ai.GeneratorOption
	if ctx.History != nil {
		genOpts = append(genOpts, ai.WithRecorder(ctx.History))
	}
	ctx.Drafter = ai.NewGenerator(orch, cfg.EffectiveModel(), genOpts...)

	return ctx, nil
}

// openHistory opens the history store; failures only disable recording
func openHistory(cfg *config.Config, repo *git.Repo, splog *tui.Splog) *history.Store {
	if !cfg.HistoryEnabled() {
		return nil
	}
	dir, err := history.DefaultDir()
	if err != nil {
		splog.Debug("history disabled: %v", err)
		return nil
	}

	opts := []history.Option{history.WithErrorHandler(func(err error) {
		splog.Debug("failed to record generation: %v", err)
	})}
	if repo != nil {
		opts = append(opts, history.WithRepo(repo.Root()))
	}

	store, err := history.Open(dir, opts...)
	if err != nil {
		splog.Debug("history disabled: %v", err)
		return nil
	}
	return store
}
