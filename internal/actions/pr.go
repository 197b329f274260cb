package actions

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gitpilot.dev/gitpilot/internal/ai"
	gperrors "gitpilot.dev/gitpilot/internal/errors"
	"gitpilot.dev/gitpilot/internal/github"
	"gitpilot.dev/gitpilot/internal/runtime"
	"gitpilot.dev/gitpilot/internal/tui"
	"gitpilot.dev/gitpilot/internal/utils"
)

// ErrAborted is returned when the user declines to continue
var ErrAborted = errors.New("aborted")

var (
	openEditor  = tui.OpenEditor
	openBrowser = utils.OpenBrowser
)

// PROptions contains options for the pr command
type PROptions struct {
	// Base is the branch to merge into; defaults to the repository's default branch
	Base string
	// Issue links an issue whose title and body inform the draft
	Issue int
	Draft bool
	// DryRun prints the draft without pushing or creating anything
	DryRun bool
	// Yes creates the pull request without confirmation
	Yes bool
	// Web opens the created pull request in the browser
	Web bool
}

const (
	prCreateOption    = "Create pull request"
	prEditTitleOption = "Edit title"
	prEditBodyOption  = "Edit description"
	prCancelOption    = "Cancel"
)

// PRAction drafts a pull request for the current branch and opens it
func PRAction(ctx context.Context, rt *runtime.Context, opts PROptions) error {
	splog := rt.Splog

	repo, err := rt.RequireRepo()
	if err != nil {
		return err
	}

	head, err := repo.CurrentBranch()
	if err != nil {
		return err
	}
	base := utils.FirstNonEmpty(opts.Base, repo.DefaultBranch())
	if !utils.IsValidRefName(base) {
		return fmt.Errorf("invalid base branch %q", base)
	}
	if head == base {
		return fmt.Errorf("current branch %s is the base branch; check out a feature branch first", head)
	}

	commits, err := repo.CommitsBetween(base, head)
	if err != nil {
		return err
	}
	if len(commits) == 0 {
		return fmt.Errorf("no commits between %s and %s", base, head)
	}
	splog.Debug("Found %d commits between %s and %s", len(commits), base, head)

	var client github.Client
	if !opts.DryRun || opts.Issue > 0 {
		client, err = rt.GitHubClient(ctx)
		if err != nil {
			return err
		}
	}

	issueContext, err := loadIssueContext(ctx, rt, client, opts)
	if err != nil {
		return err
	}

	draft := rt.Drafter.GeneratePRDescription(ctx, commits, issueContext)
	if issueContext != "" {
		draft.Body = withClosingReference(draft.Body, opts.Issue)
	}

	splog.Page(tui.RenderDraft(draft) + "\n")
	if opts.DryRun {
		return nil
	}

	draft, err = reviewDraft(rt, draft, opts.Yes)
	if err != nil {
		return err
	}

	if err := repo.Push(ctx, head); err != nil {
		return err
	}

	pr, err := client.CreatePullRequest(ctx, github.CreatePROptions{
		Title: draft.Title,
		Body:  draft.Body,
		Head:  head,
		Base:  base,
		Draft: opts.Draft,
	})
	if err != nil {
		return fmt.Errorf("pushed %s but could not open the pull request: %w", head, err)
	}

	splog.Info("Created pull request #%d: %s", pr.Number, tui.ColorCyan(pr.HTMLURL))
	if opts.Web && pr.HTMLURL != "" {
		if err := openBrowser(pr.HTMLURL); err != nil {
			splog.Warn("Could not open browser: %v", err)
		}
	}
	return nil
}

// loadIssueContext fetches the linked issue. When it does not exist the
// user may continue without it.
func loadIssueContext(ctx context.Context, rt *runtime.Context, client github.Client, opts PROptions) (string, error) {
	if opts.Issue <= 0 {
		return "", nil
	}
	issue, err := client.GetIssue(ctx, opts.Issue)
	if errors.Is(err, gperrors.ErrIssueNotFound) {
		if rt.Interactive && !opts.Yes {
			ok, err := rt.Prompter.Confirm(fmt.Sprintf("Issue #%d not found. Continue without it?", opts.Issue), true)
			if err != nil {
				return "", err
			}
			if !ok {
				return "", ErrAborted
			}
		} else {
			rt.Splog.Warn("Issue #%d not found, drafting without it", opts.Issue)
		}
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return issue.Context(), nil
}

// withClosingReference appends "Closes #N" unless the body already links the issue
func withClosingReference(body string, issue int) string {
	if issue <= 0 {
		return body
	}
	ref := regexp.MustCompile(`#` + strconv.Itoa(issue) + `\b`)
	if ref.MatchString(body) {
		return body
	}
	return strings.TrimRight(body, "\n") + fmt.Sprintf("\n\nCloses #%d", issue)
}

// reviewDraft lets the user edit the draft until they create or cancel
func reviewDraft(rt *runtime.Context, draft ai.PRDraft, yes bool) (ai.PRDraft, error) {
	if yes {
		return draft, nil
	}
	if !rt.Interactive {
		return draft, fmt.Errorf("refusing to create a pull request without confirmation; pass --yes or --dry-run")
	}

	options := []string{prCreateOption, prEditTitleOption, prEditBodyOption, prCancelOption}
	for {
		idx, err := rt.Prompter.Select("Create this pull request?", options, 0)
		if err != nil {
			return draft, err
		}

		switch options[idx] {
		case prCreateOption:
			return draft, nil
		case prEditTitleOption:
			title, err := rt.Prompter.Input("Title", draft.Title)
			if err != nil {
				return draft, err
			}
			if title = strings.TrimSpace(title); title != "" {
				draft.Title = title
			}
		case prEditBodyOption:
			body, err := openEditor(draft.Body, "gitpilot-pr-*.md")
			if err != nil {
				return draft, err
			}
			draft.Body = strings.TrimSpace(body)
		default:
			return draft, ErrAborted
		}
		rt.Splog.Page(tui.RenderDraft(draft) + "\n")
	}
}
