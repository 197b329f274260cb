package actions

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gitpilot.dev/gitpilot/internal/ai"
	"gitpilot.dev/gitpilot/internal/runtime"
	"gitpilot.dev/gitpilot/internal/tui"
	"gitpilot.dev/gitpilot/internal/utils"
)

// BranchOptions contains options for the branch command
type BranchOptions struct {
	Description string
	// Type is the branch prefix such as feature or fix
	Type string
	// Issue is included in the name; with no description its title is used
	Issue int
	// Checkout switches to the new branch
	Checkout bool
	// Yes accepts the suggested name without prompting
	Yes bool
}

// BranchAction suggests a branch name for the described work and creates it
func BranchAction(ctx context.Context, rt *runtime.Context, opts BranchOptions) error {
	splog := rt.Splog

	repo, err := rt.RequireRepo()
	if err != nil {
		return err
	}

	branchType := utils.FirstNonEmpty(opts.Type, ai.DefaultBranchType)

	issueNumber := ""
	if opts.Issue > 0 {
		issueNumber = strconv.Itoa(opts.Issue)
	}

	description := strings.TrimSpace(opts.Description)
	if description == "" && opts.Issue > 0 {
		client, err := rt.GitHubClient(ctx)
		if err != nil {
			return err
		}
		issue, err := client.GetIssue(ctx, opts.Issue)
		if err != nil {
			return err
		}
		description = issue.Title
	}
	if description == "" {
		return errors.New("describe the branch, e.g. `gitpilot branch add login page`, or pass --issue")
	}

	name := rt.Drafter.GenerateBranchName(ctx, description, branchType, issueNumber)

	if !opts.Yes && rt.Interactive {
		edited, err := rt.Prompter.Input("Branch name", name)
		if err != nil {
			return err
		}
		if edited = strings.TrimSpace(edited); edited != "" && edited != name {
			name = ai.SanitizeBranchName(edited, branchType, issueNumber)
		}
	}

	if repo.BranchExists(name) {
		return fmt.Errorf("branch %s already exists", name)
	}
	if err := repo.CreateBranch(ctx, name, opts.Checkout); err != nil {
		return err
	}

	if opts.Checkout {
		splog.Info("Created and checked out %s", tui.ColorCyan(name))
	} else {
		splog.Info("Created %s", tui.ColorCyan(name))
	}
	return nil
}
