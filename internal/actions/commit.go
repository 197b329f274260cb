package actions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gperrors "gitpilot.dev/gitpilot/internal/errors"
	"gitpilot.dev/gitpilot/internal/runtime"
	"gitpilot.dev/gitpilot/internal/tui"
	"gitpilot.dev/gitpilot/internal/utils"
)

// writeOwnOption is appended to the suggestions offered for a commit
const writeOwnOption = "Write my own message"

// CommitOptions contains options for the commit command
type CommitOptions struct {
	// All stages every change, including untracked files, first
	All bool
	// Push pushes the current branch after committing
	Push bool
	// Yes accepts the first suggestion without prompting
	Yes bool
	// Diff, when set, is drafted from instead of the staged changes and
	// nothing is committed
	Diff string
}

// CommitAction drafts a commit message for the staged changes and commits them
func CommitAction(ctx context.Context, rt *runtime.Context, opts CommitOptions) error {
	splog := rt.Splog

	if opts.Diff != "" {
		for _, msg := range rt.Drafter.GenerateCommitMessages(ctx, opts.Diff) {
			splog.Page(msg + "\n")
		}
		return nil
	}

	repo, err := rt.RequireRepo()
	if err != nil {
		return err
	}

	if opts.All {
		if err := repo.StageAll(ctx); err != nil {
			return err
		}
	}

	staged, err := repo.HasStagedChanges(ctx)
	if err != nil {
		return err
	}
	if !staged {
		splog.Tip("Stage changes with `git add`, or pass --all to stage everything.")
		return gperrors.ErrNoStagedChanges
	}

	diff, err := repo.StagedDiff(ctx)
	if err != nil {
		return err
	}
	if strings.TrimSpace(diff) == "" {
		return gperrors.ErrNoStagedChanges
	}

	suggestions := rt.Drafter.GenerateCommitMessages(ctx, diff)
	message, err := chooseCommitMessage(rt, suggestions, opts.Yes)
	if err != nil {
		return err
	}

	if err := repo.Commit(ctx, message); err != nil {
		return err
	}
	splog.Info("Committed: %s", tui.ColorGreen(utils.Subject(message)))

	if !opts.Push {
		return nil
	}
	branch, err := repo.CurrentBranch()
	if err != nil {
		return err
	}
	if err := repo.Push(ctx, branch); err != nil {
		return err
	}
	splog.Info("Pushed %s", tui.ColorCyan(branch))
	return nil
}

// chooseCommitMessage lets the user pick a suggestion or write their own.
// Without a prompt the first suggestion wins.
func chooseCommitMessage(rt *runtime.Context, suggestions []string, yes bool) (string, error) {
	if len(suggestions) == 0 {
		return "", fmt.Errorf("no commit message suggestions")
	}
	if yes || !rt.Interactive {
		return suggestions[0], nil
	}

	options := make([]string, 0, len(suggestions)+1)
	for _, s := range suggestions {
		options = append(options, utils.Subject(s))
	}
	options = append(options, writeOwnOption)

	idx, err := rt.Prompter.Select("Choose a commit message", options, 0)
	if err != nil {
		return "", err
	}
	if idx < len(suggestions) {
		return suggestions[idx], nil
	}

	message, err := rt.Prompter.Input("Commit message", suggestions[0])
	if err != nil {
		return "", err
	}
	if message = strings.TrimSpace(message); message == "" {
		return "", errors.New("empty commit message, aborting")
	}
	return message, nil
}
