package actions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitpilot.dev/gitpilot/internal/ai"
	gperrors "gitpilot.dev/gitpilot/internal/errors"
	"gitpilot.dev/gitpilot/internal/github"
)

func TestBranchAction(t *testing.T) {
	t.Parallel()

	t.Run("creates the suggested branch", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, ai.Succeeded("add-login-page"))

		require.NoError(t, BranchAction(context.Background(), env.rt, BranchOptions{Description: "Add a login page", Yes: true}))

		assert.True(t, env.repo.BranchExists("feature/add-login-page"))
		assert.Equal(t, "main", env.git(t, "rev-parse", "--abbrev-ref", "HEAD"))
		assert.Contains(t, env.out.String(), "Created feature/add-login-page")
	})

	t.Run("checks out with type and issue", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, ai.Succeeded("fix/12-null-session"))

		opts := BranchOptions{Description: "null session on logout", Type: "fix", Issue: 12, Checkout: true, Yes: true}
		require.NoError(t, BranchAction(context.Background(), env.rt, opts))

		assert.Equal(t, "fix/12-null-session", env.git(t, "rev-parse", "--abbrev-ref", "HEAD"))
		assert.Contains(t, env.invoker.Calls()[0].Prompt, "#12")
	})

	t.Run("uses the issue title without a description", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, ai.Failed(ai.FailureQuotaExceeded, "quota exceeded"))
		env.github.AddIssue(github.Issue{Number: 42, Title: "Login fails on Safari"})

		require.NoError(t, BranchAction(context.Background(), env.rt, BranchOptions{Issue: 42, Yes: true}))

		assert.True(t, env.repo.BranchExists("feature/42-login-fails-on-safari"))
	})

	t.Run("missing issue without description", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		err := BranchAction(context.Background(), env.rt, BranchOptions{Issue: 9, Yes: true})
		require.ErrorIs(t, err, gperrors.ErrIssueNotFound)
	})

	t.Run("user edits the name", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, ai.Succeeded("add-login-page")).interactive()
		env.prompter.QueueInput("feature/Sign In Page")

		require.NoError(t, BranchAction(context.Background(), env.rt, BranchOptions{Description: "Add a login page"}))

		assert.True(t, env.repo.BranchExists("feature/sign-in-page"))
		assert.Equal(t, []string{"Branch name"}, env.prompter.Asked())
	})

	t.Run("existing branch", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, ai.Succeeded("add-login-page"))
		env.git(t, "branch", "feature/add-login-page")

		err := BranchAction(context.Background(), env.rt, BranchOptions{Description: "Add a login page", Yes: true})
		require.ErrorContains(t, err, "already exists")
	})

	t.Run("requires a description", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		err := BranchAction(context.Background(), env.rt, BranchOptions{Description: "   ", Yes: true})
		require.ErrorContains(t, err, "describe the branch")
		assert.Zero(t, env.invoker.CallCount())
	})
}
