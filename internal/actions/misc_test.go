package actions

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitpilot.dev/gitpilot/internal/ai"
	"gitpilot.dev/gitpilot/internal/config"
	"gitpilot.dev/gitpilot/internal/history"
)

type staticHelp struct {
	text string
	err  error
}

func (h staticHelp) Help(context.Context) (string, error) {
	return h.text, h.err
}

func TestModelsAction(t *testing.T) {
	t.Setenv(config.EnvModel, "")

	t.Run("discovered models mark the default", func(t *testing.T) {
		env := newTestEnv(t)
		env.rt.Models = staticHelp{text: `  --model <model>  Set the AI model (choices: "claude-sonnet-4.5", "gpt-4.1", "brand-new")`}

		require.NoError(t, ModelsAction(context.Background(), env.rt))

		out := env.out.String()
		assert.Contains(t, out, "* claude-sonnet-4.5")
		assert.Contains(t, out, "  gpt-4.1")
		assert.Contains(t, out, "brand-new")
		assert.Contains(t, out, "gitpilot config set model")
	})

	t.Run("configured model is marked", func(t *testing.T) {
		env := newTestEnv(t)
		env.rt.Models = staticHelp{err: errors.New("copilot not found")}
		require.NoError(t, env.rt.Config.Set(config.KeyModel, "gpt-4.1"))

		require.NoError(t, ModelsAction(context.Background(), env.rt))
		assert.Contains(t, env.out.String(), "* gpt-4.1")
	})

	t.Run("catalog without a help source", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, ModelsAction(context.Background(), env.rt))
		for _, m := range ai.Catalog() {
			assert.Contains(t, env.out.String(), m.ID)
		}
	})
}

func TestConfigActions(t *testing.T) {
	t.Parallel()

	t.Run("set then get", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		require.NoError(t, ConfigSetAction(env.rt, config.KeyCopilotLogDir, "/tmp/copilot-logs"))
		assert.Contains(t, env.out.String(), "Set copilot-log-dir to /tmp/copilot-logs")

		loaded, err := config.Load(env.rt.ConfigPath)
		require.NoError(t, err)
		assert.Equal(t, "/tmp/copilot-logs", loaded.LogDir())

		env.out.Reset()
		require.NoError(t, ConfigGetAction(env.rt, config.KeyCopilotLogDir))
		assert.Equal(t, "/tmp/copilot-logs\n", env.out.String())
	})

	t.Run("token is masked", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		require.NoError(t, ConfigSetAction(env.rt, config.KeyGitHubToken, "ghp_secretvalue1234"))
		assert.NotContains(t, env.out.String(), "secretvalue")
		assert.Contains(t, env.out.String(), "****1234")

		env.out.Reset()
		require.NoError(t, ConfigGetAction(env.rt, config.KeyGitHubToken))
		assert.Equal(t, "****1234\n", env.out.String())
	})

	t.Run("empty value clears", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		require.NoError(t, ConfigSetAction(env.rt, config.KeyCopilotLogDir, "/tmp/logs"))
		require.NoError(t, ConfigSetAction(env.rt, config.KeyCopilotLogDir, ""))
		assert.Contains(t, env.out.String(), "Cleared copilot-log-dir")
		assert.Empty(t, env.rt.Config.LogDir())
	})

	t.Run("get all", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		require.NoError(t, ConfigGetAction(env.rt, ""))

		lines := strings.Split(strings.TrimSpace(env.out.String()), "\n")
		require.Len(t, lines, len(config.Keys()))
		assert.Contains(t, env.out.String(), "history = true")
		assert.Contains(t, env.out.String(), "model = (not set)")
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		require.ErrorIs(t, ConfigSetAction(env.rt, "colour", "blue"), config.ErrUnknownKey)
		require.ErrorIs(t, ConfigGetAction(env.rt, "colour"), config.ErrUnknownKey)
	})
}

func TestHistoryAction(t *testing.T) {
	t.Parallel()

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		require.NoError(t, HistoryAction(context.Background(), env.rt, 0))
		assert.Contains(t, env.out.String(), "History is disabled")
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		store, err := history.Open(t.TempDir())
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close() })
		env.rt.History = store

		require.NoError(t, HistoryAction(context.Background(), env.rt, 0))
		assert.Contains(t, env.out.String(), "No generations recorded yet.")
	})

	t.Run("entries and totals", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		store, err := history.Open(t.TempDir())
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close() })
		env.rt.History = store

		ctx := context.Background()
		base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		_, err = store.Record(ctx, history.Entry{Kind: ai.KindCommit, Source: ai.SourceAI, Model: "gpt-4.1", Retried: true, CreatedAt: base})
		require.NoError(t, err)
		_, err = store.Record(ctx, history.Entry{
			Kind: ai.KindPR, Source: ai.SourceFallback, Model: "claude-sonnet-4.5",
			FailureKind: "timeout", Reason: "generation timed out", CreatedAt: base.Add(time.Minute),
		})
		require.NoError(t, err)

		require.NoError(t, HistoryAction(ctx, env.rt, 10))

		out := env.out.String()
		lines := strings.Split(out, "\n")
		assert.Contains(t, lines[0], "claude-sonnet-4.5")
		assert.Contains(t, lines[0], "generation timed out")
		assert.Contains(t, lines[1], "gpt-4.1 (retried)")
		assert.Contains(t, out, "2 runs: 1 generated, 1 fallback, 1 retried")
		assert.Contains(t, out, "Failures: timeout 1")
	})
}
