package tui

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitpilot.dev/gitpilot/internal/ai"
)

func newTestSplog(t *testing.T) (*Splog, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	splog, err := NewSplogWithConfig(&buf, "")
	require.NoError(t, err)
	return splog, &buf
}

func TestSplog(t *testing.T) {
	t.Run("prefixes warnings errors and tips", func(t *testing.T) {
		splog, buf := newTestSplog(t)

		splog.Info("hello %s", "world")
		splog.Warn("careful")
		splog.Error("broken")
		splog.Tip("try this")

		assert.Equal(t, "hello world\n⚠️  careful\n❌ broken\n💡 try this\n", buf.String())
	})

	t.Run("quiet suppresses console output", func(t *testing.T) {
		splog, buf := newTestSplog(t)

		splog.SetQuiet(true)
		assert.True(t, splog.IsQuiet())
		splog.Info("hidden")
		splog.SetQuiet(false)
		splog.Info("shown")

		assert.Equal(t, "shown\n", buf.String())
	})

	t.Run("messages without args are not formatted", func(t *testing.T) {
		splog, buf := newTestSplog(t)
		splog.Info("100%")
		assert.Equal(t, "100%\n", buf.String())
	})

	t.Run("page writes raw content", func(t *testing.T) {
		splog, buf := newTestSplog(t)
		splog.Page("draft")
		splog.Newline()
		assert.Equal(t, "draft\n", buf.String())
	})
}

func TestSplog_DebugRequiresEnv(t *testing.T) {
	t.Setenv("DEBUG", "")
	splog, buf := newTestSplog(t)
	splog.Debug("hidden")
	assert.Empty(t, buf.String())

	t.Setenv("DEBUG", "1")
	splog, buf = newTestSplog(t)
	splog.Debug("visible")
	assert.Equal(t, "visible\n", buf.String())
}

func TestSplog_LogFile(t *testing.T) {
	t.Parallel()
	logPath := filepath.Join(t.TempDir(), "logs", "gitpilot.log")

	var buf bytes.Buffer
	splog, err := NewSplogWithConfig(&buf, logPath)
	require.NoError(t, err)

	splog.SetQuiet(true)
	splog.Warn("written to file only")
	require.NoError(t, splog.Close())

	assert.Empty(t, buf.String())
	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file only")
	assert.Contains(t, string(data), "level=WARN")
}

func TestEnvInt(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		allowZero bool
		want      int
	}{
		{name: "unset", value: "", want: 7},
		{name: "valid", value: "3", want: 3},
		{name: "invalid", value: "abc", want: 7},
		{name: "negative", value: "-1", want: 7},
		{name: "zero disallowed", value: "0", want: 7},
		{name: "zero allowed", value: "0", allowZero: true, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GITPILOT_TEST_INT", tt.value)
			assert.Equal(t, tt.want, envInt("GITPILOT_TEST_INT", 7, tt.allowZero))
		})
	}
}

func TestSplog_Notifier(t *testing.T) {
	t.Setenv("DEBUG", "")

	t.Run("quota retry and suggestion", func(t *testing.T) {
		splog, buf := newTestSplog(t)

		splog.QuotaRetry("claude-sonnet-4.5", "gpt-4.1")
		splog.SuggestDefaultModel("gpt-4.1")

		out := buf.String()
		assert.Contains(t, out, "claude-sonnet-4.5 hit its quota, retrying with gpt-4.1")
		assert.Contains(t, out, "gitpilot config set model gpt-4.1")
	})

	t.Run("fallback on failure warns", func(t *testing.T) {
		splog, buf := newTestSplog(t)
		splog.FallbackUsed(ai.KindPR, "timeout")
		assert.Equal(t, "⚠️  Generation failed (timeout), using a fallback PR description\n", buf.String())
	})

	t.Run("fallback on empty input is quiet", func(t *testing.T) {
		splog, buf := newTestSplog(t)
		splog.FallbackUsed(ai.KindCommit, ai.ReasonEmptyDiff)
		assert.Empty(t, buf.String())
	})

	t.Run("before call prints the notice", func(t *testing.T) {
		splog, buf := newTestSplog(t)
		splog.BeforeCall(ai.Describe("gpt-4.1"))
		assert.Contains(t, buf.String(), "Using gpt-4.1 (free tier, no premium requests)")
	})
}
