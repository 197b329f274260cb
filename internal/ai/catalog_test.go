package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeHelp struct {
	text    string
	err     error
	explode bool
}

func (f fakeHelp) Help(context.Context) (string, error) {
	if f.explode {
		panic("boom")
	}
	return f.text, f.err
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	t.Run("known model", func(t *testing.T) {
		t.Parallel()
		d := Describe("gpt-4.1")
		require.Equal(t, TierFree, d.Tier)
		require.NotNil(t, d.CostMultiplier)
		require.Equal(t, 0.0, *d.CostMultiplier)
		require.Equal(t, "free", d.CostLabel())
	})

	t.Run("unknown model gets tier New", func(t *testing.T) {
		t.Parallel()
		d := Describe("some-future-model")
		require.Equal(t, "some-future-model", d.ID)
		require.Equal(t, TierNew, d.Tier)
		require.Nil(t, d.CostMultiplier)
		require.Equal(t, "unknown cost", d.CostLabel())
	})

	t.Run("empty id describes the default", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, DefaultModel, Describe("").ID)
	})

	t.Run("cost label", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "1x", Describe("gpt-5").CostLabel())
		require.Equal(t, "0.33x", Describe("claude-haiku-4.5").CostLabel())
		require.Equal(t, "10x", Describe("claude-opus-4.1").CostLabel())
	})
}

func TestIsFreeTier(t *testing.T) {
	t.Parallel()

	require.True(t, IsFreeTier("gpt-4.1"))
	require.True(t, IsFreeTier("gpt-5-mini"))
	require.True(t, IsFreeTier("gpt-4o"))
	require.False(t, IsFreeTier("claude-sonnet-4.5"))
	require.False(t, IsFreeTier(""))
	require.True(t, IsFreeTier(FreeTierFallbackID()))
	require.Equal(t, "gpt-4.1", FreeTierFallbackID())
}

func TestNotice(t *testing.T) {
	t.Parallel()

	require.Contains(t, Notice(Describe("gpt-4.1")), "free tier")
	require.Contains(t, Notice(Describe("claude-opus-4.1")), "10x")
	require.Contains(t, Notice(Describe("mystery")), "cost unknown")
}

func TestParseModelChoices(t *testing.T) {
	t.Parallel()

	help := `Usage: copilot [options]

Options:
  --model <model>       Set the AI model to use (choices: "claude-sonnet-4.5",
                        "gpt-5", "gpt-5", "brand-new-model")
  -s, --silent          Only output the agent response
`
	require.Equal(t, []string{"claude-sonnet-4.5", "gpt-5", "brand-new-model"}, ParseModelChoices(help))
	require.Nil(t, ParseModelChoices("Usage: copilot [options]"))
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	fallbackIDs := func(models []ModelDescriptor) []string {
		ids := make([]string, 0, len(models))
		for _, m := range models {
			ids = append(ids, m.ID)
		}
		return ids
	}

	tests := []struct {
		name     string
		src      HelpSource
		expected []string
	}{
		{
			name:     "parses choices",
			src:      fakeHelp{text: `--model <model> pick one (choices: "gpt-4o", "x-1")`},
			expected: []string{"gpt-4o", "x-1"},
		},
		{
			name:     "tool error falls back",
			src:      fakeHelp{err: errors.New("not found")},
			expected: []string{"claude-sonnet-4.5", "gpt-5", "gpt-4.1"},
		},
		{
			name:     "unparsable help falls back",
			src:      fakeHelp{text: "nothing useful"},
			expected: []string{"claude-sonnet-4.5", "gpt-5", "gpt-4.1"},
		},
		{
			name:     "empty choices falls back",
			src:      fakeHelp{text: `--model <model> (choices: )`},
			expected: []string{"claude-sonnet-4.5", "gpt-5", "gpt-4.1"},
		},
		{
			name:     "panic falls back",
			src:      fakeHelp{explode: true},
			expected: []string{"claude-sonnet-4.5", "gpt-5", "gpt-4.1"},
		},
		{
			name:     "nil source falls back",
			src:      nil,
			expected: []string{"claude-sonnet-4.5", "gpt-5", "gpt-4.1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			models := Discover(context.Background(), tt.src)
			require.NotEmpty(t, models)
			require.Equal(t, tt.expected, fallbackIDs(models))
		})
	}

	models := Discover(context.Background(), fakeHelp{text: `--model <model> (choices: "x-1")`})
	require.Equal(t, TierNew, models[0].Tier)
}
