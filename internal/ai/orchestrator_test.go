package ai

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// recordingNotifier captures notices for assertions
type recordingNotifier struct {
	mu          sync.Mutex
	before      []string
	retries     [][2]string
	suggestions []string
	fallbacks   []OutputKind
}

func (r *recordingNotifier) BeforeCall(d ModelDescriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.before = append(r.before, d.ID)
}

func (r *recordingNotifier) QuotaRetry(from, to string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.retries = append(r.retries, [2]string{from, to})
}

func (r *recordingNotifier) SuggestDefaultModel(model string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.suggestions = append(r.suggestions, model)
}

func (r *recordingNotifier) FallbackUsed(kind OutputKind, _ string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallbacks = append(r.fallbacks, kind)
}

func quotaFailure() Outcome {
	return Failed(FailureQuotaExceeded, "you have exceeded your premium request allowance")
}

func TestOrchestrator_RetryPolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		model          string
		outcomes       []Outcome
		expectedCalls  []string
		ok             bool
		retried        bool
		suggestions    int
		expectedOutput string
	}{
		{
			name:           "success on primary",
			model:          "claude-sonnet-4.5",
			outcomes:       []Outcome{Succeeded("out")},
			expectedCalls:  []string{"claude-sonnet-4.5"},
			ok:             true,
			expectedOutput: "out",
		},
		{
			name:          "quota on metered model retries exactly once and fails",
			model:         "claude-sonnet-4.5",
			outcomes:      []Outcome{quotaFailure()},
			expectedCalls: []string{"claude-sonnet-4.5", "gpt-4.1"},
			retried:       true,
		},
		{
			name:           "quota on metered model then free succeeds",
			model:          "claude-opus-4.1",
			outcomes:       []Outcome{quotaFailure(), Succeeded("from free")},
			expectedCalls:  []string{"claude-opus-4.1", "gpt-4.1"},
			ok:             true,
			retried:        true,
			suggestions:    1,
			expectedOutput: "from free",
		},
		{
			name:          "retry failure of another kind is terminal",
			model:         "gpt-5",
			outcomes:      []Outcome{quotaFailure(), Failed(FailureTimeout, "slow")},
			expectedCalls: []string{"gpt-5", "gpt-4.1"},
			retried:       true,
		},
		{
			name:          "free model never retries",
			model:         "gpt-4.1",
			outcomes:      []Outcome{quotaFailure()},
			expectedCalls: []string{"gpt-4.1"},
		},
		{
			name:          "other free model never retries",
			model:         "gpt-5-mini",
			outcomes:      []Outcome{Failed(FailureGeneric, "boom")},
			expectedCalls: []string{"gpt-5-mini"},
		},
		{
			name:          "generic failure never retries",
			model:         "claude-sonnet-4.5",
			outcomes:      []Outcome{Failed(FailureGeneric, "boom")},
			expectedCalls: []string{"claude-sonnet-4.5"},
		},
		{
			name:          "auth failure never retries",
			model:         "claude-sonnet-4.5",
			outcomes:      []Outcome{Failed(FailureAuth, "401")},
			expectedCalls: []string{"claude-sonnet-4.5"},
		},
		{
			name:          "timeout never retries",
			model:         "claude-sonnet-4.5",
			outcomes:      []Outcome{Failed(FailureTimeout, "slow")},
			expectedCalls: []string{"claude-sonnet-4.5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			inv := NewMockInvoker(tt.outcomes...)
			notifier := &recordingNotifier{}
			orch := NewOrchestrator(inv, notifier, DefaultLimits())

			result := orch.Execute(context.Background(), "prompt", tt.model)

			require.Equal(t, len(tt.expectedCalls), inv.CallCount())
			require.Equal(t, tt.expectedCalls, inv.Models())
			require.Equal(t, tt.expectedCalls, notifier.before)
			require.Equal(t, tt.ok, result.OK())
			require.Equal(t, tt.retried, result.Retried)
			require.Len(t, notifier.suggestions, tt.suggestions)
			require.Equal(t, tt.expectedOutput, result.Output)
			if tt.retried {
				require.Equal(t, [][2]string{{tt.model, FreeTierFallbackID()}}, notifier.retries)
				require.Equal(t, FreeTierFallbackID(), result.Model)
			} else {
				require.Empty(t, notifier.retries)
				require.Equal(t, tt.model, result.Model)
			}
		})
	}
}

func TestOrchestrator_PromptPassedThrough(t *testing.T) {
	t.Parallel()

	inv := NewMockInvoker(Succeeded("ok"))
	orch := NewOrchestrator(inv, nil, Limits{})

	orch.Execute(context.Background(), "the prompt", "gpt-5")

	calls := inv.Calls()
	require.Len(t, calls, 1)
	require.Equal(t, Request{Prompt: "the prompt", Model: "gpt-5"}, calls[0])
}
