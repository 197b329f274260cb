package tui

import (
	"gitpilot.dev/gitpilot/internal/ai"
)

// BeforeCall announces the model about to be used
func (s *Splog) BeforeCall(model ai.ModelDescriptor) {
	s.Info("%s", ColorDim(ai.Notice(model)))
}

// QuotaRetry reports the switch to the free-tier model
func (s *Splog) QuotaRetry(from, to string) {
	s.Warn("%s hit its quota, retrying with %s", from, to)
}

// SuggestDefaultModel points at the config key after a successful retry
func (s *Splog) SuggestDefaultModel(model string) {
	s.Tip("To skip the retry next time, run: gitpilot config set model %s", model)
}

// FallbackUsed reports that a deterministic draft replaced generation. Empty
// input is expected and only logged at debug level.
func (s *Splog) FallbackUsed(kind ai.OutputKind, reason string) {
	if ai.EmptyInput(reason) {
		s.Debug("using fallback %s: %s", kind, reason)
		return
	}
	s.Warn("Generation failed (%s), using a fallback %s", reason, kindLabel(kind))
}

func kindLabel(kind ai.OutputKind) string {
	switch kind {
	case ai.KindCommit:
		return "commit message"
	case ai.KindPR:
		return "PR description"
	case ai.KindBranch:
		return "branch name"
	default:
		return string(kind)
	}
}

var _ ai.Notifier = (*Splog)(nil)
