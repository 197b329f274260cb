package ai

import (
	"context"
	"fmt"
	"strings"
)

// OutputKind names what is being generated
type OutputKind string

const (
	KindCommit OutputKind = "commit"
	KindPR     OutputKind = "pr"
	KindBranch OutputKind = "branch"
)

// Source records where a result came from
type Source string

const (
	SourceAI       Source = "ai"
	SourceFallback Source = "fallback"
)

// Fallback reasons for empty input. No tool call is made for these.
const (
	ReasonEmptyDiff        = "empty diff"
	ReasonNoCommits        = "no commits"
	ReasonEmptyDescription = "empty description"
)

// EmptyInput reports whether a fallback reason means there was nothing to
// generate from, as opposed to a failed generation.
func EmptyInput(reason string) bool {
	switch reason {
	case ReasonEmptyDiff, ReasonNoCommits, ReasonEmptyDescription:
		return true
	}
	return false
}

// Report describes how one generation was produced
type Report struct {
	Kind        OutputKind
	Source      Source
	Model       string
	Retried     bool
	FailureKind string
	Status      ParseStatus
	Reason      string
}

// Recorder receives a Report after every generation.
// Implementations must not block for long; errors are theirs to handle.
type Recorder interface {
	RecordGeneration(ctx context.Context, report Report)
}

// Drafter is the public generation surface used by the CLI and the MCP server
type Drafter interface {
	GenerateCommitMessages(ctx context.Context, diff string) []string
	GeneratePRDescription(ctx context.Context, commits []Commit, issueContext string) PRDraft
	GenerateBranchName(ctx context.Context, description, branchType, issueNumber string) string
}

// Generator produces commit messages, PR descriptions and branch names.
// None of its methods fail: generation problems resolve to a fallback.
type Generator struct {
	orch     *Orchestrator
	model    string
	recorder Recorder
}

var _ Drafter = (*Generator)(nil)

// GeneratorOption configures a Generator
type GeneratorOption func(*Generator)

// WithRecorder reports every generation to r
func WithRecorder(r Recorder) GeneratorOption {
	return func(g *Generator) {
		g.recorder = r
	}
}

// NewGenerator creates a Generator that calls model through orch
func NewGenerator(orch *Orchestrator, model string, opts ...GeneratorOption) *Generator {
	g := &Generator{orch: orch, model: model}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Model returns the configured model id
func (g *Generator) Model() string {
	return g.model
}

// GenerateCommitMessages returns one to three commit messages for diff
func (g *Generator) GenerateCommitMessages(ctx context.Context, diff string) (messages []string) {
	report := &Report{Kind: KindCommit, Model: g.model}
	defer func() {
		if r := recover(); r != nil {
			messages = FallbackCommitMessages(diff)
			report.fallback(fmt.Sprintf("recovered from panic: %v", r))
		}
		g.finish(ctx, report)
	}()

	if strings.TrimSpace(diff) == "" {
		report.fallback(ReasonEmptyDiff)
		return FallbackCommitMessages(diff)
	}

	result := g.orch.Execute(ctx, BuildCommitMessagePrompt(diff), g.model)
	report.observe(result)
	if !result.OK() {
		report.fallback(result.Failure.Error())
		return FallbackCommitMessages(diff)
	}

	parsed := ParseCommitMessages(result.Output)
	report.Status = parsed.Status
	if parsed.Status != Parsed {
		report.fallback("no commit messages found in response")
		return FallbackCommitMessages(diff)
	}

	report.Source = SourceAI
	return parsed.Messages
}

// GeneratePRDescription returns a title and body for commits
func (g *Generator) GeneratePRDescription(ctx context.Context, commits []Commit, issueContext string) (draft PRDraft) {
	report := &Report{Kind: KindPR, Model: g.model}
	defer func() {
		if r := recover(); r != nil {
			draft = FallbackPRDescription(commits, issueContext)
			report.fallback(fmt.Sprintf("recovered from panic: %v", r))
		}
		g.finish(ctx, report)
	}()

	if len(commits) == 0 {
		report.fallback(ReasonNoCommits)
		return FallbackPRDescription(commits, issueContext)
	}

	result := g.orch.Execute(ctx, BuildPRPrompt(commits, issueContext), g.model)
	report.observe(result)
	if !result.OK() {
		report.fallback(result.Failure.Error())
		return FallbackPRDescription(commits, issueContext)
	}

	parsed := ParsePRResponse(result.Output)
	report.Status = parsed.Status
	if parsed.Status != Parsed {
		report.fallback(fmt.Sprintf("%s response", parsed.Status))
		return FallbackPRDescription(commits, issueContext)
	}

	report.Source = SourceAI
	return parsed.Draft
}

// GenerateBranchName returns a branch name for description
func (g *Generator) GenerateBranchName(ctx context.Context, description, branchType, issueNumber string) (name string) {
	report := &Report{Kind: KindBranch, Model: g.model}
	defer func() {
		if r := recover(); r != nil {
			name = FallbackBranchName(description, branchType, issueNumber)
			report.fallback(fmt.Sprintf("recovered from panic: %v", r))
		}
		g.finish(ctx, report)
	}()

	if strings.TrimSpace(description) == "" {
		report.fallback(ReasonEmptyDescription)
		return FallbackBranchName(description, branchType, issueNumber)
	}

	result := g.orch.Execute(ctx, BuildBranchNamePrompt(description, branchType, issueNumber), g.model)
	report.observe(result)
	if !result.OK() {
		report.fallback(result.Failure.Error())
		return FallbackBranchName(description, branchType, issueNumber)
	}

	parsed := ParseBranchName(result.Output, branchType, issueNumber)
	report.Status = parsed.Status
	if parsed.Status != Parsed {
		report.fallback("no branch name found in response")
		return FallbackBranchName(description, branchType, issueNumber)
	}

	report.Source = SourceAI
	return parsed.Name
}

func (r *Report) observe(result Result) {
	r.Model = result.Model
	r.Retried = result.Retried
	if result.Failure != nil {
		r.FailureKind = result.Failure.Kind.String()
	}
}

func (r *Report) fallback(reason string) {
	r.Source = SourceFallback
	r.Reason = reason
}

// finish emits advisory notices; a misbehaving notifier or recorder is ignored
func (g *Generator) finish(ctx context.Context, report *Report) {
	defer func() {
		_ = recover()
	}()

	if report.Source == SourceFallback {
		g.orch.notifier.FallbackUsed(report.Kind, report.Reason)
	}
	if g.recorder != nil {
		g.recorder.RecordGeneration(ctx, *report)
	}
}
