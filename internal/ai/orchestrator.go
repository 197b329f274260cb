package ai

import (
	"context"
)

// Result is the terminal state of one orchestrated generation
type Result struct {
	Output  string
	Model   string
	Retried bool
	Failure *Failure
}

// OK reports whether generation produced output
func (r Result) OK() bool {
	return r.Failure == nil
}

// Orchestrator applies the quota-retry policy around an Invoker.
type Orchestrator struct {
	invoker  Invoker
	notifier Notifier
	limits   Limits
}

// NewOrchestrator creates an Orchestrator. A nil notifier discards notices.
func NewOrchestrator(invoker Invoker, notifier Notifier, limits Limits) *Orchestrator {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Orchestrator{invoker: invoker, notifier: notifier, limits: limits.withDefaults()}
}

// Execute runs prompt with model. A quota failure on a metered model is
// retried exactly once with the free-tier fallback; any other failure, or
// any failure of the retry, is terminal.
func (o *Orchestrator) Execute(ctx context.Context, prompt, model string) Result {
	primary := o.call(ctx, prompt, model)
	if primary.OK() {
		return Result{Output: primary.Stdout, Model: model}
	}

	if primary.Failure.Kind != FailureQuotaExceeded || IsFreeTier(model) {
		return Result{Model: model, Failure: primary.Failure}
	}

	fallback := FreeTierFallbackID()
	o.notifier.QuotaRetry(Describe(model).ID, fallback)

	retry := o.call(ctx, prompt, fallback)
	if !retry.OK() {
		return Result{Model: fallback, Retried: true, Failure: retry.Failure}
	}

	o.notifier.SuggestDefaultModel(fallback)
	return Result{Output: retry.Stdout, Model: fallback, Retried: true}
}

func (o *Orchestrator) call(ctx context.Context, prompt, model string) Outcome {
	o.notifier.BeforeCall(Describe(model))
	return o.invoker.Run(ctx, Request{Prompt: prompt, Model: model}, o.limits)
}
