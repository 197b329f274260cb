package ai

import (
	"context"
	"sync"
)

// MockInvoker is an Invoker for tests. It plays back queued outcomes in order
// and repeats the last one once the queue is exhausted.
type MockInvoker struct {
	mu       sync.Mutex
	outcomes []Outcome
	calls    []Request
	panicMsg string
}

// NewMockInvoker creates a MockInvoker that returns outcomes in order
func NewMockInvoker(outcomes ...Outcome) *MockInvoker {
	return &MockInvoker{outcomes: outcomes}
}

// Run implements Invoker
func (m *MockInvoker) Run(_ context.Context, req Request, _ Limits) Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, req)
	if m.panicMsg != "" {
		panic(m.panicMsg)
	}
	if len(m.outcomes) == 0 {
		return Failed(FailureGeneric, "no mock outcome queued")
	}
	idx := len(m.calls) - 1
	if idx >= len(m.outcomes) {
		idx = len(m.outcomes) - 1
	}
	return m.outcomes[idx]
}

// SetPanic makes every subsequent Run panic with msg
func (m *MockInvoker) SetPanic(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panicMsg = msg
}

// CallCount returns the number of times Run has been called.
func (m *MockInvoker) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Calls returns a copy of every request passed to Run.
func (m *MockInvoker) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.calls))
	copy(out, m.calls)
	return out
}

// Models returns the model of each call, in order
func (m *MockInvoker) Models() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	models := make([]string, 0, len(m.calls))
	for _, c := range m.calls {
		models = append(models, c.Model)
	}
	return models
}
