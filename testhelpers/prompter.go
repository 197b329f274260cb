package testhelpers

import (
	"fmt"
	"sync"
)

// ScriptedPrompter answers prompts from queued responses and records every
// question asked. A prompt with no queued answer fails.
type ScriptedPrompter struct {
	mu       sync.Mutex
	selects  []int
	confirms []bool
	inputs   []string
	asked    []string
}

// NewScriptedPrompter creates an empty ScriptedPrompter
func NewScriptedPrompter() *ScriptedPrompter {
	return &ScriptedPrompter{}
}

// QueueSelect queues option indexes returned by Select
func (p *ScriptedPrompter) QueueSelect(indexes ...int) *ScriptedPrompter {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.selects = append(p.selects, indexes...)
	return p
}

// QueueConfirm queues answers returned by Confirm
func (p *ScriptedPrompter) QueueConfirm(answers ...bool) *ScriptedPrompter {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.confirms = append(p.confirms, answers...)
	return p
}

// QueueInput queues text returned by Input
func (p *ScriptedPrompter) QueueInput(values ...string) *ScriptedPrompter {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inputs = append(p.inputs, values...)
	return p
}

// Asked returns the prompts shown so far
func (p *ScriptedPrompter) Asked() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.asked))
	copy(out, p.asked)
	return out
}

// Select returns the next queued index
func (p *ScriptedPrompter) Select(title string, options []string, _ int) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.asked = append(p.asked, title)
	if len(p.selects) == 0 {
		return 0, fmt.Errorf("unexpected select prompt: %s", title)
	}
	idx := p.selects[0]
	p.selects = p.selects[1:]
	if idx < 0 || idx >= len(options) {
		return 0, fmt.Errorf("scripted index %d out of range for %q", idx, title)
	}
	return idx, nil
}

// Confirm returns the next queued answer
func (p *ScriptedPrompter) Confirm(prompt string, _ bool) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.asked = append(p.asked, prompt)
	if len(p.confirms) == 0 {
		return false, fmt.Errorf("unexpected confirm prompt: %s", prompt)
	}
	answer := p.confirms[0]
	p.confirms = p.confirms[1:]
	return answer, nil
}

// Input returns the next queued value
func (p *ScriptedPrompter) Input(prompt, _ string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.asked = append(p.asked, prompt)
	if len(p.inputs) == 0 {
		return "", fmt.Errorf("unexpected input prompt: %s", prompt)
	}
	value := p.inputs[0]
	p.inputs = p.inputs[1:]
	return value, nil
}
