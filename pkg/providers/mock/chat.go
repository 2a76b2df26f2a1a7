// Package mock provides a scriptable chat model for tests and offline runs.
package mock

import (
	"context"
	"sync"

	"github.com/toolbridge/toolbridge/pkg/chat"
)

// Step is one scripted turn: either a response or an error.
type Step struct {
	Response chat.Response
	Err      error
}

type Model struct {
	mu    sync.Mutex
	steps []Step
	next  int
	calls int
}

func NewModel(steps ...Step) *Model {
	return &Model{steps: steps}
}

func (m *Model) Name() string { return "mock" }

// Complete replays the scripted steps in order. Past the end of the script it
// repeats the last step, or returns a stock reply when no steps were given.
func (m *Model) Complete(ctx context.Context, messages []chat.Message) (chat.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if len(m.steps) == 0 {
		return chat.Response{Text: "mock response"}, nil
	}
	step := m.steps[m.next]
	if m.next < len(m.steps)-1 {
		m.next++
	}
	return step.Response, step.Err
}

// Calls returns how many completions have been requested so far.
func (m *Model) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
