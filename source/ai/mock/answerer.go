package mock

import (
	"context"
	"sync"
)

// MockAnswerer is a test double for ai.Answerer.
// It allows custom behavior injection via function fields.
type MockAnswerer struct {
	// AnswerFunc is called by Answer if set.
	// If nil, returns a canned answer echoing the query.
	AnswerFunc func(ctx context.Context, query string) (string, error)

	mu        sync.Mutex
	callCount int
}

// NewMockAnswerer creates a mock answerer with default behavior.
func NewMockAnswerer() *MockAnswerer {
	return &MockAnswerer{}
}

// Answer returns a canned answer, or delegates to AnswerFunc.
func (m *MockAnswerer) Answer(ctx context.Context, query string) (string, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.AnswerFunc != nil {
		return m.AnswerFunc(ctx, query)
	}
	return "mock answer for: " + query, nil
}

// CallCount returns how many times Answer was called.
func (m *MockAnswerer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}
