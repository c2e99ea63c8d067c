package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/phrazzld/deckforge/internal/generation"
)

// Response is one scripted reply of a MockTextGenerator.
type Response struct {
	Text string
	Err  error
}

// MockTextGenerator implements generation.TextGenerator for testing
type MockTextGenerator struct {
	// GenerateTextFn allows test cases to mock the GenerateText behavior
	GenerateTextFn func(ctx context.Context, prompt string) (string, error)

	// Responses are returned in order, one per call. Once exhausted the last
	// response is repeated.
	Responses []Response

	// Default response values
	Text string
	Err  error

	// Call tracking for verification
	GenerateTextCalls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		// Count tracks how many times GenerateText was called
		Count int

		// Prompts contains all prompts passed to GenerateText calls
		Prompts []string
	}
}

// GenerateText implements the generation.TextGenerator interface
func (m *MockTextGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	m.GenerateTextCalls.mu.Lock()
	call := m.GenerateTextCalls.Count
	m.GenerateTextCalls.Count++
	m.GenerateTextCalls.Prompts = append(m.GenerateTextCalls.Prompts, prompt)
	m.GenerateTextCalls.mu.Unlock()

	// Use custom function if provided
	if m.GenerateTextFn != nil {
		return m.GenerateTextFn(ctx, prompt)
	}

	if len(m.Responses) > 0 {
		if call >= len(m.Responses) {
			call = len(m.Responses) - 1
		}
		r := m.Responses[call]
		return r.Text, r.Err
	}

	// Return default values
	return m.Text, m.Err
}

// CallCount returns the number of GenerateText calls so far.
func (m *MockTextGenerator) CallCount() int {
	m.GenerateTextCalls.mu.Lock()
	defer m.GenerateTextCalls.mu.Unlock()
	return m.GenerateTextCalls.Count
}

// Prompts returns a copy of the prompts received so far.
func (m *MockTextGenerator) Prompts() []string {
	m.GenerateTextCalls.mu.Lock()
	defer m.GenerateTextCalls.mu.Unlock()
	return append([]string(nil), m.GenerateTextCalls.Prompts...)
}

// Reset resets the call tracking state
func (m *MockTextGenerator) Reset() {
	m.GenerateTextCalls.mu.Lock()
	defer m.GenerateTextCalls.mu.Unlock()

	m.GenerateTextCalls.Count = 0
	m.GenerateTextCalls.Prompts = nil
}

// NewMockTextGenerator creates a MockTextGenerator that always returns text
func NewMockTextGenerator(text string) *MockTextGenerator {
	return &MockTextGenerator{Text: text}
}

// NewMockTextGeneratorWithError creates a MockTextGenerator that always returns err
func NewMockTextGeneratorWithError(err error) *MockTextGenerator {
	return &MockTextGenerator{Err: err}
}

// MockTextGeneratorAlwaysQuota creates a MockTextGenerator whose every call hits the quota
func MockTextGeneratorAlwaysQuota() *MockTextGenerator {
	return &MockTextGenerator{
		Err: fmt.Errorf("%w: 429 resource exhausted", generation.ErrQuotaExceeded),
	}
}

// MockTextGeneratorQuotaThenSuccess creates a MockTextGenerator that hits the quota
// failures times and then returns text
func MockTextGeneratorQuotaThenSuccess(failures int, text string) *MockTextGenerator {
	responses := make([]Response, 0, failures+1)
	for i := 0; i < failures; i++ {
		responses = append(responses, Response{
			Err: fmt.Errorf("%w: attempt %d", generation.ErrQuotaExceeded, i+1),
		})
	}
	responses = append(responses, Response{Text: text})
	return &MockTextGenerator{Responses: responses}
}
