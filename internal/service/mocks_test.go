package service

import (
	"context"
	"sync"

	"github.com/phrazzld/deckforge/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockOutlineSynthesizer mocks the OutlineSynthesizer interface
type MockOutlineSynthesizer struct {
	mock.Mock
}

func (m *MockOutlineSynthesizer) SynthesizeOutline(ctx context.Context, topic string) (domain.Outline, error) {
	args := m.Called(ctx, topic)
	outline, _ := args.Get(0).(domain.Outline)
	return outline, args.Error(1)
}

// MockLoader mocks source.Loader
type MockLoader struct {
	mock.Mock
}

func (m *MockLoader) Load(ctx context.Context, ref string) (string, error) {
	args := m.Called(ctx, ref)
	return args.String(0), args.Error(1)
}

// MockDeckBuilder mocks the DeckBuilder interface
type MockDeckBuilder struct {
	mock.Mock
}

func (m *MockDeckBuilder) Build(
	ctx context.Context,
	spec domain.DeckSpec,
	outline []domain.SlideUnit,
	path string,
) (string, error) {
	args := m.Called(ctx, spec, outline, path)
	return args.String(0), args.Error(1)
}

// recordingRecorder captures RunRecorder calls.
type recordingRecorder struct {
	mu       sync.Mutex
	built    []string
	failures []string
}

func (r *recordingRecorder) DeckBuilt(mode string, _ float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.built = append(r.built, mode)
}

func (r *recordingRecorder) RunFailed(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, reason)
}
