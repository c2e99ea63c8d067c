package task

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/phrazzld/deckforge/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTaskRunner_Validation(t *testing.T) {
	_, err := NewTaskRunner(nil, DefaultTaskRunnerConfig(), setupTestLogger())
	assert.ErrorIs(t, err, ErrNilStore)

	_, err = NewTaskRunner(NewMemoryStore(), DefaultTaskRunnerConfig(), nil)
	assert.ErrorIs(t, err, ErrNilLogger)
}

func TestTaskRunner_TracksStatus(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	runner, err := NewTaskRunner(store, TaskRunnerConfig{WorkerCount: 2, QueueSize: 4}, setupTestLogger())
	require.NoError(t, err)

	ok := NewMockTask("ok")
	failing := NewMockTask("fail")
	failing.ExecuteFn = func(ctx context.Context) error {
		return errors.New("read /home/me/secret.txt: permission denied")
	}

	require.NoError(t, runner.Submit(ctx, ok))
	require.NoError(t, runner.Submit(ctx, failing))

	rec, err := store.GetTask(ctx, ok.ID())
	require.NoError(t, err)
	assert.Equal(t, TaskStatusPending, rec.Status)

	runner.Start()
	runner.Drain()

	rec, err = store.GetTask(ctx, ok.ID())
	require.NoError(t, err)
	assert.Equal(t, TaskStatusCompleted, rec.Status)

	rec, err = store.GetTask(ctx, failing.ID())
	require.NoError(t, err)
	assert.Equal(t, TaskStatusFailed, rec.Status)
	assert.Equal(t, "read [REDACTED_PATH]: permission denied", rec.Error)
}

func TestTaskRunner_ErrorHandler(t *testing.T) {
	ctx := context.Background()
	runner, err := NewTaskRunner(NewMemoryStore(), DefaultTaskRunnerConfig(), setupTestLogger())
	require.NoError(t, err)

	var handled error
	runner.SetErrorHandler(func(task Task, err error) { handled = err })

	failure := errors.New("boom")
	task := NewMockTask("fail")
	task.ExecuteFn = func(ctx context.Context) error { return failure }
	require.NoError(t, runner.Submit(ctx, task))

	runner.Start()
	runner.Drain()

	assert.ErrorIs(t, handled, failure)
}

func TestTaskRunner_QueueFull(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	runner, err := NewTaskRunner(store, TaskRunnerConfig{WorkerCount: 1, QueueSize: 1}, setupTestLogger())
	require.NoError(t, err)

	require.NoError(t, runner.Submit(ctx, NewMockTask("a")))

	rejected := NewMockTask("b")
	err = runner.Submit(ctx, rejected)
	assert.ErrorIs(t, err, ErrQueueFull)

	rec, err := store.GetTask(ctx, rejected.ID())
	require.NoError(t, err)
	assert.Equal(t, TaskStatusFailed, rec.Status)

	runner.Stop()
	assert.ErrorIs(t, runner.Submit(ctx, NewMockTask("c")), ErrQueueClosed)
}

func TestTaskRunner_EmitsStatusEvents(t *testing.T) {
	ctx := context.Background()
	runner, err := NewTaskRunner(NewMemoryStore(), DefaultTaskRunnerConfig(), setupTestLogger())
	require.NoError(t, err)

	var (
		mu       sync.Mutex
		statuses []string
	)
	emitter := events.NewInMemoryEventEmitter(setupTestLogger())
	emitter.RegisterHandler(events.HandlerFunc(func(_ context.Context, e *events.JobEvent) error {
		mu.Lock()
		defer mu.Unlock()
		statuses = append(statuses, e.Status)
		return nil
	}))
	runner.SetEventEmitter(emitter)

	failing := NewMockTask("fail")
	failing.ExecuteFn = func(ctx context.Context) error { return errors.New("boom") }

	require.NoError(t, runner.Submit(ctx, failing))
	runner.Start()
	runner.Drain()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"pending", "processing", "failed"}, statuses)
}
