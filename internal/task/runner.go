package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/deckforge/internal/events"
	"github.com/phrazzld/deckforge/internal/redact"
)

// TaskRunnerConfig holds configuration for the task runner
type TaskRunnerConfig struct {
	// WorkerCount determines how many concurrent workers process tasks
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory task queue
	QueueSize int
}

// DefaultTaskRunnerConfig returns a TaskRunnerConfig with reasonable defaults
func DefaultTaskRunnerConfig() TaskRunnerConfig {
	return TaskRunnerConfig{
		WorkerCount: 1,
		QueueSize:   16,
	}
}

// TaskRunner manages background task processing: it records submitted
// tasks in a store, queues them, and tracks their status as the worker
// pool executes them.
type TaskRunner struct {
	store  TaskStore
	queue  *TaskQueue
	pool   *WorkerPool
	events events.EventEmitter
	logger *slog.Logger
}

// NewTaskRunner creates a new TaskRunner
func NewTaskRunner(store TaskStore, config TaskRunnerConfig, logger *slog.Logger) (*TaskRunner, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	if logger == nil {
		return nil, ErrNilLogger
	}
	logger = logger.With("component", "task_runner")

	queue := NewTaskQueue(config.QueueSize, logger)
	pool := NewWorkerPool(queue, WorkerPoolConfig{WorkerCount: config.WorkerCount}, logger)

	r := &TaskRunner{
		store:  store,
		queue:  queue,
		pool:   pool,
		logger: logger,
	}
	pool.process = r.processTask
	return r, nil
}

// SetErrorHandler allows setting a custom error handler function
func (r *TaskRunner) SetErrorHandler(handler func(task Task, err error)) {
	r.pool.SetErrorHandler(handler)
}

// SetEventEmitter publishes a JobEvent on every status change.
// Call it before Start.
func (r *TaskRunner) SetEventEmitter(emitter events.EventEmitter) {
	r.events = emitter
}

// setStatus stores the new status and announces it.
func (r *TaskRunner) setStatus(ctx context.Context, task Task, status TaskStatus, errMsg string) error {
	if err := r.store.UpdateTaskStatus(ctx, task.ID(), status, errMsg); err != nil {
		return err
	}
	r.emit(ctx, task, status, errMsg)
	return nil
}

func (r *TaskRunner) emit(ctx context.Context, task Task, status TaskStatus, errMsg string) {
	if r.events == nil {
		return
	}
	event := events.NewJobEvent(task.ID(), task.Type(), string(status), errMsg)
	if err := r.events.EmitEvent(context.WithoutCancel(ctx), event); err != nil {
		r.logger.Warn("job event handler failed", "task_id", task.ID(), "error", err)
	}
}

// Submit records the task and adds it to the queue.
// A task that cannot be queued is marked failed.
func (r *TaskRunner) Submit(ctx context.Context, task Task) error {
	if err := r.store.SaveTask(ctx, task); err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	r.emit(ctx, task, TaskStatusPending, "")

	if err := r.queue.Enqueue(task); err != nil {
		if updateErr := r.setStatus(ctx, task, TaskStatusFailed, err.Error()); updateErr != nil {
			r.logger.Error("failed to mark rejected task as failed",
				"task_id", task.ID(),
				"error", updateErr)
		}
		return err
	}
	return nil
}

// Start begins processing tasks.
func (r *TaskRunner) Start() {
	r.pool.Start()
}

// Stop stops accepting tasks, cancels in-flight work and waits for the
// workers to exit.
func (r *TaskRunner) Stop() {
	r.queue.Close()
	r.pool.Stop()
}

// Drain stops accepting tasks and waits until every queued task has run.
func (r *TaskRunner) Drain() {
	r.queue.Close()
	r.pool.Wait()
}

// processTask handles execution of a single task
func (r *TaskRunner) processTask(ctx context.Context, task Task, workerID int) {
	log := r.logger.With(
		"task_id", task.ID(),
		"task_type", task.Type(),
		"worker_id", workerID,
	)

	if err := r.setStatus(ctx, task, TaskStatusProcessing, ""); err != nil {
		log.Error("failed to update task status to processing", "error", err)
		return
	}

	log.Info("processing task")

	if err := task.Execute(ctx); err != nil {
		msg := redact.Error(err)
		log.Error("task execution failed", "error", msg)
		if updateErr := r.setStatus(ctx, task, TaskStatusFailed, msg); updateErr != nil {
			log.Error("failed to update task status to failed", "error", updateErr)
		}
		if r.pool.errorHandler != nil {
			r.pool.errorHandler(task, err)
		}
		return
	}

	log.Info("task completed successfully")
	if err := r.setStatus(ctx, task, TaskStatusCompleted, ""); err != nil {
		log.Error("failed to update task status to completed", "error", err)
	}
}
