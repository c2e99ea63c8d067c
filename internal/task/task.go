package task

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the current state of a task
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// Task type constants
const (
	// TaskTypeTopicDeck builds a deck from a synthesized outline
	TaskTypeTopicDeck = "topic_deck"
	// TaskTypeContentDeck builds a deck from segmented text
	TaskTypeContentDeck = "content_deck"
)

// ErrTaskNotFound is returned when a store has no record for an id.
var ErrTaskNotFound = errors.New("task not found")

// Task represents a unit of background work to be processed
type Task interface {
	// ID returns the task's unique identifier
	ID() uuid.UUID

	// Type returns the task type identifier
	Type() string

	// Payload returns the task data as a byte slice
	Payload() []byte

	// Status returns the current task status
	Status() TaskStatus

	// Execute runs the task logic
	Execute(ctx context.Context) error
}

// TaskQueueReader provides read-only access to the task channel
// allowing workers to consume tasks without the ability to enqueue
type TaskQueueReader interface {
	// GetChannel returns a read-only channel for consuming tasks
	GetChannel() <-chan Task
}

// TaskQueueWriter provides write access to the task queue
// allowing services to enqueue tasks for processing
type TaskQueueWriter interface {
	// Enqueue adds a task to the queue for processing
	// Returns an error if the queue is full or closed
	Enqueue(task Task) error

	// Close closes the task queue, preventing further task submission
	Close()
}

// DeckOutput is what a finished deck task leaves behind.
type DeckOutput struct {
	Path     string   `json:"path"`
	Slides   int      `json:"slides"`
	Warnings []string `json:"warnings,omitempty"`
}

// Record is a point-in-time snapshot of a stored task.
type Record struct {
	ID        uuid.UUID
	Type      string
	Status    TaskStatus
	Error     string
	Output    *DeckOutput
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Done reports whether the task reached a terminal status.
func (r Record) Done() bool {
	return r.Status == TaskStatusCompleted || r.Status == TaskStatusFailed
}

// TaskStore defines the interface for tracking tasks
type TaskStore interface {
	// SaveTask records a new task
	SaveTask(ctx context.Context, task Task) error

	// UpdateTaskStatus updates the status of a task
	UpdateTaskStatus(ctx context.Context, taskID uuid.UUID, status TaskStatus, errorMsg string) error

	// SaveOutput attaches the output of a finished deck task
	SaveOutput(ctx context.Context, taskID uuid.UUID, output DeckOutput) error

	// GetTask returns a snapshot of the task, or ErrTaskNotFound
	GetTask(ctx context.Context, taskID uuid.UUID) (Record, error)
}
