package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JobEvent reports that a job entered Status.
type JobEvent struct {
	// ID uniquely identifies the event.
	ID uuid.UUID `json:"id"`

	JobID   uuid.UUID `json:"job_id"`
	JobType string    `json:"job_type"`
	Status  string    `json:"status"`

	// Error is the redacted failure message of a failed job.
	Error string `json:"error,omitempty"`

	OccurredAt time.Time `json:"occurred_at"`
}

// NewJobEvent creates an event stamped with the current time.
func NewJobEvent(jobID uuid.UUID, jobType, status, errMsg string) *JobEvent {
	return &JobEvent{
		ID:         uuid.New(),
		JobID:      jobID,
		JobType:    jobType,
		Status:     status,
		Error:      errMsg,
		OccurredAt: time.Now().UTC(),
	}
}

// EventHandler reacts to job events.
type EventHandler interface {
	HandleEvent(ctx context.Context, event *JobEvent) error
}

// HandlerFunc adapts a function to EventHandler.
type HandlerFunc func(ctx context.Context, event *JobEvent) error

// HandleEvent calls f.
func (f HandlerFunc) HandleEvent(ctx context.Context, event *JobEvent) error {
	return f(ctx, event)
}

// EventEmitter publishes job events.
type EventEmitter interface {
	EmitEvent(ctx context.Context, event *JobEvent) error
}
