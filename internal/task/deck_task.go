package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/phrazzld/deckforge/internal/service"
)

// Common errors
var (
	ErrNilDeckService = errors.New("deck service cannot be nil")
	ErrNilStore       = errors.New("task store cannot be nil")
	ErrNilLogger      = errors.New("logger cannot be nil")
)

// DeckRunner is the part of the deck service a background task needs.
type DeckRunner interface {
	TopicDeck(ctx context.Context, req service.TopicRequest) (*service.Result, error)
	ContentDeck(ctx context.Context, req service.ContentRequest) (*service.Result, error)
}

// OutputSaver records what a finished task produced.
type OutputSaver interface {
	SaveOutput(ctx context.Context, taskID uuid.UUID, output DeckOutput) error
}

// deckPayload represents the serialized data carried by the task
type deckPayload struct {
	Topic   *service.TopicRequest   `json:"topic,omitempty"`
	Content *service.ContentRequest `json:"content,omitempty"`
}

// DeckTask implements the Task interface for one deck run.
type DeckTask struct {
	id      uuid.UUID
	payload deckPayload
	runner  DeckRunner
	outputs OutputSaver
	logger  *slog.Logger
}

// ID returns the task's unique identifier
func (t *DeckTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier
func (t *DeckTask) Type() string {
	if t.payload.Topic != nil {
		return TaskTypeTopicDeck
	}
	return TaskTypeContentDeck
}

// Payload returns the request as JSON
func (t *DeckTask) Payload() []byte {
	data, err := json.Marshal(t.payload)
	if err != nil {
		t.logger.Error("failed to marshal task payload", "error", err)
		return nil
	}
	return data
}

// Status returns the initial status; the store tracks later transitions.
func (t *DeckTask) Status() TaskStatus {
	return TaskStatusPending
}

// Execute runs the deck pipeline and records the output.
func (t *DeckTask) Execute(ctx context.Context) error {
	var (
		res *service.Result
		err error
	)
	switch {
	case t.payload.Topic != nil:
		res, err = t.runner.TopicDeck(ctx, *t.payload.Topic)
	case t.payload.Content != nil:
		res, err = t.runner.ContentDeck(ctx, *t.payload.Content)
	default:
		return errors.New("deck task has no request")
	}
	if err != nil {
		return err
	}

	t.logger.Info("deck written",
		"path", res.Path,
		"slides", res.Slides,
		"warnings", len(res.Warnings))

	return t.outputs.SaveOutput(ctx, t.id, DeckOutput{
		Path:     res.Path,
		Slides:   res.Slides,
		Warnings: res.Warnings,
	})
}

// DeckTaskFactory creates DeckTask instances that write each deck to its
// own file under a shared output directory.
type DeckTaskFactory struct {
	runner    DeckRunner
	outputs   OutputSaver
	outputDir string
	logger    *slog.Logger
}

// NewDeckTaskFactory creates a new factory for DeckTasks
func NewDeckTaskFactory(
	runner DeckRunner,
	outputs OutputSaver,
	outputDir string,
	logger *slog.Logger,
) (*DeckTaskFactory, error) {
	if runner == nil {
		return nil, ErrNilDeckService
	}
	if outputs == nil {
		return nil, ErrNilStore
	}
	if logger == nil {
		return nil, ErrNilLogger
	}
	return &DeckTaskFactory{
		runner:    runner,
		outputs:   outputs,
		outputDir: outputDir,
		logger:    logger.With("component", "deck_task_factory"),
	}, nil
}

// OutputPath returns where the deck for a task id is written.
func (f *DeckTaskFactory) OutputPath(id uuid.UUID) string {
	return filepath.Join(f.outputDir, fmt.Sprintf("%s.pptx", id))
}

// TopicTask creates a task that builds a topic deck.
func (f *DeckTaskFactory) TopicTask(req service.TopicRequest) *DeckTask {
	t := f.newTask()
	req.OutputPath = f.OutputPath(t.id)
	t.payload.Topic = &req
	t.logger = t.logger.With("task_type", TaskTypeTopicDeck)
	return t
}

// ContentTask creates a task that builds a content deck.
func (f *DeckTaskFactory) ContentTask(req service.ContentRequest) *DeckTask {
	t := f.newTask()
	req.OutputPath = f.OutputPath(t.id)
	t.payload.Content = &req
	t.logger = t.logger.With("task_type", TaskTypeContentDeck)
	return t
}

func (f *DeckTaskFactory) newTask() *DeckTask {
	id := uuid.New()
	return &DeckTask{
		id:      id,
		runner:  f.runner,
		outputs: f.outputs,
		logger:  f.logger.With("task_id", id),
	}
}
