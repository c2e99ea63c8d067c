package task

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is a TaskStore that keeps records for the life of the process.
type MemoryStore struct {
	mutex   sync.RWMutex
	records map[uuid.UUID]*Record
	now     func() time.Time
}

var _ TaskStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[uuid.UUID]*Record),
		now:     time.Now,
	}
}

// SaveTask records a new task in the pending state.
func (s *MemoryStore) SaveTask(_ context.Context, task Task) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.records[task.ID()]; exists {
		return fmt.Errorf("task %s already saved", task.ID())
	}
	now := s.now().UTC()
	s.records[task.ID()] = &Record{
		ID:        task.ID(),
		Type:      task.Type(),
		Status:    task.Status(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return nil
}

// UpdateTaskStatus updates the status of a task.
func (s *MemoryStore) UpdateTaskStatus(
	_ context.Context,
	taskID uuid.UUID,
	status TaskStatus,
	errorMsg string,
) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	rec, ok := s.records[taskID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}
	rec.Status = status
	rec.Error = errorMsg
	rec.UpdatedAt = s.now().UTC()
	return nil
}

// SaveOutput attaches the output of a finished deck task.
func (s *MemoryStore) SaveOutput(_ context.Context, taskID uuid.UUID, output DeckOutput) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	rec, ok := s.records[taskID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}
	out := output
	out.Warnings = append([]string(nil), output.Warnings...)
	rec.Output = &out
	rec.UpdatedAt = s.now().UTC()
	return nil
}

// GetTask returns a copy of the stored record.
func (s *MemoryStore) GetTask(_ context.Context, taskID uuid.UUID) (Record, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	rec, ok := s.records[taskID]
	if !ok {
		return Record{}, fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}
	snapshot := *rec
	if rec.Output != nil {
		out := *rec.Output
		out.Warnings = append([]string(nil), rec.Output.Warnings...)
		snapshot.Output = &out
	}
	return snapshot, nil
}
