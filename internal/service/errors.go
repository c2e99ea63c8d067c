package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/phrazzld/deckforge/internal/domain"
	"github.com/phrazzld/deckforge/internal/generation"
)

// DeckServiceError wraps errors from the deck service with context.
type DeckServiceError struct {
	// Operation is the operation that failed (e.g., "topic_deck", "content_deck")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for DeckServiceError.
func (e *DeckServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("deck service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("deck service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *DeckServiceError) Unwrap() error {
	return e.Err
}

// NewDeckServiceError creates a new DeckServiceError, or returns nil for a nil error.
func NewDeckServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}
	return &DeckServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// Failure reasons reported to metrics.
const (
	ReasonValidation        = "validation"
	ReasonEmptyOutline      = "empty_outline"
	ReasonNothingToRender   = "nothing_to_render"
	ReasonSourceUnavailable = "source_unavailable"
	ReasonPersistence       = "persistence"
	ReasonGeneration        = "generation"
	ReasonCancelled         = "cancelled"
	ReasonOther             = "other"
)

// FailureReason classifies a run error into one of the Reason constants.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidFormat):
		return ReasonValidation
	case errors.Is(err, domain.ErrEmptyOutline):
		return ReasonEmptyOutline
	case errors.Is(err, domain.ErrNothingToRender):
		return ReasonNothingToRender
	case errors.Is(err, domain.ErrSourceUnavailable):
		return ReasonSourceUnavailable
	case errors.Is(err, domain.ErrPersistenceFailure):
		return ReasonPersistence
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ReasonCancelled
	case errors.Is(err, generation.ErrGenerationFailed):
		return ReasonGeneration
	default:
		return ReasonOther
	}
}
