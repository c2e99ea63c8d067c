package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/deckforge/internal/domain"
	"github.com/phrazzld/deckforge/internal/generation"
	"github.com/stretchr/testify/assert"
)

func TestDeckServiceError_Error(t *testing.T) {
	t.Run("with wrapped error", func(t *testing.T) {
		err := &DeckServiceError{Operation: "topic_deck", Message: "outline synthesis failed", Err: errors.New("boom")}
		assert.Equal(t, "deck service topic_deck failed: outline synthesis failed: boom", err.Error())
	})

	t.Run("without wrapped error", func(t *testing.T) {
		err := &DeckServiceError{Operation: "content_deck", Message: "no content"}
		assert.Equal(t, "deck service content_deck failed: no content", err.Error())
	})
}

func TestNewDeckServiceError(t *testing.T) {
	assert.Nil(t, NewDeckServiceError("op", "msg", nil))

	err := NewDeckServiceError("render_outline", "rendering failed", domain.ErrPersistenceFailure)
	assert.ErrorIs(t, err, domain.ErrPersistenceFailure)

	var svcErr *DeckServiceError
	assert.True(t, errors.As(err, &svcErr))
	assert.Equal(t, "render_outline", svcErr.Operation)
}

func TestFailureReason(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"validation", fmt.Errorf("%w: bad", domain.ErrValidation), ReasonValidation},
		{"format", domain.ErrInvalidFormat, ReasonValidation},
		{"empty outline", fmt.Errorf("%w: %w", domain.ErrEmptyOutline, generation.ErrGenerationFailed), ReasonEmptyOutline},
		{"nothing to render", domain.ErrNothingToRender, ReasonNothingToRender},
		{"source", domain.ErrSourceUnavailable, ReasonSourceUnavailable},
		{"persistence", domain.ErrPersistenceFailure, ReasonPersistence},
		{"cancelled", fmt.Errorf("wait: %w", context.Canceled), ReasonCancelled},
		{"deadline", context.DeadlineExceeded, ReasonCancelled},
		{"generation", generation.ErrGenerationFailed, ReasonGeneration},
		{"other", errors.New("unexpected"), ReasonOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FailureReason(tt.err))
		})
	}
}
