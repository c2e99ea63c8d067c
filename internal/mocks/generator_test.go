package mocks_test

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/deckforge/internal/generation"
	"github.com/phrazzld/deckforge/internal/mocks"
	"github.com/stretchr/testify/assert"
)

func TestMockTextGenerator(t *testing.T) {
	t.Parallel()

	t.Run("Default success case", func(t *testing.T) {
		t.Parallel()

		mockGen := mocks.NewMockTextGenerator("hello")
		text, err := mockGen.GenerateText(context.Background(), "prompt")

		assert.NoError(t, err)
		assert.Equal(t, "hello", text)
		assert.Equal(t, 1, mockGen.CallCount())
		assert.Equal(t, []string{"prompt"}, mockGen.Prompts())
	})

	t.Run("Error case", func(t *testing.T) {
		t.Parallel()

		mockGen := mocks.NewMockTextGeneratorWithError(errors.New("boom"))
		_, err := mockGen.GenerateText(context.Background(), "prompt")

		assert.EqualError(t, err, "boom")
	})

	t.Run("Scripted responses repeat the last one", func(t *testing.T) {
		t.Parallel()

		mockGen := mocks.MockTextGeneratorQuotaThenSuccess(2, "done")
		ctx := context.Background()

		_, err := mockGen.GenerateText(ctx, "p")
		assert.ErrorIs(t, err, generation.ErrQuotaExceeded)
		_, err = mockGen.GenerateText(ctx, "p")
		assert.ErrorIs(t, err, generation.ErrQuotaExceeded)

		for i := 0; i < 2; i++ {
			text, err := mockGen.GenerateText(ctx, "p")
			assert.NoError(t, err)
			assert.Equal(t, "done", text)
		}
		assert.Equal(t, 4, mockGen.CallCount())
	})

	t.Run("Custom function takes precedence", func(t *testing.T) {
		t.Parallel()

		mockGen := &mocks.MockTextGenerator{
			Text: "ignored",
			GenerateTextFn: func(ctx context.Context, prompt string) (string, error) {
				return "custom:" + prompt, nil
			},
		}
		text, err := mockGen.GenerateText(context.Background(), "x")

		assert.NoError(t, err)
		assert.Equal(t, "custom:x", text)
	})

	t.Run("Reset clears tracking", func(t *testing.T) {
		t.Parallel()

		mockGen := mocks.MockTextGeneratorAlwaysQuota()
		_, _ = mockGen.GenerateText(context.Background(), "p")
		mockGen.Reset()

		assert.Equal(t, 0, mockGen.CallCount())
		assert.Empty(t, mockGen.Prompts())
	})
}
