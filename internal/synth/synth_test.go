package synth_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/deckforge/internal/domain"
	"github.com/phrazzld/deckforge/internal/generation"
	"github.com/phrazzld/deckforge/internal/mocks"
	"github.com/phrazzld/deckforge/internal/platform/logger"
	"github.com/phrazzld/deckforge/internal/synth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// titleOf extracts the slide title quoted in the default content prompt.
func titleOf(prompt string) string {
	start := strings.Index(prompt, "'")
	end := strings.Index(prompt[start+1:], "'")
	return prompt[start+1 : start+1+end]
}

func isTitlePrompt(prompt string) bool {
	return strings.HasPrefix(prompt, "Create slide titles")
}

// newSynthesizer wires a mock text generator through a real generation.Client
// with no waits between retries.
func newSynthesizer(t *testing.T, gen generation.TextGenerator, opts synth.Options) *synth.Synthesizer {
	t.Helper()
	log, _ := logger.NewTestLogger()
	client, err := generation.NewClient(gen, generation.RetryPolicy{MaxAttempts: 3, Delay: 0}, log)
	require.NoError(t, err)

	s, err := synth.New(client, nil, opts, log)
	require.NoError(t, err)
	return s
}

func TestSynthesizeOutline_TitlesThenBodies(t *testing.T) {
	gen := &mocks.MockTextGenerator{
		GenerateTextFn: func(_ context.Context, prompt string) (string, error) {
			if isTitlePrompt(prompt) {
				return "1. Introduction\n\n- **Key Ideas**\nSummary\n", nil
			}
			return "Body for " + titleOf(prompt) + ".", nil
		},
	}
	s := newSynthesizer(t, gen, synth.Options{})

	outline, err := s.SynthesizeOutline(context.Background(), "Solar power")

	require.NoError(t, err)
	assert.Equal(t, "Solar power", outline.Topic)
	assert.Equal(t, []domain.SlideUnit{
		{Title: "Introduction", Body: "Body for Introduction."},
		{Title: "Key Ideas", Body: "Body for Key Ideas."},
		{Title: "Summary", Body: "Body for Summary."},
	}, outline.Slides)
	assert.Empty(t, outline.Warnings)
	assert.Equal(t, 4, gen.CallCount(), "one title call plus one call per title")
	assert.Contains(t, gen.Prompts()[0], "Solar power")
}

func TestSynthesizeOutline_OrderUnderVariedLatency(t *testing.T) {
	titles := []string{"A", "B", "C", "D", "E", "F"}
	delays := map[string]time.Duration{
		"A": 30 * time.Millisecond, "B": 1 * time.Millisecond, "C": 20 * time.Millisecond,
		"D": 5 * time.Millisecond, "E": 15 * time.Millisecond, "F": 0,
	}

	for _, concurrency := range []int{1, 3, 6} {
		t.Run(fmt.Sprintf("concurrency=%d", concurrency), func(t *testing.T) {
			gen := &mocks.MockTextGenerator{
				GenerateTextFn: func(ctx context.Context, prompt string) (string, error) {
					if isTitlePrompt(prompt) {
						return strings.Join(titles, "\n"), nil
					}
					title := titleOf(prompt)
					time.Sleep(delays[title])
					return "body " + title, nil
				},
			}
			s := newSynthesizer(t, gen, synth.Options{Concurrency: concurrency})

			outline, err := s.SynthesizeOutline(context.Background(), "letters")

			require.NoError(t, err)
			require.Len(t, outline.Slides, len(titles))
			for i, slide := range outline.Slides {
				assert.Equal(t, titles[i], slide.Title)
				assert.Equal(t, "body "+titles[i], slide.Body)
			}
		})
	}
}

func TestSynthesizeOutline_BodyFailureIsIsolated(t *testing.T) {
	gen := &mocks.MockTextGenerator{
		GenerateTextFn: func(_ context.Context, prompt string) (string, error) {
			if isTitlePrompt(prompt) {
				return "One\nTwo\nThree", nil
			}
			if titleOf(prompt) == "Two" {
				return "", errors.New("backend exploded")
			}
			return "ok", nil
		},
	}
	s := newSynthesizer(t, gen, synth.Options{})

	outline, err := s.SynthesizeOutline(context.Background(), "numbers")

	require.NoError(t, err)
	require.Len(t, outline.Slides, 3)
	assert.Equal(t, "ok", outline.Slides[0].Body)
	assert.Equal(t, "", outline.Slides[1].Body)
	assert.Equal(t, "Two", outline.Slides[1].Title)
	assert.Equal(t, "ok", outline.Slides[2].Body)
	require.Len(t, outline.Warnings, 1)
	assert.Contains(t, outline.Warnings[0], "slide 2 (Two)")
}

func TestSynthesizeOutline_QuotaFallbackBody(t *testing.T) {
	quota := fmt.Errorf("%w: 429", generation.ErrQuotaExceeded)
	gen := &mocks.MockTextGenerator{
		GenerateTextFn: func(_ context.Context, prompt string) (string, error) {
			if isTitlePrompt(prompt) {
				return "Only", nil
			}
			return "", quota
		},
	}
	s := newSynthesizer(t, gen, synth.Options{})

	outline, err := s.SynthesizeOutline(context.Background(), "t")

	require.NoError(t, err)
	require.Len(t, outline.Slides, 1)
	assert.Equal(t, generation.FallbackText, outline.Slides[0].Body)
	assert.Empty(t, outline.Warnings, "quota exhaustion is absorbed, not a warning")
	assert.Equal(t, 4, gen.CallCount(), "title call plus three body attempts")
}

func TestSynthesizeOutline_EmptyOutline(t *testing.T) {
	t.Run("blank title response", func(t *testing.T) {
		gen := mocks.NewMockTextGenerator("  \n\n \n")
		s := newSynthesizer(t, gen, synth.Options{})

		_, err := s.SynthesizeOutline(context.Background(), "t")

		assert.ErrorIs(t, err, domain.ErrEmptyOutline)
		assert.Equal(t, 1, gen.CallCount(), "no body calls after an empty title list")
	})

	t.Run("title call fails", func(t *testing.T) {
		gen := mocks.NewMockTextGeneratorWithError(errors.New("offline"))
		s := newSynthesizer(t, gen, synth.Options{})

		_, err := s.SynthesizeOutline(context.Background(), "t")

		assert.ErrorIs(t, err, domain.ErrEmptyOutline)
		assert.ErrorIs(t, err, generation.ErrGenerationFailed)
	})

	t.Run("blank topic", func(t *testing.T) {
		gen := mocks.NewMockTextGenerator("x")
		s := newSynthesizer(t, gen, synth.Options{})

		_, err := s.SynthesizeOutline(context.Background(), "   ")

		assert.ErrorIs(t, err, domain.ErrEmptyOutline)
		assert.Equal(t, 0, gen.CallCount())
	})
}

func TestSynthesizeOutline_MaxSlides(t *testing.T) {
	gen := &mocks.MockTextGenerator{
		GenerateTextFn: func(_ context.Context, prompt string) (string, error) {
			if isTitlePrompt(prompt) {
				return "A\nB\nC\nD", nil
			}
			return "b", nil
		},
	}
	s := newSynthesizer(t, gen, synth.Options{MaxSlides: 2})

	outline, err := s.SynthesizeOutline(context.Background(), "t")

	require.NoError(t, err)
	require.Len(t, outline.Slides, 2)
	assert.Equal(t, "A", outline.Slides[0].Title)
	assert.Equal(t, "B", outline.Slides[1].Title)
	assert.Equal(t, 3, gen.CallCount())
}

func TestSynthesizeOutline_CallInterval(t *testing.T) {
	gen := &mocks.MockTextGenerator{
		GenerateTextFn: func(_ context.Context, prompt string) (string, error) {
			if isTitlePrompt(prompt) {
				return "A\nB", nil
			}
			return "b", nil
		},
	}
	s := newSynthesizer(t, gen, synth.Options{CallInterval: 20 * time.Millisecond})

	start := time.Now()
	_, err := s.SynthesizeOutline(context.Background(), "t")

	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond,
		"three calls need at least two intervals")
}

func TestSynthesizeOutline_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	gen := &mocks.MockTextGenerator{
		GenerateTextFn: func(_ context.Context, prompt string) (string, error) {
			if isTitlePrompt(prompt) {
				cancel()
				return "A\nB", nil
			}
			return "b", nil
		},
	}
	s := newSynthesizer(t, gen, synth.Options{})

	_, err := s.SynthesizeOutline(ctx, "t")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_Validation(t *testing.T) {
	log, _ := logger.NewTestLogger()

	_, err := synth.New(nil, nil, synth.Options{}, log)
	assert.Error(t, err)

	client, err := generation.NewClient(mocks.NewMockTextGenerator("x"), generation.DefaultRetryPolicy(), log)
	require.NoError(t, err)
	_, err = synth.New(client, nil, synth.Options{}, nil)
	assert.Error(t, err)
}
