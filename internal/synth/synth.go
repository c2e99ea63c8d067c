package synth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/deckforge/internal/domain"
	"github.com/phrazzld/deckforge/internal/generation"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// DefaultCallInterval is the minimum spacing between generation calls.
const DefaultCallInterval = time.Second

// Generator is the part of generation.Client used by the synthesizer.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// PromptBuilder renders the title and body prompts.
type PromptBuilder interface {
	Title(topic string) (string, error)
	Content(title string) (string, error)
}

// Options tune a Synthesizer.
type Options struct {
	// CallInterval is the minimum time between the start of two generation
	// calls. Zero disables spacing.
	CallInterval time.Duration

	// Concurrency is the number of bodies generated at once. Values below 1
	// mean sequential generation.
	Concurrency int

	// MaxSlides caps the number of titles used. Zero means no cap.
	MaxSlides int
}

// Synthesizer produces outlines from topics.
type Synthesizer struct {
	gen     Generator
	prompts PromptBuilder
	limiter *rate.Limiter
	opts    Options
	logger  *slog.Logger
}

// New creates a Synthesizer. A nil prompts value selects the default prompts.
func New(gen Generator, prompts PromptBuilder, opts Options, logger *slog.Logger) (*Synthesizer, error) {
	if gen == nil {
		return nil, errors.New("generator cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if prompts == nil {
		prompts = generation.DefaultPrompts()
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.MaxSlides < 0 {
		opts.MaxSlides = 0
	}

	limit := rate.Inf
	if opts.CallInterval > 0 {
		limit = rate.Every(opts.CallInterval)
	}

	return &Synthesizer{
		gen:     gen,
		prompts: prompts,
		limiter: rate.NewLimiter(limit, 1),
		opts:    opts,
		logger:  logger.With("component", "synthesizer"),
	}, nil
}

// SynthesizeOutline asks for slide titles for topic, then for the body of each
// title. Slides appear in title order regardless of the order bodies complete.
func (s *Synthesizer) SynthesizeOutline(ctx context.Context, topic string) (domain.Outline, error) {
	outline := domain.Outline{Topic: topic}

	titles, err := s.titles(ctx, topic)
	if err != nil {
		return outline, err
	}

	s.logger.InfoContext(ctx, "slide titles generated",
		"topic", topic,
		"title_count", len(titles))

	slides := make([]domain.SlideUnit, len(titles))
	warnings := make([]string, len(titles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)
	for i, title := range titles {
		g.Go(func() error {
			body, err := s.body(gctx, title)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				s.logger.WarnContext(ctx, "slide body generation failed",
					"slide", i+1,
					"title", title,
					"error", err)
				warnings[i] = fmt.Sprintf("slide %d (%s): content could not be generated: %v", i+1, title, err)
			}
			slides[i] = domain.SlideUnit{Title: title, Body: body}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return outline, fmt.Errorf("%w: outline synthesis cancelled: %w", generation.ErrGenerationFailed, err)
	}

	outline.Slides = slides
	for _, w := range warnings {
		if w != "" {
			outline.Warnings = append(outline.Warnings, w)
		}
	}
	return outline, nil
}

func (s *Synthesizer) titles(ctx context.Context, topic string) ([]string, error) {
	prompt, err := s.prompts.Title(topic)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmptyOutline, err)
	}

	text, err := s.call(ctx, prompt)
	if err != nil {
		s.logger.ErrorContext(ctx, "title generation failed", "topic", topic, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrEmptyOutline, err)
	}

	titles := ParseTitles(text)
	if len(titles) == 0 {
		return nil, fmt.Errorf("%w: model returned no usable lines", domain.ErrEmptyOutline)
	}
	if s.opts.MaxSlides > 0 && len(titles) > s.opts.MaxSlides {
		s.logger.InfoContext(ctx, "limiting slide count",
			"generated", len(titles),
			"max_slides", s.opts.MaxSlides)
		titles = titles[:s.opts.MaxSlides]
	}
	return titles, nil
}

func (s *Synthesizer) body(ctx context.Context, title string) (string, error) {
	prompt, err := s.prompts.Content(title)
	if err != nil {
		return "", err
	}
	return s.call(ctx, prompt)
}

func (s *Synthesizer) call(ctx context.Context, prompt string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %w", generation.ErrGenerationFailed, err)
	}
	return s.gen.Generate(ctx, prompt)
}
