package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/phrazzld/deckforge/internal/config"
	"github.com/phrazzld/deckforge/internal/domain"
	"github.com/phrazzld/deckforge/internal/platform/logger"
	"github.com/phrazzld/deckforge/internal/segment"
	"github.com/phrazzld/deckforge/internal/source"
)

// Deck modes, also used as metric labels.
const (
	ModeTopic   = "topic"
	ModeContent = "content"
	ModeOutline = "outline"
)

// OutlineSynthesizer produces an outline for a topic.
type OutlineSynthesizer interface {
	SynthesizeOutline(ctx context.Context, topic string) (domain.Outline, error)
}

// DeckBuilder renders an outline to a file.
type DeckBuilder interface {
	Build(ctx context.Context, spec domain.DeckSpec, outline []domain.SlideUnit, path string) (string, error)
}

// RunRecorder receives the outcome of every run.
type RunRecorder interface {
	DeckBuilt(mode string, seconds float64)
	RunFailed(reason string)
}

type noopRunRecorder struct{}

func (noopRunRecorder) DeckBuilt(string, float64) {}
func (noopRunRecorder) RunFailed(string)          {}

// Style carries optional typography overrides. Zero values use the configured defaults.
type Style struct {
	MainTitle     string
	TitleFontSize float64
	BodyFontSize  float64
	// FontColor is "RRGGBB" or "#RRGGBB".
	FontColor string
}

// TopicRequest asks for a deck synthesized from a topic.
type TopicRequest struct {
	Topic string
	Style Style
	// OutputPath overrides the configured output location.
	OutputPath string
}

// ContentRequest asks for a deck segmented from existing text. Exactly one
// of Text and Source must be set; Source is a file path or an http(s) URL.
type ContentRequest struct {
	Text       string
	Source     string
	MaxChars   int
	Style      Style
	OutputPath string
}

// Result describes a persisted deck.
type Result struct {
	Path     string
	Slides   int
	Outline  domain.Outline
	Warnings []string
}

// DeckService provides the deck pipeline operations.
type DeckService interface {
	// TopicDeck synthesizes an outline for the topic and renders it.
	TopicDeck(ctx context.Context, req TopicRequest) (*Result, error)

	// ContentDeck segments text or a loaded source and renders it.
	ContentDeck(ctx context.Context, req ContentRequest) (*Result, error)

	// SynthesizeOutline runs only the synthesis half of TopicDeck.
	SynthesizeOutline(ctx context.Context, topic string) (domain.Outline, error)

	// RenderOutline renders an existing outline.
	RenderOutline(ctx context.Context, outline domain.Outline, style Style, outputPath string) (*Result, error)
}

// Dependencies groups the collaborators of the deck service. Synthesizer and
// Loader may be nil when the corresponding mode is not used.
type Dependencies struct {
	Synthesizer OutlineSynthesizer
	Loader      source.Loader
	Builder     DeckBuilder
	Recorder    RunRecorder
	Logger      *slog.Logger
}

type deckServiceImpl struct {
	synth    OutlineSynthesizer
	loader   source.Loader
	builder  DeckBuilder
	recorder RunRecorder
	defaults config.DeckConfig
	logger   *slog.Logger
	now      func() time.Time
}

// NewDeckService creates a DeckService.
// It returns an error if the builder or logger is missing.
func NewDeckService(deps Dependencies, defaults config.DeckConfig) (DeckService, error) {
	if deps.Builder == nil {
		return nil, NewDeckServiceError("create_service", "builder cannot be nil", errors.New("nil dependency"))
	}
	if deps.Logger == nil {
		return nil, NewDeckServiceError("create_service", "logger cannot be nil", errors.New("nil dependency"))
	}
	recorder := deps.Recorder
	if recorder == nil {
		recorder = noopRunRecorder{}
	}
	return &deckServiceImpl{
		synth:    deps.Synthesizer,
		loader:   deps.Loader,
		builder:  deps.Builder,
		recorder: recorder,
		defaults: defaults,
		logger:   deps.Logger.With("component", "deck_service"),
		now:      time.Now,
	}, nil
}

// TopicDeck implements DeckService.
func (s *deckServiceImpl) TopicDeck(ctx context.Context, req TopicRequest) (*Result, error) {
	const op = "topic_deck"
	log := logger.FromContextOrDefault(ctx, s.logger)
	start := s.now()

	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return nil, s.fail(op, "invalid request", fmt.Errorf("%w: topic cannot be empty", domain.ErrValidation))
	}
	style := req.Style
	if strings.TrimSpace(style.MainTitle) == "" {
		style.MainTitle = topic
	}
	spec, err := s.deckSpec(style)
	if err != nil {
		return nil, s.fail(op, "invalid style", err)
	}

	log.InfoContext(ctx, "synthesizing topic deck", "topic", topic)
	outline, err := s.SynthesizeOutline(ctx, topic)
	if err != nil {
		return nil, s.fail(op, "outline synthesis failed", err)
	}

	res, err := s.render(ctx, spec, outline, req.OutputPath)
	if err != nil {
		return nil, s.fail(op, "rendering failed", err)
	}
	s.recorder.DeckBuilt(ModeTopic, s.now().Sub(start).Seconds())
	return res, nil
}

// SynthesizeOutline implements DeckService.
func (s *deckServiceImpl) SynthesizeOutline(ctx context.Context, topic string) (domain.Outline, error) {
	if s.synth == nil {
		return domain.Outline{}, errors.New("topic generation is not configured")
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return domain.Outline{}, fmt.Errorf("%w: topic cannot be empty", domain.ErrValidation)
	}

	outline, err := s.synth.SynthesizeOutline(ctx, topic)
	if err != nil {
		return domain.Outline{}, err
	}
	if outline.Len() == 0 {
		return domain.Outline{}, fmt.Errorf("%w: synthesizer returned no slides", domain.ErrEmptyOutline)
	}
	for _, w := range outline.Warnings {
		logger.FromContextOrDefault(ctx, s.logger).WarnContext(ctx, "outline warning", "warning", w)
	}
	return outline, nil
}

// ContentDeck implements DeckService.
func (s *deckServiceImpl) ContentDeck(ctx context.Context, req ContentRequest) (*Result, error) {
	const op = "content_deck"
	log := logger.FromContextOrDefault(ctx, s.logger)
	start := s.now()

	text, ref, err := s.contentText(ctx, req)
	if err != nil {
		return nil, s.fail(op, "could not read content", err)
	}

	style := req.Style
	if strings.TrimSpace(style.MainTitle) == "" {
		style.MainTitle = defaultContentTitle(ref)
	}
	spec, err := s.deckSpec(style)
	if err != nil {
		return nil, s.fail(op, "invalid style", err)
	}

	maxChars := req.MaxChars
	if maxChars <= 0 {
		maxChars = s.defaults.MaxChars
	}
	units := segment.Segment(text, maxChars)
	if len(units) == 0 {
		return nil, s.fail(op, "no content", fmt.Errorf("%w: source contains no text", domain.ErrNothingToRender))
	}
	log.InfoContext(ctx, "content segmented",
		"source", ref,
		"max_chars", maxChars,
		"slides", len(units))

	res, err := s.render(ctx, spec, domain.Outline{Topic: spec.MainTitle, Slides: units}, req.OutputPath)
	if err != nil {
		return nil, s.fail(op, "rendering failed", err)
	}
	s.recorder.DeckBuilt(ModeContent, s.now().Sub(start).Seconds())
	return res, nil
}

// RenderOutline implements DeckService.
func (s *deckServiceImpl) RenderOutline(
	ctx context.Context,
	outline domain.Outline,
	style Style,
	outputPath string,
) (*Result, error) {
	const op = "render_outline"
	start := s.now()

	if outline.Len() == 0 {
		return nil, s.fail(op, "no content", fmt.Errorf("%w: outline has no slides", domain.ErrNothingToRender))
	}
	if err := outline.Validate(); err != nil {
		return nil, s.fail(op, "invalid outline", err)
	}
	if strings.TrimSpace(style.MainTitle) == "" {
		style.MainTitle = outline.Topic
	}
	spec, err := s.deckSpec(style)
	if err != nil {
		return nil, s.fail(op, "invalid style", err)
	}

	res, err := s.render(ctx, spec, outline, outputPath)
	if err != nil {
		return nil, s.fail(op, "rendering failed", err)
	}
	s.recorder.DeckBuilt(ModeOutline, s.now().Sub(start).Seconds())
	return res, nil
}

func (s *deckServiceImpl) render(
	ctx context.Context,
	spec domain.DeckSpec,
	outline domain.Outline,
	outputPath string,
) (*Result, error) {
	if outputPath == "" {
		outputPath = s.DefaultOutputPath()
	}
	path, err := s.builder.Build(ctx, spec, outline.Slides, outputPath)
	if err != nil {
		return nil, err
	}
	return &Result{
		Path:     path,
		Slides:   outline.Len() + 1,
		Outline:  outline,
		Warnings: outline.Warnings,
	}, nil
}

// DefaultOutputPath is the configured output directory joined with the output file name.
func (s *deckServiceImpl) DefaultOutputPath() string {
	return filepath.Join(s.defaults.OutputDir, s.defaults.OutputFile)
}

func (s *deckServiceImpl) contentText(ctx context.Context, req ContentRequest) (text, ref string, err error) {
	hasText := strings.TrimSpace(req.Text) != ""
	hasSource := strings.TrimSpace(req.Source) != ""

	switch {
	case hasText && hasSource:
		return "", "", fmt.Errorf("%w: provide either text or a source, not both", domain.ErrValidation)
	case hasText:
		return req.Text, "", nil
	case hasSource:
		if s.loader == nil {
			return "", "", fmt.Errorf("%w: no source loader configured", domain.ErrSourceUnavailable)
		}
		ref = strings.TrimSpace(req.Source)
		text, err = s.loader.Load(ctx, ref)
		if err != nil {
			if !errors.Is(err, domain.ErrSourceUnavailable) {
				err = fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, err)
			}
			return "", ref, err
		}
		return text, ref, nil
	default:
		return "", "", fmt.Errorf("%w: text or source is required", domain.ErrValidation)
	}
}

// deckSpec merges style overrides into the configured defaults.
func (s *deckServiceImpl) deckSpec(style Style) (domain.DeckSpec, error) {
	spec := domain.NewDeckSpec(style.MainTitle)
	if s.defaults.TitleFontSize > 0 {
		spec.TitleFontSize = s.defaults.TitleFontSize
	}
	if s.defaults.BodyFontSize > 0 {
		spec.BodyFontSize = s.defaults.BodyFontSize
	}

	if style.TitleFontSize != 0 {
		spec.TitleFontSize = style.TitleFontSize
	}
	if style.BodyFontSize != 0 {
		if style.BodyFontSize < domain.MinBodyFontSize || style.BodyFontSize > domain.MaxBodyFontSize {
			return spec, fmt.Errorf("%w: body font size must be between %v and %v points",
				domain.ErrValidation, domain.MinBodyFontSize, domain.MaxBodyFontSize)
		}
		spec.BodyFontSize = style.BodyFontSize
	}

	color := style.FontColor
	if color == "" {
		color = s.defaults.FontColor
	}
	if color != "" {
		rgb, err := domain.ParseRGB(color)
		if err != nil {
			return spec, fmt.Errorf("%w: %w", domain.ErrValidation, err)
		}
		spec.BodyColor = rgb
	}

	if err := spec.Validate(); err != nil {
		return spec, err
	}
	return spec, nil
}

func (s *deckServiceImpl) fail(op, message string, err error) error {
	reason := FailureReason(err)
	s.recorder.RunFailed(reason)
	s.logger.Error("deck run failed",
		"operation", op,
		"reason", reason,
		"error", err)
	return NewDeckServiceError(op, message, err)
}

// defaultContentTitle derives a main title from a source reference.
func defaultContentTitle(ref string) string {
	if ref == "" {
		return "Presentation"
	}
	if source.IsURL(ref) {
		if u, err := url.Parse(ref); err == nil && u.Host != "" {
			return u.Host
		}
		return "Presentation"
	}
	base := filepath.Base(ref)
	if name := strings.TrimSuffix(base, filepath.Ext(base)); name != "" {
		return name
	}
	return "Presentation"
}
