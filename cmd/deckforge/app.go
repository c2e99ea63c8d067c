package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/phrazzld/deckforge/internal/config"
	"github.com/phrazzld/deckforge/internal/deck"
	"github.com/phrazzld/deckforge/internal/generation"
	"github.com/phrazzld/deckforge/internal/platform/gemini"
	"github.com/phrazzld/deckforge/internal/platform/logger"
	"github.com/phrazzld/deckforge/internal/platform/metrics"
	"github.com/phrazzld/deckforge/internal/platform/openai"
	"github.com/phrazzld/deckforge/internal/service"
	"github.com/phrazzld/deckforge/internal/source"
	"github.com/phrazzld/deckforge/internal/synth"
)

// application holds the shared dependencies of every command.
type application struct {
	config  *config.Config
	logger  *slog.Logger
	metrics *metrics.Metrics
	decks   service.DeckService
}

// appOptions carries the persistent flags.
type appOptions struct {
	configPath string
	logLevel   string

	// withLLM wires a text generator; commands that never call a model
	// leave it off so they work without an API key.
	withLLM bool

	// stderr receives human-readable retry notices.
	stderr io.Writer

	// generator replaces the configured provider. Used by tests.
	generator generation.TextGenerator
}

// newApplication loads configuration and wires the deck pipeline.
func newApplication(ctx context.Context, opts appOptions) (*application, error) {
	cfg, err := config.LoadFile(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if opts.logLevel != "" {
		cfg.Server.LogLevel = opts.logLevel
	}

	log := logger.Setup(logger.LoggerConfig{Level: cfg.Server.LogLevel, Output: opts.stderr})
	m := metrics.New()

	builder, err := deck.NewBuilder(log)
	if err != nil {
		return nil, err
	}

	loader := source.NewResolver(
		source.NewFileLoader(log),
		source.NewWebLoader(source.WebOptions{
			Timeout:   time.Duration(cfg.Source.HTTPTimeoutSeconds) * time.Second,
			UserAgent: cfg.Source.UserAgent,
			CacheTTL:  time.Duration(cfg.Source.CacheTTLMinutes) * time.Minute,
		}, log),
	)

	deps := service.Dependencies{
		Loader:   loader,
		Builder:  builder,
		Recorder: m,
		Logger:   log,
	}

	if opts.withLLM {
		synthesizer, err := newSynthesizer(ctx, cfg.LLM, opts, log, m)
		if err != nil {
			return nil, err
		}
		deps.Synthesizer = synthesizer
	}

	decks, err := service.NewDeckService(deps, cfg.Deck)
	if err != nil {
		return nil, err
	}

	return &application{
		config:  cfg,
		logger:  log,
		metrics: m,
		decks:   decks,
	}, nil
}

func newSynthesizer(
	ctx context.Context,
	cfg config.LLMConfig,
	opts appOptions,
	log *slog.Logger,
	m *metrics.Metrics,
) (*synth.Synthesizer, error) {
	gen := opts.generator
	if gen == nil {
		var err error
		gen, err = newTextGenerator(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
	}

	policy := generation.RetryPolicy{
		MaxAttempts: cfg.MaxAttempts,
		Delay:       time.Duration(cfg.RetryDelaySeconds) * time.Second,
	}
	client, err := generation.NewClient(gen, policy, log,
		generation.WithRecorder(m),
		generation.WithNotifier(retryNotice(opts.stderr, policy.MaxAttempts)),
	)
	if err != nil {
		return nil, err
	}

	prompts, err := generation.LoadPrompts(cfg.TitlePromptTemplatePath, cfg.ContentPromptTemplatePath)
	if err != nil {
		return nil, err
	}

	return synth.New(client, prompts, synth.Options{
		CallInterval: time.Duration(cfg.CallIntervalMillis) * time.Millisecond,
		Concurrency:  cfg.Concurrency,
		MaxSlides:    cfg.MaxSlides,
	}, log)
}

// newTextGenerator selects the backend named by cfg.Provider.
func newTextGenerator(ctx context.Context, cfg config.LLMConfig, log *slog.Logger) (generation.TextGenerator, error) {
	if err := cfg.RequireCredentials(); err != nil {
		return nil, err
	}
	if cfg.Provider == "openai" {
		gen, err := openai.NewGenerator(log, cfg)
		if err != nil {
			return nil, err
		}
		return gen, nil
	}
	gen, err := gemini.NewGenerator(ctx, log, cfg)
	if err != nil {
		return nil, err
	}
	return gen, nil
}

// retryNotice tells the person at the terminal why the run is pausing.
func retryNotice(w io.Writer, maxAttempts int) generation.RetryNotifier {
	if w == nil {
		return nil
	}
	return func(attempt int, wait time.Duration) {
		fmt.Fprintf(w, "Quota exceeded, retrying in %s (attempt %d of %d)\n", wait, attempt+1, maxAttempts)
	}
}
