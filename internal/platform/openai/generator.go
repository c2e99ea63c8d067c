package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/phrazzld/deckforge/internal/config"
	"github.com/phrazzld/deckforge/internal/generation"
)

// Generator implements generation.TextGenerator using chat completions.
type Generator struct {
	logger *slog.Logger
	client openai.Client
	model  string
}

var _ generation.TextGenerator = (*Generator)(nil)

// NewGenerator creates a Generator from the LLM configuration. Extra request
// options are appended after the configured ones.
func NewGenerator(logger *slog.Logger, cfg config.LLMConfig, extra ...option.RequestOption) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("%w: openai API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.OpenAIAPIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	opts = append(opts, extra...)

	return &Generator{
		logger: logger.With("provider", "openai", "model", cfg.ModelName),
		client: openai.NewClient(opts...),
		model:  cfg.ModelName,
	}, nil
}

// GenerateText sends prompt as a single user message and returns the first choice.
func (g *Generator) GenerateText(ctx context.Context, prompt string) (string, error) {
	g.logger.DebugContext(ctx, "Making OpenAI API call", "prompt_length", len(prompt))

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
	})
	if err != nil {
		classified := classifyError(err)
		g.logger.WarnContext(ctx, "OpenAI API call failed", "error", classified)
		return "", classified
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", generation.ErrInvalidResponse)
	}

	choice := resp.Choices[0]
	if choice.FinishReason == "content_filter" {
		return "", fmt.Errorf("%w: content filtered", generation.ErrContentBlocked)
	}

	text := strings.TrimSpace(choice.Message.Content)
	if text == "" {
		return "", fmt.Errorf("%w: response contained no text", generation.ErrInvalidResponse)
	}

	g.logger.DebugContext(ctx, "OpenAI API call successful", "response_length", len(text))
	return text, nil
}

func classifyError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %v", generation.ErrQuotaExceeded, err)
	}
	return fmt.Errorf("%w: openai request failed: %v", generation.ErrGenerationFailed, err)
}
