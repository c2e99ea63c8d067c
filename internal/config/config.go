package config

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey is returned when the selected provider has no key.
var ErrMissingAPIKey = errors.New("missing API key for the configured LLM provider")

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	LLM    LLMConfig    `mapstructure:"llm"    validate:"required"`
	Deck   DeckConfig   `mapstructure:"deck"   validate:"required"`
	Source SourceConfig `mapstructure:"source" validate:"required"`
	Task   TaskConfig   `mapstructure:"task"   validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	Provider     string `mapstructure:"provider"       validate:"required,oneof=gemini openai"`
	// API keys are checked by RequireCredentials, so commands that never
	// call a model work without them.
	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	OpenAIAPIKey string `mapstructure:"openai_api_key"`
	BaseURL      string `mapstructure:"base_url"       validate:"omitempty,url"`
	ModelName    string `mapstructure:"model_name"     validate:"required"`

	// MaxAttempts is the total number of calls made when the quota is exhausted.
	MaxAttempts int `mapstructure:"max_attempts" validate:"gte=1,lte=20"`

	// RetryDelaySeconds is the fixed wait between quota retries.
	RetryDelaySeconds int `mapstructure:"retry_delay_seconds" validate:"gte=0"`

	// CallIntervalMillis is the minimum idle time between independent calls.
	CallIntervalMillis int `mapstructure:"call_interval_ms" validate:"gte=0"`

	// Concurrency is the number of slide bodies generated in parallel.
	Concurrency int `mapstructure:"concurrency" validate:"gte=1,lte=8"`

	// MaxSlides caps the number of generated titles; zero means no cap.
	MaxSlides int `mapstructure:"max_slides" validate:"gte=0"`

	TitlePromptTemplatePath   string `mapstructure:"title_prompt_template_path"`
	ContentPromptTemplatePath string `mapstructure:"content_prompt_template_path"`
}

// DeckConfig contains typography and output settings for generated decks.
type DeckConfig struct {
	MaxChars      int     `mapstructure:"max_chars"       validate:"gt=0"`
	TitleFontSize float64 `mapstructure:"title_font_size" validate:"gte=12,lte=96"`
	BodyFontSize  float64 `mapstructure:"body_font_size"  validate:"gte=12,lte=48"`
	FontColor     string  `mapstructure:"font_color"      validate:"len=6,hexadecimal"`
	OutputDir     string  `mapstructure:"output_dir"      validate:"required"`
	OutputFile    string  `mapstructure:"output_file"     validate:"required"`
}

// SourceConfig contains settings for reading documents and web pages.
type SourceConfig struct {
	HTTPTimeoutSeconds int    `mapstructure:"http_timeout_seconds" validate:"gt=0"`
	CacheTTLMinutes    int    `mapstructure:"cache_ttl_minutes"    validate:"gte=0"`
	UserAgent          string `mapstructure:"user_agent"           validate:"required"`
}

// TaskConfig contains settings for background deck jobs in server mode.
type TaskConfig struct {
	WorkerCount int `mapstructure:"worker_count" validate:"gte=1"`
	QueueSize   int `mapstructure:"queue_size"   validate:"gte=1"`
}

// RequireCredentials checks that the configured provider has an API key.
func (c LLMConfig) RequireCredentials() error {
	switch c.Provider {
	case "openai":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("%w: set llm.openai_api_key (%s_LLM_OPENAI_API_KEY)", ErrMissingAPIKey, EnvPrefix)
		}
	default:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("%w: set llm.gemini_api_key (%s_LLM_GEMINI_API_KEY)", ErrMissingAPIKey, EnvPrefix)
		}
	}
	return nil
}
