package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for all environment variables read by Load.
const EnvPrefix = "DECKFORGE"

// setDefaults registers every key with its default value. Registering each key
// also lets viper map environment variables onto nested fields during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.openai_api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.model_name", "gemini-1.5-flash")
	v.SetDefault("llm.max_attempts", 5)
	v.SetDefault("llm.retry_delay_seconds", 10)
	v.SetDefault("llm.call_interval_ms", 1000)
	v.SetDefault("llm.concurrency", 1)
	v.SetDefault("llm.max_slides", 0)
	v.SetDefault("llm.title_prompt_template_path", "")
	v.SetDefault("llm.content_prompt_template_path", "")

	v.SetDefault("deck.max_chars", 300)
	v.SetDefault("deck.title_font_size", 30)
	v.SetDefault("deck.body_font_size", 24)
	v.SetDefault("deck.font_color", "000000")
	v.SetDefault("deck.output_dir", "generated_ppt")
	v.SetDefault("deck.output_file", "presentation.pptx")

	v.SetDefault("source.http_timeout_seconds", 20)
	v.SetDefault("source.cache_ttl_minutes", 30)
	v.SetDefault("source.user_agent", "deckforge/1.0")

	v.SetDefault("task.worker_count", 1)
	v.SetDefault("task.queue_size", 16)
}

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is like Load but reads the given config file instead of searching
// for config.yaml in the working directory. A missing default file is not an error.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
