package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// FallbackText is returned in place of generated text when every attempt was
// rejected for quota reasons.
const FallbackText = "Unable to generate content because the generation quota was exhausted. Please try again later."

// Retry defaults.
const (
	DefaultMaxAttempts = 5
	DefaultRetryDelay  = 10 * time.Second
)

// RetryPolicy bounds the retries performed for quota exhaustion.
type RetryPolicy struct {
	// MaxAttempts is the total number of calls, including the first one.
	MaxAttempts int

	// Delay is the fixed wait between attempts.
	Delay time.Duration
}

// DefaultRetryPolicy returns a RetryPolicy with 5 attempts spaced 10 seconds apart.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: DefaultMaxAttempts,
		Delay:       DefaultRetryDelay,
	}
}

// RetryNotifier is told about each wait before it happens.
// attempt is the 1-based number of the attempt that just failed.
type RetryNotifier func(attempt int, wait time.Duration)

// Sleeper blocks for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Recorder receives counters about calls. Implementations must be safe for
// concurrent use.
type Recorder interface {
	ObserveAttempt(outcome Outcome)
	ObserveRetry()
	ObserveFallback()
}

type noopRecorder struct{}

func (noopRecorder) ObserveAttempt(Outcome) {}
func (noopRecorder) ObserveRetry()          {}
func (noopRecorder) ObserveFallback()       {}

// Option configures a Client.
type Option func(*Client)

// WithNotifier sets the hook called before every retry wait.
func WithNotifier(n RetryNotifier) Option {
	return func(c *Client) {
		if n != nil {
			c.notify = n
		}
	}
}

// WithSleeper replaces the wait implementation.
func WithSleeper(s Sleeper) Option {
	return func(c *Client) {
		if s != nil {
			c.sleep = s
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(c *Client) {
		if r != nil {
			c.recorder = r
		}
	}
}

// Client calls a TextGenerator with bounded retry on quota exhaustion.
//
// Client keeps no state between calls, so each Generate call has its own
// attempt budget and a Client may be shared by concurrent callers.
type Client struct {
	gen      TextGenerator
	policy   RetryPolicy
	logger   *slog.Logger
	notify   RetryNotifier
	sleep    Sleeper
	recorder Recorder
}

// NewClient creates a Client. Invalid policy values are replaced with defaults.
func NewClient(gen TextGenerator, policy RetryPolicy, logger *slog.Logger, opts ...Option) (*Client, error) {
	if gen == nil {
		return nil, errors.New("text generator cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if policy.MaxAttempts < 1 {
		logger.Warn("invalid max attempts value, using default",
			"max_attempts", policy.MaxAttempts,
			"default", DefaultMaxAttempts)
		policy.MaxAttempts = DefaultMaxAttempts
	}
	if policy.Delay < 0 {
		logger.Warn("invalid retry delay value, using default",
			"delay", policy.Delay,
			"default", DefaultRetryDelay)
		policy.Delay = DefaultRetryDelay
	}

	c := &Client{
		gen:      gen,
		policy:   policy,
		logger:   logger,
		notify:   func(int, time.Duration) {},
		sleep:    sleepContext,
		recorder: noopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Policy returns the effective retry policy.
func (c *Client) Policy() RetryPolicy {
	return c.policy
}

// Generate sends the prompt, retrying quota failures up to the policy's attempt
// budget with a fixed delay between attempts.
//
// When every attempt hits the quota it returns FallbackText and a nil error.
// Any other failure is returned immediately, wrapped in ErrGenerationFailed.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", fmt.Errorf("%w: prompt cannot be empty", ErrGenerationFailed)
	}

	maxAttempts := c.policy.MaxAttempts
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		c.logger.DebugContext(ctx, "calling text generator",
			"attempt", attempt,
			"max_attempts", maxAttempts,
			"prompt_length", len(prompt))

		res := Classify(c.gen.GenerateText(ctx, prompt))
		c.recorder.ObserveAttempt(res.Kind)

		switch res.Kind {
		case OutcomeSuccess:
			c.logger.DebugContext(ctx, "text generation successful",
				"attempt", attempt,
				"text_length", len(res.Text))
			return res.Text, nil

		case OutcomeFailure:
			c.logger.ErrorContext(ctx, "text generation failed, not retrying",
				"attempt", attempt,
				"error", res.Err)
			if errors.Is(res.Err, ErrGenerationFailed) {
				return "", res.Err
			}
			return "", fmt.Errorf("%w: %w", ErrGenerationFailed, res.Err)
		}

		if attempt == maxAttempts {
			c.logger.ErrorContext(ctx, "generation quota exhausted, using fallback text",
				"attempts", attempt)
			c.recorder.ObserveFallback()
			return FallbackText, nil
		}

		c.logger.WarnContext(ctx, "generation quota exhausted, waiting before retry",
			"attempt", attempt,
			"max_attempts", maxAttempts,
			"wait", c.policy.Delay)
		c.notify(attempt, c.policy.Delay)
		c.recorder.ObserveRetry()

		if err := c.sleep(ctx, c.policy.Delay); err != nil {
			c.logger.WarnContext(ctx, "retry wait cancelled",
				"attempt", attempt,
				"ctx_err", err)
			return "", fmt.Errorf("%w: retry wait cancelled: %w", ErrGenerationFailed, err)
		}
	}

	// maxAttempts is at least 1, so the loop always returns.
	return FallbackText, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
