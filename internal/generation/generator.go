package generation

import (
	"context"
	"errors"
)

// TextGenerator defines the interface for a single call to a text generation service.
// This interface serves as a boundary between the application core and
// external AI/LLM services, following the hexagonal architecture pattern.
type TextGenerator interface {
	// GenerateText sends the prompt and returns the generated text.
	// Implementations signal quota exhaustion by returning an error that wraps
	// ErrQuotaExceeded; every other error is treated as a hard failure.
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Outcome tags the result of one generation call.
type Outcome string

// Possible outcomes of a call.
const (
	OutcomeSuccess       Outcome = "success"
	OutcomeQuotaExceeded Outcome = "quota_exceeded"
	OutcomeFailure       Outcome = "failure"
)

// Result is the classified outcome of one call.
type Result struct {
	Kind Outcome
	Text string
	Err  error
}

// Classify converts the return values of a TextGenerator call into a Result.
func Classify(text string, err error) Result {
	switch {
	case err == nil:
		return Result{Kind: OutcomeSuccess, Text: text}
	case errors.Is(err, ErrQuotaExceeded):
		return Result{Kind: OutcomeQuotaExceeded, Err: err}
	default:
		return Result{Kind: OutcomeFailure, Err: err}
	}
}

// GeneratorFunc adapts a function to the TextGenerator interface.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

// GenerateText implements TextGenerator.
func (f GeneratorFunc) GenerateText(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
