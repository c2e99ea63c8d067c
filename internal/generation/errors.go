package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrQuotaExceeded is returned by a TextGenerator when the service reports a
	// rate or usage limit. It is expected to be transient.
	ErrQuotaExceeded = errors.New("generation quota exhausted")

	// ErrGenerationFailed is returned when a call fails for any non-quota reason.
	ErrGenerationFailed = errors.New("failed to generate text")

	// ErrInvalidResponse is returned when the service response has no usable text
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the service blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
