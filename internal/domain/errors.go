// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidFormat is returned when data is not in the expected format.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrEmptyOutline is returned when no slide titles could be derived for a topic.
	// The run is aborted and no deck is written.
	ErrEmptyOutline = errors.New("no slide titles could be generated")

	// ErrNothingToRender is returned when a source produced no slide-sized content.
	ErrNothingToRender = errors.New("source contains no content to render")

	// ErrSourceUnavailable is returned when a file or web page could not be read.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrPersistenceFailure is returned when the deck file could not be written.
	ErrPersistenceFailure = errors.New("failed to persist deck")
)
