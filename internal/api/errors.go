package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/deckforge/internal/api/shared"
	"github.com/phrazzld/deckforge/internal/domain"
	"github.com/phrazzld/deckforge/internal/task"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors

	switch {
	case errors.As(err, &validationErrs),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidFormat):
		return http.StatusBadRequest

	case errors.Is(err, task.ErrTaskNotFound):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrEmptyOutline),
		errors.Is(err, domain.ErrNothingToRender):
		return http.StatusUnprocessableEntity

	case errors.Is(err, domain.ErrSourceUnavailable):
		return http.StatusBadGateway

	case errors.Is(err, task.ErrQueueFull),
		errors.Is(err, task.ErrQueueClosed):
		return http.StatusServiceUnavailable

	case errors.Is(err, domain.ErrPersistenceFailure):
		return http.StatusInternalServerError

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErrs validator.ValidationErrors

	switch {
	case errors.As(err, &validationErrs):
		return SanitizeValidationError(err)
	case errors.Is(err, domain.ErrInvalidFormat):
		return "Invalid format"
	case errors.Is(err, domain.ErrValidation):
		return "Invalid request"
	case errors.Is(err, task.ErrTaskNotFound):
		return "Deck not found"
	case errors.Is(err, domain.ErrEmptyOutline):
		return "No slides could be generated for this topic"
	case errors.Is(err, domain.ErrNothingToRender):
		return "The content contains no text to put on slides"
	case errors.Is(err, domain.ErrSourceUnavailable):
		return "The source could not be read"
	case errors.Is(err, task.ErrQueueFull):
		return "Too many decks in progress, try again later"
	case errors.Is(err, task.ErrQueueClosed):
		return "The server is shutting down"
	case errors.Is(err, domain.ErrPersistenceFailure):
		return "The deck could not be saved"
	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator errors into a message naming the
// first failing field.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		fe := validationErrs[0]
		return fmt.Sprintf("Invalid %s: %s", jsonFieldName(fe.Field()), getValidationTagMessage(fe.Tag()))
	}
	return "Validation error"
}

func jsonFieldName(field string) string {
	switch field {
	case "MainTitle":
		return "main_title"
	case "TitleFontSize":
		return "title_font_size"
	case "FontSize":
		return "font_size"
	case "FontColor":
		return "font_color"
	case "MaxChars":
		return "max_chars"
	default:
		return strings.ToLower(field)
	}
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required", "required_without":
		return "required field"
	case "excluded_with":
		return "cannot be combined with the other source"
	case "min", "gte":
		return "too small"
	case "max", "lte":
		return "too large"
	case "url":
		return "invalid URL"
	case "hexadecimal", "len":
		return "invalid color"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the status and safe message for err. A non-empty
// defaultMsg replaces the generic message for unclassified errors.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && defaultMsg != "" &&
		!errors.Is(err, domain.ErrPersistenceFailure) {
		message = defaultMsg
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
