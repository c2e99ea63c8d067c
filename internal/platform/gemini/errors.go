package gemini

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/deckforge/internal/generation"
	"google.golang.org/genai"
)

// statusResourceExhausted is the Google RPC status reported for quota errors.
const statusResourceExhausted = "RESOURCE_EXHAUSTED"

// classifyError translates an error returned by the genai client into the
// generation error taxonomy.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	if isQuotaError(err) {
		return fmt.Errorf("%w: %v", generation.ErrQuotaExceeded, err)
	}

	return fmt.Errorf("%w: gemini request failed: %v", generation.ErrGenerationFailed, err)
}

func isQuotaError(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Status == statusResourceExhausted
	}

	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code == http.StatusTooManyRequests || apiErrPtr.Status == statusResourceExhausted
	}

	// Errors that lost their type on the way (for example through a proxy)
	// still carry the status text.
	return strings.Contains(err.Error(), statusResourceExhausted)
}
