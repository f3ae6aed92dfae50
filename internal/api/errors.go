package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/scry-decks/internal/api/shared"
	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/generation"
	"github.com/phrazzld/scry-decks/internal/redact"
	"github.com/phrazzld/scry-decks/internal/service"
	"github.com/phrazzld/scry-decks/internal/service/auth"
)

// MapErrorToStatusCode maps service errors to HTTP status codes.
// Access denial is reported as 404, like a missing resource.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrMissingUserID):
		return http.StatusUnauthorized

	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, service.ErrInvalidInput),
		domain.IsValidationError(err):
		return http.StatusBadRequest

	case errors.Is(err, service.ErrGenerationDisabled):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the client-facing message for err. Not-found and
// access-denied share one message per resource. Unexpected errors carry their
// redacted text.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrMissingUserID):
		return "Invalid token"

	case errors.Is(err, service.ErrCardNotFound):
		return "Card not found"
	case errors.Is(err, service.ErrDeckNotFound),
		errors.Is(err, service.ErrAccessDenied):
		return "Deck not found"
	case errors.Is(err, service.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, generation.ErrContentBlocked):
		return "Text was rejected by content safety filters"
	case errors.Is(err, generation.ErrEmptyText):
		return "Text cannot be empty"
	case errors.Is(err, service.ErrInvalidInput),
		domain.IsValidationError(err):
		return validationMessage(err)

	case errors.Is(err, service.ErrGenerationDisabled):
		return "Card generation is not configured"

	default:
		return redact.Error(err)
	}
}

func validationMessage(err error) string {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Error()
	}
	return "Invalid input"
}

// HandleAPIError writes the response for err. A non-empty message replaces the
// mapped one for 4xx responses.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	safeMessage := GetSafeErrorMessage(err)
	if message != "" && status < http.StatusInternalServerError {
		safeMessage = message
	}
	shared.RespondWithErrorAndLog(w, r, status, safeMessage, err)
}
