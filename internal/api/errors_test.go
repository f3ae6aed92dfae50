package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/generation"
	"github.com/phrazzld/scry-decks/internal/service"
	"github.com/phrazzld/scry-decks/internal/service/auth"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"deck not found", service.ErrDeckNotFound, http.StatusNotFound},
		{"card not found", service.ErrCardNotFound, http.StatusNotFound},
		{"access denied", service.ErrAccessDenied, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("get deck: %w", service.ErrDeckNotFound), http.StatusNotFound},
		{"invalid input", service.ErrInvalidInput, http.StatusBadRequest},
		{"validation", domain.NewValidationError("front", "cannot be empty", domain.ErrCardFrontEmpty), http.StatusBadRequest},
		{"generation disabled", service.ErrGenerationDisabled, http.StatusServiceUnavailable},
		{"content blocked", fmt.Errorf("%w: %w", service.ErrInvalidInput, generation.ErrContentBlocked), http.StatusBadRequest},
		{"unexpected", service.NewServiceError("op", "msg", errors.New("boom")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
	assert.Equal(t, "Deck not found", GetSafeErrorMessage(service.ErrAccessDenied))
	assert.Equal(t, "Deck not found", GetSafeErrorMessage(service.ErrDeckNotFound))
	assert.Equal(t, "Card not found", GetSafeErrorMessage(service.ErrCardNotFound))
	assert.Equal(t, "Invalid input", GetSafeErrorMessage(service.ErrInvalidInput))
	assert.Equal(t, "Text was rejected by content safety filters",
		GetSafeErrorMessage(fmt.Errorf("%w: %w", service.ErrInvalidInput, generation.ErrContentBlocked)))

	msg := GetSafeErrorMessage(errors.New("dial tcp 10.1.2.3:5432: connection refused"))
	assert.Equal(t, "dial tcp [REDACTED_HOST]: connection refused", msg)
}
