package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/scry-decks/internal/domain"
)

// Service errors. Callers check them with errors.Is; the API layer maps them to
// status codes.
var (
	// ErrNotFound is the kind shared by every "not found" outcome.
	ErrNotFound = errors.New("not found")

	// ErrDeckNotFound indicates the deck is absent or not visible to the requester.
	ErrDeckNotFound = fmt.Errorf("%w: deck", ErrNotFound)

	// ErrCardNotFound indicates no card matches both the deck and card IDs.
	ErrCardNotFound = fmt.Errorf("%w: card", ErrNotFound)

	// ErrAccessDenied is returned by the access guard. It is a not-found error so
	// that foreign decks are indistinguishable from absent ones.
	ErrAccessDenied = fmt.Errorf("%w: deck not found or access denied", ErrNotFound)

	// ErrInvalidInput indicates a malformed request payload.
	ErrInvalidInput = errors.New("invalid input")

	// ErrGenerationDisabled is returned when no card generator is configured.
	ErrGenerationDisabled = errors.New("card generation is not configured")
)

// ServiceError wraps unexpected failures with the operation that hit them.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// invalidInput marks err as ErrInvalidInput while keeping it inspectable.
func invalidInput(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}

// classify converts domain validation failures into ErrInvalidInput and wraps
// anything else as an unexpected ServiceError.
func classify(operation, message string, err error) error {
	if domain.IsValidationError(err) {
		return invalidInput(err)
	}
	return NewServiceError(operation, message, err)
}
