package apperror

import (
	"errors"
	"fmt"
)

// Sentinel errors — the distinct failure kinds the rest of the application
// matches on with errors.Is. Handlers translate each kind to an HTTP status;
// services return them without knowing anything about HTTP.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")

	// Generation pipeline failures. Kept separate (not folded into one
	// generic "AI error") so the frontend can offer different recovery UX:
	// a timeout gets a retry button, a parse failure gets "try again or
	// write the description yourself", bad input gets an inline field error.
	ErrGenerationTimeout    = errors.New("generation timeout")
	ErrGenerationParse      = errors.New("generation parse error")
	ErrGenerationValidation = errors.New("generation validation error")
	ErrGenerationUpstream   = errors.New("generation upstream error")

	// ErrStoreUnavailable means the backing datastore is unreachable.
	// Fatal for the current request; never retried inside a service.
	ErrStoreUnavailable = errors.New("store unavailable")
)

type AppError struct {
	Err     error  // actual error
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// GenerationTimeout returns an AppError for a language-model call that
// exceeded its deadline. HTTP handlers map this to 504 Gateway Timeout.
func GenerationTimeout(message string) *AppError {
	return &AppError{
		Err:     ErrGenerationTimeout,
		Message: message,
	}
}

// GenerationParse returns an AppError for model output from which no
// valid JSON object could be extracted.
func GenerationParse(message string) *AppError {
	return &AppError{
		Err:     ErrGenerationParse,
		Message: message,
	}
}

// GenerationValidation returns an AppError for model output that parsed
// as JSON but failed structural validation (e.g. an empty description).
func GenerationValidation(message string) *AppError {
	return &AppError{
		Err:     ErrGenerationValidation,
		Message: message,
	}
}

// GenerationUpstream returns an AppError for a transport-level failure
// talking to the language-model API (connection refused, HTTP 5xx, ...).
func GenerationUpstream(message string) *AppError {
	return &AppError{
		Err:     ErrGenerationUpstream,
		Message: message,
	}
}

// StoreUnavailable returns an AppError for an unreachable datastore.
func StoreUnavailable(message string) *AppError {
	return &AppError{
		Err:     ErrStoreUnavailable,
		Message: message,
	}
}
