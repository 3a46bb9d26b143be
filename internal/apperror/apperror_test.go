package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	// Each test case checks that errors.Is() correctly identifies the error kind
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("resource", "abc123"),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("title", "title is required"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "GenerationTimeout wraps ErrGenerationTimeout",
			err:       GenerationTimeout("model call exceeded deadline"),
			target:    ErrGenerationTimeout,
			wantMatch: true,
		},
		{
			name:      "GenerationParse wraps ErrGenerationParse",
			err:       GenerationParse("no JSON object in response"),
			target:    ErrGenerationParse,
			wantMatch: true,
		},
		{
			name:      "GenerationValidation wraps ErrGenerationValidation",
			err:       GenerationValidation("description missing"),
			target:    ErrGenerationValidation,
			wantMatch: true,
		},
		{
			name:      "StoreUnavailable wraps ErrStoreUnavailable",
			err:       StoreUnavailable("database unreachable"),
			target:    ErrStoreUnavailable,
			wantMatch: true,
		},
		{
			name:      "NotFound does NOT match ErrValidation",
			err:       NotFound("resource", "abc123"),
			target:    ErrValidation,
			wantMatch: false,
		},
		{
			name:      "GenerationParse does NOT match ErrGenerationTimeout",
			err:       GenerationParse("garbage output"),
			target:    ErrGenerationTimeout,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.target)
			if got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

// TestErrorsIsThroughWrapping verifies the chain survives fmt.Errorf("%w").
// Services wrap repository errors with context before returning them, and
// the handler still needs errors.Is to find the sentinel at the bottom.
func TestErrorsIsThroughWrapping(t *testing.T) {
	inner := NotFound("resource", "xyz")
	wrapped := fmt.Errorf("getting resource: %w", inner)

	if !errors.Is(wrapped, ErrNotFound) {
		t.Errorf("errors.Is should find ErrNotFound through fmt.Errorf wrapping")
	}

	var appErr *AppError
	if !errors.As(wrapped, &appErr) {
		t.Fatal("errors.As should extract *AppError through wrapping")
	}
	if appErr.Message != "resource not found with id xyz" {
		t.Errorf("Message = %q, want %q", appErr.Message, "resource not found with id xyz")
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		err         *AppError
		wantMessage string
	}{
		{
			name:        "NotFound message includes resource and id",
			err:         NotFound("resource", "abc123"),
			wantMessage: "resource not found with id abc123",
		},
		{
			name:        "ValidationFailed uses custom message",
			err:         ValidationFailed("title", "title is required"),
			wantMessage: "title is required",
		},
		{
			name:        "GenerationTimeout uses custom message",
			err:         GenerationTimeout("the model took too long"),
			wantMessage: "the model took too long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	err := NotFound("resource", "abc123")
	if unwrapped := err.Unwrap(); unwrapped != ErrNotFound {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, ErrNotFound)
	}
}

func TestValidationFailedField(t *testing.T) {
	// The Field lets handlers tell the frontend WHICH field was invalid.
	err := ValidationFailed("url", "the URL must start with http:// or https://")
	if err.Field != "url" {
		t.Errorf("Field = %q, want %q", err.Field, "url")
	}
}
