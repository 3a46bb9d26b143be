package handler

// RESPONSE HELPERS:
// These functions standardise how we send JSON responses and errors.
// Every error response from the API has the same shape:
//
//	{"error": "not_found", "message": "resource not found with id abc123"}
//
// so the frontend always knows what fields to expect, regardless of
// whether it's a 400, 404, 502, or 500.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/lgsobral/eduhub/internal/apperror"
)

// ErrorResponse is the standard error format returned by all API endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`           // Machine-readable error type (e.g., "not_found")
	Message string `json:"message"`         // Human-readable description
	Field   string `json:"field,omitempty"` // Which field failed, for validation errors
}

// writeJSON sends a JSON response with the given status code.
// Headers and status must be set BEFORE the body: once Encode calls
// Write, the headers are sent and any later change is silently ignored.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already gone; all we can do is log it.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to the appropriate HTTP status and
// sends it. This is the single place where the apperror taxonomy meets
// HTTP — the service layer never sees a status code.
//
// errors.Is walks the whole wrap chain (the service wraps repository
// errors with context), so the sentinel is found no matter how many
// fmt.Errorf layers sit on top of the AppError.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError

	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		errorType := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest // 400
			errorType = "validation_error"
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound // 404
			errorType = "not_found"
		case errors.Is(err, apperror.ErrGenerationTimeout):
			status = http.StatusGatewayTimeout // 504
			errorType = "generation_timeout"
		case errors.Is(err, apperror.ErrGenerationParse):
			status = http.StatusBadGateway // 502
			errorType = "generation_parse_error"
		case errors.Is(err, apperror.ErrGenerationValidation):
			status = http.StatusBadGateway // 502
			errorType = "generation_validation_error"
		case errors.Is(err, apperror.ErrGenerationUpstream):
			status = http.StatusBadGateway // 502
			errorType = "generation_upstream_error"
		case errors.Is(err, apperror.ErrStoreUnavailable):
			status = http.StatusServiceUnavailable // 503
			errorType = "store_unavailable"
		}

		writeJSON(w, status, ErrorResponse{
			Error:   errorType,
			Message: appErr.Message,
			Field:   appErr.Field,
		})
		return
	}

	// Unknown error — return a generic 500. The raw message might carry
	// SQL fragments or file paths, so it never reaches the client.
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}
