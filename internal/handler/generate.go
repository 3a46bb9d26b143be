package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/lgsobral/eduhub/internal/apperror"
	"github.com/lgsobral/eduhub/internal/service"
)

// GenerateHandler exposes the Smart Assist endpoint.
type GenerateHandler struct {
	svc    *service.GenerateService
	logger *slog.Logger
}

// NewGenerateHandler creates a new GenerateHandler.
func NewGenerateHandler(svc *service.GenerateService, logger *slog.Logger) *GenerateHandler {
	return &GenerateHandler{svc: svc, logger: logger}
}

// HandleGenerate asks the language model for a description and tags.
//
// HTTP: POST /api/ai/generate
// REQUEST BODY: {"title": "...", "resource_type": "video"}
// RESPONSE: {"description": "...", "tags": ["...", ...]}
//
// This call blocks for the model round trip — seconds, sometimes tens
// of seconds. r.Context() is passed through, so a client that closes
// the connection (user navigated away) cancels the model call instead
// of leaving it running for nobody.
func (h *GenerateHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var in service.GenerateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.logger.Warn("invalid generate request JSON", slog.String("error", err.Error()))
		writeError(w, apperror.ValidationFailed("", "invalid JSON body"))
		return
	}

	gen, err := h.svc.Generate(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, gen)
}
