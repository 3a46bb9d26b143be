// Package handler contains the HTTP layer: request parsing, response
// writing, and nothing else. Business rules live in the service layer.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/lgsobral/eduhub/internal/apperror"
	"github.com/lgsobral/eduhub/internal/service"
)

// ResourceHandler exposes resource CRUD and the paginated listing over HTTP.
type ResourceHandler struct {
	svc    *service.ResourceService
	logger *slog.Logger
}

// NewResourceHandler creates a new ResourceHandler.
func NewResourceHandler(svc *service.ResourceService, logger *slog.Logger) *ResourceHandler {
	return &ResourceHandler{svc: svc, logger: logger}
}

// HandleList returns one page of the filtered resource collection.
//
// HTTP: GET /api/resources?page=&page_size=&search=&resource_type=
//
// Absent page/page_size fall back to the service defaults; present but
// non-numeric values are a 400 rather than being silently ignored —
// treating "page=abc" as page 1 would mask a broken client.
func (h *ResourceHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := intQueryParam(q.Get("page"), "page")
	if err != nil {
		writeError(w, err)
		return
	}
	pageSize, err := intQueryParam(q.Get("page_size"), "page_size")
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.svc.List(r.Context(), service.ListInput{
		Search:       q.Get("search"),
		ResourceType: q.Get("resource_type"),
		Page:         page,
		PageSize:     pageSize,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// intQueryParam parses an optional integer query parameter. An empty
// value yields 0, which the service reads as "use the default".
func intQueryParam(value, name string) (int, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, apperror.ValidationFailed(name, name+" must be an integer")
	}
	return n, nil
}

// HandleGetByID returns a single resource.
//
// HTTP: GET /api/resources/{id}
func (h *ResourceHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	resource, err := h.svc.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resource)
}

// HandleCreate saves a new resource.
//
// HTTP: POST /api/resources
// REQUEST BODY: {"title": "...", "description": "...", "resource_type": "video", "url": "https://...", "tags": [...]}
func (h *ResourceHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in service.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.logger.Warn("invalid resource JSON", slog.String("error", err.Error()))
		writeError(w, apperror.ValidationFailed("", "invalid JSON body"))
		return
	}

	resource, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resource)
}

// HandleUpdate applies a partial update to an existing resource.
//
// HTTP: PUT /api/resources/{id}
//
// The body may contain any subset of the resource fields; fields not
// present keep their stored values (UpdateInput's pointer fields keep
// "absent" and "zero" apart). The full updated resource comes back.
func (h *ResourceHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var in service.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.logger.Warn("invalid resource JSON", slog.String("error", err.Error()))
		writeError(w, apperror.ValidationFailed("", "invalid JSON body"))
		return
	}

	resource, err := h.svc.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resource)
}

// HandleDelete removes a resource permanently.
//
// HTTP: DELETE /api/resources/{id}
func (h *ResourceHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent) // 204 — deleted, no body
}
