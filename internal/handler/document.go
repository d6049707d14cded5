package handler

import (
	"log/slog"
	"net/http"

	"lectern/internal/domain/services"
	"lectern/internal/httputil"
)

// DocumentHandler handles the document endpoints that are not folder or
// file CRUD.
type DocumentHandler struct {
	docs   services.DocumentService
	logger *slog.Logger
}

// NewDocumentHandler creates a new document handler.
func NewDocumentHandler(docs services.DocumentService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{docs: docs, logger: logger}
}

// AccessibleTeachers lists the teachers a student may browse documents for.
// GET /api/documents/teachers
func (h *DocumentHandler) AccessibleTeachers(w http.ResponseWriter, r *http.Request) {
	actor, ok := getActor(w, r)
	if !ok {
		return
	}

	teachers, err := h.docs.AccessibleTeachers(r.Context(), actor)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, "teachers fetched", teachers)
}

// HealthCheck reports service liveness.
// GET /health
func (h *DocumentHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, "ok", nil)
}
