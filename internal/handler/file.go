package handler

import (
	"log/slog"
	"net/http"

	"lectern/internal/domain/services"
	"lectern/internal/httputil"
)

// FileHandler handles file HTTP requests, including the two-phase upload.
type FileHandler struct {
	docs   services.DocumentService
	logger *slog.Logger
}

// NewFileHandler creates a new file handler.
func NewFileHandler(docs services.DocumentService, logger *slog.Logger) *FileHandler {
	return &FileHandler{docs: docs, logger: logger}
}

// RequestUploadURL is phase 1 of the upload protocol.
// POST /api/documents/files/upload-url
func (h *FileHandler) RequestUploadURL(w http.ResponseWriter, r *http.Request) {
	actor, ok := getActor(w, r)
	if !ok {
		return
	}

	var req services.RequestUploadRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ticket, err := h.docs.RequestUpload(r.Context(), actor, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, "upload url issued", ticket)
}

// Save is phase 2: commit the uploaded file's metadata.
// POST /api/documents/files
func (h *FileHandler) Save(w http.ResponseWriter, r *http.Request) {
	actor, ok := getActor(w, r)
	if !ok {
		return
	}

	var req services.SaveFileRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	file, err := h.docs.SaveFile(r.Context(), actor, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, "file saved", file)
}

// Download returns a signed download URL for the file.
// GET /api/documents/files/{id}/download?teacher_id=
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	actor, ok := getActor(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "file ID is required")
		return
	}

	info, err := h.docs.FileDownload(r.Context(), actor, id, r.URL.Query().Get("teacher_id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, "download url issued", info)
}

// Rename renames a file.
// PUT /api/documents/files/{id}
func (h *FileHandler) Rename(w http.ResponseWriter, r *http.Request) {
	actor, ok := getActor(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "file ID is required")
		return
	}

	var req services.RenameFileRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	file, err := h.docs.RenameFile(r.Context(), actor, id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, "file renamed", file)
}

// Delete deletes a file.
// DELETE /api/documents/files/{id}?teacher_id=
func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := getActor(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "file ID is required")
		return
	}

	if err := h.docs.DeleteFile(r.Context(), actor, id, r.URL.Query().Get("teacher_id")); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, "file deleted", nil)
}
