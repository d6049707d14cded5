package handler

import (
	"log/slog"
	"net/http"

	"lectern/internal/domain/services"
	"lectern/internal/httputil"
)

// FolderHandler handles folder HTTP requests.
type FolderHandler struct {
	docs   services.DocumentService
	logger *slog.Logger
}

// NewFolderHandler creates a new folder handler.
func NewFolderHandler(docs services.DocumentService, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{docs: docs, logger: logger}
}

// Contents lists a folder's children and breadcrumb.
// GET /api/documents/contents?folder_id=&teacher_id=
func (h *FolderHandler) Contents(w http.ResponseWriter, r *http.Request) {
	actor, ok := getActor(w, r)
	if !ok {
		return
	}

	folderID := optionalParam(r.URL.Query().Get("folder_id"))
	teacherHint := r.URL.Query().Get("teacher_id")

	contents, err := h.docs.Contents(r.Context(), actor, teacherHint, folderID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, "contents fetched", contents)
}

// Create creates a new folder.
// POST /api/documents/folders
func (h *FolderHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := getActor(w, r)
	if !ok {
		return
	}

	var req services.CreateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	folder, err := h.docs.CreateFolder(r.Context(), actor, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, "folder created", folder)
}

// Rename renames a folder.
// PUT /api/documents/folders/{id}
func (h *FolderHandler) Rename(w http.ResponseWriter, r *http.Request) {
	actor, ok := getActor(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "folder ID is required")
		return
	}

	var req services.RenameFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	folder, err := h.docs.RenameFolder(r.Context(), actor, id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, "folder renamed", folder)
}

// Delete deletes a folder and everything under it.
// DELETE /api/documents/folders/{id}?teacher_id=
func (h *FolderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := getActor(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "folder ID is required")
		return
	}

	if err := h.docs.DeleteFolder(r.Context(), actor, id, r.URL.Query().Get("teacher_id")); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, "folder deleted", nil)
}
