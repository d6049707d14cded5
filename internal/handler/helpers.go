package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"lectern/internal/domain"
	"lectern/internal/domain/models"
	"lectern/internal/httputil"
)

// handleError converts domain errors to HTTP responses. Unexpected errors
// are logged and surface as an opaque 500 - no internal detail reaches the
// client.
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrUpstream):
		slog.Error("upstream storage failure", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "storage service unavailable")
	default:
		slog.Error("unexpected error", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// getActor extracts the authenticated actor placed in the context by the
// auth middleware.
func getActor(w http.ResponseWriter, r *http.Request) (models.Actor, bool) {
	actor, ok := httputil.GetActor(r)
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "not authenticated")
		return models.Actor{}, false
	}
	return actor, true
}

// optionalParam returns a query or path value as a nullable string.
func optionalParam(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
