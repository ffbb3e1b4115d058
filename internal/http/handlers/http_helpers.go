package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rogerio-castellano/market-api/internal/repo"
)

// statusForError is the single mapping from domain error to HTTP status.
// Handlers never inspect error strings or library error types.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, repo.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, repo.ErrProductNotFound):
		return http.StatusNotFound, "product not found"
	case errors.Is(err, repo.ErrOrderNotFound):
		return http.StatusNotFound, "order not found"
	case errors.Is(err, repo.ErrInsufficientStock):
		return http.StatusConflict, "insufficient stock"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func (h *Handler) domainError(w http.ResponseWriter, err error) {
	status, msg := statusForError(err)
	if status == http.StatusInternalServerError {
		h.log.Errorw("request failed", "error", err)
	}
	http.Error(w, msg, status)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeValidationErrors(w http.ResponseWriter, errs []ValidationError) {
	writeJSON(w, http.StatusBadRequest, errs)
}

// idParam parses the {id} path parameter as a UUID.
func idParam(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}
