package sitesettings

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cleanbook/internal/api"
)

type Handlers struct {
	Repo *Repository
}

// Get serves a settings document (hero, homepage, ...) to the storefront.
func (h Handlers) Get(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing key")
		return
	}
	s, err := h.Repo.Get(r.Context(), key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "setting not found")
			return
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	api.WriteJSON(w, http.StatusOK, s)
}

// Put upserts a settings document wholesale. The body is the document itself.
func (h Handlers) Put(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing key")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid body")
		return
	}
	if !json.Valid(body) {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "body must be valid json")
		return
	}

	s, err := h.Repo.Upsert(r.Context(), key, body)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to save setting")
		return
	}
	api.WriteJSON(w, http.StatusOK, s)
}
