package media

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"cleanbook/internal/api"
)

type Handlers struct {
	Repo *Repository
}

type createRequest struct {
	FileURL string `json:"file_url"`
	Alt     string `json:"alt"`
	Kind    string `json:"kind"`
}

func (req createRequest) validate() error {
	if strings.TrimSpace(req.FileURL) == "" {
		return errors.New("file_url is required")
	}
	if _, err := url.ParseRequestURI(req.FileURL); err != nil {
		return errors.New("file_url must be a valid URL")
	}
	switch req.Kind {
	case "", "gallery", "before_after", "other":
		return nil
	default:
		return errors.New("kind must be gallery, before_after or other")
	}
}

func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.Repo.List(r.Context())
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to list media")
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"media": records})
}

func (h Handlers) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body")
		return
	}
	if err := req.validate(); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}
	rec, err := h.Repo.Insert(r.Context(), req.FileURL, req.Alt, req.Kind)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to create media record")
		return
	}
	api.WriteJSON(w, http.StatusCreated, rec)
}

func (h Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid media id")
		return
	}
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "media record not found")
			return
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to delete media record")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
