package testimonial

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"cleanbook/internal/api"
)

type Handlers struct {
	Repo *Repository
}

func (h Handlers) ListPublic(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.ListApproved(r.Context())
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []Testimonial{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h Handlers) ListAdmin(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.ListAll(r.Context())
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []Testimonial{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

type Request struct {
	Author string `json:"author"`
	Role   string `json:"role"`
	Rating int    `json:"rating"`
	Text   string `json:"text"`
	Status string `json:"status"`
}

func (req Request) validate() (string, bool) {
	if strings.TrimSpace(req.Author) == "" {
		return "author is required", false
	}
	if strings.TrimSpace(req.Text) == "" {
		return "text is required", false
	}
	if req.Rating < 1 || req.Rating > 5 {
		return "rating must be between 1 and 5", false
	}
	return "", true
}

func parseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusApproved, StatusPending:
		return Status(s), true
	case "":
		// Back-office entries are trusted; default to visible.
		return StatusApproved, true
	default:
		return "", false
	}
}

func (h Handlers) Create(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	if msg, ok := req.validate(); !ok {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", msg)
		return
	}
	status, ok := parseStatus(req.Status)
	if !ok {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid status")
		return
	}

	t, err := h.Repo.Create(r.Context(), req.Author, req.Role, req.Rating, req.Text, status)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to create testimonial")
		return
	}
	api.WriteJSON(w, http.StatusCreated, t)
}

func (h Handlers) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	if msg, ok := req.validate(); !ok {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", msg)
		return
	}
	status, ok := parseStatus(req.Status)
	if !ok {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid status")
		return
	}

	if err := h.Repo.Update(r.Context(), id, req.Author, req.Role, req.Rating, req.Text, status); err != nil {
		if errors.Is(err, ErrNotFound) {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "testimonial not found")
			return
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "testimonial not found")
			return
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid id")
		return 0, false
	}
	return id, true
}
