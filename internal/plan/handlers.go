package plan

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

func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context())
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []Plan{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

type Request struct {
	Name       string   `json:"name"`
	PriceLabel string   `json:"priceLabel"`
	Points     []string `json:"points"`
	Popular    bool     `json:"popular"`
}

func (req *Request) validate() (string, bool) {
	if strings.TrimSpace(req.Name) == "" {
		return "name is required", false
	}
	var points []string
	for _, p := range req.Points {
		if s := strings.TrimSpace(p); s != "" {
			points = append(points, s)
		}
	}
	if len(points) == 0 {
		return "at least one point is required", false
	}
	req.Points = points
	return "", true
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

	p, err := h.Repo.Create(r.Context(), req.Name, req.PriceLabel, req.Points, req.Popular)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to create plan")
		return
	}
	api.WriteJSON(w, http.StatusCreated, p)
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

	if err := h.Repo.Update(r.Context(), id, req.Name, req.PriceLabel, req.Points, req.Popular); err != nil {
		if errors.Is(err, ErrNotFound) {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "plan not found")
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
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "plan not found")
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
