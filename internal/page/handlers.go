package page

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
	items, err := h.Repo.ListPublished(r.Context())
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []Page{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h Handlers) GetPublic(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing slug")
		return
	}
	p, err := h.Repo.GetPublishedBySlug(r.Context(), slug)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "page not found")
		return
	}
	api.WriteJSON(w, http.StatusOK, p)
}

func (h Handlers) ListAdmin(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.ListAll(r.Context())
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []Page{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

type Request struct {
	Title           string          `json:"title"`
	Content         string          `json:"content"`
	MetaDescription string          `json:"metaDescription"`
	Category        string          `json:"category"`
	ShowInNavbar    bool            `json:"showInNavbar"`
	NavbarOrder     int             `json:"navbarOrder"`
	Images          json.RawMessage `json:"images"`
	IsPublished     bool            `json:"isPublished"`
}

func (req Request) input() Input {
	return Input{
		Title:           req.Title,
		Content:         req.Content,
		MetaDescription: req.MetaDescription,
		Category:        req.Category,
		ShowInNavbar:    req.ShowInNavbar,
		NavbarOrder:     req.NavbarOrder,
		Images:          req.Images,
		IsPublished:     req.IsPublished,
	}
}

func (h Handlers) Create(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "title is required")
		return
	}

	p, err := h.Repo.Create(r.Context(), req.input())
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to create page")
		return
	}
	api.WriteJSON(w, http.StatusCreated, p)
}

func (h Handlers) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid id")
		return
	}
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "title is required")
		return
	}

	p, err := h.Repo.Update(r.Context(), id, req.input())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "page not found")
			return
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	api.WriteJSON(w, http.StatusOK, p)
}

func (h Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid id")
		return
	}
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "page not found")
			return
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
