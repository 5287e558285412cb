package catalog

import (
	"log"
	"net/http"

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
		items = []Service{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

type DetailResponse struct {
	Service *Service `json:"service"`
	Options []Option `json:"options"`

	// OptionsUnavailable marks a degraded response: the service loaded but its
	// options could not be fetched. The page still renders, without options.
	OptionsUnavailable bool `json:"optionsUnavailable,omitempty"`

	// ConfigurationWarnings names required options that have no choices yet.
	// Operator-facing: it means the back-office data entry is incomplete.
	ConfigurationWarnings []string `json:"configurationWarnings,omitempty"`
}

// Detail is the option catalog loader behind the service detail view.
func (h Handlers) Detail(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing slug")
		return
	}

	svc, err := h.Repo.GetBySlug(r.Context(), slug)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "service not found")
		return
	}

	resp := DetailResponse{Service: svc, Options: []Option{}}

	if svc.HasOptions {
		options, err := h.Repo.ListOptions(r.Context(), svc.ID)
		if err != nil {
			// Degrade to a no-options view instead of failing the whole page.
			log.Printf("catalog: options load failed service=%d slug=%s err=%v", svc.ID, slug, err)
			resp.OptionsUnavailable = true
		} else {
			resp.Options = options
			for _, o := range options {
				if o.IsRequired && len(o.Choices) == 0 {
					resp.ConfigurationWarnings = append(resp.ConfigurationWarnings, o.Name)
				}
			}
		}
	}

	api.WriteJSON(w, http.StatusOK, resp)
}
