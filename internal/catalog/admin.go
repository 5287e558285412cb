package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"cleanbook/internal/api"
	"cleanbook/internal/audit"
)

// AdminHandlers is the back-office CRUD surface for services, options and
// choices. Every mutation leaves an audit trail.
type AdminHandlers struct {
	Repo  *Repository
	Audit *audit.Repository
}

type ServiceRequest struct {
	Name        string          `json:"name"`
	PageTitle   string          `json:"pageTitle"`
	Description string          `json:"description"`
	Price       string          `json:"price"`
	BasePrice   decimal.Decimal `json:"basePrice"`
	ImageURL    string          `json:"imageUrl"`
}

func (h AdminHandlers) actor(r *http.Request) string {
	if u := api.UserFromContext(r.Context()); u != nil && u.Email != "" {
		return u.Email
	}
	return "admin"
}

func (h AdminHandlers) CreateService(w http.ResponseWriter, r *http.Request) {
	var req ServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	if req.Name == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "name is required")
		return
	}
	if req.BasePrice.IsNegative() {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "base price cannot be negative")
		return
	}

	svc, err := h.Repo.CreateService(r.Context(), ServiceInput{
		Name:        req.Name,
		PageTitle:   req.PageTitle,
		Description: req.Description,
		Price:       req.Price,
		BasePrice:   req.BasePrice,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		if errors.Is(err, ErrSlugTaken) {
			api.WriteError(w, http.StatusConflict, "VALIDATION_FAILED", "a service with this name already exists")
			return
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to create service")
		return
	}

	_ = h.Audit.Insert(r.Context(), h.actor(r), "SERVICE_CREATED", "service", &svc.ID, map[string]any{"name": svc.Name, "slug": svc.Slug})
	api.WriteJSON(w, http.StatusCreated, svc)
}

func (h AdminHandlers) UpdateService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req ServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	if req.Name == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "name is required")
		return
	}
	if req.BasePrice.IsNegative() {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "base price cannot be negative")
		return
	}

	svc, err := h.Repo.UpdateService(r.Context(), id, ServiceInput{
		Name:        req.Name,
		PageTitle:   req.PageTitle,
		Description: req.Description,
		Price:       req.Price,
		BasePrice:   req.BasePrice,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		writeRepoError(w, err, "service not found")
		return
	}

	_ = h.Audit.Insert(r.Context(), h.actor(r), "SERVICE_UPDATED", "service", &svc.ID, nil)
	api.WriteJSON(w, http.StatusOK, svc)
}

func (h AdminHandlers) DeleteService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Repo.DeleteService(r.Context(), id); err != nil {
		writeRepoError(w, err, "service not found")
		return
	}
	_ = h.Audit.Insert(r.Context(), h.actor(r), "SERVICE_DELETED", "service", &id, nil)
	w.WriteHeader(http.StatusNoContent)
}

// ListOptions returns options with choices plus the same configuration
// warnings the storefront sees, so the back-office can surface incomplete
// required options where they get fixed.
func (h AdminHandlers) ListOptions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if _, err := h.Repo.GetByID(r.Context(), id); err != nil {
		writeRepoError(w, err, "service not found")
		return
	}
	options, err := h.Repo.ListOptions(r.Context(), id)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	var warnings []string
	for _, o := range options {
		if o.IsRequired && len(o.Choices) == 0 {
			warnings = append(warnings, o.Name)
		}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{
		"items":                 options,
		"configurationWarnings": warnings,
	})
}

// ListSections returns a service's detail-page layout for the back-office
// layout editor.
func (h AdminHandlers) ListSections(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if _, err := h.Repo.GetByID(r.Context(), id); err != nil {
		writeRepoError(w, err, "service not found")
		return
	}
	sections, err := h.Repo.ListSections(r.Context(), id)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if sections == nil {
		sections = []Section{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": sections})
}

type SectionLayoutRequest struct {
	Sections []struct {
		ID             int64  `json:"id"`
		DisplayOrder   int    `json:"displayOrder"`
		IsVisible      bool   `json:"isVisible"`
		ColumnPosition string `json:"columnPosition"`
	} `json:"sections"`
}

// UpdateSections saves the layout editor state: order, visibility and column
// for every section of the service, in one transaction.
func (h AdminHandlers) UpdateSections(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req SectionLayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	if len(req.Sections) == 0 {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "sections are required")
		return
	}

	updates := make([]SectionLayoutInput, 0, len(req.Sections))
	for _, s := range req.Sections {
		pos := s.ColumnPosition
		if pos == "" {
			pos = "full"
		}
		if !ValidColumnPosition(pos) {
			api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "columnPosition must be full, left or right")
			return
		}
		updates = append(updates, SectionLayoutInput{
			ID:             s.ID,
			DisplayOrder:   s.DisplayOrder,
			IsVisible:      s.IsVisible,
			ColumnPosition: pos,
		})
	}

	if err := h.Repo.SaveLayout(r.Context(), id, updates); err != nil {
		writeRepoError(w, err, "section not found for this service")
		return
	}

	_ = h.Audit.Insert(r.Context(), h.actor(r), "SERVICE_LAYOUT_UPDATED", "service", &id, map[string]any{"sections": len(updates)})
	w.WriteHeader(http.StatusNoContent)
}

type OptionRequest struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	IsRequired   bool   `json:"isRequired"`
	DisplayOrder int    `json:"displayOrder"`
}

func (h AdminHandlers) CreateOption(w http.ResponseWriter, r *http.Request) {
	serviceID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req OptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	if req.Name == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "name is required")
		return
	}
	optType, valid := ParseOptionType(req.Type)
	if !valid {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "type must be select or radio")
		return
	}
	if _, err := h.Repo.GetByID(r.Context(), serviceID); err != nil {
		writeRepoError(w, err, "service not found")
		return
	}

	opt, err := h.Repo.CreateOption(r.Context(), serviceID, OptionInput{
		Name:       req.Name,
		Type:       optType,
		IsRequired: req.IsRequired,
	})
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to create option")
		return
	}

	_ = h.Audit.Insert(r.Context(), h.actor(r), "OPTION_CREATED", "service_option", &opt.ID, map[string]any{"serviceId": serviceID, "name": opt.Name})
	api.WriteJSON(w, http.StatusCreated, opt)
}

func (h AdminHandlers) UpdateOption(w http.ResponseWriter, r *http.Request) {
	optionID, ok := pathID(w, r, "optionID")
	if !ok {
		return
	}
	var req OptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	if req.Name == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "name is required")
		return
	}
	optType, valid := ParseOptionType(req.Type)
	if !valid {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "type must be select or radio")
		return
	}

	if err := h.Repo.UpdateOption(r.Context(), optionID, OptionInput{
		Name:       req.Name,
		Type:       optType,
		IsRequired: req.IsRequired,
	}, req.DisplayOrder); err != nil {
		writeRepoError(w, err, "option not found")
		return
	}

	_ = h.Audit.Insert(r.Context(), h.actor(r), "OPTION_UPDATED", "service_option", &optionID, nil)
	w.WriteHeader(http.StatusNoContent)
}

func (h AdminHandlers) DeleteOption(w http.ResponseWriter, r *http.Request) {
	optionID, ok := pathID(w, r, "optionID")
	if !ok {
		return
	}
	if err := h.Repo.DeleteOption(r.Context(), optionID); err != nil {
		writeRepoError(w, err, "option not found")
		return
	}
	_ = h.Audit.Insert(r.Context(), h.actor(r), "OPTION_DELETED", "service_option", &optionID, nil)
	w.WriteHeader(http.StatusNoContent)
}

type ChoiceRequest struct {
	Label         string          `json:"label"`
	PriceModifier decimal.Decimal `json:"priceModifier"`
	DisplayOrder  int             `json:"displayOrder"`
}

func (h AdminHandlers) CreateChoice(w http.ResponseWriter, r *http.Request) {
	optionID, ok := pathID(w, r, "optionID")
	if !ok {
		return
	}
	var req ChoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	if req.Label == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "label is required")
		return
	}

	choice, err := h.Repo.CreateChoice(r.Context(), optionID, ChoiceInput{
		Label:         req.Label,
		PriceModifier: req.PriceModifier,
	})
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to create choice")
		return
	}

	_ = h.Audit.Insert(r.Context(), h.actor(r), "CHOICE_CREATED", "service_option_choice", &choice.ID, map[string]any{"optionId": optionID, "label": choice.Label})
	api.WriteJSON(w, http.StatusCreated, choice)
}

func (h AdminHandlers) UpdateChoice(w http.ResponseWriter, r *http.Request) {
	choiceID, ok := pathID(w, r, "choiceID")
	if !ok {
		return
	}
	var req ChoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	if req.Label == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "label is required")
		return
	}

	if err := h.Repo.UpdateChoice(r.Context(), choiceID, ChoiceInput{
		Label:         req.Label,
		PriceModifier: req.PriceModifier,
	}, req.DisplayOrder); err != nil {
		writeRepoError(w, err, "choice not found")
		return
	}

	_ = h.Audit.Insert(r.Context(), h.actor(r), "CHOICE_UPDATED", "service_option_choice", &choiceID, nil)
	w.WriteHeader(http.StatusNoContent)
}

func (h AdminHandlers) DeleteChoice(w http.ResponseWriter, r *http.Request) {
	choiceID, ok := pathID(w, r, "choiceID")
	if !ok {
		return
	}
	if err := h.Repo.DeleteChoice(r.Context(), choiceID); err != nil {
		writeRepoError(w, err, "choice not found")
		return
	}
	_ = h.Audit.Insert(r.Context(), h.actor(r), "CHOICE_DELETED", "service_option_choice", &choiceID, nil)
	w.WriteHeader(http.StatusNoContent)
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid "+name)
		return 0, false
	}
	return id, true
}

func writeRepoError(w http.ResponseWriter, err error, notFoundMsg string) {
	if errors.Is(err, ErrNotFound) {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", notFoundMsg)
		return
	}
	api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
}
