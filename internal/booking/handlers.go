package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"cleanbook/internal/api"
	"cleanbook/internal/audit"
	"cleanbook/internal/catalog"
	"cleanbook/internal/pricing"
	"cleanbook/pkg/config"
	"cleanbook/pkg/mailer"
	"cleanbook/pkg/recaptcha"
)

type Handlers struct {
	Cfg       config.Config
	Catalog   *catalog.Repository
	Bookings  *Repository
	Audit     *audit.Repository
	Recaptcha recaptcha.Verifier
	Mail      mailer.Client
}

// CreateRequest is the public submission contract. Field names stay
// snake_case: the storefront used to post the same shape to a hosted
// serverless endpoint, and the frontend still sends it as is.
type CreateRequest struct {
	Name           string           `json:"name"`
	Email          string           `json:"email"`
	Phone          string           `json:"phone"`
	ServiceID      int64            `json:"service_id"`
	ServiceName    string           `json:"service_name"`
	City           string           `json:"city"`
	Address        string           `json:"address"`
	Date           string           `json:"date"`
	Time           string           `json:"time"`
	Notes          string           `json:"notes"`
	Selections     map[string]int64 `json:"selections"`
	RecaptchaToken string           `json:"recaptchaToken"`
}

// Create is the booking submission endpoint: verify the anti-abuse token,
// re-run the eligibility gate and the price calculation against the live
// catalog, write exactly one row, then notify by mail (best effort).
func (h Handlers) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "name and email are required")
		return
	}

	ok, err := h.Recaptcha.Verify(r.Context(), req.RecaptchaToken)
	if err != nil {
		log.Printf("booking: recaptcha verify error: %v", err)
		api.WriteError(w, http.StatusBadGateway, "CAPTCHA_FAILED", "could not verify captcha")
		return
	}
	if !ok {
		api.WriteError(w, http.StatusBadRequest, "CAPTCHA_FAILED", "captcha verification failed")
		return
	}

	nb := NewBooking{
		Reference:       uuid.NewString(),
		Name:            strings.TrimSpace(req.Name),
		Email:           strings.TrimSpace(req.Email),
		Phone:           strings.TrimSpace(req.Phone),
		ServiceName:     strings.TrimSpace(req.ServiceName),
		City:            strings.TrimSpace(req.City),
		Address:         strings.TrimSpace(req.Address),
		Date:            strings.TrimSpace(req.Date),
		Time:            strings.TrimSpace(req.Time),
		Notes:           strings.TrimSpace(req.Notes),
		SelectedOptions: []pricing.OptionLine{},
	}

	if req.ServiceID != 0 {
		svc, err := h.Catalog.GetByID(r.Context(), req.ServiceID)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "service not found")
				return
			}
			api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
			return
		}
		nb.ServiceID = &svc.ID
		nb.ServiceName = svc.Name
		nb.BasePrice = svc.BasePrice
		nb.TotalPrice = svc.BasePrice

		if svc.HasOptions {
			options, err := h.Catalog.ListOptions(r.Context(), svc.ID)
			if err != nil {
				// Price authority lives here; without the catalog the payload
				// cannot be assembled. The client keeps its state and retries.
				api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to load options")
				return
			}
			if err := pricing.Validate(options); err != nil {
				var ve pricing.ValidationError
				errors.As(err, &ve)
				api.WriteError(w, http.StatusConflict, ve.Code, ve.Message)
				return
			}

			sel, err := pricing.ParseSelections(req.Selections)
			if err != nil {
				var ve pricing.ValidationError
				errors.As(err, &ve)
				api.WriteError(w, http.StatusBadRequest, ve.Code, ve.Message)
				return
			}

			// The gate runs synchronously right before the insert, so a catalog
			// edit mid-submission can only produce a rejection, not a stale row.
			if !pricing.CanSubmit(options, sel) {
				missing := strings.Join(pricing.MissingRequired(options, sel), ", ")
				api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED",
					"missing required selections: "+missing)
				return
			}

			lines := pricing.BuildLines(options, sel)
			nb.TotalPrice = pricing.ComputeTotal(svc.BasePrice, options, sel)
			nb.SelectedOptions = lines
		}
	}

	b, err := h.Bookings.Insert(r.Context(), nb)
	if err != nil {
		log.Printf("booking: insert failed: %v", err)
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to save booking")
		return
	}

	h.notify(r.Context(), b)

	api.WriteJSON(w, http.StatusOK, map[string]any{
		"ok":        true,
		"reference": b.Reference,
	})
}

func (h Handlers) notify(ctx context.Context, b *Booking) {
	if h.Cfg.Mail.AdminEmail != "" {
		var sb strings.Builder
		fmt.Fprintf(&sb, "Nouvelle demande:\nNom: %s\nEmail: %s\nTéléphone: %s\n", b.Name, b.Email, b.Phone)
		fmt.Fprintf(&sb, "Service: %s\nVille: %s\nDate: %s %s\n", b.ServiceName, b.City, b.Date, b.Time)
		var lines []pricing.OptionLine
		if err := json.Unmarshal(b.SelectedOptions, &lines); err == nil && len(lines) > 0 {
			sb.WriteString("Options:\n")
			for _, l := range lines {
				fmt.Fprintf(&sb, "  - %s: %s\n", l.OptionName, l.ChoiceLabel)
			}
		}
		fmt.Fprintf(&sb, "Total: %s€\nNotes: %s\nRéférence: %s\n", b.TotalPrice.StringFixed(2), b.Notes, b.Reference)
		if err := h.Mail.Send(ctx, h.Cfg.Mail.AdminEmail, "Nouvelle réservation", sb.String()); err != nil {
			log.Printf("booking: admin mail failed: %v", err)
		}
	}

	if err := h.Mail.Send(ctx, b.Email, "Votre demande a bien été reçue",
		"Merci, nous vous contacterons pour confirmer votre rendez-vous."); err != nil {
		log.Printf("booking: customer mail failed: %v", err)
	}
}

func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	var status Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, err := ParseStatus(raw)
		if err != nil {
			api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid status")
			return
		}
		status = parsed
	}

	items, err := h.Bookings.List(r.Context(), status)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []Booking{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h Handlers) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	b, err := h.Bookings.GetByID(r.Context(), id)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
		return
	}
	api.WriteJSON(w, http.StatusOK, b)
}

type PatchStatusRequest struct {
	Status string `json:"status"`
}

func (h Handlers) PatchStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req PatchStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	next, err := ParseStatus(req.Status)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid status")
		return
	}

	b, err := h.Bookings.GetByID(r.Context(), id)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
		return
	}
	if !CanTransition(b.Status, next) {
		api.WriteError(w, http.StatusConflict, "INVALID_STATE_TRANSITION",
			fmt.Sprintf("cannot move booking from %s to %s", b.Status, next))
		return
	}

	if err := h.Bookings.UpdateStatus(r.Context(), id, next); err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	actor := "staff"
	if u := api.UserFromContext(r.Context()); u != nil && u.Email != "" {
		actor = u.Email
	}
	_ = h.Audit.Insert(r.Context(), actor, "BOOKING_STATUS_CHANGED", "booking", &id, map[string]any{"from": b.Status, "to": next})

	w.WriteHeader(http.StatusNoContent)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid id")
		return 0, false
	}
	return id, true
}
