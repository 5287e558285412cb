package pricing

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"cleanbook/internal/api"
	"cleanbook/internal/catalog"
)

type Handlers struct {
	Catalog *catalog.Repository
}

type QuoteRequest struct {
	// Selections maps option id -> choice id. JSON object keys are strings.
	Selections map[string]int64 `json:"selections"`
}

type QuoteLine struct {
	OptionName  string          `json:"optionName"`
	ChoiceLabel string          `json:"choiceLabel"`
	Modifier    decimal.Decimal `json:"modifier"`
}

type QuoteResponse struct {
	ServiceID       int64           `json:"serviceId"`
	ServiceName     string          `json:"serviceName"`
	HasOptions      bool            `json:"hasOptions"`
	Price           string          `json:"price,omitempty"`
	BasePrice       decimal.Decimal `json:"basePrice"`
	Lines           []QuoteLine     `json:"lines"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	CanSubmit       bool            `json:"canSubmit"`
	MissingRequired []string        `json:"missingRequired,omitempty"`
}

// QuoteLines converts resolved option lines into the quote breakdown.
// Zero modifiers are not adjustments; the breakdown omits them.
func QuoteLines(lines []OptionLine) []QuoteLine {
	out := []QuoteLine{}
	for _, l := range lines {
		if l.PriceModifier.IsZero() {
			continue
		}
		out = append(out, QuoteLine{
			OptionName:  l.OptionName,
			ChoiceLabel: l.ChoiceLabel,
			Modifier:    l.PriceModifier,
		})
	}
	return out
}

// ParseSelections converts wire selections (string keys) into a Selection.
func ParseSelections(raw map[string]int64) (Selection, error) {
	sel := Selection{}
	for k, v := range raw {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return nil, ValidationError{Code: "VALIDATION_FAILED", Message: "invalid option id " + k}
		}
		sel[id] = v
	}
	return sel, nil
}

// Quote prices a configuration against the live catalog. The storefront calls
// it on every selection change; the booking handler reuses the same pieces
// right before the insert.
func (h Handlers) Quote(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing slug")
		return
	}

	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}

	svc, err := h.Catalog.GetBySlug(r.Context(), slug)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "service not found")
		return
	}

	// Services without options are priced by their flat label verbatim;
	// the calculator is never involved.
	if !svc.HasOptions {
		api.WriteJSON(w, http.StatusOK, QuoteResponse{
			ServiceID:   svc.ID,
			ServiceName: svc.Name,
			HasOptions:  false,
			Price:       svc.Price,
			BasePrice:   svc.BasePrice,
			Lines:       []QuoteLine{},
			TotalPrice:  svc.BasePrice,
			CanSubmit:   true,
		})
		return
	}

	options, err := h.Catalog.ListOptions(r.Context(), svc.ID)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to load options")
		return
	}

	if err := Validate(options); err != nil {
		ve, _ := err.(ValidationError)
		api.WriteError(w, http.StatusConflict, ve.Code, ve.Message)
		return
	}

	sel, err := ParseSelections(req.Selections)
	if err != nil {
		ve, _ := err.(ValidationError)
		api.WriteError(w, http.StatusBadRequest, ve.Code, ve.Message)
		return
	}
	if len(sel) == 0 {
		sel = InitialSelection(options)
	}

	total := ComputeTotal(svc.BasePrice, options, sel)
	lines := QuoteLines(BuildLines(options, sel))

	api.WriteJSON(w, http.StatusOK, QuoteResponse{
		ServiceID:       svc.ID,
		ServiceName:     svc.Name,
		HasOptions:      true,
		BasePrice:       svc.BasePrice,
		Lines:           lines,
		TotalPrice:      total,
		CanSubmit:       CanSubmit(options, sel),
		MissingRequired: MissingRequired(options, sel),
	})
}
