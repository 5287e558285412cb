package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"cleanbook/internal/catalog"
)

// OptionLine is a resolved snapshot of one selected option, written once into
// a booking's selected_options and immutable thereafter. Field names follow
// the stored JSON contract.
type OptionLine struct {
	OptionID      int64           `json:"option_id"`
	OptionName    string          `json:"option_name"`
	ChoiceID      int64           `json:"choice_id"`
	ChoiceLabel   string          `json:"choice_label"`
	PriceModifier decimal.Decimal `json:"price_modifier"`
}

type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Validate detects catalog states that can never produce a submittable
// configuration: a required option with zero choices. That is a data-entry
// defect on the admin side, not a visitor error, so it gets its own code.
func Validate(options []catalog.Option) error {
	for _, o := range options {
		if o.IsRequired && len(o.Choices) == 0 {
			return ValidationError{
				Code:    "CONFIGURATION_INCONSISTENT",
				Message: fmt.Sprintf("required option %q has no choices", o.Name),
			}
		}
	}
	return nil
}

// CanSubmit reports whether every required option has a selection.
// Optional options never block.
func CanSubmit(options []catalog.Option, sel Selection) bool {
	for _, o := range options {
		if !o.IsRequired {
			continue
		}
		if _, ok := sel[o.ID]; !ok {
			return false
		}
	}
	return true
}

// MissingRequired lists the names of required options without a selection,
// for the inline "please select all required options" message.
func MissingRequired(options []catalog.Option, sel Selection) []string {
	var missing []string
	for _, o := range options {
		if !o.IsRequired {
			continue
		}
		if _, ok := sel[o.ID]; !ok {
			missing = append(missing, o.Name)
		}
	}
	return missing
}

// BuildLines resolves the selection against the catalog and emits one line per
// entry that still resolves. Stale entries are dropped whole, never emitted
// with empty fields. Lines come out in catalog display order, which keeps the
// stored snapshot deterministic.
func BuildLines(options []catalog.Option, sel Selection) []OptionLine {
	lines := make([]OptionLine, 0, len(sel))
	for _, o := range options {
		choiceID, ok := sel[o.ID]
		if !ok {
			continue
		}
		choice, ok := resolve(options, o.ID, choiceID)
		if !ok {
			continue
		}
		lines = append(lines, OptionLine{
			OptionID:      o.ID,
			OptionName:    o.Name,
			ChoiceID:      choice.ID,
			ChoiceLabel:   choice.Label,
			PriceModifier: choice.PriceModifier,
		})
	}
	return lines
}
