package pricing

import (
	"github.com/shopspring/decimal"

	"cleanbook/internal/catalog"
)

// ComputeTotal derives the total price: base plus the modifier of every
// selected, resolvable choice. Selection entries referencing options or
// choices no longer in the catalog contribute nothing; the admin can edit
// the catalog while a visitor has a session open, so a stale selection must
// never fail the computation.
//
// Pure and order-independent: decimal addition commutes, so map iteration
// order cannot change the result.
func ComputeTotal(basePrice decimal.Decimal, options []catalog.Option, sel Selection) decimal.Decimal {
	total := basePrice
	for optionID, choiceID := range sel {
		choice, ok := resolve(options, optionID, choiceID)
		if !ok {
			continue
		}
		total = total.Add(choice.PriceModifier)
	}
	return total
}

func resolve(options []catalog.Option, optionID, choiceID int64) (catalog.Choice, bool) {
	for _, o := range options {
		if o.ID != optionID {
			continue
		}
		for _, c := range o.Choices {
			if c.ID == choiceID {
				return c, true
			}
		}
		return catalog.Choice{}, false
	}
	return catalog.Choice{}, false
}
