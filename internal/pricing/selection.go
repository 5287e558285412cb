// Package pricing implements the service option pricing model: selection
// state seeded from the option catalog, the derived total price, and the
// resolved option lines that get frozen into a booking.
package pricing

import "cleanbook/internal/catalog"

// Selection maps option id -> chosen choice id for one configuration session.
// It is a plain value threaded through the pure functions below, never shared
// across sessions.
type Selection map[int64]int64

// InitialSelection seeds every required option that has at least one choice
// with its first choice (options and choices arrive sorted by display order).
// A required option with zero choices stays unset; Validate reports it.
func InitialSelection(options []catalog.Option) Selection {
	sel := Selection{}
	for _, o := range options {
		if o.IsRequired && len(o.Choices) > 0 {
			sel[o.ID] = o.Choices[0].ID
		}
	}
	return sel
}

// Set overwrites the choice for exactly one option.
func (s Selection) Set(optionID, choiceID int64) {
	s[optionID] = choiceID
}
