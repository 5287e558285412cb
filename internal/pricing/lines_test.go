package pricing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"cleanbook/internal/catalog"
)

func TestCanSubmit_RequiredUnselected(t *testing.T) {
	options := []catalog.Option{
		{
			ID: 1, Name: "Surface", IsRequired: true,
			Choices: []catalog.Choice{
				{ID: 10, OptionID: 1, Label: "< 50m²"},
				{ID: 11, OptionID: 1, Label: "> 50m²"},
			},
		},
	}
	sel := Selection{}

	if CanSubmit(options, sel) {
		t.Fatalf("expected false while required option is unselected")
	}

	sel.Set(1, 11)
	if !CanSubmit(options, sel) {
		t.Fatalf("expected true once the required option is selected")
	}
}

func TestCanSubmit_OptionalNeverBlocks(t *testing.T) {
	options := []catalog.Option{
		{ID: 1, Name: "Req", IsRequired: true, Choices: []catalog.Choice{{ID: 10, OptionID: 1}}},
		{ID: 2, Name: "Opt", IsRequired: false, Choices: []catalog.Choice{{ID: 20, OptionID: 2}}},
	}

	if !CanSubmit(options, Selection{1: 10}) {
		t.Fatalf("optional option without selection must not block")
	}
}

func TestValidate_RequiredOptionWithoutChoices(t *testing.T) {
	options := []catalog.Option{
		{ID: 1, Name: "Cire", IsRequired: true, Choices: []catalog.Choice{}},
	}

	err := Validate(options)
	if err == nil {
		t.Fatalf("expected configuration error")
	}
	var ve ValidationError
	if !errors.As(err, &ve) || ve.Code != "CONFIGURATION_INCONSISTENT" {
		t.Fatalf("expected CONFIGURATION_INCONSISTENT, got %v", err)
	}

	// This state cannot be selected out of; the gate stays closed until the
	// admin adds a choice.
	if CanSubmit(options, InitialSelection(options)) {
		t.Fatalf("expected CanSubmit false for required option without choices")
	}
}

func TestMissingRequired(t *testing.T) {
	options := []catalog.Option{
		{ID: 1, Name: "Surface", IsRequired: true, Choices: []catalog.Choice{{ID: 10, OptionID: 1}}},
		{ID: 2, Name: "Fréquence", IsRequired: true, Choices: []catalog.Choice{{ID: 20, OptionID: 2}}},
	}

	missing := MissingRequired(options, Selection{1: 10})
	if len(missing) != 1 || missing[0] != "Fréquence" {
		t.Fatalf("expected [Fréquence], got %v", missing)
	}
}

func TestBuildLines_ResolvesAndDropsStale(t *testing.T) {
	mod := decimal.RequireFromString("15")
	options := []catalog.Option{
		{
			ID: 1, Name: "Type de véhicule", IsRequired: true,
			Choices: []catalog.Choice{
				{ID: 10, OptionID: 1, Label: "Berline", PriceModifier: decimal.Zero},
				{ID: 11, OptionID: 1, Label: "SUV", PriceModifier: mod},
			},
		},
	}
	sel := Selection{
		1:   11,
		999: 5, // option deleted since the session started
	}

	lines := BuildLines(options, sel)
	if len(lines) != 1 {
		t.Fatalf("expected exactly one resolved line, got %d", len(lines))
	}
	l := lines[0]
	if l.OptionID != 1 || l.OptionName != "Type de véhicule" || l.ChoiceID != 11 || l.ChoiceLabel != "SUV" {
		t.Fatalf("unexpected line: %+v", l)
	}
	if !l.PriceModifier.Equal(mod) {
		t.Fatalf("expected modifier 15, got %s", l.PriceModifier)
	}
}

func TestBuildLines_StaleChoiceDropped(t *testing.T) {
	options := []catalog.Option{
		{
			ID: 1, Name: "Formule", IsRequired: true,
			Choices: []catalog.Choice{{ID: 10, OptionID: 1, Label: "Standard"}},
		},
	}

	lines := BuildLines(options, Selection{1: 777})
	if len(lines) != 0 {
		t.Fatalf("expected stale choice to be dropped whole, got %v", lines)
	}
}

func TestBuildLines_KeepsZeroModifierSelections(t *testing.T) {
	options := []catalog.Option{
		{
			ID: 1, Name: "Type de véhicule", IsRequired: true,
			Choices: []catalog.Choice{{ID: 10, OptionID: 1, Label: "Berline", PriceModifier: decimal.Zero}},
		},
	}

	// The breakdown omits zero adjustments, the stored snapshot does not.
	lines := BuildLines(options, Selection{1: 10})
	if len(lines) != 1 {
		t.Fatalf("expected the zero-modifier selection in the payload, got %d lines", len(lines))
	}
}

func TestQuoteLines_OmitsZeroModifiers(t *testing.T) {
	mod := decimal.RequireFromString("15")
	options := []catalog.Option{
		{
			ID: 1, Name: "Type de véhicule", IsRequired: true,
			Choices: []catalog.Choice{{ID: 10, OptionID: 1, Label: "Berline", PriceModifier: decimal.Zero}},
		},
		{
			ID: 2, Name: "Finition", IsRequired: true,
			Choices: []catalog.Choice{{ID: 20, OptionID: 2, Label: "Cire", PriceModifier: mod}},
		},
	}

	payload := BuildLines(options, Selection{1: 10, 2: 20})
	if len(payload) != 2 {
		t.Fatalf("expected both selections in the payload, got %d", len(payload))
	}

	// The quote breakdown keeps only real adjustments.
	quote := QuoteLines(payload)
	if len(quote) != 1 {
		t.Fatalf("expected one quote line, got %d", len(quote))
	}
	if quote[0].OptionName != "Finition" || quote[0].ChoiceLabel != "Cire" || !quote[0].Modifier.Equal(mod) {
		t.Fatalf("unexpected quote line: %+v", quote[0])
	}
}

func TestQuoteLines_EmptyNotNil(t *testing.T) {
	if QuoteLines(nil) == nil {
		t.Fatalf("expected empty slice, not nil")
	}
}

func TestParseSelections(t *testing.T) {
	sel, err := ParseSelections(map[string]int64{"12": 34, "7": 9})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel[12] != 34 || sel[7] != 9 {
		t.Fatalf("unexpected selection: %v", sel)
	}

	if _, err := ParseSelections(map[string]int64{"abc": 1}); err == nil {
		t.Fatalf("expected error for non-numeric option id")
	}
}
