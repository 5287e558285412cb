package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"cleanbook/internal/catalog"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func vehicleOptions(t *testing.T) []catalog.Option {
	t.Helper()
	return []catalog.Option{
		{
			ID: 1, Name: "Type de véhicule", IsRequired: true,
			Choices: []catalog.Choice{
				{ID: 10, OptionID: 1, Label: "Berline", PriceModifier: decimal.Zero},
				{ID: 11, OptionID: 1, Label: "SUV", PriceModifier: dec(t, "15")},
			},
		},
	}
}

func TestComputeTotal_DefaultSelection(t *testing.T) {
	options := vehicleOptions(t)
	sel := InitialSelection(options)

	if got, want := sel[1], int64(10); got != want {
		t.Fatalf("expected default choice %d, got %d", want, got)
	}

	total := ComputeTotal(dec(t, "39.00"), options, sel)
	if !total.Equal(dec(t, "39.00")) {
		t.Fatalf("expected 39.00, got %s", total)
	}
}

func TestComputeTotal_SelectionChangeIsReversible(t *testing.T) {
	options := vehicleOptions(t)
	sel := InitialSelection(options)
	base := dec(t, "39.00")

	sel.Set(1, 11) // SUV
	if total := ComputeTotal(base, options, sel); !total.Equal(dec(t, "54.00")) {
		t.Fatalf("expected 54.00 after selecting SUV, got %s", total)
	}

	sel.Set(1, 10) // back to Berline
	if total := ComputeTotal(base, options, sel); !total.Equal(dec(t, "39.00")) {
		t.Fatalf("expected 39.00 after reverting, got %s", total)
	}
}

func TestComputeTotal_NegativeAndPositiveModifiers(t *testing.T) {
	options := []catalog.Option{
		{
			ID: 1, Name: "Formule", IsRequired: true,
			Choices: []catalog.Choice{
				{ID: 10, OptionID: 1, Label: "Offre fidélité", PriceModifier: dec(t, "-5.00")},
			},
		},
		{
			ID: 2, Name: "Finition", IsRequired: false,
			Choices: []catalog.Choice{
				{ID: 20, OptionID: 2, Label: "Premium", PriceModifier: dec(t, "10.00")},
			},
		},
	}
	sel := Selection{1: 10, 2: 20}

	total := ComputeTotal(dec(t, "50.00"), options, sel)
	if !total.Equal(dec(t, "55.00")) {
		t.Fatalf("expected 55.00, got %s", total)
	}
}

func TestComputeTotal_Idempotent(t *testing.T) {
	options := vehicleOptions(t)
	sel := Selection{1: 11}
	base := dec(t, "39.00")

	first := ComputeTotal(base, options, sel)
	second := ComputeTotal(base, options, sel)
	if !first.Equal(second) {
		t.Fatalf("expected identical results, got %s then %s", first, second)
	}
}

func TestComputeTotal_StaleEntriesIgnored(t *testing.T) {
	options := vehicleOptions(t)
	sel := Selection{
		1:   11, // valid: SUV
		999: 1,  // option no longer in catalog
	}

	total := ComputeTotal(dec(t, "39.00"), options, sel)
	if !total.Equal(dec(t, "54.00")) {
		t.Fatalf("expected stale entries to contribute nothing, got %s", total)
	}
}

func TestComputeTotal_StaleChoiceIgnored(t *testing.T) {
	options := vehicleOptions(t)
	sel := Selection{1: 777} // option exists, choice deleted meanwhile

	total := ComputeTotal(dec(t, "39.00"), options, sel)
	if !total.Equal(dec(t, "39.00")) {
		t.Fatalf("expected base price only, got %s", total)
	}
}

func TestInitialSelection_SkipsOptionalAndEmpty(t *testing.T) {
	options := []catalog.Option{
		{ID: 1, Name: "Taille", IsRequired: true, Choices: []catalog.Choice{{ID: 10, OptionID: 1, Label: "S"}}},
		{ID: 2, Name: "Parfum", IsRequired: false, Choices: []catalog.Choice{{ID: 20, OptionID: 2, Label: "Citron"}}},
		{ID: 3, Name: "Cire", IsRequired: true, Choices: []catalog.Choice{}},
	}

	sel := InitialSelection(options)
	if len(sel) != 1 {
		t.Fatalf("expected exactly one seeded entry, got %d", len(sel))
	}
	if sel[1] != 10 {
		t.Fatalf("expected option 1 seeded with its first choice")
	}
	if _, ok := sel[2]; ok {
		t.Fatalf("optional option must not be seeded")
	}
	if _, ok := sel[3]; ok {
		t.Fatalf("required option without choices must stay unset")
	}
}

func TestSelectionSet_TouchesOneEntry(t *testing.T) {
	options := []catalog.Option{
		{ID: 1, Name: "A", IsRequired: true, Choices: []catalog.Choice{{ID: 10, OptionID: 1}}},
		{ID: 2, Name: "B", IsRequired: true, Choices: []catalog.Choice{{ID: 20, OptionID: 2}, {ID: 21, OptionID: 2}}},
	}
	sel := InitialSelection(options)

	sel.Set(2, 21)
	if sel[1] != 10 {
		t.Fatalf("setting option 2 must not touch option 1")
	}
	if sel[2] != 21 {
		t.Fatalf("expected option 2 updated to 21, got %d", sel[2])
	}
}
