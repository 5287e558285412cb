package catalog

import "testing"

func TestSortOptions_StableOnEqualDisplayOrder(t *testing.T) {
	// Three options share display_order 1; insertion order (ascending id from
	// the DB query) must survive the sort.
	opts := []Option{
		{ID: 3, Name: "C", DisplayOrder: 1},
		{ID: 5, Name: "E", DisplayOrder: 1},
		{ID: 7, Name: "G", DisplayOrder: 1},
		{ID: 2, Name: "B", DisplayOrder: 0},
	}

	SortOptions(opts)

	wantIDs := []int64{2, 3, 5, 7}
	for i, want := range wantIDs {
		if opts[i].ID != want {
			t.Fatalf("position %d: expected id %d, got %d", i, want, opts[i].ID)
		}
	}
}

func TestSortOptions_SortsChoicesWithStableTies(t *testing.T) {
	opts := []Option{
		{
			ID: 1, DisplayOrder: 0,
			Choices: []Choice{
				{ID: 30, Label: "third", DisplayOrder: 2},
				{ID: 10, Label: "first-tie", DisplayOrder: 0},
				{ID: 11, Label: "second-tie", DisplayOrder: 0},
			},
		},
	}

	SortOptions(opts)

	got := opts[0].Choices
	if got[0].ID != 10 || got[1].ID != 11 || got[2].ID != 30 {
		t.Fatalf("unexpected choice order: %v %v %v", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Nettoyage Auto":          "nettoyage-auto",
		"Entretien régulier":      "entretien-regulier",
		"  Vitres & Façades  ":    "vitres-facades",
		"Fin de chantier (pro)":   "fin-de-chantier-pro",
		"Canapé / Tapis":          "canape-tapis",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSlugify_Empty(t *testing.T) {
	if got := Slugify("  !!  "); got != "" {
		t.Fatalf("expected empty slug, got %q", got)
	}
}

func TestParseOptionType(t *testing.T) {
	if _, ok := ParseOptionType("select"); !ok {
		t.Fatalf("select must parse")
	}
	if _, ok := ParseOptionType("radio"); !ok {
		t.Fatalf("radio must parse")
	}
	if _, ok := ParseOptionType("checkbox"); ok {
		t.Fatalf("checkbox must not parse")
	}
}
