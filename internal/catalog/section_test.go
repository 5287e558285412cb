package catalog

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestDefaultSectionTypes(t *testing.T) {
	want := []SectionType{
		SectionTitle, SectionImage, SectionDescription,
		SectionOptions, SectionPrice, SectionActions,
	}
	if len(DefaultSectionTypes) != len(want) {
		t.Fatalf("expected %d default sections, got %d", len(want), len(DefaultSectionTypes))
	}
	for i, st := range want {
		if DefaultSectionTypes[i] != st {
			t.Fatalf("position %d: expected %s, got %s", i, st, DefaultSectionTypes[i])
		}
	}
}

func TestValidColumnPosition(t *testing.T) {
	for _, pos := range []string{"full", "left", "right"} {
		if !ValidColumnPosition(pos) {
			t.Fatalf("%q must be valid", pos)
		}
	}
	for _, pos := range []string{"", "center", "FULL"} {
		if ValidColumnPosition(pos) {
			t.Fatalf("%q must not be valid", pos)
		}
	}
}

func TestMapUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "services_slug_key"}
	if !errors.Is(mapUniqueViolation(dup), ErrSlugTaken) {
		t.Fatalf("unique violation must map to ErrSlugTaken")
	}

	other := errors.New("connection reset")
	if got := mapUniqueViolation(other); got != other {
		t.Fatalf("unrelated errors must pass through, got %v", got)
	}

	fk := &pgconn.PgError{Code: "23503"}
	if errors.Is(mapUniqueViolation(fk), ErrSlugTaken) {
		t.Fatalf("foreign key violation must not map to ErrSlugTaken")
	}
}
