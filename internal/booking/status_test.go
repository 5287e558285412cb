package booking

import "testing"

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"new", "confirmed", "done", "canceled"} {
		if _, err := ParseStatus(s); err != nil {
			t.Fatalf("expected %q to parse: %v", s, err)
		}
	}
	if _, err := ParseStatus("archived"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}

func TestCanTransition(t *testing.T) {
	allowed := [][2]Status{
		{StatusNew, StatusConfirmed},
		{StatusNew, StatusCanceled},
		{StatusConfirmed, StatusDone},
		{StatusConfirmed, StatusCanceled},
	}
	for _, tr := range allowed {
		if !CanTransition(tr[0], tr[1]) {
			t.Fatalf("expected %s -> %s allowed", tr[0], tr[1])
		}
	}

	rejected := [][2]Status{
		{StatusNew, StatusDone},
		{StatusDone, StatusConfirmed},
		{StatusDone, StatusCanceled},
		{StatusCanceled, StatusNew},
		{StatusConfirmed, StatusNew},
	}
	for _, tr := range rejected {
		if CanTransition(tr[0], tr[1]) {
			t.Fatalf("expected %s -> %s rejected", tr[0], tr[1])
		}
	}
}
