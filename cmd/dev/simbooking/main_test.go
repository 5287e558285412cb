package main

import "testing"

func TestDefaultBookingURL_MatchesServerDefault(t *testing.T) {
	got := defaultBookingURL("")
	want := "http://localhost:8081/v1/bookings"
	if got != want {
		t.Fatalf("defaultBookingURL(\"\") = %q, want %q", got, want)
	}
}

func TestDefaultBookingURL_RespectsHTTPAddr(t *testing.T) {
	got := defaultBookingURL(":9000")
	want := "http://localhost:9000/v1/bookings"
	if got != want {
		t.Fatalf("defaultBookingURL(\":9000\") = %q, want %q", got, want)
	}
}
