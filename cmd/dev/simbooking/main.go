package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Posts a booking to a locally running API, with an optional payload file.
// Without -payload it submits a minimal valid booking.
func main() {
	var (
		url     = flag.String("url", "", "booking endpoint url (defaults to http://localhost<HTTP_ADDR>/v1/bookings)")
		payload = flag.String("payload", "", "path to json payload file (optional)")
	)
	flag.Parse()

	if *url == "" {
		*url = defaultBookingURL(os.Getenv("HTTP_ADDR"))
	}

	var body []byte
	if *payload != "" {
		b, err := os.ReadFile(*payload)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read payload: %v\n", err)
			os.Exit(2)
		}
		body = b
	} else {
		body = []byte(`{
  "name": "Jean Dupont",
  "email": "jean.dupont@example.com",
  "phone": "+33612345678",
  "city": "Paris",
  "address": "10 rue de la Paix",
  "date": "2026-09-15",
  "time": "10:00",
  "notes": "simulated booking"
}`)
	}

	req, err := http.NewRequest(http.MethodPost, *url, bytes.NewReader(body))
	if err != nil {
		fmt.Fprintf(os.Stderr, "new request: %v\n", err)
		os.Exit(2)
	}
	req.Header.Set("Content-Type", "application/json")

	c := &http.Client{Timeout: 10 * time.Second}
	resp, err := c.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "post: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	out, _ := io.ReadAll(resp.Body)
	fmt.Printf("status=%d\n%s\n", resp.StatusCode, string(out))
}

// defaultBookingURL mirrors the server's HTTP_ADDR default (:8081).
func defaultBookingURL(httpAddr string) string {
	if httpAddr == "" {
		httpAddr = ":8081"
	}
	if httpAddr[0] == ':' {
		return "http://localhost" + httpAddr + "/v1/bookings"
	}
	return "http://localhost:8081/v1/bookings"
}
