package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const sendURL = "https://api.sendgrid.com/v3/mail/send"

// Client sends plain-text notification mail through SendGrid.
// With no API key configured it is a no-op, so booking submission
// never depends on mail delivery.
type Client struct {
	HTTPClient *http.Client
	APIKey     string
	FromEmail  string
}

type sendRequest struct {
	Personalizations []personalization `json:"personalizations"`
	From             address           `json:"from"`
	Subject          string            `json:"subject"`
	Content          []content         `json:"content"`
}

type personalization struct {
	To []address `json:"to"`
}

type address struct {
	Email string `json:"email"`
}

type content struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

func (c Client) Send(ctx context.Context, to, subject, text string) error {
	if c.APIKey == "" || to == "" {
		return nil
	}

	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}

	body := sendRequest{
		Personalizations: []personalization{{To: []address{{Email: to}}}},
		From:             address{Email: c.FromEmail},
		Subject:          subject,
		Content:          []content{{Type: "text/plain", Value: text}},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sendURL, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		if len(b) > 0 {
			return fmt.Errorf("sendgrid error: status=%d body=%s", resp.StatusCode, string(b))
		}
		return fmt.Errorf("sendgrid error: status=%d", resp.StatusCode)
	}
	return nil
}
