package recaptcha

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const verifyURL = "https://www.google.com/recaptcha/api/siteverify"

type Verifier struct {
	HTTPClient *http.Client
	Secret     string

	// AllowMissing accepts an empty token without calling Google.
	// Also applies when no secret is configured (local dev).
	AllowMissing bool
}

type verifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify checks a client-supplied reCAPTCHA token against the siteverify API.
func (v Verifier) Verify(ctx context.Context, token string) (bool, error) {
	if strings.TrimSpace(token) == "" {
		return v.AllowMissing, nil
	}
	if v.Secret == "" {
		return v.AllowMissing, nil
	}

	client := v.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	form := url.Values{}
	form.Set("secret", v.Secret)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, err
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("recaptcha siteverify: status=%d body=%s", resp.StatusCode, string(b))
	}

	var vr verifyResponse
	if err := json.Unmarshal(b, &vr); err != nil {
		return false, fmt.Errorf("decode siteverify response failed: %w", err)
	}
	return vr.Success, nil
}
