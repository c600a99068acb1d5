package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const resendEndpoint = "https://api.resend.com/emails"

// ResendMailer sends mail through the Resend HTTP API.
type ResendMailer struct {
	apiKey     string
	from       string
	httpClient *http.Client
}

// NewResendMailer creates a Mailer backed by Resend
func NewResendMailer(apiKey, from string) *ResendMailer {
	return &ResendMailer{
		apiKey: apiKey,
		from:   from,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Send delivers one message to the given recipients
func (m *ResendMailer) Send(ctx context.Context, to []string, subject, html string) error {
	if m.apiKey == "" {
		return fmt.Errorf("resend api key is not configured")
	}
	if len(to) == 0 {
		return fmt.Errorf("no recipients given")
	}

	payload, err := json.Marshal(resendRequest{
		From:    m.from,
		To:      to,
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal mail request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendEndpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build mail request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("mail provider returned status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
