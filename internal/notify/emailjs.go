package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const emailJSEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// EmailJSMailer delivers reminders through the EmailJS REST API, the same
// service the original deployment used.
type EmailJSMailer struct {
	serviceID  string
	templateID string
	publicKey  string
	toEmail    string
	endpoint   string
	client     *http.Client
}

type EmailJSOptions struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	ToEmail    string
	Timeout    time.Duration
}

// Configured reports whether the options are complete enough to send.
func (o EmailJSOptions) Configured() bool {
	return o.ServiceID != "" && o.TemplateID != "" && o.PublicKey != "" && o.ToEmail != ""
}

func NewEmailJSMailer(opts EmailJSOptions) *EmailJSMailer {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &EmailJSMailer{
		serviceID:  opts.ServiceID,
		templateID: opts.TemplateID,
		publicKey:  opts.PublicKey,
		toEmail:    opts.ToEmail,
		endpoint:   emailJSEndpoint,
		client:     &http.Client{Timeout: timeout},
	}
}

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

func (m *EmailJSMailer) Send(ctx context.Context, subject, body string) error {
	payload, err := json.Marshal(emailJSRequest{
		ServiceID:  m.serviceID,
		TemplateID: m.templateID,
		UserID:     m.publicKey,
		TemplateParams: map[string]string{
			"to_email": m.toEmail,
			"subject":  subject,
			"message":  body,
		},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("emailjs request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("emailjs returned %s: %s", resp.Status, string(b))
	}
	return nil
}
