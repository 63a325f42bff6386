package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"seyone-academy-go/internal/config"
	"seyone-academy-go/internal/model"
)

const defaultEmailJSBaseURL = "https://api.emailjs.com/api/v1.0"

// EmailJSRelay posts enquiries to the EmailJS REST API using the same
// template parameters as the browser form.
type EmailJSRelay struct {
	cfg    config.EmailJSConfig
	client *http.Client
}

// NewEmailJSRelay creates an EmailJS relay. A nil hc uses a default client.
func NewEmailJSRelay(cfg config.EmailJSConfig, hc *http.Client) *EmailJSRelay {
	if hc == nil {
		hc = &http.Client{}
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultEmailJSBaseURL
	}
	return &EmailJSRelay{cfg: cfg, client: hc}
}

func (r *EmailJSRelay) Name() string { return "emailjs" }

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

func (r *EmailJSRelay) Send(ctx context.Context, e model.Enquiry) error {
	if r.cfg.ServiceID == "" || r.cfg.TemplateID == "" || r.cfg.PublicKey == "" {
		return ErrRelayNotConfigured
	}

	body, err := json.Marshal(emailJSRequest{
		ServiceID:   r.cfg.ServiceID,
		TemplateID:  r.cfg.TemplateID,
		UserID:      r.cfg.PublicKey,
		AccessToken: r.cfg.AccessToken,
		TemplateParams: map[string]string{
			"user_name":       e.Name,
			"user_email":      e.Email,
			"course_interest": e.CourseInterest,
			"message":         e.Message,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal emailjs request: %w", err)
	}

	url := strings.TrimRight(r.cfg.BaseURL, "/") + "/email/send"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create emailjs request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call emailjs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("emailjs returned non-200 status: %s, body: %s", resp.Status, string(respBody))
	}
	return nil
}
