package mail

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seyone-academy-go/internal/config"
	"seyone-academy-go/internal/model"
)

var testEnquiry = model.Enquiry{
	Name:           "Priya",
	Email:          "priya@example.com",
	CourseInterest: "CPC Training",
	Message:        "When does the next batch start?",
}

func TestEmailJSRelay_Send(t *testing.T) {
	var got emailJSRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1.0/email/send", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, "OK")
	}))
	defer srv.Close()

	relay := NewEmailJSRelay(config.EmailJSConfig{
		BaseURL:    srv.URL + "/api/v1.0",
		ServiceID:  "service_x",
		TemplateID: "template_y",
		PublicKey:  "pk",
	}, srv.Client())

	require.NoError(t, relay.Send(context.Background(), testEnquiry))
	assert.Equal(t, "service_x", got.ServiceID)
	assert.Equal(t, "template_y", got.TemplateID)
	assert.Equal(t, "pk", got.UserID)
	assert.Equal(t, map[string]string{
		"user_name":       "Priya",
		"user_email":      "priya@example.com",
		"course_interest": "CPC Training",
		"message":         "When does the next batch start?",
	}, got.TemplateParams)
}

func TestEmailJSRelay_Failures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, "The user_id parameter is required")
	}))
	defer srv.Close()

	tests := []struct {
		name    string
		cfg     config.EmailJSConfig
		wantErr error
	}{
		{name: "missing ids", cfg: config.EmailJSConfig{BaseURL: srv.URL}, wantErr: ErrRelayNotConfigured},
		{name: "rejected", cfg: config.EmailJSConfig{BaseURL: srv.URL, ServiceID: "s", TemplateID: "t", PublicKey: "k"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewEmailJSRelay(tt.cfg, srv.Client()).Send(context.Background(), testEnquiry)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NotErrorIs(t, err, ErrRelayNotConfigured)
			}
		})
	}
}

func TestSendGridRelay_Send(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		assert.Equal(t, "/v3/mail/send", r.URL.Path)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	cfg := config.MailConfig{FromName: "Site", FromEmail: "site@example.com", ToEmail: "inbox@example.com"}
	cfg.SendGrid.APIKey = "sg-key"

	require.NoError(t, NewSendGridRelay(cfg, srv.URL).Send(context.Background(), testEnquiry))
	assert.Equal(t, "Bearer sg-key", auth)

	cfg.SendGrid.APIKey = ""
	assert.ErrorIs(t, NewSendGridRelay(cfg, srv.URL).Send(context.Background(), testEnquiry), ErrRelayNotConfigured)
}

func TestNewRelay(t *testing.T) {
	tests := []struct {
		provider string
		want     string
		wantErr  bool
	}{
		{provider: "", want: "console"},
		{provider: "EmailJS", want: "emailjs"},
		{provider: "sendgrid", want: "sendgrid"},
		{provider: "pigeon", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			relay, err := NewRelay(config.MailConfig{Provider: tt.provider})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, relay.Name())
		})
	}
}

func TestConsoleRelay_RecordsSent(t *testing.T) {
	relay := NewConsoleRelay(config.MailConfig{ToEmail: "inbox@example.com"})
	require.NoError(t, relay.Send(context.Background(), testEnquiry))
	assert.Equal(t, []model.Enquiry{testEnquiry}, relay.Sent())
}
