package mail

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"seyone-academy-go/internal/config"
	"seyone-academy-go/internal/model"
)

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// SendGridRelay sends enquiries through the SendGrid v3 API.
type SendGridRelay struct {
	key  string
	host string
	from *sgmail.Email
	to   *sgmail.Email
}

// NewSendGridRelay creates a SendGrid relay. An empty host uses the public API.
func NewSendGridRelay(cfg config.MailConfig, host string) *SendGridRelay {
	if host == "" {
		host = sendgridHost
	}
	return &SendGridRelay{
		key:  cfg.SendGrid.APIKey,
		host: host,
		from: sgmail.NewEmail(cfg.FromName, cfg.FromEmail),
		to:   sgmail.NewEmail("Seyone Academy", cfg.ToEmail),
	}
}

func (r *SendGridRelay) Name() string { return "sendgrid" }

func (r *SendGridRelay) prepare(e model.Enquiry) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = subject(e)
	p.AddTos(r.to)

	m := sgmail.NewV3Mail()
	m.SetFrom(r.from)
	m.SetReplyTo(sgmail.NewEmail(e.Name, e.Email))
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/plain", plainText(e)))
	return m
}

// Send makes one API call. The sendgrid client has no per-call context, so
// ctx is only checked before the request starts.
func (r *SendGridRelay) Send(ctx context.Context, e model.Enquiry) error {
	if r.key == "" || r.to.Address == "" || r.from.Address == "" {
		return ErrRelayNotConfigured
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	req := sendgrid.GetRequest(r.key, sendgridEndpoint, r.host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(r.prepare(e))

	res, err := sendgrid.API(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid returned status %d, body: %s", res.StatusCode, res.Body)
	}
	return nil
}
