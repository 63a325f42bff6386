// Package mail relays contact form enquiries to the academy inbox.
package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"seyone-academy-go/internal/config"
	"seyone-academy-go/internal/model"
)

// ErrRelayNotConfigured means the selected provider is missing identifiers or keys.
var ErrRelayNotConfigured = errors.New("mail relay is not configured")

// Relay delivers one enquiry. Implementations make a single attempt.
type Relay interface {
	Send(ctx context.Context, e model.Enquiry) error
	Name() string
}

// NewRelay builds the relay selected by cfg.Provider.
func NewRelay(cfg config.MailConfig) (Relay, error) {
	switch strings.ToLower(cfg.Provider) {
	case "emailjs":
		return NewEmailJSRelay(cfg.EmailJS, nil), nil
	case "sendgrid":
		return NewSendGridRelay(cfg, ""), nil
	case "", "console":
		return NewConsoleRelay(cfg), nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.Provider)
	}
}

func subject(e model.Enquiry) string {
	return "New enquiry: " + e.CourseInterest
}

func plainText(e model.Enquiry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Name: %s\r\n", e.Name)
	fmt.Fprintf(&sb, "Email: %s\r\n", e.Email)
	fmt.Fprintf(&sb, "Course interest: %s\r\n", e.CourseInterest)
	fmt.Fprintf(&sb, "\r\n%s\r\n", e.Message)
	return sb.String()
}
