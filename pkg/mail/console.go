package mail

import (
	"context"
	"sync"

	"seyone-academy-go/internal/config"
	"seyone-academy-go/internal/model"
	"seyone-academy-go/pkg/log"
)

// ConsoleRelay writes enquiries to the log instead of sending them. It keeps
// the sent enquiries so development tooling can inspect them.
type ConsoleRelay struct {
	to string

	mu   sync.Mutex
	sent []model.Enquiry
}

func NewConsoleRelay(cfg config.MailConfig) *ConsoleRelay {
	return &ConsoleRelay{to: cfg.ToEmail}
}

func (r *ConsoleRelay) Name() string { return "console" }

func (r *ConsoleRelay) Send(_ context.Context, e model.Enquiry) error {
	log.Infow("console mail relay",
		"to", r.to,
		"subject", subject(e),
		"replyTo", e.Email,
		"body", plainText(e),
	)
	r.mu.Lock()
	r.sent = append(r.sent, e)
	r.mu.Unlock()
	return nil
}

// Sent returns a copy of every enquiry relayed so far.
func (r *ConsoleRelay) Sent() []model.Enquiry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Enquiry, len(r.sent))
	copy(out, r.sent)
	return out
}
