package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/traveltinder/backend/pkg/validator"
)

// EmailSender represents an interface for sending emails.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams represents the parameters for sending an email.
type SendEmailParams struct {
	SendTo   string `json:"send_to"`       // Email address of the recipient
	Subject  string `json:"subject"`       // Subject of the email
	BodyHTML string `json:"body_html"`     // HTML body of the email
	Tag      string `json:"tag,omitempty"` // Optional, used for provider analytics
}

// Validate checks the recipient, subject and body before any provider call.
func (p SendEmailParams) Validate() error {
	if err := validator.Apply(
		validator.ValidEmail("send_to", strings.TrimSpace(p.SendTo)),
		validator.RequiredString("subject", p.Subject, "subject is required"),
		validator.RequiredString("body_html", p.BodyHTML, "body is required"),
	); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	return nil
}

// New returns the sender selected by cfg (Postmark, then SMTP, then the dev
// file sender).
func New(cfg Config) (EmailSender, error) {
	switch {
	case cfg.PostmarkServerToken != "":
		return NewPostmarkClient(cfg)
	case cfg.SMTPHost != "":
		return NewSMTPSender(cfg)
	default:
		return NewDevSender(cfg.DevOutputDir), nil
	}
}
