package email

import (
	"context"
	"fmt"
	"time"

	"github.com/traveltinder/backend/pkg/email/templates"
)

const (
	TagOTP     = "otp"
	TagWelcome = "welcome"
)

// Mailer renders the application's transactional emails and hands them to
// an EmailSender.
type Mailer struct {
	sender EmailSender
	otpTTL time.Duration
}

// NewMailer creates a Mailer. otpTTL is only used for the "expires in" line.
func NewMailer(sender EmailSender, otpTTL time.Duration) *Mailer {
	return &Mailer{sender: sender, otpTTL: otpTTL}
}

// SendOTP emails a one-time password. verification selects the account
// verification wording instead of the login wording.
func (m *Mailer) SendOTP(ctx context.Context, to, code string, verification bool) error {
	heading, action := "Travel Tinder Login", "login"
	if verification {
		heading, action = "Verify your Travel Tinder account", "email verification"
	}

	body, err := templates.Render(ctx, templates.OTPEmail(heading, action, code, m.otpTTL))
	if err != nil {
		return fmt.Errorf("%w: render otp email: %w", ErrFailedToSendEmail, err)
	}

	return m.sender.SendEmail(ctx, SendEmailParams{
		SendTo:   to,
		Subject:  templates.OTPSubject,
		BodyHTML: body,
		Tag:      TagOTP,
	})
}

// SendWelcome emails the welcome message to a newly created user.
func (m *Mailer) SendWelcome(ctx context.Context, to, firstName string) error {
	body, err := templates.Render(ctx, templates.WelcomeEmail(firstName))
	if err != nil {
		return fmt.Errorf("%w: render welcome email: %w", ErrFailedToSendEmail, err)
	}

	return m.sender.SendEmail(ctx, SendEmailParams{
		SendTo:   to,
		Subject:  templates.WelcomeSubject,
		BodyHTML: body,
		Tag:      TagWelcome,
	})
}
