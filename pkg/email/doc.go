// Package email sends the service's transactional emails.
//
// EmailSender is the provider abstraction. Three implementations exist:
// Postmark (production), SMTP through gomail (any relay, e.g. Gmail) and
// DevSender, which writes each message to disk as HTML plus JSON metadata.
// New picks one from Config.
//
// Mailer sits on top of a sender and renders the OTP and welcome messages
// from the templ components in the templates subpackage:
//
//	sender, err := email.New(cfg)
//	if err != nil {
//		return err
//	}
//	mailer := email.NewMailer(sender, 10*time.Minute)
//	err = mailer.SendOTP(ctx, "user@example.com", "123456", false)
//
// All senders validate SendEmailParams before contacting a provider and wrap
// delivery failures in ErrFailedToSendEmail.
package email
