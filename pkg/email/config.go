package email

// Config holds email delivery configuration.
//
// The backend is picked by New: Postmark when PostmarkServerToken is set,
// SMTP when SMTPHost is set, otherwise the development sender that writes
// messages to DevOutputDir.
type Config struct {
	FromHeader   string `env:"SMTP_FROM"` // full From header, overrides SenderName/SenderEmail
	SenderEmail  string `env:"EMAIL_SENDER" envDefault:"noreply@traveltinder.com"`
	SenderName   string `env:"EMAIL_SENDER_NAME" envDefault:"Travel Tinder"`
	SupportEmail string `env:"SUPPORT_EMAIL"`

	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASS"`

	DevOutputDir string `env:"EMAIL_DEV_DIR" envDefault:"./tmp/emails"`
}

// From formats the sender as `"Name" <address>`.
func (c Config) From() string {
	if c.FromHeader != "" {
		return c.FromHeader
	}
	if c.SenderName == "" {
		return c.SenderEmail
	}
	return `"` + c.SenderName + `" <` + c.SenderEmail + `>`
}
