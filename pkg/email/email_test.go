package email_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/traveltinder/backend/pkg/email"
	"github.com/traveltinder/backend/pkg/email/templates"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func TestSendEmailParams_Validate(t *testing.T) {
	t.Parallel()

	valid := email.SendEmailParams{SendTo: "user@example.com", Subject: "Hi", BodyHTML: "<p>x</p>"}
	require.NoError(t, valid.Validate())

	t.Run("bad recipient", func(t *testing.T) {
		t.Parallel()
		p := valid
		p.SendTo = "not-an-email"
		assert.ErrorIs(t, p.Validate(), email.ErrInvalidParams)
	})

	t.Run("missing body", func(t *testing.T) {
		t.Parallel()
		p := valid
		p.BodyHTML = ""
		assert.ErrorIs(t, p.Validate(), email.ErrInvalidParams)
	})
}

func TestNew_SelectsBackend(t *testing.T) {
	t.Parallel()

	dev, err := email.New(email.Config{DevOutputDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &email.DevSender{}, dev)

	smtp, err := email.New(email.Config{SMTPHost: "smtp.example.com", SMTPPort: 587, SenderEmail: "noreply@example.com"})
	require.NoError(t, err)
	assert.NotNil(t, smtp)

	_, err = email.New(email.Config{SMTPHost: "smtp.example.com", SMTPPort: 0, SenderEmail: "noreply@example.com"})
	assert.ErrorIs(t, err, email.ErrInvalidConfig)

	pm, err := email.New(email.Config{PostmarkServerToken: "token", SenderEmail: "noreply@example.com"})
	require.NoError(t, err)
	assert.NotNil(t, pm)
}

func TestConfig_From(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `"Travel Tinder" <noreply@traveltinder.com>`,
		email.Config{SenderName: "Travel Tinder", SenderEmail: "noreply@traveltinder.com"}.From())
	assert.Equal(t, "noreply@traveltinder.com", email.Config{SenderEmail: "noreply@traveltinder.com"}.From())
	assert.Equal(t, "Custom <c@example.com>", email.Config{FromHeader: "Custom <c@example.com>", SenderEmail: "x@example.com"}.From())
}

func TestDevSender_WritesFiles(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "emails")
	sender := email.NewDevSender(dir)

	err := sender.SendEmail(context.Background(), email.SendEmailParams{
		SendTo:   "user@example.com",
		Subject:  "Your Travel Tinder Login OTP",
		BodyHTML: "<p>123456</p>",
		Tag:      "otp",
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var htmlFile, jsonFile string
	for _, e := range entries {
		switch filepath.Ext(e.Name()) {
		case ".html":
			htmlFile = e.Name()
		case ".json":
			jsonFile = e.Name()
		}
	}
	require.NotEmpty(t, htmlFile)
	require.NotEmpty(t, jsonFile)
	assert.True(t, strings.HasSuffix(htmlFile, "_otp.html"))

	body, err := os.ReadFile(filepath.Join(dir, htmlFile))
	require.NoError(t, err)
	assert.Equal(t, "<p>123456</p>", string(body))

	raw, err := os.ReadFile(filepath.Join(dir, jsonFile))
	require.NoError(t, err)
	var meta map[string]string
	require.NoError(t, json.Unmarshal(raw, &meta))
	assert.Equal(t, "user@example.com", meta["send_to"])
	assert.Equal(t, "otp", meta["tag"])
}

func TestDevSender_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := email.NewDevSender(t.TempDir()).SendEmail(ctx, email.SendEmailParams{
		SendTo: "user@example.com", Subject: "s", BodyHTML: "b",
	})
	assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
}

func TestMailer_SendOTP(t *testing.T) {
	t.Parallel()

	sender := &mockSender{}
	sender.On("SendEmail", mock.Anything, mock.MatchedBy(func(p email.SendEmailParams) bool {
		return p.SendTo == "user@example.com" &&
			p.Subject == templates.OTPSubject &&
			p.Tag == email.TagOTP &&
			strings.Contains(p.BodyHTML, "654321") &&
			strings.Contains(p.BodyHTML, "expire in 10 minutes")
	})).Return(nil).Once()

	m := email.NewMailer(sender, 10*time.Minute)
	require.NoError(t, m.SendOTP(context.Background(), "user@example.com", "654321", false))
	sender.AssertExpectations(t)
}

func TestMailer_SendWelcome_EscapesName(t *testing.T) {
	t.Parallel()

	sender := &mockSender{}
	sender.On("SendEmail", mock.Anything, mock.MatchedBy(func(p email.SendEmailParams) bool {
		return p.Subject == templates.WelcomeSubject &&
			p.Tag == email.TagWelcome &&
			strings.Contains(p.BodyHTML, "&lt;b&gt;Ann") &&
			!strings.Contains(p.BodyHTML, "<b>Ann")
	})).Return(nil).Once()

	m := email.NewMailer(sender, 10*time.Minute)
	require.NoError(t, m.SendWelcome(context.Background(), "user@example.com", "<b>Ann"))
	sender.AssertExpectations(t)
}

func TestMailer_PropagatesSenderError(t *testing.T) {
	t.Parallel()

	sender := &mockSender{}
	sender.On("SendEmail", mock.Anything, mock.Anything).Return(email.ErrFailedToSendEmail)

	m := email.NewMailer(sender, time.Hour)
	err := m.SendOTP(context.Background(), "user@example.com", "111111", true)
	assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
}
