package templates_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traveltinder/backend/pkg/email/templates"
)

func TestOTPEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ttl  time.Duration
		want string
	}{
		{10 * time.Minute, "expire in 10 minutes."},
		{time.Minute, "expire in 1 minute."},
		{2 * time.Hour, "expire in 2 hours."},
		{90 * time.Second, "expire in 90 seconds."},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			html, err := templates.Render(context.Background(), templates.OTPEmail("Travel Tinder Login", "login", "123456", tt.ttl))
			require.NoError(t, err)
			assert.Contains(t, html, "123456")
			assert.Contains(t, html, tt.want)
			assert.Contains(t, html, "Please do not reply.")
		})
	}
}

func TestWelcomeEmail(t *testing.T) {
	t.Parallel()

	html, err := templates.Render(context.Background(), templates.WelcomeEmail("Ann & Bob"))
	require.NoError(t, err)
	assert.Contains(t, html, "Welcome to Travel Tinder, Ann &amp; Bob!")
}

func TestOTPEmail_EscapesValues(t *testing.T) {
	t.Parallel()

	html, err := templates.Render(context.Background(), templates.OTPEmail("<b>Login</b>", "login", "123456", time.Minute))
	require.NoError(t, err)
	assert.Contains(t, html, "&lt;b&gt;Login&lt;/b&gt;")
	assert.NotContains(t, html, "<b>Login</b>")
	assert.Contains(t, html, `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">`)
}

func TestRender_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := templates.Render(ctx, templates.WelcomeEmail("Ann"))
	assert.ErrorIs(t, err, context.Canceled)
}
