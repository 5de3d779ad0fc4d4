package sms_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traveltinder/backend/pkg/sms"
)

func TestLogSender(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := sms.NewLogSender(log)

	require.NoError(t, s.SendSMS(context.Background(), "+15551234567", sms.OTPMessage("123456", 10*time.Minute)))

	out := buf.String()
	assert.Contains(t, out, "123456")
	assert.Contains(t, out, "***567")
	assert.NotContains(t, out, "+15551234567")
	assert.Contains(t, out, "component=sms")
	assert.Contains(t, out, "expires in 10 minutes")
}

func TestLogSender_InvalidParams(t *testing.T) {
	t.Parallel()

	s := sms.NewLogSender(nil)
	assert.ErrorIs(t, s.SendSMS(context.Background(), "", "body"), sms.ErrInvalidParams)
	assert.ErrorIs(t, s.SendSMS(context.Background(), "+1555", ""), sms.ErrInvalidParams)
}

func TestSenderFunc(t *testing.T) {
	t.Parallel()

	var got string
	var s sms.Sender = sms.SenderFunc(func(_ context.Context, to, _ string) error {
		got = to
		return nil
	})
	require.NoError(t, s.SendSMS(context.Background(), "+1555", "x"))
	assert.Equal(t, "+1555", got)
}
