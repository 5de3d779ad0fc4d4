package sms

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/traveltinder/backend/pkg/logger"
)

var (
	ErrFailedToSendSMS = errors.New("sms: failed to send message")
	ErrInvalidParams   = errors.New("sms: invalid params")
)

// Sender delivers a text message to a mobile number.
type Sender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(ctx context.Context, to, body string) error

func (f SenderFunc) SendSMS(ctx context.Context, to, body string) error {
	return f(ctx, to, body)
}

// LogSender writes messages to the log instead of a carrier gateway.
// It is the only sender until an SMS provider is wired in, and logs the full
// body, so the log level should keep it out of production output.
type LogSender struct {
	log *slog.Logger
}

// NewLogSender creates a LogSender. A nil logger falls back to slog.Default.
func NewLogSender(log *slog.Logger) *LogSender {
	if log == nil {
		log = slog.Default()
	}
	return &LogSender{log: log.With(logger.Component("sms"))}
}

// SendSMS logs the message at debug level with the recipient masked.
func (s *LogSender) SendSMS(ctx context.Context, to, body string) error {
	if to == "" || body == "" {
		return fmt.Errorf("%w: recipient and body are required", ErrInvalidParams)
	}
	if err := ctx.Err(); err != nil {
		return errors.Join(ErrFailedToSendSMS, err)
	}
	s.log.DebugContext(ctx, "sms message",
		logger.Identifier(to),
		slog.String("body", body),
	)
	return nil
}

// OTPMessage is the text sent for mobile one-time passwords.
func OTPMessage(code string, ttl time.Duration) string {
	return fmt.Sprintf("Your Travel Tinder OTP is %s. It expires in %d minutes.", code, int(ttl.Minutes()))
}
