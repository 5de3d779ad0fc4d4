package otp

import (
	"context"
	"time"

	"github.com/traveltinder/backend/pkg/sanitizer"
)

// Channel is the medium an OTP is delivered through.
type Channel string

const (
	ChannelEmail  Channel = "email"
	ChannelMobile Channel = "mobile"
)

// Valid reports whether c is a known channel.
func (c Channel) Valid() bool {
	return c == ChannelEmail || c == ChannelMobile
}

// Purpose records why a code was issued. Verification does not depend on it.
type Purpose string

const (
	PurposeLogin        Purpose = "login"
	PurposeVerification Purpose = "verification"
)

// Challenge is a stored one-time password. At most one exists per
// (Identifier, Channel).
type Challenge struct {
	ID         string
	Identifier string
	Channel    Channel
	Purpose    Purpose
	Code       string
	Attempts   int
	ExpiresAt  time.Time
	CreatedAt  time.Time
}

// Expired reports whether the challenge is no longer usable at now.
func (c *Challenge) Expired(now time.Time) bool {
	return !c.ExpiresAt.After(now)
}

// Storage persists challenges.
type Storage interface {
	// Replace removes every challenge for (c.Identifier, c.Channel) and stores c.
	Replace(ctx context.Context, c *Challenge) error

	// IncrementAttempts atomically bumps the attempt counter of the live
	// challenge for (identifier, channel) if it has fewer than maxAttempts
	// attempts, and returns the updated record. It returns
	// ErrChallengeNotFound when there is no unexpired challenge. When one
	// exists but is out of attempts it returns the unmodified record together
	// with ErrAttemptsExhausted.
	IncrementAttempts(ctx context.Context, identifier string, channel Channel, maxAttempts int, now time.Time) (*Challenge, error)

	// Delete removes the challenge by id and reports whether it existed.
	Delete(ctx context.Context, id string) (bool, error)
}

// NormalizeIdentifier canonicalises an email address or mobile number for
// the given channel.
func NormalizeIdentifier(identifier string, channel Channel) string {
	if channel == ChannelMobile {
		return sanitizer.NormalizeMobile(identifier)
	}
	return sanitizer.NormalizeEmail(identifier)
}
