package otp

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/traveltinder/backend/pkg/logger"
)

// Issuer creates and verifies one-time passwords.
type Issuer struct {
	storage Storage
	config  Config
	logger  *slog.Logger
	now     func() time.Time
	random  io.Reader
}

// Option configures an Issuer.
type Option func(*Issuer)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(i *Issuer) {
		i.logger = l
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) {
		i.now = now
	}
}

// WithRandom overrides the entropy source used for codes.
func WithRandom(r io.Reader) Option {
	return func(i *Issuer) {
		i.random = r
	}
}

// NewIssuer creates an Issuer.
func NewIssuer(storage Storage, config Config, opts ...Option) (*Issuer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	i := &Issuer{
		storage: storage,
		config:  config,
		logger:  logger.Discard(),
		now:     time.Now,
		random:  rand.Reader,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// Config returns the issuer configuration.
func (i *Issuer) Config() Config {
	return i.config
}

// Issue generates a fresh code for identifier on channel, replacing any
// outstanding challenge, and returns it for delivery.
func (i *Issuer) Issue(ctx context.Context, identifier string, channel Channel, purpose Purpose) (string, error) {
	if !channel.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidChannel, channel)
	}
	identifier = NormalizeIdentifier(identifier, channel)
	if identifier == "" {
		return "", ErrEmptyIdentifier
	}

	code, err := i.generate()
	if err != nil {
		return "", err
	}

	now := i.now()
	c := &Challenge{
		ID:         uuid.NewString(),
		Identifier: identifier,
		Channel:    channel,
		Purpose:    purpose,
		Code:       code,
		ExpiresAt:  now.Add(i.config.TTL),
		CreatedAt:  now,
	}
	if err := i.storage.Replace(ctx, c); err != nil {
		return "", errors.Join(ErrFailedToStore, err)
	}

	i.logger.DebugContext(ctx, "otp issued",
		logger.Identifier(identifier),
		logger.Channel(string(channel)),
		slog.String("purpose", string(purpose)),
		logger.Component("otp"),
	)
	return code, nil
}

// Verify checks code against the live challenge for identifier on channel.
//
// Every call spends one attempt before the code is compared. The attempt
// that reaches the limit with a wrong code returns ErrAttemptsExceeded and
// removes the challenge; later calls see ErrNotFound. A correct code
// consumes the challenge, so it verifies at most once.
func (i *Issuer) Verify(ctx context.Context, identifier, code string, channel Channel) error {
	if !channel.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidChannel, channel)
	}
	identifier = NormalizeIdentifier(identifier, channel)

	c, err := i.storage.IncrementAttempts(ctx, identifier, channel, i.config.MaxAttempts, i.now())
	switch {
	case errors.Is(err, ErrChallengeNotFound):
		return ErrNotFound
	case errors.Is(err, ErrAttemptsExhausted):
		i.discard(ctx, c)
		return ErrAttemptsExceeded
	case err != nil:
		return errors.Join(ErrVerificationFailed, err)
	}

	if subtle.ConstantTimeCompare([]byte(c.Code), []byte(code)) == 1 {
		deleted, err := i.storage.Delete(ctx, c.ID)
		if err != nil {
			return errors.Join(ErrVerificationFailed, err)
		}
		if !deleted {
			// A concurrent Verify consumed it first.
			return ErrNotFound
		}
		return nil
	}

	if c.Attempts >= i.config.MaxAttempts {
		i.discard(ctx, c)
		return ErrAttemptsExceeded
	}
	return ErrMismatch
}

func (i *Issuer) discard(ctx context.Context, c *Challenge) {
	if c == nil {
		return
	}
	if _, err := i.storage.Delete(ctx, c.ID); err != nil {
		i.logger.ErrorContext(ctx, "failed to delete exhausted otp",
			logger.Identifier(c.Identifier),
			logger.Channel(string(c.Channel)),
			logger.Error(err),
			logger.Component("otp"),
		)
	}
}

// generate returns a uniformly random code of exactly config.Length digits
// with no leading zero.
func (i *Issuer) generate() (string, error) {
	lo := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(i.config.Length-1)), nil)
	span := new(big.Int).Mul(lo, big.NewInt(9))

	n, err := rand.Int(i.random, span)
	if err != nil {
		return "", errors.Join(ErrFailedToGenerate, err)
	}
	return n.Add(n, lo).String(), nil
}
