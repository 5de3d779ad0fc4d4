package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/traveltinder/backend/pkg/jwt"
	"github.com/traveltinder/backend/pkg/logger"
)

// TokenConfig configures access and refresh tokens. The two secrets must
// differ so neither token kind validates as the other.
type TokenConfig struct {
	AccessSecret  string        `env:"JWT_SECRET,required"`
	RefreshSecret string        `env:"JWT_REFRESH_SECRET,required"`
	AccessTTL     time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"15m"`
	RefreshTTL    time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"168h"`
	Issuer        string        `env:"JWT_ISSUER" envDefault:"traveltinder"`
}

// Validate checks secrets and lifetimes.
func (c TokenConfig) Validate() error {
	switch {
	case c.AccessSecret == "" || c.RefreshSecret == "":
		return fmt.Errorf("%w: both JWT secrets are required", ErrInvalidTokenConfig)
	case c.AccessSecret == c.RefreshSecret:
		return fmt.Errorf("%w: access and refresh secrets must differ", ErrInvalidTokenConfig)
	case c.AccessTTL <= 0 || c.RefreshTTL <= 0:
		return fmt.Errorf("%w: token lifetimes must be positive", ErrInvalidTokenConfig)
	}
	return nil
}

// AccessClaims are carried by access tokens.
type AccessClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email,omitempty"`
	Mobile string `json:"mobile,omitempty"`
	jwt.RegisteredClaims
}

// RefreshClaims are carried by refresh tokens.
type RefreshClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// RefreshToken is the persisted record that makes a refresh token revocable.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// TokenPair is returned on successful sign-in.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// RefreshTokenStorage persists issued refresh tokens.
type RefreshTokenStorage interface {
	StoreRefreshToken(ctx context.Context, token *RefreshToken) error
	// GetRefreshToken returns ErrTokenRevoked when no unexpired record exists.
	GetRefreshToken(ctx context.Context, token string) (*RefreshToken, error)
	// DeleteRefreshToken succeeds when the token is absent.
	DeleteRefreshToken(ctx context.Context, token string) error
	DeleteUserRefreshTokens(ctx context.Context, userID string) (int64, error)
}

// TokenIssuer mints and verifies access and refresh tokens.
type TokenIssuer struct {
	access  *jwt.Service
	refresh *jwt.Service
	storage RefreshTokenStorage
	config  TokenConfig
	logger  *slog.Logger
	now     func() time.Time
}

// TokenOption configures a TokenIssuer.
type TokenOption func(*TokenIssuer)

// WithTokenLogger sets the logger.
func WithTokenLogger(l *slog.Logger) TokenOption {
	return func(t *TokenIssuer) {
		t.logger = l
	}
}

// WithTokenClock overrides time.Now for issued-at and expiry stamps.
func WithTokenClock(now func() time.Time) TokenOption {
	return func(t *TokenIssuer) {
		t.now = now
	}
}

// NewTokenIssuer creates a TokenIssuer.
func NewTokenIssuer(storage RefreshTokenStorage, cfg TokenConfig, opts ...TokenOption) (*TokenIssuer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	access, err := jwt.NewFromString(cfg.AccessSecret, jwt.WithIssuer(cfg.Issuer))
	if err != nil {
		return nil, errors.Join(ErrInvalidTokenConfig, err)
	}
	refresh, err := jwt.NewFromString(cfg.RefreshSecret, jwt.WithIssuer(cfg.Issuer))
	if err != nil {
		return nil, errors.Join(ErrInvalidTokenConfig, err)
	}

	t := &TokenIssuer{
		access:  access,
		refresh: refresh,
		storage: storage,
		config:  cfg,
		logger:  logger.Discard(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// IssueAccessToken mints a short-lived stateless access token.
func (t *TokenIssuer) IssueAccessToken(user *User) (string, error) {
	now := t.now()
	token, err := t.access.Generate(AccessClaims{
		UserID: user.ID,
		Email:  user.Email,
		Mobile: user.Mobile,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    t.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.config.AccessTTL)),
		},
	})
	if err != nil {
		return "", errors.Join(ErrFailedToIssueToken, err)
	}
	return token, nil
}

// IssueRefreshToken mints a refresh token and persists it.
func (t *TokenIssuer) IssueRefreshToken(ctx context.Context, userID string) (string, error) {
	now := t.now()
	expiresAt := now.Add(t.config.RefreshTTL)
	// jti keeps two tokens minted for one user in the same second distinct.
	jti := uuid.NewString()

	token, err := t.refresh.Generate(RefreshClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   userID,
			Issuer:    t.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	if err != nil {
		return "", errors.Join(ErrFailedToIssueToken, err)
	}

	if err := t.storage.StoreRefreshToken(ctx, &RefreshToken{
		ID:        jti,
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: now,
	}); err != nil {
		return "", errors.Join(ErrFailedToIssueToken, err)
	}
	return token, nil
}

// IssuePair mints an access token and a persisted refresh token for user.
func (t *TokenIssuer) IssuePair(ctx context.Context, user *User) (TokenPair, error) {
	access, err := t.IssueAccessToken(user)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := t.IssueRefreshToken(ctx, user.ID)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyAccess validates an access token and returns its claims.
func (t *TokenIssuer) VerifyAccess(token string) (*AccessClaims, error) {
	var claims AccessClaims
	if err := t.access.Parse(token, &claims); err != nil {
		return nil, ErrInvalidOrExpiredToken
	}
	if claims.UserID == "" {
		return nil, ErrInvalidOrExpiredToken
	}
	return &claims, nil
}

// VerifyRefresh validates a refresh token's signature and expiry and checks
// that it has not been revoked.
func (t *TokenIssuer) VerifyRefresh(ctx context.Context, token string) (*RefreshClaims, error) {
	var claims RefreshClaims
	if err := t.refresh.Parse(token, &claims); err != nil {
		return nil, ErrInvalidOrExpiredToken
	}
	if claims.UserID == "" {
		return nil, ErrInvalidOrExpiredToken
	}

	rec, err := t.storage.GetRefreshToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrTokenRevoked) {
			return nil, ErrTokenRevoked
		}
		return nil, err
	}
	if rec.UserID != claims.UserID {
		return nil, ErrTokenRevoked
	}
	return &claims, nil
}

// Revoke deletes a refresh token. Revoking an unknown token is not an error.
func (t *TokenIssuer) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return t.storage.DeleteRefreshToken(ctx, token)
}

// RevokeAll deletes every refresh token of userID.
func (t *TokenIssuer) RevokeAll(ctx context.Context, userID string) error {
	n, err := t.storage.DeleteUserRefreshTokens(ctx, userID)
	if err != nil {
		return err
	}
	t.logger.InfoContext(ctx, "revoked refresh tokens",
		logger.UserID(userID),
		slog.Int64("count", n),
		logger.Component("tokens"),
	)
	return nil
}
