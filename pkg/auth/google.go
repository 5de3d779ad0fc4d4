package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// GoogleConfig configures Google sign-in. ClientIDs lists every OAuth client
// (web, iOS, Android) whose ID tokens are accepted.
type GoogleConfig struct {
	ClientIDs    []string `env:"GOOGLE_CLIENT_IDS" envSeparator:","`
	ClientSecret string   `env:"GOOGLE_CLIENT_SECRET"`
	RedirectURL  string   `env:"GOOGLE_REDIRECT_URL"`
	VerifiedOnly bool     `env:"GOOGLE_VERIFIED_ONLY" envDefault:"true"`
}

// Enabled reports whether at least one client id is configured.
func (c GoogleConfig) Enabled() bool {
	return len(c.ClientIDs) > 0
}

// IDTokenValidator is satisfied by *idtoken.Validator.
type IDTokenValidator interface {
	Validate(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)
}

// GoogleVerifier turns Google ID tokens or authorization codes into
// verified profiles.
type GoogleVerifier struct {
	cfg       GoogleConfig
	validator IDTokenValidator
	oauth     *oauth2.Config
}

// GoogleOption configures a GoogleVerifier.
type GoogleOption func(*GoogleVerifier)

// WithIDTokenValidator replaces the default idtoken validator.
func WithIDTokenValidator(v IDTokenValidator) GoogleOption {
	return func(g *GoogleVerifier) {
		g.validator = v
	}
}

// WithGoogleEndpoint overrides the OAuth endpoint used for code exchange.
func WithGoogleEndpoint(e oauth2.Endpoint) GoogleOption {
	return func(g *GoogleVerifier) {
		if g.oauth != nil {
			g.oauth.Endpoint = e
		}
	}
}

// NewGoogleVerifier creates a verifier. With no client ids configured the
// verifier is returned but every call fails with ErrProviderNotConfigured.
func NewGoogleVerifier(ctx context.Context, cfg GoogleConfig, opts ...GoogleOption) (*GoogleVerifier, error) {
	g := &GoogleVerifier{cfg: cfg}
	if cfg.Enabled() && cfg.ClientSecret != "" {
		g.oauth = &oauth2.Config{
			ClientID:     cfg.ClientIDs[0],
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		}
	}
	for _, opt := range opts {
		opt(g)
	}

	if cfg.Enabled() && g.validator == nil {
		v, err := idtoken.NewValidator(ctx)
		if err != nil {
			return nil, fmt.Errorf("google id token validator: %w", err)
		}
		g.validator = v
	}
	return g, nil
}

// Verify validates a Google ID token against the configured audiences.
func (g *GoogleVerifier) Verify(ctx context.Context, idToken string) (*ProviderProfile, error) {
	if !g.cfg.Enabled() {
		return nil, ErrProviderNotConfigured
	}

	var (
		payload *idtoken.Payload
		lastErr error
	)
	for _, aud := range g.cfg.ClientIDs {
		p, err := g.validator.Validate(ctx, idToken, aud)
		if err == nil {
			payload = p
			break
		}
		lastErr = err
	}
	if payload == nil {
		return nil, errors.Join(ErrUpstreamVerification, lastErr)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, ErrEmailNotProvided
	}
	verified := claimBool(payload.Claims["email_verified"])
	if g.cfg.VerifiedOnly && !verified {
		return nil, ErrUnverifiedEmail
	}

	first, _ := payload.Claims["given_name"].(string)
	last, _ := payload.Claims["family_name"].(string)
	if first == "" && last == "" {
		name, _ := payload.Claims["name"].(string)
		first, last, _ = strings.Cut(strings.TrimSpace(name), " ")
	}
	picture, _ := payload.Claims["picture"].(string)

	return &ProviderProfile{
		Provider:      ProviderGoogle,
		Subject:       payload.Subject,
		Email:         email,
		EmailVerified: verified,
		FirstName:     first,
		LastName:      strings.TrimSpace(last),
		Picture:       picture,
	}, nil
}

// Exchange redeems an authorization code and verifies the returned ID token.
func (g *GoogleVerifier) Exchange(ctx context.Context, code string) (*ProviderProfile, error) {
	if !g.cfg.Enabled() || g.oauth == nil {
		return nil, ErrProviderNotConfigured
	}

	tok, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, errors.Join(ErrUpstreamVerification, err)
	}
	idToken, ok := tok.Extra("id_token").(string)
	if !ok || idToken == "" {
		return nil, fmt.Errorf("%w: token response has no id_token", ErrUpstreamVerification)
	}
	return g.Verify(ctx, idToken)
}

// claimBool reads a boolean claim that some issuers encode as a string.
func claimBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b == "true"
	default:
		return false
	}
}
