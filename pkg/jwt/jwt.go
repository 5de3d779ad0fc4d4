package jwt

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// RegisteredClaims re-exports the RFC 7519 registered claims so callers can
// embed them without importing golang-jwt directly.
type RegisteredClaims = jwt.RegisteredClaims

// NumericDate re-exports the JWT timestamp type.
type NumericDate = jwt.NumericDate

// NewNumericDate re-exports jwt.NewNumericDate.
var NewNumericDate = jwt.NewNumericDate

// Service signs and verifies HS256 tokens with a single key.
// Access and refresh tokens use separate Services so a token of one kind
// can never validate as the other.
type Service struct {
	key    []byte
	issuer string
}

// Option configures a Service.
type Option func(*Service)

// WithIssuer requires the "iss" claim to equal issuer on Parse.
func WithIssuer(issuer string) Option {
	return func(s *Service) { s.issuer = issuer }
}

// New creates a Service for the given signing key.
func New(signingKey []byte, opts ...Option) (*Service, error) {
	if len(signingKey) == 0 {
		return nil, ErrMissingSigningKey
	}
	s := &Service{key: signingKey}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// NewFromString is New for string secrets loaded from configuration.
func NewFromString(signingKey string, opts ...Option) (*Service, error) {
	return New([]byte(signingKey), opts...)
}

// Generate signs claims with HS256.
func (s *Service) Generate(claims jwt.Claims) (string, error) {
	if claims == nil {
		return "", ErrMissingClaims
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("jwt: sign token: %w", err)
	}
	return token, nil
}

// Parse verifies the signature, algorithm, expiry and (if configured) issuer
// of tokenString and decodes it into claims. Expiry is mandatory.
func (s *Service) Parse(tokenString string, claims jwt.Claims) error {
	if claims == nil {
		return ErrMissingClaims
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	}, opts...)
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		// Also covers tokens signed with an algorithm other than HS256.
		return ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrUnexpectedSigningMethod
	default:
		return errors.Join(ErrInvalidToken, err)
	}
}
