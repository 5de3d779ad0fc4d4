package auth

import "errors"

// User errors.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrEmailAlreadyExists = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoIdentifier       = errors.New("user must have an email, mobile number or provider id")
	ErrUnauthorized       = errors.New("unauthorized")
)

// Token errors.
var (
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")
	ErrTokenRevoked          = errors.New("token revoked")
	ErrTokenExists           = errors.New("token already exists")
	ErrInvalidTokenConfig    = errors.New("invalid token configuration")
	ErrFailedToIssueToken    = errors.New("failed to issue token")
)

// Provider errors.
var (
	ErrProviderNotConfigured = errors.New("identity provider not configured")
	ErrUpstreamVerification  = errors.New("identity provider verification failed")
	ErrEmailNotProvided      = errors.New("email not provided by identity provider")
	ErrUnverifiedEmail       = errors.New("email not verified by identity provider")
	ErrSubjectMismatch       = errors.New("identity token subject does not match")
)

// Password errors.
var (
	ErrPasswordRequired     = errors.New("password is required")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)
