package otp

import "errors"

var (
	// Returned by Verify.
	ErrNotFound         = errors.New("otp: not found or expired")
	ErrAttemptsExceeded = errors.New("otp: maximum attempts exceeded")
	ErrMismatch         = errors.New("otp: invalid code")

	// Returned by Storage implementations.
	ErrChallengeNotFound = errors.New("otp: challenge not found")
	ErrAttemptsExhausted = errors.New("otp: challenge attempts exhausted")

	ErrInvalidConfig      = errors.New("otp: invalid config")
	ErrInvalidChannel     = errors.New("otp: invalid channel")
	ErrEmptyIdentifier    = errors.New("otp: identifier is required")
	ErrFailedToGenerate   = errors.New("otp: failed to generate code")
	ErrFailedToStore      = errors.New("otp: failed to store challenge")
	ErrVerificationFailed = errors.New("otp: verification failed")
)
