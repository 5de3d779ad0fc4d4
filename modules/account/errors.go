package account

import (
	"errors"
	"net/http"

	"github.com/traveltinder/backend/handler"
	"github.com/traveltinder/backend/pkg/auth"
	"github.com/traveltinder/backend/pkg/email"
	"github.com/traveltinder/backend/pkg/otp"
	"github.com/traveltinder/backend/pkg/sms"
)

var (
	ErrInvalidCredentials   = handler.NewHTTPError(http.StatusUnauthorized, "invalid_credentials", "Invalid credentials")
	ErrEmailAlreadyExists   = handler.NewHTTPError(http.StatusBadRequest, "email_exists", "User with this email already exists")
	ErrAccountConflict      = handler.NewHTTPError(http.StatusConflict, "account_conflict", "Account already linked to another user")
	ErrOTPNotFound          = handler.NewHTTPError(http.StatusBadRequest, "otp_not_found", "OTP not found or expired")
	ErrOTPAttemptsExceeded  = handler.NewHTTPError(http.StatusBadRequest, "otp_attempts_exceeded", "Maximum OTP attempts exceeded")
	ErrOTPMismatch          = handler.NewHTTPError(http.StatusBadRequest, "invalid_otp", "Invalid OTP")
	ErrInvalidToken         = handler.NewHTTPError(http.StatusUnauthorized, "invalid_token", "Invalid or expired token")
	ErrInvalidRefreshToken  = handler.NewHTTPError(http.StatusUnauthorized, "invalid_refresh_token", "Invalid or expired refresh token")
	ErrTokenRevokedHTTP     = handler.NewHTTPError(http.StatusUnauthorized, "token_revoked", "Invalid or expired refresh token")
	ErrUnauthorized         = handler.NewHTTPError(http.StatusUnauthorized, "unauthorized", "Unauthorized")
	ErrUserNotFound         = handler.NewHTTPError(http.StatusNotFound, "user_not_found", "User not found")
	ErrIdentityVerification = handler.NewHTTPError(http.StatusUnauthorized, "identity_verification_failed", "Identity token verification failed")
	ErrUnverifiedEmail      = handler.NewHTTPError(http.StatusUnauthorized, "unverified_email", "Email not verified by identity provider")
	ErrEmailNotProvided     = handler.NewHTTPError(http.StatusBadRequest, "email_not_provided", "Email not provided by identity provider")
	ErrProviderDisabled     = handler.NewHTTPError(http.StatusNotImplemented, "provider_not_configured", "Sign-in provider is not configured")
	ErrDeliveryFailed       = handler.NewHTTPError(http.StatusInternalServerError, "delivery_failed", "Failed to send OTP")
)

// errorTable is checked in order; the first match wins.
var errorTable = []struct {
	target error
	http   handler.HTTPError
}{
	{auth.ErrInvalidCredentials, ErrInvalidCredentials},
	{auth.ErrEmailAlreadyExists, ErrEmailAlreadyExists},
	{auth.ErrUserExists, ErrAccountConflict},
	{otp.ErrNotFound, ErrOTPNotFound},
	{otp.ErrAttemptsExceeded, ErrOTPAttemptsExceeded},
	{otp.ErrMismatch, ErrOTPMismatch},
	{auth.ErrInvalidOrExpiredToken, ErrInvalidToken},
	{auth.ErrTokenRevoked, ErrTokenRevokedHTTP},
	{auth.ErrUnauthorized, ErrUnauthorized},
	{auth.ErrUserNotFound, ErrUserNotFound},
	{auth.ErrUpstreamVerification, ErrIdentityVerification},
	{auth.ErrSubjectMismatch, ErrIdentityVerification},
	{auth.ErrUnverifiedEmail, ErrUnverifiedEmail},
	{auth.ErrEmailNotProvided, ErrEmailNotProvided},
	{auth.ErrProviderNotConfigured, ErrProviderDisabled},
	{email.ErrFailedToSendEmail, ErrDeliveryFailed},
	{sms.ErrFailedToSendSMS, ErrDeliveryFailed},
}

// MapError converts domain errors into HTTP errors. It is the
// handler.ErrorMapper of the API; unknown errors pass through and end up
// as an opaque 500.
func MapError(err error) error {
	for _, e := range errorTable {
		if errors.Is(err, e.target) {
			return e.http
		}
	}
	return err
}
