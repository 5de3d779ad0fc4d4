// Package session implements the sign-in, token refresh and sign-out flows
// on top of the auth, otp and messaging packages.
//
// Login accepts one of five proofs (EmailPasswordLogin, EmailOTPLogin,
// MobileOTPLogin, GoogleLogin, AppleLogin). Every successful proof resolves
// to a user through auth.Resolver and yields a Session holding an access and
// a refresh token. Validation failures are returned as
// validator.ValidationErrors; everything else uses the sentinel errors of
// the auth and otp packages.
package session
