// Package auth holds the account model and the pieces that turn a proof of
// identity into a signed-in user.
//
// Resolver maps a verified Identity (password, email or mobile OTP, Google
// or Apple) to a User, creating the account on first sign-in and linking
// provider ids to an existing account with the same email. Verification
// flags never go back to false and profile fields are only filled when
// empty.
//
// TokenIssuer mints HS256 access tokens (stateless, short-lived) and refresh
// tokens (persisted through RefreshTokenStorage so they can be revoked).
// Access and refresh tokens are signed with different secrets.
//
// GoogleVerifier and AppleVerifier validate provider ID tokens. Google
// tokens go through google.golang.org/api/idtoken; Apple tokens are checked
// against Apple's JWKS with golang-jwt. An unconfigured verifier returns
// ErrProviderNotConfigured.
package auth
