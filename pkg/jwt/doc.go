// Package jwt signs and verifies HS256 JSON Web Tokens on top of
// github.com/golang-jwt/jwt/v5.
//
// A Service holds one signing key and an optional expected issuer. Parse
// accepts only HS256, requires an expiry and maps library errors onto this
// package's sentinels, so callers can tell an expired token
// (ErrExpiredToken) from a forged one (ErrInvalidSignature):
//
//	svc, err := jwt.NewFromString(secret, jwt.WithIssuer("traveltinder"))
//	if err != nil {
//		return err
//	}
//	token, err := svc.Generate(claims)
//	...
//	var parsed MyClaims
//	if err := svc.Parse(token, &parsed); err != nil {
//		// errors.Is(err, jwt.ErrExpiredToken) ...
//	}
//
// Context helpers carry the raw token and verified claims through a request.
// BearerTokenExtractor reads the token from the Authorization header.
package jwt
