// Package sanitizer canonicalises contact identifiers before they are used
// as lookup keys, so the same email address or phone number always maps to
// one user and one OTP challenge.
package sanitizer
