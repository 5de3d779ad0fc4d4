// Package mongostore implements the user, OTP and refresh token storages on
// MongoDB.
//
// Collections: users, otps and refresh_tokens. EnsureIndexes creates the
// unique and TTL indexes they depend on and must run before serving. TTL
// deletion is lazy, so every read also filters on expires_at.
package mongostore
