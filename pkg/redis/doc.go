// Package redis connects to Redis with go-redis/v9. The API uses it as the
// shared backend for OTP send rate limits when more than one instance runs.
package redis
