// Package ratelimiter provides token bucket rate limiting with in-memory and
// Redis storage plus an HTTP middleware.
//
// A Bucket holds up to Capacity tokens and gains RefillRate tokens every
// RefillInterval. Each request takes one token; a request that does not fit
// is denied without consuming anything.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       5,
//		RefillRate:     1,
//		RefillInterval: time.Minute,
//	})
//	if err != nil {
//		return err
//	}
//
//	r.With(ratelimiter.Middleware(limiter, ratelimiter.Composite(
//		ratelimiter.Static("otp"), ratelimiter.ByIP(),
//	))).Post("/auth/otp/email/send", sendOTP)
//
// RedisStore runs the same algorithm as a Lua script, so limits hold across
// several API instances.
//
// The middleware sets X-RateLimit-Limit, X-RateLimit-Remaining and
// X-RateLimit-Reset on every limited response and Retry-After on 429s.
package ratelimiter
