package ratelimiter

import "time"

// Result contains the result of a rate limit check.
type Result struct {
	Limit     int       // bucket capacity
	Remaining int       // tokens left; negative when the request was denied
	ResetAt   time.Time // next refill
}

// Allowed reports whether the request fit in the bucket.
func (r *Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter returns how long to wait before the next request.
// Returns 0 if the request was allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(0, time.Until(r.ResetAt))
}

// Config defines the token bucket configuration.
//
// The defaults allow a burst of 5 OTP sends per client IP, refilled at one
// token per minute.
type Config struct {
	Capacity       int           `env:"RATE_LIMIT_OTP_CAPACITY" envDefault:"5"`
	RefillRate     int           `env:"RATE_LIMIT_OTP_REFILL_RATE" envDefault:"1"`
	RefillInterval time.Duration `env:"RATE_LIMIT_OTP_REFILL_INTERVAL" envDefault:"1m"`
}

// ttl is how long an idle bucket takes to fill up completely, plus one
// interval. Stores may forget a key after that.
func (c Config) ttl() time.Duration {
	intervals := (c.Capacity + c.RefillRate - 1) / c.RefillRate
	return time.Duration(intervals+1) * c.RefillInterval
}
