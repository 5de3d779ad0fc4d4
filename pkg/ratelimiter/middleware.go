package ratelimiter

import (
	"encoding/json"
	"hash/fnv"
	"net/http"
	"strconv"
	"strings"

	"github.com/traveltinder/backend/pkg/clientip"
)

// maxKeyLength caps composite keys; longer ones are hashed.
const maxKeyLength = 64

// KeyFunc extracts a rate limit key from the request.
type KeyFunc func(r *http.Request) string

// ByIP keys requests by the client IP resolved by clientip.Middleware,
// falling back to the socket address.
func ByIP() KeyFunc {
	return func(r *http.Request) string {
		if ip := clientip.FromContext(r.Context()); ip != "" {
			return ip
		}
		return clientip.GetIP(r, false)
	}
}

// Static returns a constant key part, e.g. the route group name.
func Static(s string) KeyFunc {
	return func(*http.Request) string { return s }
}

// Composite combines multiple key functions into one.
// Long keys (>64 chars) are hashed using FNV-1a.
func Composite(keyFuncs ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(keyFuncs))
		for _, fn := range keyFuncs {
			if key := fn(r); key != "" {
				parts = append(parts, key)
			}
		}
		if len(parts) == 0 {
			return ""
		}

		combined := strings.Join(parts, ":")
		if len(combined) <= maxKeyLength {
			return combined
		}
		h := fnv.New64a()
		h.Write([]byte(combined))
		return strconv.FormatUint(h.Sum64(), 36)
	}
}

// DeniedFunc writes the response for a rejected request.
type DeniedFunc func(w http.ResponseWriter, r *http.Request, res *Result)

// ErrorFunc writes the response when the limiter itself fails.
type ErrorFunc func(w http.ResponseWriter, r *http.Request, err error)

type middlewareOptions struct {
	denied  DeniedFunc
	onError ErrorFunc
}

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middlewareOptions)

// WithDeniedHandler replaces the default 429 JSON response.
func WithDeniedHandler(fn DeniedFunc) MiddlewareOption {
	return func(o *middlewareOptions) { o.denied = fn }
}

// WithErrorHandler replaces the default 500 response on store errors.
func WithErrorHandler(fn ErrorFunc) MiddlewareOption {
	return func(o *middlewareOptions) { o.onError = fn }
}

// Middleware creates an HTTP middleware that takes one token per request.
// Requests with an empty key are not limited.
func Middleware(limiter Limiter, keyFunc KeyFunc, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	o := middlewareOptions{denied: defaultDenied, onError: defaultError}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFunc(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			result, err := limiter.Allow(r.Context(), key)
			if err != nil {
				o.onError(w, r, err)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(0, result.Remaining)))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

			if !result.Allowed() {
				if retryAfter := int(result.RetryAfter().Seconds()); retryAfter > 0 {
					w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				}
				o.denied(w, r, result)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func defaultDenied(w http.ResponseWriter, _ *http.Request, _ *Result) {
	writeJSON(w, http.StatusTooManyRequests, "Too many requests, please try again later", "too_many_requests")
}

func defaultError(w http.ResponseWriter, _ *http.Request, _ error) {
	writeJSON(w, http.StatusInternalServerError, "Internal server error", "internal_error")
}

func writeJSON(w http.ResponseWriter, status int, message, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
		"code":    code,
	})
}
