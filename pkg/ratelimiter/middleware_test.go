package ratelimiter_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traveltinder/backend/pkg/clientip"
	"github.com/traveltinder/backend/pkg/ratelimiter"
)

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (*ratelimiter.Result, error) {
	return nil, ratelimiter.ErrStoreUnavailable
}

func (failingLimiter) AllowN(context.Context, string, int) (*ratelimiter.Result, error) {
	return nil, ratelimiter.ErrStoreUnavailable
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddleware_DeniesWithEnvelope(t *testing.T) {
	t.Parallel()

	b, _ := newBucket(t, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Minute})
	h := ratelimiter.Middleware(b, ratelimiter.ByIP())(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/auth/otp/email/send", nil)
	req.RemoteAddr = "203.0.113.7:1234"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "too_many_requests", body["code"])
}

func TestMiddleware_UsesClientIPFromContext(t *testing.T) {
	t.Parallel()

	b, _ := newBucket(t, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Minute})
	h := ratelimiter.Middleware(b, ratelimiter.ByIP())(okHandler())

	for _, ip := range []string{"198.51.100.1", "198.51.100.2"} {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req = req.WithContext(clientip.WithContext(req.Context(), ip))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, ip)
	}
}

func TestMiddleware_CustomDenied(t *testing.T) {
	t.Parallel()

	b, _ := newBucket(t, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Minute})
	called := false
	h := ratelimiter.Middleware(b, ratelimiter.Static("k"), ratelimiter.WithDeniedHandler(
		func(w http.ResponseWriter, _ *http.Request, res *ratelimiter.Result) {
			called = true
			assert.False(t, res.Allowed())
			w.WriteHeader(http.StatusTeapot)
		},
	))(okHandler())

	for range 2 {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	}
	assert.True(t, called)
}

func TestMiddleware_EmptyKeyPassesThrough(t *testing.T) {
	t.Parallel()

	h := ratelimiter.Middleware(failingLimiter{}, ratelimiter.Static(""))(okHandler())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMiddleware_StoreError(t *testing.T) {
	t.Parallel()

	var gotErr error
	h := ratelimiter.Middleware(failingLimiter{}, ratelimiter.Static("k"), ratelimiter.WithErrorHandler(
		func(w http.ResponseWriter, _ *http.Request, err error) {
			gotErr = err
			w.WriteHeader(http.StatusServiceUnavailable)
		},
	))(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.True(t, errors.Is(gotErr, ratelimiter.ErrStoreUnavailable))

	rec = httptest.NewRecorder()
	ratelimiter.Middleware(failingLimiter{}, ratelimiter.Static("k"))(okHandler()).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestComposite(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Equal(t, "otp:1.2.3.4", ratelimiter.Composite(ratelimiter.Static("otp"), ratelimiter.Static("1.2.3.4"))(req))
	assert.Equal(t, "otp", ratelimiter.Composite(ratelimiter.Static("otp"), ratelimiter.Static(""))(req))
	assert.Empty(t, ratelimiter.Composite(ratelimiter.Static(""))(req))

	long := ratelimiter.Composite(ratelimiter.Static(strings.Repeat("x", 80)))(req)
	assert.LessOrEqual(t, len(long), 64)
	assert.NotEqual(t, strings.Repeat("x", 80), long)
}
