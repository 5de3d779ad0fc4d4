package clientip_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/traveltinder/backend/pkg/clientip"
)

func TestGetIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		remote     string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{
			name:   "remote addr with port",
			remote: "203.0.113.7:51234",
			want:   "203.0.113.7",
		},
		{
			name:    "proxy headers ignored when untrusted",
			remote:  "10.0.0.1:80",
			headers: map[string]string{"X-Forwarded-For": "198.51.100.2"},
			want:    "10.0.0.1",
		},
		{
			name:       "cloudflare header wins when trusted",
			remote:     "10.0.0.1:80",
			headers:    map[string]string{"CF-Connecting-IP": "198.51.100.9", "X-Forwarded-For": "198.51.100.2"},
			trustProxy: true,
			want:       "198.51.100.9",
		},
		{
			name:       "first valid forwarded entry",
			remote:     "10.0.0.1:80",
			headers:    map[string]string{"X-Forwarded-For": "garbage, 198.51.100.2, 10.0.0.1"},
			trustProxy: true,
			want:       "198.51.100.2",
		},
		{
			name:       "ipv6 remote",
			remote:     "[2001:db8::1]:443",
			trustProxy: true,
			want:       "2001:db8::1",
		},
		{
			name:   "invalid remote",
			remote: "not-an-ip",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientip.GetIP(r, tt.trustProxy))
		})
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var got string
	h := clientip.Middleware(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = clientip.FromContext(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.10:1234"
	h.ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, "192.0.2.10", got)
}
