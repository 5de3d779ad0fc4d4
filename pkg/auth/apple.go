package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"slices"
	"sync"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

const appleIssuer = "https://appleid.apple.com"

// AppleConfig configures Sign in with Apple. ClientIDs are the accepted
// audiences (bundle ids and service ids).
type AppleConfig struct {
	ClientIDs    []string      `env:"APPLE_CLIENT_IDS" envSeparator:","`
	KeysURL      string        `env:"APPLE_KEYS_URL" envDefault:"https://appleid.apple.com/auth/keys"`
	KeysCacheTTL time.Duration `env:"APPLE_KEYS_CACHE_TTL" envDefault:"24h"`
}

// Enabled reports whether at least one client id is configured.
func (c AppleConfig) Enabled() bool {
	return len(c.ClientIDs) > 0
}

type appleClaims struct {
	Email          string `json:"email"`
	EmailVerified  any    `json:"email_verified"`
	IsPrivateEmail any    `json:"is_private_email"`
	gojwt.RegisteredClaims
}

// AppleVerifier validates Apple identity tokens against Apple's published
// signing keys.
type AppleVerifier struct {
	cfg    AppleConfig
	client *http.Client
	now    func() time.Time

	mu        sync.Mutex
	keys      map[string]*rsa.PublicKey
	fetchedAt time.Time
}

// AppleOption configures an AppleVerifier.
type AppleOption func(*AppleVerifier)

// WithAppleHTTPClient sets the client used to fetch signing keys.
func WithAppleHTTPClient(c *http.Client) AppleOption {
	return func(a *AppleVerifier) {
		a.client = c
	}
}

// WithAppleClock overrides time.Now for expiry checks and key caching.
func WithAppleClock(now func() time.Time) AppleOption {
	return func(a *AppleVerifier) {
		a.now = now
	}
}

// NewAppleVerifier creates a verifier. With no client ids configured every
// call fails with ErrProviderNotConfigured.
func NewAppleVerifier(cfg AppleConfig, opts ...AppleOption) *AppleVerifier {
	if cfg.KeysURL == "" {
		cfg.KeysURL = "https://appleid.apple.com/auth/keys"
	}
	if cfg.KeysCacheTTL <= 0 {
		cfg.KeysCacheTTL = 24 * time.Hour
	}
	a := &AppleVerifier{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Verify checks the identity token signature, issuer, audience and expiry.
// When appleID is not empty it must equal the token subject. The email in
// the token always wins over anything the client sent.
func (a *AppleVerifier) Verify(ctx context.Context, identityToken, appleID string) (*ProviderProfile, error) {
	if !a.cfg.Enabled() {
		return nil, ErrProviderNotConfigured
	}

	var claims appleClaims
	_, err := gojwt.ParseWithClaims(identityToken, &claims,
		func(t *gojwt.Token) (any, error) {
			kid, _ := t.Header["kid"].(string)
			return a.key(ctx, kid)
		},
		gojwt.WithValidMethods([]string{gojwt.SigningMethodRS256.Alg()}),
		gojwt.WithIssuer(appleIssuer),
		gojwt.WithExpirationRequired(),
		gojwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return nil, errors.Join(ErrUpstreamVerification, err)
	}

	if !slices.ContainsFunc(claims.Audience, func(aud string) bool {
		return slices.Contains(a.cfg.ClientIDs, aud)
	}) {
		return nil, fmt.Errorf("%w: unexpected audience %v", ErrUpstreamVerification, claims.Audience)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrUpstreamVerification)
	}
	if appleID != "" && appleID != claims.Subject {
		return nil, ErrSubjectMismatch
	}

	return &ProviderProfile{
		Provider:      ProviderApple,
		Subject:       claims.Subject,
		Email:         claims.Email,
		EmailVerified: claims.Email != "" && claimBool(claims.EmailVerified),
	}, nil
}

// key returns the signing key for kid, refetching the key set when the
// cache is stale or the kid is unknown (Apple rotates keys).
func (a *AppleVerifier) key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	if kid == "" {
		return nil, errors.New("missing kid header")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	fresh := a.now().Sub(a.fetchedAt) < a.cfg.KeysCacheTTL
	if k, ok := a.keys[kid]; ok && fresh {
		return k, nil
	}

	keys, err := a.fetchKeys(ctx)
	if err != nil {
		// Fall back to a stale cached key rather than failing every sign-in
		// while Apple is unreachable.
		if k, ok := a.keys[kid]; ok {
			return k, nil
		}
		return nil, err
	}
	a.keys = keys
	a.fetchedAt = a.now()

	k, ok := keys[kid]
	if !ok {
		return nil, fmt.Errorf("unknown signing key %q", kid)
	}
	return k, nil
}

type jwkSet struct {
	Keys []jwk `json:"keys"`
}

type jwk struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	Alg string `json:"alg"`
	N   string `json:"n"`
	E   string `json:"e"`
}

func (a *AppleVerifier) fetchKeys(ctx context.Context) (map[string]*rsa.PublicKey, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.cfg.KeysURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch apple keys: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch apple keys: unexpected status %d", resp.StatusCode)
	}

	var set jwkSet
	if err := json.NewDecoder(resp.Body).Decode(&set); err != nil {
		return nil, fmt.Errorf("decode apple keys: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(set.Keys))
	for _, k := range set.Keys {
		if k.Kty != "RSA" || (k.Use != "" && k.Use != "sig") {
			continue
		}
		pub, err := k.rsaPublicKey()
		if err != nil {
			return nil, fmt.Errorf("apple key %q: %w", k.Kid, err)
		}
		keys[k.Kid] = pub
	}
	if len(keys) == 0 {
		return nil, errors.New("apple key set contains no RSA signing keys")
	}
	return keys, nil
}

func (k jwk) rsaPublicKey() (*rsa.PublicKey, error) {
	n, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, fmt.Errorf("modulus: %w", err)
	}
	e, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, fmt.Errorf("exponent: %w", err)
	}
	exp := new(big.Int).SetBytes(e)
	if !exp.IsInt64() || exp.Int64() < 3 || exp.Int64() > 1<<31-1 {
		return nil, errors.New("exponent out of range")
	}
	return &rsa.PublicKey{N: new(big.Int).SetBytes(n), E: int(exp.Int64())}, nil
}
