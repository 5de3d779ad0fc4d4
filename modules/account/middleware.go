package account

import (
	"context"
	"net/http"

	"github.com/traveltinder/backend/handler"
	"github.com/traveltinder/backend/pkg/auth"
	"github.com/traveltinder/backend/pkg/jwt"
)

// TokenVerifier is implemented by *auth.TokenIssuer.
type TokenVerifier interface {
	VerifyAccess(token string) (*auth.AccessClaims, error)
}

// RequireAuth rejects requests without a valid bearer access token and
// stores the verified claims in the request context.
func RequireAuth(verifier TokenVerifier, errorHandler handler.ErrorHandler[handler.Context]) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := jwt.BearerTokenExtractor(r)
			if err != nil {
				errorHandler(handler.NewContext(w, r), ErrUnauthorized)
				return
			}

			claims, err := verifier.VerifyAccess(token)
			if err != nil {
				errorHandler(handler.NewContext(w, r), err)
				return
			}

			ctx := jwt.SetToken(r.Context(), token)
			ctx = jwt.SetClaims(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the claims stored by RequireAuth.
func ClaimsFromContext(ctx context.Context) (*auth.AccessClaims, bool) {
	return jwt.GetClaims[*auth.AccessClaims](ctx)
}
