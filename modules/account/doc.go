// Package account exposes the authentication API over HTTP.
//
// AuthService mounts the sign-up, sign-in, token refresh, sign-out and
// profile routes under /auth. Every response uses the handler.Envelope
// format; MapError turns domain errors into statuses and stable codes.
//
//	authSvc := account.NewAuthService(sessions, tokens,
//		handler.NewErrorHandler(log, account.MapError),
//		account.WithOTPLimiter(limiter, ratelimiter.ByIP()),
//	)
//	r.Mount("/", account.Router(account.RouterOptions{Auth: authSvc}))
//
// Routes under /auth/logout/all and /auth/profile require a bearer access
// token; RequireAuth stores its claims for ClaimsFromContext.
package account
