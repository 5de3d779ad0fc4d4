package account

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/traveltinder/backend/handler"
	"github.com/traveltinder/backend/pkg/auth"
	"github.com/traveltinder/backend/pkg/binder"
	"github.com/traveltinder/backend/pkg/ratelimiter"
	"github.com/traveltinder/backend/svc/session"
)

// Sessions is implemented by *session.Service.
type Sessions interface {
	Login(ctx context.Context, req session.LoginRequest) (*session.Session, error)
	Register(ctx context.Context, in session.RegisterInput) (*auth.User, error)
	SendEmailOTP(ctx context.Context, email string) error
	SendMobileOTP(ctx context.Context, mobile string) (string, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, refreshToken string) error
	LogoutAll(ctx context.Context, userID string) error
	Profile(ctx context.Context, userID string) (*auth.User, error)
}

// AuthService serves the /auth routes.
type AuthService struct {
	sessions     Sessions
	tokens       TokenVerifier
	errorHandler handler.ErrorHandler[handler.Context]
	otpLimiter   ratelimiter.Limiter
	otpKey       ratelimiter.KeyFunc
	exposeOTP    bool
}

// AuthOption configures an AuthService.
type AuthOption func(*AuthService)

// WithOTPLimiter rate limits the OTP send routes. key defaults to the
// client IP.
func WithOTPLimiter(l ratelimiter.Limiter, key ratelimiter.KeyFunc) AuthOption {
	return func(s *AuthService) {
		s.otpLimiter = l
		if key != nil {
			s.otpKey = key
		}
	}
}

// WithDevOTP echoes generated mobile codes in the response body. Only for
// development environments.
func WithDevOTP(expose bool) AuthOption {
	return func(s *AuthService) {
		s.exposeOTP = expose
	}
}

// NewAuthService creates an AuthService. A nil errorHandler gets the
// default JSON handler with MapError.
func NewAuthService(
	sessions Sessions,
	tokens TokenVerifier,
	errorHandler handler.ErrorHandler[handler.Context],
	opts ...AuthOption,
) *AuthService {
	if errorHandler == nil {
		errorHandler = handler.NewErrorHandler(nil, MapError)
	}
	s := &AuthService{
		sessions:     sessions,
		tokens:       tokens,
		errorHandler: errorHandler,
		otpKey:       ratelimiter.ByIP(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AuthService) Handle() http.Handler {
	r := chi.NewRouter()

	r.Post("/register/email", wrap(s, s.register))
	r.Post("/login/email", wrap(s, s.loginEmail))

	r.Group(func(r chi.Router) {
		if s.otpLimiter != nil {
			r.Use(ratelimiter.Middleware(s.otpLimiter, s.otpKey,
				ratelimiter.WithDeniedHandler(s.denied),
				ratelimiter.WithErrorHandler(s.limiterFailed),
			))
		}
		r.Post("/otp/email/send", wrap(s, s.sendEmailOTP))
		r.Post("/otp/mobile/send", wrap(s, s.sendMobileOTP))
	})
	r.Post("/otp/email/verify", wrap(s, s.verifyEmailOTP))
	r.Post("/otp/mobile/verify", wrap(s, s.verifyMobileOTP))

	r.Post("/oauth/google", wrap(s, s.google))
	r.Post("/oauth/apple", wrap(s, s.apple))

	r.Post("/refresh", wrap(s, s.refresh))
	r.Post("/logout", wrap(s, s.logout))

	r.Group(func(r chi.Router) {
		r.Use(RequireAuth(s.tokens, s.errorHandler))
		r.Post("/logout/all", wrap(s, s.logoutAll))
		r.Get("/profile", wrap(s, s.profile))
	})

	return r
}

func wrap[R any](s *AuthService, h handler.HandlerFunc[handler.Context, R]) http.HandlerFunc {
	return handler.Wrap(h,
		handler.WithBinder[handler.Context, R](binder.JSON()),
		handler.WithErrorHandler[handler.Context, R](s.errorHandler),
	)
}

func (s *AuthService) denied(w http.ResponseWriter, r *http.Request, _ *ratelimiter.Result) {
	_ = handler.Fail(handler.ErrTooManyRequests).Render(w, r)
}

// limiterFailed reports a limiter store failure through the error handler
// so it is logged with the request id.
func (s *AuthService) limiterFailed(w http.ResponseWriter, r *http.Request, err error) {
	s.errorHandler(handler.NewContext(w, r), err)
}

func (s *AuthService) register(ctx handler.Context, req RegisterRequest) handler.Response {
	user, err := s.sessions.Register(ctx, session.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return handler.Error(err)
	}
	return handler.Created(
		"Registration successful. Please verify your email with the OTP sent.",
		RegisterData{UserID: user.ID, Email: user.Email},
	)
}

func (s *AuthService) loginEmail(ctx handler.Context, req LoginRequest) handler.Response {
	return s.login(ctx, "Login successful", session.EmailPasswordLogin{
		Email:    req.Email,
		Password: req.Password,
	})
}

func (s *AuthService) sendEmailOTP(ctx handler.Context, req SendEmailOTPRequest) handler.Response {
	if err := s.sessions.SendEmailOTP(ctx, req.Email); err != nil {
		return handler.Error(err)
	}
	return handler.OK("OTP sent to your email", nil)
}

func (s *AuthService) verifyEmailOTP(ctx handler.Context, req VerifyEmailOTPRequest) handler.Response {
	return s.login(ctx, "Login successful", session.EmailOTPLogin{
		Email:     req.Email,
		Code:      req.OTP,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
}

func (s *AuthService) sendMobileOTP(ctx handler.Context, req SendMobileOTPRequest) handler.Response {
	code, err := s.sessions.SendMobileOTP(ctx, req.Mobile)
	if err != nil {
		return handler.Error(err)
	}
	if s.exposeOTP {
		return handler.OK("OTP sent to your mobile number", OTPData{OTP: code})
	}
	return handler.OK("OTP sent to your mobile number", nil)
}

func (s *AuthService) verifyMobileOTP(ctx handler.Context, req VerifyMobileOTPRequest) handler.Response {
	return s.login(ctx, "Login successful", session.MobileOTPLogin{
		Mobile:    req.Mobile,
		Code:      req.OTP,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
}

func (s *AuthService) google(ctx handler.Context, req GoogleRequest) handler.Response {
	return s.login(ctx, "Google authentication successful", session.GoogleLogin{
		IDToken: req.IDToken,
		Code:    req.Code,
	})
}

func (s *AuthService) apple(ctx handler.Context, req AppleRequest) handler.Response {
	first, last := req.names()
	return s.login(ctx, "Apple authentication successful", session.AppleLogin{
		IdentityToken: req.IdentityToken,
		AppleID:       req.AppleID,
		FirstName:     first,
		LastName:      last,
	})
}

func (s *AuthService) login(ctx context.Context, message string, req session.LoginRequest) handler.Response {
	sess, err := s.sessions.Login(ctx, req)
	if err != nil {
		return handler.Error(err)
	}
	return handler.OK(message, newSessionData(sess))
}

func (s *AuthService) refresh(ctx handler.Context, req RefreshRequest) handler.Response {
	token, err := s.sessions.Refresh(ctx, req.RefreshToken)
	switch {
	case errors.Is(err, auth.ErrInvalidOrExpiredToken):
		return handler.Error(ErrInvalidRefreshToken)
	case err != nil:
		return handler.Error(err)
	}
	return handler.OK("Token refreshed successfully", RefreshData{AccessToken: token})
}

func (s *AuthService) logout(ctx handler.Context, req RefreshRequest) handler.Response {
	if err := s.sessions.Logout(ctx, req.RefreshToken); err != nil {
		return handler.Error(err)
	}
	return handler.OK("Logout successful", nil)
}

func (s *AuthService) logoutAll(ctx handler.Context, _ EmptyRequest) handler.Response {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return handler.Error(ErrUnauthorized)
	}
	if err := s.sessions.LogoutAll(ctx, claims.UserID); err != nil {
		return handler.Error(err)
	}
	return handler.OK("Logged out from all devices", nil)
}

func (s *AuthService) profile(ctx handler.Context, _ EmptyRequest) handler.Response {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return handler.Error(ErrUnauthorized)
	}
	user, err := s.sessions.Profile(ctx, claims.UserID)
	if err != nil {
		return handler.Error(err)
	}
	return handler.OK("Profile retrieved successfully", ProfileData{User: newUserDTO(user)})
}
