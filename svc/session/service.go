package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/traveltinder/backend/pkg/auth"
	"github.com/traveltinder/backend/pkg/logger"
	"github.com/traveltinder/backend/pkg/otp"
	"github.com/traveltinder/backend/pkg/sanitizer"
	"github.com/traveltinder/backend/pkg/sms"
	"github.com/traveltinder/backend/pkg/validator"
)

// Mailer sends the transactional emails of the sign-in flows.
type Mailer interface {
	SendOTP(ctx context.Context, to, code string, verification bool) error
	SendWelcome(ctx context.Context, to, firstName string) error
}

// GoogleVerifier is implemented by *auth.GoogleVerifier.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (*auth.ProviderProfile, error)
	Exchange(ctx context.Context, code string) (*auth.ProviderProfile, error)
}

// AppleVerifier is implemented by *auth.AppleVerifier.
type AppleVerifier interface {
	Verify(ctx context.Context, identityToken, appleID string) (*auth.ProviderProfile, error)
}

// Session is the result of a successful sign-in.
type Session struct {
	User         *auth.User
	AccessToken  string
	RefreshToken string
	Created      bool
}

// Service runs every sign-in, token and sign-out flow.
type Service struct {
	users    auth.UserStorage
	resolver *auth.Resolver
	tokens   *auth.TokenIssuer
	otps     *otp.Issuer
	mailer   Mailer
	sms      sms.Sender
	google   GoogleVerifier
	apple    AppleVerifier

	logger         *slog.Logger
	bcryptCost     int
	passwordPolicy validator.PasswordPolicy
	asyncTimeout   time.Duration
	now            func() time.Time

	wg sync.WaitGroup
}

// Deps are the collaborators a Service needs.
type Deps struct {
	Users    auth.UserStorage
	Resolver *auth.Resolver
	Tokens   *auth.TokenIssuer
	OTP      *otp.Issuer
	Mailer   Mailer
	SMS      sms.Sender
	Google   GoogleVerifier
	Apple    AppleVerifier
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// WithBcryptCost sets the bcrypt cost for new passwords.
func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		s.bcryptCost = cost
	}
}

// WithPasswordPolicy replaces validator.DefaultPasswordPolicy.
func WithPasswordPolicy(p validator.PasswordPolicy) Option {
	return func(s *Service) {
		s.passwordPolicy = p
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a Service.
func NewService(deps Deps, opts ...Option) *Service {
	s := &Service{
		users:          deps.Users,
		resolver:       deps.Resolver,
		tokens:         deps.Tokens,
		otps:           deps.OTP,
		mailer:         deps.Mailer,
		sms:            deps.SMS,
		google:         deps.Google,
		apple:          deps.Apple,
		logger:         logger.Discard(),
		bcryptCost:     10,
		passwordPolicy: validator.DefaultPasswordPolicy,
		asyncTimeout:   10 * time.Second,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login verifies the proof carried by req and starts a session.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	switch r := req.(type) {
	case EmailPasswordLogin:
		return s.loginEmailPassword(ctx, r)
	case EmailOTPLogin:
		return s.loginEmailOTP(ctx, r)
	case MobileOTPLogin:
		return s.loginMobileOTP(ctx, r)
	case GoogleLogin:
		return s.loginGoogle(ctx, r)
	case AppleLogin:
		return s.loginApple(ctx, r)
	default:
		return nil, fmt.Errorf("session: unsupported login request %T", req)
	}
}

func (s *Service) loginEmailPassword(ctx context.Context, r EmailPasswordLogin) (*Session, error) {
	email := sanitizer.NormalizeEmail(r.Email)
	if err := validator.Apply(
		validator.ValidEmail("email", email),
		validator.RequiredString("password", r.Password, "Password is required"),
	); err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.HasPassword() {
		return nil, auth.ErrInvalidCredentials
	}
	if err := auth.ComparePassword(user.PasswordHash, r.Password); err != nil {
		return nil, err
	}

	user, _, err = s.resolver.Resolve(ctx, auth.Identity{Kind: auth.KindEmailPassword, Email: email})
	if err != nil {
		return nil, err
	}
	return s.start(ctx, user, false)
}

func (s *Service) loginEmailOTP(ctx context.Context, r EmailOTPLogin) (*Session, error) {
	email := sanitizer.NormalizeEmail(r.Email)
	if err := validator.Apply(
		validator.ValidEmail("email", email),
		validator.ValidOTP("otp", r.Code, s.otps.Config().Length),
	); err != nil {
		return nil, err
	}

	if err := s.otps.Verify(ctx, email, r.Code, otp.ChannelEmail); err != nil {
		return nil, err
	}

	user, created, err := s.resolver.Resolve(ctx, auth.Identity{
		Kind:          auth.KindEmailOTP,
		Email:         email,
		FirstName:     strings.TrimSpace(r.FirstName),
		LastName:      strings.TrimSpace(r.LastName),
		EmailVerified: true,
	})
	if err != nil {
		return nil, err
	}
	if created && user.FirstName != "" {
		s.welcome(user.ID, user.Email, user.FirstName)
	}
	return s.start(ctx, user, created)
}

func (s *Service) loginMobileOTP(ctx context.Context, r MobileOTPLogin) (*Session, error) {
	if err := validator.Apply(
		validator.ValidMobile("mobile", r.Mobile),
		validator.ValidOTP("otp", r.Code, s.otps.Config().Length),
	); err != nil {
		return nil, err
	}
	mobile := sanitizer.NormalizeMobile(r.Mobile)

	if err := s.otps.Verify(ctx, mobile, r.Code, otp.ChannelMobile); err != nil {
		return nil, err
	}

	user, created, err := s.resolver.Resolve(ctx, auth.Identity{
		Kind:      auth.KindMobileOTP,
		Mobile:    mobile,
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
	})
	if err != nil {
		return nil, err
	}
	return s.start(ctx, user, created)
}

func (s *Service) loginGoogle(ctx context.Context, r GoogleLogin) (*Session, error) {
	if strings.TrimSpace(r.IDToken) == "" && strings.TrimSpace(r.Code) == "" {
		return nil, validator.ValidationErrors{{Field: "idToken", Message: "ID token is required"}}
	}
	if s.google == nil {
		return nil, auth.ErrProviderNotConfigured
	}

	var (
		profile *auth.ProviderProfile
		err     error
	)
	if r.IDToken != "" {
		profile, err = s.google.Verify(ctx, r.IDToken)
	} else {
		profile, err = s.google.Exchange(ctx, r.Code)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "google verification failed", logger.Provider("google"), logger.Error(err))
		return nil, err
	}

	user, created, err := s.resolver.Resolve(ctx, profile.Identity())
	if err != nil {
		return nil, err
	}
	if created && profile.FirstName != "" && user.Email != "" {
		s.welcome(user.ID, user.Email, profile.FirstName)
	}
	return s.start(ctx, user, created)
}

func (s *Service) loginApple(ctx context.Context, r AppleLogin) (*Session, error) {
	if err := validator.Apply(
		validator.RequiredString("identityToken", r.IdentityToken, "Identity token is required"),
	); err != nil {
		return nil, err
	}
	if s.apple == nil {
		return nil, auth.ErrProviderNotConfigured
	}

	profile, err := s.apple.Verify(ctx, r.IdentityToken, strings.TrimSpace(r.AppleID))
	if err != nil {
		s.logger.WarnContext(ctx, "apple verification failed", logger.Provider("apple"), logger.Error(err))
		return nil, err
	}

	id := profile.Identity()
	id.FirstName = strings.TrimSpace(r.FirstName)
	id.LastName = strings.TrimSpace(r.LastName)

	user, created, err := s.resolver.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	if created && id.FirstName != "" && user.Email != "" {
		s.welcome(user.ID, user.Email, id.FirstName)
	}
	return s.start(ctx, user, created)
}

// start issues the token pair for an authenticated user.
func (s *Service) start(ctx context.Context, user *auth.User, created bool) (*Session, error) {
	pair, err := s.tokens.IssuePair(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "session started",
		logger.UserID(user.ID),
		slog.Bool("created", created),
		logger.Component("session"),
	)
	return &Session{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Created:      created,
	}, nil
}

// Register creates an unverified email account and emails it a
// verification code. Delivery failure fails the call.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*auth.User, error) {
	email := sanitizer.NormalizeEmail(in.Email)
	firstName := strings.TrimSpace(in.FirstName)
	if err := validator.Apply(
		validator.ValidEmail("email", email),
		validator.PasswordLength("password", in.Password, s.passwordPolicy),
		validator.StrongPassword("password", in.Password, s.passwordPolicy),
		validator.RequiredString("firstName", firstName, "First name is required"),
	); err != nil {
		return nil, err
	}

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, auth.ErrEmailAlreadyExists
	} else if !errors.Is(err, auth.ErrUserNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user := &auth.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     strings.TrimSpace(in.LastName),
		AuthProvider: auth.ProviderEmail,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			return nil, auth.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	code, err := s.otps.Issue(ctx, email, otp.ChannelEmail, otp.PurposeVerification)
	if err != nil {
		return nil, err
	}
	if err := s.mailer.SendOTP(ctx, email, code, true); err != nil {
		s.logger.ErrorContext(ctx, "failed to send verification email",
			logger.UserID(user.ID),
			logger.Error(err),
			logger.Component("session"),
		)
		return nil, err
	}

	return user, nil
}

// SendEmailOTP issues a login code and emails it. The response does not
// reveal whether an account exists.
func (s *Service) SendEmailOTP(ctx context.Context, email string) error {
	email = sanitizer.NormalizeEmail(email)
	if err := validator.Apply(validator.ValidEmail("email", email)); err != nil {
		return err
	}

	code, err := s.otps.Issue(ctx, email, otp.ChannelEmail, otp.PurposeLogin)
	if err != nil {
		return err
	}
	if err := s.mailer.SendOTP(ctx, email, code, false); err != nil {
		s.logger.ErrorContext(ctx, "failed to send otp email",
			logger.Identifier(email),
			logger.Error(err),
			logger.Component("session"),
		)
		return err
	}
	return nil
}

// SendMobileOTP issues a login code and texts it. The code is returned so
// development builds can echo it; callers must not expose it otherwise.
func (s *Service) SendMobileOTP(ctx context.Context, mobile string) (string, error) {
	if err := validator.Apply(validator.ValidMobile("mobile", mobile)); err != nil {
		return "", err
	}
	mobile = sanitizer.NormalizeMobile(mobile)

	code, err := s.otps.Issue(ctx, mobile, otp.ChannelMobile, otp.PurposeLogin)
	if err != nil {
		return "", err
	}
	if err := s.sms.SendSMS(ctx, mobile, sms.OTPMessage(code, s.otps.Config().TTL)); err != nil {
		s.logger.ErrorContext(ctx, "failed to send otp sms",
			logger.Identifier(mobile),
			logger.Error(err),
			logger.Component("session"),
		)
		return "", err
	}
	return code, nil
}

// Refresh exchanges a live refresh token for a new access token. The
// refresh token itself stays valid until it expires or is revoked.
// A well-formed token without a stored record fails with auth.ErrTokenRevoked.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if err := validator.Apply(
		validator.RequiredString("refreshToken", refreshToken, "Refresh token is required"),
	); err != nil {
		return "", err
	}

	claims, err := s.tokens.VerifyRefresh(ctx, refreshToken)
	if err != nil {
		return "", err
	}

	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return "", err
	}
	return s.tokens.IssueAccessToken(user)
}

// Logout revokes one refresh token. Unknown or empty tokens succeed.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	return s.tokens.Revoke(ctx, strings.TrimSpace(refreshToken))
}

// LogoutAll revokes every refresh token of userID.
func (s *Service) LogoutAll(ctx context.Context, userID string) error {
	if userID == "" {
		return auth.ErrUnauthorized
	}
	return s.tokens.RevokeAll(ctx, userID)
}

// Profile returns the account of userID.
func (s *Service) Profile(ctx context.Context, userID string) (*auth.User, error) {
	if userID == "" {
		return nil, auth.ErrUnauthorized
	}
	return s.users.GetUserByID(ctx, userID)
}

// Wait blocks until background work (welcome emails) has finished.
func (s *Service) Wait() {
	s.wg.Wait()
}

// welcome sends the welcome email in the background. Failures are logged;
// they never affect the sign-in that triggered them.
func (s *Service) welcome(userID, email, firstName string) {
	if s.mailer == nil {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("welcome email panicked",
					logger.UserID(userID),
					slog.Any("panic", r),
					logger.Component("session"),
				)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), s.asyncTimeout)
		defer cancel()

		if err := s.mailer.SendWelcome(ctx, email, firstName); err != nil {
			s.logger.Error("failed to send welcome email",
				logger.UserID(userID),
				logger.Error(err),
				logger.Component("session"),
			)
		}
	}()
}
