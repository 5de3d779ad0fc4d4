package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/traveltinder/backend/handler"
	"github.com/traveltinder/backend/modules/account"
	"github.com/traveltinder/backend/pkg/auth"
	"github.com/traveltinder/backend/pkg/clientip"
	cfgloader "github.com/traveltinder/backend/pkg/config"
	"github.com/traveltinder/backend/pkg/email"
	"github.com/traveltinder/backend/pkg/environment"
	"github.com/traveltinder/backend/pkg/httpserver"
	"github.com/traveltinder/backend/pkg/logger"
	"github.com/traveltinder/backend/pkg/mongo"
	"github.com/traveltinder/backend/pkg/otp"
	"github.com/traveltinder/backend/pkg/ratelimiter"
	"github.com/traveltinder/backend/pkg/redis"
	"github.com/traveltinder/backend/pkg/requestid"
	"github.com/traveltinder/backend/pkg/sms"
	mongostore "github.com/traveltinder/backend/stores/mongo"
	"github.com/traveltinder/backend/svc/session"
)

func main() {
	var cfg config
	cfgloader.MustLoad(&cfg.App)
	cfgloader.MustLoad(&cfg.Logger)

	env := cfg.App.Environment()
	log := logger.New(append(
		[]logger.Option{
			logger.WithEnvironment(env, cfg.App.Service),
			logger.WithContextExtractors(requestid.LoggerExtractor()),
		},
		cfg.Logger.Options()...,
	)...)
	logger.SetAsDefault(log)

	if err := run(context.Background(), &cfg, env, log); err != nil {
		log.Error("server stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config, env environment.Environment, log *slog.Logger) error {
	if err := errors.Join(
		cfgloader.Load(&cfg.HTTP),
		cfgloader.Load(&cfg.Mongo),
		cfgloader.Load(&cfg.Redis),
		cfgloader.Load(&cfg.Tokens),
		cfgloader.Load(&cfg.OTP),
		cfgloader.Load(&cfg.RateLimit),
		cfgloader.Load(&cfg.Google),
		cfgloader.Load(&cfg.Apple),
		cfgloader.Load(&cfg.Email),
	); err != nil {
		return err
	}

	// Storage
	client, err := mongo.New(ctx, cfg.Mongo)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error("mongo disconnect", logger.Error(err))
		}
	}()
	store := mongostore.New(client.Database(cfg.Mongo.Database))
	if err := store.EnsureIndexes(ctx); err != nil {
		return err
	}

	checks := []httpserver.Check{{Name: "mongo", Fn: mongo.Healthcheck(client)}}

	// Rate limiting: Redis when configured so limits hold across replicas.
	var limitStore ratelimiter.Store
	if cfg.Redis.Enabled() {
		rdb, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer rdb.Close()
		limitStore = ratelimiter.NewRedisStore(rdb, "ratelimit:otp")
		checks = append(checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(rdb)})
	} else {
		mem := ratelimiter.NewMemoryStore()
		defer mem.Close()
		limitStore = mem
	}
	limiter, err := ratelimiter.NewBucket(limitStore, cfg.RateLimit)
	if err != nil {
		return err
	}

	// Messaging
	sender, err := email.New(cfg.Email)
	if err != nil {
		return err
	}
	mailer := email.NewMailer(sender, cfg.OTP.TTL)

	// Core services
	tokens, err := auth.NewTokenIssuer(store.RefreshTokens, cfg.Tokens,
		auth.WithTokenLogger(log.With(logger.Component("tokens"))))
	if err != nil {
		return err
	}
	otps, err := otp.NewIssuer(store.OTPs, cfg.OTP,
		otp.WithLogger(log.With(logger.Component("otp"))))
	if err != nil {
		return err
	}
	google, err := auth.NewGoogleVerifier(ctx, cfg.Google)
	if err != nil {
		return err
	}
	apple := auth.NewAppleVerifier(cfg.Apple)

	sessions := session.NewService(session.Deps{
		Users:    store.Users,
		Resolver: auth.NewResolver(store.Users, auth.WithResolverLogger(log.With(logger.Component("resolver")))),
		Tokens:   tokens,
		OTP:      otps,
		Mailer:   mailer,
		SMS:      sms.NewLogSender(log),
		Google:   google,
		Apple:    apple,
	},
		session.WithLogger(log.With(logger.Component("session"))),
		session.WithBcryptCost(cfg.App.BcryptCost),
	)
	defer sessions.Wait()

	// HTTP
	errorHandler := handler.NewErrorHandler(log, account.MapError)
	authSvc := account.NewAuthService(sessions, tokens, errorHandler,
		account.WithOTPLimiter(limiter, ratelimiter.ByIP()),
		account.WithDevOTP(env.IsDevelopment()),
	)

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		clientip.Middleware(cfg.App.TrustProxy),
		environment.Middleware(env),
		middleware.Recoverer,
	)
	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(log, checks...))
	r.Mount("/", account.Router(account.RouterOptions{Auth: authSvc}))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = handler.Fail(handler.ErrNotFound).Render(w, r)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_ = handler.Fail(handler.ErrMethodNotAllowed).Render(w, r)
	})

	log.Info("starting server",
		slog.String("addr", cfg.HTTP.Addr),
		slog.Bool("redis", cfg.Redis.Enabled()),
		slog.Bool("google", cfg.Google.Enabled()),
		slog.Bool("apple", cfg.Apple.Enabled()),
	)
	return httpserver.New(cfg.HTTP, httpserver.WithLogger(log)).Run(ctx, r)
}
