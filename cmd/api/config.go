package main

import (
	"github.com/traveltinder/backend/pkg/auth"
	"github.com/traveltinder/backend/pkg/email"
	"github.com/traveltinder/backend/pkg/environment"
	"github.com/traveltinder/backend/pkg/httpserver"
	"github.com/traveltinder/backend/pkg/logger"
	"github.com/traveltinder/backend/pkg/mongo"
	"github.com/traveltinder/backend/pkg/otp"
	"github.com/traveltinder/backend/pkg/ratelimiter"
	"github.com/traveltinder/backend/pkg/redis"
)

type appConfig struct {
	Env        string `env:"APP_ENV" envDefault:"development"`
	Service    string `env:"SERVICE_NAME" envDefault:"traveltinder-api"`
	TrustProxy bool   `env:"TRUST_PROXY" envDefault:"false"`
	BcryptCost int    `env:"BCRYPT_COST" envDefault:"10"`
}

func (c appConfig) Environment() environment.Environment {
	return environment.Parse(c.Env)
}

// config groups every component configuration loaded at startup.
type config struct {
	App       appConfig
	Logger    logger.Config
	HTTP      httpserver.Config
	Mongo     mongo.Config
	Redis     redis.Config
	Tokens    auth.TokenConfig
	OTP       otp.Config
	RateLimit ratelimiter.Config
	Google    auth.GoogleConfig
	Apple     auth.AppleConfig
	Email     email.Config
}
