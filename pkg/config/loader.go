package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// cache holds one parsed copy per configuration type, keyed by reflect.Type.
	cache sync.Map

	dotenvOnce sync.Once
)

// LoadEnv loads the given .env files into the process environment.
// Variables that are already set are not overridden.
// With no arguments it loads ".env" from the working directory and
// silently ignores a missing file.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		_ = godotenv.Load()
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// Load parses environment variables into v using `env` struct tags.
// Each configuration type is parsed once; later calls for the same type
// are served from the cache.
//
// Example:
//
//	type TokenConfig struct {
//		AccessSecret string        `env:"JWT_SECRET,required"`
//		AccessTTL    time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"15m"`
//	}
//
//	var cfg TokenConfig
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	dotenvOnce.Do(func() { _ = LoadEnv() })

	key := reflect.TypeFor[T]()
	if cached, ok := cache.Load(key); ok {
		*v = cached.(T)
		return nil
	}

	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	// A concurrent loader may have won the race; keep the first stored copy.
	actual, _ := cache.LoadOrStore(key, parsed)
	*v = actual.(T)
	return nil
}

// MustLoad works like Load but panics if parsing fails.
// Use it in main for configuration the process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// Reset drops every cached configuration. Intended for tests that change
// the environment between loads.
func Reset() {
	cache.Clear()
}
