package otp

import (
	"fmt"
	"time"
)

// Config controls code generation and verification.
type Config struct {
	TTL         time.Duration `env:"OTP_TTL" envDefault:"10m"`
	MaxAttempts int           `env:"OTP_MAX_ATTEMPTS" envDefault:"3"`
	Length      int           `env:"OTP_LENGTH" envDefault:"6"`
}

// DefaultConfig returns the production defaults: 6 digits, 10 minutes,
// 3 attempts.
func DefaultConfig() Config {
	return Config{TTL: 10 * time.Minute, MaxAttempts: 3, Length: 6}
}

// Validate checks the bounds of every field.
func (c Config) Validate() error {
	if c.TTL <= 0 {
		return fmt.Errorf("%w: ttl must be positive, got %v", ErrInvalidConfig, c.TTL)
	}
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("%w: max attempts must be positive, got %d", ErrInvalidConfig, c.MaxAttempts)
	}
	if c.Length < 4 || c.Length > 10 {
		return fmt.Errorf("%w: length must be between 4 and 10, got %d", ErrInvalidConfig, c.Length)
	}
	return nil
}
