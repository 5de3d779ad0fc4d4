// Package config loads typed application configuration from environment
// variables.
//
// It wraps github.com/joho/godotenv (optional .env files) and
// github.com/caarlos0/env/v11 (struct tag parsing). Each configuration type is
// parsed once and cached for the lifetime of the process, so every component
// can declare its own Config struct and the entry point loads them all up
// front:
//
//	var tokens auth.TokenConfig
//	config.MustLoad(&tokens)
//
// Parsed values are handed to constructors explicitly. Business logic never
// reads the environment itself.
//
// Tests that mutate the environment should call Reset before loading again.
package config
