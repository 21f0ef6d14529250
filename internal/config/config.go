// Package config handles application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/zapponejosh/temple-calendar/internal/calendar"
)

// Config holds all application configuration.
// Fields are populated from environment variables.
type Config struct {
	// Server settings
	Port        int      // HTTP port to listen on
	Env         string   // development, staging, production
	CORSOrigins []string // allowed origins, "*" for any

	// Database
	DatabasePath string // Path to SQLite file

	// Authentication
	APIKey string // API key for write endpoints

	// Logging
	LogLevel  string // debug, info, warn, error
	LogFormat string // json, text

	// Calendar defaults used when a request names no location
	DefaultTemple        string
	DefaultLatitude      float64
	DefaultLongitude     float64
	SpecialFestivalsPath string // optional YAML replacing the built-in list

	// Accepted calendar years, inclusive
	MinYear int
	MaxYear int
}

// Environment constants
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Defaults for the calendar location.
const (
	DefaultTemple    = "Sankarankovil Gomathi Ambal Temple"
	DefaultLatitude  = 9.1688
	DefaultLongitude = 77.4538
)

// Load reads configuration from environment variables.
// In development, it first loads from .env file if present.
func Load() (*Config, error) {
	// No-op in production where env vars are set directly
	_ = godotenv.Load()

	cfg := &Config{}

	// Server settings
	cfg.Port = getEnvInt("PORT", 8080)
	cfg.Env = getEnv("ENV", EnvDevelopment)
	cfg.CORSOrigins = getEnvList("CORS_ORIGINS", []string{"*"})

	// Database
	cfg.DatabasePath = getEnv("DATABASE_PATH", "./data/temples.db")

	// Authentication
	cfg.APIKey = getEnv("API_KEY", "")

	// Logging
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "text")

	// Calendar
	cfg.DefaultTemple = getEnv("DEFAULT_TEMPLE", DefaultTemple)
	cfg.DefaultLatitude = getEnvFloat("DEFAULT_LATITUDE", DefaultLatitude)
	cfg.DefaultLongitude = getEnvFloat("DEFAULT_LONGITUDE", DefaultLongitude)
	cfg.SpecialFestivalsPath = getEnv("SPECIAL_FESTIVALS_PATH", "")
	cfg.MinYear = getEnvInt("MIN_YEAR", 1900)
	cfg.MaxYear = getEnvInt("MAX_YEAR", 2100)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration is present and valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}

	switch c.Env {
	case EnvDevelopment, EnvStaging, EnvProduction:
	default:
		errs = append(errs, fmt.Errorf("ENV must be one of: development, staging, production; got %q", c.Env))
	}

	if c.DatabasePath == "" {
		errs = append(errs, errors.New("DATABASE_PATH is required"))
	}

	// API key is required in production
	if c.Env == EnvProduction && c.APIKey == "" {
		errs = append(errs, errors.New("API_KEY is required in production"))
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", c.LogLevel))
	}

	switch c.LogFormat {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be one of: json, text; got %q", c.LogFormat))
	}

	if c.DefaultTemple == "" {
		errs = append(errs, errors.New("DEFAULT_TEMPLE is required"))
	}
	if err := calendar.ValidateLocation(c.DefaultLocation()); err != nil {
		errs = append(errs, fmt.Errorf("DEFAULT_LATITUDE/DEFAULT_LONGITUDE: %w", err))
	}

	if c.MinYear < 1 || c.MaxYear < c.MinYear {
		errs = append(errs, fmt.Errorf("MIN_YEAR/MAX_YEAR must satisfy 1 <= min <= max, got %d..%d", c.MinYear, c.MaxYear))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// DefaultLocation is the configured default temple location.
func (c *Config) DefaultLocation() calendar.Location {
	return calendar.Location{Latitude: c.DefaultLatitude, Longitude: c.DefaultLongitude}
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// getEnv reads an environment variable with a default fallback.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an environment variable as an integer with a default fallback.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvFloat reads an environment variable as a float with a default fallback.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil && !math.IsNaN(f) {
			return f
		}
	}
	return defaultValue
}

// getEnvList reads a comma-separated environment variable.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
