package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	clearEnv()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "./data/temples.db", cfg.DatabasePath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, DefaultTemple, cfg.DefaultTemple)
	assert.Equal(t, DefaultLatitude, cfg.DefaultLatitude)
	assert.Equal(t, DefaultLongitude, cfg.DefaultLongitude)
	assert.Empty(t, cfg.SpecialFestivalsPath)
	assert.Equal(t, 1900, cfg.MinYear)
	assert.Equal(t, 2100, cfg.MaxYear)
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv()
	defer clearEnv()

	env := map[string]string{
		"PORT":                   "3000",
		"ENV":                    "production",
		"DATABASE_PATH":          "/data/test.db",
		"API_KEY":                "secret-key-123",
		"LOG_LEVEL":              "debug",
		"LOG_FORMAT":             "json",
		"CORS_ORIGINS":           "https://a.example, https://b.example,",
		"DEFAULT_TEMPLE":         "Arulmigu Kapaleeswarar Temple",
		"DEFAULT_LATITUDE":       "13.0338",
		"DEFAULT_LONGITUDE":      "80.2696",
		"SPECIAL_FESTIVALS_PATH": "/etc/temple/festivals.yaml",
		"MIN_YEAR":               "2000",
		"MAX_YEAR":               "2050",
	}
	for k, v := range env {
		os.Setenv(k, v)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, EnvProduction, cfg.Env)
	assert.Equal(t, "/data/test.db", cfg.DatabasePath)
	assert.Equal(t, "secret-key-123", cfg.APIKey)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, "Arulmigu Kapaleeswarar Temple", cfg.DefaultTemple)
	assert.Equal(t, 13.0338, cfg.DefaultLocation().Latitude)
	assert.Equal(t, 80.2696, cfg.DefaultLocation().Longitude)
	assert.Equal(t, "/etc/temple/festivals.yaml", cfg.SpecialFestivalsPath)
	assert.Equal(t, 2000, cfg.MinYear)
	assert.Equal(t, 2050, cfg.MaxYear)
}

func TestLoad_BadNumbersFallBack(t *testing.T) {
	clearEnv()
	defer clearEnv()

	os.Setenv("PORT", "eighty")
	os.Setenv("DEFAULT_LATITUDE", "north")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, DefaultLatitude, cfg.DefaultLatitude)
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv()
	defer clearEnv()

	os.Setenv("DEFAULT_LATITUDE", "95")

	_, err := Load()
	assert.Error(t, err)
}

func validConfig() Config {
	return Config{
		Port:             8080,
		Env:              EnvDevelopment,
		DatabasePath:     "./data/test.db",
		LogLevel:         "info",
		LogFormat:        "text",
		DefaultTemple:    DefaultTemple,
		DefaultLatitude:  DefaultLatitude,
		DefaultLongitude: DefaultLongitude,
		MinYear:          1900,
		MaxYear:          2100,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid development config", func(c *Config) {}, false},
		{"valid production config", func(c *Config) { c.Env = EnvProduction; c.APIKey = "required-in-prod" }, false},
		{"production requires API key", func(c *Config) { c.Env = EnvProduction }, true},
		{"invalid port - too low", func(c *Config) { c.Port = 0 }, true},
		{"invalid port - too high", func(c *Config) { c.Port = 70000 }, true},
		{"invalid environment", func(c *Config) { c.Env = "invalid" }, true},
		{"invalid log level", func(c *Config) { c.LogLevel = "verbose" }, true},
		{"invalid log format", func(c *Config) { c.LogFormat = "xml" }, true},
		{"empty database path", func(c *Config) { c.DatabasePath = "" }, true},
		{"empty default temple", func(c *Config) { c.DefaultTemple = "" }, true},
		{"latitude out of range", func(c *Config) { c.DefaultLatitude = -91 }, true},
		{"longitude out of range", func(c *Config) { c.DefaultLongitude = 181 }, true},
		{"year span inverted", func(c *Config) { c.MinYear, c.MaxYear = 2100, 1900 }, true},
		{"year span below one", func(c *Config) { c.MinYear = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Validate_JoinsErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Port = 0
	cfg.LogLevel = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}

func TestConfig_IsDevelopment(t *testing.T) {
	cfg := &Config{Env: EnvDevelopment}
	assert.True(t, cfg.IsDevelopment())

	cfg.Env = EnvProduction
	assert.False(t, cfg.IsDevelopment())
}

func TestConfig_IsProduction(t *testing.T) {
	cfg := &Config{Env: EnvProduction}
	assert.True(t, cfg.IsProduction())

	cfg.Env = EnvDevelopment
	assert.False(t, cfg.IsProduction())
}

// clearEnv removes all config-related environment variables
func clearEnv() {
	vars := []string{
		"PORT", "ENV", "DATABASE_PATH", "API_KEY",
		"LOG_LEVEL", "LOG_FORMAT", "CORS_ORIGINS",
		"DEFAULT_TEMPLE", "DEFAULT_LATITUDE", "DEFAULT_LONGITUDE",
		"SPECIAL_FESTIVALS_PATH", "MIN_YEAR", "MAX_YEAR",
	}
	for _, v := range vars {
		os.Unsetenv(v)
	}
}
