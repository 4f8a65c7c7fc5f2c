// Package config assembles the API server configuration from environment
// variables and the optional listing configuration file.
package config

import (
	"fmt"
	"time"

	envconfig "book-journal/pkg/config"
)

const (
	// EnvProduction is the ENV value of a production deployment.
	EnvProduction = "prod"

	defaultFrontendOrigin = "http://localhost:3000"
)

// ServerConfig holds the settings of the HTTP server process.
type ServerConfig struct {
	// Env is "prod" in production; anything else is treated as development.
	Env string

	// Addr is the listen address. Default: ":3001" (PORT overrides the port).
	Addr string

	// AllowedOrigins are the browser origins accepted by CORS. In production
	// this is FRONTEND_URL, otherwise http://localhost:3000, unless
	// CORS_ALLOWED_ORIGINS lists them explicitly.
	AllowedOrigins []string

	// RequestTimeout bounds every request. Zero disables the timeout.
	RequestTimeout time.Duration

	// ShutdownTimeout is how long in-flight requests get after SIGTERM.
	ShutdownTimeout time.Duration

	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64

	// ListingConfigPath points at the optional YAML listing file.
	ListingConfigPath string

	// RateLimitRPS is the sustained requests per second allowed per client.
	// Zero disables rate limiting.
	RateLimitRPS int

	// RateLimitBurst is the token bucket size. Zero means RateLimitRPS.
	RateLimitBurst int

	// Version is reported by /health.
	Version string
}

// LoadServerConfig reads the server configuration from the environment.
func LoadServerConfig() (*ServerConfig, error) {
	env := envconfig.GetEnvString("ENV", "dev")

	cfg := &ServerConfig{
		Env:               env,
		Addr:              ":" + envconfig.GetEnvString("PORT", "3001"),
		AllowedOrigins:    envconfig.GetEnvStringList("CORS_ALLOWED_ORIGINS", defaultOrigins(env)),
		RequestTimeout:    envconfig.GetEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout:   envconfig.GetEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		MaxBodyBytes:      int64(envconfig.GetEnvInt("MAX_BODY_BYTES", 1<<20)),
		ListingConfigPath: envconfig.GetEnvString("LISTING_CONFIG_PATH", ""),
		RateLimitRPS:      envconfig.GetEnvInt("RATE_LIMIT_RPS", 0),
		RateLimitBurst:    envconfig.GetEnvInt("RATE_LIMIT_BURST", 0),
		Version:           envconfig.GetEnvString("VERSION", "dev"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server configuration: %w", err)
	}
	return cfg, nil
}

// IsProduction reports whether the server runs with ENV=prod.
func (c *ServerConfig) IsProduction() bool {
	return c.Env == EnvProduction
}

// Validate checks configuration correctness.
func (c *ServerConfig) Validate() error {
	if len(c.AllowedOrigins) == 0 {
		return fmt.Errorf("FRONTEND_URL or CORS_ALLOWED_ORIGINS is required when ENV=%s", EnvProduction)
	}
	for _, origin := range c.AllowedOrigins {
		if err := envconfig.ValidateOrigin(origin); err != nil {
			return err
		}
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must not be negative")
	}
	if err := envconfig.ValidatePositiveDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive")
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must not be negative")
	}
	return nil
}

func defaultOrigins(env string) []string {
	if env != EnvProduction {
		return []string{defaultFrontendOrigin}
	}
	if frontend := envconfig.GetEnvString("FRONTEND_URL", ""); frontend != "" {
		return []string{frontend}
	}
	return nil
}
