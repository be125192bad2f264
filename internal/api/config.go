package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// BackoffPolicy selects how the wait between attempts grows.
type BackoffPolicy string

const (
	// BackoffLinear waits InitialWait * attempt.
	BackoffLinear BackoffPolicy = "linear"

	// BackoffExponential waits InitialWait * 2^(attempt-1).
	BackoffExponential BackoffPolicy = "exponential"
)

// Config holds the request client configuration.
type Config struct {
	// BaseURL is prefixed to every relative request path.
	BaseURL string `env:"INNERBALANCE_API_BASE_URL" envDefault:"http://127.0.0.1:8000/api"`

	// RootURL is the server root used by the liveness probe.
	RootURL string `env:"INNERBALANCE_API_URL" envDefault:"http://127.0.0.1:8000"`

	// Timeout bounds a single attempt.
	Timeout time.Duration `env:"INNERBALANCE_API_TIMEOUT" envDefault:"10s"`

	// HealthTimeout bounds the liveness probe.
	HealthTimeout time.Duration `env:"INNERBALANCE_HEALTH_TIMEOUT" envDefault:"3s"`

	Retry RetryConfig
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int           `env:"INNERBALANCE_RETRY_MAX_ATTEMPTS" envDefault:"3"`
	InitialWait time.Duration `env:"INNERBALANCE_RETRY_INITIAL_WAIT" envDefault:"1s"`
	Policy      BackoffPolicy `env:"INNERBALANCE_RETRY_POLICY" envDefault:"linear"`
}

// DefaultConfig returns a Config pointing at a local development server.
func DefaultConfig() Config {
	return Config{
		BaseURL:       "http://127.0.0.1:8000/api",
		RootURL:       "http://127.0.0.1:8000",
		Timeout:       10 * time.Second,
		HealthTimeout: 3 * time.Second,
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			Policy:      BackoffLinear,
		},
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the client cannot work with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("INNERBALANCE_API_BASE_URL must not be empty")
	}
	if strings.TrimSpace(c.RootURL) == "" {
		return fmt.Errorf("INNERBALANCE_API_URL must not be empty")
	}
	if c.Timeout <= 0 || c.HealthTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("INNERBALANCE_RETRY_MAX_ATTEMPTS must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	switch c.Retry.Policy {
	case BackoffLinear, BackoffExponential:
	default:
		return fmt.Errorf("unknown retry policy: %q", c.Retry.Policy)
	}
	return nil
}
