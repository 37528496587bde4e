package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Config holds the bucket service configuration. Variables are read from
// the plain environment names in the envconfig tags (PORT, STORE_DRIVER, ...).
type Config struct {
	// HTTP
	Port int `envconfig:"PORT" default:"3000"`

	// Store selection: memory, postgres, sqlite, or mongo.
	StoreDriver string `envconfig:"STORE_DRIVER" default:"memory"`
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:""`
	MongoURI    string `envconfig:"MONGO_URI" default:""`

	// Static assets served for any route the API does not claim.
	StaticDir string `envconfig:"STATIC_DIR" default:"public"`

	// Identity. With AuthEnabled false every request resolves to a fixed
	// development user and the GitHub routes are not registered.
	AuthEnabled        bool   `envconfig:"AUTH_ENABLED" default:"true"`
	SessionSecret      string `envconfig:"SESSION_SECRET" default:""`
	SessionTTLHours    int    `envconfig:"SESSION_TTL_HOURS" default:"168"`
	GitHubClientID     string `envconfig:"GITHUB_CLIENT_ID" default:""`
	GitHubClientSecret string `envconfig:"GITHUB_CLIENT_SECRET" default:""`
	CallbackURL        string `envconfig:"CALLBACK_URL" default:""`

	// Health probing
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"2"`
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"10"`
}

// Validate checks driver selection and that the chosen driver and auth
// mode have the settings they require.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case "memory":
	case "postgres":
		if c.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required when STORE_DRIVER=postgres")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required when STORE_DRIVER=sqlite")
		}
	case "mongo":
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required when STORE_DRIVER=mongo")
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER: %s", c.StoreDriver)
	}

	if c.AuthEnabled {
		if c.SessionSecret == "" {
			return fmt.Errorf("SESSION_SECRET is required when AUTH_ENABLED=true")
		}
		if c.GitHubClientID == "" || c.GitHubClientSecret == "" {
			return fmt.Errorf("GITHUB_CLIENT_ID and GITHUB_CLIENT_SECRET are required when AUTH_ENABLED=true")
		}
		if c.CallbackURL == "" {
			return fmt.Errorf("CALLBACK_URL is required when AUTH_ENABLED=true")
		}
	}
	return nil
}

// New parses configuration from the environment.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Info().
		Int("port", cfg.Port).
		Str("store_driver", cfg.StoreDriver).
		Bool("auth_enabled", cfg.AuthEnabled).
		Str("static_dir", cfg.StaticDir).
		Msg("Configuration loaded")

	return &cfg, nil
}

// GetHTTPAddr returns the HTTP listen address.
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
