package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Source kinds.
const (
	SourceEmbed    = "embed"
	SourceFS       = "fs"
	SourcePostgres = "postgres"
)

type Config struct {
	Source            string        `env:"LOCALES_SOURCE" envDefault:"embed"`
	LocalesDir        string        `env:"LOCALES_DIR"`
	Manifest          string        `env:"LOCALES_MANIFEST" envDefault:"manifest.toml"`
	DatabaseURL       string        `env:"DATABASE_URL"`
	MigrationsPath    string        `env:"MIGRATIONS_PATH" envDefault:"migrations"`
	HTTPAddr          string        `env:"HTTP_ADDR" envDefault:":8080"`
	LoaderConcurrency int           `env:"LOADER_CONCURRENCY" envDefault:"8"`
	ResolverCacheSize int           `env:"RESOLVER_CACHE_SIZE" envDefault:"256"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	// .env is optional when variables come from the environment (Docker, CI).
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate applies the cross-field rules on a loaded configuration.
func (c *Config) validate() error {
	switch c.Source {
	case SourceEmbed:
	case SourceFS:
		if strings.TrimSpace(c.LocalesDir) == "" {
			return fmt.Errorf("config: LOCALES_DIR is required when LOCALES_SOURCE=fs")
		}
	case SourcePostgres:
		if err := c.validateDatabaseURL(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("config: LOCALES_SOURCE must be one of embed, fs, postgres (got %q)", c.Source)
	}

	if strings.TrimSpace(c.Manifest) == "" {
		return fmt.Errorf("config: LOCALES_MANIFEST cannot be empty")
	}
	if c.LoaderConcurrency < 1 {
		return fmt.Errorf("config: LOADER_CONCURRENCY must be positive (got %d)", c.LoaderConcurrency)
	}
	if c.ResolverCacheSize < 1 {
		return fmt.Errorf("config: RESOLVER_CACHE_SIZE must be positive (got %d)", c.ResolverCacheSize)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("config: SHUTDOWN_TIMEOUT must be positive")
	}

	return nil
}

// RequireDatabase checks DATABASE_URL for commands that talk to Postgres
// regardless of the configured source.
func (c *Config) RequireDatabase() error {
	return c.validateDatabaseURL()
}

func (c *Config) validateDatabaseURL() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("config: DATABASE_URL is required")
	}
	parsed, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("config: invalid DATABASE_URL (%q): %w", c.DatabaseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: invalid DATABASE_URL (%q): missing scheme or host", c.DatabaseURL)
	}
	return nil
}
