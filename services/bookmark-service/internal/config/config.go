package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the runtime configuration for the bookmark service, parsed
// from environment variables.
type Config struct {
	ServiceName   string `env:"SERVICE_NAME" envDefault:"bookmark-service"`
	Environment   string `env:"APP_ENV"      envDefault:"development"`
	HTTPPort      int    `env:"HTTP_PORT"    envDefault:"8080"`
	AdvertiseAddr string `env:"ADVERTISE_ADDR" envDefault:"127.0.0.1"`

	MongoURI      string `env:"MONGO_URI"      envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"markvault"`

	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB"  envDefault:"0"`
	CacheTTL      time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	ConsulAddr string `env:"CONSUL_ADDR"`

	GoogleClientID string `env:"GOOGLE_CLIENT_ID"`
	MailEnabled    bool   `env:"MAIL_ENABLED" envDefault:"false"`

	Token TokenConfig `envPrefix:"TOKEN_"`
}

// TokenConfig holds JWT issuance settings.
type TokenConfig struct {
	Issuer                string        `env:"ISSUER" envDefault:"markvault"`
	AccessTokenSecret     string        `env:"ACCESS_SECRET"`
	RefreshTokenSecret    string        `env:"REFRESH_SECRET"`
	AccessTokenExpiresIn  time.Duration `env:"ACCESS_EXPIRES_IN"  envDefault:"15m"`
	RefreshTokenExpiresIn time.Duration `env:"REFRESH_EXPIRES_IN" envDefault:"720h"`
}

// Load parses the configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Token.AccessTokenSecret == "" {
		return fmt.Errorf("missing TOKEN_ACCESS_SECRET environment variable")
	}
	if c.Token.RefreshTokenSecret == "" {
		return fmt.Errorf("missing TOKEN_REFRESH_SECRET environment variable")
	}

	return nil
}
