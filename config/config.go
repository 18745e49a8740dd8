package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Auth modes. Auth0 validates RS256 tokens against the tenant's JWKS;
// local validates HS256 tokens signed with JWT_SECRET_KEY and enables the
// dev token endpoint.
const (
	AuthModeAuth0 = "auth0"
	AuthModeLocal = "local"
)

type Config struct {
	Port string `envconfig:"PORT" default:"8080"`

	DatabaseDriver string `envconfig:"DB_DRIVER" default:"postgres"`
	DatabaseURL    string `envconfig:"DB_URL"`

	AuthMode      string `envconfig:"AUTH_MODE" default:"auth0"`
	Auth0Domain   string `envconfig:"AUTH0_DOMAIN"`
	Auth0Audience string `envconfig:"AUTH0_AUDIENCE"`
	JWTSecretKey  string `envconfig:"JWT_SECRET_KEY"`

	RedisAddr string `envconfig:"REDIS_ADDR"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`
	LogLevel    string   `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads configuration from the environment. godotenv runs before this
// in main, so a local .env file is honored.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("config: DB_URL is required")
	}
	switch cfg.DatabaseDriver {
	case "postgres", "sqlite":
	default:
		return Config{}, fmt.Errorf("config: unsupported DB_DRIVER %q", cfg.DatabaseDriver)
	}

	switch cfg.AuthMode {
	case AuthModeAuth0:
		if cfg.Auth0Domain == "" || cfg.Auth0Audience == "" {
			return Config{}, fmt.Errorf("config: AUTH0_DOMAIN and AUTH0_AUDIENCE are required in auth0 mode")
		}
	case AuthModeLocal:
		if cfg.JWTSecretKey == "" {
			return Config{}, fmt.Errorf("config: JWT_SECRET_KEY is required in local mode")
		}
	default:
		return Config{}, fmt.Errorf("config: unsupported AUTH_MODE %q", cfg.AuthMode)
	}

	return cfg, nil
}
