package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is loaded from the environment; cmd/server loads .env first so a
// local file can supply these values.
type Config struct {
	Port        string        `envconfig:"PORT" default:"3000"`
	DatabaseDSN string        `envconfig:"DATABASE_DSN" default:"database.sqlite"`
	JWTSecret   string        `envconfig:"JWT_SECRET" default:"posto-system-secret-key"`
	TokenTTL    time.Duration `envconfig:"TOKEN_TTL" default:"24h"`
	LogLevel    string        `envconfig:"LOG_LEVEL" default:"info"`
	Env         string        `envconfig:"APP_ENV" default:"development"`
}

func Load() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
