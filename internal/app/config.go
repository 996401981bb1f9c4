package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"quip/internal/domain"
)

// Store backends.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home              string            `env:"QUIP_HOME"`                                   // state directory, default $HOME/.quip
	Store             string            `env:"QUIP_STORE" envDefault:"file"`                // file | sqlite | redis
	RedisAddr         string            `env:"QUIP_REDIS_ADDR" envDefault:"127.0.0.1:6379"` // redis backend address
	SessionKey        domain.SessionKey `env:"QUIP_SESSION_KEY"`                            // default domain.DefaultSessionKey
	SessionPassphrase string            `env:"QUIP_SESSION_PASSPHRASE"`                     // seals the stored record when set
	IdentityURL       string            `env:"QUIP_IDENTITY_URL"`                           // remote identity service; empty uses the mock
	MockLatency       time.Duration     `env:"QUIP_MOCK_LATENCY" envDefault:"1s"`
	OpTimeout         time.Duration     `env:"QUIP_OP_TIMEOUT" envDefault:"0s"`
	LogLevel          string            `env:"QUIP_LOG_LEVEL" envDefault:"warn"`
	LogMode           string            `env:"QUIP_LOG_MODE" envDefault:"dev"`
}

// LoadConfig parses Config from the process environment.
func LoadConfig() (Config, error) {
	return parseConfig(env.Options{})
}

// LoadConfigFrom parses Config from vars instead of the process environment.
func LoadConfigFrom(vars map[string]string) (Config, error) {
	return parseConfig(env.Options{Environment: vars})
}

func parseConfig(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate fills derived defaults and rejects unusable settings.
func (c *Config) Validate() error {
	if c.Home == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		c.Home = filepath.Join(dir, ".quip")
	}
	c.Store = strings.ToLower(strings.TrimSpace(c.Store))
	switch c.Store {
	case StoreFile, StoreSQLite, StoreRedis:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store)
	}
	if c.SessionKey == "" {
		c.SessionKey = domain.DefaultSessionKey
	}
	if c.MockLatency < 0 || c.OpTimeout < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	return nil
}
