package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Credential backends understood by CredentialConfig.Backend.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

type Config struct {
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	API        APIConfig
	Shell      ShellConfig
	Credential CredentialConfig
	Redis      RedisConfig
}

// APIConfig points the request pipeline at the remote booking API.
type APIConfig struct {
	BaseURL string        `env:"API_BASE_URL, default=http://localhost:8080"`
	Timeout time.Duration `env:"API_TIMEOUT,  default=15s"`
}

// ShellConfig configures the local view shell.
type ShellConfig struct {
	Addr         string `env:"SHELL_ADDR,    default=127.0.0.1:3000"`
	RoutesFile   string `env:"ROUTES_FILE"`
	LoginPath    string `env:"LOGIN_PATH,    default=/login"`
	FallbackPath string `env:"FALLBACK_PATH, default=/dashboard"`
	// PhoneRegion is assumed for phone numbers typed without a country code.
	PhoneRegion  string `env:"PHONE_REGION,  default=US"`
}

type CredentialConfig struct {
	Backend string `env:"CREDENTIAL_BACKEND, default=file"`
	// File is the session file path; empty means the per-user runtime dir.
	File string `env:"SESSION_FILE"`
	// Key is an optional age X25519 identity (AGE-SECRET-KEY-1...) used to
	// encrypt the session file at rest.
	Key string `env:"SESSION_KEY"`
}

type RedisConfig struct {
	Addr    string        `env:"REDIS_ADDR,    default=localhost:6379"`
	DB      int           `env:"REDIS_DB,      default=0"`
	Session string        `env:"REDIS_SESSION, default=default"`
	TTL     time.Duration `env:"REDIS_TTL,     default=12h"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration from an arbitrary lookuper and validates it.
func LoadWith(l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects combinations the client cannot run with.
func (c *Config) Validate() error {
	switch c.Credential.Backend {
	case BackendFile, BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("config: unknown credential backend %q", c.Credential.Backend)
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("config: API_BASE_URL is required")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("config: API_TIMEOUT must be positive")
	}
	return nil
}
