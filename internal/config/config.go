package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config is the server configuration, read from the environment.
type Config struct {
	Port               string        `koanf:"port" validate:"required,numeric"`
	AppEnv             string        `koanf:"app_env" validate:"oneof=dev test prod"`
	DatabaseURL        string        `koanf:"database_url" validate:"required"`
	JWTSecret          string        `koanf:"jwt_secret" validate:"required,min=16"`
	UniqueCheckTimeout time.Duration `koanf:"unique_check_timeout" validate:"gt=0"`
}

// ClientConfig is what the CLI needs to reach a running API.
type ClientConfig struct {
	APIURL   string        `koanf:"hrms_api_url" validate:"omitempty,url"`
	APIToken string        `koanf:"hrms_api_token"`
	Timeout  time.Duration `koanf:"unique_check_timeout" validate:"gt=0"`
}

// Defaults are applied before the environment.
func Defaults() map[string]any {
	return map[string]any{
		"port":                 "3000",
		"app_env":              "dev",
		"unique_check_timeout": "5s",
		"hrms_api_url":         "http://localhost:3000/api",
	}
}

// Load reads .env (if present), then defaults < environment.
func Load() (*Config, error) {
	k, err := load()
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// LoadClient is Load for the CLI.
func LoadClient() (*ClientConfig, error) {
	k, err := load()
	if err != nil {
		return nil, err
	}
	var cfg ClientConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func load() (*koanf.Koanf, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	for key, value := range Defaults() {
		if err := k.Set(key, value); err != nil {
			return nil, err
		}
	}

	// Override with environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}
	return k, nil
}

// envTransform converts environment variable names to config keys
// Example: DATABASE_URL -> database_url
func envTransform(s string) string {
	return strings.ToLower(s)
}

// IsDev reports whether the server runs in development mode.
func (c *Config) IsDev() bool { return c.AppEnv == "dev" }
