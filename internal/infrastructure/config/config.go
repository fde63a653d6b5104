package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all shim configuration.
type Config struct {
	Shim    ShimConfig
	Store   StoreConfig
	Logging LogConfig
}

// ShimConfig holds translation settings.
type ShimConfig struct {
	Org      string   `envconfig:"POSIXSHIM_ORG" default:""`
	App      string   `envconfig:"POSIXSHIM_APP" default:""`
	UTF8Mode bool     `envconfig:"POSIXSHIM_UTF8_MODE" default:"true"`
	CodePage uint32   `envconfig:"POSIXSHIM_CODE_PAGE" default:"0"`
	HomeVars []string `envconfig:"POSIXSHIM_HOME_VARS" default:"USERPROFILE,HOME"`
}

// StoreConfig holds configuration store locations. Empty paths select the
// platform default.
type StoreConfig struct {
	UserPath    string `envconfig:"POSIXSHIM_USER_STORE" default:""`
	MachinePath string `envconfig:"POSIXSHIM_MACHINE_STORE" default:""`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"POSIXSHIM_LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"POSIXSHIM_LOG_DEV" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Shim: ShimConfig{
			UTF8Mode: true,
			HomeVars: []string{"USERPROFILE", "HOME"},
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}
