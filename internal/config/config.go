package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime settings read from FAMGROW_* environment variables.
// Everything has a sensible default; the binary runs with no env at all.
type Config struct {
	// DBPath overrides the state database location. Empty means the default
	// under the user's home directory.
	DBPath string `envconfig:"DB_PATH"`

	// LogLevel is a logrus level name: debug, info, warn, error.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// PollInterval is how often the watcher checks for a day or week
	// boundary having passed.
	PollInterval time.Duration `envconfig:"POLL_INTERVAL" default:"60s"`

	// BackupDir is where automatic pre-import backups are written. Empty
	// means the current working directory.
	BackupDir string `envconfig:"BACKUP_DIR"`
}

// Load reads the environment into a Config and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("famgrow", &cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the rest of the program cannot work with.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid FAMGROW_LOG_LEVEL %q", c.LogLevel)
	}
	if c.PollInterval < time.Second {
		return fmt.Errorf("FAMGROW_POLL_INTERVAL must be at least 1s, got %s", c.PollInterval)
	}
	return nil
}
