// Package config provides configuration loading for recall.
//
// Configuration is read from a YAML file with environment variable
// overrides and validated before use. See LoadWithFile for precedence
// and security rules.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fyrsmithlabs/recall/internal/logging"
)

// CollectionFileName is the collection file name inside the data directory.
const CollectionFileName = "collection.json"

// Config holds the complete recall configuration.
type Config struct {
	Data      DataConfig      `koanf:"data"`
	Scheduler SchedulerConfig `koanf:"scheduler"`
	Session   SessionConfig   `koanf:"session"`
	UI        UIConfig        `koanf:"ui"`
	Logging   logging.Config  `koanf:"logging"`
}

// DataConfig holds collection storage configuration.
type DataConfig struct {
	Dir        string `koanf:"dir"`         // directory holding the collection file
	HistoryCap int    `koanf:"history_cap"` // session records retained (default: 100)
	Backups    bool   `koanf:"backups"`     // rotate previous collection to .bak on save
}

// SchedulerConfig holds scheduling parameters.
type SchedulerConfig struct {
	FailureRetryDelay Duration `koanf:"failure_retry_delay"` // next attempt after a failed review
	MaxIntervalDays   int      `koanf:"max_interval_days"`   // interval growth cap
}

// SessionConfig holds study session defaults.
type SessionConfig struct {
	DefaultLimit int  `koanf:"default_limit"` // cards per session, 0 means unlimited
	Shuffle      bool `koanf:"shuffle"`       // shuffle the study set by default
}

// UIConfig holds terminal rendering configuration.
type UIConfig struct {
	Color bool `koanf:"color"`
}

// CollectionPath returns the collection file path under the data directory.
func (c *Config) CollectionPath() string {
	return filepath.Join(c.Data.Dir, CollectionFileName)
}

// NewDefaultConfig returns config with defaults for a fresh install.
// Fails only when the home directory cannot be resolved.
func NewDefaultConfig() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	return &Config{
		Data: DataConfig{
			Dir:        filepath.Join(home, ".local", "share", "recall"),
			HistoryCap: 100,
			Backups:    true,
		},
		Scheduler: SchedulerConfig{
			FailureRetryDelay: Duration(10 * time.Minute),
			MaxIntervalDays:   36500,
		},
		Session: SessionConfig{
			DefaultLimit: 20,
			Shuffle:      true,
		},
		UI: UIConfig{
			Color: true,
		},
		Logging: *logging.NewDefaultConfig(),
	}, nil
}

// Validate validates the configuration.
//
// Returns an error if:
//   - Data directory is empty or history cap is below 1
//   - Scheduler retry delay or max interval is not positive
//   - Session default limit is negative
//   - Logging configuration is invalid
func (c *Config) Validate() error {
	if c.Data.Dir == "" {
		return errors.New("data directory cannot be empty")
	}
	if c.Data.HistoryCap < 1 {
		return fmt.Errorf("history cap must be >= 1, got %d", c.Data.HistoryCap)
	}

	if c.Scheduler.FailureRetryDelay.Duration() <= 0 {
		return errors.New("failure retry delay must be positive")
	}
	if c.Scheduler.MaxIntervalDays < 1 {
		return fmt.Errorf("max interval must be >= 1 day, got %d", c.Scheduler.MaxIntervalDays)
	}

	if c.Session.DefaultLimit < 0 {
		return fmt.Errorf("session default limit cannot be negative, got %d", c.Session.DefaultLimit)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}

	return nil
}
