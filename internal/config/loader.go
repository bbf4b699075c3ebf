package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	maxConfigFileSize = 1024 * 1024 // 1MB

	// envPrefix namespaces recall environment variables.
	envPrefix = "RECALL_"
)

// LoadWithFile loads configuration from a YAML file, then overrides with
// environment variables.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (RECALL_DATA_DIR, RECALL_SESSION_SHUFFLE, etc.)
//  2. YAML config file (~/.config/recall/config.yaml)
//  3. Hardcoded defaults
//
// The configPath parameter specifies the YAML file to load. If empty, the
// default path ~/.config/recall/config.yaml is used. A missing file is not
// an error; defaults apply.
//
// # Security Considerations
//
// File Permissions: the configuration file must have 0600 or 0400
// permissions. Files with weaker permissions (e.g. 0644 world-readable)
// are rejected.
//
// Path Validation: only configuration files in allowed directories can be
// loaded:
//   - ~/.config/recall/ (user's config directory)
//   - /etc/recall/ (system-wide config directory)
//
// Absolute paths outside these directories are rejected to prevent path
// traversal attacks.
//
// File Size Limit: configuration files larger than 1MB are rejected.
//
// # Environment Variable Mapping
//
// Environment variables carry the RECALL_ prefix, are uppercased, and map
// onto YAML field names:
//
//	RECALL_DATA_DIR                     -> data.dir
//	RECALL_SCHEDULER_MAX_INTERVAL_DAYS  -> scheduler.max_interval_days
//	RECALL_LOGGING_OUTPUT_FILE          -> logging.output.file
func LoadWithFile(configPath string) (*Config, error) {
	k := koanf.New(".")

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	// Use default config path if not specified
	if configPath == "" {
		configPath = filepath.Join(home, ".config", "recall", "config.yaml")
	}

	// Validate config path (even if file doesn't exist)
	if err := validateConfigPath(configPath, home); err != nil {
		return nil, fmt.Errorf("config path validation failed: %w", err)
	}

	// Load from YAML file if it exists
	if _, err := os.Stat(configPath); err == nil {
		// Open file once and validate through the file descriptor to
		// avoid a TOCTOU race
		f, err := os.Open(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open config file: %w", err)
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}

		if err := validateConfigFileProperties(info); err != nil {
			return nil, fmt.Errorf("config file validation failed: %w", err)
		}

		content, err := io.ReadAll(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Override with environment variables
	if err := k.Load(env.Provider(envPrefix, ".", envKeyTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	defaults, err := NewDefaultConfig()
	if err != nil {
		return nil, err
	}
	applyDefaults(&cfg, defaults, k)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// envKeyTransform maps RECALL_* environment variables to config keys.
//
// The general shape is RECALL_<SECTION>_<FIELD_NAME>: split on the first
// underscore after the prefix, keep underscores inside the field name.
// Logging subsections (output, caller, stacktrace) nest one level deeper
// and are mapped explicitly:
//
//	RECALL_DATA_HISTORY_CAP    -> data.history_cap
//	RECALL_LOGGING_LEVEL       -> logging.level
//	RECALL_LOGGING_OUTPUT_FILE -> logging.output.file
func envKeyTransform(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	parts := strings.SplitN(lower, "_", 2)

	if len(parts) == 1 {
		return lower
	}

	section := parts[0]
	fieldName := parts[1]

	if section == "logging" {
		for _, sub := range []string{"output", "caller", "stacktrace"} {
			if rest, ok := strings.CutPrefix(fieldName, sub+"_"); ok {
				return "logging." + sub + "." + rest
			}
		}
	}

	return section + "." + fieldName
}

// EnsureConfigDir creates the recall config directory if it doesn't exist.
// The directory is created with 0700 permissions (owner only).
func EnsureConfigDir() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(home, ".config", "recall")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", configDir, err)
	}

	return nil
}

// validateConfigPath checks if path is in allowed directories.
// This validation runs even if the file doesn't exist yet.
func validateConfigPath(path, home string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	// Resolve symlinks so a link cannot escape the allowed directories
	resolvedPath, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		// Symlink evaluation fails for paths that don't exist yet;
		// validate the absolute path instead
		resolvedPath = absPath
	}

	allowedDirs := []string{
		filepath.Join(home, ".config", "recall"),
		"/etc/recall",
	}

	allowed := false
	for _, dir := range allowedDirs {
		if strings.HasPrefix(resolvedPath, dir) {
			allowed = true
			break
		}
	}

	if !allowed {
		return fmt.Errorf("config file must be in ~/.config/recall/ or /etc/recall/")
	}

	return nil
}

// validateConfigFileProperties checks file permissions and size.
// Takes FileInfo from an already-opened file descriptor to avoid a TOCTOU
// race.
func validateConfigFileProperties(info os.FileInfo) error {
	// Check file permissions (must be 0600 or 0400)
	// Skip on Windows (different permission model)
	if runtime.GOOS != "windows" {
		perm := info.Mode().Perm()
		if perm != 0600 && perm != 0400 {
			return fmt.Errorf("insecure config file permissions: %v (expected 0600 or 0400)", perm)
		}
	}

	// Check file size (max 1MB)
	if info.Size() > maxConfigFileSize {
		return fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)
	}

	return nil
}

// applyDefaults fills unset configuration fields from defaults.
//
// Boolean and zero-meaningful fields consult the loaded key set because a
// Go zero value cannot distinguish "explicitly false/zero" from "absent".
func applyDefaults(cfg, def *Config, k *koanf.Koanf) {
	if cfg.Data.Dir == "" {
		cfg.Data.Dir = def.Data.Dir
	}
	if cfg.Data.HistoryCap == 0 {
		cfg.Data.HistoryCap = def.Data.HistoryCap
	}
	if !k.Exists("data.backups") {
		cfg.Data.Backups = def.Data.Backups
	}

	if cfg.Scheduler.FailureRetryDelay == 0 {
		cfg.Scheduler.FailureRetryDelay = def.Scheduler.FailureRetryDelay
	}
	if cfg.Scheduler.MaxIntervalDays == 0 {
		cfg.Scheduler.MaxIntervalDays = def.Scheduler.MaxIntervalDays
	}

	// Explicit 0 means "no limit", so only default when the key is absent
	if !k.Exists("session.default_limit") {
		cfg.Session.DefaultLimit = def.Session.DefaultLimit
	}
	if !k.Exists("session.shuffle") {
		cfg.Session.Shuffle = def.Session.Shuffle
	}

	if !k.Exists("ui.color") {
		cfg.UI.Color = def.UI.Color
	}

	// Logging: the zero zapcore.Level is already info, the default level
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = def.Logging.Format
	}
	if !k.Exists("logging.output.stderr") {
		cfg.Logging.Output.Stderr = def.Logging.Output.Stderr
	}
	if !k.Exists("logging.stacktrace.level") {
		cfg.Logging.Stacktrace.Level = def.Logging.Stacktrace.Level
	}
	if !k.Exists("logging.caller.skip") {
		cfg.Logging.Caller.Skip = def.Logging.Caller.Skip
	}
	if cfg.Logging.Fields == nil {
		cfg.Logging.Fields = def.Logging.Fields
	}
}
