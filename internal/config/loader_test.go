package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// writeConfigFile drops a config file into $HOME/.config/recall with the
// given permissions and returns its path.
func writeConfigFile(t *testing.T, home, content string, perm os.FileMode) string {
	t.Helper()
	dir := filepath.Join(home, ".config", "recall")
	require.NoError(t, os.MkdirAll(dir, 0700))
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
	return path
}

func TestLoadWithFile_NoFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := LoadWithFile("")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".local", "share", "recall"), cfg.Data.Dir)
	assert.Equal(t, 100, cfg.Data.HistoryCap)
	assert.True(t, cfg.Data.Backups)
	assert.Equal(t, 20, cfg.Session.DefaultLimit)
	assert.True(t, cfg.Session.Shuffle)
	assert.True(t, cfg.UI.Color)
	assert.Equal(t, zapcore.InfoLevel, cfg.Logging.Level)
	assert.True(t, cfg.Logging.Output.Stderr)
}

func TestLoadWithFile_YAMLValues(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := writeConfigFile(t, home, `
data:
  dir: /srv/recall
  history_cap: 50
  backups: false
scheduler:
  failure_retry_delay: 5m
  max_interval_days: 1000
session:
  default_limit: 0
  shuffle: false
ui:
  color: false
logging:
  level: debug
  format: json
`, 0600)

	cfg, err := LoadWithFile(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/recall", cfg.Data.Dir)
	assert.Equal(t, 50, cfg.Data.HistoryCap)
	assert.False(t, cfg.Data.Backups, "explicit false survives defaulting")
	assert.Equal(t, 5*time.Minute, cfg.Scheduler.FailureRetryDelay.Duration())
	assert.Equal(t, 1000, cfg.Scheduler.MaxIntervalDays)
	assert.Equal(t, 0, cfg.Session.DefaultLimit, "explicit 0 means unlimited")
	assert.False(t, cfg.Session.Shuffle)
	assert.False(t, cfg.UI.Color)
	assert.Equal(t, zapcore.DebugLevel, cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadWithFile_EnvOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := writeConfigFile(t, home, `
data:
  history_cap: 50
`, 0600)

	t.Setenv("RECALL_DATA_HISTORY_CAP", "25")
	t.Setenv("RECALL_SESSION_SHUFFLE", "false")
	t.Setenv("RECALL_SCHEDULER_FAILURE_RETRY_DELAY", "30m")
	t.Setenv("RECALL_LOGGING_OUTPUT_FILE", filepath.Join(home, "recall.log"))

	cfg, err := LoadWithFile(path)
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Data.HistoryCap)
	assert.False(t, cfg.Session.Shuffle)
	assert.Equal(t, 30*time.Minute, cfg.Scheduler.FailureRetryDelay.Duration())
	assert.Equal(t, filepath.Join(home, "recall.log"), cfg.Logging.Output.File)
}

func TestLoadWithFile_RejectsInsecurePermissions(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := writeConfigFile(t, home, "data:\n  history_cap: 50\n", 0644)

	_, err := LoadWithFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insecure config file permissions")
}

func TestLoadWithFile_RejectsPathOutsideAllowedDirs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	outside := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(outside, []byte("data: {}\n"), 0600))

	_, err := LoadWithFile(outside)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config path validation failed")
}

func TestLoadWithFile_RejectsOversizedFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	big := "# " + strings.Repeat("x", maxConfigFileSize) + "\n"
	path := writeConfigFile(t, home, big, 0600)

	_, err := LoadWithFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}

func TestLoadWithFile_MalformedYAML(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := writeConfigFile(t, home, "data: [unclosed\n", 0600)

	_, err := LoadWithFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config file")
}

func TestEnvKeyTransform(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "RECALL_DATA_DIR", want: "data.dir"},
		{in: "RECALL_DATA_HISTORY_CAP", want: "data.history_cap"},
		{in: "RECALL_SCHEDULER_MAX_INTERVAL_DAYS", want: "scheduler.max_interval_days"},
		{in: "RECALL_SESSION_DEFAULT_LIMIT", want: "session.default_limit"},
		{in: "RECALL_UI_COLOR", want: "ui.color"},
		{in: "RECALL_LOGGING_LEVEL", want: "logging.level"},
		{in: "RECALL_LOGGING_OUTPUT_STDERR", want: "logging.output.stderr"},
		{in: "RECALL_LOGGING_OUTPUT_FILE", want: "logging.output.file"},
		{in: "RECALL_LOGGING_CALLER_SKIP", want: "logging.caller.skip"},
		{in: "RECALL_LOGGING_STACKTRACE_LEVEL", want: "logging.stacktrace.level"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, envKeyTransform(tt.in))
		})
	}
}

func TestEnsureConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.NoError(t, EnsureConfigDir())

	info, err := os.Stat(filepath.Join(home, ".config", "recall"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}
