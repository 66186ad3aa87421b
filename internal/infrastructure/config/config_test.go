package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "SmartFoodManager", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, "json", cfg.App.LogFormat)
	assert.False(t, cfg.App.Debug)

	assert.Equal(t, "smartfood.json", cfg.Storage.FilePath)
	assert.True(t, cfg.Storage.LoadOnStart)
	assert.True(t, cfg.Storage.SaveOnExit)

	assert.Equal(t, 72*time.Hour, cfg.Alerts.ExpiryWarningWindow)
	assert.True(t, cfg.Alerts.EnableLowStock)

	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
app:
  environment: production
  log_level: warn
storage:
  file_path: /var/lib/smartfood/store.json
  save_on_exit: false
alerts:
  expiry_warning_window: 24h
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "warn", cfg.App.LogLevel)
	assert.Equal(t, "/var/lib/smartfood/store.json", cfg.Storage.FilePath)
	assert.False(t, cfg.Storage.SaveOnExit)
	assert.Equal(t, 24*time.Hour, cfg.Alerts.ExpiryWarningWindow)

	// Untouched keys keep their defaults.
	assert.Equal(t, "SmartFoodManager", cfg.App.Name)
	assert.True(t, cfg.Storage.LoadOnStart)
}

func TestLoadEnvironmentOverride(t *testing.T) {
	t.Setenv("SMARTFOOD_APP_LOG_LEVEL", "debug")
	t.Setenv("SMARTFOOD_STORAGE_FILE_PATH", "/tmp/override.json")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, "/tmp/override.json", cfg.Storage.FilePath)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))

	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.App.Name = ""
	assert.Error(t, cfg.Validate())

	cfg.App.Name = "SmartFoodManager"
	cfg.Storage.FilePath = ""
	assert.Error(t, cfg.Validate())

	cfg.Storage.FilePath = "store.json"
	cfg.Alerts.ExpiryWarningWindow = -time.Hour
	assert.Error(t, cfg.Validate())
}
