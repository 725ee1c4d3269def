package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetViper clears the shared global viper instance between tests.
func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestNewLoader(t *testing.T) {
	resetViper(t)

	loader := NewLoader()
	require.NotNil(t, loader)
	require.NotNil(t, loader.v)
}

func TestLoadWithNoConfigFile(t *testing.T) {
	resetViper(t)
	t.Chdir(t.TempDir())

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	// Defaults apply when no file is found.
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.Models.Enabled)
}

func TestLoadWithValidYAMLFile(t *testing.T) {
	resetViper(t)

	dir := t.TempDir()
	configFile := filepath.Join(dir, ConfigFileName+".yaml")
	yamlContent := `
log_level: debug
verbose: true
models_dir: /custom/models
catalog:
  path: /custom/catalog.yaml
models:
  enabled: false
  max_seq_len: 64
server:
  port: 9090
  host: 0.0.0.0
batch:
  workers: 8
`
	require.NoError(t, os.WriteFile(configFile, []byte(yamlContent), 0o600))
	t.Chdir(dir)

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "/custom/models", cfg.ModelsDir)
	assert.Equal(t, "/custom/catalog.yaml", cfg.Catalog.Path)
	assert.False(t, cfg.Models.Enabled)
	assert.Equal(t, 64, cfg.Models.MaxSeqLen)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8, cfg.Batch.Workers)

	// Untouched keys keep their defaults.
	assert.Equal(t, 30, cfg.Server.TimeoutSec)
}

func TestLoadWithInvalidValues(t *testing.T) {
	resetViper(t)

	dir := t.TempDir()
	configFile := filepath.Join(dir, ConfigFileName+".yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("server:\n  port: -1\n"), 0o600))
	t.Chdir(dir)

	_, err := NewLoader().Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadWithFile(t *testing.T) {
	resetViper(t)

	configFile := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("log_level: warn\n"), 0o600))

	cfg, err := NewLoader().LoadWithFile(configFile)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadWithFileMissing(t *testing.T) {
	resetViper(t)

	_, err := NewLoader().LoadWithFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestEnvironmentVariableOverride(t *testing.T) {
	resetViper(t)
	t.Chdir(t.TempDir())
	t.Setenv("MOOD_PLAYLIST_LOG_LEVEL", "error")
	t.Setenv("MOOD_PLAYLIST_SERVER_PORT", "9999")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, 9999, cfg.Server.Port)
}

func TestGenerateDefaultConfigFile(t *testing.T) {
	resetViper(t)

	target := filepath.Join(t.TempDir(), "generated.yaml")
	require.NoError(t, GenerateDefaultConfigFile(target))

	data, err := os.ReadFile(target) //nolint:gosec // G304: test-owned path
	require.NoError(t, err)
	assert.Contains(t, string(data), "log_level")
	assert.Contains(t, string(data), "catalog")
}

func TestGetConfigSearchPaths(t *testing.T) {
	paths := GetConfigSearchPaths()
	assert.Contains(t, paths, ".")
	assert.Contains(t, paths, "/etc/moodplaylist")
}
