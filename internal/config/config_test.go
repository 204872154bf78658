package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Mohsinsiddi/w3connect/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Empty(t, cfg.ProviderURL)
	assert.Equal(t, 3, cfg.PollInterval)
	assert.Equal(t, 3*time.Second, cfg.Poll())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, filepath.Join(dir, "w3connect.log"), cfg.LogPath())
	assert.Equal(t, dir, cfg.Dir())
}

func TestSaveAndReloadConfig(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load(dir)
	require.NoError(t, err)

	cfg.ProviderURL = "http://127.0.0.1:8545"
	cfg.PollInterval = 1
	cfg.LogLevel = "debug"

	require.NoError(t, cfg.Save())

	reloaded, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8545", reloaded.ProviderURL)
	assert.Equal(t, time.Second, reloaded.Poll())
	assert.Equal(t, "debug", reloaded.LogLevel)
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"),
		[]byte(`{"provider_url": "ws://localhost:8546"}`), 0o600))

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "ws://localhost:8546", cfg.ProviderURL)
	assert.Equal(t, 3, cfg.PollInterval)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadCorruptConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0o600))

	_, err := config.Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestLoadNegativePollInterval(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"poll_interval": -1}`), 0o600))

	_, err := config.Load(dir)
	assert.Error(t, err)
}

func TestPollZeroFallsBackToDefault(t *testing.T) {
	cfg := &config.Config{}
	assert.Equal(t, 3*time.Second, cfg.Poll())
}

func TestLogPathAbsolute(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "custom.log")
	cfg := &config.Config{LogFile: abs}
	assert.Equal(t, abs, cfg.LogPath())
}

func TestLoadCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "w3connect")
	_, err := config.Load(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestDefaultDirFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(config.EnvConfigDir, dir)

	got, err := config.DefaultDir()
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.Dir())
}
