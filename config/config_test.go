package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.Diagnostics.ColorOutput)
	assert.Equal(t, 1, cfg.Diagnostics.ContextLines)
	assert.False(t, cfg.Diagnostics.WarningsAsErr)

	assert.True(t, cfg.Binder.ShortCircuitLogical)
	assert.False(t, cfg.Binder.WarnOnNarrowing)

	assert.Equal(t, ":8420", cfg.API.ListenAddress)
	assert.Equal(t, 500, cfg.TUI.PollIntervalMS)
}

func TestGetConfigPath(t *testing.T) {
	path := GetConfigPath()

	assert.NotEmpty(t, path)
	assert.Equal(t, "mlang.toml", filepath.Base(path))
}

func TestSaveAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config.toml")

	cfg := DefaultConfig()
	cfg.Diagnostics.ColorOutput = false
	cfg.Diagnostics.ContextLines = 3
	cfg.Binder.ShortCircuitLogical = false
	cfg.API.ListenAddress = ":9000"

	require.NoError(t, cfg.SaveTo(configPath))
	require.FileExists(t, configPath)

	loaded, err := LoadFrom(configPath)
	require.NoError(t, err)

	assert.False(t, loaded.Diagnostics.ColorOutput)
	assert.Equal(t, 3, loaded.Diagnostics.ContextLines)
	assert.False(t, loaded.Binder.ShortCircuitLogical)
	assert.Equal(t, ":9000", loaded.API.ListenAddress)
}

func TestLoadNonExistent(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nonexistent.toml")

	cfg, err := LoadFrom(configPath)
	require.NoError(t, err)
	assert.Equal(t, ":8420", cfg.API.ListenAddress, "expected default config when file doesn't exist")
}

func TestLoadInvalidTOML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "invalid.toml")

	invalidTOML := `
[diagnostics]
context_lines = "not a number"
`
	require.NoError(t, os.WriteFile(configPath, []byte(invalidTOML), 0644))

	_, err := LoadFrom(configPath)
	assert.Error(t, err)
}

func TestSaveCreatesDirectory(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "subdir1", "subdir2", "config.toml")

	cfg := DefaultConfig()
	require.NoError(t, cfg.SaveTo(configPath))
	require.FileExists(t, configPath)

	dir := filepath.Dir(configPath)
	_, err := os.Stat(dir)
	assert.NoError(t, err, "parent directories were not created")
}
