// Package config loads the compiler's user-facing settings: diagnostics
// rendering, binder policy toggles, and the API/TUI listen addresses.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config is the top-level settings object, unmarshalled from TOML: one
// struct per section, tagged fields, a DefaultConfig() that populates
// every field explicitly.
type Config struct {
	Diagnostics struct {
		ColorOutput   bool `toml:"color_output"`
		ContextLines  int  `toml:"context_lines"`
		WarningsAsErr bool `toml:"warnings_as_errors"`
	} `toml:"diagnostics"`

	Binder struct {
		ShortCircuitLogical bool `toml:"short_circuit_logical"`
		WarnOnNarrowing     bool `toml:"warn_on_narrowing"`
	} `toml:"binder"`

	API struct {
		ListenAddress string `toml:"listen_address"`
	} `toml:"api"`

	TUI struct {
		PollIntervalMS int `toml:"poll_interval_ms"`
	} `toml:"tui"`
}

// DefaultConfig returns a Config with every field explicitly populated.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Diagnostics.ColorOutput = true
	cfg.Diagnostics.ContextLines = 1
	cfg.Diagnostics.WarningsAsErr = false

	cfg.Binder.ShortCircuitLogical = true
	cfg.Binder.WarnOnNarrowing = false

	cfg.API.ListenAddress = ":8420"

	cfg.TUI.PollIntervalMS = 500

	return cfg
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "mlang")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "mlang.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "mlang")

	default:
		return "mlang.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "mlang.toml"
	}

	return filepath.Join(configDir, "mlang.toml")
}

// Load loads configuration from the default config file.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from path, falling back to defaults if the
// file doesn't exist.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// SaveTo writes cfg to path in TOML form.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
