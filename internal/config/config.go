package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// EnvConfigDir overrides the default config directory.
const EnvConfigDir = "W3CONNECT_CONFIG_DIR"

const (
	defaultPollInterval = 3
	defaultLogLevel     = "info"
	defaultLogFile      = "w3connect.log"

	configFile = "config.json"
)

// DefaultDir returns $W3CONNECT_CONFIG_DIR, or ~/.w3connect.
func DefaultDir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home dir: %w", err)
	}
	return filepath.Join(home, ".w3connect"), nil
}

// Load reads config from dir (or creates defaults). dir defaults to DefaultDir().
func Load(dir string) (*Config, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("could not create config dir: %w", err)
	}

	cfg := defaults(dir)

	path := filepath.Join(dir, configFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.PollInterval < 0 {
		return nil, fmt.Errorf("parsing config: poll_interval must not be negative, got %d", cfg.PollInterval)
	}

	cfg.configDir = dir
	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.configDir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.configDir, configFile), data, 0o600)
}

// Dir returns the config directory.
func (c *Config) Dir() string {
	return c.configDir
}

func defaults(dir string) *Config {
	return &Config{
		PollInterval: defaultPollInterval,
		LogLevel:     defaultLogLevel,
		LogFile:      defaultLogFile,
		configDir:    dir,
	}
}
