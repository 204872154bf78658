package config

import (
	"path/filepath"
	"time"
)

// Config holds all w3connect configuration.
type Config struct {
	ProviderURL  string `json:"provider_url"`
	PollInterval int    `json:"poll_interval"` // seconds
	LogLevel     string `json:"log_level"`     // zerolog level name
	LogFile      string `json:"log_file"`      // relative paths resolve against the config dir

	// internal: config dir path used for Save()
	configDir string
}

// Poll returns the account/chain polling interval.
func (c *Config) Poll() time.Duration {
	if c.PollInterval <= 0 {
		return time.Duration(defaultPollInterval) * time.Second
	}
	return time.Duration(c.PollInterval) * time.Second
}

// LogPath returns the absolute path of the TUI log file.
func (c *Config) LogPath() string {
	name := c.LogFile
	if name == "" {
		name = defaultLogFile
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.configDir, name)
}
