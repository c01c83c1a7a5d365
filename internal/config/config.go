// Package config handles configuration file loading, parsing and watching.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/flashbar/internal/severity"
)

// Default configuration values.
const (
	DefaultTimeout  = 5 * time.Second
	DefaultLogLines = 500
)

// Config represents the flashbar configuration.
type Config struct {
	Notifications NotificationsConfig `toml:"notifications"`
	TUI           TUIConfig           `toml:"tui"`
	Clipboard     ClipboardConfig     `toml:"clipboard"`
}

// NotificationsConfig controls the bar's arbitration inputs.
type NotificationsConfig struct {
	// MinLevel is the severity threshold below which feed events are dropped.
	MinLevel severity.Level `toml:"min_level"`

	// ShowTips enables the tip shown while the bar is idle.
	ShowTips bool `toml:"show_tips"`

	// Timeout is the display window for an accepted message.
	Timeout Duration `toml:"timeout"`
}

// TUIConfig holds TUI-specific settings.
type TUIConfig struct {
	// LogLines caps how many feed events the scrollback viewport retains.
	LogLines int `toml:"log_lines"`
}

// ClipboardConfig holds clipboard settings.
type ClipboardConfig struct {
	Command string `toml:"command"` // Auto-detected if empty
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Notifications: NotificationsConfig{
			MinLevel: severity.Info,
			ShowTips: true,
			Timeout:  Duration(DefaultTimeout),
		},
		TUI: TUIConfig{
			LogLines: DefaultLogLines,
		},
		Clipboard: ClipboardConfig{
			Command: "", // Auto-detect
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "flashbar", "config.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	// Start with defaults
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// No config file, use defaults
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
