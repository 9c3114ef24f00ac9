// Package config manages the acb configuration directory. It handles
// loading, saving, and initializing the CLI configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const (
	ConfigDir    = "acb"
	ConfigFile   = "config"
	DatabaseFile = "cache.db"

	// DefaultPageSize is the page size used when the config does not set one.
	DefaultPageSize = 10
)

// Config represents the acb configuration
type Config struct {
	APIURL   string `toml:"api_url"`
	Token    string `toml:"token,omitempty"`
	PageSize int    `toml:"page_size"`

	path string // path to the acb config directory
}

// Dir returns the acb configuration directory under the user config root.
func Dir() (string, error) {
	root, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(root, ConfigDir), nil
}

// Load loads the configuration from the acb config directory
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(dir, ConfigFile)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("not configured yet, run 'acb init --api URL' first")
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.PageSize == 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.PageSize < 0 {
		return nil, fmt.Errorf("page_size must be positive, got %d", cfg.PageSize)
	}

	cfg.path = dir
	return &cfg, nil
}

// Save saves the configuration to disk. The file holds the bearer token, so
// it is not group or world readable.
func (c *Config) Save() error {
	configPath := filepath.Join(c.path, ConfigFile)
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(configPath, data, 0600)
}

// Path returns the acb config directory this config was loaded from.
func (c *Config) Path() string {
	return c.path
}

// DatabasePath returns the path to the snapshot cache database
func (c *Config) DatabasePath() string {
	return filepath.Join(c.path, DatabaseFile)
}

// Initialize creates the config directory with an initial configuration
func Initialize(apiURL string) (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(dir, ConfigFile)
	if _, err := os.Stat(configPath); err == nil {
		return nil, fmt.Errorf("already configured at %s", configPath)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	cfg := &Config{
		APIURL:   apiURL,
		PageSize: DefaultPageSize,
		path:     dir,
	}

	if err := cfg.Save(); err != nil {
		return nil, err
	}

	return cfg, nil
}
