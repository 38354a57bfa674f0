package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path takes priority
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, errors.Wrapf(err, "loading config from %s", configPath)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings no component can honor.
func (c *Config) Validate() error {
	switch c.Loader.Parser {
	case "", "obj", "obj-tiny", "obj-fast", "stub":
	default:
		return errors.Newf("unknown parser %q", c.Loader.Parser)
	}
	switch c.Loader.Hash {
	case "", HashActive, HashAll:
	default:
		return errors.Newf("unknown hash policy %q", c.Loader.Hash)
	}
	if n := len(c.Camera.Position); n != 0 && n != 3 {
		return errors.Newf("camera position needs 3 components, got %d", n)
	}
	if c.Render.Width < 0 || c.Render.Height < 0 {
		return errors.Newf("invalid render size %dx%d", c.Render.Width, c.Render.Height)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "GXEngine")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "GXEngine")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "gxengine")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "gxengine")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
