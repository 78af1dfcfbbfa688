package main

import (
	"errors"
	"fmt"
	"github.com/BurntSushi/toml"
	"os"
	"path/filepath"
	"strings"
)

// Config represents the CLI configuration
type Config struct {
	Strict       bool   `toml:"strict"`
	SkipPNG      bool   `toml:"skip_png"`
	LogLevel     string `toml:"log_level"`
	LogFormat    string `toml:"log_format"`
	MaxInputSize int64  `toml:"max_input_size"`
	MaxKKExDepth int    `toml:"max_kkex_depth"`
}

func defaultConfig() *Config {
	return &Config{
		LogLevel:  "warn",
		LogFormat: "console",
	}
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetConfigFilePath returns the path to the default config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "kkcard", "config.toml")
}

// LoadConfig loads the config file
//
// if path is empty the default config file is used (and it is not an error for it to be missing)
func LoadConfig(path string) (*Config, error) {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = GetConfigFilePath()
	}
	cfg := defaultConfig()
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("config file: %w", err)
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// Validate checks the config values
func (c *Config) Validate() error {
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(c.LogFormat)) {
	case "", "console", "json":
	default:
		return fmt.Errorf("log format: unsupported value %q", c.LogFormat)
	}
	if c.MaxInputSize < 0 {
		return fmt.Errorf("max_input_size must not be negative (got %d)", c.MaxInputSize)
	}
	if c.MaxKKExDepth < 0 {
		return fmt.Errorf("max_kkex_depth must not be negative (got %d)", c.MaxKKExDepth)
	}
	return nil
}
