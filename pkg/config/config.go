/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/ssargent/calltrace/pkg/locator"
	"github.com/ssargent/calltrace/pkg/timestamp"
)

// Config represents the calltrace configuration
type Config struct {
	Decode  Decode  `yaml:"decode"`
	Logging Logging `yaml:"logging"`
	Metrics Metrics `yaml:"metrics"`
}

// Decode contains pipeline settings
type Decode struct {
	Workers         int    `yaml:"workers"` // 0 = GOMAXPROCS
	Marker          string `yaml:"marker"`  // bplist | transaction
	TimestampMarker string `yaml:"timestamp_marker"`
}

// Logging contains logging configuration
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console | json
}

// Metrics contains metrics export configuration
type Metrics struct {
	Textfile string `yaml:"textfile"` // Prometheus textfile path, empty disables export
}

var (
	validLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validFormats = map[string]bool{"console": true, "json": true}
)

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Decode: Decode{
			Workers:         0,
			Marker:          locator.MarkerBplist,
			TimestampMarker: string(timestamp.DefaultMarker),
		},
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error
	if c.Decode.Workers < 0 {
		err = multierr.Append(err, fmt.Errorf("decode.workers must not be negative, got %d", c.Decode.Workers))
	}
	if _, mErr := locator.ForName(c.Decode.Marker); mErr != nil {
		err = multierr.Append(err, fmt.Errorf("decode.marker: %w", mErr))
	}
	if c.Decode.TimestampMarker == "" {
		err = multierr.Append(err, fmt.Errorf("decode.timestamp_marker must not be empty"))
	}
	if !validLevels[c.Logging.Level] {
		err = multierr.Append(err, fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level))
	}
	if !validFormats[c.Logging.Format] {
		err = multierr.Append(err, fmt.Errorf("logging.format %q is not one of console, json", c.Logging.Format))
	}
	return err
}

// LoadConfig loads configuration from the specified path. Settings missing
// from the file keep their defaults.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// BootstrapConfig writes a default configuration to configPath
func BootstrapConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}
	return config, nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./calltrace.yaml"
	}

	// For Linux/macOS, use ~/.config/calltrace/config.yaml
	configDir := filepath.Join(homeDir, ".config", "calltrace")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
