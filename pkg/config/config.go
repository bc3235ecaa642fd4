// Package config loads mimic settings from a JSON file and the environment.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

const DefaultConfigFile = "mimic.json"

// Config holds the replay configuration
type Config struct {
	Dir            string  `json:"dir" env:"MIMIC_DIR"`
	Pattern        string  `json:"pattern,omitempty" env:"MIMIC_PATTERN"`
	PosSensitivity float64 `json:"pos_sensitivity" env:"MIMIC_POS_SENSITIVITY"`
	RotSensitivity float64 `json:"rot_sensitivity" env:"MIMIC_ROT_SENSITIVITY"`
	Hz             int     `json:"hz" env:"MIMIC_HZ"`
}

// Default returns a configuration with unit sensitivities and a 20 Hz loop.
func Default() *Config {
	return &Config{
		PosSensitivity: 1.0,
		RotSensitivity: 1.0,
		Hz:             20,
	}
}

// LoadConfig loads configuration from the default config file
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(DefaultConfigFile)
}

// LoadConfigFrom loads configuration from a specific file. Fields missing
// from the file keep their defaults.
func LoadConfigFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config JSON: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields with MIMIC_* environment variables that are set.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks that the configuration can drive a replay.
func (c *Config) Validate() error {
	var errs []error
	if c.Dir == "" {
		errs = append(errs, errors.New("dir is required"))
	}
	if c.Hz <= 0 {
		errs = append(errs, fmt.Errorf("hz must be positive, got %d", c.Hz))
	}
	if c.PosSensitivity <= 0 {
		errs = append(errs, fmt.Errorf("pos_sensitivity must be positive, got %g", c.PosSensitivity))
	}
	if c.RotSensitivity <= 0 {
		errs = append(errs, fmt.Errorf("rot_sensitivity must be positive, got %g", c.RotSensitivity))
	}
	return errors.Join(errs...)
}

// Save saves configuration to the default config file
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigFile)
}

// SaveTo saves configuration to a specific file
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ConfigExists returns true if the default config file exists
func ConfigExists() bool {
	_, err := os.Stat(DefaultConfigFile)
	return err == nil
}
