package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the complete reconciliation configuration
type Config struct {
	Analytics AnalyticsConfig `json:"analytics" yaml:"analytics"`
	Journal   JournalConfig   `json:"journal" yaml:"journal"`
	LogLevel  string          `json:"log_level" yaml:"log_level"`
}

// AnalyticsConfig contains categorical threshold parameters
type AnalyticsConfig struct {
	BullishRatio float64 `json:"bullish_ratio" yaml:"bullish_ratio"`
	BearishRatio float64 `json:"bearish_ratio" yaml:"bearish_ratio"`
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type      string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	FillsFile string `json:"fills_file,omitempty" yaml:"fills_file,omitempty"`
	DBPath    string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a file (JSON or YAML based on extension)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Analytics.BullishRatio <= 0 {
		return fmt.Errorf("analytics.bullish_ratio must be positive")
	}
	if c.Analytics.BearishRatio <= 0 {
		return fmt.Errorf("analytics.bearish_ratio must be positive")
	}
	if c.Analytics.BearishRatio >= c.Analytics.BullishRatio {
		return fmt.Errorf("analytics.bearish_ratio must be below bullish_ratio")
	}
	switch c.Journal.Type {
	case "none":
	case "csv":
		if c.Journal.FillsFile == "" {
			return fmt.Errorf("journal fills_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug|info|warn|error")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Analytics: AnalyticsConfig{
			BullishRatio: 1.2,
			BearishRatio: 0.8,
		},
		Journal: JournalConfig{
			Type:      "csv",
			FillsFile: "./fills.csv",
		},
		LogLevel: "info",
	}
}
