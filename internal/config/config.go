// Package config provides configuration loading and defaults for the
// scenetag plugin.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// TagConfig names the tag the add/remove operations act on.
type TagConfig struct {
	Name string `yaml:"name"`
}

// FallbackConfig is the synthetic connection used when the plugin is run by
// hand with a mode argument instead of a host-supplied envelope.
type FallbackConfig struct {
	Scheme string `yaml:"scheme"`
	Port   int    `yaml:"port"`
}

// LongTaskConfig shapes the simulated long-running task.
type LongTaskConfig struct {
	Steps int `yaml:"steps"`
	// IntervalMS is the pause before each step, in milliseconds.
	IntervalMS int `yaml:"interval_ms"`
}

// GraphQLConfig holds client tuning for the host GraphQL API.
type GraphQLConfig struct {
	// Timeout is the HTTP request timeout in seconds.
	Timeout int `yaml:"timeout"`
}

// Config is the top-level configuration structure for the plugin.
type Config struct {
	Tag      TagConfig      `yaml:"tag"`
	Fallback FallbackConfig `yaml:"fallback"`
	LongTask LongTaskConfig `yaml:"long_task"`
	GraphQL  GraphQLConfig  `yaml:"graphql"`
}

// LoadConfig reads and parses a YAML configuration file from the given path.
// It returns a pointer to the populated Config and any error encountered.
// On error, nil is returned for the config pointer.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// DefaultConfig returns a new Config populated with the plugin's defaults.
// Each call returns a distinct instance.
func DefaultConfig() *Config {
	return &Config{
		Tag: TagConfig{
			Name: "Hawwwwt",
		},
		Fallback: FallbackConfig{
			Scheme: "http",
			Port:   9999,
		},
		LongTask: LongTaskConfig{
			Steps:      100,
			IntervalMS: 1000,
		},
		GraphQL: GraphQLConfig{
			Timeout: 30,
		},
	}
}

// ApplyEnvOverrides updates cfg in place with values from environment
// variables. Recognized variables:
//   - SCENETAG_TAG_NAME overrides cfg.Tag.Name
//   - SCENETAG_FALLBACK_PORT overrides cfg.Fallback.Port when it parses as
//     a positive integer
func ApplyEnvOverrides(cfg *Config) {
	if name := os.Getenv("SCENETAG_TAG_NAME"); name != "" {
		cfg.Tag.Name = name
	}
	if raw := os.Getenv("SCENETAG_FALLBACK_PORT"); raw != "" {
		if port, err := strconv.Atoi(raw); err == nil && port > 0 {
			cfg.Fallback.Port = port
		}
	}
}
