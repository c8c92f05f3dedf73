// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides configuration management for buildgate. Operational
// tuning is read from an optional YAML file; everything else comes from
// built-in defaults. Check parameters themselves are never read from a file
// or the environment, only from command-line flags.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags
//  2. Configuration file
//  3. Built-in defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads operational configuration. If configPath is provided, it
// loads from that specific file. Otherwise, it searches standard locations:
//   - .buildgate.yaml (current directory)
//   - .buildgate.yml (current directory)
//   - ~/.buildgate/config.yaml
//
// Returns an error if the specified config file cannot be loaded, but will
// succeed with defaults if no config file is found in standard locations.
func LoadConfig(configPath string) (*Config, error) {
	// Start with defaults
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		return cfg, nil
	}

	// Try default locations
	defaultPaths := []string{
		".buildgate.yaml",
		".buildgate.yml",
		filepath.Join(os.Getenv("HOME"), ".buildgate", "config.yaml"),
	}

	for _, path := range defaultPaths {
		if _, err := os.Stat(path); err == nil {
			if err := loadConfigFile(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
			}
			break
		}
	}

	return cfg, nil
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// Validate checks if the operational configuration contains usable values.
// This should be called after loading configuration to catch invalid
// settings before the first request is made.
func (c *Config) Validate() error {
	if c.Rollbar.Endpoint == "" {
		return fmt.Errorf("rollbar endpoint cannot be empty")
	}
	if c.Request.Attempts < 1 {
		return fmt.Errorf("request attempts must be at least 1, got: %d", c.Request.Attempts)
	}
	if c.Request.RetryDelaySeconds < 0 {
		return fmt.Errorf("retry delay cannot be negative, got: %d", c.Request.RetryDelaySeconds)
	}
	if c.Request.TimeoutSeconds < 1 {
		return fmt.Errorf("request timeout must be at least 1 second, got: %d", c.Request.TimeoutSeconds)
	}
	return nil
}
