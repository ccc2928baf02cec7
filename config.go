// Copyright 2025 The TASS Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	// Input
	DataPath  string `yaml:"data_path"`
	Delimiter string `yaml:"delimiter"`

	// Analysis settings
	TopN int `yaml:"top_n"`

	// Output
	OutputDir  string `yaml:"output_dir"`
	ChartTheme string `yaml:"chart_theme"`

	// Debugging
	Debug bool `yaml:"debug"`
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	// Set defaults
	config := &Config{
		Delimiter:  ",",
		TopN:       DefaultTopN,
		OutputDir:  "output",
		ChartTheme: "light",
		Debug:      false,
	}

	// If no path provided, return defaults with env var overrides
	if path == "" {
		config.applyEnvironmentVariables()
		return config, nil
	}

	// Read the file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply environment variable overrides
	config.applyEnvironmentVariables()

	return config, nil
}

// applyEnvironmentVariables overrides config with environment variables
func (c *Config) applyEnvironmentVariables() {
	if val := os.Getenv("TASS_DATA_PATH"); val != "" {
		c.DataPath = val
	}
	if val := os.Getenv("TASS_OUTPUT_DIR"); val != "" {
		c.OutputDir = val
	}
	if val := os.Getenv("TASS_DELIMITER"); val != "" {
		c.Delimiter = val
	}
	if val := os.Getenv("TASS_TOP_N"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			c.TopN = n
		}
	}
	if val := os.Getenv("TASS_CHART_THEME"); val != "" {
		c.ChartTheme = val
	}
	if val := os.Getenv("TASS_DEBUG"); val == "true" || val == "1" {
		c.Debug = true
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errors []string

	// Required fields
	if c.DataPath == "" {
		errors = append(errors, "data_path is required")
	}

	if len(c.Delimiter) != 1 {
		errors = append(errors, "delimiter must be a single character")
	}

	// A non-positive ranking size is never silently clamped
	if c.TopN < 1 {
		errors = append(errors, "top_n must be at least 1")
	}

	if c.ChartTheme != "light" && c.ChartTheme != "dark" {
		errors = append(errors, "chart_theme must be \"light\" or \"dark\"")
	}

	// Set default output dir if empty
	if c.OutputDir == "" {
		c.OutputDir = "output"
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}
