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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, ",", config.Delimiter)
	assert.Equal(t, DefaultTopN, config.TopN)
	assert.Equal(t, "output", config.OutputDir)
	assert.Equal(t, "light", config.ChartTheme)
	assert.False(t, config.Debug)
}

func TestLoadConfig_FromFile(t *testing.T) {
	content := `data_path: data/nights.csv
delimiter: ";"
top_n: 5
output_dir: reports
chart_theme: dark
debug: true
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "data/nights.csv", config.DataPath)
	assert.Equal(t, ";", config.Delimiter)
	assert.Equal(t, 5, config.TopN)
	assert.Equal(t, "reports", config.OutputDir)
	assert.Equal(t, "dark", config.ChartTheme)
	assert.True(t, config.Debug)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_path: nights.csv\n"), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "nights.csv", config.DataPath)
	assert.Equal(t, ",", config.Delimiter)
	assert.Equal(t, DefaultTopN, config.TopN)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("TASS_DATA_PATH", "/tmp/override.csv")
	t.Setenv("TASS_TOP_N", "3")
	t.Setenv("TASS_CHART_THEME", "dark")
	t.Setenv("TASS_DEBUG", "1")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/override.csv", config.DataPath)
	assert.Equal(t, 3, config.TopN)
	assert.Equal(t, "dark", config.ChartTheme)
	assert.True(t, config.Debug)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("top_n: [not a number\n"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			DataPath:   "nights.csv",
			Delimiter:  ",",
			TopN:       10,
			OutputDir:  "output",
			ChartTheme: "light",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing data path", func(c *Config) { c.DataPath = "" }, "data_path is required"},
		{"empty delimiter", func(c *Config) { c.Delimiter = "" }, "delimiter must be a single character"},
		{"multi-char delimiter", func(c *Config) { c.Delimiter = ",," }, "delimiter must be a single character"},
		{"zero top_n", func(c *Config) { c.TopN = 0 }, "top_n must be at least 1"},
		{"negative top_n", func(c *Config) { c.TopN = -1 }, "top_n must be at least 1"},
		{"bad theme", func(c *Config) { c.ChartTheme = "neon" }, "chart_theme must be"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid()
			tt.mutate(config)
			err := config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateDefaultsOutputDir(t *testing.T) {
	config := &Config{
		DataPath:   "nights.csv",
		Delimiter:  ",",
		TopN:       1,
		ChartTheme: "light",
	}

	require.NoError(t, config.Validate())
	assert.Equal(t, "output", config.OutputDir)
}

func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	config := &Config{}

	err := config.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data_path is required")
	assert.Contains(t, err.Error(), "delimiter must be a single character")
	assert.Contains(t, err.Error(), "top_n must be at least 1")
	assert.Contains(t, err.Error(), "chart_theme must be")
}
