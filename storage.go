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
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Storage writes the output artifacts of a pipeline run: the JSON analysis
// snapshot, the seasonality CSV export, the narrative text and chart PNGs
type Storage struct {
	basePath string
	logger   *Logger
}

// NewStorage creates a new storage handler rooted at basePath
func NewStorage(basePath string, logger *Logger) (*Storage, error) {
	// Ensure output directory exists
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, &StorageError{
			Operation: "create_directory",
			Path:      basePath,
			Err:       err,
		}
	}

	logger.Debug("Storage initialized", "path", basePath)

	return &Storage{
		basePath: basePath,
		logger:   logger,
	}, nil
}

// SaveAnalysisResult saves the analysis result snapshot
func (s *Storage) SaveAnalysisResult(result *AnalysisResult) (string, error) {
	path := filepath.Join(s.basePath, "analysis.json")
	s.logger.LogStorageOperation("save_analysis", path)
	return path, s.saveJSON(path, result)
}

// LoadAnalysisResult loads a previously saved analysis snapshot, or nil
// when none exists
func (s *Storage) LoadAnalysisResult() (*AnalysisResult, error) {
	path := filepath.Join(s.basePath, "analysis.json")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	s.logger.LogStorageOperation("load_analysis", path)

	file, err := os.Open(path)
	if err != nil {
		return nil, &StorageError{
			Operation: "open_file",
			Path:      path,
			Err:       err,
		}
	}
	defer file.Close()

	var result AnalysisResult
	if err := json.NewDecoder(file).Decode(&result); err != nil {
		return nil, &StorageError{
			Operation: "decode_json",
			Path:      path,
			Err:       err,
		}
	}

	return &result, nil
}

// SaveSeasonalityCSV exports the raw seasonality record set for external use
func (s *Storage) SaveSeasonalityCSV(records []SeasonalityRecord) (string, error) {
	path := filepath.Join(s.basePath, "seasonality.csv")
	s.logger.LogStorageOperation("save_seasonality_csv", path)

	file, err := os.Create(path)
	if err != nil {
		return "", &StorageError{
			Operation: "create_file",
			Path:      path,
			Err:       err,
		}
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	header := []string{ColumnEntity, ColumnCategory, "month", "month_name", "avg_nights", "std_nights"}
	if err := writer.Write(header); err != nil {
		return "", &StorageError{
			Operation: "write_csv",
			Path:      path,
			Err:       err,
		}
	}

	for _, rec := range records {
		row := []string{
			rec.Entity,
			rec.Category,
			strconv.Itoa(rec.Month),
			rec.MonthName(),
			strconv.FormatFloat(rec.MeanNights, 'f', -1, 64),
			strconv.FormatFloat(rec.StdNights, 'f', -1, 64),
		}
		if err := writer.Write(row); err != nil {
			return "", &StorageError{
				Operation: "write_csv",
				Path:      path,
				Err:       err,
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", &StorageError{
			Operation: "flush_csv",
			Path:      path,
			Err:       err,
		}
	}

	return path, nil
}

// SaveNarrative saves the analytical commentary text block
func (s *Storage) SaveNarrative(text string) (string, error) {
	path := filepath.Join(s.basePath, "commentary.txt")
	s.logger.LogStorageOperation("save_narrative", path)

	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return "", &StorageError{
			Operation: "write_file",
			Path:      path,
			Err:       err,
		}
	}
	return path, nil
}

// SaveChart saves a rendered chart PNG under a sanitized name
func (s *Storage) SaveChart(name string, png []byte) (string, error) {
	path := filepath.Join(s.basePath, sanitizeFilename(name)+".png")
	s.logger.LogStorageOperation("save_chart", path)

	if err := os.WriteFile(path, png, 0644); err != nil {
		return "", &StorageError{
			Operation: "write_file",
			Path:      path,
			Err:       err,
		}
	}
	return path, nil
}

// ReportPath returns the path the markdown report is written to
func (s *Storage) ReportPath() string {
	return filepath.Join(s.basePath, "report.md")
}

// saveJSON saves data as JSON to a file
func (s *Storage) saveJSON(path string, data interface{}) error {
	file, err := os.Create(path)
	if err != nil {
		return &StorageError{
			Operation: "create_file",
			Path:      path,
			Err:       err,
		}
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(data); err != nil {
		return &StorageError{
			Operation: "encode_json",
			Path:      path,
			Err:       err,
		}
	}

	return nil
}

// sanitizeFilename replaces characters that are unsafe in file names
func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		" ", "_",
		"/", "-",
		"\\", "-",
		":", "-",
	)
	return replacer.Replace(name)
}
