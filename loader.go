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
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// Loader parses the delimited source file into the raw observation set.
// Period fields are parsed strictly; any row whose period does not parse
// as YYYY-MM fails the whole load. Value fields that fail numeric coercion
// are kept as missing observations for the completeness filter to drop.
type Loader struct {
	config *Config
	logger *Logger
}

// NewLoader creates a new loader
func NewLoader(config *Config, logger *Logger) *Loader {
	return &Loader{
		config: config,
		logger: logger.WithComponent("loader"),
	}
}

// Load reads the file at path and returns the normalized observation set
func (l *Loader) Load(path string) ([]Observation, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{
			Path:    path,
			Message: "failed to open input file",
			Err:     err,
		}
	}
	defer file.Close()

	observations, rows, err := l.parse(path, file)
	if err != nil {
		return nil, err
	}

	l.logger.LogRowsRead(path, rows)
	return observations, nil
}

// parse consumes the delimited stream. The first record is the header; the
// required columns are located by name and unknown columns are ignored.
func (l *Loader) parse(path string, r io.Reader) ([]Observation, int, error) {
	reader := csv.NewReader(r)
	reader.Comma = ','
	if l.config.Delimiter != "" {
		reader.Comma = rune(l.config.Delimiter[0])
	}
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, 0, &LoadError{
			Path:    path,
			Message: "failed to read header row",
			Err:     err,
		}
	}

	columns, err := locateColumns(path, header)
	if err != nil {
		return nil, 0, err
	}

	var observations []Observation
	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, &LoadError{
				Path:    path,
				Row:     rows + 2, // header + 1-based
				Message: "malformed row",
				Err:     err,
			}
		}
		rows++

		obs, err := l.parseRow(path, rows+1, columns, record)
		if err != nil {
			return nil, 0, err
		}
		observations = append(observations, obs)
	}

	return observations, rows, nil
}

// columnIndex holds the positions of the required columns in the header
type columnIndex struct {
	entity   int
	period   int
	value    int
	category int
}

func locateColumns(path string, header []string) (columnIndex, error) {
	idx := columnIndex{entity: -1, period: -1, value: -1, category: -1}

	for i, name := range header {
		switch strings.TrimSpace(name) {
		case ColumnEntity:
			idx.entity = i
		case ColumnPeriod:
			idx.period = i
		case ColumnValue:
			idx.value = i
		case ColumnCategory:
			idx.category = i
		}
	}

	missing := ""
	switch {
	case idx.entity < 0:
		missing = ColumnEntity
	case idx.period < 0:
		missing = ColumnPeriod
	case idx.value < 0:
		missing = ColumnValue
	case idx.category < 0:
		missing = ColumnCategory
	}
	if missing != "" {
		return idx, &LoadError{
			Path:    path,
			Field:   missing,
			Message: "required column not found in header",
		}
	}

	return idx, nil
}

func (l *Loader) parseRow(path string, line int, columns columnIndex, record []string) (Observation, error) {
	obs := Observation{
		Entity:   strings.TrimSpace(record[columns.entity]),
		Category: strings.TrimSpace(record[columns.category]),
	}

	rawPeriod := strings.TrimSpace(record[columns.period])
	period, err := time.Parse(periodLayout, rawPeriod)
	if err != nil {
		return obs, &LoadError{
			Path:    path,
			Row:     line,
			Field:   ColumnPeriod,
			Message: "period must be formatted as YYYY-MM, got " + strconv.Quote(rawPeriod),
			Err:     err,
		}
	}
	obs.Period = period

	rawValue := strings.TrimSpace(record[columns.value])
	value, err := strconv.ParseFloat(rawValue, 64)
	if err != nil || math.IsNaN(value) {
		// Missing or non-numeric values (including Eurostat ":" placeholders
		// and literal NaN tokens, which ParseFloat accepts) survive to the
		// completeness filter, which drops them
		obs.Missing = true
		l.logger.Debug("Non-numeric value coerced to missing",
			"row", line,
			"value", rawValue,
		)
		return obs, nil
	}
	obs.Value = value

	return obs, nil
}
