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
	"io"
	"log/slog"
	"testing"
	"time"
)

// testLogger returns a logger that discards all output
func testLogger() *Logger {
	return &Logger{slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// obs builds a single valid observation from a YYYY-MM period string
func obs(t *testing.T, entity, category, period string, value float64) Observation {
	t.Helper()
	parsed, err := time.Parse(periodLayout, period)
	if err != nil {
		t.Fatalf("bad period %q: %v", period, err)
	}
	return Observation{
		Entity:   entity,
		Category: category,
		Period:   parsed,
		Value:    value,
	}
}

// missingObs builds an observation whose value failed numeric coercion
func missingObs(t *testing.T, entity, category, period string) Observation {
	t.Helper()
	o := obs(t, entity, category, period, 0)
	o.Missing = true
	return o
}

// fullYear builds twelve monthly observations for one entity, category and
// year; values must have exactly twelve entries
func fullYear(t *testing.T, entity, category string, year int, values []float64) []Observation {
	t.Helper()
	if len(values) != 12 {
		t.Fatalf("fullYear needs 12 values, got %d", len(values))
	}
	out := make([]Observation, 0, 12)
	for month := 1; month <= 12; month++ {
		period := fmt.Sprintf("%04d-%02d", year, month)
		out = append(out, obs(t, entity, category, period, values[month-1]))
	}
	return out
}

// flatYear builds a full year with the same value in every month
func flatYear(t *testing.T, entity, category string, year int, value float64) []Observation {
	t.Helper()
	values := make([]float64, 12)
	for i := range values {
		values[i] = value
	}
	return fullYear(t, entity, category, year, values)
}

// cleaned runs the completeness filter over raw observations
func cleaned(t *testing.T, raw []Observation) (*CleanedDataset, FilterStats) {
	t.Helper()
	return NewCleaner(testLogger()).Clean(raw)
}
