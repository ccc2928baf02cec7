// Copyright 2025 The TASS Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"sort"
	"time"
)

// Observation is one row of the source file: the nights count reported for
// one entity, one calendar month and one visitor-residency category.
type Observation struct {
	Entity   string    `json:"entity"`
	Category string    `json:"category"`
	Period   time.Time `json:"period"`
	Value    float64   `json:"value"`
	Missing  bool      `json:"missing,omitempty"`

	// Derived from Period by the completeness filter
	Year  int `json:"year"`
	Month int `json:"month"`
}

// CleanedDataset is the immutable snapshot of observations surviving the
// completeness filter. It is recomputed on every load and never mutated
// afterwards, so concurrent readers need no synchronization.
type CleanedDataset struct {
	Observations []Observation `json:"observations"`
}

// Entities returns the sorted set of distinct entity codes
func (d *CleanedDataset) Entities() []string {
	return d.distinct(func(o Observation) string { return o.Entity })
}

// Categories returns the sorted set of distinct visitor categories
func (d *CleanedDataset) Categories() []string {
	return d.distinct(func(o Observation) string { return o.Category })
}

func (d *CleanedDataset) distinct(key func(Observation) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, o := range d.Observations {
		k := key(o)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Years returns the sorted set of calendar years present in the dataset
func (d *CleanedDataset) Years() []int {
	seen := make(map[int]bool)
	var out []int
	for _, o := range d.Observations {
		if !seen[o.Year] {
			seen[o.Year] = true
			out = append(out, o.Year)
		}
	}
	sort.Ints(out)
	return out
}

// ByEntity returns the observations for a single entity, in dataset order
func (d *CleanedDataset) ByEntity(entity string) []Observation {
	var out []Observation
	for _, o := range d.Observations {
		if o.Entity == entity {
			out = append(out, o)
		}
	}
	return out
}

// ByCategory returns the observations for a single visitor category, in dataset order
func (d *CleanedDataset) ByCategory(category string) []Observation {
	var out []Observation
	for _, o := range d.Observations {
		if o.Category == category {
			out = append(out, o)
		}
	}
	return out
}

// FilterStats describes what the completeness filter did to the raw rows
type FilterStats struct {
	RowsIn          int   `json:"rowsIn"`
	RowsKept        int   `json:"rowsKept"`
	DroppedMissing  int   `json:"droppedMissing"`
	DroppedNegative int   `json:"droppedNegative"`
	CompleteYears   []int `json:"completeYears"`

	// YearFilterSkipped is set when no calendar year had full coverage and
	// the year restriction was skipped instead of failing
	YearFilterSkipped bool `json:"yearFilterSkipped"`

	// EntityYearGaps counts (entity, year) pairs without exactly 12 monthly
	// records. The filter does not act on this; it is reported so consumers
	// can see how loose the global year check is.
	EntityYearGaps int `json:"entityYearGaps"`
}

// SeasonalityRecord is the multi-year mean and sample standard deviation of
// nights for one (entity, category, month) key
type SeasonalityRecord struct {
	Entity     string  `json:"entity"`
	Category   string  `json:"category"`
	Month      int     `json:"month"`
	MeanNights float64 `json:"meanNights"`
	StdNights  float64 `json:"stdNights"`
	YearCount  int     `json:"yearCount"`
}

// MonthName returns the full month name for the record
func (r SeasonalityRecord) MonthName() string {
	if r.Month < 1 || r.Month > 12 {
		return ""
	}
	return monthNames[r.Month]
}

// SeasonalityProfile is the derived per-(entity, category) view: the
// seasonality index and the deterministic peak/low months
type SeasonalityProfile struct {
	Entity    string  `json:"entity"`
	Category  string  `json:"category"`
	Index     float64 `json:"index"`
	PeakMonth int     `json:"peakMonth"`
	PeakMean  float64 `json:"peakMean"`
	LowMonth  int     `json:"lowMonth"`
	LowMean   float64 `json:"lowMean"`
	Months    int     `json:"months"`
	Character string  `json:"character"` // strong, moderate, low
}

// RankedDestination is one row of a per-category ranking
type RankedDestination struct {
	Rank        int     `json:"rank"`
	Entity      string  `json:"entity"`
	TotalNights float64 `json:"totalNights"`
}

// CategoryStats summarizes one visitor category for a single entity
type CategoryStats struct {
	Category    string  `json:"category"`
	TotalNights float64 `json:"totalNights"`
	MeanNights  float64 `json:"meanNights"`
	MaxNights   float64 `json:"maxNights"`
	MinNights   float64 `json:"minNights"`

	Profile *SeasonalityProfile `json:"profile,omitempty"`
	Peak    *SeasonalityRecord  `json:"peak,omitempty"`
	Low     *SeasonalityRecord  `json:"low,omitempty"`
}

// MonthRank is one entry of an entity's top-months listing
type MonthRank struct {
	Month      int     `json:"month"`
	Category   string  `json:"category"`
	MeanNights float64 `json:"meanNights"`
}

// EntityStats is the per-entity statistics payload consumed by the
// interactive viewer and the entity sections of the report
type EntityStats struct {
	Entity          string          `json:"entity"`
	TotalNights     float64         `json:"totalNights"`
	AvgMonthlyTotal float64         `json:"avgMonthlyTotal"`
	FirstYear       int             `json:"firstYear"`
	LastYear        int             `json:"lastYear"`
	YearCount       int             `json:"yearCount"`
	Categories      []CategoryStats `json:"categories"`
	TopMonths       []MonthRank     `json:"topMonths"`
}

// AnalysisResult holds the complete pipeline output for one run
type AnalysisResult struct {
	GeneratedAt     time.Time                      `json:"generatedAt"`
	SourcePath      string                         `json:"sourcePath"`
	RowsRead        int                            `json:"rowsRead"`
	FilterStats     FilterStats                    `json:"filterStats"`
	Records         []SeasonalityRecord            `json:"records"`
	Profiles        []SeasonalityProfile           `json:"profiles"`
	TopDestinations map[string][]RankedDestination `json:"topDestinations"`
}
