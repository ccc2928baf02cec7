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
	"sort"
)

// Cleaner applies the completeness filter: it drops missing and negative
// values, derives year/month from the period, and restricts the dataset to
// calendar years with full 12-month coverage.
//
// Year completeness is evaluated globally on the raw presence count across
// the whole dataset, not per entity: a year qualifies when the dataset as a
// whole kept at least 12 rows for it. An individual entity may still have
// gaps inside a retained year; EntityYearGaps reports how often that is the
// case without acting on it.
type Cleaner struct {
	logger *Logger
}

// NewCleaner creates a new cleaner
func NewCleaner(logger *Logger) *Cleaner {
	return &Cleaner{
		logger: logger.WithComponent("cleaner"),
	}
}

// Clean filters the raw observation set into the cleaned dataset
func (c *Cleaner) Clean(raw []Observation) (*CleanedDataset, FilterStats) {
	stats := FilterStats{RowsIn: len(raw)}

	// Drop missing and negative values, derive year/month
	survivors := make([]Observation, 0, len(raw))
	for _, obs := range raw {
		if obs.Missing {
			stats.DroppedMissing++
			continue
		}
		if obs.Value < 0 {
			stats.DroppedNegative++
			continue
		}
		obs.Year = obs.Period.Year()
		obs.Month = int(obs.Period.Month())
		survivors = append(survivors, obs)
	}

	// Count surviving rows per calendar year across the entire dataset
	yearCounts := make(map[int]int)
	for _, obs := range survivors {
		yearCounts[obs.Year]++
	}

	completeYears := make(map[int]bool)
	for year, count := range yearCounts {
		if count >= monthsPerYear {
			completeYears[year] = true
		}
	}

	var kept []Observation
	if len(completeYears) == 0 {
		// Degenerate input: no year qualifies, keep everything that
		// survived the value checks and signal the caller
		stats.YearFilterSkipped = true
		kept = survivors
	} else {
		for year := range completeYears {
			stats.CompleteYears = append(stats.CompleteYears, year)
		}
		sort.Ints(stats.CompleteYears)

		kept = make([]Observation, 0, len(survivors))
		for _, obs := range survivors {
			if completeYears[obs.Year] {
				kept = append(kept, obs)
			}
		}
	}

	stats.RowsKept = len(kept)
	stats.EntityYearGaps = countEntityYearGaps(kept)

	c.logger.LogFilterStats(stats)

	return &CleanedDataset{Observations: kept}, stats
}

// countEntityYearGaps counts (entity, year) pairs that do not have exactly
// 12 monthly records in the retained dataset
func countEntityYearGaps(observations []Observation) int {
	type entityYear struct {
		entity string
		year   int
	}

	counts := make(map[entityYear]int)
	for _, obs := range observations {
		counts[entityYear{obs.Entity, obs.Year}]++
	}

	gaps := 0
	for _, count := range counts {
		if count != monthsPerYear {
			gaps++
		}
	}
	return gaps
}
