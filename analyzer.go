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
	"math"
	"sort"
)

// Analyzer computes per-month seasonality statistics and the derived
// seasonality index for every (entity, visitor category) pair
type Analyzer struct {
	logger *Logger
}

// NewAnalyzer creates a new analyzer
func NewAnalyzer(logger *Logger) *Analyzer {
	return &Analyzer{
		logger: logger.WithComponent("analyzer"),
	}
}

// Analyze groups the cleaned dataset by (entity, category, month), computes
// the multi-year mean and sample standard deviation for each group, and
// derives one seasonality profile per (entity, category) pair. Both outputs
// are fully sorted so repeated runs on identical input are byte-identical.
func (a *Analyzer) Analyze(ds *CleanedDataset) ([]SeasonalityRecord, []SeasonalityProfile) {
	type monthKey struct {
		entity   string
		category string
		month    int
	}

	groups := make(map[monthKey][]float64)
	for _, obs := range ds.Observations {
		key := monthKey{obs.Entity, obs.Category, obs.Month}
		groups[key] = append(groups[key], obs.Value)
	}

	records := make([]SeasonalityRecord, 0, len(groups))
	for key, values := range groups {
		mean := calculateMean(values)
		records = append(records, SeasonalityRecord{
			Entity:     key.entity,
			Category:   key.category,
			Month:      key.month,
			MeanNights: mean,
			StdNights:  calculateStdDev(values, mean),
			YearCount:  len(values),
		})
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].Entity != records[j].Entity {
			return records[i].Entity < records[j].Entity
		}
		if records[i].Category != records[j].Category {
			return records[i].Category < records[j].Category
		}
		return records[i].Month < records[j].Month
	})

	a.logger.LogAnalysisStage("monthly_aggregation")

	profiles := deriveProfiles(records)
	a.logger.LogAnalysisStage("seasonality_index")
	a.logger.Info("Seasonality analyzed",
		"records", len(records),
		"profiles", len(profiles),
	)

	return records, profiles
}

// deriveProfiles folds sorted records into one profile per (entity, category).
// Records arrive in ascending month order within each pair, so keeping the
// first strictly-greater (or strictly-smaller) mean makes the peak and low
// months deterministic: the smallest month number wins a tie.
func deriveProfiles(records []SeasonalityRecord) []SeasonalityProfile {
	var profiles []SeasonalityProfile

	flush := func(p *SeasonalityProfile) {
		if p == nil {
			return
		}
		if p.LowMean == 0 {
			// Flat/undefined case: never divide by zero
			p.Index = 1.0
		} else {
			p.Index = p.PeakMean / p.LowMean
		}
		p.Character = classifySeasonality(p.Index)
		profiles = append(profiles, *p)
	}

	var current *SeasonalityProfile
	for _, rec := range records {
		if current == nil || current.Entity != rec.Entity || current.Category != rec.Category {
			flush(current)
			current = &SeasonalityProfile{
				Entity:    rec.Entity,
				Category:  rec.Category,
				PeakMonth: rec.Month,
				PeakMean:  rec.MeanNights,
				LowMonth:  rec.Month,
				LowMean:   rec.MeanNights,
				Months:    1,
			}
			continue
		}

		current.Months++
		if rec.MeanNights > current.PeakMean {
			current.PeakMonth = rec.Month
			current.PeakMean = rec.MeanNights
		}
		if rec.MeanNights < current.LowMean {
			current.LowMonth = rec.Month
			current.LowMean = rec.MeanNights
		}
	}
	flush(current)

	return profiles
}

// classifySeasonality maps a seasonality index to its character label
func classifySeasonality(index float64) string {
	switch {
	case index > strongSeasonalityThreshold:
		return CharacterStrong
	case index < lowSeasonalityThreshold:
		return CharacterLow
	default:
		return CharacterModerate
	}
}

// EntityStats builds the per-entity statistics view consumed by the
// interactive surface: totals and extremes per category, the data year span,
// and the top months by multi-year mean.
func (a *Analyzer) EntityStats(ds *CleanedDataset, records []SeasonalityRecord, profiles []SeasonalityProfile, entity string) (*EntityStats, error) {
	observations := ds.ByEntity(entity)
	if len(observations) == 0 {
		return nil, &DataError{
			DataType: "entity",
			Message:  "no observations for entity " + entity,
		}
	}

	stats := &EntityStats{Entity: entity}

	type periodCategory struct {
		period   string
		category string
	}

	years := make(map[int]bool)
	groups := make(map[periodCategory]bool)
	byCategory := make(map[string]*CategoryStats)
	for _, obs := range observations {
		stats.TotalNights += obs.Value
		years[obs.Year] = true
		groups[periodCategory{obs.Period.Format(periodLayout), obs.Category}] = true

		cs, ok := byCategory[obs.Category]
		if !ok {
			cs = &CategoryStats{
				Category:  obs.Category,
				MaxNights: obs.Value,
				MinNights: obs.Value,
			}
			byCategory[obs.Category] = cs
		}
		cs.TotalNights += obs.Value
		if obs.Value > cs.MaxNights {
			cs.MaxNights = obs.Value
		}
		if obs.Value < cs.MinNights {
			cs.MinNights = obs.Value
		}
	}

	for year := range years {
		if stats.FirstYear == 0 || year < stats.FirstYear {
			stats.FirstYear = year
		}
		if year > stats.LastYear {
			stats.LastYear = year
		}
	}
	stats.YearCount = len(years)
	// The monthly average is per (period, category) group, so an entity
	// reporting two categories does not look twice as busy per month
	if len(groups) > 0 {
		stats.AvgMonthlyTotal = stats.TotalNights / float64(len(groups))
	}

	// Per-category means over raw observations
	counts := make(map[string]int)
	for _, obs := range observations {
		counts[obs.Category]++
	}
	for category, cs := range byCategory {
		cs.MeanNights = cs.TotalNights / float64(counts[category])
	}

	// Attach the seasonality view for each category
	for i := range profiles {
		if profiles[i].Entity != entity {
			continue
		}
		if cs, ok := byCategory[profiles[i].Category]; ok {
			cs.Profile = &profiles[i]
		}
	}
	for i := range records {
		rec := &records[i]
		if rec.Entity != entity {
			continue
		}
		cs, ok := byCategory[rec.Category]
		if !ok || cs.Profile == nil {
			continue
		}
		if rec.Month == cs.Profile.PeakMonth {
			cs.Peak = rec
		}
		if rec.Month == cs.Profile.LowMonth {
			cs.Low = rec
		}
	}

	for _, cs := range byCategory {
		stats.Categories = append(stats.Categories, *cs)
	}
	sort.Slice(stats.Categories, func(i, j int) bool {
		return stats.Categories[i].Category < stats.Categories[j].Category
	})

	stats.TopMonths = topMonths(records, entity, narrativeListSize)

	return stats, nil
}

// topMonths returns the n highest multi-year monthly means for an entity,
// across all categories
func topMonths(records []SeasonalityRecord, entity string, n int) []MonthRank {
	var ranks []MonthRank
	for _, rec := range records {
		if rec.Entity != entity {
			continue
		}
		ranks = append(ranks, MonthRank{
			Month:      rec.Month,
			Category:   rec.Category,
			MeanNights: rec.MeanNights,
		})
	}

	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].MeanNights > ranks[j].MeanNights
	})

	if len(ranks) > n {
		ranks = ranks[:n]
	}
	return ranks
}

// Statistical helper functions

// calculateMean calculates the mean of a slice of float64 values
func calculateMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

// calculateStdDev calculates the sample standard deviation. A single sample
// has zero deviation, not an undefined one.
func calculateStdDev(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}

	sumSquaredDiff := 0.0
	for _, v := range values {
		diff := v - mean
		sumSquaredDiff += diff * diff
	}

	variance := sumSquaredDiff / float64(len(values)-1)
	return math.Sqrt(variance)
}
