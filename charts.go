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
	"sort"
	"time"

	charts "github.com/vicanso/go-charts/v2"
)

// ChartGenerator renders the presentation charts to PNG. The theme is
// explicit construction-time configuration; the pipeline itself has no
// dependency on it.
type ChartGenerator struct {
	theme string
}

// NewChartGenerator creates a new chart generator
func NewChartGenerator(theme string) *ChartGenerator {
	return &ChartGenerator{
		theme: theme,
	}
}

// GenerateSeasonalityChart creates a line chart of the multi-year monthly
// means for one entity, one series per visitor category
func (cg *ChartGenerator) GenerateSeasonalityChart(records []SeasonalityRecord, entity string) ([]byte, error) {
	series := make(map[string][]float64)
	for _, rec := range records {
		if rec.Entity != entity {
			continue
		}
		if _, ok := series[rec.Category]; !ok {
			values := make([]float64, monthsPerYear)
			for i := range values {
				values[i] = charts.GetNullValue()
			}
			series[rec.Category] = values
		}
		series[rec.Category][rec.Month-1] = rec.MeanNights
	}

	if len(series) == 0 {
		return nil, &DataError{
			DataType: "seasonality",
			Message:  "no seasonality records for entity " + entity,
		}
	}

	legendLabels := make([]string, 0, len(series))
	for category := range series {
		legendLabels = append(legendLabels, category)
	}
	sort.Strings(legendLabels)

	values := make([][]float64, 0, len(series))
	for _, category := range legendLabels {
		values = append(values, series[category])
	}

	p, err := charts.LineRender(
		values,
		charts.TitleTextOptionFunc(fmt.Sprintf("Tourism Seasonality - %s", entity)),
		charts.XAxisDataOptionFunc(monthAbbrevs[1:]),
		charts.LegendLabelsOptionFunc(legendLabels, charts.PositionRight),
		charts.ThemeOptionFunc(cg.theme),
		charts.WidthOptionFunc(1200),
		charts.HeightOptionFunc(400),
		charts.PaddingOptionFunc(charts.Box{
			Top:    20,
			Right:  20,
			Bottom: 20,
			Left:   20,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render seasonality chart: %w", err)
	}

	return p.Bytes()
}

// GenerateTopDestinationsChart creates a horizontal bar chart of the ranked
// destinations for one visitor category
func (cg *ChartGenerator) GenerateTopDestinationsChart(category string, ranked []RankedDestination) ([]byte, error) {
	if len(ranked) == 0 {
		return nil, &DataError{
			DataType: "ranking",
			Message:  "no ranked destinations for category " + category,
		}
	}

	// Horizontal bars draw bottom-up; reverse so rank 1 lands on top
	labels := make([]string, 0, len(ranked))
	values := make([]float64, 0, len(ranked))
	for i := len(ranked) - 1; i >= 0; i-- {
		labels = append(labels, ranked[i].Entity)
		values = append(values, ranked[i].TotalNights)
	}

	p, err := charts.HorizontalBarRender(
		[][]float64{values},
		charts.TitleTextOptionFunc(fmt.Sprintf("Top Destinations - %s", category)),
		charts.YAxisDataOptionFunc(labels),
		charts.ThemeOptionFunc(cg.theme),
		charts.WidthOptionFunc(800),
		charts.HeightOptionFunc(600),
		charts.PaddingOptionFunc(charts.Box{
			Top:    20,
			Right:  40,
			Bottom: 20,
			Left:   20,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render destinations chart: %w", err)
	}

	return p.Bytes()
}

// GenerateTrendChart creates a line chart of nights over time for one
// entity, one series per visitor category
func (cg *ChartGenerator) GenerateTrendChart(ds *CleanedDataset, entity string) ([]byte, error) {
	observations := ds.ByEntity(entity)
	if len(observations) == 0 {
		return nil, &DataError{
			DataType: "trend",
			Message:  "no observations for entity " + entity,
		}
	}

	// Sum nights per (period, category)
	type periodCategory struct {
		period   time.Time
		category string
	}
	sums := make(map[periodCategory]float64)
	periodSet := make(map[time.Time]bool)
	categorySet := make(map[string]bool)
	for _, obs := range observations {
		sums[periodCategory{obs.Period, obs.Category}] += obs.Value
		periodSet[obs.Period] = true
		categorySet[obs.Category] = true
	}

	periods := make([]time.Time, 0, len(periodSet))
	for period := range periodSet {
		periods = append(periods, period)
	}
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Before(periods[j])
	})

	legendLabels := make([]string, 0, len(categorySet))
	for category := range categorySet {
		legendLabels = append(legendLabels, category)
	}
	sort.Strings(legendLabels)

	labels := make([]string, 0, len(periods))
	for _, period := range periods {
		labels = append(labels, period.Format(periodLayout))
	}

	values := make([][]float64, 0, len(legendLabels))
	for _, category := range legendLabels {
		row := make([]float64, 0, len(periods))
		for _, period := range periods {
			if sum, ok := sums[periodCategory{period, category}]; ok {
				row = append(row, sum)
			} else {
				row = append(row, charts.GetNullValue())
			}
		}
		values = append(values, row)
	}

	p, err := charts.LineRender(
		values,
		charts.TitleTextOptionFunc(fmt.Sprintf("Nights Over Time - %s", entity)),
		charts.XAxisDataOptionFunc(labels),
		charts.LegendLabelsOptionFunc(legendLabels, charts.PositionRight),
		charts.ThemeOptionFunc(cg.theme),
		charts.WidthOptionFunc(1200),
		charts.HeightOptionFunc(400),
		charts.PaddingOptionFunc(charts.Box{
			Top:    20,
			Right:  20,
			Bottom: 20,
			Left:   20,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render trend chart: %w", err)
	}

	return p.Bytes()
}
