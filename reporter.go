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
	"math"
	"os"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
)

// Reporter turns the analysis outputs into the narrative commentary and the
// markdown report. It quotes upstream numbers unchanged: counts are
// thousands-separated integers, the index is a two-decimal ratio.
type Reporter struct {
	logger *Logger
}

// NewReporter creates a new report generator
func NewReporter(logger *Logger) *Reporter {
	return &Reporter{
		logger: logger.WithComponent("reporter"),
	}
}

// GenerateNarrative produces the fixed-layout analytical commentary:
// the five most seasonal profiles, the five steadiest profiles, and the
// top five destinations per visitor category.
func (r *Reporter) GenerateNarrative(profiles []SeasonalityProfile, top map[string][]RankedDestination) string {
	var b strings.Builder
	rule := strings.Repeat("=", 70)
	thin := strings.Repeat("-", 70)

	fmt.Fprintf(&b, "\n%s\n", rule)
	fmt.Fprintf(&b, "ANALYTICAL COMMENTARY\n")
	fmt.Fprintf(&b, "%s\n\n", rule)

	fmt.Fprintf(&b, "SEASONALITY ANALYSIS:\n")
	fmt.Fprintf(&b, "%s\n", thin)

	sorted := sortProfilesByIndex(profiles)

	fmt.Fprintf(&b, "\nEntities with STRONG seasonality (highest seasonality index):\n")
	for _, p := range topProfiles(sorted, narrativeListSize) {
		fmt.Fprintf(&b, "  * %s (%s): index %s\n", p.Entity, p.Category, FormatIndex(p.Index))
		fmt.Fprintf(&b, "    -> pronounced peak in %s, typical of holiday-driven demand\n", monthNames[p.PeakMonth])
	}

	fmt.Fprintf(&b, "\nEntities with LOW seasonality (steady year-round demand):\n")
	for _, p := range bottomProfiles(sorted, narrativeListSize) {
		fmt.Fprintf(&b, "  * %s (%s): index %s\n", p.Entity, p.Category, FormatIndex(p.Index))
		fmt.Fprintf(&b, "    -> flatter monthly distribution, typical of business or year-round demand\n")
	}

	fmt.Fprintf(&b, "\n\nTOP TOURIST DESTINATIONS:\n")
	fmt.Fprintf(&b, "%s\n", thin)
	for _, category := range sortedCategories(top) {
		fmt.Fprintf(&b, "\n%s:\n", category)
		for i, d := range top[category] {
			if i >= narrativeListSize {
				break
			}
			fmt.Fprintf(&b, "  %d. %s: %s nights\n", d.Rank, d.Entity, FormatNights(d.TotalNights))
		}
	}

	fmt.Fprintf(&b, "\n%s\n", rule)

	return b.String()
}

// GenerateReport creates a markdown report from analysis results
func (r *Reporter) GenerateReport(result *AnalysisResult, outputPath string) error {
	r.logger.Info("Generating report")

	var writer io.Writer
	if outputPath == "" {
		writer = os.Stdout
	} else {
		file, err := os.Create(outputPath)
		if err != nil {
			return &StorageError{Operation: "create report", Path: outputPath, Err: err}
		}
		defer file.Close()
		writer = file
	}

	r.writeHeader(writer, result)
	r.writeDataSummary(writer, result)
	r.writeSeasonality(writer, result)
	r.writeDestinations(writer, result)
	r.writeFooter(writer)

	if outputPath != "" {
		r.logger.Info("Report saved", "path", outputPath)
	}

	return nil
}

// writeHeader writes the report header
func (r *Reporter) writeHeader(w io.Writer, result *AnalysisResult) {
	fmt.Fprintf(w, "# Tourist Accommodation Seasonality Report\n\n")
	fmt.Fprintf(w, "**Generated:** %s\n\n", result.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "**Source:** %s\n\n", result.SourcePath)
	fmt.Fprintf(w, "**tass version:** %s\n\n", GetVersion())
	fmt.Fprintf(w, "---\n\n")
}

// writeDataSummary writes the dataset and filtering summary
func (r *Reporter) writeDataSummary(w io.Writer, result *AnalysisResult) {
	stats := result.FilterStats

	fmt.Fprintf(w, "## Data Summary\n\n")
	fmt.Fprintf(w, "| Metric | Value |\n")
	fmt.Fprintf(w, "|--------|-------|\n")
	fmt.Fprintf(w, "| Rows read | %d |\n", result.RowsRead)
	fmt.Fprintf(w, "| Rows retained | %d |\n", stats.RowsKept)
	fmt.Fprintf(w, "| Dropped (missing value) | %d |\n", stats.DroppedMissing)
	fmt.Fprintf(w, "| Dropped (negative value) | %d |\n", stats.DroppedNegative)

	if stats.YearFilterSkipped {
		fmt.Fprintf(w, "| Complete years | none |\n")
	} else if len(stats.CompleteYears) > 0 {
		first := stats.CompleteYears[0]
		last := stats.CompleteYears[len(stats.CompleteYears)-1]
		fmt.Fprintf(w, "| Complete years | %d - %d |\n", first, last)
	}
	fmt.Fprintf(w, "\n")

	if stats.YearFilterSkipped {
		fmt.Fprintf(w, "> No calendar year in the source had full 12-month coverage. ")
		fmt.Fprintf(w, "The year restriction was skipped and all valid rows were kept.\n\n")
	}
	if stats.EntityYearGaps > 0 {
		fmt.Fprintf(w, "> %d entity-year combinations have incomplete monthly coverage. ", stats.EntityYearGaps)
		fmt.Fprintf(w, "Year completeness is checked on the dataset as a whole, not per entity.\n\n")
	}
}

// writeSeasonality writes the seasonality listings
func (r *Reporter) writeSeasonality(w io.Writer, result *AnalysisResult) {
	fmt.Fprintf(w, "## Seasonality\n\n")

	sorted := sortProfilesByIndex(result.Profiles)

	fmt.Fprintf(w, "### Strongest Seasonality\n\n")
	fmt.Fprintf(w, "| Entity | Category | Index | Peak Month | Low Month |\n")
	fmt.Fprintf(w, "|--------|----------|-------|------------|----------|\n")
	for _, p := range topProfiles(sorted, narrativeListSize) {
		fmt.Fprintf(w, "| %s | %s | %s | %s | %s |\n",
			p.Entity, p.Category, FormatIndex(p.Index),
			monthNames[p.PeakMonth], monthNames[p.LowMonth],
		)
	}
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "### Steadiest Year-Round Demand\n\n")
	fmt.Fprintf(w, "| Entity | Category | Index | Peak Month | Low Month |\n")
	fmt.Fprintf(w, "|--------|----------|-------|------------|----------|\n")
	for _, p := range bottomProfiles(sorted, narrativeListSize) {
		fmt.Fprintf(w, "| %s | %s | %s | %s | %s |\n",
			p.Entity, p.Category, FormatIndex(p.Index),
			monthNames[p.PeakMonth], monthNames[p.LowMonth],
		)
	}
	fmt.Fprintf(w, "\n")
}

// writeDestinations writes the full per-category rankings
func (r *Reporter) writeDestinations(w io.Writer, result *AnalysisResult) {
	fmt.Fprintf(w, "## Top Destinations\n\n")

	for _, category := range sortedCategories(result.TopDestinations) {
		fmt.Fprintf(w, "### %s\n\n", category)
		fmt.Fprintf(w, "| Rank | Entity | Total Nights |\n")
		fmt.Fprintf(w, "|------|--------|-------------|\n")
		for _, d := range result.TopDestinations[category] {
			fmt.Fprintf(w, "| %d | %s | %s |\n", d.Rank, d.Entity, FormatNights(d.TotalNights))
		}
		fmt.Fprintf(w, "\n")
	}
}

// writeFooter writes the report footer
func (r *Reporter) writeFooter(w io.Writer) {
	fmt.Fprintf(w, "---\n\n")
	fmt.Fprintf(w, "*Generated by tass*\n")
}

// sortProfilesByIndex returns a copy of the profiles sorted by index
// descending; ties fall back to entity then category so output never
// depends on map iteration order
func sortProfilesByIndex(profiles []SeasonalityProfile) []SeasonalityProfile {
	sorted := make([]SeasonalityProfile, len(profiles))
	copy(sorted, profiles)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Index != sorted[j].Index {
			return sorted[i].Index > sorted[j].Index
		}
		if sorted[i].Entity != sorted[j].Entity {
			return sorted[i].Entity < sorted[j].Entity
		}
		return sorted[i].Category < sorted[j].Category
	})
	return sorted
}

// topProfiles returns the first n profiles of a sorted-descending slice
func topProfiles(sorted []SeasonalityProfile, n int) []SeasonalityProfile {
	if len(sorted) < n {
		n = len(sorted)
	}
	return sorted[:n]
}

// bottomProfiles returns the n lowest-index profiles, lowest first
func bottomProfiles(sorted []SeasonalityProfile, n int) []SeasonalityProfile {
	if len(sorted) < n {
		n = len(sorted)
	}
	out := make([]SeasonalityProfile, 0, n)
	for i := len(sorted) - 1; i >= len(sorted)-n; i-- {
		out = append(out, sorted[i])
	}
	return out
}

// sortedCategories returns the ranking categories in deterministic order
func sortedCategories(top map[string][]RankedDestination) []string {
	categories := make([]string, 0, len(top))
	for category := range top {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

// FormatNights formats a nights count as a thousands-separated integer
func FormatNights(value float64) string {
	return humanize.Comma(int64(math.Round(value)))
}

// FormatIndex formats a seasonality index as a two-decimal ratio
func FormatIndex(value float64) string {
	return fmt.Sprintf("%.2f", value)
}
