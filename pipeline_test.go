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
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pipelineOutput struct {
	stats    FilterStats
	records  []SeasonalityRecord
	profiles []SeasonalityProfile
	top      map[string][]RankedDestination
}

// runPipeline runs the full load, clean, analyze, rank chain over a CSV file.
func runPipeline(t *testing.T, path string, topN int) pipelineOutput {
	t.Helper()

	logger := testLogger()
	config := &Config{DataPath: path, Delimiter: ",", TopN: topN}

	raw, err := NewLoader(config, logger).Load(path)
	require.NoError(t, err)

	ds, stats := NewCleaner(logger).Clean(raw)
	records, profiles := NewAnalyzer(logger).Analyze(ds)

	top, err := NewRanker(logger).TopDestinations(ds, topN)
	require.NoError(t, err)

	return pipelineOutput{stats: stats, records: records, profiles: profiles, top: top}
}

// writeNightsCSV writes a synthetic two-year monthly file with a July peak
// for the coastal region and flat demand for the city.
func writeNightsCSV(t *testing.T) string {
	t.Helper()

	var b strings.Builder
	b.WriteString("geo,c_resid,TIME_PERIOD,OBS_VALUE\n")
	for _, year := range []int{2021, 2022} {
		for month := 1; month <= 12; month++ {
			coastal := 100.0
			if month == 7 {
				coastal = 800
			}
			fmt.Fprintf(&b, "Coastal,Total,%d-%02d,%g\n", year, month, coastal)
			fmt.Fprintf(&b, "City,Total,%d-%02d,%g\n", year, month, 300.0)
		}
	}
	// Noise the filter must discard
	b.WriteString("Coastal,Total,2023-01,:\n")
	b.WriteString("City,Total,2023-01,-5\n")

	path := filepath.Join(t.TempDir(), "nights.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func TestPipeline_EndToEnd(t *testing.T) {
	path := writeNightsCSV(t)
	out := runPipeline(t, path, 10)

	assert.Equal(t, 50, out.stats.RowsIn)
	assert.Equal(t, 48, out.stats.RowsKept)
	assert.Equal(t, 1, out.stats.DroppedMissing)
	assert.Equal(t, 1, out.stats.DroppedNegative)
	assert.Equal(t, []int{2021, 2022}, out.stats.CompleteYears)
	assert.False(t, out.stats.YearFilterSkipped)

	// 2 entities x 1 category x 12 months
	assert.Len(t, out.records, 24)
	require.Len(t, out.profiles, 2)

	byEntity := make(map[string]SeasonalityProfile, len(out.profiles))
	for _, p := range out.profiles {
		byEntity[p.Entity] = p
	}

	coastal := byEntity["Coastal"]
	assert.InDelta(t, 8.0, coastal.Index, 1e-9)
	assert.Equal(t, 7, coastal.PeakMonth)
	assert.Equal(t, CharacterStrong, coastal.Character)

	city := byEntity["City"]
	assert.InDelta(t, 1.0, city.Index, 1e-9)
	assert.Equal(t, CharacterLow, city.Character)

	ranked := out.top["Total"]
	require.Len(t, ranked, 2)
	assert.Equal(t, "City", ranked[0].Entity)
	assert.InDelta(t, 2*(11*300+300), ranked[0].TotalNights, 1e-9)
	assert.Equal(t, "Coastal", ranked[1].Entity)
	assert.InDelta(t, 2*(11*100+800), ranked[1].TotalNights, 1e-9)
}

func TestPipeline_SameInputSameOutput(t *testing.T) {
	path := writeNightsCSV(t)

	first := runPipeline(t, path, 10)
	second := runPipeline(t, path, 10)

	assert.Equal(t, first.stats, second.stats)
	assert.Equal(t, first.records, second.records)
	assert.Equal(t, first.profiles, second.profiles)
	assert.Equal(t, first.top, second.top)

	reporter := NewReporter(testLogger())
	assert.Equal(t,
		reporter.GenerateNarrative(first.profiles, first.top),
		reporter.GenerateNarrative(second.profiles, second.top),
	)
}

func TestPipeline_NoCompleteYearStillProduces(t *testing.T) {
	var b strings.Builder
	b.WriteString("geo,c_resid,TIME_PERIOD,OBS_VALUE\n")
	for month := 1; month <= 7; month++ {
		fmt.Fprintf(&b, "Coastal,Total,2021-%02d,%d\n", month, month*100)
	}

	path := filepath.Join(t.TempDir(), "partial.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))

	out := runPipeline(t, path, 10)

	assert.True(t, out.stats.YearFilterSkipped)
	assert.Equal(t, 7, out.stats.RowsKept)
	assert.Len(t, out.records, 7)
	require.Len(t, out.profiles, 1)
	assert.Equal(t, 7, out.profiles[0].PeakMonth)
	assert.Equal(t, 1, out.profiles[0].LowMonth)
	assert.InDelta(t, 7.0, out.profiles[0].Index, 1e-9)
}
