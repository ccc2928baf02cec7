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
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nights.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newTestLoader(delimiter string) *Loader {
	config := &Config{Delimiter: delimiter}
	return NewLoader(config, testLogger())
}

func TestLoader_Load(t *testing.T) {
	// Extra columns (freq, unit) must be ignored; ":" and empty values
	// must be coerced to missing, not dropped
	csv := `freq,geo,TIME_PERIOD,OBS_VALUE,c_resid,unit
M,PL,2023-07,51234,Foreign country,NR
M,PL,2023-08,48210.5,Foreign country,NR
M,DE,2023-07,:,Total,NR
M,FR,2023-07,,Domestic country,NR
`
	path := writeTempCSV(t, csv)

	observations, err := newTestLoader(",").Load(path)
	require.NoError(t, err)
	require.Len(t, observations, 4)

	assert.Equal(t, "PL", observations[0].Entity)
	assert.Equal(t, "Foreign country", observations[0].Category)
	assert.Equal(t, 2023, observations[0].Period.Year())
	assert.Equal(t, 7, int(observations[0].Period.Month()))
	assert.Equal(t, 51234.0, observations[0].Value)
	assert.False(t, observations[0].Missing)

	assert.Equal(t, 48210.5, observations[1].Value)

	assert.True(t, observations[2].Missing, "Eurostat ':' placeholder should be missing")
	assert.True(t, observations[3].Missing, "empty value should be missing")
}

func TestLoader_Load_BadPeriodIsFatal(t *testing.T) {
	tests := []struct {
		name   string
		period string
	}{
		{name: "wrong separator", period: "2023/07"},
		{name: "missing month", period: "2023"},
		{name: "full date", period: "2023-07-01"},
		{name: "garbage", period: "July 2023"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			csv := "geo,TIME_PERIOD,OBS_VALUE,c_resid\nPL,2023-01,100,Total\nPL," + tt.period + ",100,Total\n"
			path := writeTempCSV(t, csv)

			observations, err := newTestLoader(",").Load(path)
			require.Error(t, err)
			assert.Nil(t, observations, "a bad period must fail the whole load")

			var loadErr *LoadError
			require.True(t, errors.As(err, &loadErr))
			assert.Equal(t, ColumnPeriod, loadErr.Field)
			assert.Equal(t, 3, loadErr.Row)
		})
	}
}

func TestLoader_Load_MissingColumnIsFatal(t *testing.T) {
	csv := "geo,TIME_PERIOD,OBS_VALUE\nPL,2023-01,100\n"
	path := writeTempCSV(t, csv)

	_, err := newTestLoader(",").Load(path)
	require.Error(t, err)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, ColumnCategory, loadErr.Field)
}

func TestLoader_Load_MissingFileIsFatal(t *testing.T) {
	_, err := newTestLoader(",").Load(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
}

func TestLoader_Load_CustomDelimiter(t *testing.T) {
	tsv := "geo\tTIME_PERIOD\tOBS_VALUE\tc_resid\nPL\t2023-01\t100\tTotal\n"
	path := writeTempCSV(t, tsv)

	observations, err := newTestLoader("\t").Load(path)
	require.NoError(t, err)
	require.Len(t, observations, 1)
	assert.Equal(t, 100.0, observations[0].Value)
}

func TestLoader_Load_NaNTokenIsMissing(t *testing.T) {
	// ParseFloat accepts literal NaN tokens; they must be coerced to missing
	// so no NaN ever reaches the cleaned dataset
	csv := "geo,TIME_PERIOD,OBS_VALUE,c_resid\nPL,2023-01,NaN,Total\nPL,2023-02,nan,Total\nPL,2023-03,100,Total\n"
	path := writeTempCSV(t, csv)

	observations, err := newTestLoader(",").Load(path)
	require.NoError(t, err)
	require.Len(t, observations, 3)

	assert.True(t, observations[0].Missing)
	assert.True(t, observations[1].Missing)
	assert.False(t, observations[2].Missing)

	ds, stats := cleaned(t, observations)
	assert.Equal(t, 2, stats.DroppedMissing)
	for _, obs := range ds.Observations {
		assert.False(t, math.IsNaN(obs.Value))
		assert.GreaterOrEqual(t, obs.Value, 0.0)
	}
}

func TestLoader_Load_EmptyDelimiterDefaultsToComma(t *testing.T) {
	csv := "geo,TIME_PERIOD,OBS_VALUE,c_resid\nPL,2023-01,100,Total\n"
	path := writeTempCSV(t, csv)

	observations, err := newTestLoader("").Load(path)
	require.NoError(t, err)
	require.Len(t, observations, 1)
	assert.Equal(t, 100.0, observations[0].Value)
}

func TestLoader_Load_NegativeValueSurvivesLoad(t *testing.T) {
	// Negative values are the filter's job, not the loader's
	csv := "geo,TIME_PERIOD,OBS_VALUE,c_resid\nPL,2023-01,-5,Total\n"
	path := writeTempCSV(t, csv)

	observations, err := newTestLoader(",").Load(path)
	require.NoError(t, err)
	require.Len(t, observations, 1)
	assert.Equal(t, -5.0, observations[0].Value)
	assert.False(t, observations[0].Missing)
}
