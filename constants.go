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

const (
	// ColumnEntity is the header of the geographic/administrative code column
	ColumnEntity = "geo"

	// ColumnPeriod is the header of the calendar-month column (YYYY-MM)
	ColumnPeriod = "TIME_PERIOD"

	// ColumnValue is the header of the nights-count column
	ColumnValue = "OBS_VALUE"

	// ColumnCategory is the header of the visitor-residency column
	ColumnCategory = "c_resid"

	// periodLayout is the strict format TIME_PERIOD values must parse under
	periodLayout = "2006-01"

	// monthsPerYear is the number of monthly records a calendar year needs
	// to count as complete
	monthsPerYear = 12

	// DefaultTopN is the default number of destinations per ranking
	DefaultTopN = 10

	// narrativeListSize is the number of entries in each narrative section
	narrativeListSize = 5
)

// Seasonality character thresholds on the seasonality index
const (
	strongSeasonalityThreshold = 3.0
	lowSeasonalityThreshold    = 2.0
)

// Seasonality character labels
const (
	CharacterStrong   = "strong"
	CharacterModerate = "moderate"
	CharacterLow      = "low"
)

// monthNames maps month numbers (1-12) to full names; index 0 is unused
var monthNames = [13]string{
	"",
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// monthAbbrevs maps month numbers (1-12) to chart axis labels; index 0 is unused
var monthAbbrevs = [13]string{
	"",
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}
