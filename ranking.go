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
	"strconv"
)

// Ranker computes the top destinations by accumulated nights, split by
// visitor category
type Ranker struct {
	logger *Logger
}

// NewRanker creates a new ranker
func NewRanker(logger *Logger) *Ranker {
	return &Ranker{
		logger: logger.WithComponent("ranker"),
	}
}

// TopDestinations returns, per visitor category present in the dataset, the
// top n entities by total summed nights across the whole retained range.
// Rows are sorted descending; ties keep the order entities were first
// encountered in the dataset. An empty dataset yields an empty map; a
// non-positive n is rejected outright.
func (r *Ranker) TopDestinations(ds *CleanedDataset, n int) (map[string][]RankedDestination, error) {
	if n <= 0 {
		return nil, &ValidationError{
			Field:   "top_n",
			Value:   strconv.Itoa(n),
			Message: "must be a positive number of destinations",
		}
	}

	type categoryEntity struct {
		category string
		entity   string
	}

	totals := make(map[categoryEntity]float64)
	order := make(map[string][]string) // category -> entities in first-seen order
	for _, obs := range ds.Observations {
		key := categoryEntity{obs.Category, obs.Entity}
		if _, seen := totals[key]; !seen {
			order[obs.Category] = append(order[obs.Category], obs.Entity)
		}
		totals[key] += obs.Value
	}

	result := make(map[string][]RankedDestination, len(order))
	for category, entities := range order {
		ranked := make([]RankedDestination, 0, len(entities))
		for _, entity := range entities {
			ranked = append(ranked, RankedDestination{
				Entity:      entity,
				TotalNights: totals[categoryEntity{category, entity}],
			})
		}

		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].TotalNights > ranked[j].TotalNights
		})

		if len(ranked) > n {
			ranked = ranked[:n]
		}
		for i := range ranked {
			ranked[i].Rank = i + 1
		}

		result[category] = ranked
		r.logger.LogRanking(category, len(ranked))
	}

	return result, nil
}
