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
	"flag"
	"fmt"
	"os"
	"time"
)

func main() {
	// Define command-line flags
	configPath := flag.String("config", "", "Path to configuration file")
	dataPath := flag.String("data", "", "Path to the nights CSV file (overrides config)")
	outputDir := flag.String("output", "", "Output directory for report artifacts (overrides config)")
	topN := flag.Int("top", 0, "Number of destinations per ranking (overrides config)")
	interactive := flag.Bool("interactive", false, "Browse entities in an interactive terminal viewer")
	debug := flag.Bool("debug", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Parse()

	// Show version and exit
	if *showVersion {
		fmt.Printf("tass %s\n", GetVersion())
		os.Exit(0)
	}

	// Initialize logger
	logger := NewLogger(*debug)
	logger.Info("Starting tass", "version", GetVersion())

	// Load configuration
	config, err := LoadConfig(*configPath)
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Override with command-line flags
	if *dataPath != "" {
		config.DataPath = *dataPath
	}
	if *outputDir != "" {
		config.OutputDir = *outputDir
	}
	if *topN != 0 {
		config.TopN = *topN
	}
	if *debug {
		config.Debug = true
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Configuration loaded successfully", "data_path", config.DataPath)

	if *interactive {
		if err := RunViewer(config, logger); err != nil {
			logger.Error("Interactive viewer failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := runBatch(config, logger); err != nil {
		logger.Error("Analysis failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Analysis completed successfully", "output_dir", config.OutputDir)
}

// runBatch executes the full pipeline and writes every output artifact
func runBatch(config *Config, logger *Logger) error {
	// Initialize storage
	storage, err := NewStorage(config.OutputDir, logger)
	if err != nil {
		return err
	}

	// Load and clean the source data
	loader := NewLoader(config, logger)
	raw, err := loader.Load(config.DataPath)
	if err != nil {
		return err
	}

	cleaner := NewCleaner(logger)
	dataset, stats := cleaner.Clean(raw)

	// Aggregate seasonality and rank destinations
	analyzer := NewAnalyzer(logger)
	records, profiles := analyzer.Analyze(dataset)

	ranker := NewRanker(logger)
	top, err := ranker.TopDestinations(dataset, config.TopN)
	if err != nil {
		return err
	}

	result := &AnalysisResult{
		GeneratedAt:     time.Now(),
		SourcePath:      config.DataPath,
		RowsRead:        stats.RowsIn,
		FilterStats:     stats,
		Records:         records,
		Profiles:        profiles,
		TopDestinations: top,
	}

	// Persist the computed layer
	if _, err := storage.SaveAnalysisResult(result); err != nil {
		logger.Warn("Failed to save analysis snapshot", "error", err)
	}
	if _, err := storage.SaveSeasonalityCSV(records); err != nil {
		logger.Warn("Failed to export seasonality CSV", "error", err)
	}

	// Render charts
	generator := NewChartGenerator(config.ChartTheme)
	renderBatchCharts(generator, storage, logger, dataset, records, profiles, top)

	// Narrative commentary to stdout and file
	reporter := NewReporter(logger)
	narrative := reporter.GenerateNarrative(profiles, top)
	logger.UserMessage("%s", narrative)
	if _, err := storage.SaveNarrative(narrative); err != nil {
		logger.Warn("Failed to save commentary", "error", err)
	}

	// Markdown report
	return reporter.GenerateReport(result, storage.ReportPath())
}

// renderBatchCharts writes the batch chart set: seasonality lines for the
// most seasonal entities, one ranking bar chart per category, and the trend
// chart for the overall top destination. Chart failures are reported but do
// not abort the run.
func renderBatchCharts(generator *ChartGenerator, storage *Storage, logger *Logger, dataset *CleanedDataset, records []SeasonalityRecord, profiles []SeasonalityProfile, top map[string][]RankedDestination) {
	charted := make(map[string]bool)
	for _, p := range topProfiles(sortProfilesByIndex(profiles), narrativeListSize) {
		if charted[p.Entity] {
			continue
		}
		charted[p.Entity] = true

		png, err := generator.GenerateSeasonalityChart(records, p.Entity)
		if err != nil {
			logger.Warn("Failed to render seasonality chart", "entity", p.Entity, "error", err)
			continue
		}
		if _, err := storage.SaveChart("seasonality_"+p.Entity, png); err != nil {
			logger.Warn("Failed to save seasonality chart", "entity", p.Entity, "error", err)
		}
	}

	var leader string
	var leaderNights float64
	for _, category := range sortedCategories(top) {
		ranked := top[category]
		png, err := generator.GenerateTopDestinationsChart(category, ranked)
		if err != nil {
			logger.Warn("Failed to render destinations chart", "category", category, "error", err)
		} else if _, err := storage.SaveChart("top_destinations_"+category, png); err != nil {
			logger.Warn("Failed to save destinations chart", "category", category, "error", err)
		}

		if len(ranked) > 0 && ranked[0].TotalNights > leaderNights {
			leader = ranked[0].Entity
			leaderNights = ranked[0].TotalNights
		}
	}

	if leader != "" {
		png, err := generator.GenerateTrendChart(dataset, leader)
		if err != nil {
			logger.Warn("Failed to render trend chart", "entity", leader, "error", err)
			return
		}
		if _, err := storage.SaveChart("trend_"+leader, png); err != nil {
			logger.Warn("Failed to save trend chart", "entity", leader, "error", err)
		}
	}
}
