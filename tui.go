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
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Viewer styles
var (
	viewerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("205"))

	viewerPaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	viewerStatusStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241"))

	viewerSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39"))

	viewerLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))
)

// viewerSnapshot is the immutable computed layer the viewer reads from.
// Reselecting an entity only re-derives that entity's view; reloading
// replaces the whole snapshot.
type viewerSnapshot struct {
	dataset  *CleanedDataset
	records  []SeasonalityRecord
	profiles []SeasonalityProfile
	stats    FilterStats
	rowsRead int
}

type snapshotLoadedMsg struct {
	snapshot *viewerSnapshot
}

type snapshotErrMsg struct {
	err error
}

type chartsSavedMsg struct {
	entity string
	err    error
}

// entityItem is one entry of the entity picker
type entityItem struct {
	entity string
	total  float64
}

func (i entityItem) Title() string       { return i.entity }
func (i entityItem) Description() string { return FormatNights(i.total) + " nights total" }
func (i entityItem) FilterValue() string { return i.entity }

// ViewerModel is the interactive surface: an entity picker on the left and
// the selected entity's statistics on the right
type ViewerModel struct {
	config    *Config
	logger    *Logger
	storage   *Storage
	analyzer  *Analyzer
	generator *ChartGenerator

	list     list.Model
	stats    viewport.Model
	snapshot *viewerSnapshot
	selected string
	status   string
	ready    bool
	width    int
	height   int
}

// RunViewer starts the interactive terminal viewer
func RunViewer(config *Config, logger *Logger) error {
	storage, err := NewStorage(config.OutputDir, logger)
	if err != nil {
		return err
	}

	model := NewViewerModel(config, logger, storage)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

// NewViewerModel creates the viewer model
func NewViewerModel(config *Config, logger *Logger, storage *Storage) ViewerModel {
	delegate := list.NewDefaultDelegate()
	entityList := list.New(nil, delegate, 0, 0)
	entityList.Title = "Entities"
	entityList.SetShowStatusBar(false)

	return ViewerModel{
		config:    config,
		logger:    logger,
		storage:   storage,
		analyzer:  NewAnalyzer(logger),
		generator: NewChartGenerator(config.ChartTheme),
		list:      entityList,
		stats:     viewport.New(0, 0),
		status:    "Loading data...",
	}
}

// Init starts the initial data load
func (m ViewerModel) Init() tea.Cmd {
	return m.loadSnapshot()
}

// loadSnapshot reruns the pipeline from the source file and produces a
// fresh snapshot, fully replacing the previous one
func (m ViewerModel) loadSnapshot() tea.Cmd {
	config := m.config
	logger := m.logger
	return func() tea.Msg {
		loader := NewLoader(config, logger)
		raw, err := loader.Load(config.DataPath)
		if err != nil {
			return snapshotErrMsg{err: err}
		}

		cleaner := NewCleaner(logger)
		dataset, stats := cleaner.Clean(raw)
		if len(dataset.Observations) == 0 {
			return snapshotErrMsg{err: &DataError{
				DataType: "dataset",
				Message:  "no valid observations in " + config.DataPath,
			}}
		}

		analyzer := NewAnalyzer(logger)
		records, profiles := analyzer.Analyze(dataset)

		return snapshotLoadedMsg{snapshot: &viewerSnapshot{
			dataset:  dataset,
			records:  records,
			profiles: profiles,
			stats:    stats,
			rowsRead: stats.RowsIn,
		}}
	}
}

// saveEntityCharts renders and writes the selected entity's charts
func (m ViewerModel) saveEntityCharts(entity string) tea.Cmd {
	snapshot := m.snapshot
	generator := m.generator
	storage := m.storage
	return func() tea.Msg {
		png, err := generator.GenerateSeasonalityChart(snapshot.records, entity)
		if err == nil {
			_, err = storage.SaveChart("seasonality_"+entity, png)
		}
		if err != nil {
			return chartsSavedMsg{entity: entity, err: err}
		}

		png, err = generator.GenerateTrendChart(snapshot.dataset, entity)
		if err == nil {
			_, err = storage.SaveChart("trend_"+entity, png)
		}
		return chartsSavedMsg{entity: entity, err: err}
	}
}

// Update handles messages
func (m ViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		return m, nil

	case snapshotLoadedMsg:
		m.snapshot = msg.snapshot
		items := m.buildItems()
		cmd := m.list.SetItems(items)
		m.status = fmt.Sprintf("Loaded %d entities (%d rows kept of %d read)",
			len(items), msg.snapshot.stats.RowsKept, msg.snapshot.rowsRead)
		if msg.snapshot.stats.YearFilterSkipped {
			m.status += " - no complete year, all valid rows kept"
		}
		m.selected = ""
		m.refreshStats()
		return m, cmd

	case snapshotErrMsg:
		m.status = "Load failed: " + msg.err.Error()
		m.stats.SetContent(viewerStatusStyle.Render("No data loaded.\n\nPress r to retry."))
		return m, nil

	case chartsSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Chart export for %s failed: %v", msg.entity, msg.err)
		} else {
			m.status = fmt.Sprintf("Charts for %s written to %s", msg.entity, m.config.OutputDir)
		}
		return m, nil

	case tea.KeyMsg:
		// While the picker filter is active, every key belongs to it
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.status = "Reloading data..."
			return m, m.loadSnapshot()
		case "c":
			if m.snapshot != nil && m.selected != "" {
				m.status = "Rendering charts for " + m.selected + "..."
				return m, m.saveEntityCharts(m.selected)
			}
			return m, nil
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	m.stats, cmd = m.stats.Update(msg)
	cmds = append(cmds, cmd)

	m.refreshStats()

	return m, tea.Batch(cmds...)
}

// resize distributes the window between the picker and the stats panel
func (m *ViewerModel) resize() {
	listWidth := m.width / 3
	if listWidth < 24 {
		listWidth = 24
	}
	statsWidth := m.width - listWidth - 6
	paneHeight := m.height - 4

	m.list.SetSize(listWidth, paneHeight)
	m.stats.Width = statsWidth
	m.stats.Height = paneHeight
	m.refreshStats()
}

// buildItems creates the picker entries, one per entity with its total nights
func (m *ViewerModel) buildItems() []list.Item {
	totals := make(map[string]float64)
	for _, obs := range m.snapshot.dataset.Observations {
		totals[obs.Entity] += obs.Value
	}

	entities := m.snapshot.dataset.Entities()
	items := make([]list.Item, 0, len(entities))
	for _, entity := range entities {
		items = append(items, entityItem{entity: entity, total: totals[entity]})
	}
	return items
}

// refreshStats re-derives the stats panel when the selection changed
func (m *ViewerModel) refreshStats() {
	if m.snapshot == nil {
		return
	}

	item, ok := m.list.SelectedItem().(entityItem)
	if !ok {
		return
	}
	if item.entity == m.selected {
		return
	}
	m.selected = item.entity

	stats, err := m.analyzer.EntityStats(m.snapshot.dataset, m.snapshot.records, m.snapshot.profiles, item.entity)
	if err != nil {
		m.stats.SetContent(viewerStatusStyle.Render("No data for " + item.entity))
		return
	}

	m.stats.SetContent(renderEntityStats(stats))
	m.stats.GotoTop()
}

// View renders the viewer
func (m ViewerModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	panes := lipgloss.JoinHorizontal(
		lipgloss.Top,
		viewerPaneStyle.Render(m.list.View()),
		viewerPaneStyle.Render(m.stats.View()),
	)

	help := viewerStatusStyle.Render("r reload | c export charts | / filter | q quit")
	status := viewerStatusStyle.Render(m.status)

	return lipgloss.JoinVertical(lipgloss.Left, panes, status, help)
}

// renderEntityStats formats the per-entity statistics panel
func renderEntityStats(stats *EntityStats) string {
	var b strings.Builder

	b.WriteString(viewerTitleStyle.Render(stats.Entity) + "\n\n")

	b.WriteString(viewerSectionStyle.Render("Overview") + "\n")
	writeStatLine(&b, "Total nights", FormatNights(stats.TotalNights))
	writeStatLine(&b, "Monthly average", FormatNights(stats.AvgMonthlyTotal))
	writeStatLine(&b, "Data range", fmt.Sprintf("%d - %d", stats.FirstYear, stats.LastYear))
	writeStatLine(&b, "Years", fmt.Sprintf("%d", stats.YearCount))

	for _, cs := range stats.Categories {
		b.WriteString("\n" + viewerSectionStyle.Render(cs.Category) + "\n")
		writeStatLine(&b, "Total nights", FormatNights(cs.TotalNights))
		writeStatLine(&b, "Average", FormatNights(cs.MeanNights))
		writeStatLine(&b, "Maximum", FormatNights(cs.MaxNights))
		writeStatLine(&b, "Minimum", FormatNights(cs.MinNights))

		if cs.Profile == nil {
			continue
		}
		writeStatLine(&b, "Seasonality index", FormatIndex(cs.Profile.Index))
		writeStatLine(&b, "Character", describeCharacter(cs.Profile.Character))
		if cs.Peak != nil {
			writeStatLine(&b, "High season", fmt.Sprintf("%s (%s avg, std %s)",
				cs.Peak.MonthName(), FormatNights(cs.Peak.MeanNights), FormatNights(cs.Peak.StdNights)))
		}
		if cs.Low != nil {
			writeStatLine(&b, "Low season", fmt.Sprintf("%s (%s avg, std %s)",
				cs.Low.MonthName(), FormatNights(cs.Low.MeanNights), FormatNights(cs.Low.StdNights)))
		}
	}

	if len(stats.TopMonths) > 0 {
		b.WriteString("\n" + viewerSectionStyle.Render("Top months (multi-year average)") + "\n")
		for i, mr := range stats.TopMonths {
			b.WriteString(fmt.Sprintf("%d. %-3s  %12s  %s\n",
				i+1, monthAbbrevs[mr.Month], FormatNights(mr.MeanNights), mr.Category))
		}
	}

	return b.String()
}

func writeStatLine(b *strings.Builder, label, value string) {
	b.WriteString(viewerLabelStyle.Render(fmt.Sprintf("%-18s", label+":")) + " " + value + "\n")
}

// describeCharacter expands a character label for display
func describeCharacter(character string) string {
	switch character {
	case CharacterStrong:
		return "strong seasonality, holiday-driven"
	case CharacterLow:
		return "low seasonality, steady demand"
	default:
		return "moderate seasonality, mixed"
	}
}
