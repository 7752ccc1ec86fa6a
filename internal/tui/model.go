package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/Noyack/webapp-sub003/internal/calculation"
	"github.com/Noyack/webapp-sub003/internal/config"
	"github.com/Noyack/webapp-sub003/internal/costofliving"
	"github.com/Noyack/webapp-sub003/internal/domain"
)

// Model represents the entire application state
type Model struct {
	scene Scene

	// Terminal dimensions
	width  int
	height int

	// Plan and its resolved location data
	planPath  string
	settings  config.Settings
	plan      *domain.PlanConfiguration
	colIndex  decimal.Decimal
	colSource costofliving.Source
	baseline  calculation.WithdrawalBaseline

	// Current run
	numSimulations int
	seed           uint64
	runID          int
	run            *simulationRun
	done           int
	total          int
	progress       progress.Model

	// Last finished run
	results *domain.MonteCarloResults
	elapsed time.Duration

	keys   keyMap
	help   help.Model
	logger calculation.Logger

	err error
}

// NewModel creates a new application model for a plan file
func NewModel(planPath string) Model {
	return Model{
		scene:    SceneLoading,
		planPath: planPath,
		settings: config.DefaultSettings(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(50)),
		keys:     defaultKeyMap(),
		help:     help.New(),
		logger:   calculation.NopLogger{},
		width:    80,
		height:   24,
	}
}

// WithSettings fills unset plan fields from user preferences
func (m Model) WithSettings(s config.Settings) Model {
	m.settings = s
	return m
}

// WithLogger routes engine logging
func (m Model) WithLogger(l calculation.Logger) Model {
	if l != nil {
		m.logger = l
	}
	return m
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return loadPlanCmd(m.planPath, m.settings)
}

// Scene returns the screen currently shown
func (m Model) Scene() Scene { return m.scene }

// Results returns the last finished run, nil before the first completes
func (m Model) Results() *domain.MonteCarloResults { return m.results }

// NumSimulations returns the count used for the next run
func (m Model) NumSimulations() int { return m.numSimulations }

// Seed returns the seed of the current or last run
func (m Model) Seed() uint64 { return m.seed }

// Err returns the error being displayed, if any
func (m Model) Err() error { return m.err }

// startRun cancels any active run and starts a new one with the current
// simulation count and seed
func (m Model) startRun() (Model, tea.Cmd) {
	m.run.Stop()

	plan := *m.plan
	plan.Simulation.NumSimulations = m.numSimulations
	plan.Simulation.Seed = m.seed

	m.runID++
	m.run = startSimulation(m.runID, &plan, m.colIndex, m.logger)
	m.scene = SceneRunning
	m.done, m.total = 0, m.numSimulations
	m.err = nil

	return m, tea.Batch(m.progress.SetPercent(0), m.run.wait())
}
