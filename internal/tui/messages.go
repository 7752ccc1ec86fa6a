package tui

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Noyack/webapp-sub003/internal/costofliving"
	"github.com/Noyack/webapp-sub003/internal/domain"
)

// Scene is the screen currently shown
type Scene int

const (
	SceneLoading Scene = iota
	SceneRunning
	SceneResults
)

// Message types for the Bubble Tea update cycle

// PlanLoadedMsg carries a parsed plan and its resolved cost of living
type PlanLoadedMsg struct {
	Plan              *domain.PlanConfiguration
	CostOfLivingIndex decimal.Decimal
	Source            costofliving.Source
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ProgressMsg reports finished simulations for one run
type ProgressMsg struct {
	RunID int
	Done  int
	Total int
}

// SimulationCompleteMsg signals a run has finished
type SimulationCompleteMsg struct {
	RunID   int
	Results *domain.MonteCarloResults
	Err     error
	Elapsed time.Duration
}
