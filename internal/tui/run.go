package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/Noyack/webapp-sub003/internal/calculation"
	"github.com/Noyack/webapp-sub003/internal/config"
	"github.com/Noyack/webapp-sub003/internal/costofliving"
	"github.com/Noyack/webapp-sub003/internal/domain"
)

// progressBuffer bounds queued progress updates; the engine reports at most
// once per percent so a full buffer only drops intermediate frames.
const progressBuffer = 128

// loadPlanCmd parses the plan and resolves its cost-of-living index
func loadPlanCmd(path string, settings config.Settings) tea.Cmd {
	return func() tea.Msg {
		plan, err := config.NewInputParser().WithSettings(settings).LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		index, source := costofliving.Default().ForPlan(plan)
		return PlanLoadedMsg{Plan: plan, CostOfLivingIndex: index, Source: source}
	}
}

// simulationRun is one engine run executing in the background. Progress and
// completion arrive on separate channels so the completion send never blocks.
type simulationRun struct {
	id       int
	cancel   context.CancelFunc
	progress chan ProgressMsg
	done     chan SimulationCompleteMsg
}

// startSimulation launches the engine for a plan. The caller reads results
// through wait.
func startSimulation(id int, plan *domain.PlanConfiguration, colIndex decimal.Decimal, logger calculation.Logger) *simulationRun {
	ctx, cancel := context.WithCancel(context.Background())
	r := &simulationRun{
		id:       id,
		cancel:   cancel,
		progress: make(chan ProgressMsg, progressBuffer),
		done:     make(chan SimulationCompleteMsg, 1),
	}

	engine := calculation.EngineForPlan(plan,
		calculation.WithLogger(logger),
		calculation.WithProgress(func(done, total int) {
			select {
			case r.progress <- ProgressMsg{RunID: id, Done: done, Total: total}:
			default:
			}
		}),
	)

	go func() {
		start := time.Now()
		results, err := engine.Run(ctx, plan.Inputs, colIndex)
		r.done <- SimulationCompleteMsg{
			RunID:   id,
			Results: results,
			Err:     err,
			Elapsed: time.Since(start),
		}
	}()
	return r
}

// wait returns a command that delivers the next update from the run
func (r *simulationRun) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-r.progress:
			return msg
		case msg := <-r.done:
			return msg
		}
	}
}

// Stop cancels the run; pending updates are discarded by run id
func (r *simulationRun) Stop() {
	if r != nil {
		r.cancel()
	}
}
