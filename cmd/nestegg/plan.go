package main

import (
	"fmt"
	"strings"

	"github.com/Noyack/webapp-sub003/internal/config"
	"github.com/Noyack/webapp-sub003/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// planFlags override plan and preference values from the command line
type planFlags struct {
	simulations int
	seed        uint64
	workers     int
	state       string
	city        string
	col         float64
}

func addPlanFlags(cmd *cobra.Command, pf *planFlags) {
	cmd.Flags().IntVarP(&pf.simulations, "simulations", "n", 0, "Number of Monte Carlo simulations (overrides plan and preferences)")
	cmd.Flags().Uint64Var(&pf.seed, "seed", 0, "Random seed; 0 picks a new one")
	cmd.Flags().IntVarP(&pf.workers, "workers", "w", 0, "Parallel workers (default: number of CPUs)")
	cmd.Flags().StringVar(&pf.state, "state", "", "Two-letter state code for cost-of-living lookup")
	cmd.Flags().StringVar(&pf.city, "city", "", "City for cost-of-living lookup")
	cmd.Flags().Float64Var(&pf.col, "col", 0, "Explicit cost-of-living index (100 = national average)")
}

// loadPlan reads a plan file, layering preferences under it and flags over it
func loadPlan(cmd *cobra.Command, path string, pf *planFlags) (*domain.PlanConfiguration, config.Settings, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, settings, err
	}

	parser := config.NewInputParser().WithSettings(settings)
	plan, err := parser.LoadFromFile(path)
	if err != nil {
		return nil, settings, err
	}

	flags := cmd.Flags()
	if flags.Changed("simulations") {
		plan.Simulation.NumSimulations = pf.simulations
	}
	if flags.Changed("seed") {
		plan.Simulation.Seed = pf.seed
	}
	if flags.Changed("workers") {
		plan.Simulation.Workers = pf.workers
	}
	if flags.Changed("state") {
		plan.Location = &domain.Location{
			State: strings.ToUpper(strings.TrimSpace(pf.state)),
			City:  strings.TrimSpace(pf.city),
		}
	} else if flags.Changed("city") && plan.Location != nil {
		plan.Location.City = strings.TrimSpace(pf.city)
	}
	if flags.Changed("col") {
		col := decimal.NewFromFloat(pf.col)
		plan.CostOfLivingIndex = &col
	}

	if err := parser.ValidateConfiguration(plan); err != nil {
		return nil, settings, fmt.Errorf("invalid command line override: %w", err)
	}
	return plan, settings, nil
}
