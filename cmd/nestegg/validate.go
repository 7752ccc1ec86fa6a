package main

import (
	"fmt"

	"github.com/Noyack/webapp-sub003/internal/calculation"
	"github.com/Noyack/webapp-sub003/internal/config"
	"github.com/Noyack/webapp-sub003/internal/costofliving"
	"github.com/Noyack/webapp-sub003/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [plan-file]",
		Short: "Validate a plan file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}

			col, source := costofliving.Default().ForPlan(plan)
			need := calculation.WithdrawalNeed(plan.Inputs, col)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Plan file %s is valid\n", args[0])
			fmt.Fprintf(out, "  Name:               %s\n", plan.Name)
			fmt.Fprintf(out, "  Horizon:            %d years (%d until retirement)\n",
				plan.Inputs.HorizonYears(), plan.Inputs.YearsToRetirement())
			fmt.Fprintf(out, "  Cost of living:     %s (%s)\n", col.StringFixed(1), source)
			fmt.Fprintf(out, "  Withdrawal need:    %s per year\n", output.FormatDollars(decimal.NewFromFloat(need.Needed)))
			fmt.Fprintf(out, "  Simulations:        %d\n", plan.Simulation.NumSimulations)
			return nil
		},
	}
}
