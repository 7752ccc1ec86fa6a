package main

import (
	"fmt"
	"strings"

	"github.com/Noyack/webapp-sub003/internal/breakeven"
	"github.com/Noyack/webapp-sub003/internal/calculation"
	"github.com/Noyack/webapp-sub003/internal/costofliving"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type solveOptions struct {
	planFlags
	target           string
	goal             float64
	maxContribution  float64
	maxSavings       float64
	maxExpenseCut    float64
	maxRetirementAge int
	format           string
}

func newSolveCmd(root *rootOptions) *cobra.Command {
	opts := &solveOptions{}

	cmd := &cobra.Command{
		Use:   "solve <plan-file>",
		Short: "Find the change that reaches a success goal",
		Long: `Search for the smallest change to one plan lever that reaches the goal
success probability. Targets: contribution (extra monthly saving), savings
(lump sum added today), expenses (percent cut), retirement_age, or all.

Examples:
  nestegg solve plan.yaml --goal 90
  nestegg solve plan.yaml --target retirement_age --max-retirement-age 70
  nestegg solve plan.yaml --target all --format json
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, root, opts, args[0])
		},
	}

	addPlanFlags(cmd, &opts.planFlags)
	cmd.Flags().StringVar(&opts.target, "target", string(breakeven.TargetContribution), "Lever to solve for (contribution, savings, expenses, retirement_age, all)")
	cmd.Flags().Float64Var(&opts.goal, "goal", 90, "Required success probability in percent")
	cmd.Flags().Float64Var(&opts.maxContribution, "max-contribution", 0, "Largest extra monthly contribution to try")
	cmd.Flags().Float64Var(&opts.maxSavings, "max-savings", 0, "Largest lump sum to add to savings")
	cmd.Flags().Float64Var(&opts.maxExpenseCut, "max-expense-cut", 0, "Largest expense cut in percent")
	cmd.Flags().IntVar(&opts.maxRetirementAge, "max-retirement-age", 0, "Latest retirement age to try")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "table", "Output format (table, json)")
	return cmd
}

func (o *solveOptions) constraints() breakeven.Constraints {
	var c breakeven.Constraints
	if o.maxContribution > 0 {
		v := decimal.NewFromFloat(o.maxContribution)
		c.MaxExtraContribution = &v
	}
	if o.maxSavings > 0 {
		v := decimal.NewFromFloat(o.maxSavings)
		c.MaxExtraSavings = &v
	}
	if o.maxExpenseCut > 0 {
		v := decimal.NewFromFloat(o.maxExpenseCut)
		c.MaxExpenseCut = &v
	}
	if o.maxRetirementAge > 0 {
		age := o.maxRetirementAge
		c.MaxRetirementAge = &age
	}
	return c
}

func runSolve(cmd *cobra.Command, root *rootOptions, opts *solveOptions, path string) error {
	format := strings.ToLower(opts.format)
	if format != "table" && format != "json" {
		return fmt.Errorf("unknown output format %q (valid: table, json)", opts.format)
	}

	all := opts.target == "all"
	var target breakeven.SolveTarget
	if !all {
		t, err := breakeven.ParseTarget(opts.target)
		if err != nil {
			return err
		}
		target = t
	}

	plan, _, err := loadPlan(cmd, path, &opts.planFlags)
	if err != nil {
		return err
	}

	col, _ := costofliving.Default().ForPlan(plan)
	logger := newLogger(cmd.ErrOrStderr(), root.debug)

	planEngine := calculation.EngineForPlan(plan)
	solver := breakeven.NewDefaultSolver(planEngine.Config(),
		calculation.WithMarketModel(planEngine.MarketModel()),
		calculation.WithPolicy(planEngine.Policy()),
		calculation.WithLogger(logger),
	)

	req := breakeven.SolveRequest{
		Inputs:            plan.Inputs,
		CostOfLivingIndex: col,
		Target:            target,
		Goal:              decimal.NewFromFloat(opts.goal),
		Constraints:       opts.constraints(),
	}

	out := cmd.OutOrStdout()
	tf := &breakeven.TableFormatter{}
	jf := &breakeven.JSONFormatter{Pretty: true}

	if all {
		multi, err := solver.SolveAll(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("solve failed: %w", err)
		}
		if format == "json" {
			formatted, err := jf.FormatMulti(multi)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, formatted)
			return nil
		}
		fmt.Fprint(out, tf.FormatMulti(multi))
		return nil
	}

	result, err := solver.Solve(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("solve failed: %w", err)
	}
	if format == "json" {
		formatted, err := jf.Format(result)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, formatted)
		return nil
	}
	fmt.Fprint(out, tf.Format(result))
	return nil
}
