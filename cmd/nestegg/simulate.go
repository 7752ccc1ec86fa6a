package main

import (
	"fmt"
	"strings"

	"github.com/Noyack/webapp-sub003/internal/calculation"
	"github.com/Noyack/webapp-sub003/internal/costofliving"
	"github.com/Noyack/webapp-sub003/internal/output"
	"github.com/spf13/cobra"
)

type simulateOptions struct {
	planFlags
	format    string
	outputDir string
	progress  bool
}

func newSimulateCmd(root *rootOptions) *cobra.Command {
	opts := &simulateOptions{}

	cmd := &cobra.Command{
		Use:   "simulate [plan-file]",
		Short: "Run a Monte Carlo simulation of a retirement plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd, root, opts, args[0])
		},
	}

	addPlanFlags(cmd, &opts.planFlags)
	cmd.Flags().StringVarP(&opts.format, "format", "f", "console",
		"Output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	cmd.Flags().StringVarP(&opts.outputDir, "output", "o", "", "Write the report to a timestamped file in this directory")
	cmd.Flags().BoolVar(&opts.progress, "progress", false, "Show simulation progress on stderr")
	return cmd
}

func runSimulate(cmd *cobra.Command, root *rootOptions, opts *simulateOptions, path string) error {
	plan, settings, err := loadPlan(cmd, path, &opts.planFlags)
	if err != nil {
		return err
	}

	format := opts.format
	if !cmd.Flags().Changed("format") && settings.Output.Format != "" {
		format = settings.Output.Format
	}
	formatter := output.GetFormatterByName(format)
	if formatter == nil {
		return fmt.Errorf("unknown output format %q (valid: %s)", format, strings.Join(output.AvailableFormatterNames(), ", "))
	}

	col, source := costofliving.Default().ForPlan(plan)
	logger := newLogger(cmd.ErrOrStderr(), root.debug)
	logger.Debugf("plan %q: cost of living index %s (%s)", plan.Name, col.StringFixed(1), source)

	engineOpts := []calculation.EngineOption{calculation.WithLogger(logger)}
	if opts.progress {
		errOut := cmd.ErrOrStderr()
		engineOpts = append(engineOpts, calculation.WithProgress(func(done, total int) {
			fmt.Fprintf(errOut, "\r  Simulating %d/%d", done, total)
		}))
	}

	engine := calculation.EngineForPlan(plan, engineOpts...)
	results, err := engine.Run(cmd.Context(), plan.Inputs, col)
	if opts.progress {
		fmt.Fprintln(cmd.ErrOrStderr())
	}
	if err != nil {
		return err
	}

	report := output.NewReport(plan.Name, plan.Inputs, col, engine, results)
	report.CostOfLivingSource = string(source)

	dir := opts.outputDir
	if dir == "" {
		dir = settings.Output.Directory
	}
	if dir != "" {
		written, err := output.WriteFormatted(formatter, report, dir)
		if err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", written)
		return nil
	}

	data, err := formatter.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
