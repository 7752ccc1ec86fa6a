package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Noyack/webapp-sub003/internal/calculation"
	"github.com/Noyack/webapp-sub003/internal/compare"
	"github.com/Noyack/webapp-sub003/internal/costofliving"
	"github.com/Noyack/webapp-sub003/internal/transform"
	"github.com/spf13/cobra"
)

type compareOptions struct {
	planFlags
	with          string
	transforms    []string
	format        string
	listTemplates bool
}

func newCompareCmd(root *rootOptions) *cobra.Command {
	opts := &compareOptions{}

	cmd := &cobra.Command{
		Use:   "compare [plan-file]",
		Short: "Compare a plan against what-if variants",
		Long: `Compare a base plan against alternative strategies. Every variant is
simulated with the same seed, so differences come from the plan change and
not from sampling noise.

Examples:
  nestegg compare plan.yaml --with retire_1yr_later,save_500_more
  nestegg compare plan.yaml --transform scale_expenses:percent=-15 --format csv
  nestegg compare --list-templates
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.listTemplates {
				fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
				return nil
			}
			if len(args) == 0 {
				return errors.New("plan file required for comparison (use --list-templates to see available templates)")
			}
			return runCompare(cmd, root, opts, args[0])
		},
	}

	addPlanFlags(cmd, &opts.planFlags)
	cmd.Flags().StringVar(&opts.with, "with", "", "Comma-separated list of templates to compare")
	cmd.Flags().StringArrayVarP(&opts.transforms, "transform", "t", nil, "Transform spec name:key=value (repeatable)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "table", "Output format (table, csv, json)")
	cmd.Flags().BoolVar(&opts.listTemplates, "list-templates", false, "List all available templates")
	return cmd
}

func runCompare(cmd *cobra.Command, root *rootOptions, opts *compareOptions, path string) error {
	templates := transform.ParseTemplateList(opts.with)
	if len(templates) == 0 && len(opts.transforms) == 0 {
		return errors.New("nothing to compare: use --with and/or --transform (or --list-templates)")
	}

	plan, _, err := loadPlan(cmd, path, &opts.planFlags)
	if err != nil {
		return err
	}

	col, _ := costofliving.Default().ForPlan(plan)
	logger := newLogger(cmd.ErrOrStderr(), root.debug)

	// engine built only to resolve the plan's model and policy overrides
	planEngine := calculation.EngineForPlan(plan)
	compareEngine := compare.NewCompareEngine(planEngine.Config(),
		calculation.WithMarketModel(planEngine.MarketModel()),
		calculation.WithPolicy(planEngine.Policy()),
		calculation.WithLogger(logger),
	)

	comparisonSet, err := compareEngine.Compare(cmd.Context(), plan.Inputs, col, compare.CompareOptions{
		PlanName:   plan.Name,
		Templates:  templates,
		Specs:      opts.transforms,
		ConfigPath: path,
	})
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	out := cmd.OutOrStdout()
	switch strings.ToLower(opts.format) {
	case "csv":
		formatted, err := (&compare.CSVFormatter{}).Format(comparisonSet)
		if err != nil {
			return fmt.Errorf("failed to format CSV: %w", err)
		}
		fmt.Fprint(out, formatted)
	case "json":
		formatted, err := (&compare.JSONFormatter{Pretty: true}).Format(comparisonSet)
		if err != nil {
			return fmt.Errorf("failed to format JSON: %w", err)
		}
		fmt.Fprintln(out, formatted)
	case "table", "console", "":
		fmt.Fprint(out, (&compare.TableFormatter{}).Format(comparisonSet))
	default:
		return fmt.Errorf("unknown output format: %s (valid: table, csv, json)", opts.format)
	}
	return nil
}
