package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootOptions are the persistent flags shared by every command
type rootOptions struct {
	debug bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "nestegg",
		Short: "Monte Carlo retirement planner",
		Long: `Simulate thousands of randomized market paths to estimate whether
retirement savings last through life expectancy.

Examples:
  nestegg simulate plan.yaml
  nestegg simulate plan.yaml --simulations 20000 --seed 42 --format html --output reports
  nestegg compare plan.yaml --with retire_1yr_later,save_500_more
  nestegg solve plan.yaml --goal 90 --target all
  nestegg col lookup CA "San Francisco"`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging on stderr")

	root.AddCommand(
		newSimulateCmd(opts),
		newValidateCmd(),
		newCompareCmd(opts),
		newSolveCmd(opts),
		newColCmd(),
		newConfigCmd(),
		newTemplatesCmd(),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "nestegg %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
