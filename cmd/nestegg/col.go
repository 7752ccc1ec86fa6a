package main

import (
	"fmt"
	"strings"

	"github.com/Noyack/webapp-sub003/internal/costofliving"
	"github.com/spf13/cobra"
)

func newColCmd() *cobra.Command {
	col := &cobra.Command{
		Use:   "col",
		Short: "Inspect the cost-of-living index table",
		Long:  "Cost-of-living indexes scale withdrawal needs; 100 is the national average.",
	}

	var state string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List state and city indexes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := strings.ToUpper(strings.TrimSpace(state))
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-6s %-24s %8s\n", "State", "City", "Index")
			fmt.Fprintln(out, strings.Repeat("-", 40))
			rows := 0
			for _, e := range costofliving.Default().List() {
				if filter != "" && e.State != filter {
					continue
				}
				fmt.Fprintf(out, "%-6s %-24s %8s\n", e.State, e.City, e.Index.StringFixed(1))
				rows++
			}
			if rows == 0 {
				return fmt.Errorf("no cost-of-living data for state %q", state)
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&state, "state", "", "Only list one state")

	lookupCmd := &cobra.Command{
		Use:   "lookup STATE [CITY]",
		Short: "Look up the index for a location",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			city := ""
			if len(args) == 2 {
				city = args[1]
			}
			index, source := costofliving.Default().Lookup(args[0], city)
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", index.StringFixed(1), source)
			return nil
		},
	}

	col.AddCommand(listCmd, lookupCmd)
	return col
}
