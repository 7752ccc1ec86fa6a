package main

import (
	"fmt"

	"github.com/Noyack/webapp-sub003/internal/transform"
	"github.com/spf13/cobra"
)

func newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List what-if templates and transforms",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprint(out, transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Transforms (for --transform name:key=value):")
			for _, name := range transform.NewTransformRegistry().List() {
				fmt.Fprintf(out, "  %s\n", name)
			}
		},
	}
}
