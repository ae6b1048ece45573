package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/castsvg/castsvg"
	"github.com/spf13/cobra"
)

func themesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List the built-in color themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, name := range castsvg.ThemeNames() {
				preset, _ := castsvg.ThemePreset(name)
				fmt.Fprintf(w, "%s\t%s\n", name, preset)
			}
			return w.Flush()
		},
	}
}
