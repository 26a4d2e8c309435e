package main

import (
	"github.com/spf13/cobra"

	"github.com/utkrisht/uki/compiler/internal/term"
	"github.com/utkrisht/uki/compiler/internal/version"
)

func newVersionCmd() *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		// no config needed
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			if short {
				term.Wprintln(cmd.OutOrStdout(), version.String())
				return
			}
			term.Wprintf(cmd.OutOrStdout(), "%s", version.Details())
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "print only the version line")
	return cmd
}
