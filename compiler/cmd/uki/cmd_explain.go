package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/utkrisht/uki/compiler/internal/diag"
	"github.com/utkrisht/uki/compiler/internal/term"
)

func newExplainCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "explain [code|key]",
		Short: "Describe a diagnostic code, or list all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := diag.LoadError(); err != nil {
				return fmt.Errorf("diagnostic catalog: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				for _, r := range diag.Entries() {
					term.Wprintf(out, "%s  %-32s %s\n", r.Entry.ID, r.Key, r.Entry.Title)
				}
				return nil
			}
			r, ok := diag.Find(args[0])
			if !ok {
				return fmt.Errorf("unknown diagnostic %q", args[0])
			}
			term.Wprintf(out, "%s (%s/%s): %s\n", r.Entry.ID, r.Domain, r.Key, r.Entry.Title)
			if r.Entry.Help != "" {
				term.Wprintf(out, "\n%s\n", r.Entry.Help)
			}
			return nil
		},
	}
}
