package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/utkrisht/uki/compiler/internal/ast"
	"github.com/utkrisht/uki/compiler/internal/term"
)

func newParseCmd(a *app) *cobra.Command {
	var (
		format string
		module bool
	)
	cmd := &cobra.Command{
		Use:   "parse [--format outline|yaml] [--module] <file>",
		Short: "Parse a file and print its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "outline" && format != "yaml" {
				return fmt.Errorf("unknown format %q (want outline or yaml)", format)
			}
			u, err := a.load(args[0], a.mode(module), a.renderer(cmd))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if format == "yaml" {
				if err := ast.EncodeYAML(out, u.Program); err != nil {
					return err
				}
			} else {
				term.Wprintf(out, "%s", ast.Dump(u.Program))
			}
			if !u.OK() {
				return errDiagnostics
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "outline", "output format: outline or yaml")
	cmd.Flags().BoolVar(&module, "module", false, "parse as a module (collect import/export only)")
	return cmd
}
