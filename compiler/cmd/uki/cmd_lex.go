package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/utkrisht/uki/compiler/internal/diag"
	"github.com/utkrisht/uki/compiler/internal/lexer"
	"github.com/utkrisht/uki/compiler/internal/term"
)

func newLexCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lex <file>",
		Short: "Print the token stream of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			src := string(data)
			r := a.renderer(cmd)
			r.SetSource(path, src, a.cfg.Diagnostics.Context)
			diags := diag.NewList(false, r)

			out := cmd.OutOrStdout()
			for _, t := range lexer.Tokenize(src, diags) {
				switch t.Kind {
				case lexer.TokEOF, lexer.TokNewline, lexer.TokIndent, lexer.TokDedent:
					term.Wprintf(out, "%4d  %s\n", t.Line, t.Kind)
				default:
					lex := shorten(t.Lex, 40)
					term.Wprintf(out, "%4d  %-24s %q\n", t.Line, t.Kind, lex)
				}
			}
			a.log.Debug("lexed", "file", path, "diagnostics", diags.Len())

			if !diags.HasErrors() {
				return nil
			}
			for _, d := range diags.Items() {
				r.Print(d)
			}
			return errDiagnostics
		},
	}
}

// shorten cuts s to at most n runes, marking the cut with "...".
func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
