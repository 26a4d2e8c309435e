package main

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/utkrisht/uki/compiler/internal/ast"
	"github.com/utkrisht/uki/compiler/internal/build"
	"github.com/utkrisht/uki/compiler/internal/parser"
	"github.com/utkrisht/uki/compiler/internal/term"
)

const (
	promptMain = "uki> "
	promptCont = "...> "
	replName   = "<repl>"
)

func newReplCmd(a *app) *cobra.Command {
	var module bool
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Parse entries interactively and print their outline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ln := liner.NewLiner()
			defer ln.Close()
			ln.SetCtrlCAborts(true)

			hist := a.cfg.HistoryPath()
			if f, err := os.Open(hist); err == nil {
				_, _ = ln.ReadHistory(f)
				_ = f.Close()
			}
			defer func() {
				if f, err := os.Create(hist); err == nil {
					_, _ = ln.WriteHistory(f)
					_ = f.Close()
				}
			}()

			s := &repl{
				a:      a,
				mode:   a.mode(module),
				out:    cmd.OutOrStdout(),
				errOut: cmd.ErrOrStderr(),
				r:      a.renderer(cmd),
			}
			term.Wprintf(s.out, "Utkrisht %s mode. :help for commands, Ctrl-D to exit.\n", s.mode)
			s.loop(ln, ln.AppendHistory)
			return nil
		},
	}
	cmd.Flags().BoolVar(&module, "module", false, "parse entries as modules")
	return cmd
}

// prompter is the part of liner.State the loop needs.
type prompter interface {
	Prompt(prompt string) (string, error)
}

type repl struct {
	a          *app
	mode       parser.Mode
	out        io.Writer
	errOut     io.Writer
	r          *term.Renderer
	showTokens bool
}

// loop reads entries until end of input or :quit.
func (s *repl) loop(p prompter, record func(string)) {
	for {
		src, err := s.read(p)
		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			continue
		case err != nil:
			term.Wprintln(s.out)
			return
		}
		entry := strings.TrimSpace(src)
		if entry == "" {
			continue
		}
		if strings.HasPrefix(entry, ":") {
			if !s.command(entry) {
				return
			}
			continue
		}
		s.eval(src)
		if record != nil {
			record(strings.ReplaceAll(src, "\n", " "))
		}
	}
}

/*
read collects one entry. Lines are added while the source is incomplete:

	uki> when ready
	...>     show "go"
	...>

An empty line closes a pending block.
*/
func (s *repl) read(p prompter) (string, error) {
	var lines []string
	for {
		prompt := promptMain
		if len(lines) > 0 {
			prompt = promptCont
		}
		line, err := p.Prompt(prompt)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(line) == "" {
			if len(lines) == 0 {
				return "", nil
			}
			return strings.Join(lines, "\n"), nil
		}
		if len(lines) == 0 && strings.HasPrefix(strings.TrimSpace(line), ":") {
			return line, nil
		}
		lines = append(lines, line)
		src := strings.Join(lines, "\n")
		if !s.pending(src, line, len(lines)) {
			return src, nil
		}
	}
}

// pending reports whether src needs more lines: the parse stopped at the
// end of input, a multi-line string is still open, or the last line is an
// indented block line.
func (s *repl) pending(src, last string, n int) bool {
	if n > 1 && strings.HasPrefix(last, " ") {
		return true
	}
	u, err := build.LoadSource(replName, src, build.Options{Mode: s.mode})
	if err != nil {
		return false
	}
	if u.Incomplete() {
		return true
	}
	for _, d := range u.Diags.Items() {
		if d.Key == "unterminated_multiline_string" {
			return true
		}
	}
	return false
}

func (s *repl) eval(src string) {
	s.r.SetSource(replName, src, 0)
	u, err := build.LoadSource(replName, src, build.Options{
		Mode:    s.mode,
		Emit:    true,
		Printer: s.r,
		Logger:  s.a.log,
	})
	if err != nil {
		term.Wprintf(s.errOut, "error: %v\n", err)
		return
	}
	if s.showTokens {
		for _, t := range u.Tokens {
			term.Wprintf(s.out, "%4d  %s\n", t.Line, t)
		}
	}
	if u.OK() {
		term.Wprintf(s.out, "%s", ast.Dump(u.Program))
	}
}

// command runs a :command and reports whether the loop should go on.
func (s *repl) command(entry string) bool {
	switch strings.ToLower(strings.Fields(entry)[0]) {
	case ":quit", ":q", ":exit":
		return false
	case ":tokens":
		s.showTokens = !s.showTokens
		state := "off"
		if s.showTokens {
			state = "on"
		}
		term.Wprintf(s.out, "tokens %s\n", state)
	case ":help":
		term.Wprintln(s.out, ":tokens  toggle the token listing")
		term.Wprintln(s.out, ":quit    leave the repl")
	default:
		term.Wprintf(s.out, "unknown command %s, try :help\n", entry)
	}
	return true
}
