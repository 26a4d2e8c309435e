// Package build runs the front end (tokenize, then parse) over one source
// file and collects everything the CLI needs to report on it.
package build

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/utkrisht/uki/compiler/internal/ast"
	"github.com/utkrisht/uki/compiler/internal/diag"
	"github.com/utkrisht/uki/compiler/internal/lexer"
	"github.com/utkrisht/uki/compiler/internal/parser"
)

// Options configures a load. The zero value parses a program without
// printing anything.
type Options struct {
	Mode    parser.Mode
	Emit    bool         // mirror diagnostics to Printer as they are reported
	Printer diag.Printer // nil means diag.PlainPrinter on stderr
	Logger  *slog.Logger
}

// Unit is one loaded source file.
type Unit struct {
	ID      uuid.UUID
	Path    string // as given, or the display name passed to LoadSource
	Source  string
	Tokens  []lexer.Token
	Program *ast.Program
	Diags   *diag.List
	Errors  []*parser.SyntaxError
}

// OK reports whether the unit has no diagnostics.
func (u *Unit) OK() bool { return !u.Diags.HasErrors() }

// Incomplete reports whether parsing stopped at the end of the source with a
// statement or block still open.
func (u *Unit) Incomplete() bool { return parser.IsIncomplete(u.Errors) }

// DisplayPath returns Path relative to the working directory when possible.
func (u *Unit) DisplayPath() string {
	wd, err := os.Getwd()
	if err != nil || !filepath.IsAbs(u.Path) {
		return u.Path
	}
	return rel(wd, u.Path)
}

// LoadFile reads path and runs LoadSource on its contents.
func LoadFile(path string, opts Options) (*Unit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return LoadSource(path, string(data), opts)
}

// LoadSource tokenizes and parses src. Diagnostics land in Unit.Diags; the
// error result is only for failures that are not diagnostics.
func LoadSource(name, src string, opts Options) (*Unit, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	u := &Unit{
		ID:     uuid.New(),
		Path:   name,
		Source: src,
		Diags:  diag.NewList(opts.Emit, opts.Printer),
	}
	log = log.With("unit", u.ID.String(), "file", name)

	u.Tokens = lexer.Tokenize(src, u.Diags)
	lexErrs := u.Diags.Len()
	log.Debug("tokenized", "tokens", len(u.Tokens), "diagnostics", lexErrs)

	p := parser.New(u.Tokens, u.Diags, parser.Options{Mode: opts.Mode, Logger: log})
	prog, err := p.Parse()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	u.Program = prog
	u.Errors = p.Errors()
	log.Debug("loaded", "lexer_diagnostics", lexErrs, "parser_diagnostics", u.Diags.Len()-lexErrs)
	return u, nil
}

func rel(root, p string) string {
	r, err := filepath.Rel(root, p)
	if err != nil {
		return p
	}
	return r
}
