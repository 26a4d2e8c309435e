package parser

import (
	"errors"
	"io"
	"log/slog"

	"github.com/utkrisht/uki/compiler/internal/ast"
	"github.com/utkrisht/uki/compiler/internal/diag"
	"github.com/utkrisht/uki/compiler/internal/lexer"
)

// Mode selects what the top level of a parse accepts.
type Mode int

const (
	// ModeProgram parses a script; import/export are rejected.
	ModeProgram Mode = iota
	// ModeModule collects top-level import/export and skips everything else.
	ModeModule
)

func (m Mode) String() string {
	if m == ModeModule {
		return "module"
	}
	return "program"
}

// Options configures a Parser. The zero value parses a program silently.
type Options struct {
	Mode   Mode
	Logger *slog.Logger
}

// ErrNoEOF is returned when the token slice is empty or does not end with
// EndOfFile. Tokenize never produces such a slice.
var ErrNoEOF = errors.New("parser: token slice must end with EndOfFile")

type Parser struct {
	toks  []lexer.Token
	pos   int
	diags *diag.List
	mode  Mode
	log   *slog.Logger

	errs    []*SyntaxError
	imports []*ast.Import
	exports []*ast.Export
}

// New returns a parser over tokens reporting into diags. A nil list is
// replaced by a private, non-emitting one.
func New(tokens []lexer.Token, diags *diag.List, opts Options) *Parser {
	if diags == nil {
		diags = diag.NewList(false, nil)
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Parser{toks: tokens, diags: diags, mode: opts.Mode, log: log}
}

// Parse builds a Program from tokens. Syntax errors are reported to diags
// and recovered from; the error result is only ErrNoEOF or a non-syntax
// failure.
func Parse(tokens []lexer.Token, diags *diag.List) (*ast.Program, error) {
	return New(tokens, diags, Options{}).Parse()
}

// ParseModule is Parse in ModeModule.
func ParseModule(tokens []lexer.Token, diags *diag.List) (*ast.Program, error) {
	return New(tokens, diags, Options{Mode: ModeModule}).Parse()
}

// Parse runs the parser to EndOfFile. A Parser is single-use.
func (p *Parser) Parse() (*ast.Program, error) {
	if n := len(p.toks); n == 0 || p.toks[n-1].Kind != lexer.TokEOF {
		return nil, ErrNoEOF
	}
	p.log.Debug("parse start", "tokens", len(p.toks), "mode", p.mode.String())

	prog := &ast.Program{Kind: ast.KindProgram}
	if p.mode == ModeModule {
		prog.Kind = ast.KindModule
	}
	for !p.at(lexer.TokEOF) {
		var (
			s   ast.Stmt
			err error
		)
		if p.mode == ModeModule {
			err = p.parseModuleItem()
		} else {
			s, err = p.parseDeclaration()
		}
		if err != nil {
			return nil, err
		}
		if s != nil {
			prog.Statements = append(prog.Statements, s)
		}
	}
	prog.Imports = p.imports
	prog.Exports = p.exports

	p.log.Debug("parse done",
		"statements", len(prog.Statements),
		"imports", len(prog.Imports),
		"exports", len(prog.Exports),
		"errors", len(p.errs))
	return prog, nil
}

// Errors returns the syntax errors raised so far, in order.
func (p *Parser) Errors() []*SyntaxError {
	out := make([]*SyntaxError, len(p.errs))
	copy(out, p.errs)
	return out
}

/*** token helpers ***/

func (p *Parser) cur() lexer.Token { return p.toks[p.pos] }

// kindAt looks off tokens ahead; past the end it reports EndOfFile.
func (p *Parser) kindAt(off int) lexer.TokKind {
	if i := p.pos + off; i < len(p.toks) {
		return p.toks[i].Kind
	}
	return lexer.TokEOF
}

func (p *Parser) at(kinds ...lexer.TokKind) bool {
	k := p.cur().Kind
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}

// next returns the current token and advances; the cursor never moves past
// the final EndOfFile.
func (p *Parser) next() lexer.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) accept(k lexer.TokKind) bool {
	if p.at(k) {
		p.next()
		return true
	}
	return false
}

func (p *Parser) expect(kinds ...lexer.TokKind) (lexer.Token, error) {
	if !p.at(kinds...) {
		return p.cur(), p.unexpected(kinds...)
	}
	return p.next(), nil
}

// atExpressionStart reports whether the current token can begin an
// expression. Minus is excluded so `a - b` is never read as a call.
func (p *Parser) atExpressionStart() bool {
	return p.at(
		lexer.TokNumber,
		lexer.TokString,
		lexer.TokRight,
		lexer.TokWrong,
		lexer.TokIdent,
		lexer.TokLParen,
		lexer.TokBang,
	)
}

// endStatement requires a statement terminator and consumes a NewLine.
// Dedent and EndOfFile are left for the enclosing block.
func (p *Parser) endStatement() error {
	if !p.cur().Kind.IsTerminator() {
		return p.unexpected(lexer.TokNewline, lexer.TokDedent, lexer.TokEOF)
	}
	p.accept(lexer.TokNewline)
	return nil
}
