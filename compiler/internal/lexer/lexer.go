package lexer

import (
	"fmt"

	"github.com/utkrisht/uki/compiler/internal/diag"
)

// Catalog keys for lexical diagnostics (see diag/codes.yaml).
const (
	keyStartIndent        = "start_indent"
	keyInconsistentIndent = "inconsistent_indent"
	keyMultiLevelIndent   = "multi_level_indent"
	keyTabIndent          = "tab_indent"
	keyStrayCR            = "stray_carriage_return"
	keyBigLetter          = "big_letter"
	keyInvalidChar        = "invalid_character"
)

// Lexer scans source into a materialized token slice, producing
// NEWLINE/INDENT/DEDENT from leading spaces.
//
// Indentation is a depth counter measured against one file-wide width: the
// first indented line fixes the width, and every later line must sit at a
// whole multiple of it. A file cannot mix widths.
type Lexer struct {
	src  []rune
	i    int
	line int

	indentWidth int // spaces per level; 0 until the first indented line
	depth       int // open indentation levels

	diags *diag.List
	toks  []Token
}

// New returns a lexer for src reporting into diags. A nil list is replaced
// by a private, non-emitting one.
func New(src string, diags *diag.List) *Lexer {
	if diags == nil {
		diags = diag.NewList(false, nil)
	}
	return &Lexer{src: []rune(src), line: 1, diags: diags}
}

// Tokenize scans src to completion. It never fails: lexical problems are
// reported to diags and the offending characters skipped. The result always
// ends with exactly one EndOfFile, and every Indent has a matching Dedent.
func Tokenize(src string, diags *diag.List) []Token {
	return New(src, diags).Run()
}

// Run scans the whole source. A Lexer is single-use.
func (lx *Lexer) Run() []Token {
	lx.skipPreamble()
	for !lx.atEOF() {
		lx.scanToken()
	}
	for lx.depth > 0 {
		lx.depth--
		lx.emit(TokDedent, "", lx.line)
	}
	lx.emit(TokEOF, "", lx.line)
	return lx.toks
}

// IndentWidth reports the file-wide indentation width (0 if never fixed).
func (lx *Lexer) IndentWidth() int { return lx.indentWidth }

func (lx *Lexer) peek() (rune, bool) {
	if lx.i >= len(lx.src) {
		return 0, false
	}
	return lx.src[lx.i], true
}

func (lx *Lexer) peekIs(r rune) bool {
	ch, ok := lx.peek()
	return ok && ch == r
}

func (lx *Lexer) peekDigit() bool {
	ch, ok := lx.peek()
	return ok && isDigit(ch)
}

func (lx *Lexer) match(expect rune) bool {
	if lx.peekIs(expect) {
		lx.i++
		return true
	}
	return false
}

func (lx *Lexer) atEOF() bool { return lx.i >= len(lx.src) }

func (lx *Lexer) make(kind TokKind, lex string, line int) Token {
	return Token{Kind: kind, Lex: lex, Lit: lex, Line: line}
}

func (lx *Lexer) emit(kind TokKind, lex string, line int) {
	lx.toks = append(lx.toks, lx.make(kind, lex, line))
}

func (lx *Lexer) errorf(key string, line int, format string, a ...any) {
	lx.diags.Report(diag.DomainLexer, key, line, fmt.Sprintf(format, a...))
}

// skipPreamble drops blank lines, comment-only lines and leading spaces
// before the first real token. Spaces right before that token are an error.
func (lx *Lexer) skipPreamble() {
	spaces := 0
	for {
		ch, ok := lx.peek()
		switch {
		case !ok:
			return
		case ch == ' ':
			spaces++
			lx.i++
		case ch == '\n':
			lx.i++
			lx.line++
			spaces = 0
		case ch == '\r':
			lx.i++
			if lx.match('\n') {
				lx.line++
				spaces = 0
			} else {
				lx.errorf(keyStrayCR, lx.line, "carriage return must be followed by a newline")
			}
		case ch == '#':
			spaces = 0
			lx.skipComment()
		default:
			if spaces != 0 {
				lx.errorf(keyStartIndent, lx.line, "invalid indentation at start of file")
			}
			return
		}
	}
}

func (lx *Lexer) skipComment() {
	for {
		ch, ok := lx.peek()
		if !ok || ch == '\n' {
			return
		}
		lx.i++
	}
}

func (lx *Lexer) single(kind TokKind) {
	lx.emit(kind, string(lx.src[lx.i]), lx.line)
	lx.i++
}

func (lx *Lexer) scanToken() {
	ch, _ := lx.peek()
	switch ch {
	case '(':
		lx.openBracket(TokLParen)
	case '[':
		lx.openBracket(TokLBrack)
	case '{':
		lx.openBracket(TokLBrace)
	case ')':
		lx.single(TokRParen)
	case ']':
		lx.single(TokRBrack)
	case '}':
		lx.single(TokRBrace)
	case ',':
		lx.single(TokComma)
		lx.continueLine()
	case '.':
		lx.single(TokDot)
	case ':':
		lx.single(TokColon)
	case '~':
		lx.single(TokTilde)
	case '=':
		lx.single(TokEqual)
	case '<':
		lx.single(TokLess)
	case '>':
		lx.single(TokMore)
	case '*':
		lx.single(TokStar)
	case '/':
		lx.single(TokSlash)
	case '|':
		lx.single(TokBar)
	case '\\':
		lx.single(TokBackslash)
	case '@':
		lx.single(TokAt)
	case '$':
		lx.single(TokDollar)
	case '&':
		lx.single(TokAnd)
	case '+', '-':
		if r, ok := lx.peekAt(1); ok && isDigit(r) {
			start := lx.i
			lx.i++
			lx.scanNumber(start)
			return
		}
		if ch == '+' {
			lx.single(TokPlus)
		} else {
			lx.single(TokMinus)
		}
	case '!':
		lx.scanBang()
	case '"':
		lx.scanString()
	case '#':
		lx.skipComment()
	case ' ':
		lx.i++
	case '\n':
		lx.toks = append(lx.toks, lx.newline()...)
	case '\r':
		lx.i++
		if lx.peekIs('\n') {
			lx.toks = append(lx.toks, lx.newline()...)
			return
		}
		lx.errorf(keyStrayCR, lx.line, "carriage return must be followed by a newline")
	case '\t':
		lx.errorf(keyTabIndent, lx.line, "tabs not supported for indentation, use spaces")
		lx.i++
	default:
		switch {
		case isDigit(ch):
			lx.scanNumber(lx.i)
		case isSmallLetter(ch):
			lx.scanIdent()
		case isBigLetter(ch):
			lx.errorf(keyBigLetter, lx.line, "big letters not allowed in identifiers")
			lx.i++
		default:
			lx.errorf(keyInvalidChar, lx.line, "invalid character %q", ch)
			lx.i++
		}
	}
}

func (lx *Lexer) peekAt(off int) (rune, bool) {
	if lx.i+off >= len(lx.src) {
		return 0, false
	}
	return lx.src[lx.i+off], true
}

func (lx *Lexer) scanBang() {
	line := lx.line
	lx.i++
	switch {
	case lx.match('='):
		lx.emit(TokBangEqual, "!=", line)
	case lx.match('<'):
		lx.emit(TokBangLess, "!<", line)
	case lx.match('>'):
		lx.emit(TokBangMore, "!>", line)
	default:
		lx.emit(TokBang, "!", line)
	}
}

// scanNumber reads digits with an optional fraction. start may point at a
// leading sign that the caller already consumed.
func (lx *Lexer) scanNumber(start int) {
	for lx.peekDigit() {
		lx.i++
	}
	if r, ok := lx.peekAt(1); ok && lx.peekIs('.') && isDigit(r) {
		lx.i++
		for lx.peekDigit() {
			lx.i++
		}
	}
	lx.emit(TokNumber, string(lx.src[start:lx.i]), lx.line)
}

func (lx *Lexer) scanIdent() {
	start := lx.i
	for {
		r, ok := lx.peek()
		if !ok || !isIdentPart(r) {
			break
		}
		lx.i++
	}
	lex := string(lx.src[start:lx.i])
	if kind, ok := keywordKind(lex); ok {
		lx.emit(kind, lex, lx.line)
		return
	}
	lx.emit(TokIdent, lex, lx.line)
}

// newline consumes a '\n' plus the next line's leading spaces and returns
// the structural tokens the line break stands for: nil for blank,
// comment-only and final lines, otherwise a NEWLINE, an INDENT or a run of
// DEDENTs. Dedents are the only terminator of the statement they close.
func (lx *Lexer) newline() []Token {
	ended := lx.line
	lx.i++
	lx.line++

	spaces := 0
	for lx.match(' ') {
		spaces++
	}

	ch, ok := lx.peek()
	switch {
	case !ok, ch == '\n', ch == '#':
		return nil
	case ch == '\r':
		lx.i++
		if !lx.peekIs('\n') {
			lx.errorf(keyStrayCR, lx.line, "carriage return must be followed by a newline")
		}
		return nil
	}

	if lx.indentWidth == 0 && spaces > 0 {
		lx.indentWidth = spaces
	}
	level := 0
	if lx.indentWidth > 0 {
		if spaces%lx.indentWidth != 0 {
			lx.errorf(keyInconsistentIndent, lx.line,
				"invalid indentation level, indent consistently with %d spaces", lx.indentWidth)
			return nil
		}
		level = spaces / lx.indentWidth
	}

	switch {
	case level > lx.depth:
		if level > lx.depth+1 {
			lx.errorf(keyMultiLevelIndent, lx.line, "cannot indent multiple levels at once")
			return nil
		}
		lx.depth++
		return []Token{lx.make(TokIndent, "", lx.line)}
	case level < lx.depth:
		var out []Token
		for level < lx.depth {
			lx.depth--
			out = append(out, lx.make(TokDedent, "", lx.line))
		}
		return out
	}
	return []Token{lx.make(TokNewline, "\n", ended)}
}

func (lx *Lexer) openBracket(kind TokKind) {
	lx.single(kind)
	lx.continueLine()
}

// continueLine runs after a comma or an opening bracket. It swallows spaces
// and comments and, across line breaks, drops same-level NEWLINEs so the
// statement continues; an INDENT or DEDENT run is kept.
func (lx *Lexer) continueLine() {
	for {
		for {
			if lx.match(' ') {
				continue
			}
			if lx.peekIs('#') {
				lx.skipComment()
				continue
			}
			break
		}
		if lx.match('\r') && !lx.peekIs('\n') {
			lx.errorf(keyStrayCR, lx.line, "carriage return must be followed by a newline")
		}
		if !lx.peekIs('\n') {
			return
		}
		toks := lx.newline()
		if len(toks) == 0 || toks[0].Kind == TokNewline {
			continue
		}
		lx.toks = append(lx.toks, toks...)
		return
	}
}
