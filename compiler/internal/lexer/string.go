package lexer

import "strings"

const (
	keyUnterminatedString    = "unterminated_string"
	keyNewlineInString       = "newline_in_string"
	keyUnterminatedMultiline = "unterminated_multiline_string"
	keyMultilineIndent       = "multiline_insufficient_indent"
	keyMultilineClosing      = "multiline_closing_indent"
	keyMultilineInlineQuote  = "multiline_inline_quote"
)

// scanString reads a string literal starting at the opening quote. A quote
// followed only by spaces up to the line break opens a multi-line string.
func (lx *Lexer) scanString() {
	start, line := lx.i, lx.line
	lx.i++

	j := lx.i
	for j < len(lx.src) && lx.src[j] == ' ' {
		j++
	}
	if j+1 < len(lx.src) && lx.src[j] == '\r' && lx.src[j+1] == '\n' {
		j++
	}
	if j < len(lx.src) && lx.src[j] == '\n' {
		lx.i = j + 1
		lx.line++
		lx.scanMultiline(start, line)
		return
	}

	for {
		ch, ok := lx.peek()
		if !ok {
			lx.errorf(keyUnterminatedString, line, "unterminated string")
			return
		}
		if ch == '\n' {
			lx.errorf(keyNewlineInString, line, "single-line strings cannot contain a newline")
			return
		}
		if ch == '"' {
			break
		}
		lx.i++
	}
	lit := string(lx.src[start+1 : lx.i])
	lx.i++
	lx.toks = append(lx.toks, Token{Kind: TokString, Lex: string(lx.src[start:lx.i]), Lit: lit, Line: line})
}

// scanMultiline reads the body of a multi-line string; lx.i is at the start
// of the first content line. Content lines sit one level deeper than the
// enclosing block and the closing quote sits exactly at the block's level.
// If no width is fixed yet, the first content line's leading spaces fix it
// for the whole file.
//
// On error the literal is dropped and scanning resumes at the start of the
// offending line.
func (lx *Lexer) scanMultiline(start, line int) {
	if lx.indentWidth == 0 {
		n := 0
		for lx.i+n < len(lx.src) && lx.src[lx.i+n] == ' ' {
			n++
		}
		lx.indentWidth = n
	}
	closeAt := lx.depth * lx.indentWidth
	contentAt := closeAt + lx.indentWidth

	var lines []string
	for {
		if lx.atEOF() {
			lx.errorf(keyUnterminatedMultiline, line, "unterminated multi-line string")
			return
		}

		spaces := 0
		for lx.i+spaces < len(lx.src) && lx.src[lx.i+spaces] == ' ' {
			spaces++
		}
		if lx.i+spaces < len(lx.src) && lx.src[lx.i+spaces] == '"' {
			if spaces != closeAt {
				lx.errorf(keyMultilineClosing, lx.line,
					"closing quote of multi-line string must be indented with %d spaces", closeAt)
				return
			}
			lx.i += spaces + 1
			break
		}
		if spaces < contentAt {
			lx.errorf(keyMultilineIndent, lx.line,
				"insufficient indentation for multi-line string, expected %d spaces", contentAt)
			return
		}

		from := lx.i + contentAt
		end := from
		for end < len(lx.src) && lx.src[end] != '\n' {
			if lx.src[end] == '"' {
				lx.errorf(keyMultilineInlineQuote, lx.line,
					"closing quote of multi-line string must be on its own line")
				return
			}
			end++
		}
		lines = append(lines, strings.TrimSuffix(string(lx.src[from:end]), "\r"))
		lx.i = end
		if lx.match('\n') {
			lx.line++
		}
	}

	lx.toks = append(lx.toks, Token{
		Kind: TokString,
		Lex:  string(lx.src[start:lx.i]),
		Lit:  strings.Join(lines, "\n"),
		Line: line,
	})
}
