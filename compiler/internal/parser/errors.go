package parser

import (
	"fmt"
	"strings"

	"github.com/utkrisht/uki/compiler/internal/diag"
	"github.com/utkrisht/uki/compiler/internal/lexer"
)

// Catalog keys for syntax diagnostics (see diag/codes.yaml).
const (
	keyUnexpectedToken    = "unexpected_token"
	keyExpectedExpression = "expected_expression"
	keyElseWithoutWhen    = "else_without_when"
	keyFixWithoutTry      = "fix_without_try"
	keyWithWithoutLoop    = "with_without_loop"
	keyModuleItem         = "module_outside_module_mode"
	keyElseAfterCatchAll  = "else_after_catch_all"
	keyExpectedLoopClause = "expected_loop_clause"
)

// SyntaxError abandons the statement being parsed. It has already been
// reported to the diagnostics list by the time it is returned.
type SyntaxError struct {
	Token   lexer.Token
	Key     string
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Token.Line, e.Message)
}

// AtEOF reports whether the error was raised at end of input.
func (e *SyntaxError) AtEOF() bool { return e.Token.Kind == lexer.TokEOF }

// IsIncomplete reports whether any error was raised at EndOfFile, meaning
// the input stopped while a statement or block was still open.
func IsIncomplete(errs []*SyntaxError) bool {
	for _, e := range errs {
		if e.AtEOF() {
			return true
		}
	}
	return false
}

// fail reports msg at tok and returns the error that unwinds the statement.
func (p *Parser) fail(key string, tok lexer.Token, format string, a ...any) *SyntaxError {
	e := &SyntaxError{Token: tok, Key: key, Message: fmt.Sprintf(format, a...)}
	p.diags.Report(diag.DomainParser, key, tok.Line, e.Message)
	p.errs = append(p.errs, e)
	p.log.Debug("syntax error", "line", tok.Line, "token", tok.Kind.String(), "key", key)
	return e
}

// unexpected reports that none of kinds was found at the cursor.
func (p *Parser) unexpected(kinds ...lexer.TokKind) *SyntaxError {
	return p.fail(keyUnexpectedToken, p.cur(), "expected %s, but %s", expected(kinds), found(p.cur()))
}

func expected(kinds []lexer.TokKind) string {
	if len(kinds) == 1 {
		return kinds[0].String()
	}
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return "one of [" + strings.Join(names, ", ") + "]"
}

func found(t lexer.Token) string {
	if t.Kind == lexer.TokEOF {
		return "reached end of code"
	}
	return "got " + t.Kind.String()
}
