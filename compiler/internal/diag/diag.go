package diag

import (
	"fmt"
	"io"
	"os"
)

// Domains group catalog entries by the stage that reports them.
const (
	DomainLexer  = "lexer"
	DomainParser = "parser"
)

// Diagnostic is a compiler message attached to a 1-based source line.
// Domain and Key identify the catalog entry; both may be empty.
type Diagnostic struct {
	Line   int
	Msg    string
	Domain string
	Key    string
}

func (d Diagnostic) Error() string {
	if d.Line == 0 {
		return d.Msg
	}
	return fmt.Sprintf("line %d: %s", d.Line, d.Msg)
}

// Code returns the catalog ID for the diagnostic, or "" when it has none.
func (d Diagnostic) Code() string {
	if d.Key == "" {
		return ""
	}
	if ce, ok := Lookup(d.Domain, d.Key); ok {
		return ce.ID
	}
	return ""
}

// Printer mirrors diagnostics to a display surface as they are appended.
type Printer interface {
	Print(d Diagnostic)
}

// PlainPrinter writes "Error on line N: msg" lines to W (stderr when nil).
type PlainPrinter struct{ W io.Writer }

func (p PlainPrinter) Print(d Diagnostic) {
	w := p.W
	if w == nil {
		w = os.Stderr
	}
	_, _ = fmt.Fprintf(w, "Error on line %d: %s\n", d.Line, d.Msg)
}

// List is the append-only diagnostics sink shared by the lexer and the parser.
// When Emit is set every entry is also handed to the printer at append time.
type List struct {
	Emit    bool
	printer Printer
	items   []Diagnostic
}

// NewList returns an empty list. A nil printer selects PlainPrinter on stderr.
func NewList(emit bool, p Printer) *List {
	if p == nil {
		p = PlainPrinter{}
	}
	return &List{Emit: emit, printer: p}
}

// Add appends d and mirrors it when Emit is set.
func (l *List) Add(d Diagnostic) {
	l.items = append(l.items, d)
	if l.Emit {
		if l.printer == nil {
			l.printer = PlainPrinter{}
		}
		l.printer.Print(d)
	}
}

// Report appends a diagnostic for line with a catalog key.
func (l *List) Report(domain, key string, line int, msg string) {
	l.Add(Diagnostic{Line: line, Msg: msg, Domain: domain, Key: key})
}

// Reportf is Report with a format string.
func (l *List) Reportf(domain, key string, line int, format string, a ...any) {
	l.Report(domain, key, line, fmt.Sprintf(format, a...))
}

// Len reports how many diagnostics were appended.
func (l *List) Len() int { return len(l.items) }

// HasErrors reports whether anything was appended.
func (l *List) HasErrors() bool { return len(l.items) > 0 }

// Items returns a copy of the entries in append order.
func (l *List) Items() []Diagnostic {
	out := make([]Diagnostic, len(l.items))
	copy(out, l.items)
	return out
}
