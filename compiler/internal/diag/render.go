package diag

import (
	"fmt"
	"strings"
)

// SnippetLine is one numbered source line of a rendered snippet.
type SnippetLine struct {
	No      int
	Text    string
	Primary bool
}

// Snippet returns the line at 1-based lineNo with up to context lines on
// each side. Out-of-range line numbers are clamped; empty source yields nil.
func Snippet(src string, lineNo, context int) []SnippetLine {
	if src == "" || lineNo <= 0 {
		return nil
	}
	lines := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")
	if lineNo > len(lines) {
		lineNo = len(lines)
	}
	if context < 0 {
		context = 0
	}
	from := max(lineNo-context, 1)
	to := min(lineNo+context, len(lines))
	out := make([]SnippetLine, 0, to-from+1)
	for n := from; n <= to; n++ {
		out = append(out, SnippetLine{No: n, Text: lines[n-1], Primary: n == lineNo})
	}
	return out
}

// Header is the first line of a rendered diagnostic, e.g.
// "error[ULE0004]: tabs not supported for indentation".
func Header(d Diagnostic) string {
	if code := d.Code(); code != "" {
		return fmt.Sprintf("error[%s]: %s", code, d.Msg)
	}
	return "error: " + d.Msg
}

// Render formats d as plain text:
//
//	error[ULE0003]: cannot indent multiple levels at once
//	 --> main.uki:3
//	   2 | when ready
//	   3 |         show "x"
//	help: A block may only be one level deeper than the line that opens it.
func Render(d Diagnostic, file, src string, context int) string {
	var b strings.Builder
	b.WriteString(Header(d))
	b.WriteByte('\n')
	if file != "" && d.Line > 0 {
		fmt.Fprintf(&b, " --> %s:%d\n", file, d.Line)
	}
	lines := Snippet(src, d.Line, context)
	width := 0
	if n := len(lines); n > 0 {
		width = len(fmt.Sprint(lines[n-1].No))
	}
	for _, ln := range lines {
		mark := " "
		if ln.Primary {
			mark = ">"
		}
		fmt.Fprintf(&b, "%s %*d | %s\n", mark, width, ln.No, ln.Text)
	}
	if ce, ok := Lookup(d.Domain, d.Key); ok && strings.TrimSpace(ce.Help) != "" {
		fmt.Fprintf(&b, "help: %s\n", ce.Help)
	}
	return b.String()
}
