package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/utkrisht/uki/compiler/internal/lexer"
)

/*** DUMP (pretty outline for CLI) ***/

// Dump renders prog as an indented outline, one statement per line and two
// spaces per block level.
func Dump(prog *Program) string {
	var b strings.Builder
	if prog == nil {
		return ""
	}
	fmt.Fprintf(&b, "%s\n", strings.ToLower(prog.Kind.String()))
	for _, im := range prog.Imports {
		fmt.Fprintf(&b, "import %s\n", im.PathString())
	}
	for _, ex := range prog.Exports {
		fmt.Fprintf(&b, "export %s\n", declString(ex.Decl))
	}
	dumpStmts(&b, prog.Statements, 0)
	return b.String()
}

func dumpStmts(b *strings.Builder, stmts []Stmt, depth int) {
	for _, s := range stmts {
		dumpStmt(b, s, depth)
	}
}

func dumpBlock(b *strings.Builder, blk *Block, depth int) {
	if blk != nil {
		dumpStmts(b, blk.Statements, depth)
	}
}

func dumpStmt(b *strings.Builder, s Stmt, depth int) {
	pad := strings.Repeat("  ", depth)
	switch st := s.(type) {
	case *WhenStmt:
		for _, c := range st.Clauses {
			if c.Cond != nil {
				fmt.Fprintf(b, "%s%s %s\n", pad, c.Keyword.Lex, ExprString(c.Cond))
			} else {
				fmt.Fprintf(b, "%s%s\n", pad, c.Keyword.Lex)
			}
			dumpBlock(b, c.Body, depth+1)
		}
	case *LoopStmt:
		parts := make([]string, len(st.Clauses))
		for i, c := range st.Clauses {
			parts[i] = ExprString(c.Left)
			if c.Binding != nil {
				parts[i] += " with " + BindingString(c.Binding)
			}
		}
		fmt.Fprintf(b, "%sloop %s\n", pad, strings.Join(parts, ", "))
		dumpBlock(b, st.Body, depth+1)
	case *TryStmt:
		fmt.Fprintf(b, "%stry\n", pad)
		dumpBlock(b, st.Body, depth+1)
		fmt.Fprintf(b, "%sfix\n", pad)
		dumpBlock(b, st.Rescue, depth+1)
	default:
		fmt.Fprintf(b, "%s%s\n", pad, StmtString(s))
	}
}

// StmtString renders a simple statement on one line. Block statements are
// shown by their header only.
func StmtString(s Stmt) string {
	switch st := s.(type) {
	case *ExprStmt:
		return ExprString(st.X)
	case *Declaration:
		return declString(st)
	case *Assignment:
		return st.Name.Lex + " = " + ExprString(st.Value)
	case *ExitStmt:
		if st.Value == nil {
			return "exit"
		}
		return "exit " + ExprString(st.Value)
	case *StopStmt:
		return withLabel("stop", st.Label)
	case *SkipStmt:
		return withLabel("skip", st.Label)
	case *WhenStmt:
		return "when …"
	case *LoopStmt:
		return "loop …"
	case *TryStmt:
		return "try …"
	default:
		return "<stmt>"
	}
}

func withLabel(kw string, label *lexer.Token) string {
	if label == nil {
		return kw
	}
	return kw + " " + label.Lex
}

func declString(d *Declaration) string {
	if d == nil {
		return "<decl>"
	}
	var b strings.Builder
	b.WriteString(d.Name.Lex)
	for i, p := range d.Params {
		if i == 0 {
			b.WriteString(" ")
		} else {
			b.WriteString(", ")
		}
		b.WriteString(p.Name.Lex)
		if p.Default != nil {
			b.WriteString(": " + ExprString(p.Default))
		}
	}
	b.WriteString(" ~ ")
	b.WriteString(ExprString(d.Value))
	return b.String()
}

// ExprString renders e on one line. Binary expressions are fully
// parenthesized so precedence is visible.
func ExprString(e Expr) string {
	switch v := e.(type) {
	case nil:
		return "<nil>"
	case *LiteralExpr:
		switch val := v.Value.(type) {
		case bool:
			if val {
				return "right"
			}
			return "wrong"
		case string:
			return strconv.Quote(val)
		case float64:
			return strconv.FormatFloat(val, 'g', -1, 64)
		default:
			return v.Token.Lex
		}
	case *GroupingExpr:
		return "(" + ExprString(v.X) + ")"
	case *UnaryExpr:
		return v.Op.Lex + ExprString(v.X)
	case *BinaryExpr:
		return "(" + ExprString(v.Left) + " " + v.Op.Lex + " " + ExprString(v.Right) + ")"
	case *VariableExpr:
		if len(v.Args) == 0 {
			return v.Name.Lex
		}
		parts := make([]string, len(v.Args))
		for i, a := range v.Args {
			if a.Name != nil {
				parts[i] = a.Name.Lex + ": " + ExprString(a.Value)
			} else {
				parts[i] = ExprString(a.Value)
			}
		}
		return v.Name.Lex + "(" + strings.Join(parts, ", ") + ")"
	default:
		return "<expr>"
	}
}

// BindingString renders a loop binding: `x` or `[a, [b, c]]`.
func BindingString(bd Binding) string {
	switch v := bd.(type) {
	case *IdentBinding:
		return v.Name.Lex
	case *DestructureBinding:
		parts := make([]string, len(v.Elems))
		for i, el := range v.Elems {
			parts[i] = BindingString(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "<binding>"
	}
}
