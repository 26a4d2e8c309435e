package ast

import (
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/utkrisht/uki/compiler/internal/lexer"
)

// EncodeYAML writes prog as a YAML document. Every node is a mapping that
// starts with `kind`; remaining keys follow field order.
func EncodeYAML(w io.Writer, prog *Program) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(ProgramNode(prog)); err != nil {
		return fmt.Errorf("encode ast: %w", err)
	}
	return enc.Close()
}

// ProgramNode builds the yaml.Node tree EncodeYAML writes.
func ProgramNode(prog *Program) *yaml.Node {
	if prog == nil {
		return null()
	}
	imports := seq()
	for _, im := range prog.Imports {
		imports.Content = append(imports.Content, mapping(
			"kind", str("Import"),
			"path", str(im.PathString()),
			"line", num(im.Keyword.Line),
		))
	}
	exports := seq()
	for _, ex := range prog.Exports {
		exports.Content = append(exports.Content, mapping(
			"kind", str("Export"),
			"line", num(ex.Keyword.Line),
			"declaration", stmtNode(ex.Decl),
		))
	}
	return mapping(
		"kind", str(prog.Kind.String()),
		"imports", imports,
		"exports", exports,
		"statements", stmtsNode(prog.Statements),
	)
}

func stmtsNode(stmts []Stmt) *yaml.Node {
	out := seq()
	for _, s := range stmts {
		out.Content = append(out.Content, stmtNode(s))
	}
	return out
}

func blockNode(b *Block) *yaml.Node {
	if b == nil {
		return null()
	}
	return stmtsNode(b.Statements)
}

func stmtNode(s Stmt) *yaml.Node {
	switch st := s.(type) {
	case *ExprStmt:
		return mapping("kind", str("ExpressionStatement"), "expression", exprNode(st.X))
	case *Declaration:
		if st == nil {
			return null()
		}
		params := seq()
		for _, p := range st.Params {
			params.Content = append(params.Content, mapping(
				"name", str(p.Name.Lex),
				"default", exprNode(p.Default),
			))
		}
		return mapping(
			"kind", str("Declaration"),
			"name", str(st.Name.Lex),
			"line", num(st.Name.Line),
			"params", params,
			"value", exprNode(st.Value),
		)
	case *Assignment:
		return mapping(
			"kind", str("Assignment"),
			"name", str(st.Name.Lex),
			"line", num(st.Name.Line),
			"value", exprNode(st.Value),
		)
	case *WhenStmt:
		clauses := seq()
		for _, c := range st.Clauses {
			clauses.Content = append(clauses.Content, mapping(
				"keyword", str(c.Keyword.Lex),
				"line", num(c.Keyword.Line),
				"condition", exprNode(c.Cond),
				"body", blockNode(c.Body),
			))
		}
		return mapping("kind", str("WhenStatement"), "clauses", clauses)
	case *LoopStmt:
		clauses := seq()
		for _, c := range st.Clauses {
			clauses.Content = append(clauses.Content, mapping(
				"left", exprNode(c.Left),
				"binding", bindingNode(c.Binding),
			))
		}
		return mapping(
			"kind", str("LoopStatement"),
			"line", num(st.Keyword.Line),
			"clauses", clauses,
			"body", blockNode(st.Body),
		)
	case *TryStmt:
		return mapping(
			"kind", str("TryStatement"),
			"line", num(st.Try.Line),
			"body", blockNode(st.Body),
			"fix", blockNode(st.Rescue),
		)
	case *ExitStmt:
		return mapping("kind", str("ExitStatement"), "line", num(st.Keyword.Line), "value", exprNode(st.Value))
	case *StopStmt:
		return mapping("kind", str("StopStatement"), "line", num(st.Keyword.Line), "label", label(st.Label))
	case *SkipStmt:
		return mapping("kind", str("SkipStatement"), "line", num(st.Keyword.Line), "label", label(st.Label))
	default:
		return null()
	}
}

func exprNode(e Expr) *yaml.Node {
	switch v := e.(type) {
	case *LiteralExpr:
		var val *yaml.Node
		switch x := v.Value.(type) {
		case bool:
			val = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(x)}
		case float64:
			val = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(x, 'g', -1, 64)}
		case string:
			val = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: x, Style: yaml.DoubleQuotedStyle}
		default:
			val = null()
		}
		return mapping("kind", str("Literal"), "token", str(v.Token.Kind.String()), "value", val)
	case *GroupingExpr:
		return mapping("kind", str("Grouping"), "expression", exprNode(v.X))
	case *UnaryExpr:
		return mapping("kind", str("Unary"), "operator", str(v.Op.Lex), "operand", exprNode(v.X))
	case *BinaryExpr:
		return mapping(
			"kind", str("Binary"),
			"left", exprNode(v.Left),
			"operator", str(v.Op.Lex),
			"right", exprNode(v.Right),
		)
	case *VariableExpr:
		args := seq()
		for _, a := range v.Args {
			args.Content = append(args.Content, mapping("name", label(a.Name), "value", exprNode(a.Value)))
		}
		return mapping("kind", str("Variable"), "name", str(v.Name.Lex), "arguments", args)
	default:
		return null()
	}
}

func bindingNode(b Binding) *yaml.Node {
	switch v := b.(type) {
	case *IdentBinding:
		return mapping("kind", str("Identifier"), "name", str(v.Name.Lex))
	case *DestructureBinding:
		elems := seq()
		for _, el := range v.Elems {
			elems.Content = append(elems.Content, bindingNode(el))
		}
		return mapping("kind", str("Destructure"), "elements", elems)
	default:
		return null()
	}
}

func label(t *lexer.Token) *yaml.Node {
	if t == nil {
		return null()
	}
	return str(t.Lex)
}

// mapping builds a block mapping from alternating key/value arguments.
func mapping(kv ...any) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i := 0; i+1 < len(kv); i += 2 {
		n.Content = append(n.Content, str(kv[i].(string)), kv[i+1].(*yaml.Node))
	}
	return n
}

func seq() *yaml.Node { return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"} }

func str(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func num(n int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(n)}
}

func null() *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}
