package ast

import (
	"bytes"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/utkrisht/uki/compiler/internal/lexer"
)

func tok(kind lexer.TokKind, lex string, line int) lexer.Token {
	return lexer.Token{Kind: kind, Lex: lex, Lit: lex, Line: line}
}

func ident(name string, line int) lexer.Token { return tok(lexer.TokIdent, name, line) }

func number(lex string, v float64) *LiteralExpr {
	return &LiteralExpr{Token: tok(lexer.TokNumber, lex, 1), Value: v}
}

func sample() *Program {
	limit := ident("outer", 6)
	return &Program{
		Statements: []Stmt{
			&Declaration{
				Name: ident("greet", 1),
				Params: []Param{
					{Name: ident("name", 1)},
					{Name: ident("greeting", 1), Default: &LiteralExpr{Token: tok(lexer.TokString, `"hi"`, 1), Value: "hi"}},
				},
				Value: &BinaryExpr{
					Left:  &VariableExpr{Name: ident("greeting", 1)},
					Op:    tok(lexer.TokPlus, "+", 1),
					Right: &VariableExpr{Name: ident("name", 1)},
				},
			},
			&WhenStmt{Clauses: []WhenClause{
				{
					Keyword: tok(lexer.TokWhen, "when", 2),
					Cond: &BinaryExpr{
						Left:  &VariableExpr{Name: ident("a", 2)},
						Op:    tok(lexer.TokEqual, "=", 2),
						Right: number("1", 1),
					},
					Body: &Block{Statements: []Stmt{
						&ExprStmt{X: &VariableExpr{
							Name: ident("show", 3),
							Args: []Argument{{Value: &VariableExpr{Name: ident("a", 3)}}},
						}},
					}},
				},
				{
					Keyword: tok(lexer.TokElse, "else", 4),
					Body:    &Block{Statements: []Stmt{&ExitStmt{Keyword: tok(lexer.TokExit, "exit", 5)}}},
				},
			}},
			&StopStmt{Keyword: tok(lexer.TokStop, "stop", 6), Label: &limit},
		},
	}
}

func TestDump(t *testing.T) {
	got := Dump(sample())
	want := "" +
		"program\n" +
		"greet name, greeting: \"hi\" ~ (greeting + name)\n" +
		"when (a = 1)\n" +
		"  show(a)\n" +
		"else\n" +
		"  exit\n" +
		"stop outer\n"
	if got != want {
		t.Fatalf("dump mismatch:\n--- got ---\n%s--- want ---\n%s", got, want)
	}
}

func TestDumpModule(t *testing.T) {
	prog := &Program{
		Kind: KindModule,
		Imports: []*Import{{
			Keyword: tok(lexer.TokImport, "import", 1),
			Path:    []lexer.Token{ident("std", 1), ident("text", 1)},
		}},
		Exports: []*Export{{
			Keyword: tok(lexer.TokExport, "export", 2),
			Decl:    &Declaration{Name: ident("pi", 2), Value: number("3.14", 3.14)},
		}},
	}
	want := "module\nimport std/text\nexport pi ~ 3.14\n"
	if got := Dump(prog); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestExprString(t *testing.T) {
	cases := []struct {
		e    Expr
		want string
	}{
		{&LiteralExpr{Token: tok(lexer.TokRight, "right", 1), Value: true}, "right"},
		{&LiteralExpr{Token: tok(lexer.TokWrong, "wrong", 1), Value: false}, "wrong"},
		{number("-2.50", -2.5), "-2.5"},
		{&UnaryExpr{Op: tok(lexer.TokBang, "!", 1), X: &VariableExpr{Name: ident("ok", 1)}}, "!ok"},
		{&GroupingExpr{X: number("1", 1)}, "(1)"},
		{&VariableExpr{
			Name: ident("f", 1),
			Args: []Argument{
				{Value: number("1", 1)},
				{Name: func() *lexer.Token { t := ident("to", 1); return &t }(), Value: number("2", 2)},
			},
		}, "f(1, to: 2)"},
	}
	for _, tc := range cases {
		if got := ExprString(tc.e); got != tc.want {
			t.Errorf("ExprString = %q, want %q", got, tc.want)
		}
	}
}

func TestBindingString(t *testing.T) {
	b := &DestructureBinding{Elems: []Binding{
		&IdentBinding{Name: ident("k", 1)},
		&DestructureBinding{Elems: []Binding{&IdentBinding{Name: ident("a", 1)}, &IdentBinding{Name: ident("b", 1)}}},
	}}
	if got := BindingString(b); got != "[k, [a, b]]" {
		t.Fatalf("got %q", got)
	}
}

func TestEncodeYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeYAML(&buf, sample()); err != nil {
		t.Fatalf("encode: %v", err)
	}

	var doc struct {
		Kind       string           `yaml:"kind"`
		Imports    []map[string]any `yaml:"imports"`
		Statements []map[string]any `yaml:"statements"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v\n%s", err, buf.String())
	}
	if doc.Kind != "Program" || len(doc.Imports) != 0 || len(doc.Statements) != 3 {
		t.Fatalf("unexpected document:\n%s", buf.String())
	}
	decl := doc.Statements[0]
	if decl["kind"] != "Declaration" || decl["name"] != "greet" {
		t.Fatalf("statement 0 = %v", decl)
	}
	params, _ := decl["params"].([]any)
	if len(params) != 2 {
		t.Fatalf("params = %v", decl["params"])
	}
	def, _ := params[1].(map[string]any)["default"].(map[string]any)
	if def["value"] != "hi" {
		t.Fatalf("default = %v", def)
	}
	if doc.Statements[1]["kind"] != "WhenStatement" || doc.Statements[2]["label"] != "outer" {
		t.Fatalf("statements = %v", doc.Statements)
	}
}
