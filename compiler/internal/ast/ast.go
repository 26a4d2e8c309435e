package ast

import (
	"strings"

	"github.com/utkrisht/uki/compiler/internal/lexer"
)

/*** NODES ***/

type Node interface{ node() }

// Kind tells a script apart from a module parsed for its imports/exports.
type Kind int

const (
	KindProgram Kind = iota
	KindModule
)

func (k Kind) String() string {
	if k == KindModule {
		return "Module"
	}
	return "Program"
}

// Program is the root of every parse.
type Program struct {
	Kind       Kind
	Imports    []*Import
	Exports    []*Export
	Statements []Stmt
}

func (*Program) node() {}

// Block is an indented statement list; it always comes from a matched
// Indent/Dedent pair.
type Block struct {
	Statements []Stmt
}

func (*Block) node() {}

/*** MODULE ITEMS ***/

// Import is `import a/b/c`.
type Import struct {
	Keyword lexer.Token
	Path    []lexer.Token
}

func (*Import) node() {}

// PathString joins the path segments with '/'.
func (im *Import) PathString() string {
	parts := make([]string, len(im.Path))
	for i, t := range im.Path {
		parts[i] = t.Lex
	}
	return strings.Join(parts, "/")
}

// Export is `export <declaration>`.
type Export struct {
	Keyword lexer.Token
	Decl    *Declaration
}

func (*Export) node() {}

/*** EXPRESSIONS ***/

type Expr interface {
	Node
	expr()
}

// LiteralExpr is right/wrong, a string or a number. Value holds a bool, a
// string or a float64 computed from Token.
type LiteralExpr struct {
	Token lexer.Token
	Value any
}

func (*LiteralExpr) node() {}
func (*LiteralExpr) expr() {}

type GroupingExpr struct{ X Expr }

func (*GroupingExpr) node() {}
func (*GroupingExpr) expr() {}

type UnaryExpr struct {
	Op lexer.Token
	X  Expr
}

func (*UnaryExpr) node() {}
func (*UnaryExpr) expr() {}

type BinaryExpr struct {
	Left  Expr
	Op    lexer.Token
	Right Expr
}

func (*BinaryExpr) node() {}
func (*BinaryExpr) expr() {}

// VariableExpr is a name reference; with arguments it is a call.
type VariableExpr struct {
	Name lexer.Token
	Args []Argument
}

func (*VariableExpr) node() {}
func (*VariableExpr) expr() {}

// Argument is positional when Name is nil.
type Argument struct {
	Name  *lexer.Token
	Value Expr
}

/*** BINDINGS ***/

type Binding interface {
	Node
	binding()
}

type IdentBinding struct{ Name lexer.Token }

func (*IdentBinding) node()    {}
func (*IdentBinding) binding() {}

// DestructureBinding is `[a, [b, c]]`.
type DestructureBinding struct{ Elems []Binding }

func (*DestructureBinding) node()    {}
func (*DestructureBinding) binding() {}

/*** STATEMENTS ***/

type Stmt interface {
	Node
	stmt()
}

type ExprStmt struct{ X Expr }

func (*ExprStmt) node() {}
func (*ExprStmt) stmt() {}

/*
Declarations bind a name, optionally with parameters:

	total ~ 10
	greet name, greeting: "hello" ~ greeting + name
*/
type Declaration struct {
	Name   lexer.Token
	Params []Param
	Value  Expr
}

func (*Declaration) node() {}
func (*Declaration) stmt() {}

// Param has a Default when written as `name: expr`.
type Param struct {
	Name    lexer.Token
	Default Expr
}

type Assignment struct {
	Name  lexer.Token
	Value Expr
}

func (*Assignment) node() {}
func (*Assignment) stmt() {}

// WhenStmt holds the `when` clause followed by its `else` clauses. Only the
// last clause may have a nil Cond.
type WhenStmt struct {
	Clauses []WhenClause
}

func (*WhenStmt) node() {}
func (*WhenStmt) stmt() {}

type WhenClause struct {
	Keyword lexer.Token // when | else
	Cond    Expr
	Body    *Block
}

// LoopStmt runs one body for a comma-separated list of clauses.
type LoopStmt struct {
	Keyword lexer.Token
	Clauses []LoopClause
	Body    *Block
}

func (*LoopStmt) node() {}
func (*LoopStmt) stmt() {}

// LoopClause has a Binding iff With is set.
type LoopClause struct {
	Left    Expr
	With    *lexer.Token
	Binding Binding
}

type TryStmt struct {
	Try    lexer.Token
	Body   *Block
	Fix    lexer.Token
	Rescue *Block
}

func (*TryStmt) node() {}
func (*TryStmt) stmt() {}

type ExitStmt struct {
	Keyword lexer.Token
	Value   Expr // may be nil
}

func (*ExitStmt) node() {}
func (*ExitStmt) stmt() {}

type StopStmt struct {
	Keyword lexer.Token
	Label   *lexer.Token
}

func (*StopStmt) node() {}
func (*StopStmt) stmt() {}

type SkipStmt struct {
	Keyword lexer.Token
	Label   *lexer.Token
}

func (*SkipStmt) node() {}
func (*SkipStmt) stmt() {}
