package parser

import (
	"errors"
	"strconv"

	"github.com/utkrisht/uki/compiler/internal/ast"
	"github.com/utkrisht/uki/compiler/internal/lexer"
)

/*
Precedence, lowest to highest:

	=  !=
	<  >  !<  !>
	+  -
	*  /
	!  -        (unary)
	primary
*/
func (p *Parser) parseExpression() (ast.Expr, error) { return p.parseEquality() }

// binary parses a left-associative level whose operands come from operand.
func (p *Parser) binary(operand func() (ast.Expr, error), ops ...lexer.TokKind) (ast.Expr, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for p.at(ops...) {
		op := p.next()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Left: left, Op: op, Right: right}
	}
	return left, nil
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	return p.binary(p.parseComparison, lexer.TokEqual, lexer.TokBangEqual)
}

func (p *Parser) parseComparison() (ast.Expr, error) {
	return p.binary(p.parseAdditive,
		lexer.TokLess, lexer.TokMore, lexer.TokBangLess, lexer.TokBangMore)
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	return p.binary(p.parseMultiplicative, lexer.TokPlus, lexer.TokMinus)
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	return p.binary(p.parseUnary, lexer.TokStar, lexer.TokSlash)
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	if p.at(lexer.TokBang, lexer.TokMinus) {
		op := p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: op, X: x}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.cur()
	switch tok.Kind {
	case lexer.TokRight:
		p.next()
		return &ast.LiteralExpr{Token: tok, Value: true}, nil
	case lexer.TokWrong:
		p.next()
		return &ast.LiteralExpr{Token: tok, Value: false}, nil
	case lexer.TokString:
		p.next()
		return &ast.LiteralExpr{Token: tok, Value: tok.Lit}, nil
	case lexer.TokNumber:
		p.next()
		v, err := NumberValue(tok)
		if err != nil {
			return nil, p.fail(keyUnexpectedToken, tok, "invalid number %q", tok.Lex)
		}
		return &ast.LiteralExpr{Token: tok, Value: v}, nil
	case lexer.TokLParen:
		p.next()
		x, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokRParen); err != nil {
			return nil, err
		}
		return &ast.GroupingExpr{X: x}, nil
	case lexer.TokIdent:
		return p.parseVariable()
	}
	return nil, p.fail(keyExpectedExpression, tok, "expected an expression, but %s", found(tok))
}

// NumberValue computes the value of a NumericLiteral token. Out-of-range
// literals saturate to ±Inf.
func NumberValue(tok lexer.Token) (float64, error) {
	v, err := strconv.ParseFloat(tok.Lex, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, err
	}
	return v, nil
}

/*
parseVariable reads a name and greedily takes a comma-separated argument
list. Named arguments are tried first:

	show message
	greet "ana", greeting: "hi"
*/
func (p *Parser) parseVariable() (ast.Expr, error) {
	v := &ast.VariableExpr{Name: p.next()}
	for {
		var arg ast.Argument
		switch {
		case p.at(lexer.TokIdent) && p.kindAt(1) == lexer.TokColon:
			name := p.next()
			p.next()
			arg.Name = &name
		case p.atExpressionStart():
		default:
			return v, nil
		}
		val, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		arg.Value = val
		v.Args = append(v.Args, arg)
		if !p.accept(lexer.TokComma) {
			return v, nil
		}
	}
}
