package parser

import (
	"errors"

	"github.com/utkrisht/uki/compiler/internal/ast"
	"github.com/utkrisht/uki/compiler/internal/lexer"
)

// parseDeclaration parses one statement and is the only recovery point: on
// a syntax error it resynchronizes and yields no statement. Other errors
// propagate.
func (p *Parser) parseDeclaration() (ast.Stmt, error) {
	s, err := p.parseStatementOrDecl()
	if err == nil {
		return s, nil
	}
	var se *SyntaxError
	if !errors.As(err, &se) {
		return nil, err
	}
	from := p.cur().Line
	p.synchronize()
	p.log.Debug("resync", "from", from, "to", p.cur().Line, "token", p.cur().Kind.String())
	return nil, nil
}

// synchronize advances at least one token, then stops at EndOfFile or at
// the next `loop` or `when`.
func (p *Parser) synchronize() {
	for !p.at(lexer.TokEOF) {
		p.next()
		if p.at(lexer.TokLoop, lexer.TokWhen) {
			return
		}
	}
}

func (p *Parser) parseStatementOrDecl() (ast.Stmt, error) {
	switch {
	case p.at(lexer.TokIdent) && p.isDeclaration():
		d, err := p.parseVarDecl()
		if err != nil {
			return nil, err
		}
		return d, nil
	case p.at(lexer.TokImport, lexer.TokExport):
		return nil, p.fail(keyModuleItem, p.cur(), "cannot import or export modules in this environment")
	}
	return p.parseStatement()
}

// isDeclaration scans ahead for a Tilde before the statement ends. Tokens
// inside {} and [] or an indented block do not end the statement.
func (p *Parser) isDeclaration() bool {
	curly, square, block := 0, 0, 0
	for i := p.pos; i < len(p.toks); i++ {
		k := p.toks[i].Kind
		if k == lexer.TokEOF {
			return false
		}
		if curly == 0 && square == 0 && block == 0 {
			switch k {
			case lexer.TokNewline, lexer.TokDedent:
				return false
			case lexer.TokTilde:
				return true
			}
		}
		switch k {
		case lexer.TokLBrace:
			curly++
		case lexer.TokRBrace:
			curly--
		case lexer.TokLBrack:
			square++
		case lexer.TokRBrack:
			square--
		case lexer.TokIndent:
			block++
		case lexer.TokDedent:
			block--
		}
	}
	return false
}

// parseVarDecl parses `name (param (: default)?),* ~ value`.
func (p *Parser) parseVarDecl() (*ast.Declaration, error) {
	name, err := p.expect(lexer.TokIdent)
	if err != nil {
		return nil, err
	}
	decl := &ast.Declaration{Name: name}
	for p.at(lexer.TokIdent) {
		param := ast.Param{Name: p.next()}
		if p.accept(lexer.TokColon) {
			def, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			param.Default = def
		}
		decl.Params = append(decl.Params, param)
		if !p.accept(lexer.TokComma) {
			break
		}
	}
	if _, err := p.expect(lexer.TokTilde); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	decl.Value = value
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch p.cur().Kind {
	case lexer.TokWhen:
		return p.parseWhen()
	case lexer.TokLoop:
		return p.parseLoop()
	case lexer.TokTry:
		return p.parseTry()
	case lexer.TokExit:
		return p.parseExit()
	case lexer.TokStop, lexer.TokSkip:
		return p.parseStopOrSkip()
	case lexer.TokIdent:
		if p.kindAt(1) == lexer.TokEqual {
			return p.parseAssignment()
		}
	case lexer.TokElse:
		return nil, p.fail(keyElseWithoutWhen, p.cur(), "cannot use `else` without `when`")
	case lexer.TokFix:
		return nil, p.fail(keyFixWithoutTry, p.cur(), "cannot use `fix` without `try`")
	case lexer.TokWith:
		return nil, p.fail(keyWithWithoutLoop, p.cur(), "cannot use `with` without `loop`")
	case lexer.TokNewline:
		// empty statement
		p.next()
		return nil, nil
	}
	return p.parseExprStmt()
}

func (p *Parser) parseExprStmt() (ast.Stmt, error) {
	x, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{X: x}, nil
}

func (p *Parser) parseAssignment() (ast.Stmt, error) {
	name := p.next()
	if _, err := p.expect(lexer.TokEqual); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	return &ast.Assignment{Name: name, Value: value}, nil
}

// parseBlock parses Indent, statements, Dedent.
func (p *Parser) parseBlock() (*ast.Block, error) {
	if _, err := p.expect(lexer.TokIndent); err != nil {
		return nil, err
	}
	blk := &ast.Block{}
	for !p.at(lexer.TokDedent, lexer.TokEOF) {
		s, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}
		if s != nil {
			blk.Statements = append(blk.Statements, s)
		}
	}
	if _, err := p.expect(lexer.TokDedent); err != nil {
		return nil, err
	}
	return blk, nil
}

/*
parseWhen parses a `when` clause and its `else` clauses. Only the final
`else` may drop its condition:

	when score > 90
	    show "great"
	else score > 50
	    show "fine"
	else
	    show "try again"
*/
func (p *Parser) parseWhen() (ast.Stmt, error) {
	kw := p.next()
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	st := &ast.WhenStmt{Clauses: []ast.WhenClause{{Keyword: kw, Cond: cond, Body: body}}}

	for p.at(lexer.TokElse) {
		if st.Clauses[len(st.Clauses)-1].Cond == nil {
			return nil, p.fail(keyElseAfterCatchAll, p.cur(), "an `else` without a condition must be the last clause")
		}
		clause := ast.WhenClause{Keyword: p.next()}
		if !p.at(lexer.TokIndent) {
			if clause.Cond, err = p.parseExpression(); err != nil {
				return nil, err
			}
		}
		if clause.Body, err = p.parseBlock(); err != nil {
			return nil, err
		}
		st.Clauses = append(st.Clauses, clause)
	}
	return st, nil
}

/*
parseLoop parses one or more clauses sharing a body, optionally wrapped in
parentheses:

	loop 3
	loop items with item
	loop (pairs with [key, value], 10)
*/
func (p *Parser) parseLoop() (ast.Stmt, error) {
	st := &ast.LoopStmt{Keyword: p.next()}
	grouped := p.accept(lexer.TokLParen)

	for p.atExpressionStart() {
		left, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		clause := ast.LoopClause{Left: left}
		if p.at(lexer.TokWith) {
			w := p.next()
			clause.With = &w
			if clause.Binding, err = p.parseBinding(); err != nil {
				return nil, err
			}
		}
		st.Clauses = append(st.Clauses, clause)
		if !p.accept(lexer.TokComma) {
			break
		}
	}
	if len(st.Clauses) == 0 {
		return nil, p.fail(keyExpectedLoopClause, p.cur(), "expected a loop clause, but %s", found(p.cur()))
	}
	if grouped {
		if _, err := p.expect(lexer.TokRParen); err != nil {
			return nil, err
		}
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	st.Body = body
	return st, nil
}

// parseBinding parses `name` or a nested `[a, [b, c]]` destructure.
func (p *Parser) parseBinding() (ast.Binding, error) {
	switch {
	case p.at(lexer.TokIdent):
		return &ast.IdentBinding{Name: p.next()}, nil
	case p.accept(lexer.TokLBrack):
		d := &ast.DestructureBinding{}
		for !p.at(lexer.TokRBrack) {
			el, err := p.parseBinding()
			if err != nil {
				return nil, err
			}
			d.Elems = append(d.Elems, el)
			if !p.accept(lexer.TokComma) {
				break
			}
		}
		if _, err := p.expect(lexer.TokRBrack); err != nil {
			return nil, err
		}
		return d, nil
	}
	return nil, p.unexpected(lexer.TokLBrack, lexer.TokIdent)
}

func (p *Parser) parseTry() (ast.Stmt, error) {
	st := &ast.TryStmt{Try: p.next()}
	var err error
	if st.Body, err = p.parseBlock(); err != nil {
		return nil, err
	}
	if st.Fix, err = p.expect(lexer.TokFix); err != nil {
		return nil, err
	}
	if st.Rescue, err = p.parseBlock(); err != nil {
		return nil, err
	}
	return st, nil
}

func (p *Parser) parseExit() (ast.Stmt, error) {
	st := &ast.ExitStmt{Keyword: p.next()}
	if !p.cur().Kind.IsTerminator() {
		v, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		st.Value = v
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	return st, nil
}

func (p *Parser) parseStopOrSkip() (ast.Stmt, error) {
	kw := p.next()
	var label *lexer.Token
	if p.at(lexer.TokIdent) {
		t := p.next()
		label = &t
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	if kw.Kind == lexer.TokStop {
		return &ast.StopStmt{Keyword: kw, Label: label}, nil
	}
	return &ast.SkipStmt{Keyword: kw, Label: label}, nil
}
