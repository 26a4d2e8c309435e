package parser

import (
	"errors"

	"github.com/utkrisht/uki/compiler/internal/ast"
	"github.com/utkrisht/uki/compiler/internal/lexer"
)

// parseModuleItem handles one top-level item in ModeModule: imports and
// exports are collected, anything else is skipped whole. Syntax errors
// resynchronize like parseDeclaration.
func (p *Parser) parseModuleItem() error {
	var err error
	switch {
	case p.at(lexer.TokImport):
		var im *ast.Import
		if im, err = p.parseImport(); err == nil {
			p.imports = append(p.imports, im)
		}
	case p.at(lexer.TokExport):
		var ex *ast.Export
		if ex, err = p.parseExport(); err == nil {
			p.exports = append(p.exports, ex)
		}
	default:
		p.skipStatement()
	}
	if err == nil {
		return nil
	}
	var se *SyntaxError
	if !errors.As(err, &se) {
		return err
	}
	p.synchronize()
	return nil
}

// parseImport parses `import a/b/c`.
func (p *Parser) parseImport() (*ast.Import, error) {
	im := &ast.Import{Keyword: p.next()}
	for {
		seg, err := p.expect(lexer.TokIdent)
		if err != nil {
			return nil, err
		}
		im.Path = append(im.Path, seg)
		if !p.accept(lexer.TokSlash) {
			break
		}
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	return im, nil
}

// parseExport parses `export <declaration>`.
func (p *Parser) parseExport() (*ast.Export, error) {
	ex := &ast.Export{Keyword: p.next()}
	decl, err := p.parseVarDecl()
	if err != nil {
		return nil, err
	}
	ex.Decl = decl
	return ex, nil
}

// skipStatement advances past one top-level statement: up to and including
// its NewLine, or the Dedent closing its last block.
func (p *Parser) skipStatement() {
	depth := 0
	for !p.at(lexer.TokEOF) {
		switch p.next().Kind {
		case lexer.TokIndent:
			depth++
		case lexer.TokDedent:
			depth--
			if depth <= 0 {
				return
			}
		case lexer.TokNewline:
			if depth == 0 {
				return
			}
		}
	}
}
