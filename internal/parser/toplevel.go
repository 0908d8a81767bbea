package parser

import (
	"github.com/al-lang/al/internal/ast"
	"github.com/al-lang/al/internal/diagnostics"
	"github.com/al-lang/al/internal/token"
)

func (p *Parser) parseTopLevelMember() ast.Node {
	switch p.cur().Type {
	case token.KW_FROM:
		return p.parseImportDeclaration()
	case token.KW_EXPORT:
		return p.parseExportDeclaration()
	case token.KW_STRUCT:
		return p.parseStructDeclaration()
	case token.KW_ENUM:
		return p.parseEnumDeclaration()
	}
	return p.parseCommonStatement()
}

// parseTopLevel parses the entire token stream into the module's top-level
// Block (spec.md §6: the parse result is directly an ast.Block, with no
// separate Program node).
func (p *Parser) parseTopLevel() *ast.Block {
	start := p.cur().Span
	var body []ast.Node
	for !p.atEOF() {
		before := p.pos
		node := p.parseTopLevelMember()
		if node != nil {
			body = append(body, node)
		}
		if p.pos == before {
			// Safety valve: a dispatch path that consumed nothing would spin
			// forever; force progress via the top-level synchronizer.
			p.errorAt(p.cur().Span, diagnostics.ErrP001UnexpectedToken, "unexpected token '"+p.cur().Lexeme+"'")
			p.synchronize()
			if p.pos == before {
				p.advance()
			}
		}
	}
	end := start
	if len(body) > 0 {
		end = body[len(body)-1].Span()
	}
	return &ast.Block{Sp: token.Join(start, end), Body: body}
}
