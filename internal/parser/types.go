package parser

import (
	"github.com/al-lang/al/internal/ast"
	"github.com/al-lang/al/internal/diagnostics"
	"github.com/al-lang/al/internal/token"
)

// parseType parses a full type annotation, including the trailing `!Err`
// Result sugar (spec.md §3). Callers that need the success/error halves
// split out separately (function declarations) unwrap a *ast.ResultTypeNode
// themselves rather than duplicating this grammar.
func (p *Parser) parseType() ast.TypeNode {
	base := p.parseTypePrimary()
	if p.check(token.BANG) {
		p.advance()
		errType := p.parseTypePrimary()
		return ast.NewResultType(token.Join(base.Span(), errType.Span()), base, errType)
	}
	return base
}

func (p *Parser) parseTypePrimary() ast.TypeNode {
	switch p.cur().Type {
	case token.QUESTION:
		start := p.advance()
		inner := p.parseTypePrimary()
		return ast.NewOptionType(token.Join(start.Span, inner.Span()), inner)
	case token.LBRACKET:
		start := p.advance()
		p.pushContext(CtxArray)
		elem := p.parseType()
		closeTok, ok := p.expect(token.RBRACKET, diagnostics.ErrP003MissingPunctuation, "expected ']' to close array type")
		p.popContext()
		end := start.Span
		if ok {
			end = closeTok.Span
		} else {
			p.synchronize()
		}
		return ast.NewArrayType(token.Join(start.Span, end), elem)
	case token.LPAREN:
		start := p.advance()
		p.pushContext(CtxFunctionParams)
		var elems []ast.TypeNode
		for !p.check(token.RPAREN) && !p.atEOF() {
			elems = append(elems, p.parseType())
			if !p.match(token.COMMA) {
				break
			}
		}
		closeTok, ok := p.expect(token.RPAREN, diagnostics.ErrP003MissingPunctuation, "expected ')' to close tuple type")
		p.popContext()
		end := start.Span
		if ok {
			end = closeTok.Span
		} else {
			p.synchronize()
		}
		return ast.NewTupleType(token.Join(start.Span, end), elems)
	case token.IDENT:
		tok := p.advance()
		end := tok.Span
		var args []ast.TypeNode
		if p.check(token.LPAREN) {
			args, end = p.parseParenTypeList()
		}
		return ast.NewNamedType(token.Join(tok.Span, end), tok.Lexeme, args)
	default:
		tok := p.cur()
		p.errorAt(tok.Span, diagnostics.ErrP001UnexpectedToken, "expected a type, found '"+tok.Lexeme+"'")
		if !p.atEOF() {
			p.advance()
		}
		return ast.NewNamedType(tok.Span, "", nil)
	}
}

// parseParenTypeList parses `(T1, T2, ...)`, used both for generic
// type-argument lists in type position and for explicit instantiation args
// in a struct initializer (spec.md §4.2's "type-args-vs-call-args"
// disambiguation).
func (p *Parser) parseParenTypeList() ([]ast.TypeNode, token.Span) {
	open := p.advance() // consume `(`
	p.pushContext(CtxFunctionParams)
	var list []ast.TypeNode
	for !p.check(token.RPAREN) && !p.atEOF() {
		list = append(list, p.parseType())
		if !p.match(token.COMMA) {
			break
		}
	}
	closeTok, ok := p.expect(token.RPAREN, diagnostics.ErrP003MissingPunctuation, "expected ')' to close type arguments")
	p.popContext()
	end := open.Span
	if ok {
		end = closeTok.Span
	} else {
		p.synchronize()
	}
	return list, end
}
