package parser

import (
	"github.com/al-lang/al/internal/ast"
	"github.com/al-lang/al/internal/diagnostics"
	"github.com/al-lang/al/internal/token"
)

// parseIdentifierLed resolves the struct-init-vs-plain-identifier and
// type-args-vs-call-args ambiguities (spec.md §4.2) at the point where an
// identifier is read in prefix position. Plain call expressions are left to
// the ordinary LPAREN infix handler.
func (p *Parser) parseIdentifierLed() ast.Expression {
	name := p.parseIdentifierBare()

	if name.IsUpper && p.check(token.LPAREN) && p.parenFollowedByBrace() {
		typeArgs, _ := p.parseParenTypeList()
		return p.parseStructInit(name, typeArgs)
	}
	if name.IsUpper && p.check(token.LBRACE) && !p.noStructLiteral && p.looksLikeStructInitBody(0) {
		return p.parseStructInit(name, nil)
	}
	return name
}

// parenFollowedByBrace reports whether, starting at the current `(` token,
// the matching `)` is immediately followed by a `{` that itself looks like a
// struct-init body — the signal that a parenthesized list is a generic
// type-argument list feeding a struct initializer rather than ordinary call
// arguments. Without the struct-init-body lookahead, `Foo(T) { 1 + 2 }`
// (a plain reference to a generic name followed by an unrelated block)
// would be misread as the start of a malformed initializer.
func (p *Parser) parenFollowedByBrace() bool {
	depth := 0
	for offset := 0; offset < 4096; offset++ {
		t := p.peek(offset)
		switch t.Type {
		case token.EOF:
			return false
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
			if depth == 0 {
				braceOffset := offset + 1
				return p.peek(braceOffset).Type == token.LBRACE && p.looksLikeStructInitBody(braceOffset)
			}
		}
	}
	return false
}

// looksLikeStructInitBody reports whether the token at braceOffset (a `{`)
// opens a struct initializer rather than an unrelated block, per spec.md
// §4.2's one-token lookahead: an immediate `}` (empty initializer) or an
// `IDENT ':'` (first field) after the brace.
func (p *Parser) looksLikeStructInitBody(braceOffset int) bool {
	next := p.peek(braceOffset + 1)
	if next.Type == token.RBRACE {
		return true
	}
	return next.Type == token.IDENT && p.peek(braceOffset+2).Type == token.COLON
}

func (p *Parser) parseStructInit(name *ast.Identifier, typeArgs []ast.TypeNode) ast.Expression {
	open, _ := p.expect(token.LBRACE, diagnostics.ErrP003MissingPunctuation, "expected '{' to start struct initializer")
	p.pushContext(CtxStructInit)
	var fields []ast.FieldInit
	for !p.check(token.RBRACE) && !p.atEOF() {
		fieldName := p.parseIdentifierBare()
		_, ok := p.expect(token.COLON, diagnostics.ErrP003MissingPunctuation, "expected ':' after field name")
		if !ok {
			p.synchronize()
			continue
		}
		value := p.parseExpression(lowest)
		fields = append(fields, ast.FieldInit{Name: fieldName, Value: value, Sp: token.Join(fieldName.Span(), value.Span())})
		if !p.match(token.COMMA) {
			break
		}
	}
	closeTok, closed := p.expect(token.RBRACE, diagnostics.ErrP003MissingPunctuation, "expected '}' to close struct initializer")
	end := open.Span
	if closed {
		p.popContext()
		end = closeTok.Span
	} else {
		p.synchronize()
	}
	return &ast.StructInitExpression{
		Base:     ast.Base{Sp: token.Join(name.Span(), end)},
		TypeName: name,
		TypeArgs: typeArgs,
		Fields:   fields,
	}
}
