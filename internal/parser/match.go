package parser

import (
	"github.com/al-lang/al/internal/ast"
	"github.com/al-lang/al/internal/diagnostics"
	"github.com/al-lang/al/internal/token"
)

func (p *Parser) parseMatchExpression() ast.Expression {
	start := p.advance() // consume `match`

	prevNoStruct := p.noStructLiteral
	p.noStructLiteral = true
	subject := p.parseExpression(lowest)
	p.noStructLiteral = prevNoStruct

	if _, ok := p.expect(token.LBRACE, diagnostics.ErrP003MissingPunctuation, "expected '{' to start match body"); !ok {
		return &ast.MatchExpression{Base: ast.Base{Sp: token.Join(start.Span, subject.Span())}, Subject: subject}
	}

	p.pushContext(CtxMatchArms)
	var arms []ast.MatchArm
	for !p.check(token.RBRACE) && !p.atEOF() {
		pattern := p.parsePattern()
		if p.check(token.PIPE) {
			patterns := []ast.Expression{pattern}
			for p.match(token.PIPE) {
				patterns = append(patterns, p.parsePattern())
			}
			sp := token.Join(patterns[0].Span(), patterns[len(patterns)-1].Span())
			pattern = &ast.OrPattern{Base: ast.Base{Sp: sp}, Patterns: patterns}
		}

		if _, ok := p.expect(token.ARROW, diagnostics.ErrP003MissingPunctuation, "expected '->' after match pattern"); !ok {
			p.synchronize()
			continue
		}
		body := p.parseMatchArmBody()
		arms = append(arms, ast.MatchArm{Pattern: pattern, Body: body, Sp: token.Join(pattern.Span(), body.Span())})
		p.match(token.COMMA)
	}

	closeTok, closed := p.expect(token.RBRACE, diagnostics.ErrP003MissingPunctuation, "expected '}' to close match body")
	end := start.Span
	if closed {
		p.popContext()
		end = closeTok.Span
	} else {
		p.synchronize()
	}
	return &ast.MatchExpression{Base: ast.Base{Sp: token.Join(start.Span, end)}, Subject: subject, Arms: arms}
}

func (p *Parser) parseMatchArmBody() ast.Expression {
	if p.check(token.LBRACE) {
		return p.parseBlock()
	}
	return p.parseExpression(lowest)
}

// parsePattern parses a match-arm or destructuring pattern. Patterns are
// ordinary Expression nodes reused in a pattern role (ast package design
// note): a literal, identifier (bind), wildcard, tuple, array (possibly with
// a spread element), or enum/struct constructor call, qualified or bare.
func (p *Parser) parsePattern() ast.Expression {
	if p.check(token.IDENT) && p.cur().Lexeme == "_" {
		tok := p.advance()
		return &ast.WildcardPattern{Base: ast.Base{Sp: tok.Span}}
	}
	if p.check(token.KW_ELSE) {
		tok := p.advance()
		return &ast.WildcardPattern{Base: ast.Base{Sp: tok.Span}}
	}
	return p.parseExpression(lowest)
}
