package parser

import (
	"github.com/al-lang/al/internal/ast"
	"github.com/al-lang/al/internal/diagnostics"
	"github.com/al-lang/al/internal/token"
)

// parseInterpolatedString consumes an INTERP_STRING_START .. INTERP_STRING_END
// token run. Each embedded expression's tokens were spliced directly into
// the stream by the lexer (no per-expression wrapper token), so this relies
// on INTERP_STRING_PART/END never appearing in the infix precedence table:
// parseExpression(lowest) naturally stops the instant an embedded
// expression's tokens run out.
func (p *Parser) parseInterpolatedString() ast.Expression {
	start := p.advance() // consume INTERP_STRING_START
	var parts []ast.Expression
	for {
		switch p.cur().Type {
		case token.INTERP_STRING_PART:
			tok := p.advance()
			parts = append(parts, &ast.StringLiteral{Base: ast.Base{Sp: tok.Span}, Value: tok.Literal})
		case token.INTERP_STRING_END:
			end := p.advance()
			return &ast.InterpolatedStringExpr{Base: ast.Base{Sp: token.Join(start.Span, end.Span)}, Parts: parts}
		case token.EOF:
			p.errorAt(p.cur().Span, diagnostics.ErrS001UnterminatedString, "unterminated interpolated string")
			return &ast.InterpolatedStringExpr{Base: ast.Base{Sp: token.Join(start.Span, p.cur().Span)}, Parts: parts}
		default:
			parts = append(parts, p.parseExpression(lowest))
		}
	}
}
