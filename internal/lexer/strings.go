package lexer

import (
	"strings"

	"github.com/al-lang/al/internal/diagnostics"
	"github.com/al-lang/al/internal/token"
)

type stringPieceKind int

const (
	pieceLiteral stringPieceKind = iota
	pieceBareIdent
	pieceExpr
)

type stringPiece struct {
	kind stringPieceKind
	text string
	span token.Span
}

// readStringToken scans a single-quoted string literal starting at the
// opening quote (already positioned at it). It decodes backslash escapes
// and recognizes $ident / ${expr} interpolation points. A string with no
// interpolation becomes a single STRING token; otherwise it becomes an
// INTERP_STRING_START, alternating INTERP_STRING_PART / embedded-expression
// tokens, INTERP_STRING_END sequence queued on l.pending.
func (l *Lexer) readStringToken(start token.Span, leading []token.Trivia) token.Token {
	l.readChar() // consume opening '

	var pieces []stringPiece
	var buf strings.Builder
	bufStart := l.here()
	hasInterp := false

	flush := func(end token.Span) {
		sp := token.Span{StartLine: bufStart.StartLine, StartColumn: bufStart.StartColumn, EndLine: end.StartLine, EndColumn: end.StartColumn}
		pieces = append(pieces, stringPiece{kind: pieceLiteral, text: buf.String(), span: sp})
		buf.Reset()
	}

	for {
		if l.ch == 0 {
			l.addDiag(diagnostics.ErrS001UnterminatedString, l.spanFrom(start), "unterminated string literal")
			flush(l.here())
			break
		}
		if l.ch == '\'' {
			// A closing quote right after an embedded expression adds no
			// trailing empty INTERP_STRING_PART.
			if buf.Len() > 0 || !hasInterp {
				flush(l.here())
			}
			l.readChar() // consume closing '
			break
		}
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				buf.WriteByte('\n')
			case 'r':
				buf.WriteByte('\r')
			case 't':
				buf.WriteByte('\t')
			case '\\':
				buf.WriteByte('\\')
			case '\'':
				buf.WriteByte('\'')
			case '0':
				buf.WriteByte(0)
			default:
				l.addDiag(diagnostics.ErrS004BadEscape, l.here(), "unknown escape sequence '\\"+string(l.ch)+"'")
				buf.WriteRune(l.ch)
			}
			l.readChar()
			continue
		}
		if l.ch == '$' && l.peekChar() == '{' {
			flush(l.here())
			hasInterp = true
			exprStart := l.here()
			l.readChar() // consume '$'
			l.readChar() // consume '{'
			exprTextStart := l.here()
			text, closed := l.readBalancedBraces()
			if !closed {
				l.addDiag(diagnostics.ErrS001UnterminatedString, exprStart, "unterminated string interpolation")
			}
			pieces = append(pieces, stringPiece{kind: pieceExpr, text: text, span: exprTextStart})
			bufStart = l.here()
			continue
		}
		if l.ch == '$' && isLetter(l.peekChar()) {
			flush(l.here())
			hasInterp = true
			l.readChar() // consume '$'
			identStart := l.here()
			ident := l.readIdentifier()
			pieces = append(pieces, stringPiece{kind: pieceBareIdent, text: ident, span: l.spanFrom(identStart)})
			bufStart = l.here()
			continue
		}
		buf.WriteRune(l.ch)
		l.readChar()
	}
	full := l.spanFrom(start)

	if !hasInterp {
		lit := ""
		if len(pieces) > 0 {
			lit = pieces[0].text
		}
		return token.Token{Type: token.STRING, Lexeme: lit, Literal: lit, Span: full, LeadingTrivia: leading}
	}

	return l.materializeInterpolation(pieces, full, leading)
}

// readBalancedBraces consumes input up to (and including) the closing '}'
// that balances the '{' already consumed, correctly skipping over nested
// braces and nested string literals (so a brace inside an embedded string
// doesn't prematurely end the interpolation).
func (l *Lexer) readBalancedBraces() (string, bool) {
	start := l.position
	depth := 1
	for {
		if l.ch == 0 {
			return l.input[start:l.position], false
		}
		if l.ch == '\'' {
			l.skipNestedStringLiteral()
			continue
		}
		if l.ch == '{' {
			depth++
			l.readChar()
			continue
		}
		if l.ch == '}' {
			depth--
			if depth == 0 {
				text := l.input[start:l.position]
				l.readChar() // consume closing '}'
				return text, true
			}
			l.readChar()
			continue
		}
		l.readChar()
	}
}

// skipNestedStringLiteral advances past a string literal embedded inside an
// interpolation expression without interpreting its contents, so braces
// inside it are not counted.
func (l *Lexer) skipNestedStringLiteral() {
	l.readChar() // consume opening '
	for l.ch != '\'' && l.ch != 0 {
		if l.ch == '\\' {
			l.readChar()
			if l.ch == 0 {
				return
			}
		}
		l.readChar()
	}
	if l.ch == '\'' {
		l.readChar()
	}
}

// materializeInterpolation turns the piece list into the token sequence
// spec §4.1 requires, sub-scanning each ${expr} piece with a fresh Lexer
// instance (the "embedded-expression sub-scanner" reusing the same scanner
// logic) and offsetting resulting spans back into the enclosing source.
func (l *Lexer) materializeInterpolation(pieces []stringPiece, full token.Span, leading []token.Trivia) token.Token {
	var out []token.Token
	first := true

	emitLiteral := func(p stringPiece) {
		ty := token.INTERP_STRING_PART
		if first {
			ty = token.INTERP_STRING_START
		}
		out = append(out, token.Token{Type: ty, Lexeme: p.text, Literal: p.text, Span: p.span})
		first = false
	}

	for _, p := range pieces {
		switch p.kind {
		case pieceLiteral:
			emitLiteral(p)
		case pieceBareIdent:
			out = append(out, token.Token{Type: token.IDENT, Lexeme: p.text, Literal: p.text, Span: p.span})
			first = false
		case pieceExpr:
			sub := New(p.text)
			for {
				t := sub.NextToken()
				if t.Type == token.EOF {
					break
				}
				out = append(out, offsetToken(t, p.span))
			}
			l.diags = append(l.diags, sub.diags...)
			first = false
		}
	}

	out = append(out, token.Token{Type: token.INTERP_STRING_END, Span: token.Span{StartLine: full.EndLine, StartColumn: full.EndColumn, EndLine: full.EndLine, EndColumn: full.EndColumn}})

	head := out[0]
	head.LeadingTrivia = leading
	out[0] = head

	l.pending = append(l.pending, out[1:]...)
	return out[0]
}

// offsetToken rebases a token produced by a sub-lexer on an extracted
// expression substring back into the coordinates of the outer source, so
// spans reported from embedded expressions still point at real source
// positions.
func offsetToken(t token.Token, origin token.Span) token.Token {
	lineOffset := origin.StartLine - 1
	adjust := func(line, col int) (int, int) {
		if line == 1 {
			return line + lineOffset, col + origin.StartColumn - 1
		}
		return line + lineOffset, col
	}
	sl, sc := adjust(t.Span.StartLine, t.Span.StartColumn)
	el, ec := adjust(t.Span.EndLine, t.Span.EndColumn)
	t.Span = token.Span{StartLine: sl, StartColumn: sc, EndLine: el, EndColumn: ec}
	return t
}
