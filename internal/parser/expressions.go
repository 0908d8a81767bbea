package parser

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/al-lang/al/internal/ast"
	"github.com/al-lang/al/internal/diagnostics"
	"github.com/al-lang/al/internal/token"
)

type prefixParseFn func() ast.Expression
type infixParseFn func(left ast.Expression) ast.Expression

func (p *Parser) peekPrecedence() precedence {
	if pr, ok := precedences[p.cur().Type]; ok {
		return pr
	}
	return lowest
}

// parseExpression is the Pratt engine: parses a prefix term, then repeatedly
// folds in infix/postfix continuations whose precedence exceeds minPrec.
func (p *Parser) parseExpression(minPrec precedence) ast.Expression {
	left := p.parsePrefix()

	for !p.atEOF() && minPrec < p.peekPrecedence() {
		if p.cur().Type == token.LBRACKET && tokenHasLeadingTrivia(p.cur()) {
			// No-leading-trivia rule: `a[0]` indexes a, but `a\n[0]` starts a
			// new array-literal statement instead (spec.md §4.2).
			break
		}
		infix := p.infixFor(p.cur().Type)
		if infix == nil {
			break
		}
		left = infix(left)
	}
	return left
}

func tokenHasLeadingTrivia(t token.Token) bool { return len(t.LeadingTrivia) > 0 }

func (p *Parser) parsePrefix() ast.Expression {
	tok := p.cur()
	switch tok.Type {
	case token.NUMBER:
		return p.parseNumberLiteral()
	case token.STRING:
		return p.parseStringLiteral()
	case token.INTERP_STRING_START:
		return p.parseInterpolatedString()
	case token.KW_TRUE, token.KW_FALSE:
		return p.parseBoolLiteral()
	case token.KW_NONE:
		p.advance()
		return &ast.NoneLiteral{Base: ast.Base{Sp: tok.Span}}
	case token.IDENT:
		return p.parseIdentifierLed()
	case token.LPAREN:
		return p.parseParenExpression()
	case token.LBRACKET:
		return p.parseArrayExpression()
	case token.KW_IF:
		return p.parseIfExpression()
	case token.KW_MATCH:
		return p.parseMatchExpression()
	case token.KW_FN:
		return p.parseFunctionExpression()
	case token.KW_ERROR:
		return p.parseErrorExpression()
	case token.KW_ASSERT:
		return p.parseAssertExpression()
	case token.MINUS, token.BANG:
		return p.parseUnaryExpression()
	case token.PLUSPLUS, token.MINUSMINUS:
		p.advance()
		p.errorAt(tok.Span, diagnostics.ErrP005DisallowedOperator, "'"+string(tok.Type)+"' is not a valid AL operator")
		return ast.NewErrorNode(tok.Span, "disallowed operator "+string(tok.Type))
	default:
		p.advance()
		p.errorAt(tok.Span, diagnostics.ErrP001UnexpectedToken, "unexpected token '"+tok.Lexeme+"'")
		return ast.NewErrorNode(tok.Span, "unexpected token")
	}
}

func (p *Parser) infixFor(tt token.Type) infixParseFn {
	switch tt {
	case token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT,
		token.EQ, token.NOT_EQ, token.LT, token.GT, token.LTE, token.GTE,
		token.AND, token.OROR:
		return p.parseBinaryExpression
	case token.DOTDOT:
		return p.parseRangeExpression
	case token.DOT:
		return p.parsePropertyAccess
	case token.LBRACKET:
		return p.parseIndexExpression
	case token.LPAREN:
		return p.parseCallExpression
	case token.BANG, token.QUESTION:
		return p.parsePropagateExpression
	case token.KW_OR:
		return p.parseOrExpression
	}
	return nil
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	tok := p.advance()
	lit := &ast.NumberLiteral{Base: ast.Base{Sp: tok.Span}, Raw: tok.Lexeme}
	if strings.Contains(tok.Lexeme, ".") {
		lit.IsFloat = true
		f, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			p.errorAt(tok.Span, diagnostics.ErrS005MalformedNumber, "malformed number literal '"+tok.Lexeme+"'")
		}
		lit.Float = f
		return lit
	}
	n := new(big.Int)
	if _, ok := n.SetString(tok.Lexeme, 10); !ok {
		p.errorAt(tok.Span, diagnostics.ErrS005MalformedNumber, "malformed number literal '"+tok.Lexeme+"'")
	}
	lit.Int = n
	return lit
}

func (p *Parser) parseStringLiteral() ast.Expression {
	tok := p.advance()
	return &ast.StringLiteral{Base: ast.Base{Sp: tok.Span}, Value: tok.Literal}
}

func (p *Parser) parseBoolLiteral() ast.Expression {
	tok := p.advance()
	return &ast.BoolLiteral{Base: ast.Base{Sp: tok.Span}, Value: tok.Type == token.KW_TRUE}
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	tok := p.advance()
	operand := p.parseExpression(precUnary)
	return &ast.UnaryExpression{
		Base:    ast.Base{Sp: token.Join(tok.Span, operand.Span())},
		Op:      string(tok.Type),
		Operand: operand,
	}
}

func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	tok := p.advance()
	prec := precedences[tok.Type]
	right := p.parseExpression(prec)
	return &ast.BinaryExpression{
		Base:  ast.Base{Sp: token.Join(left.Span(), right.Span())},
		Op:    string(tok.Type),
		Left:  left,
		Right: right,
	}
}

func (p *Parser) parseRangeExpression(left ast.Expression) ast.Expression {
	p.advance() // consume `..`
	to := p.parseExpression(precSum)
	return &ast.RangeExpression{Base: ast.Base{Sp: token.Join(left.Span(), to.Span())}, From: left, To: to}
}

func (p *Parser) parsePropertyAccess(left ast.Expression) ast.Expression {
	dot := p.advance()
	switch p.cur().Type {
	case token.NUMBER:
		tok := p.advance()
		idx, err := strconv.Atoi(tok.Lexeme)
		if err != nil {
			p.errorAt(tok.Span, diagnostics.ErrP002ExpectedIdentifier, "expected a tuple index")
		}
		right := &ast.TupleIndex{Base: ast.Base{Sp: tok.Span}, Index: idx}
		return &ast.PropertyAccess{Base: ast.Base{Sp: token.Join(left.Span(), tok.Span)}, Left: left, Right: right}
	case token.IDENT:
		name := p.parseIdentifierBare()
		var right ast.Expression = name
		if p.check(token.LPAREN) {
			right = p.parseCallExpression(name)
		}
		return &ast.PropertyAccess{Base: ast.Base{Sp: token.Join(left.Span(), right.Span())}, Left: left, Right: right}
	default:
		errNode := p.errorNodeHere(diagnostics.ErrP002ExpectedIdentifier, "expected a field name or tuple index after '.'")
		return &ast.PropertyAccess{Base: ast.Base{Sp: token.Join(left.Span(), dot.Span)}, Left: left, Right: errNode}
	}
}

func (p *Parser) parseIdentifierBare() *ast.Identifier {
	tok := p.advance()
	return &ast.Identifier{Base: ast.Base{Sp: tok.Span}, Name: tok.Lexeme, IsUpper: isUpperIdent(tok.Lexeme)}
}

func isUpperIdent(name string) bool {
	if name == "" {
		return false
	}
	r := []rune(name)[0]
	return r >= 'A' && r <= 'Z'
}

func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	p.advance() // consume `[`
	p.pushContext(CtxArray)
	idx := p.parseExpression(lowest)
	closeTok, ok := p.expect(token.RBRACKET, diagnostics.ErrP003MissingPunctuation, "expected ']' to close index expression")
	p.popContext()
	if !ok {
		closeTok = p.cur()
	}
	return &ast.IndexExpression{Base: ast.Base{Sp: token.Join(left.Span(), closeTok.Span)}, Left: left, Index: idx}
}

func (p *Parser) parsePropagateExpression(left ast.Expression) ast.Expression {
	tok := p.advance()
	return &ast.PropagateExpression{Base: ast.Base{Sp: token.Join(left.Span(), tok.Span)}, Inner: left, Op: string(tok.Type)}
}

func (p *Parser) parseOrExpression(left ast.Expression) ast.Expression {
	p.advance() // consume `or`
	var receiver *ast.Identifier
	if p.check(token.IDENT) && p.peek(1).Type == token.ARROW {
		receiver = p.parseIdentifierBare()
		p.advance() // consume `->`
	}
	body := p.parseExpression(precOrFallback)
	return &ast.OrExpression{
		Base:     ast.Base{Sp: token.Join(left.Span(), body.Span())},
		Lhs:      left,
		Receiver: receiver,
		Body:     body,
	}
}

func (p *Parser) parseErrorExpression() ast.Expression {
	start := p.advance() // consume `error`
	inner := p.parseExpression(precUnary)
	return &ast.ErrorExpression{Base: ast.Base{Sp: token.Join(start.Span, inner.Span())}, Inner: inner}
}

func (p *Parser) parseAssertExpression() ast.Expression {
	start := p.advance() // consume `assert`
	cond := p.parseExpression(precLogicOr)
	var message ast.Expression
	end := cond.Span()
	if p.match(token.COMMA) {
		message = p.parseExpression(lowest)
		end = message.Span()
	}
	return &ast.AssertExpression{Base: ast.Base{Sp: token.Join(start.Span, end)}, Cond: cond, Message: message}
}

// parseParenExpression disambiguates `(expr)` grouping from `(e1, e2, ...)`
// tuple construction and from an empty `()`, which is rejected outright
// (spec.md §4.2: tuples require at least two elements, or a trailing comma
// for a one-element tuple).
func (p *Parser) parseParenExpression() ast.Expression {
	open := p.advance() // consume `(`
	p.pushContext(CtxFunctionParams)
	if p.check(token.RPAREN) {
		closeTok := p.advance()
		p.popContext()
		p.errorAt(token.Join(open.Span, closeTok.Span), diagnostics.ErrP004EmptyTuple, "'()' is not a valid expression")
		return ast.NewErrorNode(token.Join(open.Span, closeTok.Span), "empty tuple")
	}

	first := p.parseExpression(lowest)
	if p.check(token.COMMA) {
		elements := []ast.Expression{first}
		for p.match(token.COMMA) {
			if p.check(token.RPAREN) {
				break
			}
			elements = append(elements, p.parseExpression(lowest))
		}
		closeTok, ok := p.expect(token.RPAREN, diagnostics.ErrP003MissingPunctuation, "expected ')' to close tuple")
		p.popContext()
		end := open.Span
		if ok {
			end = closeTok.Span
		}
		return &ast.TupleExpression{Base: ast.Base{Sp: token.Join(open.Span, end)}, Elements: elements}
	}

	_, ok := p.expect(token.RPAREN, diagnostics.ErrP003MissingPunctuation, "expected ')' to close expression")
	p.popContext()
	if !ok {
		p.synchronize()
	}
	return first
}

func (p *Parser) parseArrayExpression() ast.Expression {
	open := p.advance() // consume `[`
	p.pushContext(CtxArray)
	var elements []ast.Expression
	for !p.check(token.RBRACKET) && !p.atEOF() {
		elements = append(elements, p.parseArrayElement())
		if !p.match(token.COMMA) {
			break
		}
	}
	closeTok, ok := p.expect(token.RBRACKET, diagnostics.ErrP003MissingPunctuation, "expected ']' to close array literal")
	p.popContext()
	end := open.Span
	if ok {
		end = closeTok.Span
	} else {
		p.synchronize()
	}
	return &ast.ArrayExpression{Base: ast.Base{Sp: token.Join(open.Span, end)}, Elements: elements}
}

func (p *Parser) parseArrayElement() ast.Expression {
	if p.check(token.DOTDOT) {
		start := p.advance()
		if p.check(token.COMMA) || p.check(token.RBRACKET) {
			return &ast.SpreadElement{Base: ast.Base{Sp: start.Span}}
		}
		inner := p.parseExpression(precSum)
		return &ast.SpreadElement{Base: ast.Base{Sp: token.Join(start.Span, inner.Span())}, Inner: inner}
	}
	return p.parseExpression(lowest)
}

func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	open := p.advance() // consume `(`
	p.pushContext(CtxFunctionParams)
	var args []ast.Expression
	for !p.check(token.RPAREN) && !p.atEOF() {
		args = append(args, p.parseExpression(lowest))
		if !p.match(token.COMMA) {
			break
		}
	}
	closeTok, ok := p.expect(token.RPAREN, diagnostics.ErrP003MissingPunctuation, "expected ')' to close call arguments")
	p.popContext()
	end := open.Span
	if ok {
		end = closeTok.Span
	} else {
		p.synchronize()
	}
	return &ast.CallExpression{Base: ast.Base{Sp: token.Join(callee.Span(), end)}, Callee: callee, Args: args}
}

func (p *Parser) parseIfExpression() ast.Expression {
	start := p.advance() // consume `if`
	prevNoStruct := p.noStructLiteral
	p.noStructLiteral = true
	cond := p.parseExpression(lowest)
	p.noStructLiteral = prevNoStruct
	then := p.parseBlock()
	sp := token.Join(start.Span, then.Span())
	ifExpr := &ast.IfExpression{Base: ast.Base{Sp: sp}, Cond: cond, Then: then}
	if p.match(token.KW_ELSE) {
		if p.check(token.KW_IF) {
			elseExpr := p.parseIfExpression()
			ifExpr.Else = elseExpr
			ifExpr.Sp = token.Join(ifExpr.Sp, elseExpr.Span())
		} else {
			elseBlock := p.parseBlock()
			ifExpr.Else = elseBlock
			ifExpr.Sp = token.Join(ifExpr.Sp, elseBlock.Span())
		}
	}
	return ifExpr
}

func (p *Parser) parseFunctionExpression() ast.Expression {
	start := p.advance() // consume `fn`
	params := p.parseParamList()
	body := p.parseBlock()
	return &ast.FunctionExpression{Base: ast.Base{Sp: token.Join(start.Span, body.Span())}, Params: params, Body: body}
}

func (p *Parser) parseParamList() []*ast.Param {
	_, _ = p.expect(token.LPAREN, diagnostics.ErrP003MissingPunctuation, "expected '(' to start parameter list")
	p.pushContext(CtxFunctionParams)
	var params []*ast.Param
	for !p.check(token.RPAREN) && !p.atEOF() {
		nameTok := p.advance()
		name := &ast.Identifier{Base: ast.Base{Sp: nameTok.Span}, Name: nameTok.Lexeme, IsUpper: isUpperIdent(nameTok.Lexeme)}
		param := &ast.Param{Name: name, Sp: nameTok.Span}
		if !p.check(token.COMMA) && !p.check(token.RPAREN) {
			param.TypeAnnotation = p.parseType()
			param.Sp = token.Join(param.Sp, param.TypeAnnotation.Span())
		}
		params = append(params, param)
		if !p.match(token.COMMA) {
			break
		}
	}
	_, ok := p.expect(token.RPAREN, diagnostics.ErrP003MissingPunctuation, "expected ')' to close parameter list")
	p.popContext()
	if !ok {
		p.synchronize()
	}
	return params
}

func (p *Parser) parseBlock() *ast.Block {
	open, ok := p.expect(token.LBRACE, diagnostics.ErrP003MissingPunctuation, "expected '{' to start block")
	if !ok {
		return &ast.Block{Sp: p.cur().Span}
	}
	p.pushContext(CtxBlock)
	var body []ast.Node
	for !p.check(token.RBRACE) && !p.atEOF() {
		before := p.pos
		node := p.parseBlockMember()
		if node != nil {
			body = append(body, node)
		}
		if p.pos == before {
			p.errorAt(p.cur().Span, diagnostics.ErrP001UnexpectedToken, "unexpected token '"+p.cur().Lexeme+"'")
			p.synchronize()
			if p.pos == before {
				p.advance()
			}
		}
	}
	closeTok, closed := p.expect(token.RBRACE, diagnostics.ErrP003MissingPunctuation, "expected '}' to close block")
	if closed {
		p.popContext()
	} else {
		p.synchronize()
	}
	end := open.Span
	if closed {
		end = closeTok.Span
	}
	return &ast.Block{Sp: token.Join(open.Span, end), Body: body}
}
