// Package parser implements AL's recursive-descent, Pratt-style parser.
// It never aborts: on a parse failure it records a diagnostic, inserts an
// ast.ErrorNode placeholder, and synchronizes to a context-specific
// re-entry point (spec.md §4.2), so a single run can surface multiple
// diagnostics while still returning a fully walkable AST.
package parser

import (
	"github.com/al-lang/al/internal/ast"
	"github.com/al-lang/al/internal/config"
	"github.com/al-lang/al/internal/diagnostics"
	"github.com/al-lang/al/internal/token"
)

// Context identifies where in the grammar the parser currently is, which
// determines synchronize's re-entry strategy (spec.md §4.2).
type Context int

const (
	CtxTopLevel Context = iota
	CtxBlock
	CtxFunctionParams
	CtxArray
	CtxStructInit
	CtxStructDef
	CtxEnumDef
	CtxMatchArms
)

// Precedence levels, low to high, per spec.md §4.2.
type precedence int

const (
	lowest precedence = iota
	precOrFallback            // `or`
	precLogicOr               // ||
	precLogicAnd              // &&
	precEquality              // == !=
	precComparison            // < > <= >=
	precRange                 // ..
	precSum                   // + -
	precProduct               // * / %
	precUnary                 // prefix ! -
	precPostfix               // . [] call postfix ! ?
)

var precedences = map[token.Type]precedence{
	token.KW_OR:    precOrFallback,
	token.OROR:     precLogicOr,
	token.AND:      precLogicAnd,
	token.EQ:       precEquality,
	token.NOT_EQ:   precEquality,
	token.LT:       precComparison,
	token.GT:       precComparison,
	token.LTE:      precComparison,
	token.GTE:      precComparison,
	token.DOTDOT:   precRange,
	token.PLUS:     precSum,
	token.MINUS:    precSum,
	token.STAR:     precProduct,
	token.SLASH:    precProduct,
	token.PERCENT:  precProduct,
	token.DOT:      precPostfix,
	token.LBRACKET: precPostfix,
	token.BANG:     precPostfix,
	token.QUESTION: precPostfix,
	token.LPAREN:   precPostfix,
}

// Parser holds all mutable parsing state. No outside access is expected:
// the driver owns a Parser for exactly one ParseProgram call.
type Parser struct {
	tokens []token.Token
	pos    int

	diags        *diagnostics.Bag
	contextStack []Context
	syncCalls    int

	// noStructLiteral suppresses `Ident{` struct-init parsing while parsing
	// an if/match subject expression, mirroring how composite literals are
	// disallowed in unparenthesized conditions (spec.md §4.2's "Ident {"
	// disambiguation note).
	noStructLiteral bool
}

// New creates a Parser over an already-scanned token stream.
func New(tokens []token.Token) *Parser {
	if len(tokens) == 0 {
		tokens = []token.Token{{Type: token.EOF}}
	}
	return &Parser{
		tokens:       tokens,
		diags:        diagnostics.NewBag(),
		contextStack: []Context{CtxTopLevel},
	}
}

// ParseProgram parses the full token stream into a top-level Block and
// returns every diagnostic recorded along the way, in source order.
func ParseProgram(tokens []token.Token) (*ast.Block, []*diagnostics.DiagnosticError) {
	p := New(tokens)
	block := p.parseTopLevel()
	return block, p.diags.List()
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek(offset int) token.Token {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) advance() token.Token {
	tok := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) atEOF() bool { return p.cur().Type == token.EOF }

func (p *Parser) check(tt token.Type) bool { return p.cur().Type == tt }

func (p *Parser) match(tt token.Type) bool {
	if p.check(tt) {
		p.advance()
		return true
	}
	return false
}

// expect consumes the current token if it has type tt; otherwise it
// records a diagnostic at the current token's span and returns ok=false
// without advancing, letting the caller decide how to recover.
func (p *Parser) expect(tt token.Type, code diagnostics.Code, message string) (token.Token, bool) {
	if p.check(tt) {
		return p.advance(), true
	}
	p.errorHere(code, message)
	return token.Token{}, false
}

func (p *Parser) errorHere(code diagnostics.Code, message string) {
	p.diags.Add(diagnostics.NewError(code, p.cur().Span, message))
}

func (p *Parser) errorAt(sp token.Span, code diagnostics.Code, message string) {
	p.diags.Add(diagnostics.NewError(code, sp, message))
}

func (p *Parser) pushContext(c Context) { p.contextStack = append(p.contextStack, c) }

func (p *Parser) popContext() {
	if len(p.contextStack) > 1 {
		p.contextStack = p.contextStack[:len(p.contextStack)-1]
	}
}

func (p *Parser) currentContext() Context {
	return p.contextStack[len(p.contextStack)-1]
}

// errorNodeHere records a parse-failure diagnostic and returns a placeholder
// ErrorNode spanning the current token, without advancing.
func (p *Parser) errorNodeHere(code diagnostics.Code, message string) *ast.ErrorNode {
	sp := p.cur().Span
	p.errorAt(sp, code, message)
	return ast.NewErrorNode(sp, message)
}

// synchronize advances tokens until a context-specific resynchronization
// point is reached (spec.md §4.2). It is bounded by
// config.MaxSynchronizeIterations to guarantee termination even against a
// pathological token stream.
func (p *Parser) synchronize() {
	p.syncCalls++
	if p.syncCalls > config.MaxSynchronizeIterations {
		p.errorAt(p.cur().Span, diagnostics.ErrP006InternalLimit, "parser: synchronize() iteration cap exceeded")
		p.pos = len(p.tokens) - 1
		return
	}

	iterations := 0
	for {
		iterations++
		if iterations > config.MaxSynchronizeIterations {
			p.errorAt(p.cur().Span, diagnostics.ErrP006InternalLimit, "parser: synchronize() iteration cap exceeded")
			p.pos = len(p.tokens) - 1
			return
		}
		if p.atEOF() {
			return
		}

		switch p.currentContext() {
		case CtxTopLevel:
			switch p.cur().Type {
			case token.KW_FN, token.KW_STRUCT, token.KW_ENUM, token.KW_CONST, token.KW_FROM, token.KW_EXPORT:
				return
			case token.IDENT:
				if p.cur().Span.StartColumn == 1 {
					return
				}
			}
			p.advance()

		case CtxBlock:
			switch p.cur().Type {
			case token.RBRACE:
				p.advance()
				p.popContext()
				return
			case token.KW_FN, token.KW_STRUCT, token.KW_ENUM, token.KW_CONST, token.KW_IF, token.KW_MATCH, token.IDENT:
				return
			}
			p.advance()

		case CtxFunctionParams, CtxArray, CtxStructInit, CtxStructDef, CtxEnumDef:
			closer := closingFor(p.currentContext())
			switch p.cur().Type {
			case closer:
				p.advance()
				p.popContext()
				return
			case token.COMMA:
				p.advance()
				return
			}
			p.advance()

		case CtxMatchArms:
			switch p.cur().Type {
			case token.RBRACE:
				p.advance()
				p.popContext()
				return
			case token.ARROW:
				return
			case token.COMMA:
				p.advance()
				return
			}
			p.advance()

		default:
			p.advance()
		}
	}
}

func closingFor(c Context) token.Type {
	switch c {
	case CtxFunctionParams, CtxStructInit:
		return token.RPAREN
	case CtxArray:
		return token.RBRACKET
	case CtxStructDef, CtxEnumDef:
		return token.RBRACE
	}
	return token.EOF
}
