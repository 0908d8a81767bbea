package parser

import (
	"github.com/al-lang/al/internal/ast"
	"github.com/al-lang/al/internal/diagnostics"
	"github.com/al-lang/al/internal/token"
)

func looksLikeTypeStart(t token.Token) bool {
	switch t.Type {
	case token.IDENT, token.QUESTION, token.LBRACKET:
		return true
	}
	return false
}

// parseCommonStatement dispatches the statement forms legal both at the top
// level and inside a block: const bindings, named function declarations,
// and the binding-or-expression fallback.
func (p *Parser) parseCommonStatement() ast.Node {
	switch p.cur().Type {
	case token.KW_CONST:
		return p.parseConstBinding()
	case token.KW_FN:
		if p.peek(1).Type == token.IDENT {
			return p.parseFunctionDeclaration()
		}
	}
	return p.parseBindingOrExpressionStatement()
}

// parseBlockMember parses one member of a function/if/match block body.
// Type and module-level declarations are rejected here with a diagnostic
// (spec.md: struct/enum/import/export are top-level only).
func (p *Parser) parseBlockMember() ast.Node {
	switch p.cur().Type {
	case token.KW_FROM, token.KW_EXPORT, token.KW_STRUCT, token.KW_ENUM:
		p.errorAt(p.cur().Span, diagnostics.ErrP001UnexpectedToken, string(p.cur().Type)+" declarations are only allowed at the top level")
		p.synchronize()
		return nil
	}
	return p.parseCommonStatement()
}

// parseBindingOrExpressionStatement parses one expression and then inspects
// what follows it to decide whether it was actually the left-hand side of a
// binding (`name = init`, `name Type = init`, `Name = init` type-pattern, or
// `(a, b) = init` tuple destructuring) or a standalone expression statement.
func (p *Parser) parseBindingOrExpressionStatement() ast.Node {
	doc := p.cur().LeadingDoc()
	expr := p.parseExpression(lowest)

	switch e := expr.(type) {
	case *ast.Identifier:
		if p.check(token.ASSIGN) {
			p.advance()
			init := p.parseExpression(lowest)
			sp := token.Join(e.Span(), init.Span())
			if e.IsUpper {
				return &ast.TypePatternBinding{BaseStmt: ast.BaseStmt{Sp: sp}, TypeName: e, Init: init}
			}
			return &ast.VariableBinding{BaseStmt: ast.BaseStmt{Sp: sp}, Name: e, Init: init, Doc: doc}
		}
		if looksLikeTypeStart(p.cur()) {
			typeAnn := p.parseType()
			if _, ok := p.expect(token.ASSIGN, diagnostics.ErrP003MissingPunctuation, "expected '=' in binding"); !ok {
				p.synchronize()
			}
			init := p.parseExpression(lowest)
			return &ast.VariableBinding{
				BaseStmt:       ast.BaseStmt{Sp: token.Join(e.Span(), init.Span())},
				Name:           e,
				TypeAnnotation: typeAnn,
				Init:           init,
				Doc:            doc,
			}
		}
		return e

	case *ast.TupleExpression:
		if p.check(token.ASSIGN) {
			p.advance()
			init := p.parseExpression(lowest)
			patterns := make([]*ast.Identifier, 0, len(e.Elements))
			for _, el := range e.Elements {
				if id, ok := el.(*ast.Identifier); ok {
					patterns = append(patterns, id)
				} else {
					p.errorAt(el.Span(), diagnostics.ErrP001UnexpectedToken, "tuple destructuring targets must be plain names")
				}
			}
			return &ast.TupleDestructuringBinding{
				BaseStmt: ast.BaseStmt{Sp: token.Join(e.Span(), init.Span())},
				Patterns: patterns,
				Init:     init,
			}
		}
		return e

	default:
		return expr
	}
}

func (p *Parser) parseConstBinding() ast.Statement {
	start := p.cur()
	doc := start.LeadingDoc()
	p.advance() // consume `const`
	nameTok, ok := p.expect(token.IDENT, diagnostics.ErrP002ExpectedIdentifier, "expected an identifier after 'const'")
	if !ok {
		p.synchronize()
		return ast.NewErrorNode(start.Span, "malformed const binding")
	}
	name := &ast.Identifier{Base: ast.Base{Sp: nameTok.Span}, Name: nameTok.Lexeme, IsUpper: isUpperIdent(nameTok.Lexeme)}

	var typeAnn ast.TypeNode
	if !p.check(token.ASSIGN) {
		typeAnn = p.parseType()
	}
	if _, ok := p.expect(token.ASSIGN, diagnostics.ErrP003MissingPunctuation, "expected '=' in const binding"); !ok {
		p.synchronize()
	}
	init := p.parseExpression(lowest)
	return &ast.ConstBinding{
		BaseStmt:       ast.BaseStmt{Sp: token.Join(start.Span, init.Span())},
		Name:           name,
		TypeAnnotation: typeAnn,
		Init:           init,
		Doc:            doc,
	}
}

func (p *Parser) parseFunctionDeclaration() ast.Statement {
	start := p.cur()
	doc := start.LeadingDoc()
	p.advance() // consume `fn`
	nameTok := p.advance()
	name := &ast.Identifier{Base: ast.Base{Sp: nameTok.Span}, Name: nameTok.Lexeme, IsUpper: isUpperIdent(nameTok.Lexeme)}
	params := p.parseParamList()

	var retType, errType ast.TypeNode
	if !p.check(token.LBRACE) {
		parsed := p.parseType()
		if res, ok := parsed.(*ast.ResultTypeNode); ok {
			retType, errType = res.Success, res.Err
		} else {
			retType = parsed
		}
	}
	body := p.parseBlock()
	return &ast.FunctionDeclaration{
		BaseStmt:  ast.BaseStmt{Sp: token.Join(start.Span, body.Span())},
		Name:      name,
		Params:    params,
		RetType:   retType,
		ErrorType: errType,
		Body:      body,
		Doc:       doc,
	}
}

func (p *Parser) parseTypeParamList() []string {
	p.advance() // consume `(`
	p.pushContext(CtxFunctionParams)
	var names []string
	for !p.check(token.RPAREN) && !p.atEOF() {
		tok := p.advance()
		names = append(names, tok.Lexeme)
		if !p.match(token.COMMA) {
			break
		}
	}
	_, ok := p.expect(token.RPAREN, diagnostics.ErrP003MissingPunctuation, "expected ')' to close type parameter list")
	p.popContext()
	if !ok {
		p.synchronize()
	}
	return names
}

func (p *Parser) parseStructDeclaration() ast.Statement {
	start := p.cur()
	doc := start.LeadingDoc()
	p.advance() // consume `struct`
	nameTok, ok := p.expect(token.IDENT, diagnostics.ErrP002ExpectedIdentifier, "expected a struct name")
	if !ok {
		p.synchronize()
		return ast.NewErrorNode(start.Span, "malformed struct declaration")
	}
	name := &ast.Identifier{Base: ast.Base{Sp: nameTok.Span}, Name: nameTok.Lexeme, IsUpper: isUpperIdent(nameTok.Lexeme)}

	var typeParams []string
	if p.check(token.LPAREN) {
		typeParams = p.parseTypeParamList()
	}

	if _, ok := p.expect(token.LBRACE, diagnostics.ErrP003MissingPunctuation, "expected '{' to start struct body"); !ok {
		p.synchronize()
		return &ast.StructDeclaration{BaseStmt: ast.BaseStmt{Sp: start.Span}, Name: name, TypeParams: typeParams, Doc: doc}
	}

	p.pushContext(CtxStructDef)
	var fields []*ast.FieldDecl
	for !p.check(token.RBRACE) && !p.atEOF() {
		fieldTok := p.cur()
		fieldNameTok, ok := p.expect(token.IDENT, diagnostics.ErrP002ExpectedIdentifier, "expected a field name")
		if !ok {
			p.synchronize()
			continue
		}
		fieldName := &ast.Identifier{Base: ast.Base{Sp: fieldNameTok.Span}, Name: fieldNameTok.Lexeme, IsUpper: isUpperIdent(fieldNameTok.Lexeme)}
		fieldType := p.parseType()
		field := &ast.FieldDecl{Name: fieldName, Type: fieldType, Sp: token.Join(fieldTok.Span, fieldType.Span())}
		if p.match(token.ASSIGN) {
			field.Default = p.parseExpression(lowest)
			field.Sp = token.Join(field.Sp, field.Default.Span())
		}
		fields = append(fields, field)
		if !p.match(token.COMMA) {
			break
		}
	}
	closeTok, closed := p.expect(token.RBRACE, diagnostics.ErrP003MissingPunctuation, "expected '}' to close struct body")
	end := start.Span
	if closed {
		p.popContext()
		end = closeTok.Span
	} else {
		p.synchronize()
	}
	return &ast.StructDeclaration{BaseStmt: ast.BaseStmt{Sp: token.Join(start.Span, end)}, Name: name, TypeParams: typeParams, Fields: fields, Doc: doc}
}

func (p *Parser) parseEnumDeclaration() ast.Statement {
	start := p.cur()
	doc := start.LeadingDoc()
	p.advance() // consume `enum`
	nameTok, ok := p.expect(token.IDENT, diagnostics.ErrP002ExpectedIdentifier, "expected an enum name")
	if !ok {
		p.synchronize()
		return ast.NewErrorNode(start.Span, "malformed enum declaration")
	}
	name := &ast.Identifier{Base: ast.Base{Sp: nameTok.Span}, Name: nameTok.Lexeme, IsUpper: isUpperIdent(nameTok.Lexeme)}

	var typeParams []string
	if p.check(token.LPAREN) {
		typeParams = p.parseTypeParamList()
	}

	if _, ok := p.expect(token.LBRACE, diagnostics.ErrP003MissingPunctuation, "expected '{' to start enum body"); !ok {
		p.synchronize()
		return &ast.EnumDeclaration{BaseStmt: ast.BaseStmt{Sp: start.Span}, Name: name, TypeParams: typeParams, Doc: doc}
	}

	p.pushContext(CtxEnumDef)
	var variants []*ast.VariantDecl
	for !p.check(token.RBRACE) && !p.atEOF() {
		vNameTok, ok := p.expect(token.IDENT, diagnostics.ErrP002ExpectedIdentifier, "expected a variant name")
		if !ok {
			p.synchronize()
			continue
		}
		vName := &ast.Identifier{Base: ast.Base{Sp: vNameTok.Span}, Name: vNameTok.Lexeme, IsUpper: isUpperIdent(vNameTok.Lexeme)}
		variant := &ast.VariantDecl{Name: vName, Sp: vNameTok.Span}
		if p.check(token.LPAREN) {
			payload, end := p.parseParenTypeList()
			variant.Payload = payload
			variant.Sp = token.Join(variant.Sp, end)
		}
		variants = append(variants, variant)
		if !p.match(token.COMMA) {
			break
		}
	}
	closeTok, closed := p.expect(token.RBRACE, diagnostics.ErrP003MissingPunctuation, "expected '}' to close enum body")
	end := start.Span
	if closed {
		p.popContext()
		end = closeTok.Span
	} else {
		p.synchronize()
	}
	return &ast.EnumDeclaration{BaseStmt: ast.BaseStmt{Sp: token.Join(start.Span, end)}, Name: name, TypeParams: typeParams, Variants: variants, Doc: doc}
}

func (p *Parser) parseImportDeclaration() ast.Statement {
	start := p.advance() // consume `from`
	pathTok, ok := p.expect(token.STRING, diagnostics.ErrP001UnexpectedToken, "expected a string module path after 'from'")
	if !ok {
		p.synchronize()
		return ast.NewErrorNode(start.Span, "malformed import declaration")
	}
	if _, ok := p.expect(token.KW_IMPORT, diagnostics.ErrP001UnexpectedToken, "expected 'import' after the module path"); !ok {
		p.synchronize()
		return ast.NewErrorNode(token.Join(start.Span, pathTok.Span), "malformed import declaration")
	}
	var names []*ast.Identifier
	for {
		nameTok, ok := p.expect(token.IDENT, diagnostics.ErrP002ExpectedIdentifier, "expected an imported name")
		if !ok {
			break
		}
		names = append(names, &ast.Identifier{Base: ast.Base{Sp: nameTok.Span}, Name: nameTok.Lexeme, IsUpper: isUpperIdent(nameTok.Lexeme)})
		if !p.match(token.COMMA) {
			break
		}
	}
	end := pathTok.Span
	if len(names) > 0 {
		end = names[len(names)-1].Span()
	}
	return &ast.ImportDeclaration{BaseStmt: ast.BaseStmt{Sp: token.Join(start.Span, end)}, Path: pathTok.Literal, Names: names}
}

func (p *Parser) parseExportDeclaration() ast.Statement {
	start := p.advance() // consume `export`
	inner := p.parseCommonStatement()
	stmt, ok := inner.(ast.Statement)
	if !ok {
		p.errorAt(start.Span, diagnostics.ErrP001UnexpectedToken, "only declarations can be exported")
		return ast.NewErrorNode(start.Span, "invalid export target")
	}
	return &ast.ExportDeclaration{BaseStmt: ast.BaseStmt{Sp: token.Join(start.Span, stmt.Span())}, Inner: stmt}
}
