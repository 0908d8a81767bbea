package checker

import (
	"github.com/al-lang/al/internal/ast"
	"github.com/al-lang/al/internal/diagnostics"
	"github.com/al-lang/al/internal/types"
)

// checkBlock type-checks a block's statements in its own lexical scope and
// returns the type of the terminal expression, or None for an empty block
// or one ending on a statement (spec.md §4.3, "Entry").
func (c *Checker) checkBlock(block *ast.Block) types.Type {
	c.env.PushScope()
	defer c.env.PopScope()
	return c.checkBlockBody(block)
}

// checkBlockBody is checkBlock without its own scope, for callers (function
// bodies) that already pushed one to hold parameter bindings.
func (c *Checker) checkBlockBody(block *ast.Block) types.Type {
	var last types.Type = types.None
	for i, node := range block.Body {
		isLast := i == len(block.Body)-1
		if expr, ok := node.(ast.Expression); ok {
			t := c.checkExpr(expr)
			if !isLast {
				if !types.Equal(applied(c.subst, t), types.None) {
					c.addError(node.Span(), diagnostics.ErrT007UnusedValue,
						"expression of type "+applied(c.subst, t).String()+" must be consumed")
				}
				continue
			}
			last = t
			continue
		}
		c.checkStatement(node)
		if isLast {
			last = types.None
		}
	}
	block.SetType(applied(c.subst, last))
	return last
}

func (c *Checker) checkStatement(node ast.Node) {
	switch n := node.(type) {
	case *ast.VariableBinding:
		c.checkVariableBinding(n)
	case *ast.ConstBinding:
		c.checkConstBinding(n)
	case *ast.TypePatternBinding:
		c.checkTypePatternBinding(n)
	case *ast.TupleDestructuringBinding:
		c.checkTupleDestructuringBinding(n)
	case *ast.FunctionDeclaration:
		c.checkFunctionDeclaration(n)
	case *ast.StructDeclaration:
		c.checkStructDeclaration(n)
	case *ast.EnumDeclaration:
		// Fully resolved during registerSignature; nothing left to check.
	case *ast.ImportDeclaration:
		// Module resolution is out of scope for the standalone checker
		// (spec.md's Non-goals exclude a module loader); names are simply
		// not pre-populated, so later unresolved references degrade to the
		// ordinary unknown-name diagnostic.
	case *ast.ExportDeclaration:
		c.checkStatement(n.Inner)
	case *ast.ErrorNode:
		// Already diagnosed by the parser.
	default:
		// A bare expression statement at the top level (spec.md's own
		// exhaustiveness examples run a standalone `match` this way). The
		// top level produces no value for a caller to consume, so unlike
		// checkBlockBody there is no unused-value check here.
		if expr, ok := node.(ast.Expression); ok {
			c.checkExpr(expr)
		}
	}
}

func (c *Checker) checkVariableBinding(n *ast.VariableBinding) {
	initType := c.checkExpr(n.Init)
	if n.TypeAnnotation != nil {
		declared := c.resolveType(n.TypeAnnotation, nil)
		coerced, _ := types.ExpectCoerce(declared, applied(c.subst, initType))
		if !c.unify(n.Sp, declared, coerced) {
			// unify already reported; fall through and bind the declared
			// type so later uses of the name don't cascade more errors.
		}
		c.defineName(n.Name, declared, n.Doc)
		return
	}
	c.defineName(n.Name, applied(c.subst, initType), n.Doc)
}

func (c *Checker) checkConstBinding(n *ast.ConstBinding) {
	if !c.env.AtTopLevel() {
		c.addError(n.Sp, diagnostics.ErrT011ConstOutsideTopLevel, "'const' is only allowed at the top level")
	}
	initType := c.checkExpr(n.Init)
	t := applied(c.subst, initType)
	if n.TypeAnnotation != nil {
		declared := c.resolveType(n.TypeAnnotation, nil)
		coerced, _ := types.ExpectCoerce(declared, t)
		c.unify(n.Sp, declared, coerced)
		t = declared
	}
	c.env.DefineConst(n.Name.Name, t)
	c.env.RecordDefinition(n.Name.Name, n.Name.Sp)
	c.env.RecordDoc(n.Name.Name, n.Doc)
	c.record(n.Name.Sp, n.Name.Name, t)
}

func (c *Checker) checkTypePatternBinding(n *ast.TypePatternBinding) {
	initType := applied(c.subst, c.checkExpr(n.Init))
	asserted := c.resolveNamedTypeByIdent(n.TypeName)
	if !types.Equal(initType, asserted) {
		if _, ok := types.ExpectCoerce(asserted, initType); !ok {
			c.addError(n.Sp, diagnostics.ErrT002TypeMismatch,
				"type mismatch: expression has type "+initType.String()+", expected "+asserted.String())
		}
	}
	c.record(n.TypeName.Sp, n.TypeName.Name, asserted)
}

func (c *Checker) resolveNamedTypeByIdent(id *ast.Identifier) types.Type {
	node := &ast.NamedTypeNode{BaseType: ast.BaseType{Sp: id.Sp}, Name: id.Name}
	return c.resolveType(node, nil)
}

func (c *Checker) checkTupleDestructuringBinding(n *ast.TupleDestructuringBinding) {
	initType := applied(c.subst, c.checkExpr(n.Init))
	tup, ok := initType.(types.Tuple)
	if !ok {
		c.addError(n.Sp, diagnostics.ErrT002TypeMismatch, "cannot destructure non-tuple type "+initType.String())
		for _, id := range n.Patterns {
			if !id.IsUpper {
				c.defineName(id, c.freshVar(), "")
			}
		}
		return
	}
	if len(tup.Elements) != len(n.Patterns) {
		c.addError(n.Sp, diagnostics.ErrT006WrongArity,
			"tuple has arity "+itoa(len(tup.Elements))+", pattern expects "+itoa(len(n.Patterns)))
	}
	for i, id := range n.Patterns {
		var elemT types.Type = types.None
		if i < len(tup.Elements) {
			elemT = tup.Elements[i]
		}
		if id.IsUpper {
			asserted := c.resolveNamedTypeByIdent(id)
			if !types.Equal(elemT, asserted) {
				c.addError(id.Sp, diagnostics.ErrT002TypeMismatch,
					"type mismatch: element has type "+elemT.String()+", expected "+asserted.String())
			}
			c.record(id.Sp, id.Name, asserted)
			continue
		}
		c.defineName(id, elemT, "")
	}
}

// defineName introduces a binding and records it for hover, in one place so
// every binding kind behaves the same way.
func (c *Checker) defineName(id *ast.Identifier, t types.Type, doc string) {
	c.env.Define(id.Name, t)
	c.env.RecordDefinition(id.Name, id.Sp)
	c.env.RecordDoc(id.Name, doc)
	c.record(id.Sp, id.Name, t)
}

func (c *Checker) checkFunctionDeclaration(n *ast.FunctionDeclaration) {
	info, ok := c.env.Functions[n.Name.Name]
	if !ok {
		c.registerFunction(n)
		info = c.env.Functions[n.Name.Name]
	}
	c.checkFunctionBody(n.Params, n.Body, info.Type)
}

// checkFunctionBody pushes the parameter scope, checks the body against the
// declared return/error type, and pops the scope on every path (spec.md
// §5's scoped-acquisition-with-guaranteed-release rule). A return type left
// to inference (a type variable) is not unified with the body's type, and
// the function's registered signature keeps that variable as its return.
func (c *Checker) checkFunctionBody(params []*ast.Param, body *ast.Block, sig types.Function) {
	c.env.PushScope()
	defer c.env.PopScope()

	savedSubst := c.subst
	c.subst = types.Subst{}
	defer func() { c.subst = savedSubst }()

	for i, p := range params {
		var pt types.Type = c.freshVar()
		if i < len(sig.Params) {
			pt = sig.Params[i]
		}
		c.defineName(p.Name, pt, "")
	}

	c.expectedReturn = append(c.expectedReturn, sig.Ret)
	c.expectedError = append(c.expectedError, sig.ErrorType)
	defer func() {
		c.expectedReturn = c.expectedReturn[:len(c.expectedReturn)-1]
		c.expectedError = c.expectedError[:len(c.expectedError)-1]
	}()

	bodyType := applied(c.subst, c.checkBlockBody(body))
	if sig.Ret != nil {
		if _, isVar := sig.Ret.(types.Var); !isVar {
			// A body whose tail unconditionally errors (`error E{...}`) never
			// produces a success value at all; its type is a bare Result, not
			// the declared return type. Such a body satisfies any return type
			// as long as its error half matches what the signature declares.
			if res, ok := bodyType.(types.Result); ok && sig.ErrorType != nil {
				c.unify(body.Sp, sig.ErrorType, res.Err)
			} else {
				coerced, _ := types.ExpectCoerce(sig.Ret, bodyType)
				c.unify(body.Sp, sig.Ret, coerced)
			}
		}
	}
}

func (c *Checker) checkStructDeclaration(n *ast.StructDeclaration) {
	st := c.env.Structs[n.Name.Name]
	seen := make(map[string]bool, len(n.Fields))
	for _, f := range n.Fields {
		if seen[f.Name.Name] {
			c.addError(f.Sp, diagnostics.ErrT003DuplicateField, "duplicate field '"+f.Name.Name+"'")
		}
		seen[f.Name.Name] = true
		if f.Default == nil {
			continue
		}
		declared := st.Fields[f.Name.Name]
		defaultType := applied(c.subst, c.checkExpr(f.Default))
		coerced, _ := types.ExpectCoerce(declared, defaultType)
		c.unify(f.Sp, declared, coerced)
	}
}
