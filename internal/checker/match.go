package checker

import (
	"github.com/al-lang/al/internal/ast"
	"github.com/al-lang/al/internal/config"
	"github.com/al-lang/al/internal/diagnostics"
	"github.com/al-lang/al/internal/pattern"
	"github.com/al-lang/al/internal/token"
	"github.com/al-lang/al/internal/types"
)

// checkMatchExpression type-checks a match's subject and arms, feeds each
// arm's lowered pattern to the pattern package's usefulness algorithm to
// flag unreachable arms as it goes, and reports non-exhaustiveness once all
// arms are in, per spec.md §4.4.
func (c *Checker) checkMatchExpression(n *ast.MatchExpression) types.Type {
	subjectType := applied(c.subst, c.checkExpr(n.Subject))
	typeVec := []types.Type{subjectType}

	var matrix [][]pattern.Pat
	var resultType types.Type
	for _, arm := range n.Arms {
		c.env.PushScope()
		pat := c.checkPattern(arm.Pattern, subjectType)
		candidate := []pattern.Pat{pat}
		if !pattern.IsUseful(matrix, typeVec, candidate) {
			msg := "unreachable pattern"
			if isWildcardLike(arm.Pattern) {
				msg = "else branch is unreachable"
			}
			c.addWarning(arm.Sp, diagnostics.WarnM002Unreachable, msg)
		}
		matrix = append(matrix, candidate)

		armType := applied(c.subst, c.checkExpr(arm.Body))
		c.env.PopScope()
		if resultType == nil {
			resultType = armType
			continue
		}
		if up, ok := types.LeastUpperType(resultType, armType); ok {
			resultType = up
			continue
		}
		c.addError(arm.Sp, diagnostics.ErrT002TypeMismatch,
			"match arms have incompatible types "+resultType.String()+" and "+armType.String())
	}

	if witness := pattern.FindWitness(matrix, typeVec); witness != nil {
		c.addError(n.Sp, diagnostics.ErrM001NonExhaustive,
			"non-exhaustive match; missing case: "+pattern.Render(witness[0]))
	}
	if resultType == nil {
		resultType = types.None
	}
	return resultType
}

func isWildcardLike(p ast.Expression) bool {
	switch n := p.(type) {
	case *ast.WildcardPattern:
		return true
	case *ast.Identifier:
		return !n.IsUpper
	}
	return false
}

// checkPattern type-checks a surface pattern against the scrutinee's
// expected type — binding any identifiers it introduces into the current
// scope — and lowers it to the pattern package's Pat form for exhaustiveness
// analysis. It never fails outright: an unresolvable pattern degrades to
// Wildcard plus a recorded diagnostic.
func (c *Checker) checkPattern(p ast.Expression, expected types.Type) pattern.Pat {
	switch n := p.(type) {
	case *ast.WildcardPattern:
		return pattern.Wildcard{}

	case *ast.OrPattern:
		pats := make([]pattern.Pat, len(n.Patterns))
		for i, alt := range n.Patterns {
			pats[i] = c.checkPattern(alt, expected)
		}
		return pattern.Or{Patterns: pats}

	case *ast.Identifier:
		return c.checkIdentifierPattern(n, expected)

	case *ast.NumberLiteral:
		var lit types.Type = types.Int
		if n.IsFloat {
			lit = types.Float
		}
		c.unify(n.Sp, expected, lit)
		return pattern.Ctor{Name: "lit:" + n.Raw}

	case *ast.StringLiteral:
		c.unify(n.Sp, expected, types.String)
		return pattern.Ctor{Name: "lit:'" + n.Value + "'"}

	case *ast.BoolLiteral:
		c.unify(n.Sp, expected, types.Bool)
		if n.Value {
			return pattern.Ctor{Name: "true"}
		}
		return pattern.Ctor{Name: "false"}

	case *ast.NoneLiteral:
		c.checkNonePattern(n.Sp, expected)
		return pattern.Ctor{Name: config.NoneCtorName}

	case *ast.UnaryExpression:
		if n.Op == "-" {
			if num, ok := n.Operand.(*ast.NumberLiteral); ok {
				var lit types.Type = types.Int
				if num.IsFloat {
					lit = types.Float
				}
				c.unify(n.Sp, expected, lit)
				return pattern.Ctor{Name: "lit:-" + num.Raw}
			}
		}
		return c.checkCondPattern(n, expected)

	case *ast.RangeExpression:
		from := applied(c.subst, c.checkExpr(n.From))
		to := applied(c.subst, c.checkExpr(n.To))
		c.unify(n.From.Span(), types.Int, from)
		c.unify(n.To.Span(), types.Int, to)
		c.unify(n.Sp, expected, types.Array{Elem: types.Int})
		return pattern.Ctor{Name: "lit:" + rangeRepr(n)}

	case *ast.TupleExpression:
		tup, ok := expected.(types.Tuple)
		if !ok {
			c.addError(n.Sp, diagnostics.ErrT002TypeMismatch, "tuple pattern against non-tuple type "+expected.String())
			for _, el := range n.Elements {
				c.checkPattern(el, c.freshVar())
			}
			return pattern.Wildcard{}
		}
		if len(tup.Elements) != len(n.Elements) {
			c.addError(n.Sp, diagnostics.ErrT006WrongArity,
				"tuple pattern has arity "+itoa(len(n.Elements))+", expected "+itoa(len(tup.Elements)))
		}
		args := make([]pattern.Pat, len(n.Elements))
		for i, el := range n.Elements {
			var et types.Type = c.freshVar()
			if i < len(tup.Elements) {
				et = tup.Elements[i]
			}
			args[i] = c.checkPattern(el, et)
		}
		return pattern.Ctor{Name: "tuple", Args: args}

	case *ast.ArrayExpression:
		return c.checkArrayPattern(n, expected)

	case *ast.CallExpression:
		return c.checkCallPattern(n, expected)

	case *ast.PropertyAccess:
		return c.checkPropertyAccessPattern(n, expected)

	default:
		return c.checkCondPattern(p, expected)
	}
}

// checkIdentifierPattern handles an identifier used in pattern position: a
// lowercase name binds the scrutinee, an uppercase name is either the
// built-in `None` or a zero-argument enum variant.
func (c *Checker) checkIdentifierPattern(n *ast.Identifier, expected types.Type) pattern.Pat {
	if !n.IsUpper {
		c.defineName(n, expected, "")
		return pattern.Wildcard{}
	}
	if n.Name == config.NoneCtorName {
		c.checkNonePattern(n.Sp, expected)
		return pattern.Ctor{Name: config.NoneCtorName}
	}
	if owner, ok := c.env.VariantOwner[n.Name]; ok {
		en := c.env.Enums[owner]
		if len(en.Variants[n.Name]) != 0 {
			c.addError(n.Sp, diagnostics.ErrT006WrongArity, "variant '"+n.Name+"' requires a payload pattern")
		}
		c.unify(n.Sp, expected, instantiateEnum(en, freshArgs(c, en.TypeParams)))
		return pattern.Ctor{Name: n.Name}
	}
	c.addError(n.Sp, diagnostics.ErrT001UnknownName, "unknown name '"+n.Name+"'"+didYouMean(n.Name, c.env.AllNames()))
	return pattern.Wildcard{}
}

// checkNonePattern accepts `none` against either an Option or a bare None
// scrutinee type.
func (c *Checker) checkNonePattern(sp token.Span, expected types.Type) {
	switch expected.(type) {
	case types.Option, types.NoneType, types.Var:
		return
	default:
		c.addError(sp, diagnostics.ErrT002TypeMismatch, "'none' pattern against non-Option type "+expected.String())
	}
}

// checkCondPattern handles the "boolean-expression arm" rule
// (spec.md §4.4): an arbitrary expression used as a pattern is type-checked
// as an ordinary Bool-producing expression and lowered to an opaque
// constructor unique to its source position, so it can never be proven to
// make a match exhaustive.
func (c *Checker) checkCondPattern(p ast.Expression, expected types.Type) pattern.Pat {
	t := applied(c.subst, c.checkExpr(p))
	c.unify(p.Span(), types.Bool, t)
	c.unify(p.Span(), expected, types.Bool)
	sp := p.Span()
	return pattern.Ctor{Name: "cond:" + itoa(sp.StartLine) + ":" + itoa(sp.StartColumn)}
}

func rangeRepr(n *ast.RangeExpression) string {
	from := ""
	if lit, ok := n.From.(*ast.NumberLiteral); ok {
		from = lit.Raw
	}
	to := ""
	if lit, ok := n.To.(*ast.NumberLiteral); ok {
		to = lit.Raw
	}
	return from + ".." + to
}

// checkArrayPattern lowers `[]`, `[p, ..rest]`, `[p1, p2, ..]` etc. into the
// right-folded `Ctor("[..]", [head, tail])` / `Ctor("[]")` form spec.md §4.4
// describes, binding any rest pattern to the whole Array<T> type.
func (c *Checker) checkArrayPattern(n *ast.ArrayExpression, expected types.Type) pattern.Pat {
	arr, ok := expected.(types.Array)
	if !ok {
		c.addError(n.Sp, diagnostics.ErrT002TypeMismatch, "array pattern against non-Array type "+expected.String())
		arr = types.Array{Elem: c.freshVar()}
	}

	elems := n.Elements
	var spread *ast.SpreadElement
	if len(elems) > 0 {
		if sp, ok := elems[len(elems)-1].(*ast.SpreadElement); ok {
			spread = sp
			elems = elems[:len(elems)-1]
		}
	}

	var tail pattern.Pat
	if spread != nil {
		if spread.Inner != nil {
			tail = c.checkPattern(spread.Inner, arr)
		} else {
			tail = pattern.Wildcard{}
		}
	} else {
		tail = pattern.Ctor{Name: "[]"}
	}

	for i := len(elems) - 1; i >= 0; i-- {
		head := c.checkPattern(elems[i], arr.Elem)
		tail = pattern.Ctor{Name: "[..]", Args: []pattern.Pat{head, tail}}
	}
	return tail
}

// checkCallPattern lowers a bare constructor-call-shaped pattern: a
// built-in Some/Ok/Err, or a user enum variant.
func (c *Checker) checkCallPattern(n *ast.CallExpression, expected types.Type) pattern.Pat {
	id, ok := n.Callee.(*ast.Identifier)
	if !ok {
		return c.checkCondPattern(n, expected)
	}
	switch id.Name {
	case config.SomeCtorName:
		inner := c.freshVar()
		c.unify(n.Sp, expected, types.Option{Inner: inner})
		if len(n.Args) != 1 {
			c.addError(n.Sp, diagnostics.ErrT006WrongArity, "'Some' pattern expects exactly 1 argument")
			return pattern.Ctor{Name: config.SomeCtorName}
		}
		return pattern.Ctor{Name: config.SomeCtorName, Args: []pattern.Pat{c.checkPattern(n.Args[0], applied(c.subst, inner))}}
	case config.OkCtorName:
		success, errT := c.freshVar(), c.freshVar()
		c.unify(n.Sp, expected, types.Result{Success: success, Err: errT})
		if len(n.Args) != 1 {
			c.addError(n.Sp, diagnostics.ErrT006WrongArity, "'Ok' pattern expects exactly 1 argument")
			return pattern.Ctor{Name: config.OkCtorName}
		}
		return pattern.Ctor{Name: config.OkCtorName, Args: []pattern.Pat{c.checkPattern(n.Args[0], applied(c.subst, success))}}
	case config.ErrCtorName:
		success, errT := c.freshVar(), c.freshVar()
		c.unify(n.Sp, expected, types.Result{Success: success, Err: errT})
		if len(n.Args) != 1 {
			c.addError(n.Sp, diagnostics.ErrT006WrongArity, "'Err' pattern expects exactly 1 argument")
			return pattern.Ctor{Name: config.ErrCtorName}
		}
		return pattern.Ctor{Name: config.ErrCtorName, Args: []pattern.Pat{c.checkPattern(n.Args[0], applied(c.subst, errT))}}
	}
	if owner, ok := c.env.VariantOwner[id.Name]; ok {
		return c.checkVariantPattern(n.Sp, c.env.Enums[owner], id.Name, n.Args, expected)
	}
	c.addError(id.Sp, diagnostics.ErrT001UnknownName, "unknown name '"+id.Name+"'"+didYouMean(id.Name, c.env.AllNames()))
	for _, a := range n.Args {
		c.checkPattern(a, c.freshVar())
	}
	return pattern.Wildcard{}
}

// checkPropertyAccessPattern lowers a qualified `Enum.Variant` /
// `Enum.Variant(args)` pattern.
func (c *Checker) checkPropertyAccessPattern(n *ast.PropertyAccess, expected types.Type) pattern.Pat {
	leftID, ok := n.Left.(*ast.Identifier)
	if !ok || !leftID.IsUpper {
		return c.checkCondPattern(n, expected)
	}
	en, ok := c.env.Enums[leftID.Name]
	if !ok {
		c.addError(leftID.Sp, diagnostics.ErrT001UnknownName, "unknown enum '"+leftID.Name+"'"+didYouMean(leftID.Name, c.typeNames()))
		return pattern.Wildcard{}
	}
	switch right := n.Right.(type) {
	case *ast.Identifier:
		return c.checkVariantPattern(n.Sp, en, right.Name, nil, expected)
	case *ast.CallExpression:
		callee, ok := right.Callee.(*ast.Identifier)
		if !ok {
			return pattern.Wildcard{}
		}
		return c.checkVariantPattern(n.Sp, en, callee.Name, right.Args, expected)
	}
	return pattern.Wildcard{}
}

// checkVariantPattern validates a (possibly qualified) enum-variant
// pattern's arity and recursively checks each sub-pattern against the
// variant's declared payload, instantiated to unify with the scrutinee.
func (c *Checker) checkVariantPattern(sp token.Span, en types.Enum, name string, argExprs []ast.Expression, expected types.Type) pattern.Pat {
	payload, ok := en.Variants[name]
	if !ok {
		c.addError(sp, diagnostics.ErrT001UnknownName,
			"'"+en.Name+"' has no variant '"+name+"'"+didYouMean(name, en.VariantOrder))
		return pattern.Wildcard{}
	}
	if len(argExprs) != len(payload) {
		c.addError(sp, diagnostics.ErrT006WrongArity,
			"variant '"+name+"' expects "+itoa(len(payload))+" argument(s), got "+itoa(len(argExprs)))
	}
	inst := instantiateEnum(en, freshArgs(c, en.TypeParams))
	c.unify(sp, expected, inst)
	instPayload := inst.Variants[name]
	args := make([]pattern.Pat, len(argExprs))
	for i, a := range argExprs {
		var pt types.Type = c.freshVar()
		if i < len(instPayload) {
			pt = instPayload[i]
		}
		args[i] = c.checkPattern(a, pt)
	}
	return pattern.Ctor{Name: name, Args: args}
}
