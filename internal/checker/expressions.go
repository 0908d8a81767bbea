package checker

import (
	"github.com/al-lang/al/internal/ast"
	"github.com/al-lang/al/internal/config"
	"github.com/al-lang/al/internal/diagnostics"
	"github.com/al-lang/al/internal/token"
	"github.com/al-lang/al/internal/types"
)

// checkExpr type-checks e, sets its inferred type via SetType, and returns
// that type. Every branch is total: an unrecognized or malformed subtree
// degrades to types.None plus a recorded diagnostic, never a panic
// (spec.md's design note "type-checker methods ... never fail — they only
// record").
func (c *Checker) checkExpr(e ast.Expression) types.Type {
	t := c.infer(e)
	e.SetType(t)
	return t
}

func (c *Checker) infer(e ast.Expression) types.Type {
	switch n := e.(type) {
	case *ast.NumberLiteral:
		if n.IsFloat {
			return types.Float
		}
		return types.Int
	case *ast.StringLiteral:
		return types.String
	case *ast.InterpolatedStringExpr:
		for _, part := range n.Parts {
			c.checkExpr(part)
		}
		return types.String
	case *ast.BoolLiteral:
		return types.Bool
	case *ast.NoneLiteral:
		return types.None
	case *ast.Identifier:
		return c.checkIdentifier(n)
	case *ast.PropertyAccess:
		return c.checkPropertyAccess(n)
	case *ast.IndexExpression:
		return c.checkIndexExpression(n)
	case *ast.RangeExpression:
		return c.checkRangeExpression(n)
	case *ast.TupleExpression:
		elems := make([]types.Type, len(n.Elements))
		for i, el := range n.Elements {
			elems[i] = applied(c.subst, c.checkExpr(el))
		}
		return types.Tuple{Elements: elems}
	case *ast.ArrayExpression:
		return c.checkArrayExpression(n)
	case *ast.SpreadElement:
		if n.Inner != nil {
			return c.checkExpr(n.Inner)
		}
		return c.freshVar()
	case *ast.IfExpression:
		return c.checkIfExpression(n)
	case *ast.MatchExpression:
		return c.checkMatchExpression(n)
	case *ast.FunctionExpression:
		return c.checkFunctionExpression(n)
	case *ast.BinaryExpression:
		return c.checkBinaryExpression(n)
	case *ast.UnaryExpression:
		return c.checkUnaryExpression(n)
	case *ast.OrExpression:
		return c.checkOrExpression(n)
	case *ast.ErrorExpression:
		inner := applied(c.subst, c.checkExpr(n.Inner))
		return types.Result{Success: types.None, Err: inner}
	case *ast.PropagateExpression:
		return c.checkPropagateExpression(n)
	case *ast.AssertExpression:
		return c.checkAssertExpression(n)
	case *ast.CallExpression:
		return c.checkCallExpression(n)
	case *ast.StructInitExpression:
		return c.checkStructInit(n)
	case *ast.WildcardPattern:
		return c.freshVar()
	case *ast.OrPattern:
		var last types.Type = types.None
		for _, p := range n.Patterns {
			last = c.checkExpr(p)
		}
		return last
	case *ast.ErrorNode:
		return types.None
	case *ast.Block:
		return c.checkBlock(n)
	}
	return types.None
}

func (c *Checker) checkIdentifier(n *ast.Identifier) types.Type {
	if n.Name == config.NoneCtorName {
		return types.None
	}
	if t, ok := c.env.Lookup(n.Name); ok {
		c.record(n.Sp, n.Name, applied(c.subst, t))
		return t
	}
	if info, ok := c.env.Functions[n.Name]; ok {
		c.record(n.Sp, n.Name, info.Type)
		return info.Type
	}
	if st, ok := c.env.Structs[n.Name]; ok {
		c.record(n.Sp, n.Name, st)
		return st
	}
	if en, ok := c.env.Enums[n.Name]; ok {
		c.record(n.Sp, n.Name, en)
		return en
	}
	if owner, ok := c.env.VariantOwner[n.Name]; ok {
		en := c.env.Enums[owner]
		if len(en.Variants[n.Name]) == 0 {
			return instantiateEnum(en, freshArgs(c, en.TypeParams))
		}
		c.addError(n.Sp, diagnostics.ErrT006WrongArity, "variant '"+n.Name+"' requires a payload")
		return types.None
	}
	if n.Name == config.SomeCtorName || n.Name == config.OkCtorName || n.Name == config.ErrCtorName {
		c.addError(n.Sp, diagnostics.ErrT006WrongArity, "'"+n.Name+"' requires a payload")
		return types.None
	}
	c.addError(n.Sp, diagnostics.ErrT001UnknownName, "unknown name '"+n.Name+"'"+didYouMean(n.Name, c.env.AllNames()))
	return types.None
}

func freshArgs(c *Checker, params []string) []types.Type {
	out := make([]types.Type, len(params))
	for i := range params {
		out[i] = c.freshVar()
	}
	return out
}

func (c *Checker) checkPropertyAccess(n *ast.PropertyAccess) types.Type {
	// Qualified enum access: EnumName.Variant or EnumName.Variant(args...).
	if leftID, ok := n.Left.(*ast.Identifier); ok && leftID.IsUpper {
		if en, ok := c.env.Enums[leftID.Name]; ok {
			return c.checkQualifiedVariant(n, en)
		}
	}
	leftType := applied(c.subst, c.checkExpr(n.Left))
	switch right := n.Right.(type) {
	case *ast.TupleIndex:
		tup, ok := leftType.(types.Tuple)
		if !ok || right.Index < 0 || right.Index >= len(tup.Elements) {
			c.addError(n.Sp, diagnostics.ErrT002TypeMismatch, "invalid tuple index on type "+leftType.String())
			return types.None
		}
		return tup.Elements[right.Index]
	case *ast.CallExpression:
		// A method-call-shaped access on a struct value: look up a
		// top-level function by that name as a UFCS-style call (the
		// receiver is implicitly the first argument).
		callee, ok := right.Callee.(*ast.Identifier)
		if !ok {
			return types.None
		}
		info, ok := c.env.Functions[callee.Name]
		if !ok {
			c.addError(callee.Sp, diagnostics.ErrT001UnknownName, "unknown function '"+callee.Name+"'"+didYouMean(callee.Name, c.env.AllNames()))
			return types.None
		}
		args := make([]types.Type, 0, len(right.Args)+1)
		args = append(args, leftType)
		for _, a := range right.Args {
			args = append(args, applied(c.subst, c.checkExpr(a)))
		}
		return c.applyCall(right.Sp(), info.Type, args)
	case *ast.Identifier:
		st, ok := leftType.(types.Struct)
		if !ok {
			c.addError(n.Sp, diagnostics.ErrT005UnknownField, "type "+leftType.String()+" has no field '"+right.Name+"'")
			return types.None
		}
		ft, ok := st.Fields[right.Name]
		if !ok {
			c.addError(right.Sp, diagnostics.ErrT005UnknownField,
				"unknown field '"+right.Name+"' on "+st.Name+didYouMean(right.Name, types.SortedFieldNames(st)))
			return types.None
		}
		c.record(right.Sp, right.Name, ft)
		return ft
	}
	return types.None
}

func (c *Checker) checkQualifiedVariant(n *ast.PropertyAccess, en types.Enum) types.Type {
	switch right := n.Right.(type) {
	case *ast.Identifier:
		return c.checkVariantArity(right.Sp, en, right.Name, nil)
	case *ast.CallExpression:
		callee, ok := right.Callee.(*ast.Identifier)
		if !ok {
			return types.None
		}
		args := make([]types.Type, len(right.Args))
		for i, a := range right.Args {
			args[i] = applied(c.subst, c.checkExpr(a))
		}
		return c.checkVariantArity(callee.Sp, en, callee.Name, args)
	}
	return types.None
}

// checkVariantArity validates a (possibly qualified) enum-variant
// construction's arity and argument types against the variant's declared
// payload, returning the enum type instantiated with fresh args for any
// still-unconstrained type parameters.
func (c *Checker) checkVariantArity(sp token.Span, en types.Enum, name string, args []types.Type) types.Type {
	payload, ok := en.Variants[name]
	if !ok {
		c.addError(sp, diagnostics.ErrT001UnknownName,
			"'"+en.Name+"' has no variant '"+name+"'"+didYouMean(name, en.VariantOrder))
		return types.None
	}
	if len(args) != len(payload) {
		c.addError(sp, diagnostics.ErrT006WrongArity,
			"variant '"+name+"' expects "+itoa(len(payload))+" argument(s), got "+itoa(len(args)))
	}
	instArgs := freshArgs(c, en.TypeParams)
	inst := instantiateEnum(en, instArgs)
	instPayload := inst.Variants[name]
	for i := 0; i < len(args) && i < len(instPayload); i++ {
		c.unify(sp, instPayload[i], args[i])
	}
	return inst
}

func (c *Checker) checkIndexExpression(n *ast.IndexExpression) types.Type {
	leftType := applied(c.subst, c.checkExpr(n.Left))
	idxType := applied(c.subst, c.checkExpr(n.Index))
	c.unify(n.Index.Span(), types.Int, idxType)
	arr, ok := leftType.(types.Array)
	if !ok {
		c.addError(n.Sp, diagnostics.ErrT002TypeMismatch, "cannot index type "+leftType.String())
		return types.None
	}
	return arr.Elem
}

func (c *Checker) checkRangeExpression(n *ast.RangeExpression) types.Type {
	from := applied(c.subst, c.checkExpr(n.From))
	to := applied(c.subst, c.checkExpr(n.To))
	c.unify(n.From.Span(), types.Int, from)
	c.unify(n.To.Span(), types.Int, to)
	return types.Array{Elem: types.Int}
}

func (c *Checker) checkArrayExpression(n *ast.ArrayExpression) types.Type {
	var elem types.Type
	for _, el := range n.Elements {
		var t types.Type
		if sp, ok := el.(*ast.SpreadElement); ok {
			inner := applied(c.subst, c.checkExpr(sp))
			if arr, ok := inner.(types.Array); ok {
				t = arr.Elem
			} else {
				t = inner
			}
		} else {
			t = applied(c.subst, c.checkExpr(el))
		}
		if elem == nil {
			elem = t
		} else if up, ok := types.LeastUpperType(elem, t); ok {
			elem = up
		} else {
			c.addError(el.Span(), diagnostics.ErrT002TypeMismatch,
				"array element type mismatch: "+elem.String()+" vs "+t.String())
		}
	}
	if elem == nil {
		elem = c.freshVar()
	}
	return types.Array{Elem: elem}
}

func (c *Checker) checkIfExpression(n *ast.IfExpression) types.Type {
	condType := applied(c.subst, c.checkExpr(n.Cond))
	c.unify(n.Cond.Span(), types.Bool, condType)
	thenType := applied(c.subst, c.checkBlock(n.Then))
	if n.Else == nil {
		if !types.Equal(thenType, types.None) {
			if up, ok := types.LeastUpperType(thenType, types.None); ok {
				return up
			}
		}
		return types.None
	}
	elseType := applied(c.subst, c.checkExpr(n.Else))
	up, ok := types.LeastUpperType(thenType, elseType)
	if !ok {
		c.addError(n.Sp, diagnostics.ErrT002TypeMismatch,
			"if/else branches have incompatible types "+thenType.String()+" and "+elseType.String())
		return types.None
	}
	return up
}

func (c *Checker) checkFunctionExpression(n *ast.FunctionExpression) types.Type {
	paramTypes := make([]types.Type, len(n.Params))
	for i, p := range n.Params {
		if p.TypeAnnotation != nil {
			paramTypes[i] = c.resolveType(p.TypeAnnotation, nil)
		} else {
			paramTypes[i] = c.freshVar()
		}
	}
	sig := types.Function{Params: paramTypes, Ret: c.freshVar()}
	c.env.PushScope()
	savedSubst := c.subst
	c.subst = types.Subst{}
	for i, p := range n.Params {
		c.defineName(p.Name, paramTypes[i], "")
	}
	// Anonymous functions can't declare `!ErrorType` syntactically, so their
	// error context is always nil; `!`/`?` inside the body is still legal,
	// it just can't be typed against a declared error type.
	c.expectedReturn = append(c.expectedReturn, sig.Ret)
	c.expectedError = append(c.expectedError, nil)
	bodyType := applied(c.subst, c.checkBlockBody(n.Body))
	c.expectedReturn = c.expectedReturn[:len(c.expectedReturn)-1]
	c.expectedError = c.expectedError[:len(c.expectedError)-1]
	c.subst = savedSubst
	c.env.PopScope()
	sig.Ret = bodyType
	return sig
}

func (c *Checker) checkBinaryExpression(n *ast.BinaryExpression) types.Type {
	left := applied(c.subst, c.checkExpr(n.Left))
	right := applied(c.subst, c.checkExpr(n.Right))
	switch n.Op {
	case "+":
		if types.Equal(left, types.String) && types.Equal(right, types.String) {
			return types.String
		}
		if isNumeric(left) && types.Equal(left, right) {
			return left
		}
		c.addError(n.Sp, diagnostics.ErrT002TypeMismatch, "'+' requires two Strings or two matching numeric types, got "+left.String()+" and "+right.String())
		return types.None
	case "-", "*", "/", "%":
		if isNumeric(left) && types.Equal(left, right) {
			return left
		}
		c.addError(n.Sp, diagnostics.ErrT002TypeMismatch, "'"+n.Op+"' requires matching numeric operands, got "+left.String()+" and "+right.String())
		return types.None
	case "<", ">", "<=", ">=":
		if isNumeric(left) && types.Equal(left, right) {
			return types.Bool
		}
		c.addError(n.Sp, diagnostics.ErrT002TypeMismatch, "'"+n.Op+"' requires matching numeric operands, got "+left.String()+" and "+right.String())
		return types.Bool
	case "==", "!=":
		if !types.Equal(left, right) {
			c.addError(n.Sp, diagnostics.ErrT002TypeMismatch, "'"+n.Op+"' requires operands of the same type, got "+left.String()+" and "+right.String())
		}
		return types.Bool
	case "&&", "||":
		c.unify(n.Left.Span(), types.Bool, left)
		c.unify(n.Right.Span(), types.Bool, right)
		return types.Bool
	}
	return types.None
}

func isNumeric(t types.Type) bool {
	p, ok := t.(types.Primitive)
	return ok && (p.Name == config.IntTypeName || p.Name == config.FloatTypeName)
}

func (c *Checker) checkUnaryExpression(n *ast.UnaryExpression) types.Type {
	t := applied(c.subst, c.checkExpr(n.Operand))
	switch n.Op {
	case "-":
		if !isNumeric(t) {
			c.addError(n.Sp, diagnostics.ErrT002TypeMismatch, "unary '-' requires a numeric operand, got "+t.String())
			return types.None
		}
		return t
	case "!":
		c.unify(n.Operand.Span(), types.Bool, t)
		return types.Bool
	}
	return types.None
}

func (c *Checker) checkOrExpression(n *ast.OrExpression) types.Type {
	lhs := applied(c.subst, c.checkExpr(n.Lhs))
	n.PreUnwrapType = lhs
	var success, errOrNone types.Type
	switch lt := lhs.(type) {
	case types.Option:
		success, errOrNone = lt.Inner, types.None
	case types.Result:
		success, errOrNone = lt.Success, lt.Err
	default:
		c.addError(n.Lhs.Span(), diagnostics.ErrT008InvalidPropagate, "'or' requires an Option or Result, got "+lhs.String())
		success, errOrNone = c.freshVar(), types.None
	}
	c.env.PushScope()
	if n.Receiver != nil {
		c.defineName(n.Receiver, errOrNone, "")
	}
	bodyType := applied(c.subst, c.checkExpr(n.Body))
	c.env.PopScope()
	c.unify(n.Body.Span(), success, bodyType)
	return success
}

func (c *Checker) checkPropagateExpression(n *ast.PropagateExpression) types.Type {
	inner := applied(c.subst, c.checkExpr(n.Inner))
	n.PreUnwrapType = inner
	if len(c.expectedReturn) == 0 {
		c.addError(n.Sp, diagnostics.ErrT008InvalidPropagate, "'"+n.Op+"' is only legal inside a function")
	}
	switch n.Op {
	case "!":
		switch it := inner.(type) {
		case types.Result:
			return it.Success
		case types.Option:
			return it.Inner
		}
		c.addError(n.Inner.Span(), diagnostics.ErrT008InvalidPropagate, "'!' requires an Option or Result, got "+inner.String())
		return c.freshVar()
	case "?":
		opt, ok := inner.(types.Option)
		if !ok {
			c.addError(n.Inner.Span(), diagnostics.ErrT008InvalidPropagate, "'?' requires an Option, got "+inner.String())
			return c.freshVar()
		}
		return opt.Inner
	}
	return types.None
}

func (c *Checker) checkAssertExpression(n *ast.AssertExpression) types.Type {
	condType := applied(c.subst, c.checkExpr(n.Cond))
	c.unify(n.Cond.Span(), types.Bool, condType)
	if n.Message != nil {
		c.checkExpr(n.Message)
	}
	return types.None
}

func (c *Checker) checkCallExpression(n *ast.CallExpression) types.Type {
	if id, ok := n.Callee.(*ast.Identifier); ok {
		if t, handled := c.checkBuiltinCtorCall(n, id); handled {
			return t
		}
		if owner, ok := c.env.VariantOwner[id.Name]; ok {
			en := c.env.Enums[owner]
			args := c.checkArgs(n.Args)
			return c.checkVariantArity(id.Sp, en, id.Name, args)
		}
		if info, ok := c.env.Functions[id.Name]; ok {
			c.record(id.Sp, id.Name, info.Type)
			return c.applyCall(n.Sp, info.Type, c.checkArgs(n.Args))
		}
	}
	calleeType := applied(c.subst, c.checkExpr(n.Callee))
	return c.applyCall(n.Sp, calleeType, c.checkArgs(n.Args))
}

func (c *Checker) checkArgs(args []ast.Expression) []types.Type {
	out := make([]types.Type, len(args))
	for i, a := range args {
		out[i] = applied(c.subst, c.checkExpr(a))
	}
	return out
}

// checkBuiltinCtorCall special-cases calls to the language's built-in
// Option/Result constructors, which are not user-declared enum variants
// (internal/config/constants.go documents Some/None/Ok/Err as reserved
// constructor names).
func (c *Checker) checkBuiltinCtorCall(n *ast.CallExpression, id *ast.Identifier) (types.Type, bool) {
	switch id.Name {
	case config.SomeCtorName:
		if len(n.Args) != 1 {
			c.addError(n.Sp, diagnostics.ErrT006WrongArity, "'Some' expects exactly 1 argument")
			return types.Option{Inner: c.freshVar()}, true
		}
		return types.Option{Inner: applied(c.subst, c.checkExpr(n.Args[0]))}, true
	case config.OkCtorName:
		if len(n.Args) != 1 {
			c.addError(n.Sp, diagnostics.ErrT006WrongArity, "'Ok' expects exactly 1 argument")
			return types.Result{Success: c.freshVar(), Err: c.freshVar()}, true
		}
		return types.Result{Success: applied(c.subst, c.checkExpr(n.Args[0])), Err: c.freshVar()}, true
	case config.ErrCtorName:
		if len(n.Args) != 1 {
			c.addError(n.Sp, diagnostics.ErrT006WrongArity, "'Err' expects exactly 1 argument")
			return types.Result{Success: c.freshVar(), Err: c.freshVar()}, true
		}
		return types.Result{Success: c.freshVar(), Err: applied(c.subst, c.checkExpr(n.Args[0]))}, true
	}
	return nil, false
}

// applyCall freshens a callee's Function type so that calling a generic
// function twice with different argument types does not let the first
// call's bindings leak into the second (spec.md §4.3's "per-function
// parameter substitution map" is local to each call site).
func (c *Checker) applyCall(sp token.Span, fnType types.Type, args []types.Type) types.Type {
	fn, ok := fnType.(types.Function)
	if !ok {
		c.addError(sp, diagnostics.ErrT002TypeMismatch, "cannot call non-function type "+fnType.String())
		return types.None
	}
	inst := c.freshenFunction(fn)
	if len(args) != len(inst.Params) {
		c.addError(sp, diagnostics.ErrT006WrongArity,
			"function expects "+itoa(len(inst.Params))+" argument(s), got "+itoa(len(args)))
	}
	local := types.Subst{}
	for i := 0; i < len(args) && i < len(inst.Params); i++ {
		s, err := types.UnifyWith(local, inst.Params[i], args[i])
		if err != nil {
			c.addError(sp, diagnostics.ErrT002TypeMismatch,
				"argument "+itoa(i+1)+": expected "+inst.Params[i].Apply(local).String()+", got "+args[i].String())
			continue
		}
		local = s
	}
	ret := inst.Ret.Apply(local)
	if inst.ErrorType != nil {
		return types.Result{Success: ret, Err: inst.ErrorType.Apply(local)}
	}
	return ret
}

func (c *Checker) freshenFunction(fn types.Function) types.Function {
	rename := types.Subst{}
	for _, v := range fn.FreeVars() {
		if _, ok := rename[v]; !ok {
			rename[v] = c.freshVar()
		}
	}
	return fn.Apply(rename).(types.Function)
}

func (c *Checker) checkStructInit(n *ast.StructInitExpression) types.Type {
	st, ok := c.env.Structs[n.TypeName.Name]
	if !ok {
		c.addError(n.TypeName.Sp, diagnostics.ErrT001UnknownName,
			"unknown struct '"+n.TypeName.Name+"'"+didYouMean(n.TypeName.Name, c.typeNames()))
		for _, f := range n.Fields {
			c.checkExpr(f.Value)
		}
		return types.None
	}
	args := freshArgs(c, st.TypeParams)
	if len(n.TypeArgs) > 0 {
		args = c.resolveArgs(n.TypeArgs, nil)
	}
	inst := instantiateStruct(st, args)
	seenFields := make(map[string]bool, len(n.Fields))
	for _, f := range n.Fields {
		if seenFields[f.Name.Name] {
			c.addError(f.Sp, diagnostics.ErrT003DuplicateField, "duplicate field '"+f.Name.Name+"'")
		}
		seenFields[f.Name.Name] = true
		declared, ok := inst.Fields[f.Name.Name]
		if !ok {
			available := ""
			for i, name := range types.SortedFieldNames(inst) {
				if i > 0 {
					available += ", "
				}
				available += name
			}
			c.addError(f.Name.Sp, diagnostics.ErrT005UnknownField,
				"unknown field '"+f.Name.Name+"' on "+st.Name+didYouMean(f.Name.Name, types.SortedFieldNames(inst))+
					"; available fields: "+available)
			c.checkExpr(f.Value)
			continue
		}
		valType := applied(c.subst, c.checkExpr(f.Value))
		coerced, _ := types.ExpectCoerce(declared, valType)
		c.unify(f.Sp, declared, coerced)
	}
	for _, name := range st.FieldOrder {
		if seenFields[name] || st.HasDefault[name] {
			continue
		}
		c.addError(n.Sp, diagnostics.ErrT004MissingField, "missing field '"+name+"' in "+st.Name+" initializer")
	}
	return inst
}
