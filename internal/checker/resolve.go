package checker

import (
	"github.com/al-lang/al/internal/ast"
	"github.com/al-lang/al/internal/config"
	"github.com/al-lang/al/internal/diagnostics"
	"github.com/al-lang/al/internal/types"
)

// resolveType converts a syntactic TypeNode into the semantic types.Type
// domain. typeParams names the type-parameter scope in effect (e.g. a
// struct/enum/function's own declared lowercase parameters), so that a
// bare reference to one of them resolves to a types.Var instead of an
// unknown-name error.
func (c *Checker) resolveType(node ast.TypeNode, typeParams map[string]types.Var) types.Type {
	switch n := node.(type) {
	case nil:
		return c.freshVar()
	case *ast.NamedTypeNode:
		return c.resolveNamedType(n, typeParams)
	case *ast.OptionTypeNode:
		return types.Option{Inner: c.resolveType(n.Inner, typeParams)}
	case *ast.ResultTypeNode:
		return types.Result{Success: c.resolveType(n.Success, typeParams), Err: c.resolveType(n.Err, typeParams)}
	case *ast.ArrayTypeNode:
		return types.Array{Elem: c.resolveType(n.Elem, typeParams)}
	case *ast.TupleTypeNode:
		elems := make([]types.Type, len(n.Elements))
		for i, e := range n.Elements {
			elems[i] = c.resolveType(e, typeParams)
		}
		return types.Tuple{Elements: elems}
	}
	return types.None
}

func (c *Checker) resolveNamedType(n *ast.NamedTypeNode, typeParams map[string]types.Var) types.Type {
	switch n.Name {
	case config.IntTypeName:
		return types.Int
	case config.FloatTypeName:
		return types.Float
	case config.StringTypeName:
		return types.String
	case config.BoolTypeName:
		return types.Bool
	case "None":
		return types.None
	}
	if v, ok := typeParams[n.Name]; ok {
		return v
	}
	if st, ok := c.env.Structs[n.Name]; ok {
		return instantiateStruct(st, c.resolveArgs(n.Args, typeParams))
	}
	if en, ok := c.env.Enums[n.Name]; ok {
		return instantiateEnum(en, c.resolveArgs(n.Args, typeParams))
	}
	c.addError(n.Sp, diagnostics.ErrT001UnknownName, "unknown type '"+n.Name+"'"+didYouMean(n.Name, c.typeNames()))
	return types.None
}

func (c *Checker) resolveArgs(args []ast.TypeNode, typeParams map[string]types.Var) []types.Type {
	out := make([]types.Type, len(args))
	for i, a := range args {
		out[i] = c.resolveType(a, typeParams)
	}
	return out
}

func (c *Checker) typeNames() []string {
	var names []string
	for n := range c.env.Structs {
		names = append(names, n)
	}
	for n := range c.env.Enums {
		names = append(names, n)
	}
	names = append(names, config.IntTypeName, config.FloatTypeName, config.StringTypeName, config.BoolTypeName)
	return names
}

// instantiateStruct substitutes args for a generic struct's declared type
// parameters, producing the concrete Struct used at a specific use site.
func instantiateStruct(st types.Struct, args []types.Type) types.Struct {
	if len(st.TypeParams) == 0 {
		return st
	}
	sub := types.Subst{}
	for i, p := range st.TypeParams {
		if i < len(args) {
			sub[p] = args[i]
		}
	}
	out := st.Apply(sub).(types.Struct)
	out.Args = args
	return out
}

func instantiateEnum(en types.Enum, args []types.Type) types.Enum {
	if len(en.TypeParams) == 0 {
		return en
	}
	sub := types.Subst{}
	for i, p := range en.TypeParams {
		if i < len(args) {
			sub[p] = args[i]
		}
	}
	out := en.Apply(sub).(types.Enum)
	out.Args = args
	return out
}
