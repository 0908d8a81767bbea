package checker

import (
	"github.com/al-lang/al/internal/ast"
	"github.com/al-lang/al/internal/diagnostics"
	"github.com/al-lang/al/internal/typeenv"
	"github.com/al-lang/al/internal/types"
)

// registerSignature hoists a top-level struct/enum/function's signature
// into the Environment before any body is checked, so forward references
// between top-level declarations type-check regardless of source order.
func (c *Checker) registerSignature(node ast.Node) {
	switch n := node.(type) {
	case *ast.StructDeclaration:
		c.registerStruct(n)
	case *ast.EnumDeclaration:
		c.registerEnum(n)
	case *ast.FunctionDeclaration:
		c.registerFunction(n)
	}
}

func (c *Checker) registerStruct(n *ast.StructDeclaration) {
	if _, exists := c.env.Structs[n.Name.Name]; exists {
		c.addError(n.Name.Sp, diagnostics.ErrT009DuplicateName, "'"+n.Name.Name+"' is already declared")
	}
	params := make(map[string]types.Var, len(n.TypeParams))
	for _, p := range n.TypeParams {
		params[p] = types.Var{Name: "'" + p}
	}
	st := types.Struct{
		ID:         types.NewNominalID(),
		Name:       n.Name.Name,
		TypeParams: n.TypeParams,
		Fields:     make(map[string]types.Type, len(n.Fields)),
		FieldOrder: make([]string, 0, len(n.Fields)),
		HasDefault: make(map[string]bool, len(n.Fields)),
	}
	for _, f := range n.Fields {
		ft := c.resolveType(f.Type, params)
		st.Fields[f.Name.Name] = ft
		st.FieldOrder = append(st.FieldOrder, f.Name.Name)
		st.HasDefault[f.Name.Name] = f.Default != nil
	}
	c.env.Structs[n.Name.Name] = st
	c.env.RecordDefinition(n.Name.Name, n.Name.Sp)
	c.env.RecordDoc(n.Name.Name, n.Doc)
}

func (c *Checker) registerEnum(n *ast.EnumDeclaration) {
	if _, exists := c.env.Enums[n.Name.Name]; exists {
		c.addError(n.Name.Sp, diagnostics.ErrT009DuplicateName, "'"+n.Name.Name+"' is already declared")
	}
	params := make(map[string]types.Var, len(n.TypeParams))
	for _, p := range n.TypeParams {
		params[p] = types.Var{Name: "'" + p}
	}
	en := types.Enum{
		ID:           types.NewNominalID(),
		Name:         n.Name.Name,
		TypeParams:   n.TypeParams,
		Variants:     make(map[string][]types.Type, len(n.Variants)),
		VariantOrder: make([]string, 0, len(n.Variants)),
	}
	for _, v := range n.Variants {
		payload := make([]types.Type, len(v.Payload))
		for i, p := range v.Payload {
			payload[i] = c.resolveType(p, params)
		}
		en.Variants[v.Name.Name] = payload
		en.VariantOrder = append(en.VariantOrder, v.Name.Name)
		// Most recent declaration wins for unqualified Variant(...) use,
		// per typeenv.Environment's documented VariantOwner semantics.
		c.env.VariantOwner[v.Name.Name] = n.Name.Name
	}
	c.env.Enums[n.Name.Name] = en
	c.env.RecordDefinition(n.Name.Name, n.Name.Sp)
	c.env.RecordDoc(n.Name.Name, n.Doc)
}

func (c *Checker) registerFunction(n *ast.FunctionDeclaration) {
	if _, exists := c.env.Functions[n.Name.Name]; exists {
		c.addError(n.Name.Sp, diagnostics.ErrT009DuplicateName, "'"+n.Name.Name+"' is already declared")
	}
	params := make(map[string]types.Var, len(n.TypeParams))
	for _, p := range n.TypeParams {
		params[p] = types.Var{Name: "'" + p}
	}
	paramTypes := make([]types.Type, len(n.Params))
	for i, p := range n.Params {
		if p.TypeAnnotation != nil {
			paramTypes[i] = c.resolveType(p.TypeAnnotation, params)
		} else {
			paramTypes[i] = c.freshVar()
		}
	}
	var ret types.Type
	var errT types.Type
	if n.RetType != nil {
		ret = c.resolveType(n.RetType, params)
	} else {
		ret = c.freshVar()
	}
	if n.ErrorType != nil {
		errT = c.resolveType(n.ErrorType, params)
	}
	fn := types.Function{Params: paramTypes, Ret: ret, ErrorType: errT}
	c.env.Functions[n.Name.Name] = &typeenv.FuncInfo{Type: fn, TypeParams: n.TypeParams}
	c.env.RecordDefinition(n.Name.Name, n.Name.Sp)
	c.env.RecordDoc(n.Name.Name, n.Doc)
}
