// Package pattern implements Maranget's matrix-based algorithm for match
// usefulness and exhaustiveness (spec.md §4.4) over the closed constructor
// algebra described by internal/types. It operates purely on the lowered
// Pat form and a type vector; lowering surface AST patterns into Pat (which
// requires resolving enum/struct names and binding identifiers) is the type
// checker's job, not this package's.
package pattern

import (
	"fmt"
	"strings"

	"github.com/al-lang/al/internal/config"
	"github.com/al-lang/al/internal/types"
)

// Pat is the internal pattern representation: Wildcard, Ctor, or Or.
type Pat interface{ isPat() }

// Wildcard matches anything and binds nothing (covers `_` and identifier
// binders alike — the checker already recorded any binding before handing
// this down).
type Wildcard struct{}

func (Wildcard) isPat() {}

// Ctor is a named constructor applied to sub-patterns. Leaf literals and
// opaque boolean-condition arms are zero-arity Ctors with a synthetic name
// (spec.md §4.4's lowering table: "lit:<repr>", "cond:<line>:<col>", etc).
type Ctor struct {
	Name string
	Args []Pat
}

func (Ctor) isPat() {}

// Or is an alternation `p1 | p2 | ...`.
type Or struct{ Patterns []Pat }

func (Or) isPat() {}

// CtorSig describes one inhabited constructor of a type: its name and the
// types of its arguments, for specializing the matrix.
type CtorSig struct {
	Name     string
	ArgTypes []types.Type
}

// ConstructorSet enumerates a type's inhabited constructors and reports
// whether the set is complete (spec.md §4.4, "Type-driven constructor
// set"). Incomplete/infinite domains (numbers, strings) return ok=false;
// the caller then falls back to the default-matrix case.
func ConstructorSet(t types.Type) (ctors []CtorSig, complete bool) {
	switch x := t.(type) {
	case types.Primitive:
		if x.Name == "Bool" {
			return []CtorSig{{Name: "true"}, {Name: "false"}}, true
		}
		return nil, false
	case types.NoneType:
		return []CtorSig{{Name: config.NoneCtorName}}, true
	case types.Option:
		return []CtorSig{
			{Name: config.SomeCtorName, ArgTypes: []types.Type{x.Inner}},
			{Name: config.NoneCtorName},
		}, true
	case types.Result:
		return []CtorSig{
			{Name: config.OkCtorName, ArgTypes: []types.Type{x.Success}},
			{Name: config.ErrCtorName, ArgTypes: []types.Type{x.Err}},
		}, true
	case types.Array:
		return []CtorSig{
			{Name: "[]"},
			{Name: "[..]", ArgTypes: []types.Type{x.Elem, x}},
		}, true
	case types.Tuple:
		return []CtorSig{{Name: "tuple", ArgTypes: x.Elements}}, true
	case types.Enum:
		out := make([]CtorSig, 0, len(x.VariantOrder))
		for _, name := range x.VariantOrder {
			out = append(out, CtorSig{Name: name, ArgTypes: x.Variants[name]})
		}
		return out, true
	case types.Struct:
		args := make([]types.Type, 0, len(x.FieldOrder))
		for _, f := range x.FieldOrder {
			args = append(args, x.Fields[f])
		}
		return []CtorSig{{Name: "struct", ArgTypes: args}}, true
	}
	return nil, false
}

// ctorArgTypes looks up the argument types for a single named constructor
// of t, used when specializing against a Ctor pattern whose name is
// already known (rather than enumerating the whole set).
func ctorArgTypes(t types.Type, name string) []types.Type {
	ctors, _ := ConstructorSet(t)
	for _, c := range ctors {
		if c.Name == name {
			return c.ArgTypes
		}
	}
	return nil
}

// Render renders a Pat as source-like syntax for a missing-case witness
// such as "Some(_)", "[_, ..]", "Ok(_)" or "(_, false)".
func Render(p Pat) string {
	switch x := p.(type) {
	case Wildcard:
		return "_"
	case Ctor:
		return renderCtor(x)
	case Or:
		parts := make([]string, len(x.Patterns))
		for i, alt := range x.Patterns {
			parts[i] = Render(alt)
		}
		return strings.Join(parts, " | ")
	}
	return "_"
}

func renderCtor(c Ctor) string {
	switch c.Name {
	case "tuple":
		parts := make([]string, len(c.Args))
		for i, a := range c.Args {
			parts[i] = Render(a)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case "[]":
		return "[]"
	case "[..]":
		if len(c.Args) == 2 {
			return "[" + Render(c.Args[0]) + ", ..]"
		}
		return "[..]"
	case "struct":
		return "{..}"
	}
	if strings.HasPrefix(c.Name, "lit:") {
		return strings.TrimPrefix(c.Name, "lit:")
	}
	if strings.HasPrefix(c.Name, "cond:") {
		return "_"
	}
	if len(c.Args) == 0 {
		return c.Name
	}
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = Render(a)
	}
	return fmt.Sprintf("%s(%s)", c.Name, strings.Join(parts, ", "))
}
