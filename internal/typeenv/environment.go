// Package typeenv implements the type checker's lexical environment: a
// stack of scopes (name -> type) plus flat registries for declared
// functions, structs, and enums, and per-name definition-location/doc
// tracking for editor hover (spec.md §3, "Type Environment").
package typeenv

import (
	"github.com/al-lang/al/internal/token"
	"github.com/al-lang/al/internal/types"
)

// binding records a single name's type and whether it was introduced by a
// `const` declaration (constants can never be reassigned).
type binding struct {
	typ      types.Type
	isConst  bool
	isPatternVar bool
}

// Scope is one level of lexical nesting.
type Scope struct {
	names map[string]binding
}

func newScope() *Scope { return &Scope{names: make(map[string]binding)} }

// FuncInfo describes a registered function's signature for call-site
// lookups, independent of the lexical scope it was declared in.
type FuncInfo struct {
	Type       types.Function
	TypeParams []string
}

// Environment is the full type-checking context: the lexical scope stack
// plus the flat declaration registries.
type Environment struct {
	scopes []*Scope

	Functions map[string]*FuncInfo
	Structs   map[string]types.Struct
	Enums     map[string]types.Enum

	// VariantOwner maps a bare variant name to the enum that declares it,
	// for `Ok('hi')`-style unqualified constructor calls. When the same
	// variant name is declared by more than one enum, the most recently
	// registered declaration wins; qualified `Enum.Variant(...)` access
	// always resolves unambiguously via Enums regardless of this map.
	VariantOwner map[string]string

	DefLocation map[string]token.Span
	Doc         map[string]string
}

// New creates an Environment with a single (global) scope.
func New() *Environment {
	return &Environment{
		scopes:       []*Scope{newScope()},
		Functions:    make(map[string]*FuncInfo),
		Structs:      make(map[string]types.Struct),
		Enums:        make(map[string]types.Enum),
		VariantOwner: make(map[string]string),
		DefLocation:  make(map[string]token.Span),
		Doc:          make(map[string]string),
	}
}

// PushScope opens a new lexical scope. Every PushScope must be paired with
// a PopScope on every code path, including error/early-return paths
// (spec.md §5, "scoped acquisition with guaranteed release").
func (e *Environment) PushScope() {
	e.scopes = append(e.scopes, newScope())
}

// PopScope closes the innermost lexical scope.
func (e *Environment) PopScope() {
	if len(e.scopes) <= 1 {
		return
	}
	e.scopes = e.scopes[:len(e.scopes)-1]
}

// Depth returns the current scope-stack depth. spec.md §8 requires depth
// == 1 (top level only) once check() completes.
func (e *Environment) Depth() int { return len(e.scopes) }

func (e *Environment) current() *Scope { return e.scopes[len(e.scopes)-1] }

// Define introduces name in the current (innermost) scope, shadowing any
// outer binding of the same name.
func (e *Environment) Define(name string, t types.Type) {
	e.current().names[name] = binding{typ: t}
}

// DefineConst introduces an immutable name in the current scope.
func (e *Environment) DefineConst(name string, t types.Type) {
	e.current().names[name] = binding{typ: t, isConst: true}
}

// DefinePatternVar introduces a name bound by a match-arm or destructuring
// pattern.
func (e *Environment) DefinePatternVar(name string, t types.Type) {
	e.current().names[name] = binding{typ: t, isPatternVar: true}
}

// Lookup searches the scope chain from innermost to outermost.
func (e *Environment) Lookup(name string) (types.Type, bool) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if b, ok := e.scopes[i].names[name]; ok {
			return b.typ, true
		}
	}
	return nil, false
}

// IsConst reports whether name, if defined, was bound by `const`.
func (e *Environment) IsConst(name string) bool {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if b, ok := e.scopes[i].names[name]; ok {
			return b.isConst
		}
	}
	return false
}

// IsDefinedInCurrentScope reports whether name is bound in the innermost
// scope specifically (used for "redefinition in this scope" checks).
func (e *Environment) IsDefinedInCurrentScope(name string) bool {
	_, ok := e.current().names[name]
	return ok
}

// AtTopLevel reports whether the current scope is the single global scope.
func (e *Environment) AtTopLevel() bool { return len(e.scopes) == 1 }

// AllNames returns every name visible from the current scope chain, plus
// every registered function/struct/enum name, for Levenshtein "did you
// mean" suggestions (spec.md §4.3).
func (e *Environment) AllNames() []string {
	seen := make(map[string]bool)
	var names []string
	add := func(n string) {
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	for i := len(e.scopes) - 1; i >= 0; i-- {
		for n := range e.scopes[i].names {
			add(n)
		}
	}
	for n := range e.Functions {
		add(n)
	}
	for n := range e.Structs {
		add(n)
	}
	for n := range e.Enums {
		add(n)
	}
	for n := range e.VariantOwner {
		add(n)
	}
	return names
}

// RecordDefinition tracks where name was declared, for go-to-definition.
func (e *Environment) RecordDefinition(name string, sp token.Span) {
	e.DefLocation[name] = sp
}

// RecordDoc tracks a name's doc-comment text, for hover documentation.
func (e *Environment) RecordDoc(name string, doc string) {
	if doc != "" {
		e.Doc[name] = doc
	}
}
