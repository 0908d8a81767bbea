// Package types implements AL's type domain: primitives, None, Option,
// Result, Array, Tuple, Function, user-declared Struct/Enum, and free
// inference variables, plus substitution and Hindley-Milner-flavored
// unification over them.
package types

import (
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/al-lang/al/internal/config"
)

// Type is the interface every member of the type domain implements.
type Type interface {
	String() string
	Apply(Subst) Type
	FreeVars() []string
}

// Primitive represents Int, Float, String, or Bool.
type Primitive struct{ Name string }

func (p Primitive) String() string       { return p.Name }
func (p Primitive) Apply(Subst) Type     { return p }
func (p Primitive) FreeVars() []string   { return nil }

var (
	Int    = Primitive{Name: config.IntTypeName}
	Float  = Primitive{Name: config.FloatTypeName}
	String = Primitive{Name: config.StringTypeName}
	Bool   = Primitive{Name: config.BoolTypeName}
)

// None is the unit/absent type: the type of a binding with no constraint,
// of `none` literals, and of bare error-less expressions.
type NoneType struct{}

func (NoneType) String() string     { return "None" }
func (NoneType) Apply(Subst) Type   { return NoneType{} }
func (NoneType) FreeVars() []string { return nil }

var None = NoneType{}

// Option represents `?T`.
type Option struct{ Inner Type }

func (o Option) String() string   { return "?" + o.Inner.String() }
func (o Option) Apply(s Subst) Type { return Option{Inner: o.Inner.Apply(s)} }
func (o Option) FreeVars() []string { return o.Inner.FreeVars() }

// Result represents `Success!Error`.
type Result struct {
	Success Type
	Err     Type
}

func (r Result) String() string { return r.Success.String() + "!" + r.Err.String() }
func (r Result) Apply(s Subst) Type {
	return Result{Success: r.Success.Apply(s), Err: r.Err.Apply(s)}
}
func (r Result) FreeVars() []string { return append(r.Success.FreeVars(), r.Err.FreeVars()...) }

// Array represents `[T]`.
type Array struct{ Elem Type }

func (a Array) String() string     { return "[" + a.Elem.String() + "]" }
func (a Array) Apply(s Subst) Type { return Array{Elem: a.Elem.Apply(s)} }
func (a Array) FreeVars() []string { return a.Elem.FreeVars() }

// Tuple represents `(T1, T2, ...)`.
type Tuple struct{ Elements []Type }

func (t Tuple) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (t Tuple) Apply(s Subst) Type {
	out := make([]Type, len(t.Elements))
	for i, e := range t.Elements {
		out[i] = e.Apply(s)
	}
	return Tuple{Elements: out}
}
func (t Tuple) FreeVars() []string {
	var fv []string
	for _, e := range t.Elements {
		fv = append(fv, e.FreeVars()...)
	}
	return fv
}

// Function represents a function's params/return and, for a function
// declared `T!E`, its error type E, kept separate from Ret: the checker
// turns it into a Result at call sites and checks an erroring body against
// it. Propagation (`!`, `?`) inside the function does not consult it.
type Function struct {
	Params    []Type
	Ret       Type
	ErrorType Type // non-nil if Ret is sugar for Result(Ret, ErrorType); nil otherwise
}

func (f Function) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	return "fn(" + strings.Join(parts, ", ") + ") " + f.Ret.String()
}
func (f Function) Apply(s Subst) Type {
	params := make([]Type, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Apply(s)
	}
	var errT Type
	if f.ErrorType != nil {
		errT = f.ErrorType.Apply(s)
	}
	return Function{Params: params, Ret: f.Ret.Apply(s), ErrorType: errT}
}
func (f Function) FreeVars() []string {
	var fv []string
	for _, p := range f.Params {
		fv = append(fv, p.FreeVars()...)
	}
	fv = append(fv, f.Ret.FreeVars()...)
	return fv
}

// Struct is a nominal record type. Two Structs are equal iff ID matches,
// per spec.md §3 ("two nominal types are equal iff the id matches").
type Struct struct {
	ID         string
	Name       string
	TypeParams []string
	Fields     map[string]Type
	FieldOrder []string
	Args       []Type          // instantiated type-parameter arguments, if generic
	HasDefault map[string]bool // fields with a declared default, omittable at init
}

func (s Struct) String() string {
	if len(s.Args) == 0 {
		return s.Name
	}
	parts := make([]string, len(s.Args))
	for i, a := range s.Args {
		parts[i] = a.String()
	}
	return s.Name + "(" + strings.Join(parts, ", ") + ")"
}
func (s Struct) Apply(sub Subst) Type {
	fields := make(map[string]Type, len(s.Fields))
	for k, v := range s.Fields {
		fields[k] = v.Apply(sub)
	}
	args := make([]Type, len(s.Args))
	for i, a := range s.Args {
		args[i] = a.Apply(sub)
	}
	return Struct{ID: s.ID, Name: s.Name, TypeParams: s.TypeParams, Fields: fields, FieldOrder: s.FieldOrder, Args: args, HasDefault: s.HasDefault}
}
func (s Struct) FreeVars() []string {
	var fv []string
	for _, k := range s.FieldOrder {
		fv = append(fv, s.Fields[k].FreeVars()...)
	}
	return fv
}

// Enum is a nominal sum type. Two Enums are equal iff ID matches.
type Enum struct {
	ID           string
	Name         string
	TypeParams   []string
	Variants     map[string][]Type
	VariantOrder []string
	Args         []Type
}

func (e Enum) String() string {
	if len(e.Args) == 0 {
		return e.Name
	}
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return e.Name + "(" + strings.Join(parts, ", ") + ")"
}
func (e Enum) Apply(sub Subst) Type {
	variants := make(map[string][]Type, len(e.Variants))
	for k, v := range e.Variants {
		payload := make([]Type, len(v))
		for i, t := range v {
			payload[i] = t.Apply(sub)
		}
		variants[k] = payload
	}
	args := make([]Type, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.Apply(sub)
	}
	return Enum{ID: e.ID, Name: e.Name, TypeParams: e.TypeParams, Variants: variants, VariantOrder: e.VariantOrder, Args: args}
}
func (e Enum) FreeVars() []string {
	var fv []string
	for _, k := range e.VariantOrder {
		for _, t := range e.Variants[k] {
			fv = append(fv, t.FreeVars()...)
		}
	}
	return fv
}

// NewNominalID allocates a collision-free identity for a newly declared
// struct or enum, so nominal equality never depends on name shadowing or
// declaration order.
func NewNominalID() string {
	return uuid.New().String()
}

// Var is a free inference variable ('a, 'b, ... as generated by the
// checker; names of the form t1, t2, ... render as "t?" in test mode).
type Var struct{ Name string }

func (v Var) String() string {
	if config.IsTestMode && strings.HasPrefix(v.Name, "t") {
		if _, err := strconv.Atoi(v.Name[1:]); err == nil {
			return "t?"
		}
	}
	return v.Name
}
func (v Var) Apply(s Subst) Type {
	if t, ok := s[v.Name]; ok {
		if tv, ok := t.(Var); ok && tv.Name == v.Name {
			return v
		}
		return t.Apply(s)
	}
	return v
}
func (v Var) FreeVars() []string { return []string{v.Name} }

// SameNominal reports whether a and b are the same declared struct/enum by
// identity, per spec.md's injective-id rule.
func SameNominal(a, b Type) bool {
	switch x := a.(type) {
	case Struct:
		y, ok := b.(Struct)
		return ok && x.ID == y.ID
	case Enum:
		y, ok := b.(Enum)
		return ok && x.ID == y.ID
	}
	return false
}

// Equal reports structural equality (nominal types compared by ID).
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case Primitive:
		y, ok := b.(Primitive)
		return ok && x.Name == y.Name
	case NoneType:
		_, ok := b.(NoneType)
		return ok
	case Option:
		y, ok := b.(Option)
		return ok && Equal(x.Inner, y.Inner)
	case Result:
		y, ok := b.(Result)
		return ok && Equal(x.Success, y.Success) && Equal(x.Err, y.Err)
	case Array:
		y, ok := b.(Array)
		return ok && Equal(x.Elem, y.Elem)
	case Tuple:
		y, ok := b.(Tuple)
		if !ok || len(x.Elements) != len(y.Elements) {
			return false
		}
		for i := range x.Elements {
			if !Equal(x.Elements[i], y.Elements[i]) {
				return false
			}
		}
		return true
	case Function:
		y, ok := b.(Function)
		if !ok || len(x.Params) != len(y.Params) {
			return false
		}
		for i := range x.Params {
			if !Equal(x.Params[i], y.Params[i]) {
				return false
			}
		}
		return Equal(x.Ret, y.Ret)
	case Struct:
		y, ok := b.(Struct)
		if !ok || x.ID != y.ID || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case Enum:
		y, ok := b.(Enum)
		if !ok || x.ID != y.ID || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case Var:
		y, ok := b.(Var)
		return ok && x.Name == y.Name
	}
	return false
}

// SortedFieldNames returns field names in sorted order, used when
// rendering "available fields" suggestions deterministically.
func SortedFieldNames(s Struct) []string {
	names := make([]string, 0, len(s.Fields))
	for k := range s.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
