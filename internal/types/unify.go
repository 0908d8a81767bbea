package types

import "fmt"

// UnifyError reports two types that could not be unified.
type UnifyError struct {
	A, B Type
}

func (e *UnifyError) Error() string {
	return fmt.Sprintf("type mismatch: expected %s, got %s", e.A.String(), e.B.String())
}

// Unify computes the most general substitution making a and b equal,
// starting from an empty substitution.
func Unify(a, b Type) (Subst, error) {
	return UnifyWith(Subst{}, a, b)
}

// UnifyWith extends an existing substitution map with whatever is needed
// to make a and b equal, applying existing first (spec.md §4.3: "a
// substitution map that maps each Var to the first concrete type it
// meets; subsequent uses must equal that concrete type").
func UnifyWith(existing Subst, a, b Type) (Subst, error) {
	a = a.Apply(existing)
	b = b.Apply(existing)

	switch x := a.(type) {
	case Var:
		return bindVar(existing, x.Name, b)
	}
	if y, ok := b.(Var); ok {
		return bindVar(existing, y.Name, a)
	}

	switch x := a.(type) {
	case Primitive:
		y, ok := b.(Primitive)
		if !ok || x.Name != y.Name {
			return nil, &UnifyError{A: a, B: b}
		}
		return existing, nil
	case NoneType:
		if _, ok := b.(NoneType); !ok {
			return nil, &UnifyError{A: a, B: b}
		}
		return existing, nil
	case Option:
		y, ok := b.(Option)
		if !ok {
			return nil, &UnifyError{A: a, B: b}
		}
		return UnifyWith(existing, x.Inner, y.Inner)
	case Result:
		y, ok := b.(Result)
		if !ok {
			return nil, &UnifyError{A: a, B: b}
		}
		s, err := UnifyWith(existing, x.Success, y.Success)
		if err != nil {
			return nil, err
		}
		return UnifyWith(s, x.Err, y.Err)
	case Array:
		y, ok := b.(Array)
		if !ok {
			return nil, &UnifyError{A: a, B: b}
		}
		return UnifyWith(existing, x.Elem, y.Elem)
	case Tuple:
		y, ok := b.(Tuple)
		if !ok || len(x.Elements) != len(y.Elements) {
			return nil, &UnifyError{A: a, B: b}
		}
		s := existing
		var err error
		for i := range x.Elements {
			s, err = UnifyWith(s, x.Elements[i], y.Elements[i])
			if err != nil {
				return nil, err
			}
		}
		return s, nil
	case Function:
		y, ok := b.(Function)
		if !ok || len(x.Params) != len(y.Params) {
			return nil, &UnifyError{A: a, B: b}
		}
		s := existing
		var err error
		for i := range x.Params {
			s, err = UnifyWith(s, x.Params[i], y.Params[i])
			if err != nil {
				return nil, err
			}
		}
		return UnifyWith(s, x.Ret, y.Ret)
	case Struct:
		y, ok := b.(Struct)
		if !ok || x.ID != y.ID || len(x.Args) != len(y.Args) {
			return nil, &UnifyError{A: a, B: b}
		}
		s := existing
		var err error
		for i := range x.Args {
			s, err = UnifyWith(s, x.Args[i], y.Args[i])
			if err != nil {
				return nil, err
			}
		}
		return s, nil
	case Enum:
		y, ok := b.(Enum)
		if !ok || x.ID != y.ID || len(x.Args) != len(y.Args) {
			return nil, &UnifyError{A: a, B: b}
		}
		s := existing
		var err error
		for i := range x.Args {
			s, err = UnifyWith(s, x.Args[i], y.Args[i])
			if err != nil {
				return nil, err
			}
		}
		return s, nil
	}
	return nil, &UnifyError{A: a, B: b}
}

func bindVar(existing Subst, name string, t Type) (Subst, error) {
	if tv, ok := t.(Var); ok && tv.Name == name {
		return existing, nil
	}
	// The variable already has a concrete binding: subsequent uses must
	// equal it exactly (spec.md §4.3).
	if prior, ok := existing[name]; ok {
		return UnifyWith(existing, prior, t)
	}
	return existing.Compose(Subst{name: t}), nil
}

// ExpectCoerce implements the one-way coercions allowed at expect_type
// sites (spec.md §4.3 "Coercions"): T where Option<T> is expected, None
// where Option<T> is expected, T where Result<T,E> is expected. It never
// applies outside an explicit expected-type context.
func ExpectCoerce(expected, actual Type) (Type, bool) {
	switch exp := expected.(type) {
	case Option:
		if _, ok := actual.(NoneType); ok {
			return expected, true
		}
		if _, ok := actual.(Option); ok {
			return actual, false
		}
		return Option{Inner: actual}, true
	case Result:
		if _, ok := actual.(Result); ok {
			return actual, false
		}
		return Result{Success: actual, Err: exp.Err}, true
	}
	return actual, false
}
