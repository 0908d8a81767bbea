package types

// LeastUpperType implements the branch/arm unification rules of
// spec.md §4.3 ("Arm/branch type unification"): when two branches of an
// if/else or match produce differing types, compute the type that
// subsumes both, or report that none exists.
func LeastUpperType(a, b Type) (Type, bool) {
	if Equal(a, b) {
		return a, true
	}

	// T + None -> Option<T> (either order).
	if _, ok := a.(NoneType); ok {
		return Option{Inner: b}, true
	}
	if _, ok := b.(NoneType); ok {
		return Option{Inner: a}, true
	}

	aRes, aIsRes := a.(Result)
	bRes, bIsRes := b.(Result)

	// None!E + T -> T!E (either order).
	if aIsRes && isNone(aRes.Success) {
		return Result{Success: b, Err: aRes.Err}, true
	}
	if bIsRes && isNone(bRes.Success) {
		return Result{Success: a, Err: bRes.Err}, true
	}

	// T!E + T!E checks that E matches.
	if aIsRes && bIsRes {
		if !Equal(aRes.Err, bRes.Err) {
			return nil, false
		}
		up, ok := LeastUpperType(aRes.Success, bRes.Success)
		if !ok {
			return nil, false
		}
		return Result{Success: up, Err: aRes.Err}, true
	}

	// T + StructE (looks like an error) -> Result<T, E>. A Struct type on
	// one side of an otherwise-mismatched pair is the heuristic signal
	// spec.md calls for.
	if s, ok := a.(Struct); ok {
		return Result{Success: b, Err: s}, true
	}
	if s, ok := b.(Struct); ok {
		return Result{Success: a, Err: s}, true
	}

	return nil, false
}

func isNone(t Type) bool {
	_, ok := t.(NoneType)
	return ok
}
