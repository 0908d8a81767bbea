package pattern

import "github.com/al-lang/al/internal/types"

// row is one pattern vector of the working matrix.
type row []Pat

// specialize keeps rows whose first column matches ctor, expanding
// Wildcard into arity(ctor) wildcards and Or by replicating the row over
// its matching alternatives, per spec.md §4.4's "Specialize by
// constructor c".
func specialize(matrix []row, ctorName string, arity int) []row {
	var out []row
	for _, r := range matrix {
		out = append(out, specializeRow(r, ctorName, arity)...)
	}
	return out
}

func specializeRow(r row, ctorName string, arity int) []row {
	if len(r) == 0 {
		return nil
	}
	switch h := r[0].(type) {
	case Wildcard:
		newRow := append(append(row{}, wildcards(arity)...), r[1:]...)
		return []row{newRow}
	case Ctor:
		if h.Name != ctorName {
			return nil
		}
		newRow := append(append(row{}, h.Args...), r[1:]...)
		return []row{newRow}
	case Or:
		var out []row
		for _, alt := range h.Patterns {
			out = append(out, specializeRow(append(row{alt}, r[1:]...), ctorName, arity)...)
		}
		return out
	}
	return nil
}

// defaultMatrix keeps only rows whose first column is a Wildcard (or an Or
// containing one), stripping the first column.
func defaultMatrix(matrix []row) []row {
	var out []row
	for _, r := range matrix {
		out = append(out, defaultRow(r)...)
	}
	return out
}

func defaultRow(r row) []row {
	if len(r) == 0 {
		return nil
	}
	switch h := r[0].(type) {
	case Wildcard:
		return []row{append(row{}, r[1:]...)}
	case Or:
		var out []row
		for _, alt := range h.Patterns {
			out = append(out, defaultRow(append(row{alt}, r[1:]...))...)
		}
		return out
	}
	return nil
}

func wildcards(n int) []Pat {
	out := make([]Pat, n)
	for i := range out {
		out[i] = Wildcard{}
	}
	return out
}

// IsUseful reports whether candidate is useful against the rows matched by
// the arms seen so far, given the subject's type vector (one entry per
// column; a single-subject match has exactly one). A row that is not
// useful is unreachable: every value it would match is already covered.
func IsUseful(matrix [][]Pat, typeVec []types.Type, candidate []Pat) bool {
	return isUseful(toRows(matrix), typeVec, row(candidate))
}

// FindWitness returns a concrete pattern vector not covered by matrix, or
// nil if matrix is exhaustive over typeVec.
func FindWitness(matrix [][]Pat, typeVec []types.Type) []Pat {
	return findWitness(toRows(matrix), typeVec)
}

func toRows(matrix [][]Pat) []row {
	out := make([]row, len(matrix))
	for i, r := range matrix {
		out[i] = row(r)
	}
	return out
}

// isUseful reports whether r is useful against matrix, given the parallel
// type vector describing each column's scrutinee type (spec.md §4.4,
// "is_useful(matrix, row)").
func isUseful(matrix []row, typeVec []types.Type, r row) bool {
	if len(typeVec) == 0 {
		return len(matrix) == 0
	}
	headType := typeVec[0]
	switch h := r[0].(type) {
	case Wildcard:
		ctors, complete := ConstructorSet(headType)
		if complete && len(ctors) > 0 {
			for _, ctor := range ctors {
				specMatrix := specialize(matrix, ctor.Name, len(ctor.ArgTypes))
				specTypeVec := append(append([]types.Type{}, ctor.ArgTypes...), typeVec[1:]...)
				specRow := append(append(row{}, wildcards(len(ctor.ArgTypes))...), r[1:]...)
				if isUseful(specMatrix, specTypeVec, specRow) {
					return true
				}
			}
			return false
		}
		return isUseful(defaultMatrix(matrix), typeVec[1:], r[1:])
	case Ctor:
		specMatrix := specialize(matrix, h.Name, len(h.Args))
		argTypes := ctorArgTypes(headType, h.Name)
		if argTypes == nil {
			argTypes = make([]types.Type, len(h.Args))
			for i := range argTypes {
				argTypes[i] = types.None
			}
		}
		specTypeVec := append(append([]types.Type{}, argTypes...), typeVec[1:]...)
		specRow := append(append(row{}, h.Args...), r[1:]...)
		return isUseful(specMatrix, specTypeVec, specRow)
	case Or:
		for _, alt := range h.Patterns {
			newRow := append(row{alt}, r[1:]...)
			if isUseful(matrix, typeVec, newRow) {
				return true
			}
		}
		return false
	}
	return false
}

// findWitness constructs a concrete Pat not covered by matrix, or nil if
// matrix is exhaustive over typeVec (spec.md §4.4, "find_witness").
func findWitness(matrix []row, typeVec []types.Type) []Pat {
	if len(typeVec) == 0 {
		if len(matrix) == 0 {
			return []Pat{}
		}
		return nil
	}
	headType := typeVec[0]
	ctors, complete := ConstructorSet(headType)
	if complete && len(ctors) > 0 {
		for _, ctor := range ctors {
			specMatrix := specialize(matrix, ctor.Name, len(ctor.ArgTypes))
			specTypeVec := append(append([]types.Type{}, ctor.ArgTypes...), typeVec[1:]...)
			if w := findWitness(specMatrix, specTypeVec); w != nil {
				ctorArgs := w[:len(ctor.ArgTypes)]
				rest := w[len(ctor.ArgTypes):]
				return append([]Pat{Ctor{Name: ctor.Name, Args: ctorArgs}}, rest...)
			}
		}
		return nil
	}
	// Infinite/incomplete domain: a bare wildcard is always a valid witness
	// unless the default matrix already covers everything.
	if w := findWitness(defaultMatrix(matrix), typeVec[1:]); w != nil {
		return append([]Pat{Wildcard{}}, w...)
	}
	return nil
}
