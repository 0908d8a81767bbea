package pattern_test

import (
	"testing"

	"github.com/al-lang/al/internal/pattern"
	"github.com/al-lang/al/internal/types"
)

func TestIsUsefulFirstArmAlwaysUseful(t *testing.T) {
	typeVec := []types.Type{types.Bool}
	if !pattern.IsUseful(nil, typeVec, []pattern.Pat{pattern.Wildcard{}}) {
		t.Fatal("an empty matrix must make any candidate useful")
	}
}

func TestIsUsefulWildcardAfterBothBoolArmsUnreachable(t *testing.T) {
	typeVec := []types.Type{types.Bool}
	matrix := [][]pattern.Pat{
		{pattern.Ctor{Name: "true"}},
		{pattern.Ctor{Name: "false"}},
	}
	if pattern.IsUseful(matrix, typeVec, []pattern.Pat{pattern.Wildcard{}}) {
		t.Fatal("true and false together already cover Bool; a further wildcard arm is unreachable")
	}
}

func TestIsUsefulSecondDistinctCtorIsUseful(t *testing.T) {
	typeVec := []types.Type{types.Bool}
	matrix := [][]pattern.Pat{{pattern.Ctor{Name: "true"}}}
	if !pattern.IsUseful(matrix, typeVec, []pattern.Pat{pattern.Ctor{Name: "false"}}) {
		t.Fatal("false is not yet covered by a true-only matrix")
	}
}

func TestFindWitnessBoolExhaustive(t *testing.T) {
	typeVec := []types.Type{types.Bool}
	matrix := [][]pattern.Pat{
		{pattern.Ctor{Name: "true"}},
		{pattern.Ctor{Name: "false"}},
	}
	if w := pattern.FindWitness(matrix, typeVec); w != nil {
		t.Fatalf("expected exhaustive, got witness %v", w)
	}
}

func TestFindWitnessBoolMissingFalse(t *testing.T) {
	typeVec := []types.Type{types.Bool}
	matrix := [][]pattern.Pat{{pattern.Ctor{Name: "true"}}}
	w := pattern.FindWitness(matrix, typeVec)
	if w == nil {
		t.Fatal("expected a missing-case witness")
	}
	if got := pattern.Render(w[0]); got != "false" {
		t.Fatalf("expected witness \"false\", got %q", got)
	}
}

func TestFindWitnessOptionMissingNone(t *testing.T) {
	opt := types.Option{Inner: types.Int}
	typeVec := []types.Type{opt}
	matrix := [][]pattern.Pat{
		{pattern.Ctor{Name: "Some", Args: []pattern.Pat{pattern.Wildcard{}}}},
	}
	w := pattern.FindWitness(matrix, typeVec)
	if w == nil {
		t.Fatal("expected non-exhaustive: None is not covered")
	}
	if got := pattern.Render(w[0]); got != "None" {
		t.Fatalf("expected witness \"None\", got %q", got)
	}
}

func TestFindWitnessOptionExhaustiveWithWildcard(t *testing.T) {
	opt := types.Option{Inner: types.Int}
	typeVec := []types.Type{opt}
	matrix := [][]pattern.Pat{
		{pattern.Ctor{Name: "Some", Args: []pattern.Pat{pattern.Wildcard{}}}},
		{pattern.Wildcard{}},
	}
	if w := pattern.FindWitness(matrix, typeVec); w != nil {
		t.Fatalf("expected exhaustive, got witness %v", w)
	}
}

func TestFindWitnessResultMissingErr(t *testing.T) {
	res := types.Result{Success: types.Int, Err: types.String}
	typeVec := []types.Type{res}
	matrix := [][]pattern.Pat{
		{pattern.Ctor{Name: "Ok", Args: []pattern.Pat{pattern.Wildcard{}}}},
	}
	w := pattern.FindWitness(matrix, typeVec)
	if w == nil {
		t.Fatal("expected non-exhaustive: Err is not covered")
	}
	if got := pattern.Render(w[0]); got != "Err(_)" {
		t.Fatalf("expected witness \"Err(_)\", got %q", got)
	}
}

func TestFindWitnessNumberNeverComplete(t *testing.T) {
	typeVec := []types.Type{types.Int}
	matrix := [][]pattern.Pat{{pattern.Ctor{Name: "lit:1"}}}
	w := pattern.FindWitness(matrix, typeVec)
	if w == nil {
		t.Fatal("an incomplete numeric domain can never be proven exhaustive without a wildcard arm")
	}
	if got := pattern.Render(w[0]); got != "_" {
		t.Fatalf("expected a wildcard witness, got %q", got)
	}
}

func TestFindWitnessTupleExhaustive(t *testing.T) {
	tup := types.Tuple{Elements: []types.Type{types.Bool, types.Bool}}
	typeVec := []types.Type{tup}
	matrix := [][]pattern.Pat{
		{pattern.Ctor{Name: "tuple", Args: []pattern.Pat{pattern.Wildcard{}, pattern.Wildcard{}}}},
	}
	if w := pattern.FindWitness(matrix, typeVec); w != nil {
		t.Fatalf("expected exhaustive, got witness %v", w)
	}
}

func TestFindWitnessEnumMissingVariant(t *testing.T) {
	en := types.Enum{
		Name:         "Shape",
		VariantOrder: []string{"Circle", "Square"},
		Variants: map[string][]types.Type{
			"Circle": {types.Int},
			"Square": {types.Int},
		},
	}
	typeVec := []types.Type{en}
	matrix := [][]pattern.Pat{
		{pattern.Ctor{Name: "Circle", Args: []pattern.Pat{pattern.Wildcard{}}}},
	}
	w := pattern.FindWitness(matrix, typeVec)
	if w == nil {
		t.Fatal("expected non-exhaustive: Square is not covered")
	}
	if got := pattern.Render(w[0]); got != "Square(_)" {
		t.Fatalf("expected witness \"Square(_)\", got %q", got)
	}
}

func TestIsUsefulOrPatternAlternativeStillUseful(t *testing.T) {
	typeVec := []types.Type{types.Bool}
	matrix := [][]pattern.Pat{{pattern.Ctor{Name: "true"}}}
	candidate := []pattern.Pat{pattern.Or{Patterns: []pattern.Pat{
		pattern.Ctor{Name: "true"},
		pattern.Ctor{Name: "false"},
	}}}
	if !pattern.IsUseful(matrix, typeVec, candidate) {
		t.Fatal("the false alternative of the Or makes this candidate useful even though true is covered")
	}
}

func TestConstructorSetBoolComplete(t *testing.T) {
	ctors, complete := pattern.ConstructorSet(types.Bool)
	if !complete || len(ctors) != 2 {
		t.Fatalf("expected complete 2-constructor set for Bool, got %v complete=%v", ctors, complete)
	}
}

func TestConstructorSetIntIncomplete(t *testing.T) {
	_, complete := pattern.ConstructorSet(types.Int)
	if complete {
		t.Fatal("Int has no finite constructor set")
	}
}

func TestRenderArrayWitness(t *testing.T) {
	p := pattern.Ctor{Name: "[..]", Args: []pattern.Pat{pattern.Wildcard{}, pattern.Wildcard{}}}
	if got := pattern.Render(p); got != "[_, ..]" {
		t.Fatalf("expected \"[_, ..]\", got %q", got)
	}
}
