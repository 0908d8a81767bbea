package types_test

import (
	"testing"

	"github.com/al-lang/al/internal/types"
)

func TestUnifyVarWithConcrete(t *testing.T) {
	a := types.Var{Name: "a"}
	s, err := types.Unify(a, types.Int)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := a.Apply(s); !types.Equal(got, types.Int) {
		t.Fatalf("expected Int, got %s", got)
	}
}

func TestUnifyVarSecondUseMustMatch(t *testing.T) {
	s, err := types.Unify(types.Var{Name: "a"}, types.Int)
	if err != nil {
		t.Fatal(err)
	}
	_, err = types.UnifyWith(s, types.Var{Name: "a"}, types.String)
	if err == nil {
		t.Fatal("expected mismatch error on second use of a bound var")
	}
}

func TestUnifyOptionRecurses(t *testing.T) {
	_, err := types.Unify(types.Option{Inner: types.Int}, types.Option{Inner: types.Int})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = types.Unify(types.Option{Inner: types.Int}, types.Option{Inner: types.String})
	if err == nil {
		t.Fatal("expected mismatch")
	}
}

func TestUnifyNominalsByID(t *testing.T) {
	a := types.Struct{ID: "a-id", Name: "Point"}
	b := types.Struct{ID: "b-id", Name: "Point"}
	if _, err := types.Unify(a, b); err == nil {
		t.Fatal("expected structs with different IDs (same name) to not unify")
	}
	c := types.Struct{ID: "a-id", Name: "Point"}
	if _, err := types.Unify(a, c); err != nil {
		t.Fatalf("expected structs with the same ID to unify: %v", err)
	}
}

func TestLeastUpperTypeSame(t *testing.T) {
	up, ok := types.LeastUpperType(types.Int, types.Int)
	if !ok || !types.Equal(up, types.Int) {
		t.Fatalf("expected Int, got %v ok=%v", up, ok)
	}
}

func TestLeastUpperTypeWithNonePromotesToOption(t *testing.T) {
	up, ok := types.LeastUpperType(types.Int, types.None)
	if !ok {
		t.Fatal("expected success")
	}
	if !types.Equal(up, types.Option{Inner: types.Int}) {
		t.Fatalf("expected Option<Int>, got %s", up)
	}
}

func TestLeastUpperTypeWithStructPromotesToResult(t *testing.T) {
	errStruct := types.Struct{ID: types.NewNominalID(), Name: "E"}
	up, ok := types.LeastUpperType(types.Int, errStruct)
	if !ok {
		t.Fatal("expected success")
	}
	res, ok := up.(types.Result)
	if !ok || !types.Equal(res.Success, types.Int) || !types.SameNominal(res.Err, errStruct) {
		t.Fatalf("expected Result<Int, E>, got %s", up)
	}
}

func TestLeastUpperTypeMismatch(t *testing.T) {
	_, ok := types.LeastUpperType(types.Int, types.String)
	if ok {
		t.Fatal("expected no least upper type for Int and String")
	}
}
