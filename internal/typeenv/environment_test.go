package typeenv_test

import (
	"testing"

	"github.com/al-lang/al/internal/typeenv"
	"github.com/al-lang/al/internal/types"
)

func TestLookupFindsInnermostShadowingBinding(t *testing.T) {
	env := typeenv.New()
	env.Define("x", types.Int)
	env.PushScope()
	env.Define("x", types.String)

	got, ok := env.Lookup("x")
	if !ok || !types.Equal(got, types.String) {
		t.Fatalf("expected inner String binding, got %v, %v", got, ok)
	}

	env.PopScope()
	got, ok = env.Lookup("x")
	if !ok || !types.Equal(got, types.Int) {
		t.Fatalf("expected outer Int binding restored, got %v, %v", got, ok)
	}
}

func TestLookupMissesUndefinedName(t *testing.T) {
	env := typeenv.New()
	if _, ok := env.Lookup("nope"); ok {
		t.Fatal("expected lookup to fail for an undefined name")
	}
}

func TestPopScopeNeverDropsTheGlobalScope(t *testing.T) {
	env := typeenv.New()
	if !env.AtTopLevel() {
		t.Fatal("expected a fresh environment to start at the top level")
	}
	env.PopScope()
	env.PopScope()
	if env.Depth() != 1 {
		t.Fatalf("expected depth 1 after popping past the global scope, got %d", env.Depth())
	}
	if !env.AtTopLevel() {
		t.Fatal("expected the global scope to survive extra PopScope calls")
	}
}

func TestIsConstTracksOnlyConstBindings(t *testing.T) {
	env := typeenv.New()
	env.Define("v", types.Int)
	env.DefineConst("c", types.Int)

	if env.IsConst("v") {
		t.Fatal("expected a plain binding to not be const")
	}
	if !env.IsConst("c") {
		t.Fatal("expected a DefineConst binding to be const")
	}
}

func TestIsDefinedInCurrentScopeIgnoresOuterScopes(t *testing.T) {
	env := typeenv.New()
	env.Define("x", types.Int)
	env.PushScope()

	if env.IsDefinedInCurrentScope("x") {
		t.Fatal("expected x, bound only in the outer scope, to be absent from the inner scope")
	}
	if _, ok := env.Lookup("x"); !ok {
		t.Fatal("expected x to still be visible through the scope chain")
	}
}

func TestAllNamesCollectsScopesAndRegistries(t *testing.T) {
	env := typeenv.New()
	env.Define("localVar", types.Int)
	env.Functions["f"] = &typeenv.FuncInfo{Type: types.Function{Ret: types.Int}}
	env.Structs["Box"] = types.Struct{Name: "Box"}
	env.Enums["Color"] = types.Enum{Name: "Color"}

	names := env.AllNames()
	want := []string{"localVar", "f", "Box", "Color"}
	for _, w := range want {
		found := false
		for _, n := range names {
			if n == w {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected %q among AllNames(), got %v", w, names)
		}
	}
}

func TestRecordDocIgnoresEmptyDoc(t *testing.T) {
	env := typeenv.New()
	env.RecordDoc("x", "")
	if _, ok := env.Doc["x"]; ok {
		t.Fatal("expected an empty doc comment to not be recorded")
	}
	env.RecordDoc("x", "does a thing")
	if env.Doc["x"] != "does a thing" {
		t.Fatalf("expected doc to be recorded, got %q", env.Doc["x"])
	}
}
