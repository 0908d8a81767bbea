package al_test

import (
	"testing"

	"github.com/al-lang/al/internal/diagnostics"
	"github.com/al-lang/al/pkg/al"
)

func TestParseReportsNoDiagnosticsOnValidSource(t *testing.T) {
	res := al.Parse(`fn add(a, b) { a + b }`)
	if len(res.Diagnostics) != 0 {
		t.Fatalf("expected no diagnostics, got %v", res.Diagnostics)
	}
	if res.AST == nil {
		t.Fatal("expected a non-nil ast root")
	}
}

func TestCompileSucceedsOnWellTypedSource(t *testing.T) {
	res := al.Compile("test.al", `fn add(a Int, b Int) Int { a + b }`)
	if !res.Success {
		t.Fatalf("expected success, got diagnostics: %v", res.Diagnostics)
	}
}

func TestCompileSurfacesScannerAndCheckerDiagnosticsTogether(t *testing.T) {
	// The source has both a scanner-level unterminated string and a
	// checker-level unknown name, so a single Compile run must report both
	// even though the two diagnostics come from different stages. An
	// unterminated string runs to the end of the input, so it comes last.
	res := al.Compile("test.al", "y = undefined_name\nx = 'unterminated")
	if res.Success {
		t.Fatal("expected failure")
	}
	var sawScan, sawCheck bool
	for _, d := range res.Diagnostics {
		if d.Code == diagnostics.ErrS001UnterminatedString {
			sawScan = true
		}
		if d.Code == diagnostics.ErrT001UnknownName {
			sawCheck = true
		}
	}
	if !sawScan || !sawCheck {
		t.Fatalf("expected both scan and check diagnostics, got %v", res.Diagnostics)
	}
}

func TestCheckOnParsedASTMatchesCompile(t *testing.T) {
	src := `fn id(x Int) Int { x }`
	parsed := al.Parse(src)
	if len(parsed.Diagnostics) != 0 {
		t.Fatalf("unexpected parse diagnostics: %v", parsed.Diagnostics)
	}
	checked := al.Check(parsed.AST)
	if !checked.Success {
		t.Fatalf("expected success, got %v", checked.Diagnostics)
	}
	if checked.Env == nil {
		t.Fatal("expected a non-nil environment")
	}
	compiled := al.Compile("test.al", src)
	if compiled.Success != checked.Success || len(compiled.Diagnostics) != len(checked.Diagnostics) {
		t.Fatalf("expected Check and Compile to agree, got %v and %v", checked.Diagnostics, compiled.Diagnostics)
	}
}

func TestCheckFailsOnUnknownName(t *testing.T) {
	parsed := al.Parse(`fn f() { undefined_name }`)
	if len(parsed.Diagnostics) != 0 {
		t.Fatalf("unexpected parse diagnostics: %v", parsed.Diagnostics)
	}
	checked := al.Check(parsed.AST)
	if checked.Success {
		t.Fatal("expected failure for a reference to an undefined name")
	}
}
