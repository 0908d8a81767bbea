package checker_test

import (
	"strings"
	"testing"

	"github.com/al-lang/al/internal/diagnostics"
	"github.com/al-lang/al/pkg/al"
)

func checkSource(t *testing.T, src string) []*diagnostics.DiagnosticError {
	t.Helper()
	parsed := al.Parse(src)
	if len(parsed.Diagnostics) > 0 {
		var msgs []string
		for _, d := range parsed.Diagnostics {
			msgs = append(msgs, d.Error())
		}
		t.Fatalf("unexpected scan/parse diagnostics:\n%s\ninput: %s", strings.Join(msgs, "\n"), src)
	}
	return al.Check(parsed.AST).Diagnostics
}

func expectNoErrors(t *testing.T, src string) {
	t.Helper()
	diags := checkSource(t, src)
	for _, d := range diags {
		if d.Severity == diagnostics.Error {
			t.Fatalf("expected no errors, got %s\ninput: %s", d.Error(), src)
		}
	}
}

func expectErrorCode(t *testing.T, src string, code diagnostics.Code) *diagnostics.DiagnosticError {
	t.Helper()
	diags := checkSource(t, src)
	for _, d := range diags {
		if d.Severity == diagnostics.Error && d.Code == code {
			return d
		}
	}
	var msgs []string
	for _, d := range diags {
		msgs = append(msgs, d.Error())
	}
	t.Fatalf("expected error %s, got:\n%s\ninput: %s", code, strings.Join(msgs, "\n"), src)
	return nil
}

// TestExhaustiveEnumMatchNoErrors covers an enum match that names every
// variant: no non-exhaustiveness error should fire.
func TestExhaustiveEnumMatchNoErrors(t *testing.T) {
	expectNoErrors(t, `
enum Color { Red, Green, Blue }
c Color = Color.Red
match c { Red -> 1, Green -> 2, Blue -> 3 }
`)
}

// TestNonExhaustiveEnumMatchNamesMissingVariant matches the concrete
// end-to-end scenario: two of three Color variants covered, expect one
// error naming the missing witness Blue.
func TestNonExhaustiveEnumMatchNamesMissingVariant(t *testing.T) {
	d := expectErrorCode(t, `
enum Color { Red, Green, Blue }
c Color = Color.Red
match c { Red -> 1, Green -> 2 }
`, diagnostics.ErrM001NonExhaustive)
	if !strings.Contains(d.Message, "Blue") {
		t.Fatalf("expected missing-case message to name Blue, got %q", d.Message)
	}
}

// TestWildcardArmAlwaysExhaustive covers "`_` as a single arm is always
// exhaustive for any type."
func TestWildcardArmAlwaysExhaustive(t *testing.T) {
	expectNoErrors(t, `
enum Color { Red, Green, Blue }
c Color = Color.Red
match c { _ -> 0 }
`)
}

// TestBoolMatchBothArmsExhaustiveAndNonRedundant covers "For Bool, the two
// arms true -> a, false -> b are exhaustive and mutually non-redundant."
func TestBoolMatchBothArmsExhaustiveAndNonRedundant(t *testing.T) {
	expectNoErrors(t, `
b Bool = true
match b { true -> 1, false -> 2 }
`)
}

// TestUnreachableWildcardAfterBothBoolArms covers the WarnM002 path: once
// true and false are both covered, a further wildcard arm is dead.
func TestUnreachableWildcardAfterBothBoolArms(t *testing.T) {
	diags := checkSource(t, `
b Bool = true
match b { true -> 1, false -> 2, _ -> 3 }
`)
	found := false
	for _, d := range diags {
		if d.Code == diagnostics.WarnM002Unreachable {
			found = true
			if !strings.Contains(d.Message, "unreachable") {
				t.Fatalf("expected unreachable-pattern wording, got %q", d.Message)
			}
		}
	}
	if !found {
		t.Fatalf("expected a WarnM002Unreachable diagnostic, got: %v", diags)
	}
}

// TestArrayWithSpreadPatternExhaustive covers the concrete array-with-spread
// scenario: [1, ..rest] and [] together cover Array<Int>.
func TestArrayWithSpreadPatternExhaustive(t *testing.T) {
	expectNoErrors(t, `
match [1, 2, 3, 4] { [1, ..rest] -> rest, [] -> [] }
`)
}

// TestOptionMatchRequiresNoneArm covers Option exhaustiveness: a Some-only
// match is missing None.
func TestOptionMatchRequiresNoneArm(t *testing.T) {
	d := expectErrorCode(t, `
fn maybe() ?Int { Some(1) }
match maybe() { Some(x) -> x }
`, diagnostics.ErrM001NonExhaustive)
	if !strings.Contains(d.Message, "None") {
		t.Fatalf("expected missing-case message to name None, got %q", d.Message)
	}
}

// TestOptionMatchSomeAndNoneExhaustive covers the complementary accepting
// case for Option.
func TestOptionMatchSomeAndNoneExhaustive(t *testing.T) {
	expectNoErrors(t, `
fn maybe() ?Int { Some(1) }
match maybe() { Some(x) -> x, None -> 0 }
`)
}

// TestResultMatchRequiresErrArm covers Result exhaustiveness: an Ok-only
// match is missing Err.
func TestResultMatchRequiresErrArm(t *testing.T) {
	d := expectErrorCode(t, `
struct E { msg String }
fn f() Int!E { error E{ msg: 'x' } }
match f() { Ok(v) -> v }
`, diagnostics.ErrM001NonExhaustive)
	if !strings.Contains(d.Message, "Err") {
		t.Fatalf("expected missing-case message to name Err, got %q", d.Message)
	}
}

// TestBooleanExpressionArmNeverProvesExhaustive covers the rule that an
// arbitrary boolean-expression arm is lowered to an opaque per-position
// constructor: it can never by itself make a match exhaustive, so an
// arm-less fallback is still required.
func TestBooleanExpressionArmNeverProvesExhaustive(t *testing.T) {
	d := expectErrorCode(t, `
x Int = 5
match true { x > 0 -> 1 }
`, diagnostics.ErrM001NonExhaustive)
	if d == nil {
		t.Fatal("expected a non-exhaustive diagnostic")
	}
}

// TestBooleanExpressionArmWithElseIsExhaustive covers the same rule's
// escape hatch: a trailing wildcard arm makes it exhaustive regardless of
// how many opaque condition arms precede it.
func TestBooleanExpressionArmWithElseIsExhaustive(t *testing.T) {
	expectNoErrors(t, `
x Int = 5
match true { x > 0 -> 1, _ -> 0 }
`)
}

// TestOrPatternMatchesEitherAlternative covers `p1 | p2` alternation
// together covering a Bool scrutinee.
func TestOrPatternMatchesEitherAlternative(t *testing.T) {
	expectNoErrors(t, `
b Bool = true
match b { true | false -> 1 }
`)
}

// TestTuplePatternExhaustiveOverBools covers a tuple pattern whose element
// patterns jointly exhaust a (Bool, Bool) scrutinee.
func TestTuplePatternExhaustiveOverBools(t *testing.T) {
	expectNoErrors(t, `
fn pair() (Bool, Bool) { (true, false) }
match pair() { (true, true) -> 1, (true, false) -> 2, (false, true) -> 3, (false, false) -> 4 }
`)
}

// TestElseArmIsWildcardSugar covers `else -> body` as an alternate spelling
// of `_ -> body`: it must make a match exhaustive exactly the way a literal
// wildcard would, with no separate semantics of its own.
func TestElseArmIsWildcardSugar(t *testing.T) {
	expectNoErrors(t, `
enum Color { Red, Green, Blue }
c Color = Color.Red
match c { Red -> 1, else -> 0 }
`)
}

// TestMatchArmTypeMismatchReported covers incompatible arm result types.
func TestMatchArmTypeMismatchReported(t *testing.T) {
	expectErrorCode(t, `
b Bool = true
match b { true -> 1, false -> 'x' }
`, diagnostics.ErrT002TypeMismatch)
}
