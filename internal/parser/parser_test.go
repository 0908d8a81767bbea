package parser_test

import (
	"strings"
	"testing"

	"github.com/al-lang/al/internal/diagnostics"
	"github.com/al-lang/al/internal/lexer"
	"github.com/al-lang/al/internal/parser"
	"github.com/al-lang/al/internal/pipeline"
	"github.com/al-lang/al/internal/token"
)

// parseWithErrors runs the lexer and parser stages and returns all
// diagnostics accumulated by either.
func parseWithErrors(input string) []*diagnostics.DiagnosticError {
	ctx := pipeline.NewPipelineContext("test.al", input)
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&parser.ParserProcessor{}).Process(ctx)
	return ctx.Errors
}

func expectParseError(t *testing.T, input string, code diagnostics.Code) *diagnostics.DiagnosticError {
	t.Helper()
	errs := parseWithErrors(input)
	for _, e := range errs {
		if e.Code == code {
			return e
		}
	}
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	t.Fatalf("expected error %s, got:\n%s\ninput: %s", code, strings.Join(msgs, "\n"), input)
	return nil
}

func expectNoParseErrors(t *testing.T, input string) {
	t.Helper()
	errs := parseWithErrors(input)
	if len(errs) > 0 {
		var msgs []string
		for _, e := range errs {
			msgs = append(msgs, e.Error())
		}
		t.Fatalf("expected no errors, got:\n%s\ninput: %s", strings.Join(msgs, "\n"), input)
	}
}

func TestParseSimpleFunctionDeclaration(t *testing.T) {
	expectNoParseErrors(t, `fn id(x) { x }`)
}

func TestParseMatchExpressionWithOrPattern(t *testing.T) {
	expectNoParseErrors(t, `match true { true | false -> 1 }`)
}

func TestParseStructAndEnumDeclarations(t *testing.T) {
	expectNoParseErrors(t, `
struct Box(D) { data D }
enum Option(T) { Some(T), None }
`)
}

func TestParseArraySpreadPattern(t *testing.T) {
	expectNoParseErrors(t, `match [1, 2, 3, 4] { [1, ..rest] -> rest, [] -> [] }`)
}

func TestParseGenericEnumWithTypeArgs(t *testing.T) {
	expectNoParseErrors(t, `
enum Tree(T) { Leaf, Node(Tree(T), T, Tree(T)) }
`)
}

func TestParseUnterminatedParenReportsMissingPunctuation(t *testing.T) {
	expectParseError(t, `f(1, 2`, diagnostics.ErrP003MissingPunctuation)
}

func TestParseUnexpectedTokenAtExpressionStart(t *testing.T) {
	expectParseError(t, `x = )`, diagnostics.ErrP001UnexpectedToken)
}

func TestParseEmptyTupleDisallowed(t *testing.T) {
	expectParseError(t, `x = ()`, diagnostics.ErrP004EmptyTuple)
}

func TestParseDisallowedIncrementOperator(t *testing.T) {
	expectParseError(t, `x++`, diagnostics.ErrP005DisallowedOperator)
}

// TestParseRecoversAcrossMultipleErrors covers the concrete end-to-end
// scenario of three separate missing-closing-paren typos recovering into
// three diagnostics plus a well-formed tail declaration.
func TestParseRecoversAcrossMultipleErrors(t *testing.T) {
	errs := parseWithErrors(`
a = f(1, 2
b = g(3, 4
c = h(5, 6
ok = 1
`)
	count := 0
	for _, e := range errs {
		if e.Code == diagnostics.ErrP003MissingPunctuation {
			count++
		}
	}
	if count != 3 {
		t.Fatalf("expected 3 missing-punctuation errors, got %d: %v", count, errs)
	}
}

func TestParseOptionAndResultTypeSugar(t *testing.T) {
	expectNoParseErrors(t, `
fn maybe() ?Int { None }
fn risky() Int!String { 1 }
`)
}

func TestParseWildcardPattern(t *testing.T) {
	expectNoParseErrors(t, `match 1 { _ -> 0 }`)
}

func TestParseElseArmAsWildcardSugar(t *testing.T) {
	expectNoParseErrors(t, `match 1 { 1 -> 0, else -> 1 }`)
}

// TestParseBraceAfterPlainIdentIsNotStructInit covers the one-token
// lookahead that distinguishes `Foo { 1 + 2 }` (a bare reference to Foo
// followed by an unrelated block) from a struct initializer: neither a
// leading '}' nor an 'IDENT :' follows the brace, so Foo is left alone as a
// standalone identifier statement and the brace itself is reported as a
// plain unexpected token, rather than the parser committing to
// parseStructInit and failing with a confusing "expected ':' after field
// name" diagnostic partway through "1 + 2".
func TestParseBraceAfterPlainIdentIsNotStructInit(t *testing.T) {
	errs := parseWithErrors(`
Foo
{ 1 + 2 }
`)
	for _, e := range errs {
		if e.Code == diagnostics.ErrP003MissingPunctuation && strings.Contains(e.Message, "field name") {
			t.Fatalf("Foo was misparsed as a struct initializer: %v", errs)
		}
	}
	found := false
	for _, e := range errs {
		if e.Code == diagnostics.ErrP001UnexpectedToken {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an unexpected-token diagnostic for the standalone '{', got %v", errs)
	}
}

func TestParseEmptyStructInit(t *testing.T) {
	expectNoParseErrors(t, `
struct Foo { }
x = Foo {}
`)
}

func TestParseStructInitWithField(t *testing.T) {
	expectNoParseErrors(t, `
struct Point { x Int, y Int }
p = Point { x: 1, y: 2 }
`)
}

// TestParseOverflowingFloatReportsMalformedNumber covers the number-literal
// overflow path: the lexer only guarantees digits around a single '.', so a
// float wide enough to overflow float64 is the one shape that still slips
// past the scanner and fails strconv.ParseFloat in the parser itself.
func TestParseOverflowingFloatReportsMalformedNumber(t *testing.T) {
	huge := "1" + strings.Repeat("0", 400) + ".5"
	expectParseError(t, "x = "+huge, diagnostics.ErrS005MalformedNumber)
}

// TestScanEndsInExactlyOneEOF covers the universal invariant "scanner
// output ends in exactly one eof token," and that every token's span
// starts no later than it ends.
func TestScanEndsInExactlyOneEOF(t *testing.T) {
	tokens, errs := lexer.Scan("fn f(x) { x }")
	if len(errs) != 0 {
		t.Fatalf("unexpected scan errors: %v", errs)
	}
	eofCount := 0
	for i, tok := range tokens {
		if tok.Type == token.EOF {
			eofCount++
			if i != len(tokens)-1 {
				t.Fatalf("eof token must be last, found at index %d of %d", i, len(tokens))
			}
		}
		if tok.Span.StartLine > tok.Span.EndLine ||
			(tok.Span.StartLine == tok.Span.EndLine && tok.Span.StartColumn > tok.Span.EndColumn) {
			t.Fatalf("token %v has a span starting after it ends: %v", tok, tok.Span)
		}
	}
	if eofCount != 1 {
		t.Fatalf("expected exactly one eof token, got %d", eofCount)
	}
}
