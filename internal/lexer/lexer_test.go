package lexer_test

import (
	"testing"

	"github.com/al-lang/al/internal/diagnostics"
	"github.com/al-lang/al/internal/lexer"
	"github.com/al-lang/al/internal/token"
)

func lexTypes(t *testing.T, src string) []token.Type {
	t.Helper()
	tokens, errs := lexer.Scan(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected diagnostics: %v", errs)
	}
	types := make([]token.Type, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	return types
}

func TestScanIdentifiersAndKeywords(t *testing.T) {
	types := lexTypes(t, "fn match enum struct x Y")
	want := []token.Type{token.KW_FN, token.KW_MATCH, token.KW_ENUM, token.KW_STRUCT, token.IDENT, token.IDENT, token.EOF}
	if len(types) != len(want) {
		t.Fatalf("expected %v, got %v", want, types)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("token %d: expected %v, got %v (full: %v)", i, want[i], types[i], types)
		}
	}
}

func TestScanNumberLiteralsIntAndFloat(t *testing.T) {
	tokens, errs := lexer.Scan("42 3.14")
	if len(errs) != 0 {
		t.Fatalf("unexpected diagnostics: %v", errs)
	}
	if tokens[0].Type != token.NUMBER || tokens[0].Lexeme != "42" {
		t.Fatalf("expected NUMBER 42, got %v", tokens[0])
	}
	if tokens[1].Type != token.NUMBER || tokens[1].Lexeme != "3.14" {
		t.Fatalf("expected NUMBER 3.14, got %v", tokens[1])
	}
}

func TestScanRangeOperatorDoesNotSwallowTrailingDigit(t *testing.T) {
	tokens, errs := lexer.Scan("1..5")
	if len(errs) != 0 {
		t.Fatalf("unexpected diagnostics: %v", errs)
	}
	var lexemes []string
	for _, tok := range tokens {
		if tok.Type != token.EOF {
			lexemes = append(lexemes, tok.Lexeme)
		}
	}
	if len(lexemes) != 3 || lexemes[0] != "1" || lexemes[2] != "5" {
		t.Fatalf("expected [1, .., 5], got %v", lexemes)
	}
}

func TestScanSimpleStringLiteral(t *testing.T) {
	tokens, errs := lexer.Scan(`'hello'`)
	if len(errs) != 0 {
		t.Fatalf("unexpected diagnostics: %v", errs)
	}
	if tokens[0].Type != token.STRING {
		t.Fatalf("expected STRING, got %v", tokens[0])
	}
}

func TestScanUnterminatedStringReportsS001(t *testing.T) {
	_, errs := lexer.Scan(`'unterminated`)
	if len(errs) == 0 {
		t.Fatal("expected an unterminated-string diagnostic")
	}
	if errs[0].Code != diagnostics.ErrS001UnterminatedString {
		t.Fatalf("expected S001, got %s: %s", errs[0].Code, errs[0].Error())
	}
}

func TestScanUnterminatedBlockCommentReportsS003(t *testing.T) {
	_, errs := lexer.Scan("/* never closed")
	if len(errs) == 0 {
		t.Fatal("expected an unterminated-block-comment diagnostic")
	}
	if errs[0].Code != diagnostics.ErrS003UnterminatedBlockComment {
		t.Fatalf("expected S003, got %s: %s", errs[0].Code, errs[0].Error())
	}
}

func TestScanBadByteReportsS002(t *testing.T) {
	_, errs := lexer.Scan("x = \x01")
	if len(errs) == 0 {
		t.Fatal("expected a bad-byte diagnostic")
	}
	found := false
	for _, e := range errs {
		if e.Code == diagnostics.ErrS002BadByte {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected S002 among diagnostics, got %v", errs)
	}
}

func TestScanUnknownEscapeReportsS004(t *testing.T) {
	_, errs := lexer.Scan(`'bad \q escape'`)
	if len(errs) == 0 {
		t.Fatal("expected a bad-escape diagnostic")
	}
	if errs[0].Code != diagnostics.ErrS004BadEscape {
		t.Fatalf("expected S004, got %s: %s", errs[0].Code, errs[0].Error())
	}
}

// TestScanAlwaysEndsInExactlyOneEOF covers the universal invariant that
// scanner output ends in exactly one eof token, even over malformed input.
func TestScanAlwaysEndsInExactlyOneEOF(t *testing.T) {
	for _, src := range []string{"", "fn f(x) { x }", "'unterminated", "/* unterminated"} {
		tokens, _ := lexer.Scan(src)
		if len(tokens) == 0 || tokens[len(tokens)-1].Type != token.EOF {
			t.Fatalf("expected trailing eof token for input %q, got %v", src, tokens)
		}
		for _, tok := range tokens[:len(tokens)-1] {
			if tok.Type == token.EOF {
				t.Fatalf("found a non-trailing eof token for input %q: %v", src, tokens)
			}
		}
	}
}

func TestScanStringInterpolationProducesStartPartEndSequence(t *testing.T) {
	tokens, errs := lexer.Scan(`'hello $name, you are ${age + 1}'`)
	if len(errs) != 0 {
		t.Fatalf("unexpected diagnostics: %v", errs)
	}
	var types []token.Type
	for _, tok := range tokens {
		if tok.Type != token.EOF {
			types = append(types, tok.Type)
		}
	}
	want := []token.Type{
		token.INTERP_STRING_START,
		token.IDENT,
		token.INTERP_STRING_PART,
		token.IDENT, token.PLUS, token.NUMBER,
		token.INTERP_STRING_END,
	}
	if len(types) != len(want) {
		t.Fatalf("expected %v, got %v", want, types)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("token %d: expected %v, got %v (full: %v)", i, want[i], types[i], types)
		}
	}
}

func TestScanLineCommentIsTrivia(t *testing.T) {
	tokens, errs := lexer.Scan("x // a comment\ny")
	if len(errs) != 0 {
		t.Fatalf("unexpected diagnostics: %v", errs)
	}
	var nonEOF []token.Token
	for _, tok := range tokens {
		if tok.Type != token.EOF {
			nonEOF = append(nonEOF, tok)
		}
	}
	if len(nonEOF) != 2 || nonEOF[0].Lexeme != "x" || nonEOF[1].Lexeme != "y" {
		t.Fatalf("expected [x, y] with the comment consumed as trivia, got %v", nonEOF)
	}
}
