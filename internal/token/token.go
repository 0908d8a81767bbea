// Package token defines the lexical token kinds produced by the scanner.
package token

import "fmt"

// Type identifies a lexical token kind.
type Type string

// Span is a 1-indexed, line/column-delimited source range. Every AST node
// and diagnostic carries one.
type Span struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// Join returns the smallest span covering both a and b.
func Join(a, b Span) Span {
	result := a
	if b.StartLine < result.StartLine || (b.StartLine == result.StartLine && b.StartColumn < result.StartColumn) {
		result.StartLine, result.StartColumn = b.StartLine, b.StartColumn
	}
	if b.EndLine > result.EndLine || (b.EndLine == result.EndLine && b.EndColumn > result.EndColumn) {
		result.EndLine, result.EndColumn = b.EndLine, b.EndColumn
	}
	return result
}

// Valid reports whether the span's start does not come after its end.
func (s Span) Valid() bool {
	if s.StartLine != s.EndLine {
		return s.StartLine <= s.EndLine
	}
	return s.StartColumn <= s.EndColumn
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", s.StartLine, s.StartColumn, s.EndLine, s.EndColumn)
}

// TriviaKind classifies a unit of leading, non-semantic source text.
type TriviaKind int

const (
	TriviaWhitespace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
	TriviaDocComment
)

// Trivia is a single unit of whitespace/comment text attached to the next
// non-trivia token as leading context.
type Trivia struct {
	Kind Kind
	Text string
	Span Span
}

// Kind is an alias retained for readability at call sites (Trivia.Kind).
type Kind = TriviaKind

// Token is a single lexical unit: a kind, an optional literal payload, its
// span, and any leading trivia collected since the previous token.
type Token struct {
	Type          Type
	Lexeme        string
	Literal       string
	Span          Span
	LeadingTrivia []Trivia
}

// Line and Column give quick access to the token's starting position,
// matching the convention downstream diagnostics consumers expect.
func (t Token) Line() int   { return t.Span.StartLine }
func (t Token) Column() int { return t.Span.StartColumn }

// LeadingDoc returns the text of the first doc-comment trivium attached to
// this token, or "" if none is present. A declaration's `doc` attribute is
// populated from this.
func (t Token) LeadingDoc() string {
	for _, tr := range t.LeadingTrivia {
		if tr.Kind == TriviaDocComment {
			return tr.Text
		}
	}
	return ""
}

const (
	// Literals
	NUMBER             Type = "NUMBER"
	STRING             Type = "STRING"
	CHAR               Type = "CHAR"
	INTERP_STRING_START Type = "INTERP_STRING_START"
	INTERP_STRING_PART  Type = "INTERP_STRING_PART"
	INTERP_STRING_END   Type = "INTERP_STRING_END"

	IDENT Type = "IDENT"

	// Keywords
	KW_FN     Type = "FN"
	KW_STRUCT Type = "STRUCT"
	KW_ENUM   Type = "ENUM"
	KW_CONST  Type = "CONST"
	KW_FROM   Type = "FROM"
	KW_IMPORT Type = "IMPORT"
	KW_EXPORT Type = "EXPORT"
	KW_IF     Type = "IF"
	KW_ELSE   Type = "ELSE"
	KW_MATCH  Type = "MATCH"
	KW_TRUE   Type = "TRUE"
	KW_FALSE  Type = "FALSE"
	KW_NONE   Type = "NONE"
	KW_OR     Type = "OR"
	KW_ERROR  Type = "ERROR"
	KW_ASSERT Type = "ASSERT"

	// Punctuation / operators
	PLUS        Type = "+"
	MINUS       Type = "-"
	STAR        Type = "*"
	SLASH       Type = "/"
	PERCENT     Type = "%"
	EQ          Type = "=="
	NOT_EQ      Type = "!="
	LT          Type = "<"
	GT          Type = ">"
	LTE         Type = "<="
	GTE         Type = ">="
	AND         Type = "&&"
	OROR        Type = "||"
	BANG        Type = "!"
	ASSIGN      Type = "="
	WALRUS      Type = ":="
	ARROW       Type = "->"
	FAT_ARROW   Type = "=>"
	DOT         Type = "."
	DOTDOT      Type = ".."
	LPAREN      Type = "("
	RPAREN      Type = ")"
	LBRACKET    Type = "["
	RBRACKET    Type = "]"
	LBRACE      Type = "{"
	RBRACE      Type = "}"
	COMMA       Type = ","
	COLON       Type = ":"
	SEMICOLON   Type = ";"
	QUESTION    Type = "?"
	PIPE        Type = "|"
	AMPERSAND   Type = "&"
	PLUSPLUS    Type = "++"
	MINUSMINUS  Type = "--"
	DOLLAR      Type = "$"

	NEWLINE Type = "NEWLINE"
	EOF     Type = "EOF"
	ILLEGAL Type = "ILLEGAL"
)

// Keywords maps the closed keyword set to its token type. Recognized by
// exact match after identifier scan, per spec: identifiers are scanned
// first and then checked against this table.
var Keywords = map[string]Type{
	"fn":     KW_FN,
	"struct": KW_STRUCT,
	"enum":   KW_ENUM,
	"const":  KW_CONST,
	"from":   KW_FROM,
	"import": KW_IMPORT,
	"export": KW_EXPORT,
	"if":     KW_IF,
	"else":   KW_ELSE,
	"match":  KW_MATCH,
	"true":   KW_TRUE,
	"false":  KW_FALSE,
	"none":   KW_NONE,
	"or":     KW_OR,
	"error":  KW_ERROR,
	"assert": KW_ASSERT,
}

// LookupIdent classifies an already-scanned identifier as a keyword token
// or a plain IDENT.
func LookupIdent(ident string) Type {
	if tok, ok := Keywords[ident]; ok {
		return tok
	}
	return IDENT
}
