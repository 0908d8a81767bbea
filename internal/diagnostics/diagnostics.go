// Package diagnostics holds the error/warning/hint representation shared by
// every compiler stage. Diagnostics are values, never exceptions: a helper
// that can fail either returns one alongside a best-effort result, or
// appends it to a Bag and returns a sentinel so traversal continues.
package diagnostics

import (
	"fmt"
	"sort"

	"github.com/al-lang/al/internal/token"
)

// Severity grades a diagnostic. Only Severity == Error counts against
// check()'s `success` flag.
type Severity int

const (
	Error Severity = iota
	Warning
	Hint
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Hint:
		return "hint"
	default:
		return "unknown"
	}
}

// Code identifies a diagnostic's family and cause. Families: S0xx
// (scanner), P0xx (parser), T0xx (type checker), M0xx (pattern analysis).
type Code string

const (
	// Scanner
	ErrS001UnterminatedString Code = "S001" // unterminated string literal
	ErrS002BadByte            Code = "S002" // unrecognized byte
	ErrS003UnterminatedBlockComment Code = "S003"
	ErrS004BadEscape          Code = "S004"
	ErrS005MalformedNumber    Code = "S005"

	// Parser
	ErrP001UnexpectedToken    Code = "P001" // unexpected token
	ErrP002ExpectedIdentifier Code = "P002"
	ErrP003MissingPunctuation Code = "P003" // expected closing token
	ErrP004EmptyTuple         Code = "P004" // `()` not allowed
	ErrP005DisallowedOperator Code = "P005" // ++ / -- disallowed
	ErrP006InternalLimit      Code = "P006" // synchronize() iteration cap exceeded

	// Type checker
	ErrT001UnknownName        Code = "T001"
	ErrT002TypeMismatch       Code = "T002"
	ErrT003DuplicateField     Code = "T003"
	ErrT004MissingField       Code = "T004"
	ErrT005UnknownField       Code = "T005"
	ErrT006WrongArity         Code = "T006"
	ErrT007UnusedValue        Code = "T007"
	ErrT008InvalidPropagate   Code = "T008"
	ErrT009DuplicateName      Code = "T009"
	ErrT010InvalidTuplePattern Code = "T010"
	ErrT011ConstOutsideTopLevel Code = "T011"

	// Pattern analysis
	ErrM001NonExhaustive Code = "M001"
	WarnM002Unreachable  Code = "M002"
)

// DiagnosticError is the single diagnostic representation used across the
// pipeline: a span, a severity, a stable code, and a rendered message.
type DiagnosticError struct {
	Span     token.Span
	Severity Severity
	Code     Code
	Message  string
	File     string
}

// NewError creates an Error-severity diagnostic.
func NewError(code Code, span token.Span, message string) *DiagnosticError {
	return &DiagnosticError{Span: span, Severity: Error, Code: code, Message: message}
}

// NewWarning creates a Warning-severity diagnostic.
func NewWarning(code Code, span token.Span, message string) *DiagnosticError {
	return &DiagnosticError{Span: span, Severity: Warning, Code: code, Message: message}
}

// NewHint creates a Hint-severity diagnostic.
func NewHint(code Code, span token.Span, message string) *DiagnosticError {
	return &DiagnosticError{Span: span, Severity: Hint, Code: code, Message: message}
}

func (d *DiagnosticError) Error() string {
	if d.File != "" {
		return fmt.Sprintf("%s:%s: %s[%s]: %s", d.File, d.Span, d.Severity, d.Code, d.Message)
	}
	return fmt.Sprintf("%s: %s[%s]: %s", d.Span, d.Severity, d.Code, d.Message)
}

// Bag accumulates diagnostics for a single compile run, deduplicating by
// (line, column, code) the way the teacher's analyzer walker does, so a
// single malformed subtree visited under multiple recovery attempts does
// not produce repeated identical diagnostics.
type Bag struct {
	seen  map[string]*DiagnosticError
	order []string
}

// NewBag returns an empty diagnostic bag.
func NewBag() *Bag {
	return &Bag{seen: make(map[string]*DiagnosticError)}
}

// Add appends a diagnostic, overwriting any prior diagnostic with the same
// (line, column, code) key so the most recent report wins.
func (b *Bag) Add(d *DiagnosticError) {
	if d == nil {
		return
	}
	key := fmt.Sprintf("%d:%d:%s", d.Span.StartLine, d.Span.StartColumn, d.Code)
	if _, exists := b.seen[key]; !exists {
		b.order = append(b.order, key)
	}
	b.seen[key] = d
}

// AddAll appends every diagnostic in errs.
func (b *Bag) AddAll(errs []*DiagnosticError) {
	for _, e := range errs {
		b.Add(e)
	}
}

// List returns all diagnostics, ordered by source position (line, then
// column), matching the sort the teacher applies before returning errors.
func (b *Bag) List() []*DiagnosticError {
	result := make([]*DiagnosticError, 0, len(b.seen))
	for _, k := range b.order {
		result = append(result, b.seen[k])
	}
	sortDiagnostics(result)
	return result
}

func sortDiagnostics(ds []*DiagnosticError) {
	sort.Slice(ds, func(i, j int) bool {
		if ds[i].Span.StartLine != ds[j].Span.StartLine {
			return ds[i].Span.StartLine < ds[j].Span.StartLine
		}
		return ds[i].Span.StartColumn < ds[j].Span.StartColumn
	})
}

// HasErrors reports whether the bag contains any Error-severity diagnostic.
func (b *Bag) HasErrors() bool {
	for _, d := range b.seen {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Len returns the number of distinct diagnostics currently held.
func (b *Bag) Len() int { return len(b.seen) }
