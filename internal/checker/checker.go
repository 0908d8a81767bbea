// Package checker implements AL's type checker: a tree walk over the
// parser's untyped AST that annotates every expression in place (via
// ast.Expression's Type/SetType) and produces the diagnostic list and the
// type-position index consumed by the driver (spec.md §4.3, §5).
package checker

import (
	"github.com/al-lang/al/internal/ast"
	"github.com/al-lang/al/internal/diagnostics"
	"github.com/al-lang/al/internal/token"
	"github.com/al-lang/al/internal/typeenv"
	"github.com/al-lang/al/internal/types"
)

// TypePosition is an alias for typeenv.TypePosition, kept so existing
// checker code can keep referring to the bare name; it lives in typeenv so
// internal/pipeline can reference it without importing this package.
type TypePosition = typeenv.TypePosition

// Checker holds all mutable state for a single Check run. Like the parser,
// it is owned by exactly one driver call and is not safe for concurrent use.
type Checker struct {
	env   *typeenv.Environment
	diags *diagnostics.Bag

	positions []TypePosition

	// varCounter generates fresh inference variables ('a, 'b, ... 'z, then
	// 'a1, 'b1, ...). It counts across the whole Check run, not per function.
	varCounter int

	// expectedReturn/expectedError describe the function currently being
	// checked. Propagation (`!`, `?`) reads only expectedReturn, to reject
	// use outside any function; expectedError is kept in step with it but no
	// propagated error type is compared against it, and `assert` reads
	// neither.
	expectedReturn []types.Type
	expectedError  []types.Type

	// subst accumulates the Var bindings used for local inference within one
	// function body (spec.md §4.3, "parameter substitution map"). Each named
	// or anonymous function body starts from an empty map and restores the
	// enclosing one afterwards; top-level statements share a single map.
	// Call sites unify arguments in their own throwaway map (see applyCall).
	subst types.Subst
}

// New creates a Checker with a fresh global Environment.
func New() *Checker {
	return &Checker{
		env:   typeenv.New(),
		diags: diagnostics.NewBag(),
		subst: types.Subst{},
	}
}

// Check type-checks a whole program (the parser's top-level Block) and
// returns the populated Environment, the type-position index, and every
// diagnostic recorded, in source order.
func Check(program *ast.Block) (*typeenv.Environment, []TypePosition, []*diagnostics.DiagnosticError) {
	c := New()
	c.checkProgram(program)
	return c.env, c.positions, c.diags.List()
}

// checkProgram runs the two-pass strategy: first hoist every top-level
// struct/enum/function signature so forward references type-check, then
// walk bodies in source order.
func (c *Checker) checkProgram(program *ast.Block) {
	for _, node := range program.Body {
		c.registerSignature(stripExport(node))
	}
	for _, node := range program.Body {
		c.checkTopLevelNode(node)
	}
	// spec.md §8: depth must be back to 1 (top level only) once checking
	// completes, even if a body errored out mid-scope.
	for c.env.Depth() > 1 {
		c.env.PopScope()
	}
}

func stripExport(node ast.Node) ast.Node {
	if exp, ok := node.(*ast.ExportDeclaration); ok {
		return exp.Inner
	}
	return node
}

func (c *Checker) checkTopLevelNode(node ast.Node) {
	c.checkStatement(stripExport(node))
}

func (c *Checker) addError(sp token.Span, code diagnostics.Code, message string) {
	c.diags.Add(diagnostics.NewError(code, sp, message))
}

func (c *Checker) addWarning(sp token.Span, code diagnostics.Code, message string) {
	c.diags.Add(diagnostics.NewWarning(code, sp, message))
}

// freshVar allocates a new inference variable, per spec.md §4.3 ("Function
// parameters without an annotation receive a fresh Var('a'), Var('b'), …").
func (c *Checker) freshVar() types.Var {
	name := varName(c.varCounter)
	c.varCounter++
	return types.Var{Name: name}
}

func varName(n int) string {
	letters := "abcdefghijklmnopqrstuvwxyz"
	suffix := n / 26
	base := string(letters[n%26])
	if suffix == 0 {
		return "'" + base
	}
	return "'" + base + itoa(suffix)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

// record appends a type-position entry, deduplicating nothing: the index
// is allowed repeated entries at distinct spans for the same name.
func (c *Checker) record(sp token.Span, name string, t types.Type) {
	def := c.env.DefLocation[name]
	doc := c.env.Doc[name]
	c.positions = append(c.positions, TypePosition{Span: sp, Name: name, Type: t, DefLoc: def, Doc: doc})
}

// unify wraps types.UnifyWith against the checker's running substitution,
// reporting a type mismatch diagnostic on failure instead of propagating
// the error up the call stack (errors here are always values recorded
// into the diagnostic bag, never panics).
func (c *Checker) unify(sp token.Span, expected, actual types.Type) bool {
	s, err := types.UnifyWith(c.subst, expected, actual)
	if err != nil {
		c.addError(sp, diagnostics.ErrT002TypeMismatch,
			"type mismatch: expected "+applied(c.subst, expected).String()+", got "+applied(c.subst, actual).String())
		return false
	}
	c.subst = s
	return true
}

func applied(s types.Subst, t types.Type) types.Type {
	if t == nil {
		return types.None
	}
	return t.Apply(s)
}
