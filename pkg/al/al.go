// Package al is the public surface of the AL front-end compiler core:
// Scan, Parse, Check, and the Compile convenience wrapper that chains all
// three through internal/pipeline. Downstream collaborators (a CLI, an
// LSP server, a formatter — all out of scope here per spec.md §1) import
// this package rather than reaching into internal/*.
package al

import (
	"github.com/al-lang/al/internal/ast"
	"github.com/al-lang/al/internal/checker"
	"github.com/al-lang/al/internal/diagnostics"
	"github.com/al-lang/al/internal/lexer"
	"github.com/al-lang/al/internal/parser"
	"github.com/al-lang/al/internal/pipeline"
	"github.com/al-lang/al/internal/token"
	"github.com/al-lang/al/internal/typeenv"
)

// Scan tokenizes source, per spec.md §6's `scan(source) → tokens[]`.
func Scan(source string) ([]token.Token, []*diagnostics.DiagnosticError) {
	return lexer.Scan(source)
}

// ParseResult is the output of Parse.
type ParseResult struct {
	AST         *ast.Block
	Diagnostics []*diagnostics.DiagnosticError
}

// Parse scans and parses source into an untyped AST, per spec.md §6's
// `parse(tokens) → { ast, diagnostics[] }`.
func Parse(source string) ParseResult {
	tokens, scanErrs := Scan(source)
	root, parseErrs := parser.ParseProgram(tokens)
	diags := make([]*diagnostics.DiagnosticError, 0, len(scanErrs)+len(parseErrs))
	diags = append(diags, scanErrs...)
	diags = append(diags, parseErrs...)
	return ParseResult{AST: root, Diagnostics: diags}
}

// CheckResult is the output of Check.
type CheckResult struct {
	TypedAST      *ast.Block
	Diagnostics   []*diagnostics.DiagnosticError
	Env           *typeenv.Environment
	TypePositions []typeenv.TypePosition
	Success       bool
}

// Compile runs Scan, Parse, and Check over source in one pass through
// internal/pipeline, returning every stage's diagnostics together in
// source order within a stage, scanner-before-parser-before-checker across
// stages (spec.md §5's ordering guarantee).
func Compile(filePath, source string) CheckResult {
	p := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&checker.CheckerProcessor{},
	)
	ctx := p.Run(pipeline.NewPipelineContext(filePath, source))
	return CheckResult{
		TypedAST:      ctx.AstRoot,
		Diagnostics:   ctx.Errors,
		Env:           ctx.Env,
		TypePositions: ctx.TypePositions,
		Success:       ctx.Success(),
	}
}

// Check type-checks an already-parsed AST, per spec.md §6's
// `check(ast) → { typed_ast, diagnostics[], env, type_positions[], success }`.
func Check(program *ast.Block) CheckResult {
	env, positions, diags := checker.Check(program)
	return CheckResult{
		TypedAST:      program,
		Diagnostics:   diags,
		Env:           env,
		TypePositions: positions,
		Success:       !hasError(diags),
	}
}

func hasError(diags []*diagnostics.DiagnosticError) bool {
	for _, d := range diags {
		if d.Severity == diagnostics.Error {
			return true
		}
	}
	return false
}
