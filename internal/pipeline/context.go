package pipeline

import (
	"github.com/al-lang/al/internal/ast"
	"github.com/al-lang/al/internal/diagnostics"
	"github.com/al-lang/al/internal/token"
	"github.com/al-lang/al/internal/typeenv"
)

// PipelineContext is the single mutable object every stage reads from and
// writes to, owned by one driver call for the duration of a compile run
// (spec.md §5's "owned by a single driver" resource-model note).
type PipelineContext struct {
	FilePath string
	Source   string

	Tokens  []token.Token
	AstRoot *ast.Block

	Env           *typeenv.Environment
	TypePositions []typeenv.TypePosition

	Errors []*diagnostics.DiagnosticError
}

// NewPipelineContext seeds a context with the source text to compile.
func NewPipelineContext(filePath, source string) *PipelineContext {
	return &PipelineContext{FilePath: filePath, Source: source}
}

// Success reports whether no error-severity diagnostic was recorded by any
// stage that has run so far (spec.md §6's `check` interface, "success
// means no error-severity diagnostics").
func (c *PipelineContext) Success() bool {
	for _, d := range c.Errors {
		if d.Severity == diagnostics.Error {
			return false
		}
	}
	return true
}
