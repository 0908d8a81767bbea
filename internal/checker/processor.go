package checker

import "github.com/al-lang/al/internal/pipeline"

// CheckerProcessor is the pipeline's check stage: it consumes ctx.AstRoot
// (produced by ParserProcessor) and populates ctx.Env/ctx.TypePositions,
// per spec.md §6's `check(ast) → { typed_ast, diagnostics[], env,
// type_positions[], success }`.
type CheckerProcessor struct{}

func (cp *CheckerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil {
		return ctx
	}
	env, positions, errs := Check(ctx.AstRoot)
	ctx.Env = env
	ctx.TypePositions = positions
	ctx.Errors = append(ctx.Errors, errs...)
	return ctx
}
