package lexer

import "github.com/al-lang/al/internal/pipeline"

// LexerProcessor is the pipeline's scan stage: it tokenizes ctx.Source and
// appends any scanner diagnostics, per spec.md §6's `scan(source) → tokens[]`.
type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	tokens, errs := Scan(ctx.Source)
	ctx.Tokens = tokens
	ctx.Errors = append(ctx.Errors, errs...)
	return ctx
}
