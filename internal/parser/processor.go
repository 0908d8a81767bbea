package parser

import (
	"github.com/al-lang/al/internal/diagnostics"
	"github.com/al-lang/al/internal/pipeline"
	"github.com/al-lang/al/internal/token"
)

// ParserProcessor is the pipeline's parse stage: it consumes ctx.Tokens
// (produced by LexerProcessor) and produces ctx.AstRoot, per spec.md §6's
// `parse(tokens) → { ast, diagnostics[] }`.
type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if len(ctx.Tokens) == 0 {
		ctx.Errors = append(ctx.Errors, diagnostics.NewError(diagnostics.ErrP001UnexpectedToken,
			token.Span{}, "parser: token stream is empty"))
		return ctx
	}
	root, errs := ParseProgram(ctx.Tokens)
	ctx.AstRoot = root
	ctx.Errors = append(ctx.Errors, errs...)
	return ctx
}
