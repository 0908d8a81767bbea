// Package pipeline chains the Scan → Parse → Check stages behind a single
// Processor interface, modeled on the teacher's own internal/pipeline
// package: a Pipeline owns an ordered list of Processor stages and runs
// them over one mutable PipelineContext, continuing past a stage that
// recorded errors so a later stage's diagnostics are never lost (spec.md
// §5: "no interleaving" across stages, but a single run still surfaces
// every stage's diagnostics together).
package pipeline

// Processor is one stage of a compile run.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline runs an ordered sequence of Processors over one context.
type Pipeline struct {
	processors []Processor
}

// New builds a Pipeline from the given stages, in run order.
func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run feeds initial through every stage in order, handing each stage's
// output context to the next. A stage that records errors does not halt
// the run: later stages still get a chance to run (e.g. the checker can
// still walk whatever AST the parser recovered).
func (p *Pipeline) Run(initial *PipelineContext) *PipelineContext {
	ctx := initial
	for _, proc := range p.processors {
		ctx = proc.Process(ctx)
	}
	return ctx
}
