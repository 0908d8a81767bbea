package pipeline_test

import (
	"testing"

	"github.com/al-lang/al/internal/diagnostics"
	"github.com/al-lang/al/internal/pipeline"
	"github.com/al-lang/al/internal/token"
)

// recordingStage appends its name to ctx.Source (reusing the string field as
// a cheap trace) and optionally records an error-severity diagnostic, so
// tests can observe both run order and error survival without needing a
// real lexer/parser/checker stage.
type recordingStage struct {
	name    string
	failure bool
}

func (s recordingStage) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	ctx.Source += s.name
	if s.failure {
		ctx.Errors = append(ctx.Errors, diagnostics.NewError(diagnostics.ErrT001UnknownName, token.Span{}, s.name+" failed"))
	}
	return ctx
}

func TestPipelineRunsStagesInOrder(t *testing.T) {
	p := pipeline.New(recordingStage{name: "a"}, recordingStage{name: "b"}, recordingStage{name: "c"})
	ctx := p.Run(pipeline.NewPipelineContext("test.al", ""))
	if ctx.Source != "abc" {
		t.Fatalf("expected stages to run in order abc, got %q", ctx.Source)
	}
}

func TestPipelineContinuesPastAFailingStage(t *testing.T) {
	p := pipeline.New(recordingStage{name: "a", failure: true}, recordingStage{name: "b"})
	ctx := p.Run(pipeline.NewPipelineContext("test.al", ""))
	if ctx.Source != "ab" {
		t.Fatalf("expected the second stage to still run after the first recorded an error, got %q", ctx.Source)
	}
	if ctx.Success() {
		t.Fatal("expected Success() to be false after a stage recorded an error diagnostic")
	}
}

func TestSuccessIsTrueWithNoDiagnostics(t *testing.T) {
	ctx := pipeline.NewPipelineContext("test.al", "")
	if !ctx.Success() {
		t.Fatal("expected a fresh context to report success")
	}
}

func TestSuccessIgnoresWarnings(t *testing.T) {
	ctx := pipeline.NewPipelineContext("test.al", "")
	ctx.Errors = append(ctx.Errors, &diagnostics.DiagnosticError{
		Severity: diagnostics.Warning,
		Code:     diagnostics.WarnM002Unreachable,
		Message:  "unreachable arm",
	})
	if !ctx.Success() {
		t.Fatal("expected a warning-only diagnostic to not affect Success()")
	}
}
