// Package config centralizes fixed tables shared across compiler stages,
// grounded on the teacher's internal/config/constants.go.
package config

// SourceFileExt is the canonical AL source extension.
const SourceFileExt = ".al"

// IsTestMode normalizes type-variable names of the form t1, t2, … to a
// stable "t?" in Var.String() so test assertions do not depend on
// allocation order. The checker's own fresh variables ('a, 'b, …) do not
// have that form and render unchanged. Set by test packages that want
// deterministic type-variable rendering.
var IsTestMode = false

// MaxSynchronizeIterations bounds the parser's synchronize() loop (spec
// §4.2: "a hard cap (~1000) on synchronize iterations per parse").
const MaxSynchronizeIterations = 1000

// MaxLevenshteinDistance bounds the "did you mean" suggestion search
// (spec §4.3: "Levenshtein distance (<=3)").
const MaxLevenshteinDistance = 3

// Built-in type and constructor names.
const (
	OptionTypeName = "Option"
	ResultTypeName = "Result"
	SomeCtorName   = "Some"
	NoneCtorName   = "None"
	OkCtorName     = "Ok"
	ErrCtorName    = "Err"
	IntTypeName    = "Int"
	FloatTypeName  = "Float"
	StringTypeName = "String"
	BoolTypeName   = "Bool"
)
