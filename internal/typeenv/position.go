package typeenv

import (
	"github.com/al-lang/al/internal/token"
	"github.com/al-lang/al/internal/types"
)

// TypePosition is one entry of the editor-hover index: every time the
// checker successfully types a reference or declaration, it appends one of
// these (spec.md §4.3, "Recording for editor hover"). It lives alongside
// Environment rather than in internal/checker so that internal/pipeline can
// reference it without importing the checker package.
type TypePosition struct {
	Span   token.Span
	Name   string
	Type   types.Type
	DefLoc token.Span
	Doc    string
}
