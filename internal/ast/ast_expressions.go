package ast

import (
	"math/big"

	"github.com/al-lang/al/internal/token"
	"github.com/al-lang/al/internal/types"
)

// NumberLiteral is an integer or float literal (contains '.' iff float).
type NumberLiteral struct {
	Base
	Raw     string
	IsFloat bool
	Int     *big.Int
	Float   float64
}

// StringLiteral is a plain (non-interpolated) single-quoted string.
type StringLiteral struct {
	Base
	Value string
}

// InterpolatedStringExpr is a sequence of StringLiteral and embedded
// expression parts.
type InterpolatedStringExpr struct {
	Base
	Parts []Expression
}

// BoolLiteral is `true` or `false`.
type BoolLiteral struct {
	Base
	Value bool
}

// NoneLiteral is `none`.
type NoneLiteral struct{ Base }

// Identifier references a name. IsUpper is precomputed for the parser's
// type-pattern-binding / enum-in-property-position disambiguation.
type Identifier struct {
	Base
	Name    string
	IsUpper bool
}

// PropertyAccess is `left.right` where right is an identifier, a call, or
// a numeric tuple index.
type PropertyAccess struct {
	Base
	Left  Expression
	Right Expression // *Identifier, *CallExpression, or *TupleIndex
}

// TupleIndex is the numeric right-hand side of a tuple-index property
// access, e.g. the `0` in `pair.0`.
type TupleIndex struct {
	Base
	Index int
}

// IndexExpression is `left[index]`.
type IndexExpression struct {
	Base
	Left  Expression
	Index Expression
}

// RangeExpression is `from..to`.
type RangeExpression struct {
	Base
	From Expression
	To   Expression
}

// TupleExpression is `(e1, e2, ...)` — an empty `()` is rejected by the
// parser before construction.
type TupleExpression struct {
	Base
	Elements []Expression
}

// SpreadElement is `..expr` inside an array literal or array pattern.
type SpreadElement struct {
	Base
	Inner Expression // nil for a bare `..` in a pattern (unbound rest)
}

// ArrayExpression is `[e1, e2, ...]`, possibly containing a SpreadElement.
type ArrayExpression struct {
	Base
	Elements []Expression
}

// IfExpression is `if cond { then } else { else }` (else optional, and
// itself may be another IfExpression for `else if` chaining).
type IfExpression struct {
	Base
	Cond Expression
	Then *Block
	Else Expression // *Block, *IfExpression, or nil
}

// MatchArm is one `pattern -> body` (or `pattern | pattern -> body`) arm.
type MatchArm struct {
	Pattern Expression
	Body    Expression
	Sp      token.Span
}

// MatchExpression is `match subject { arms... }`.
type MatchExpression struct {
	Base
	Subject Expression
	Arms    []MatchArm
}

// FunctionExpression is an anonymous function value.
type FunctionExpression struct {
	Base
	Params []*Param
	Body   *Block
}

// Param is a function parameter; TypeAnnotation is nil when unannotated
// (receives a fresh type variable during checking).
type Param struct {
	Name           *Identifier
	TypeAnnotation TypeNode
	Sp             token.Span
}

// BinaryExpression covers + - * / % == != < > <= >= && ||.
type BinaryExpression struct {
	Base
	Op    string
	Left  Expression
	Right Expression
}

// UnaryExpression covers prefix ! and -.
type UnaryExpression struct {
	Base
	Op      string
	Operand Expression
}

// OrExpression is `lhs or fallback` / `lhs or err -> fallback`.
type OrExpression struct {
	Base
	Lhs      Expression
	Receiver *Identifier // nil if no `err ->` receiver is bound
	Body     Expression

	// PreUnwrapType is the type of Lhs before unwrapping (Option<T> or
	// Result<T,E>), recorded because downstream code generation needs to
	// know which kind of unwrap occurred (spec.md §3).
	PreUnwrapType types.Type
}

// ErrorExpression is `error E{...}` — lifts its inner value's type to
// Result<None, E> for branch-unification purposes.
type ErrorExpression struct {
	Base
	Inner Expression
}

// PropagateExpression is postfix `!` or `?`.
type PropagateExpression struct {
	Base
	Inner Expression
	Op    string // "!" or "?"

	PreUnwrapType types.Type
}

// AssertExpression is `assert cond, message`.
type AssertExpression struct {
	Base
	Cond    Expression
	Message Expression
}

// CallExpression is `callee(args...)`, optionally with explicit type
// arguments for a generic struct/enum/function instantiation.
type CallExpression struct {
	Base
	Callee   Expression
	Args     []Expression
	TypeArgs []TypeNode
}

// FieldInit is one `name: value` in a struct initializer.
type FieldInit struct {
	Name  *Identifier
	Value Expression
	Sp    token.Span
}

// StructInitExpression is `Name{ field: value, ... }` or
// `Name(TypeArgs){ ... }` for explicit generic instantiation.
type StructInitExpression struct {
	Base
	TypeName *Identifier
	TypeArgs []TypeNode
	Fields   []FieldInit
}

// WildcardPattern is `_` used in a match arm or destructuring pattern.
type WildcardPattern struct{ Base }

// OrPattern is `p1 | p2 | ...` used in a match arm.
type OrPattern struct {
	Base
	Patterns []Expression
}
