package ast

import "github.com/al-lang/al/internal/token"

// TypeNode is the syntactic representation of a type annotation, distinct
// from the semantic types.Type the checker resolves it to.
type TypeNode interface {
	Node
	typeNode()
}

type BaseType struct{ Sp token.Span }

func (b *BaseType) Span() token.Span { return b.Sp }
func (b *BaseType) typeNode()        {}

// NamedTypeNode is a bare or generic-applied name: Int, String, Box(Int).
type NamedTypeNode struct {
	BaseType
	Name string
	Args []TypeNode
}

// OptionTypeNode is `?T`.
type OptionTypeNode struct {
	BaseType
	Inner TypeNode
}

// ResultTypeNode is `Success!Error`.
type ResultTypeNode struct {
	BaseType
	Success TypeNode
	Err     TypeNode
}

// ArrayTypeNode is `[T]`.
type ArrayTypeNode struct {
	BaseType
	Elem TypeNode
}

// TupleTypeNode is `(T1, T2, ...)`.
type TupleTypeNode struct {
	BaseType
	Elements []TypeNode
}

func NewNamedType(sp token.Span, name string, args []TypeNode) *NamedTypeNode {
	return &NamedTypeNode{BaseType: BaseType{Sp: sp}, Name: name, Args: args}
}
func NewOptionType(sp token.Span, inner TypeNode) *OptionTypeNode {
	return &OptionTypeNode{BaseType: BaseType{Sp: sp}, Inner: inner}
}
func NewResultType(sp token.Span, success, err TypeNode) *ResultTypeNode {
	return &ResultTypeNode{BaseType: BaseType{Sp: sp}, Success: success, Err: err}
}
func NewArrayType(sp token.Span, elem TypeNode) *ArrayTypeNode {
	return &ArrayTypeNode{BaseType: BaseType{Sp: sp}, Elem: elem}
}
func NewTupleType(sp token.Span, elements []TypeNode) *TupleTypeNode {
	return &TupleTypeNode{BaseType: BaseType{Sp: sp}, Elements: elements}
}
