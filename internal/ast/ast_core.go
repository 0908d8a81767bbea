// Package ast defines the untyped/typed AST node taxonomy produced by the
// parser and annotated in place by the type checker. Traversal throughout
// the compiler uses explicit type switches rather than a visitor
// interface — spec.md's design notes permit either, and a type switch
// avoids a large amount of Accept-method boilerplate across ~30 node
// kinds for a tree that is always walked top-down with accumulators
// (no back-pointers, no cycles).
package ast

import (
	"github.com/al-lang/al/internal/token"
	"github.com/al-lang/al/internal/types"
)

// Node is the base interface for every statement and expression.
type Node interface {
	Span() token.Span
}

// Statement is a Node that appears in statement position.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that appears in expression position. Pattern nodes
// (WildcardPattern, OrPattern, and any literal/identifier/tuple/array/
// constructor-call/property-access node used inside a match arm or a
// destructuring binding) are ordinary Expressions reused in a pattern
// role, per spec.md's "Polymorphism over payloads" design note.
type Expression interface {
	Node
	expressionNode()
	// Type returns the type the checker inferred for this expression, or
	// nil before checking has visited it.
	Type() types.Type
	SetType(types.Type)
}

// Block is a sequence of statements/expressions sharing a lexical scope;
// the value of the final expression (if any) is the block's value. It
// appears as the body of functions, if/else arms, and match arms that use
// `{ }`.
type Block struct {
	Sp       token.Span
	Body     []Node
	inferred types.Type
}

func (b *Block) Span() token.Span      { return b.Sp }
func (b *Block) expressionNode()       {}
func (b *Block) statementNode()        {}
func (b *Block) Type() types.Type      { return b.inferred }
func (b *Block) SetType(t types.Type)  { b.inferred = t }

// Base factors the Type/SetType bookkeeping shared by every concrete
// expression node.
type Base struct {
	Sp token.Span
	Ty types.Type
}

func (b *Base) Span() token.Span     { return b.Sp }
func (b *Base) expressionNode()      {}
func (b *Base) Type() types.Type     { return b.Ty }
func (b *Base) SetType(t types.Type) { b.Ty = t }

// ErrorNode is a placeholder the parser inserts into an in-progress list
// to mark a recovered-from failure. The tree remains walkable: an
// ErrorNode's type is always None.
type ErrorNode struct {
	Base
	Message string
}

func NewErrorNode(sp token.Span, message string) *ErrorNode {
	return &ErrorNode{Base: Base{Sp: sp}, Message: message}
}

func (e *ErrorNode) statementNode() {}
