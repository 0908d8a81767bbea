package ast

import "github.com/al-lang/al/internal/token"

// BaseStmt factors the span shared by every concrete statement node.
type BaseStmt struct{ Sp token.Span }

func (b *BaseStmt) Span() token.Span { return b.Sp }
func (b *BaseStmt) statementNode()   {}

// VariableBinding is `name = init` or `name Type = init`.
type VariableBinding struct {
	BaseStmt
	Name           *Identifier
	TypeAnnotation TypeNode // nil if unannotated
	Init           Expression
	Doc            string
}

// ConstBinding is `const name = init` (top-level only).
type ConstBinding struct {
	BaseStmt
	Name           *Identifier
	TypeAnnotation TypeNode
	Init           Expression
	Doc            string
}

// TypePatternBinding is `Uppercase = init`: asserts typeof(init) matches
// the named type without introducing a new name.
type TypePatternBinding struct {
	BaseStmt
	TypeName *Identifier
	Init     Expression
}

// TupleDestructuringBinding is `(a, b, ...) = init`. Elements with an
// uppercase name assert the type instead of binding.
type TupleDestructuringBinding struct {
	BaseStmt
	Patterns []*Identifier
	Init     Expression
}

// FieldDecl is one `name Type` (optionally `= default`) in a struct
// declaration.
type FieldDecl struct {
	Name    *Identifier
	Type    TypeNode
	Default Expression // nil if required
	Sp      token.Span
}

// FunctionDeclaration is `fn name(params) RetType { body }`.
type FunctionDeclaration struct {
	BaseStmt
	Name       *Identifier
	TypeParams []string
	Params     []*Param
	RetType    TypeNode // nil if inferred from body
	ErrorType  TypeNode // non-nil when RetType is sugar for RetType!ErrorType
	Body       *Block
	Doc        string
}

// StructDeclaration is `struct Name(TypeParams) { fields... }`.
type StructDeclaration struct {
	BaseStmt
	Name       *Identifier
	TypeParams []string
	Fields     []*FieldDecl
	Doc        string
}

// VariantDecl is one `Name(Payload...)` or bare `Name` in an enum body.
type VariantDecl struct {
	Name    *Identifier
	Payload []TypeNode
	Sp      token.Span
}

// EnumDeclaration is `enum Name(TypeParams) { variants... }`.
type EnumDeclaration struct {
	BaseStmt
	Name       *Identifier
	TypeParams []string
	Variants   []*VariantDecl
	Doc        string
}

// ImportDeclaration is `from 'path' import Ident1, Ident2`.
type ImportDeclaration struct {
	BaseStmt
	Path  string
	Names []*Identifier
}

// ExportDeclaration is `export <declaration>`.
type ExportDeclaration struct {
	BaseStmt
	Inner Statement
}
