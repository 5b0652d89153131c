// Package hir is the typed, name-resolved expression tree the type
// checker builds (spec.md §3, §4.5). It generalizes the teacher's
// Expression/Accept Visitor pattern (ast/interfaces.go in the teacher
// repo) from an untyped dynamic-language AST to a tree where every node
// additionally carries a resolved types.Type.
package hir

import (
	"math/big"

	"rue/symtab"
	"rue/token"
	"rue/types"
)

// Node is any HIR expression. Every node carries its resolved type and
// source span (spec.md §8: "Every HIR node has a resolved type field that
// is not the uninitialized sentinel").
type Node interface {
	NodeType() *types.Type
	NodeSpan() token.Span
	Accept(v Visitor) any
}

type base struct {
	Typ *types.Type
	Sp  token.Span
}

func (b base) NodeType() *types.Type { return b.Typ }
func (b base) NodeSpan() token.Span  { return b.Sp }

// Visitor dispatches over every HIR node kind, mirroring the teacher's
// ExpressionVisitor.
type Visitor interface {
	VisitIntLit(n *IntLit) any
	VisitBytesLit(n *BytesLit) any
	VisitNilLit(n *NilLit) any
	VisitRef(n *Ref) any
	VisitIf(n *If) any
	VisitLet(n *Let) any
	VisitCall(n *Call) any
	VisitList(n *List) any
	VisitPath(n *Path) any
	VisitConstruct(n *Construct) any
	VisitFieldAccess(n *FieldAccess) any
	VisitIsTest(n *IsTest) any
	VisitAsCoerce(n *AsCoerce) any
	VisitBuiltinCall(n *BuiltinCall) any
	VisitBlock(n *Block) any
	VisitReturn(n *Return) any
	VisitPoison(n *Poison) any
}

// IntLit is an arbitrary-precision integer literal.
type IntLit struct {
	base
	Value *big.Int
}

func (n *IntLit) Accept(v Visitor) any { return v.VisitIntLit(n) }

// BytesLit is a string or hex literal, both typed Bytes.
type BytesLit struct {
	base
	Value []byte
}

func (n *BytesLit) Accept(v Visitor) any { return v.VisitBytesLit(n) }

// NilLit is the empty-list literal, typed Nil.
type NilLit struct {
	base
}

func (n *NilLit) Accept(v Visitor) any { return v.VisitNilLit(n) }

// Ref is a reference to a resolved symbol (parameter, local, or
// function/struct/enum name used as a value — functions as values only
// arise in call position, but Ref covers every name lookup uniformly).
type Ref struct {
	base
	Symbol *symtab.Symbol
}

func (n *Ref) Accept(v Visitor) any { return v.VisitRef(n) }

// If is a conditional; either branch may itself end in a Return, in which
// case it contributes no type to the If's own resolved type (spec.md
// §4.5).
type If struct {
	base
	Cond, Then, Else Node
}

func (n *If) Accept(v Visitor) any { return v.VisitIf(n) }

// Let introduces a binding visible in Body.
type Let struct {
	base
	Symbol *symtab.Symbol
	Init   Node
	Body   Node
}

func (n *Let) Accept(v Visitor) any { return v.VisitLet(n) }

// Call invokes a user-defined function.
type Call struct {
	base
	Callee *symtab.Symbol
	Args   []Node
}

func (n *Call) Accept(v Visitor) any { return v.VisitCall(n) }

// ListElement is one element of a List; Spread marks `...expr` elements.
type ListElement struct {
	Value  Node
	Spread bool
}

// List is a list literal; Result type is T[] (or Nil for the empty list).
type List struct {
	base
	Elements []ListElement
}

func (n *List) Accept(v Visitor) any { return v.VisitList(n) }

// Path is a bare `E::V` reference used as a value — sugar for
// constructing a zero-field variant.
type Path struct {
	base
	Variant *types.EnumVariant
}

func (n *Path) Accept(v Visitor) any { return v.VisitPath(n) }

// FieldValue is one field initializer of a Construct, in declaration
// order (spec.md §4.5 — "stored in declaration order" regardless of
// source order).
type FieldValue struct {
	Name  string
	Value Node
}

// Construct builds a struct or enum-variant value.
type Construct struct {
	base
	Fields []FieldValue
}

func (n *Construct) Accept(v Visitor) any { return v.VisitConstruct(n) }

// FieldAccess projects a field from a struct/enum-variant value, or
// `.first`/`.rest` from an array.
type FieldAccess struct {
	base
	Base  Node
	Field string
}

func (n *FieldAccess) Accept(v Visitor) any { return v.VisitFieldAccess(n) }

// IsTest is `operand is T`; always typed Bool. Symbol is non-nil when
// Operand is a bare identifier reference, enabling narrowing in check/.
type IsTest struct {
	base
	Operand Node
	Symbol  *symtab.Symbol
	Target  *types.Type
}

func (n *IsTest) Accept(v Visitor) any { return v.VisitIsTest(n) }

// AsCoerce is `operand as T`.
type AsCoerce struct {
	base
	Operand Node
}

func (n *AsCoerce) Accept(v Visitor) any { return v.VisitAsCoerce(n) }

// BuiltinCall invokes one of the hard-coded builtins (sha256, sha256_tree,
// list operators — spec.md §1 Non-goals: "no user-facing standard library
// beyond hard-coded builtins").
type BuiltinCall struct {
	base
	Name string
	Args []Node
}

func (n *BuiltinCall) Accept(v Visitor) any { return v.VisitBuiltinCall(n) }

// Block is a sequence of statements followed by an optional tail
// expression, or an explicit Return.
type Block struct {
	base
	Stmts []Node
	Tail  Node // nil if the block ends in a statement/return only
}

func (n *Block) Accept(v Visitor) any { return v.VisitBlock(n) }

// Return exits the enclosing function with Value (nil for a bare
// `return;`).
type Return struct {
	base
	Value Node
}

func (n *Return) Accept(v Visitor) any { return v.VisitReturn(n) }

// Poison is produced in place of a node that failed to type-check, always
// typed Any, so checking of siblings continues (spec.md §4.5, §9, GLOSSARY
// "Poisoned node").
type Poison struct {
	base
}

func (n *Poison) Accept(v Visitor) any { return v.VisitPoison(n) }

// NewPoison builds a poisoned node at the given span.
func NewPoison(sp token.Span) *Poison {
	return &Poison{base: base{Typ: types.Any, Sp: sp}}
}

// Function is a top-level function definition.
type Function struct {
	Symbol     *symtab.Symbol
	Params     []*symtab.Symbol
	ReturnType *types.Type
	Body       *Block
}

// Program is the complete, type-checked compilation unit.
type Program struct {
	Functions []*Function
	Structs   []*types.StructType
	Enums     []*types.EnumType
	Entry     *Function // the "main" function, nil if absent
}
