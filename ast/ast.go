// Package ast is the typed facade over the CST (spec.md §4.3): one Go
// struct per CST kind, holding a reference to its syntax.Node rather than
// copying data out of it, with typed accessor methods that return
// (value, false) instead of panicking when a child is missing because of
// a parse error. This generalizes the teacher's Visitor/Accept pattern
// (ast/interfaces.go: one struct implementing Expression per node shape)
// into accessor-method facades over a shared green tree.
package ast

import (
	"rue/syntax"
	"rue/token"
)

// Identifier wraps the raw token backing a name — there is no dedicated
// CST node for bare identifiers used as declaration names (function,
// struct, field, parameter); the token itself carries span and text.
type Identifier struct {
	Tok token.Token
}

func (i Identifier) Name() string     { return i.Tok.Text }
func (i Identifier) Span() token.Span { return i.Tok.Span }

// Program is the typed view of the root SourceFile CST node.
type Program struct {
	Node *syntax.Node
}

// FromCST wraps a parsed CST root as a Program.
func FromCST(root *syntax.Node) Program {
	return Program{Node: root}
}

func (p Program) Items() []Item {
	var out []Item
	for _, c := range p.Node.Children() {
		out = append(out, Item{Node: c})
	}
	return out
}

// Item is an untyped handle to a top-level declaration; use AsFunction /
// AsStruct / AsEnum to narrow it.
type Item struct {
	Node *syntax.Node
}

func (i Item) Kind() syntax.Kind { return i.Node.Kind }

func (i Item) AsFunction() (FunctionItem, bool) {
	if i.Node.Kind != syntax.FunctionItem {
		return FunctionItem{}, false
	}
	return FunctionItem{Node: i.Node}, true
}

func (i Item) AsStruct() (StructItem, bool) {
	if i.Node.Kind != syntax.StructItem {
		return StructItem{}, false
	}
	return StructItem{Node: i.Node}, true
}

func (i Item) AsEnum() (EnumItem, bool) {
	if i.Node.Kind != syntax.EnumItem {
		return EnumItem{}, false
	}
	return EnumItem{Node: i.Node}, true
}

func identOf(n *syntax.Node) (Identifier, bool) {
	tok := n.FindToken(token.Ident)
	if tok == nil {
		return Identifier{}, false
	}
	return Identifier{Tok: *tok}, true
}
