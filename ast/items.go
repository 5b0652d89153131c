package ast

import (
	"rue/syntax"
	"rue/token"
)

type FunctionItem struct {
	Node *syntax.Node
}

func (f FunctionItem) Name() (Identifier, bool) { return identOf(f.Node) }

func (f FunctionItem) Params() []Param {
	pl := f.Node.FindChild(syntax.ParamList)
	if pl == nil {
		return nil
	}
	var out []Param
	for _, c := range pl.FindChildren(syntax.Param) {
		out = append(out, Param{Node: c})
	}
	return out
}

func (f FunctionItem) ReturnType() (TypeExpr, bool) {
	tr := f.Node.FindChild(syntax.TypeRef)
	if tr == nil {
		return TypeExpr{}, false
	}
	return TypeExpr{Node: tr}, true
}

func (f FunctionItem) Body() (Block, bool) {
	b := f.Node.FindChild(syntax.Block)
	if b == nil {
		return Block{}, false
	}
	return Block{Node: b}, true
}

type Param struct {
	Node *syntax.Node
}

func (p Param) Name() (Identifier, bool) { return identOf(p.Node) }

func (p Param) Type() (TypeExpr, bool) {
	tr := p.Node.FindChild(syntax.TypeRef)
	if tr == nil {
		return TypeExpr{}, false
	}
	return TypeExpr{Node: tr}, true
}

type StructItem struct {
	Node *syntax.Node
}

func (s StructItem) Name() (Identifier, bool) { return identOf(s.Node) }

func (s StructItem) Fields() []FieldDecl {
	var out []FieldDecl
	for _, c := range s.Node.FindChildren(syntax.FieldDecl) {
		out = append(out, FieldDecl{Node: c})
	}
	return out
}

type EnumItem struct {
	Node *syntax.Node
}

func (e EnumItem) Name() (Identifier, bool) { return identOf(e.Node) }

func (e EnumItem) Variants() []EnumVariantDecl {
	var out []EnumVariantDecl
	for _, c := range e.Node.FindChildren(syntax.EnumVariantDecl) {
		out = append(out, EnumVariantDecl{Node: c})
	}
	return out
}

type EnumVariantDecl struct {
	Node *syntax.Node
}

func (v EnumVariantDecl) Name() (Identifier, bool) { return identOf(v.Node) }

func (v EnumVariantDecl) Fields() []FieldDecl {
	var out []FieldDecl
	for _, c := range v.Node.FindChildren(syntax.FieldDecl) {
		out = append(out, FieldDecl{Node: c})
	}
	return out
}

type FieldDecl struct {
	Node *syntax.Node
}

func (f FieldDecl) Name() (Identifier, bool) { return identOf(f.Node) }

func (f FieldDecl) Type() (TypeExpr, bool) {
	tr := f.Node.FindChild(syntax.TypeRef)
	if tr == nil {
		return TypeExpr{}, false
	}
	return TypeExpr{Node: tr}, true
}

// TypeExpr is the typed view of a TypeRef node: a base type name plus a
// number of trailing `[]` array suffixes.
type TypeExpr struct {
	Node *syntax.Node
}

func (t TypeExpr) Name() string {
	id, ok := identOf(t.Node)
	if !ok {
		return ""
	}
	return id.Name()
}

func (t TypeExpr) ArrayDepth() int {
	depth := 0
	for _, tok := range t.Node.Tokens() {
		if tok.Kind == token.LBracket {
			depth++
		}
	}
	return depth
}
