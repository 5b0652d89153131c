package ast

import (
	"rue/syntax"
	"rue/token"
)

// Expr is an untyped handle to any expression CST node. Narrow it with
// the AsX accessors below; exactly one will succeed for a well-formed
// node (its Kind determines which).
type Expr struct {
	Node *syntax.Node
}

func (e Expr) Kind() syntax.Kind { return e.Node.Kind }
func (e Expr) Span() token.Span  { return e.Node.Span() }

func (e Expr) AsIntLiteral() (IntLiteral, bool) {
	if e.Node.Kind != syntax.IntLiteral {
		return IntLiteral{}, false
	}
	return IntLiteral{Node: e.Node}, true
}

func (e Expr) AsBytesLiteral() (BytesLiteral, bool) {
	if e.Node.Kind != syntax.BytesLiteral {
		return BytesLiteral{}, false
	}
	return BytesLiteral{Node: e.Node}, true
}

func (e Expr) IsNilLiteral() bool { return e.Node.Kind == syntax.NilLiteral }

func (e Expr) AsIdent() (IdentExpr, bool) {
	if e.Node.Kind != syntax.IdentExpr {
		return IdentExpr{}, false
	}
	return IdentExpr{Node: e.Node}, true
}

func (e Expr) AsPath() (PathExpr, bool) {
	if e.Node.Kind != syntax.PathExpr {
		return PathExpr{}, false
	}
	return PathExpr{Node: e.Node}, true
}

func (e Expr) AsBinary() (BinaryExpr, bool) {
	if e.Node.Kind != syntax.BinaryExpr {
		return BinaryExpr{}, false
	}
	return BinaryExpr{Node: e.Node}, true
}

func (e Expr) AsUnary() (UnaryExpr, bool) {
	if e.Node.Kind != syntax.UnaryExpr {
		return UnaryExpr{}, false
	}
	return UnaryExpr{Node: e.Node}, true
}

func (e Expr) AsIf() (IfExpr, bool) {
	if e.Node.Kind != syntax.IfExpr {
		return IfExpr{}, false
	}
	return IfExpr{Node: e.Node}, true
}

func (e Expr) AsCall() (CallExpr, bool) {
	if e.Node.Kind != syntax.CallExpr {
		return CallExpr{}, false
	}
	return CallExpr{Node: e.Node}, true
}

func (e Expr) AsField() (FieldExpr, bool) {
	if e.Node.Kind != syntax.FieldExpr {
		return FieldExpr{}, false
	}
	return FieldExpr{Node: e.Node}, true
}

func (e Expr) AsList() (ListExpr, bool) {
	if e.Node.Kind != syntax.ListExpr {
		return ListExpr{}, false
	}
	return ListExpr{Node: e.Node}, true
}

func (e Expr) AsConstruct() (ConstructExpr, bool) {
	if e.Node.Kind != syntax.ConstructExpr {
		return ConstructExpr{}, false
	}
	return ConstructExpr{Node: e.Node}, true
}

func (e Expr) AsIs() (IsExpr, bool) {
	if e.Node.Kind != syntax.IsExpr {
		return IsExpr{}, false
	}
	return IsExpr{Node: e.Node}, true
}

func (e Expr) AsAs() (AsExpr, bool) {
	if e.Node.Kind != syntax.AsExpr {
		return AsExpr{}, false
	}
	return AsExpr{Node: e.Node}, true
}

type IntLiteral struct{ Node *syntax.Node }

// Text is the raw decimal digits (optionally `-`-prefixed) as written.
func (l IntLiteral) Text() string {
	for _, t := range l.Node.SignificantTokens() {
		return t.Text
	}
	return ""
}

// BytesLiteral covers both lexical forms that type as Bytes: `"..."`
// strings and `0x...` hex literals. TokenKind tells them apart.
type BytesLiteral struct{ Node *syntax.Node }

func (l BytesLiteral) TokenKind() token.Kind {
	for _, t := range l.Node.SignificantTokens() {
		return t.Kind
	}
	return token.Invalid
}

func (l BytesLiteral) Text() string {
	for _, t := range l.Node.SignificantTokens() {
		return t.Text
	}
	return ""
}

type IdentExpr struct{ Node *syntax.Node }

func (i IdentExpr) Name() string {
	for _, t := range i.Node.SignificantTokens() {
		return t.Text
	}
	return ""
}

// PathExpr is an `E::V` bare enum-variant reference.
type PathExpr struct{ Node *syntax.Node }

func (p PathExpr) EnumName() string {
	toks := p.Node.SignificantTokens()
	if len(toks) < 1 {
		return ""
	}
	return toks[0].Text
}

func (p PathExpr) VariantName() string {
	toks := p.Node.SignificantTokens()
	if len(toks) < 2 {
		return ""
	}
	return toks[len(toks)-1].Text
}

type BinaryExpr struct{ Node *syntax.Node }

func (b BinaryExpr) Left() Expr  { return Expr{Node: b.Node.Children()[0]} }
func (b BinaryExpr) Right() Expr { return Expr{Node: b.Node.Children()[1]} }
func (b BinaryExpr) Operator() token.Kind {
	for _, t := range b.Node.SignificantTokens() {
		return t.Kind
	}
	return token.Invalid
}

type UnaryExpr struct{ Node *syntax.Node }

func (u UnaryExpr) Operand() Expr { return Expr{Node: u.Node.Children()[0]} }
func (u UnaryExpr) Operator() token.Kind {
	for _, t := range u.Node.SignificantTokens() {
		return t.Kind
	}
	return token.Invalid
}

type IfExpr struct{ Node *syntax.Node }

func (f IfExpr) Cond() Expr { return Expr{Node: f.Node.Children()[0]} }
func (f IfExpr) Then() Block {
	return Block{Node: f.Node.Children()[1]}
}

func (f IfExpr) elseNode() (*syntax.Node, bool) {
	cs := f.Node.Children()
	if len(cs) < 3 {
		return nil, false
	}
	return cs[2], true
}

func (f IfExpr) ElseBlock() (Block, bool) {
	n, ok := f.elseNode()
	if !ok || n.Kind != syntax.Block {
		return Block{}, false
	}
	return Block{Node: n}, true
}

func (f IfExpr) ElseIf() (IfExpr, bool) {
	n, ok := f.elseNode()
	if !ok || n.Kind != syntax.IfExpr {
		return IfExpr{}, false
	}
	return IfExpr{Node: n}, true
}

type CallExpr struct{ Node *syntax.Node }

func (c CallExpr) Callee() Expr { return Expr{Node: c.Node.Children()[0]} }

func (c CallExpr) Args() []Expr {
	al := c.Node.FindChild(syntax.ArgList)
	if al == nil {
		return nil
	}
	var out []Expr
	for _, ch := range al.Children() {
		out = append(out, Expr{Node: ch})
	}
	return out
}

type FieldExpr struct{ Node *syntax.Node }

func (f FieldExpr) Base() Expr { return Expr{Node: f.Node.Children()[0]} }

func (f FieldExpr) FieldName() string {
	for _, t := range f.Node.SignificantTokens() {
		if t.Kind == token.Ident {
			return t.Text
		}
	}
	return ""
}

type ListElement struct {
	Value  Expr
	Spread bool
}

type ListExpr struct{ Node *syntax.Node }

func (l ListExpr) Elements() []ListElement {
	var out []ListElement
	for _, c := range l.Node.Children() {
		if c.Kind == syntax.SpreadElement {
			inner := c.Children()
			if len(inner) == 0 {
				continue
			}
			out = append(out, ListElement{Value: Expr{Node: inner[0]}, Spread: true})
		} else {
			out = append(out, ListElement{Value: Expr{Node: c}})
		}
	}
	return out
}

type ConstructExpr struct{ Node *syntax.Node }

// Target is the struct name (IdentExpr) or enum-variant path (PathExpr)
// being constructed.
func (c ConstructExpr) Target() Expr { return Expr{Node: c.Node.Children()[0]} }

func (c ConstructExpr) Fields() []FieldInit {
	cs := c.Node.Children()
	if len(cs) <= 1 {
		return nil
	}
	var out []FieldInit
	for _, ch := range cs[1:] {
		if ch.Kind == syntax.FieldInit {
			out = append(out, FieldInit{Node: ch})
		}
	}
	return out
}

type FieldInit struct{ Node *syntax.Node }

func (f FieldInit) Name() (Identifier, bool) { return identOf(f.Node) }

func (f FieldInit) Value() (Expr, bool) {
	cs := f.Node.Children()
	if len(cs) == 0 {
		return Expr{}, false
	}
	return Expr{Node: cs[0]}, true
}

type IsExpr struct{ Node *syntax.Node }

func (i IsExpr) Operand() Expr   { return Expr{Node: i.Node.Children()[0]} }
func (i IsExpr) Type() TypeExpr  { return TypeExpr{Node: i.Node.Children()[1]} }

type AsExpr struct{ Node *syntax.Node }

func (a AsExpr) Operand() Expr  { return Expr{Node: a.Node.Children()[0]} }
func (a AsExpr) Type() TypeExpr { return TypeExpr{Node: a.Node.Children()[1]} }
