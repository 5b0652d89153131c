// Package syntax implements the lossless CST ("green tree") that the
// parser builds: a homogeneous tree whose internal nodes carry a syntactic
// Kind and whose leaves are tokens, including trivia. Every byte of the
// source appears exactly once among the leaves (spec.md §3, §8).
package syntax

import "rue/token"

// Kind identifies the syntactic role of a CST node.
type Kind int

const (
	SourceFile Kind = iota
	FunctionItem
	StructItem
	EnumItem
	EnumVariantDecl
	ParamList
	Param
	FieldDecl
	TypeRef
	Block
	LetStmt
	ExprStmt
	ReturnStmt

	IfExpr
	CallExpr
	FieldExpr
	PathExpr
	ListExpr
	SpreadElement
	IntLiteral
	BytesLiteral
	NilLiteral
	BinaryExpr
	UnaryExpr
	IsExpr
	AsExpr
	IdentExpr
	ConstructExpr
	FieldInit
	ArgList

	// ErrorNode is the distinguished error-recovery kind (spec.md §3, §4.2):
	// it wraps whatever tokens were skipped while resynchronizing.
	ErrorNode
)

var kindNames = [...]string{
	"SourceFile", "FunctionItem", "StructItem", "EnumItem", "EnumVariantDecl",
	"ParamList", "Param", "FieldDecl", "TypeRef", "Block", "LetStmt",
	"ExprStmt", "ReturnStmt", "IfExpr", "CallExpr", "FieldExpr", "PathExpr",
	"ListExpr", "SpreadElement", "IntLiteral", "BytesLiteral", "NilLiteral",
	"BinaryExpr", "UnaryExpr", "IsExpr", "AsExpr", "IdentExpr",
	"ConstructExpr", "FieldInit", "ArgList", "ErrorNode",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Element is one child of a Node: either a Node (another syntactic
// construct) or a Token (a leaf, possibly trivia).
type Element struct {
	Node  *Node
	Token *token.Token
}

func (e Element) IsToken() bool { return e.Token != nil }

func (e Element) Span() token.Span {
	if e.Token != nil {
		return e.Token.Span
	}
	return e.Node.Span()
}

// Node is an internal CST node: a syntactic Kind plus an ordered list of
// child elements. Nodes are immutable once built and support O(depth)
// navigation via Children/FindChild.
type Node struct {
	Kind     Kind
	Elements []Element

	// Recovered marks an ErrorNode whose sibling context the parser
	// continued past after resynchronizing. Set only on ErrorNode kinds.
	Recovered bool
}

// Span returns the byte range covered by this node's elements. An empty
// node (degenerate, shouldn't occur past a completed parse) spans zero
// bytes at position 0.
func (n *Node) Span() token.Span {
	if len(n.Elements) == 0 {
		return token.Span{}
	}
	sp := n.Elements[0].Span()
	for _, el := range n.Elements[1:] {
		sp = sp.Merge(el.Span())
	}
	return sp
}

// Children returns the non-trivia child nodes, in order.
func (n *Node) Children() []*Node {
	var out []*Node
	for _, el := range n.Elements {
		if el.Node != nil {
			out = append(out, el.Node)
		}
	}
	return out
}

// Tokens returns every token leaf directly under this node, including
// trivia, in source order.
func (n *Node) Tokens() []token.Token {
	var out []token.Token
	for _, el := range n.Elements {
		if el.Token != nil {
			out = append(out, *el.Token)
		}
	}
	return out
}

// FindChild returns the first direct child node of the given kind, or nil.
func (n *Node) FindChild(kind Kind) *Node {
	for _, el := range n.Elements {
		if el.Node != nil && el.Node.Kind == kind {
			return el.Node
		}
	}
	return nil
}

// FindChildren returns every direct child node of the given kind, in order.
func (n *Node) FindChildren(kind Kind) []*Node {
	var out []*Node
	for _, el := range n.Elements {
		if el.Node != nil && el.Node.Kind == kind {
			out = append(out, el.Node)
		}
	}
	return out
}

// SignificantTokens returns every direct non-trivia token child, in order.
func (n *Node) SignificantTokens() []token.Token {
	var out []token.Token
	for _, el := range n.Elements {
		if el.Token != nil && !el.Token.Kind.IsTrivia() {
			out = append(out, *el.Token)
		}
	}
	return out
}

// FindToken returns the first direct significant (non-trivia) token child
// of the given token.Kind, or nil.
func (n *Node) FindToken(kind token.Kind) *token.Token {
	for _, el := range n.Elements {
		if el.Token != nil && el.Token.Kind == kind {
			return el.Token
		}
	}
	return nil
}

// Text reconstructs the exact source slice covered by this node by
// concatenating every leaf token's text, including trivia. For any node in
// a well-formed tree this equals src[n.Span().Start:n.Span().End].
func (n *Node) Text() string {
	var out []byte
	var walk func(*Node)
	walk = func(m *Node) {
		for _, el := range m.Elements {
			if el.Token != nil {
				out = append(out, el.Token.Text...)
			} else {
				walk(el.Node)
			}
		}
	}
	walk(n)
	return string(out)
}
