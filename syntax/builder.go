package syntax

import "rue/token"

// Builder assembles a green tree from a flat event stream: StartNode,
// Token, FinishNode. This mirrors the CST-builder contract in spec.md
// §4.2 ("a builder that emits green-tree events") rather than building
// Node values by hand in the parser.
type Builder struct {
	stack []frame
}

type frame struct {
	kind     Kind
	elements []Element
}

func NewBuilder() *Builder {
	return &Builder{}
}

// StartNode opens a new node of the given kind; subsequent Token/StartNode
// calls add children to it until the matching FinishNode.
func (b *Builder) StartNode(kind Kind) {
	b.stack = append(b.stack, frame{kind: kind})
}

// Token appends a leaf token (trivia or significant) to the node currently
// open at the top of the stack.
func (b *Builder) Token(tok token.Token) {
	top := len(b.stack) - 1
	t := tok
	b.stack[top].elements = append(b.stack[top].elements, Element{Token: &t})
}

// FinishNode closes the most recently opened node, attaches it as a child
// of its parent (if any), and returns it. Calling FinishNode on the root
// frame returns the completed tree.
func (b *Builder) FinishNode() *Node {
	top := len(b.stack) - 1
	f := b.stack[top]
	b.stack = b.stack[:top]

	node := &Node{Kind: f.kind, Elements: f.elements}
	if len(b.stack) > 0 {
		parent := len(b.stack) - 1
		b.stack[parent].elements = append(b.stack[parent].elements, Element{Node: node})
	}
	return node
}

// Checkpoint marks a point in the currently open node's children that a
// later StartNodeAt can wrap retroactively. Needed because whether a
// trailing block expression becomes an ExprStmt is only known after the
// expression itself has already been parsed (spec.md §4.2 Block grammar:
// `Statement* Expr?`).
type Checkpoint int

func (b *Builder) Checkpoint() Checkpoint {
	top := len(b.stack) - 1
	return Checkpoint(len(b.stack[top].elements))
}

// StartNodeAt wraps every element pushed since checkpoint into a new node
// of the given kind, as if StartNode(kind) had been called at that point.
func (b *Builder) StartNodeAt(cp Checkpoint, kind Kind) {
	top := len(b.stack) - 1
	elems := b.stack[top].elements[cp:]
	kept := make([]Element, len(elems))
	copy(kept, elems)
	b.stack[top].elements = b.stack[top].elements[:cp]
	b.stack = append(b.stack, frame{kind: kind, elements: kept})
}

// MarkRecovered flags the node most recently finished (or use directly
// after StartNode(ErrorNode) + FinishNode) as an error-recovery node. The
// caller passes the node returned by FinishNode.
func MarkRecovered(n *Node) *Node {
	n.Recovered = true
	return n
}

// Depth reports how many nodes are currently open.
func (b *Builder) Depth() int {
	return len(b.stack)
}
