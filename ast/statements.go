package ast

import "rue/syntax"

type Block struct {
	Node *syntax.Node
}

func isStmtKind(k syntax.Kind) bool {
	return k == syntax.LetStmt || k == syntax.ReturnStmt || k == syntax.ExprStmt
}

// Statements returns the block's statements in source order (everything
// but a possible trailing tail expression).
func (b Block) Statements() []Stmt {
	var out []Stmt
	for _, c := range b.Node.Children() {
		if isStmtKind(c.Kind) {
			out = append(out, Stmt{Node: c})
		}
	}
	return out
}

// Tail returns the block's trailing expression — the value the block
// produces — when the last child isn't a statement (spec.md §4.2 grammar:
// `Block := '{' Statement* Expr? '}'`).
func (b Block) Tail() (Expr, bool) {
	children := b.Node.Children()
	if len(children) == 0 {
		return Expr{}, false
	}
	last := children[len(children)-1]
	if isStmtKind(last.Kind) {
		return Expr{}, false
	}
	return Expr{Node: last}, true
}

type Stmt struct {
	Node *syntax.Node
}

func (s Stmt) AsLet() (LetStmt, bool) {
	if s.Node.Kind != syntax.LetStmt {
		return LetStmt{}, false
	}
	return LetStmt{Node: s.Node}, true
}

func (s Stmt) AsReturn() (ReturnStmt, bool) {
	if s.Node.Kind != syntax.ReturnStmt {
		return ReturnStmt{}, false
	}
	return ReturnStmt{Node: s.Node}, true
}

// AsExpr unwraps an ExprStmt to the expression it wraps.
func (s Stmt) AsExpr() (Expr, bool) {
	if s.Node.Kind != syntax.ExprStmt {
		return Expr{}, false
	}
	cs := s.Node.Children()
	if len(cs) == 0 {
		return Expr{}, false
	}
	return Expr{Node: cs[0]}, true
}

type LetStmt struct {
	Node *syntax.Node
}

func (l LetStmt) Name() (Identifier, bool) { return identOf(l.Node) }

func (l LetStmt) Type() (TypeExpr, bool) {
	tr := l.Node.FindChild(syntax.TypeRef)
	if tr == nil {
		return TypeExpr{}, false
	}
	return TypeExpr{Node: tr}, true
}

// Init returns the binding's initializer expression: the only Node child
// that isn't the optional type annotation.
func (l LetStmt) Init() (Expr, bool) {
	for _, c := range l.Node.Children() {
		if c.Kind != syntax.TypeRef {
			return Expr{Node: c}, true
		}
	}
	return Expr{}, false
}

type ReturnStmt struct {
	Node *syntax.Node
}

func (r ReturnStmt) Value() (Expr, bool) {
	cs := r.Node.Children()
	if len(cs) == 0 {
		return Expr{}, false
	}
	return Expr{Node: cs[0]}, true
}
