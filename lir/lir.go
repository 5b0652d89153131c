// Package lir is Rue's low-level IR: the minimal cons-cell calculus that
// mirrors CLVM directly (spec.md §3, §4.6) — quoted atoms, environment
// path references, `if`, cons, opcode application, and function
// application. Every name has already been erased by lower/; the only
// addressing left is positional, via Path.
package lir

// Path is CLVM's own environment-addressing convention: the root
// argument sits at path 1; from any path p, `first(p)` is at path 2p and
// `rest(p)` is at path 2p+1 (GLOSSARY "Environment path"). This was an
// open design choice (spec.md §9) — using the wire convention itself
// rather than inventing a bitstring type keeps Path a plain int64 (see
// DESIGN.md).
type Path int64

// Root is the path to the whole environment argument a compiled function
// is applied to.
const Root Path = 1

func (p Path) First() Path { return p * 2 }
func (p Path) Rest() Path  { return p*2 + 1 }

// Const is a fully known, compile-time constant s-expression: either a
// raw atom or a cons pair of two consts. Quote nodes carry one of these
// directly, so constant substructure never needs its own IR node.
type Const struct {
	IsPair bool
	Atom   []byte
	Left   *Const
	Right  *Const
}

// NilConst is the empty list / zero-length atom — CLVM's single
// "falsy" value and Rue's Nil type.
var NilConst = &Const{Atom: []byte{}}

// TrueConst is the canonical CLVM truthy atom.
var TrueConst = &Const{Atom: []byte{1}}

func AtomConst(b []byte) *Const   { return &Const{Atom: b} }
func PairConst(l, r *Const) *Const { return &Const{IsPair: true, Left: l, Right: r} }

func BoolConst(b bool) *Const {
	if b {
		return TrueConst
	}
	return NilConst
}

// Node is any LIR node.
type Node interface {
	Accept(v Visitor) any
}

type Visitor interface {
	VisitQuote(n *Quote) any
	VisitEnvRef(n *EnvRef) any
	VisitIf(n *If) any
	VisitCons(n *Cons) any
	VisitOp(n *Op) any
	VisitApply(n *Apply) any
}

// Quote is a compile-time-known constant, emitted as CLVM `(q . const)`.
type Quote struct {
	Value *Const
}

func (n *Quote) Accept(v Visitor) any { return v.VisitQuote(n) }

// EnvRef addresses a position in the running environment cons tree.
type EnvRef struct {
	Path Path
}

func (n *EnvRef) Accept(v Visitor) any { return v.VisitEnvRef(n) }

// If lowers to CLVM `(a (i COND (q . THEN) (q . ELSE)) 1)` so only the
// taken branch is evaluated (spec.md §4.6).
type If struct {
	Cond, Then, Else Node
}

func (n *If) Accept(v Visitor) any { return v.VisitIf(n) }

// Cons builds one pair, `(c CAR CDR)`.
type Cons struct {
	Car, Cdr Node
}

func (n *Cons) Accept(v Visitor) any { return v.VisitCons(n) }

// Op applies a built-in CLVM opcode (spec.md §4.6 "Builtins are mapped
// directly to CLVM opcodes"); the concrete opcode numbering lives in
// clvm/.
type Op struct {
	Name string
	Args []Node
}

func (n *Op) Accept(v Visitor) any { return v.VisitOp(n) }

// Apply invokes a compiled function: `(a TARGET ARGS)`, where Target
// addresses the callee's quoted body (usually via the shared function
// table — DESIGN.md's `(FUNCS . ARGS)` convention) and Args builds the
// callee's fresh environment.
type Apply struct {
	Target, Args Node
}

func (n *Apply) Accept(v Visitor) any { return v.VisitApply(n) }

// Function is one emitted function: a LIR body addressed through the
// shared FUNCS table, plus a Used flag for tree-shaking (spec.md §3
// "Program").
type Function struct {
	Name   string
	Arity  int
	Body   Node
	Used   bool
}

// Program is the complete set of functions lower/ produces, with the
// entry point's index into Functions.
type Program struct {
	Functions []*Function
	Entry     int
}
