package optimize

import (
	"math/big"
	"testing"

	"rue/lir"
)

func intConst(n int64) *lir.Const {
	return lir.AtomConst(lir.IntToAtom(big.NewInt(n)))
}

func TestFoldOpArithmetic(t *testing.T) {
	tests := []struct {
		name string
		op   string
		args []int64
		want int64
	}{
		{"add", "+", []int64{2, 3, 4}, 9},
		{"sub", "-", []int64{10, 3}, 7},
		{"mul", "*", []int64{3, 4}, 12},
		{"div", "/", []int64{9, 2}, 4},
		{"mod", "%", []int64{9, 2}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := make([]lir.Node, len(tt.args))
			for i, a := range tt.args {
				args[i] = &lir.Quote{Value: intConst(a)}
			}
			got, ok := foldOp(tt.op, args)
			if !ok {
				t.Fatalf("foldOp(%q) did not fold", tt.op)
			}
			q, ok := got.(*lir.Quote)
			if !ok {
				t.Fatalf("foldOp(%q) did not return a Quote", tt.op)
			}
			if gotN := lir.AtomToInt(q.Value.Atom); gotN.Cmp(big.NewInt(tt.want)) != 0 {
				t.Errorf("foldOp(%q) = %s, want %d", tt.op, gotN, tt.want)
			}
		})
	}
}

func TestSimplifyIfConstantCondition(t *testing.T) {
	n := &lir.If{
		Cond: &lir.Quote{Value: lir.TrueConst},
		Then: &lir.Quote{Value: intConst(1)},
		Else: &lir.Quote{Value: intConst(2)},
	}
	got, changed := simplifyOnce(n)
	if !changed {
		t.Fatalf("expected a constant-condition If to simplify")
	}
	q, ok := got.(*lir.Quote)
	if !ok || lir.AtomToInt(q.Value.Atom).Cmp(big.NewInt(1)) != 0 {
		t.Errorf("expected the Then branch (1), got %#v", got)
	}
}

func TestSimplifyIfIdenticalBranches(t *testing.T) {
	branch := &lir.EnvRef{Path: 3}
	n := &lir.If{Cond: &lir.EnvRef{Path: 2}, Then: branch, Else: &lir.EnvRef{Path: 3}}
	got, changed := simplifyOnce(n)
	if !changed {
		t.Fatalf("expected identical branches to collapse regardless of condition")
	}
	if ref, ok := got.(*lir.EnvRef); !ok || ref.Path != 3 {
		t.Errorf("expected EnvRef{3}, got %#v", got)
	}
}

func TestSimplifyFirstOfConsProjects(t *testing.T) {
	car := &lir.Quote{Value: intConst(1)}
	cdr := &lir.Quote{Value: intConst(2)}
	firstOp := &lir.Op{Name: "first", Args: []lir.Node{&lir.Cons{Car: car, Cdr: cdr}}}
	got, changed := simplifyOnce(firstOp)
	if !changed {
		t.Fatalf("expected first(cons(a,b)) to simplify")
	}
	if got != lir.Node(car) {
		t.Errorf("expected projection folding to yield car directly, got %#v", got)
	}
}

// TestSimplifyIdentityConsReconstruction is spec.md §4.7 transform 4:
// `(c (first x) (rest x)) -> x`. Unlike TestSimplifyFirstOfConsProjects
// (folding a first/rest projection of a literal cons), this rebuilds a
// pair from both of its own projections taken of the identical opaque
// operand, which only collapses via identityConsOperand, not foldOp.
func TestSimplifyIdentityConsReconstruction(t *testing.T) {
	x := &lir.Apply{Target: &lir.EnvRef{Path: 5}, Args: &lir.EnvRef{Path: 3}}
	n := &lir.Cons{
		Car: &lir.Op{Name: "first", Args: []lir.Node{x}},
		Cdr: &lir.Op{Name: "rest", Args: []lir.Node{x}},
	}
	got, changed := simplifyOnce(n)
	if !changed {
		t.Fatalf("expected (c (first x) (rest x)) to collapse to x")
	}
	if got != lir.Node(x) {
		t.Errorf("expected identity-cons elimination to yield x directly, got %#v", got)
	}
}

// TestSimplifyConsOfMismatchedProjectionsDoesNotCollapse guards
// identityConsOperand against firing on first(x)/rest(y) for different
// operands, which is not an identity at all. x and y are *lir.Apply
// nodes (not Cons/EnvRef) so neither projection folds or path-compresses
// on its own, isolating identityConsOperand's own guard.
func TestSimplifyConsOfMismatchedProjectionsDoesNotCollapse(t *testing.T) {
	x := &lir.Apply{Target: &lir.EnvRef{Path: 5}, Args: &lir.EnvRef{Path: 3}}
	y := &lir.Apply{Target: &lir.EnvRef{Path: 9}, Args: &lir.EnvRef{Path: 3}}
	n := &lir.Cons{
		Car: &lir.Op{Name: "first", Args: []lir.Node{x}},
		Cdr: &lir.Op{Name: "rest", Args: []lir.Node{y}},
	}
	got, changed := simplifyOnce(n)
	if changed {
		t.Errorf("did not expect (c (first x) (rest y)) to collapse, got %#v", got)
	}
	cons, ok := got.(*lir.Cons)
	if !ok {
		t.Fatalf("expected the Cons to survive unchanged, got %#v", got)
	}
	if cons.Car != lir.Node(n.Car) || cons.Cdr != lir.Node(n.Cdr) {
		t.Errorf("expected Car/Cdr untouched, got %#v", cons)
	}
}

func TestSimplifyPathCompression(t *testing.T) {
	restOp := &lir.Op{Name: "rest", Args: []lir.Node{&lir.EnvRef{Path: 5}}}
	got, changed := simplifyOnce(restOp)
	if !changed {
		t.Fatalf("expected rest(EnvRef) to path-compress")
	}
	ref, ok := got.(*lir.EnvRef)
	if !ok || ref.Path != lir.Path(5).Rest() {
		t.Errorf("expected EnvRef{%d}, got %#v", lir.Path(5).Rest(), got)
	}
}

func TestTreeShakeDropsUnreachableFunctions(t *testing.T) {
	prog := &lir.Program{
		Functions: []*lir.Function{
			{Name: "entry", Arity: 1, Body: &lir.Apply{
				Target: &lir.EnvRef{Path: funcEntryPath(2)},
				Args:   &lir.EnvRef{Path: 3},
			}},
			{Name: "unreachable", Arity: 0, Body: &lir.Quote{Value: lir.NilConst}},
			{Name: "helper", Arity: 1, Body: &lir.Quote{Value: lir.NilConst}},
		},
		Entry: 0,
	}

	out := treeShake(prog)
	if len(out.Functions) != 2 {
		t.Fatalf("expected 2 reachable functions, got %d: %#v", len(out.Functions), out.Functions)
	}
	names := map[string]bool{}
	for _, fn := range out.Functions {
		names[fn.Name] = true
	}
	if !names["entry"] || !names["helper"] {
		t.Errorf("expected entry and helper to survive tree-shaking, got %v", names)
	}
	if names["unreachable"] {
		t.Errorf("expected unreachable to be dropped")
	}
}

func TestOptimizeReachesFixedPoint(t *testing.T) {
	prog := &lir.Program{
		Functions: []*lir.Function{
			{Name: "entry", Arity: 0, Body: &lir.Op{
				Name: "first",
				Args: []lir.Node{&lir.Cons{Car: &lir.Quote{Value: intConst(9)}, Cdr: &lir.Quote{Value: intConst(1)}}},
			}},
		},
		Entry: 0,
	}
	out, bag := Optimize(prog)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Diagnostics())
	}
	q, ok := out.Functions[0].Body.(*lir.Quote)
	if !ok {
		t.Fatalf("expected entry body to fold to a constant, got %#v", out.Functions[0].Body)
	}
	if got := lir.AtomToInt(q.Value.Atom); got.Cmp(big.NewInt(9)) != 0 {
		t.Errorf("expected folded value 9, got %s", got)
	}
}
