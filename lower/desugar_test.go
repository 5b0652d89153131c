package lower

import (
	"math/big"
	"testing"

	"rue/hir"
)

func intLit(n int64) *hir.IntLit {
	return &hir.IntLit{Value: big.NewInt(n)}
}

func TestDesugarBlockNoStatements(t *testing.T) {
	b := &hir.Block{}
	got := desugarBlock(b)
	if _, ok := got.(*hir.NilLit); !ok {
		t.Errorf("expected NilLit for an empty block, got %#v", got)
	}
}

func TestDesugarBlockPlainTail(t *testing.T) {
	tail := intLit(1)
	b := &hir.Block{Tail: tail}
	got := desugarBlock(b)
	if got != hir.Node(tail) {
		t.Errorf("expected the tail node itself, got %#v", got)
	}
}

func TestDesugarMidBlockReturnSplicesContinuation(t *testing.T) {
	// if cond { return 1; } 2
	ifStmt := &hir.If{
		Cond: &hir.NilLit{},
		Then: &hir.Return{Value: intLit(1)},
	}
	b := &hir.Block{Stmts: []hir.Node{ifStmt}, Tail: intLit(2)}

	got := desugarBlock(b)
	ifNode, ok := got.(*hir.If)
	if !ok {
		t.Fatalf("expected desugaring to produce an If, got %#v", got)
	}
	if _, ok := ifNode.Then.(*hir.Return); !ok {
		t.Errorf("expected the Then branch to remain the diverging Return, got %#v", ifNode.Then)
	}
	elseLit, ok := ifNode.Else.(*hir.IntLit)
	if !ok || elseLit.Value.Int64() != 2 {
		t.Errorf("expected the Else branch to be the spliced continuation (2), got %#v", ifNode.Else)
	}
}

func TestDesugarLetChainsIntoNestedLet(t *testing.T) {
	let := &hir.Let{Symbol: nil, Init: intLit(1)}
	b := &hir.Block{Stmts: []hir.Node{let}, Tail: intLit(2)}
	got := desugarBlock(b)
	n, ok := got.(*hir.Let)
	if !ok {
		t.Fatalf("expected a Let, got %#v", got)
	}
	if _, ok := n.Body.(*hir.IntLit); !ok {
		t.Errorf("expected the Let's Body to be the tail, got %#v", n.Body)
	}
}

func TestIsDivergent(t *testing.T) {
	tests := []struct {
		name string
		n    hir.Node
		want bool
	}{
		{"return", &hir.Return{}, true},
		{"if without else", &hir.If{Then: &hir.Return{}}, false},
		{"if both diverge", &hir.If{Then: &hir.Return{}, Else: &hir.Return{}}, true},
		{"plain literal", intLit(1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isDivergent(tt.n); got != tt.want {
				t.Errorf("isDivergent(%#v) = %v, want %v", tt.n, got, tt.want)
			}
		})
	}
}
