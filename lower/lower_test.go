package lower

import (
	"math/big"
	"testing"

	"rue/hir"
	"rue/lir"
	"rue/symtab"
	"rue/types"
)

func makeParam(id int, name string) *symtab.Symbol {
	return &symtab.Symbol{ID: id, Name: name, Kind: symtab.SymParam, Type: types.Int}
}

func makeFuncSymbol(id int, name string) *symtab.Symbol {
	return &symtab.Symbol{ID: id, Name: name, Kind: symtab.SymFunc}
}

func TestLowerSimpleFunctionAddressesParamsByPath(t *testing.T) {
	a, b := makeParam(1, "a"), makeParam(2, "b")
	fn := &hir.Function{
		Symbol:     makeFuncSymbol(0, "add"),
		Params:     []*symtab.Symbol{a, b},
		ReturnType: types.Int,
		Body: &hir.Block{
			Tail: &hir.BuiltinCall{Name: "+", Args: []hir.Node{
				&hir.Ref{Symbol: a},
				&hir.Ref{Symbol: b},
			}},
		},
	}
	prog := &hir.Program{Functions: []*hir.Function{fn}, Entry: fn}

	out, bag := Lower(prog)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Diagnostics())
	}
	if out.Entry != 0 {
		t.Fatalf("expected entry index 0, got %d", out.Entry)
	}
	if out.Functions[0].Arity != 2 {
		t.Fatalf("expected arity 2, got %d", out.Functions[0].Arity)
	}
	op, ok := out.Functions[0].Body.(*lir.Op)
	if !ok {
		t.Fatalf("expected the body to lower to an Op, got %#v", out.Functions[0].Body)
	}
	if op.Name != "+" {
		t.Errorf("expected opcode +, got %q", op.Name)
	}
	if len(op.Args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(op.Args))
	}
	ref0, ok0 := op.Args[0].(*lir.EnvRef)
	ref1, ok1 := op.Args[1].(*lir.EnvRef)
	if !ok0 || !ok1 {
		t.Fatalf("expected both args to be EnvRefs, got %#v, %#v", op.Args[0], op.Args[1])
	}
	if ref0.Path == ref1.Path {
		t.Errorf("expected distinct parameter paths, got the same path %d for both", ref0.Path)
	}
}

func TestLowerCallUsesFunctionTablePath(t *testing.T) {
	calleeSym := makeFuncSymbol(1, "helper")
	callee := &hir.Function{
		Symbol: calleeSym,
		Body:   &hir.Block{Tail: &hir.NilLit{}},
	}
	callerSym := makeFuncSymbol(0, "main")
	caller := &hir.Function{
		Symbol: callerSym,
		Body: &hir.Block{
			Tail: &hir.Call{Callee: calleeSym, Args: nil},
		},
	}
	prog := &hir.Program{Functions: []*hir.Function{caller, callee}, Entry: caller}

	out, bag := Lower(prog)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Diagnostics())
	}
	apply, ok := out.Functions[0].Body.(*lir.Apply)
	if !ok {
		t.Fatalf("expected the caller's body to lower to an Apply, got %#v", out.Functions[0].Body)
	}
	target, ok := apply.Target.(*lir.EnvRef)
	if !ok {
		t.Fatalf("expected the Apply target to be an EnvRef, got %#v", apply.Target)
	}
	if target.Path != funcEntryPath(1) {
		t.Errorf("expected the call target to address function index 1, got path %d (want %d)", target.Path, funcEntryPath(1))
	}
}

func TestLowerSynthesizesTreeHashHelperOnlyWhenUsed(t *testing.T) {
	fn := &hir.Function{
		Symbol: makeFuncSymbol(0, "main"),
		Body: &hir.Block{
			Tail: &hir.BuiltinCall{Name: "sha256_tree", Args: []hir.Node{&hir.NilLit{}}},
		},
	}
	prog := &hir.Program{Functions: []*hir.Function{fn}, Entry: fn}

	out, bag := Lower(prog)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Diagnostics())
	}
	if len(out.Functions) != 2 {
		t.Fatalf("expected the tree-hash helper to be appended, got %d functions", len(out.Functions))
	}
	if out.Functions[1].Name != "$sha256_tree" {
		t.Errorf("expected the second function to be the tree-hash helper, got %q", out.Functions[1].Name)
	}
}

func TestLowerOmitsHelpersWhenUnused(t *testing.T) {
	fn := &hir.Function{
		Symbol: makeFuncSymbol(0, "main"),
		Body:   &hir.Block{Tail: &hir.IntLit{Value: big.NewInt(1)}},
	}
	prog := &hir.Program{Functions: []*hir.Function{fn}, Entry: fn}

	out, bag := Lower(prog)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Diagnostics())
	}
	if len(out.Functions) != 1 {
		t.Errorf("expected no synthetic helpers to be appended, got %d functions", len(out.Functions))
	}
}
