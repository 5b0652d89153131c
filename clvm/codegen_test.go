package clvm

import (
	"testing"

	"rue/lir"
)

// constEqual is a test-local helper that compares two constant trees
// structurally, to check codegen output.
func constEqual(a, b *lir.Const) bool {
	if a.IsPair != b.IsPair {
		return false
	}
	if a.IsPair {
		return constEqual(a.Left, b.Left) && constEqual(a.Right, b.Right)
	}
	return string(a.Atom) == string(b.Atom)
}

func TestCodegenWrapsEntryInApplyOverFuncsList(t *testing.T) {
	prog := &lir.Program{
		Functions: []*lir.Function{
			{Name: "entry", Arity: 1, Body: &lir.Quote{Value: lir.NilConst}},
		},
		Entry: 0,
	}

	top, bag := Codegen(prog)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Diagnostics())
	}
	if !top.IsPair {
		t.Fatalf("expected top-level program to be a pair, got atom %v", top.Atom)
	}
	// (a (q . ENTRY_BODY) (c (q . FUNCS) 1)): the operator atom is opApply.
	if !constEqual(top.Left, atomInt(opApply)) {
		t.Errorf("expected outermost operator to be opApply, got %v", top.Left)
	}
}

func TestCodegenRejectsMissingEntry(t *testing.T) {
	prog := &lir.Program{Functions: nil, Entry: -1}
	_, bag := Codegen(prog)
	if !bag.HasErrors() {
		t.Errorf("expected an InternalError diagnostic for a program with no entry function")
	}
}

func TestCodegenUnknownOpcodeRaisesInternalError(t *testing.T) {
	prog := &lir.Program{
		Functions: []*lir.Function{
			{Name: "entry", Arity: 0, Body: &lir.Op{Name: "not-a-real-opcode"}},
		},
		Entry: 0,
	}
	_, bag := Codegen(prog)
	if !bag.HasErrors() {
		t.Errorf("expected an InternalError diagnostic for an unregistered opcode name")
	}
}
