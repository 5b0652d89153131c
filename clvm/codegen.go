package clvm

import (
	"fmt"
	"math/big"

	"rue/diag"
	"rue/lir"
)

func atomInt(n int64) *lir.Const {
	return lir.AtomConst(lir.IntToAtom(big.NewInt(n)))
}

// opList builds the proper list `(op args...)` from an opcode number and a
// slice of already-codegen'd arguments.
func opList(op int64, args ...*lir.Const) *lir.Const {
	tail := lir.NilConst
	for i := len(args) - 1; i >= 0; i-- {
		tail = lir.PairConst(args[i], tail)
	}
	return lir.PairConst(atomInt(op), tail)
}

// quoteConst wraps v as CLVM `(q . v)`.
func quoteConst(v *lir.Const) *lir.Const {
	return lir.PairConst(atomInt(opQuote), v)
}

// node turns one LIR node into the literal CLVM s-expression that
// represents it as executable code (spec.md §4.6/§4.8) — not an
// evaluation, a translation: the result is data shaped exactly like the
// CLVM program that would perform the equivalent computation when run.
func node(n lir.Node, bag *diag.Bag) *lir.Const {
	switch v := n.(type) {
	case *lir.Quote:
		return quoteConst(v.Value)
	case *lir.EnvRef:
		return atomInt(int64(v.Path))
	case *lir.If:
		cond := node(v.Cond, bag)
		then := quoteConst(node(v.Then, bag))
		els := quoteConst(node(v.Else, bag))
		iExpr := opList(opIf, cond, then, els)
		return opList(opApply, iExpr, atomInt(1))
	case *lir.Cons:
		return opList(opCons, node(v.Car, bag), node(v.Cdr, bag))
	case *lir.Op:
		code, ok := opcodeByName[v.Name]
		if !ok {
			bag.Add(diag.InternalError{Message: fmt.Sprintf("clvm: no opcode registered for %q", v.Name)})
			code = 0
		}
		args := make([]*lir.Const, len(v.Args))
		for i, a := range v.Args {
			args[i] = node(a, bag)
		}
		return opList(code, args...)
	case *lir.Apply:
		return opList(opApply, node(v.Target, bag), node(v.Args, bag))
	default:
		bag.Add(diag.InternalError{Message: fmt.Sprintf("clvm: unhandled LIR node %T", n)})
		return lir.NilConst
	}
}

// Codegen builds the final CLVM program for prog: a constant FUNCS list
// (every compiled function's body, addressable through the shared
// `(FUNCS . ARGS)` environment convention — see DESIGN.md) consed onto
// whatever solution the program is run with, with the entry function's
// body applied against that environment.
func Codegen(prog *lir.Program) (*lir.Const, *diag.Bag) {
	bag := diag.NewBag()
	if prog.Entry < 0 || prog.Entry >= len(prog.Functions) {
		bag.Add(diag.InternalError{Message: "clvm: program has no valid entry function"})
		return lir.NilConst, bag
	}

	var funcsList *lir.Const = lir.NilConst
	for i := len(prog.Functions) - 1; i >= 0; i-- {
		funcsList = lir.PairConst(node(prog.Functions[i].Body, bag), funcsList)
	}

	entryBody := node(prog.Functions[prog.Entry].Body, bag)
	// outerArgs = (c (q . FUNCS) 1): at the top level, `1` is the whole
	// environment the final program is run against, i.e. the caller's
	// solution — so evaluating outerArgs yields (FUNCS . solution).
	outerArgs := opList(opCons, quoteConst(funcsList), atomInt(1))
	top := opList(opApply, quoteConst(entryBody), outerArgs)
	return top, bag
}
