// Package optimize applies spec.md §4.7's five LIR-to-LIR rewrites —
// tree-shaking, constant folding, if-simplification, identity-cons
// elimination, and path compression — to a fixed point (capped, per
// spec.md §9, so a rewrite bug shows up as a diagnostic instead of a
// hang). There's no teacher analogue (nilan has no optimizer); this is
// grounded directly in spec.md §4.7 and in lir.Path's own arithmetic,
// which is what makes path compression a pure rewrite rather than a
// symbolic analysis.
package optimize

import (
	"crypto/sha256"
	"fmt"
	"math/big"

	"rue/diag"
	"rue/lir"
)

const maxFixedPointIterations = 32

// Optimize rewrites prog in place (functionally — every pass returns
// fresh nodes) and returns the result plus any diagnostics raised when
// a function's rewrite loop failed to settle.
func Optimize(prog *lir.Program) (*lir.Program, *diag.Bag) {
	bag := diag.NewBag()
	shaken := treeShake(prog)

	for _, fn := range shaken.Functions {
		body := fn.Body
		settled := false
		for i := 0; i < maxFixedPointIterations; i++ {
			next, changed := simplifyOnce(body)
			body = next
			if !changed {
				settled = true
				break
			}
		}
		if !settled {
			bag.Add(diag.InternalError{Message: fmt.Sprintf("optimizer did not reach a fixed point for function %q within %d iterations", fn.Name, maxFixedPointIterations)})
		}
		fn.Body = body
	}

	return shaken, bag
}

// funcEntryPath mirrors lower.funcEntryPath's formula; duplicated here
// (rather than exported from lower/) since tree-shaking operates purely
// on the already-lowered Path arithmetic, with no need for the rest of
// lower's state.
func funcEntryPath(j int) lir.Path {
	p := lir.Path(2)
	for k := 0; k < j; k++ {
		p = p.Rest()
	}
	return p.First()
}

// treeShake removes functions unreachable from the entry point and
// compacts the remaining function table, rewriting every call site's
// EnvRef to the new, compacted index (spec.md §4.7 "tree-shaking").
func treeShake(prog *lir.Program) *lir.Program {
	if prog.Entry < 0 {
		return prog
	}
	pathToIdx := make(map[lir.Path]int, len(prog.Functions))
	for i := range prog.Functions {
		pathToIdx[funcEntryPath(i)] = i
	}

	reachable := map[int]bool{}
	var visit func(idx int)
	visit = func(idx int) {
		if reachable[idx] {
			return
		}
		reachable[idx] = true
		walkCallTargets(prog.Functions[idx].Body, func(p lir.Path) {
			if j, ok := pathToIdx[p]; ok {
				visit(j)
			}
		})
	}
	visit(prog.Entry)

	kept := make([]int, 0, len(reachable))
	for i := range prog.Functions {
		if reachable[i] {
			kept = append(kept, i)
		}
	}

	remap := make(map[lir.Path]lir.Path, len(kept))
	for newIdx, oldIdx := range kept {
		remap[funcEntryPath(oldIdx)] = funcEntryPath(newIdx)
	}

	out := &lir.Program{Entry: -1}
	for newIdx, oldIdx := range kept {
		fn := prog.Functions[oldIdx]
		out.Functions = append(out.Functions, &lir.Function{
			Name:  fn.Name,
			Arity: fn.Arity,
			Body:  remapPaths(fn.Body, remap),
			Used:  true,
		})
		if oldIdx == prog.Entry {
			out.Entry = newIdx
		}
	}
	return out
}

// walkCallTargets invokes fn for every Apply target path reachable
// within n, to discover which function-table entries a function body
// calls into.
func walkCallTargets(n lir.Node, fn func(lir.Path)) {
	switch v := n.(type) {
	case *lir.Apply:
		if ref, ok := v.Target.(*lir.EnvRef); ok {
			fn(ref.Path)
		}
		walkCallTargets(v.Target, fn)
		walkCallTargets(v.Args, fn)
	case *lir.If:
		walkCallTargets(v.Cond, fn)
		walkCallTargets(v.Then, fn)
		walkCallTargets(v.Else, fn)
	case *lir.Cons:
		walkCallTargets(v.Car, fn)
		walkCallTargets(v.Cdr, fn)
	case *lir.Op:
		for _, a := range v.Args {
			walkCallTargets(a, fn)
		}
	}
}

func remapPaths(n lir.Node, remap map[lir.Path]lir.Path) lir.Node {
	switch v := n.(type) {
	case *lir.Quote:
		return v
	case *lir.EnvRef:
		if np, ok := remap[v.Path]; ok {
			return &lir.EnvRef{Path: np}
		}
		return v
	case *lir.If:
		return &lir.If{Cond: remapPaths(v.Cond, remap), Then: remapPaths(v.Then, remap), Else: remapPaths(v.Else, remap)}
	case *lir.Cons:
		return &lir.Cons{Car: remapPaths(v.Car, remap), Cdr: remapPaths(v.Cdr, remap)}
	case *lir.Op:
		args := make([]lir.Node, len(v.Args))
		for i, a := range v.Args {
			args[i] = remapPaths(a, remap)
		}
		return &lir.Op{Name: v.Name, Args: args}
	case *lir.Apply:
		return &lir.Apply{Target: remapPaths(v.Target, remap), Args: remapPaths(v.Args, remap)}
	default:
		return n
	}
}

// simplifyOnce applies one bottom-up pass of constant folding,
// if-simplification, identity-cons elimination, and path compression,
// reporting whether anything in the subtree changed.
func simplifyOnce(n lir.Node) (lir.Node, bool) {
	switch v := n.(type) {
	case *lir.Quote:
		return v, false
	case *lir.EnvRef:
		return v, false
	case *lir.If:
		cond, c1 := simplifyOnce(v.Cond)
		then, c2 := simplifyOnce(v.Then)
		els, c3 := simplifyOnce(v.Else)
		if q, ok := cond.(*lir.Quote); ok {
			if isTruthy(q.Value) {
				return then, true
			}
			return els, true
		}
		if nodeEqual(then, els) {
			return then, true
		}
		if c1 || c2 || c3 {
			return &lir.If{Cond: cond, Then: then, Else: els}, true
		}
		return v, false
	case *lir.Cons:
		car, c1 := simplifyOnce(v.Car)
		cdr, c2 := simplifyOnce(v.Cdr)
		if x, ok := identityConsOperand(car, cdr); ok {
			return x, true
		}
		if c1 || c2 {
			return &lir.Cons{Car: car, Cdr: cdr}, true
		}
		return v, false
	case *lir.Op:
		args := make([]lir.Node, len(v.Args))
		anyChanged := false
		for i, a := range v.Args {
			na, c := simplifyOnce(a)
			args[i] = na
			anyChanged = anyChanged || c
		}
		if (v.Name == "first" || v.Name == "rest") && len(args) == 1 {
			switch a := args[0].(type) {
			case *lir.Cons:
				if v.Name == "first" {
					return a.Car, true
				}
				return a.Cdr, true
			case *lir.EnvRef:
				if v.Name == "first" {
					return &lir.EnvRef{Path: a.Path.First()}, true
				}
				return &lir.EnvRef{Path: a.Path.Rest()}, true
			}
		}
		if folded, ok := foldOp(v.Name, args); ok {
			return folded, true
		}
		if anyChanged {
			return &lir.Op{Name: v.Name, Args: args}, true
		}
		return v, false
	case *lir.Apply:
		t, c1 := simplifyOnce(v.Target)
		a, c2 := simplifyOnce(v.Args)
		if c1 || c2 {
			return &lir.Apply{Target: t, Args: a}, true
		}
		return v, false
	default:
		return n, false
	}
}

// identityConsOperand recognizes spec.md §4.7 transform 4, `(c (first x)
// (rest x)) -> x`, and returns the shared x. This is only reached once x
// is known pair-shaped: `first`/`rest` applied to a non-pair already
// traps in CLVM, so a program that takes both first(x) and rest(x) of
// the identical operand only does so where x is guaranteed a proper
// pair; reconstructing x from its own projections is then a pure no-op.
func identityConsOperand(car, cdr lir.Node) (lir.Node, bool) {
	firstOp, ok := car.(*lir.Op)
	if !ok || firstOp.Name != "first" || len(firstOp.Args) != 1 {
		return nil, false
	}
	restOp, ok := cdr.(*lir.Op)
	if !ok || restOp.Name != "rest" || len(restOp.Args) != 1 {
		return nil, false
	}
	if !nodeEqual(firstOp.Args[0], restOp.Args[0]) {
		return nil, false
	}
	return firstOp.Args[0], true
}

// isTruthy mirrors CLVM's own truthiness: only the empty atom is
// falsy; every pair and every nonempty atom is truthy.
func isTruthy(c *lir.Const) bool {
	return c.IsPair || len(c.Atom) > 0
}

// nodeEqual is a plain structural comparison, used to collapse an `if`
// whose branches are already identical regardless of its condition
// (pure language, so the condition's side effects are never lost).
func nodeEqual(a, b lir.Node) bool {
	switch x := a.(type) {
	case *lir.Quote:
		y, ok := b.(*lir.Quote)
		return ok && constEqual(x.Value, y.Value)
	case *lir.EnvRef:
		y, ok := b.(*lir.EnvRef)
		return ok && x.Path == y.Path
	case *lir.If:
		y, ok := b.(*lir.If)
		return ok && nodeEqual(x.Cond, y.Cond) && nodeEqual(x.Then, y.Then) && nodeEqual(x.Else, y.Else)
	case *lir.Cons:
		y, ok := b.(*lir.Cons)
		return ok && nodeEqual(x.Car, y.Car) && nodeEqual(x.Cdr, y.Cdr)
	case *lir.Op:
		y, ok := b.(*lir.Op)
		if !ok || x.Name != y.Name || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !nodeEqual(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case *lir.Apply:
		y, ok := b.(*lir.Apply)
		return ok && nodeEqual(x.Target, y.Target) && nodeEqual(x.Args, y.Args)
	default:
		return false
	}
}

func constEqual(a, b *lir.Const) bool {
	if a.IsPair != b.IsPair {
		return false
	}
	if a.IsPair {
		return constEqual(a.Left, b.Left) && constEqual(a.Right, b.Right)
	}
	return string(a.Atom) == string(b.Atom)
}

// foldOp evaluates an opcode application at compile time when every
// argument is already a constant atom (spec.md §4.7 "constant
// folding"). Pair-shaped constants and any opcode this function doesn't
// recognize are left alone.
func foldOp(name string, args []lir.Node) (lir.Node, bool) {
	atoms := make([][]byte, len(args))
	for i, a := range args {
		q, ok := a.(*lir.Quote)
		if !ok || q.Value.IsPair {
			return nil, false
		}
		atoms[i] = q.Value.Atom
	}
	switch name {
	case "+", "-", "*":
		if len(atoms) == 0 {
			return nil, false
		}
		acc := lir.AtomToInt(atoms[0])
		for _, a := range atoms[1:] {
			n := lir.AtomToInt(a)
			switch name {
			case "+":
				acc.Add(acc, n)
			case "-":
				acc.Sub(acc, n)
			case "*":
				acc.Mul(acc, n)
			}
		}
		return &lir.Quote{Value: lir.AtomConst(lir.IntToAtom(acc))}, true
	case "/":
		if len(atoms) != 2 {
			return nil, false
		}
		b := lir.AtomToInt(atoms[1])
		if b.Sign() == 0 {
			return nil, false
		}
		q := new(big.Int).Div(lir.AtomToInt(atoms[0]), b)
		return &lir.Quote{Value: lir.AtomConst(lir.IntToAtom(q))}, true
	case "%":
		if len(atoms) != 2 {
			return nil, false
		}
		b := lir.AtomToInt(atoms[1])
		if b.Sign() == 0 {
			return nil, false
		}
		m := new(big.Int).Mod(lir.AtomToInt(atoms[0]), b)
		return &lir.Quote{Value: lir.AtomConst(lir.IntToAtom(m))}, true
	case "=":
		if len(atoms) != 2 {
			return nil, false
		}
		return &lir.Quote{Value: lir.BoolConst(string(atoms[0]) == string(atoms[1]))}, true
	case ">":
		if len(atoms) != 2 {
			return nil, false
		}
		cmp := lir.AtomToInt(atoms[0]).Cmp(lir.AtomToInt(atoms[1]))
		return &lir.Quote{Value: lir.BoolConst(cmp > 0)}, true
	case "concat":
		var buf []byte
		for _, a := range atoms {
			buf = append(buf, a...)
		}
		return &lir.Quote{Value: lir.AtomConst(buf)}, true
	case "sha256":
		var buf []byte
		for _, a := range atoms {
			buf = append(buf, a...)
		}
		sum := sha256.Sum256(buf)
		return &lir.Quote{Value: lir.AtomConst(sum[:])}, true
	case "listp":
		return &lir.Quote{Value: lir.BoolConst(false)}, true // args[0] is already a non-pair Quote
	case "strlen":
		return &lir.Quote{Value: lir.AtomConst(lir.IntToAtom(big.NewInt(int64(len(atoms[0])))))}, true
	default:
		return nil, false
	}
}
