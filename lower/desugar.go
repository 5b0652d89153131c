package lower

import "rue/hir"

// desugarBlock rewrites a block's flat statement list (spec.md §4.5's
// sequential Let/expression-statement/Return shape) into one nested
// expression tree with no statement sequencing left: CLVM has no
// imperative control flow, so a mid-block `return` has to become a
// value produced inside a narrower `if`, not an early exit. This is the
// classic return-elimination transform, applied once per function body
// before any LIR lowering happens.
func desugarBlock(b *hir.Block) hir.Node {
	return desugarSeq(b.Stmts, b.Tail)
}

// desugarSeq folds a statement list plus an optional tail value into one
// expression: Let becomes a nested hir.Let binding the rest of the
// sequence as its Body, Return short-circuits (everything after it is
// unreachable and dropped), a pure discarded expression statement is
// simply skipped (Rue has no observable side effects short of a
// function's return value), and a bare `if` statement used for early
// return has the remainder of the sequence pushed into whichever branch
// doesn't already end in a Return.
func desugarSeq(stmts []hir.Node, tail hir.Node) hir.Node {
	if len(stmts) == 0 {
		if tail != nil {
			return tail
		}
		return &hir.NilLit{}
	}
	head, rest := stmts[0], stmts[1:]
	switch v := head.(type) {
	case *hir.Let:
		body := desugarSeq(rest, tail)
		n := &hir.Let{Symbol: v.Symbol, Init: v.Init, Body: body}
		n.Typ = body.NodeType()
		n.Sp = v.Sp
		return n
	case *hir.Return:
		return v
	case *hir.If:
		if isDivergent(v) {
			return v
		}
		cont := desugarSeq(rest, tail)
		n := &hir.If{Cond: v.Cond, Then: mergeBranch(v.Then, cont), Else: mergeBranch(v.Else, cont)}
		n.Typ = n.Else.NodeType()
		n.Sp = v.Sp
		return n
	default:
		return desugarSeq(rest, tail)
	}
}

// mergeBranch splices cont after branch's own statements, unless branch
// already diverges (ends in an unconditional Return), in which case it's
// left untouched.
func mergeBranch(branch hir.Node, cont hir.Node) hir.Node {
	if branch == nil {
		return cont
	}
	if isDivergent(branch) {
		return branch
	}
	if blk, ok := branch.(*hir.Block); ok {
		merged := append(append([]hir.Node{}, blk.Stmts...), tailAsStmt(blk.Tail)...)
		return desugarSeq(merged, cont)
	}
	return desugarSeq([]hir.Node{branch}, cont)
}

func tailAsStmt(tail hir.Node) []hir.Node {
	if tail == nil {
		return nil
	}
	return []hir.Node{tail}
}

// isDivergent reports whether n unconditionally ends in a Return on
// every control path, mirroring check/expr.go's own divergence analysis
// used for `if`-expression result typing.
func isDivergent(n hir.Node) bool {
	switch v := n.(type) {
	case *hir.Return:
		return true
	case *hir.Block:
		if v.Tail != nil {
			return isDivergent(v.Tail)
		}
		if len(v.Stmts) == 0 {
			return false
		}
		return isDivergent(v.Stmts[len(v.Stmts)-1])
	case *hir.If:
		if v.Else == nil {
			return false
		}
		return isDivergent(v.Then) && isDivergent(v.Else)
	case *hir.Let:
		return isDivergent(v.Body)
	default:
		return false
	}
}
