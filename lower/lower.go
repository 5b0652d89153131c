// Package lower translates type-checked HIR into LIR: the pass that
// erases names in favor of environment paths, elaborates struct/enum/
// array construction into cons trees, and picks concrete CLVM opcodes
// for every builtin and operator (spec.md §4.6). It is the one stage
// with no teacher analogue — the teacher's "compiler" (compiler/) target
// is its own bespoke bytecode VM, not an external one, so this package
// is grounded directly in spec.md §4.6 and the CLVM environment
// convention recorded in DESIGN.md.
package lower

import (
	"fmt"
	"math/big"

	"rue/diag"
	"rue/hir"
	"rue/lir"
	"rue/types"
)

// Lower translates a checked hir.Program into a lir.Program ready for
// optimize/ and clvm/. Callers should skip this stage entirely when the
// checker's diag.Bag already has errors (spec.md §7).
func Lower(prog *hir.Program) (*lir.Program, *diag.Bag) {
	bag := diag.NewBag()
	l := &lowerer{diags: bag, funcIndex: map[int]int{}, treeHashIdx: -1, concatIdx: -1}

	for i, fn := range prog.Functions {
		l.funcIndex[fn.Symbol.ID] = i
	}

	// Two synthetic helpers (tree-hash, list-concat) are needed only
	// when the program actually uses sha256_tree or a non-trailing
	// spread. Their environment paths depend on the final function
	// count, so whether they're needed has to be known *before* any
	// function body is lowered, not discovered lazily mid-lowering.
	needsTreeHash, needsConcat := scanNeeds(prog)
	next := len(prog.Functions)
	if needsTreeHash {
		l.treeHashIdx = next
		next++
	}
	if needsConcat {
		l.concatIdx = next
		next++
	}
	if needsTreeHash {
		l.treeHashPath = funcEntryPath(l.treeHashIdx)
	}
	if needsConcat {
		l.concatPath = funcEntryPath(l.concatIdx)
	}

	out := &lir.Program{Entry: -1}
	for _, fn := range prog.Functions {
		lf := l.lowerFunction(fn)
		out.Functions = append(out.Functions, lf)
		if prog.Entry != nil && fn.Symbol.ID == prog.Entry.Symbol.ID {
			out.Entry = len(out.Functions) - 1
		}
	}
	if needsTreeHash {
		out.Functions = append(out.Functions, l.treeHashFunc())
	}
	if needsConcat {
		out.Functions = append(out.Functions, l.concatFunc())
	}

	if out.Entry < 0 && len(out.Functions) > 0 {
		bag.Add(diag.InternalError{Message: "no entry function to compile"})
	}

	return out, bag
}

// lowerer carries the cross-function state shared by every call to
// lowerFunction: the function table index, and the two synthetic
// helpers (tree-hash and list-concat), whose need is decided up front
// by scanNeeds so their environment paths are stable before any
// function body is lowered.
type lowerer struct {
	diags       *diag.Bag
	funcIndex   map[int]int // symtab.Symbol.ID -> index into the emitted function table
	treeHashIdx int         // -1 if sha256_tree is never used
	concatIdx   int         // -1 if no non-trailing spread is ever lowered
	treeHashPath lir.Path
	concatPath   lir.Path
}

// frame is the per-function substitution environment: every parameter
// and `let`-bound local maps to the LIR node that replaces it at each
// reference site (spec.md §4.6's "or inlined" alternative for `let`,
// chosen uniformly here — see DESIGN.md).
type frame struct {
	env map[int]lir.Node
}

func (f *frame) child() *frame {
	child := &frame{env: make(map[int]lir.Node, len(f.env))}
	for k, v := range f.env {
		child.env[k] = v
	}
	return child
}

func (l *lowerer) lowerFunction(fn *hir.Function) *lir.Function {
	fr := &frame{env: map[int]lir.Node{}}
	for i, p := range fn.Params {
		fr.env[p.ID] = &lir.EnvRef{Path: paramPath(i)}
	}
	body := desugarBlock(fn.Body)
	lowered := l.lowerExpr(body, fr)
	return &lir.Function{Name: fn.Symbol.Name, Arity: len(fn.Params), Body: lowered}
}

// paramPath computes the environment path of the i'th parameter (0
// indexed) under the shared `(FUNCS . ARGS)` calling convention recorded
// in DESIGN.md: ARGS sits at path 3 (rest of the root), and parameters
// are addressed by walking `rest` i times then `first` into the
// right-nested argument cons list.
func paramPath(i int) lir.Path {
	p := lir.Root.Rest()
	for k := 0; k < i; k++ {
		p = p.Rest()
	}
	return p.First()
}

// funcsPath is the shared function table's own path, the first half of
// the root environment.
const funcsPath = lir.Path(2)

// funcEntryPath addresses the j'th function's quoted body within the
// FUNCS table, using the same rest*-then-first walk as paramPath.
func funcEntryPath(j int) lir.Path {
	p := funcsPath
	for k := 0; k < j; k++ {
		p = p.Rest()
	}
	return p.First()
}

func (l *lowerer) lowerExpr(n hir.Node, fr *frame) lir.Node {
	if n == nil {
		return &lir.Quote{Value: lir.NilConst}
	}
	switch v := n.(type) {
	case *hir.IntLit:
		return &lir.Quote{Value: lir.AtomConst(lir.IntToAtom(v.Value))}
	case *hir.BytesLit:
		return &lir.Quote{Value: lir.AtomConst(v.Value)}
	case *hir.NilLit:
		return &lir.Quote{Value: lir.NilConst}
	case *hir.Ref:
		if node, ok := fr.env[v.Symbol.ID]; ok {
			return node
		}
		l.diags.Add(diag.InternalError{Sp: v.Sp, Message: fmt.Sprintf("unresolved reference %q during lowering", v.Symbol.Name)})
		return &lir.Quote{Value: lir.NilConst}
	case *hir.If:
		// v.Else is nil for a value-position `if` with no else branch
		// (always typed Nil in that case — see check/expr.go), or for a
		// fully-desugared statement-position `if` that fell through
		// mergeBranch's nil-branch path.
		var elseLowered lir.Node = &lir.Quote{Value: lir.NilConst}
		if v.Else != nil {
			elseLowered = l.lowerExpr(v.Else, fr)
		}
		return &lir.If{Cond: l.lowerExpr(v.Cond, fr), Then: l.lowerExpr(v.Then, fr), Else: elseLowered}
	case *hir.Let:
		child := fr.child()
		child.env[v.Symbol.ID] = l.lowerExpr(v.Init, fr)
		return l.lowerExpr(v.Body, child)
	case *hir.Call:
		return l.lowerCall(v, fr)
	case *hir.List:
		return l.lowerList(v.Elements, 0, fr)
	case *hir.Path:
		disc := lir.AtomConst(lir.IntToAtom(big.NewInt(v.Variant.Discriminant)))
		return &lir.Quote{Value: lir.PairConst(disc, lir.NilConst)}
	case *hir.Construct:
		return l.lowerConstruct(v, fr)
	case *hir.FieldAccess:
		return l.lowerFieldAccess(v, fr)
	case *hir.IsTest:
		return l.lowerIsTest(v, fr)
	case *hir.AsCoerce:
		return l.lowerExpr(v.Operand, fr)
	case *hir.BuiltinCall:
		return l.lowerBuiltin(v, fr)
	case *hir.Block:
		return l.lowerExpr(desugarBlock(v), fr)
	case *hir.Return:
		if v.Value == nil {
			return &lir.Quote{Value: lir.NilConst}
		}
		return l.lowerExpr(v.Value, fr)
	case *hir.Poison:
		return &lir.Quote{Value: lir.NilConst}
	default:
		l.diags.Add(diag.InternalError{Sp: n.NodeSpan(), Message: fmt.Sprintf("lower: unhandled HIR node %T", n)})
		return &lir.Quote{Value: lir.NilConst}
	}
}

func (l *lowerer) lowerCall(v *hir.Call, fr *frame) lir.Node {
	idx, ok := l.funcIndex[v.Callee.ID]
	if !ok {
		l.diags.Add(diag.InternalError{Sp: v.Sp, Message: fmt.Sprintf("call to unresolved function %q during lowering", v.Callee.Name)})
		return &lir.Quote{Value: lir.NilConst}
	}
	var args lir.Node = &lir.Quote{Value: lir.NilConst}
	for i := len(v.Args) - 1; i >= 0; i-- {
		args = &lir.Cons{Car: l.lowerExpr(v.Args[i], fr), Cdr: args}
	}
	envArgs := &lir.Cons{Car: &lir.EnvRef{Path: funcsPath}, Cdr: args}
	return &lir.Apply{Target: &lir.EnvRef{Path: funcEntryPath(idx)}, Args: envArgs}
}

// lowerList builds a right-nested cons list; a spread element in tail
// position substitutes its own value directly as the list's tail, and a
// spread anywhere else needs runtime concatenation (spec.md §4.1 "list
// spread"), done via the shared synthetic concat helper.
func (l *lowerer) lowerList(elems []hir.ListElement, i int, fr *frame) lir.Node {
	if i == len(elems) {
		return &lir.Quote{Value: lir.NilConst}
	}
	el := elems[i]
	if el.Spread {
		spreadVal := l.lowerExpr(el.Value, fr)
		if i == len(elems)-1 {
			return spreadVal
		}
		rest := l.lowerList(elems, i+1, fr)
		return l.callConcat(spreadVal, rest)
	}
	return &lir.Cons{Car: l.lowerExpr(el.Value, fr), Cdr: l.lowerList(elems, i+1, fr)}
}

func (l *lowerer) lowerConstruct(v *hir.Construct, fr *frame) lir.Node {
	var fields lir.Node = &lir.Quote{Value: lir.NilConst}
	for i := len(v.Fields) - 1; i >= 0; i-- {
		fields = &lir.Cons{Car: l.lowerExpr(v.Fields[i].Value, fr), Cdr: fields}
	}
	if v.Typ.Kind == types.KindEnumVariant {
		disc := &lir.Quote{Value: lir.AtomConst(lir.IntToAtom(big.NewInt(v.Typ.Variant.Discriminant)))}
		return &lir.Cons{Car: disc, Cdr: fields}
	}
	return fields
}

func (l *lowerer) lowerFieldAccess(v *hir.FieldAccess, fr *frame) lir.Node {
	base := l.lowerExpr(v.Base, fr)
	baseType := v.Base.NodeType()
	if baseType.Kind == types.KindArray {
		switch v.Field {
		case "first":
			return opFirst(base)
		case "rest":
			return opRest(base)
		}
	}
	restCount := 0
	var fields []types.Field
	switch baseType.Kind {
	case types.KindStruct:
		fields = baseType.Struct.Fields
	case types.KindEnumVariant:
		fields = baseType.Variant.Fields
		restCount = 1 // skip the discriminant cell
	}
	for idx, f := range fields {
		if f.Name == v.Field {
			restCount += idx
			break
		}
	}
	node := base
	for k := 0; k < restCount; k++ {
		node = opRest(node)
	}
	return opFirst(node)
}

func (l *lowerer) lowerIsTest(v *hir.IsTest, fr *frame) lir.Node {
	operand := l.lowerExpr(v.Operand, fr)
	switch v.Target.Kind {
	case types.KindEnumVariant:
		return opEq(opFirst(operand), quoteInt(v.Target.Variant.Discriminant))
	case types.KindBytes32:
		return &lir.If{Cond: opIsAtom(operand), Then: opEq(opStrlen(operand), quoteInt(32)), Else: &lir.Quote{Value: lir.NilConst}}
	case types.KindBytes, types.KindInt, types.KindBool:
		return opIsAtom(operand)
	case types.KindNil:
		return opEq(operand, &lir.Quote{Value: lir.NilConst})
	case types.KindArray, types.KindStruct, types.KindEnum:
		return &lir.If{Cond: opListp(operand), Then: &lir.Quote{Value: lir.TrueConst}, Else: opEq(operand, &lir.Quote{Value: lir.NilConst})}
	default:
		return &lir.Quote{Value: lir.TrueConst}
	}
}

func (l *lowerer) lowerBuiltin(v *hir.BuiltinCall, fr *frame) lir.Node {
	args := make([]lir.Node, len(v.Args))
	for i, a := range v.Args {
		args[i] = l.lowerExpr(a, fr)
	}
	switch v.Name {
	case "bool_true":
		return &lir.Quote{Value: lir.TrueConst}
	case "bool_false":
		return &lir.Quote{Value: lir.NilConst}
	case "sha256":
		return &lir.Op{Name: "sha256", Args: args}
	case "sha256_tree":
		return l.callTreeHash(args[0])
	case "eq":
		return opEq(args[0], args[1])
	case "neq":
		return opNot(opEq(args[0], args[1]))
	case "lt":
		return &lir.Op{Name: ">", Args: []lir.Node{args[1], args[0]}}
	case "gt":
		return &lir.Op{Name: ">", Args: []lir.Node{args[0], args[1]}}
	case "le":
		return opNot(&lir.Op{Name: ">", Args: []lir.Node{args[0], args[1]}})
	case "ge":
		return opNot(&lir.Op{Name: ">", Args: []lir.Node{args[1], args[0]}})
	case "+", "-", "*", "/", "%":
		return &lir.Op{Name: v.Name, Args: args}
	case "concat":
		return &lir.Op{Name: "concat", Args: args}
	case "neg":
		return &lir.Op{Name: "-", Args: []lir.Node{&lir.Quote{Value: lir.NilConst}, args[0]}}
	case "not":
		return opNot(args[0])
	default:
		l.diags.Add(diag.InternalError{Sp: v.Sp, Message: fmt.Sprintf("lower: unknown builtin %q", v.Name)})
		return &lir.Quote{Value: lir.NilConst}
	}
}

func opFirst(n lir.Node) lir.Node  { return &lir.Op{Name: "first", Args: []lir.Node{n}} }
func opRest(n lir.Node) lir.Node   { return &lir.Op{Name: "rest", Args: []lir.Node{n}} }
func opListp(n lir.Node) lir.Node  { return &lir.Op{Name: "listp", Args: []lir.Node{n}} }
func opStrlen(n lir.Node) lir.Node { return &lir.Op{Name: "strlen", Args: []lir.Node{n}} }
func opEq(a, b lir.Node) lir.Node  { return &lir.Op{Name: "=", Args: []lir.Node{a, b}} }

// opIsAtom tests that a value is a raw atom rather than a cons pair —
// CLVM's `l` (listp) opcode returns true only for pairs, so atoms
// (including Nil, the empty atom) fail it.
func opIsAtom(n lir.Node) lir.Node { return opNot(opListp(n)) }

// opNot builds boolean negation as an `if`, since CLVM has no boolean
// operators, only `i` (spec.md §4.6).
func opNot(n lir.Node) lir.Node {
	return &lir.If{Cond: n, Then: &lir.Quote{Value: lir.NilConst}, Else: &lir.Quote{Value: lir.TrueConst}}
}

func quoteInt(v int64) lir.Node {
	return &lir.Quote{Value: lir.AtomConst(lir.IntToAtom(big.NewInt(v)))}
}

func (l *lowerer) callTreeHash(arg lir.Node) lir.Node {
	var args lir.Node = &lir.Cons{Car: arg, Cdr: &lir.Quote{Value: lir.NilConst}}
	envArgs := &lir.Cons{Car: &lir.EnvRef{Path: funcsPath}, Cdr: args}
	return &lir.Apply{Target: &lir.EnvRef{Path: l.treeHashPath}, Args: envArgs}
}

func (l *lowerer) callConcat(list, tail lir.Node) lir.Node {
	var args lir.Node = &lir.Cons{Car: list, Cdr: &lir.Cons{Car: tail, Cdr: &lir.Quote{Value: lir.NilConst}}}
	envArgs := &lir.Cons{Car: &lir.EnvRef{Path: funcsPath}, Cdr: args}
	return &lir.Apply{Target: &lir.EnvRef{Path: l.concatPath}, Args: envArgs}
}

// treeHashFunc builds sha256_tree's body: spec.md's GLOSSARY "Tree Hash"
// definition — `sha256(2 ++ hash(first) ++ hash(rest))` for a pair,
// `sha256(1 ++ atom)` for a leaf — as a one-argument recursive function
// addressed through the shared FUNCS table like any user function, so it
// can call itself via the same path convention.
func (l *lowerer) treeHashFunc() *lir.Function {
	self := &lir.EnvRef{Path: paramPath(0)}
	recurse := func(target lir.Node) lir.Node {
		args := &lir.Cons{Car: &lir.EnvRef{Path: funcsPath}, Cdr: &lir.Cons{Car: target, Cdr: &lir.Quote{Value: lir.NilConst}}}
		return &lir.Apply{Target: &lir.EnvRef{Path: l.treeHashPath}, Args: args}
	}
	leaf := &lir.Op{Name: "sha256", Args: []lir.Node{&lir.Quote{Value: lir.AtomConst([]byte{1})}, self}}
	pair := &lir.Op{Name: "sha256", Args: []lir.Node{
		&lir.Quote{Value: lir.AtomConst([]byte{2})},
		recurse(opFirst(self)),
		recurse(opRest(self)),
	}}
	body := &lir.If{Cond: opListp(self), Then: pair, Else: leaf}
	return &lir.Function{Name: "$sha256_tree", Arity: 1, Body: body}
}

// concatFunc builds the list-spread helper used when a spread appears
// before the last element of a list literal: concat(list, tail) conses
// list's own elements onto tail recursively.
func (l *lowerer) concatFunc() *lir.Function {
	list := &lir.EnvRef{Path: paramPath(0)}
	tail := &lir.EnvRef{Path: paramPath(1)}
	recurse := func(listArg, tailArg lir.Node) lir.Node {
		args := &lir.Cons{Car: &lir.EnvRef{Path: funcsPath}, Cdr: &lir.Cons{Car: listArg, Cdr: &lir.Cons{Car: tailArg, Cdr: &lir.Quote{Value: lir.NilConst}}}}
		return &lir.Apply{Target: &lir.EnvRef{Path: l.concatPath}, Args: args}
	}
	body := &lir.If{
		Cond: opListp(list),
		Then: &lir.Cons{Car: opFirst(list), Cdr: recurse(opRest(list), tail)},
		Else: tail,
	}
	return &lir.Function{Name: "$list_concat", Arity: 2, Body: body}
}

// scanNeeds walks every function body to decide whether the sha256_tree
// and non-trailing-spread synthetic helpers are needed, before any
// lowering (and therefore any path computation) begins.
func scanNeeds(prog *hir.Program) (needsTreeHash, needsConcat bool) {
	for _, fn := range prog.Functions {
		scanNode(fn.Body, &needsTreeHash, &needsConcat)
	}
	return
}

func scanNode(n hir.Node, treeHash, concat *bool) {
	if n == nil {
		return
	}
	switch v := n.(type) {
	case *hir.BuiltinCall:
		if v.Name == "sha256_tree" {
			*treeHash = true
		}
		for _, a := range v.Args {
			scanNode(a, treeHash, concat)
		}
	case *hir.List:
		for i, el := range v.Elements {
			if el.Spread && i != len(v.Elements)-1 {
				*concat = true
			}
			scanNode(el.Value, treeHash, concat)
		}
	case *hir.If:
		scanNode(v.Cond, treeHash, concat)
		scanNode(v.Then, treeHash, concat)
		scanNode(v.Else, treeHash, concat)
	case *hir.Let:
		scanNode(v.Init, treeHash, concat)
		scanNode(v.Body, treeHash, concat)
	case *hir.Call:
		for _, a := range v.Args {
			scanNode(a, treeHash, concat)
		}
	case *hir.Construct:
		for _, f := range v.Fields {
			scanNode(f.Value, treeHash, concat)
		}
	case *hir.FieldAccess:
		scanNode(v.Base, treeHash, concat)
	case *hir.IsTest:
		scanNode(v.Operand, treeHash, concat)
	case *hir.AsCoerce:
		scanNode(v.Operand, treeHash, concat)
	case *hir.Block:
		for _, s := range v.Stmts {
			scanNode(s, treeHash, concat)
		}
		scanNode(v.Tail, treeHash, concat)
	case *hir.Return:
		scanNode(v.Value, treeHash, concat)
	}
}
