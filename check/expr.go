package check

import (
	"rue/ast"
	"rue/hir"
	"rue/symtab"
	"rue/token"
	"rue/types"
)

// checkFunction type-checks one function body and returns its HIR,
// generalizing ASTCompiler's per-declaration compile step with a pushed
// scope for parameters and a currentReturn slot checked against every
// `return` and the body's own tail expression (spec.md §4.5).
func (c *Checker) checkFunction(fi *funcInfo) *hir.Function {
	c.table.PushScope()
	defer c.table.PopScope()

	params := make([]*symtab.Symbol, 0, len(fi.Params))
	for i, pname := range fi.Params {
		sym, ok := c.table.Declare(pname, symtab.SymParam, fi.Sig.Params[i])
		if !ok {
			c.nameError(fi.Node.Node.Span(), "duplicate parameter name %q", pname)
		}
		params = append(params, sym)
	}

	prevReturn := c.currentReturn
	c.currentReturn = fi.Sig.Return
	defer func() { c.currentReturn = prevReturn }()

	bodyAst, ok := fi.Node.Body()
	var body *hir.Block
	if ok {
		body = c.checkBlock(bodyAst)
	} else {
		body = &hir.Block{}
		body.Typ = types.Nil
	}

	if !isDivergent(body) {
		bt := blockType(body)
		if !types.Subtype(bt, fi.Sig.Return) {
			c.typeError(fi.Node.Node.Span(), "function %q: body type %s is not assignable to declared return type %s",
				fi.Symbol.Name, bt, fi.Sig.Return)
		}
	}

	return &hir.Function{Symbol: fi.Symbol, Params: params, ReturnType: fi.Sig.Return, Body: body}
}

// checkBlock type-checks a block, pushing its own lexical scope (spec.md
// §4.4: "each scope pushes on block entry and pops on exit").
func (c *Checker) checkBlock(b ast.Block) *hir.Block {
	c.table.PushScope()
	defer c.table.PopScope()

	var stmts []hir.Node
	for _, s := range b.Statements() {
		stmts = append(stmts, c.checkStmt(s))
	}

	var tail hir.Node
	if t, ok := b.Tail(); ok {
		tail = c.checkExpr(t)
	}

	n := &hir.Block{Stmts: stmts, Tail: tail}
	if tail != nil {
		n.Typ = tail.NodeType()
	} else {
		n.Typ = types.Nil
	}
	n.Sp = b.Node.Span()
	return n
}

func (c *Checker) checkStmt(s ast.Stmt) hir.Node {
	if let, ok := s.AsLet(); ok {
		return c.checkLet(let)
	}
	if ret, ok := s.AsReturn(); ok {
		return c.checkReturn(ret)
	}
	if e, ok := s.AsExpr(); ok {
		return c.checkExpr(e)
	}
	c.internalError(s.Node.Span(), "unhandled statement kind")
	return poison(s.Node.Span())
}

// checkLet introduces a binding only after its initializer has been typed
// (spec.md §4.4), so `let x = x;` sees the outer x, not itself.
func (c *Checker) checkLet(ls ast.LetStmt) hir.Node {
	initExpr, hasInit := ls.Init()
	var init hir.Node
	if hasInit {
		init = c.checkExpr(initExpr)
	} else {
		init = poison(ls.Node.Span())
	}

	declType := init.NodeType()
	if te, ok := ls.Type(); ok {
		resolved, ok2 := c.resolveTypeExpr(te)
		if !ok2 {
			c.nameError(te.Node.Span(), "unknown type %q", te.Name())
			resolved = types.Any
		}
		init = c.checkAssignable(init, resolved, initExpr.Span())
		declType = resolved
	}

	name, _ := ls.Name()
	sym, ok := c.table.Declare(name.Name(), symtab.SymLocal, declType)
	if !ok {
		c.nameError(name.Span(), "duplicate name %q in this scope", name.Name())
	}

	n := &hir.Let{Symbol: sym, Init: init}
	n.Typ = declType
	n.Sp = ls.Node.Span()
	return n
}

func (c *Checker) checkReturn(rs ast.ReturnStmt) hir.Node {
	var val hir.Node
	if v, ok := rs.Value(); ok {
		val = c.checkExpr(v)
		if c.currentReturn != nil {
			val = c.checkAssignable(val, c.currentReturn, v.Span())
		}
	} else if c.currentReturn != nil && !types.Equal(c.currentReturn, types.Nil) {
		c.typeError(rs.Node.Span(), "missing return value, function returns %s", c.currentReturn)
	}
	n := &hir.Return{Value: val}
	n.Typ = types.Any
	n.Sp = rs.Node.Span()
	return n
}

// checkAssignable verifies value's type is assignable to target, refining
// the special case of a raw Bytes literal being narrowed to Bytes32 by a
// `let`/parameter/field type annotation when its concrete length is 32
// (spec.md §3, §8 scenario 5). Returns value, possibly retyped.
func (c *Checker) checkAssignable(value hir.Node, target *types.Type, sp token.Span) hir.Node {
	if bl, ok := value.(*hir.BytesLit); ok && target.Kind == types.KindBytes32 && value.NodeType().Kind != types.KindBytes32 {
		if len(bl.Value) == 32 {
			bl.Typ = types.Bytes32
			return bl
		}
		c.typeError(sp, "cannot assign Bytes of length %d to Bytes32", len(bl.Value))
		return value
	}
	if !types.Subtype(value.NodeType(), target) {
		c.typeError(sp, "cannot assign %s to %s", value.NodeType(), target)
	}
	return value
}

func (c *Checker) checkExpr(e ast.Expr) hir.Node {
	if e.Node == nil {
		return poison(token.Span{})
	}
	if lit, ok := e.AsIntLiteral(); ok {
		return c.checkIntLiteral(lit)
	}
	if lit, ok := e.AsBytesLiteral(); ok {
		return c.checkBytesLiteral(lit)
	}
	if e.IsNilLiteral() {
		n := &hir.NilLit{}
		n.Typ = types.Nil
		n.Sp = e.Span()
		return n
	}
	if id, ok := e.AsIdent(); ok {
		return c.checkIdent(id)
	}
	if p, ok := e.AsPath(); ok {
		return c.checkPath(p)
	}
	if b, ok := e.AsBinary(); ok {
		return c.checkBinary(b)
	}
	if u, ok := e.AsUnary(); ok {
		return c.checkUnary(u)
	}
	if f, ok := e.AsIf(); ok {
		return c.checkIfExpr(f)
	}
	if call, ok := e.AsCall(); ok {
		return c.checkCall(call)
	}
	if fe, ok := e.AsField(); ok {
		return c.checkFieldAccess(fe)
	}
	if l, ok := e.AsList(); ok {
		return c.checkList(l)
	}
	if con, ok := e.AsConstruct(); ok {
		return c.checkConstruct(con)
	}
	if is, ok := e.AsIs(); ok {
		return c.checkIs(is)
	}
	if as, ok := e.AsAs(); ok {
		return c.checkAs(as)
	}
	c.internalError(e.Span(), "unhandled expression kind %v", e.Kind())
	return poison(e.Span())
}

func (c *Checker) checkIntLiteral(lit ast.IntLiteral) hir.Node {
	v, ok := parseIntLiteral(lit.Text())
	n := &hir.IntLit{Value: v}
	n.Typ = types.Int
	n.Sp = lit.Node.Span()
	if !ok {
		c.typeError(n.Sp, "invalid integer literal %q", lit.Text())
	}
	return n
}

func (c *Checker) checkBytesLiteral(lit ast.BytesLiteral) hir.Node {
	var val []byte
	switch lit.TokenKind() {
	case token.Str:
		val = unescapeString(lit.Text())
	case token.HexBytes:
		val = decodeHexBytes(lit.Text())
	}
	n := &hir.BytesLit{Value: val}
	n.Typ = types.Bytes
	n.Sp = lit.Node.Span()
	return n
}

func (c *Checker) checkIdent(id ast.IdentExpr) hir.Node {
	sym, ok := c.table.Resolve(id.Name())
	if !ok {
		c.nameError(id.Node.Span(), "undefined name %q", id.Name())
		return poison(id.Node.Span())
	}
	n := &hir.Ref{Symbol: sym}
	n.Typ = c.table.TypeOf(sym)
	n.Sp = id.Node.Span()
	return n
}

// checkPath handles a bare `E::V` reference used as a value: sugar for
// constructing a zero-field variant (spec.md §3 "enum-variant").
func (c *Checker) checkPath(p ast.PathExpr) hir.Node {
	et, ok := c.enumTypes[p.EnumName()]
	if !ok {
		c.nameError(p.Node.Span(), "undefined enum %q", p.EnumName())
		return poison(p.Node.Span())
	}
	var variant *types.EnumVariant
	for _, v := range et.Variants {
		if v.Name == p.VariantName() {
			variant = v
			break
		}
	}
	if variant == nil {
		c.nameError(p.Node.Span(), "enum %q has no variant %q", p.EnumName(), p.VariantName())
		return poison(p.Node.Span())
	}
	if len(variant.Fields) > 0 {
		c.typeError(p.Node.Span(), "variant %q has fields and must be constructed with {...}", p.VariantName())
	}
	n := &hir.Path{Variant: variant}
	n.Typ = types.Variant(variant)
	n.Sp = p.Node.Span()
	return n
}

var builtinOpcode = map[token.Kind]string{
	token.EqEq:  "eq",
	token.NotEq: "neq",
	token.Lt:    "lt",
	token.Gt:    "gt",
	token.Le:    "le",
	token.Ge:    "ge",
	token.Plus:  "+",
	token.Minus: "-",
	token.Star:  "*",
	token.Slash: "/",
	token.Percent: "%",
	token.PlusPlus: "concat",
}

// boolConst produces a Bool-typed BuiltinCall with no arguments, standing
// for a literal `true`/`false` value with no dedicated HIR literal kind of
// its own; lower/ recognizes "bool_true"/"bool_false" as quoted CLVM atoms
// (1 and the empty list, respectively) rather than opcode applications.
func boolConst(v bool, sp token.Span) hir.Node {
	name := "bool_false"
	if v {
		name = "bool_true"
	}
	n := &hir.BuiltinCall{Name: name}
	n.Typ = types.Bool
	n.Sp = sp
	return n
}

func isBytesLike(t *types.Type) bool {
	return t.Kind == types.KindBytes || t.Kind == types.KindBytes32 || t.Kind == types.KindAny
}

func isIntLike(t *types.Type) bool {
	return t.Kind == types.KindInt || t.Kind == types.KindAny
}

// checkBinary lowers `&&`/`||` to short-circuiting `if`s rather than eager
// opcodes (CLVM has no boolean operators, only conditionals — spec.md
// §4.6), and every other operator to a BuiltinCall carrying the mapped
// opcode name, resolved further during lowering.
func (c *Checker) checkBinary(b ast.BinaryExpr) hir.Node {
	lhs := c.checkExpr(b.Left())
	rhs := c.checkExpr(b.Right())
	op := b.Operator()
	sp := b.Node.Span()

	switch op {
	case token.OrOr, token.AndAnd:
		if !types.Equal(lhs.NodeType(), types.Bool) {
			c.typeError(b.Left().Span(), "operand of %s must be Bool, found %s", op, lhs.NodeType())
		}
		if !types.Equal(rhs.NodeType(), types.Bool) {
			c.typeError(b.Right().Span(), "operand of %s must be Bool, found %s", op, rhs.NodeType())
		}
		n := &hir.If{Cond: lhs, Then: rhs, Else: boolConst(false, sp)}
		if op == token.OrOr {
			n.Then, n.Else = boolConst(true, sp), rhs
		}
		n.Typ = types.Bool
		n.Sp = sp
		return n
	case token.EqEq, token.NotEq, token.Lt, token.Gt, token.Le, token.Ge:
		opcode := builtinOpcode[op]
		n := &hir.BuiltinCall{Name: opcode, Args: []hir.Node{lhs, rhs}}
		n.Typ = types.Bool
		n.Sp = sp
		return n
	case token.Plus, token.Minus, token.Star, token.Slash, token.Percent:
		if !isIntLike(lhs.NodeType()) {
			c.typeError(b.Left().Span(), "operand of %s must be Int, found %s", op, lhs.NodeType())
		}
		if !isIntLike(rhs.NodeType()) {
			c.typeError(b.Right().Span(), "operand of %s must be Int, found %s", op, rhs.NodeType())
		}
		n := &hir.BuiltinCall{Name: builtinOpcode[op], Args: []hir.Node{lhs, rhs}}
		n.Typ = types.Int
		n.Sp = sp
		return n
	case token.PlusPlus:
		if !isBytesLike(lhs.NodeType()) {
			c.typeError(b.Left().Span(), "operand of ++ must be Bytes, found %s", lhs.NodeType())
		}
		if !isBytesLike(rhs.NodeType()) {
			c.typeError(b.Right().Span(), "operand of ++ must be Bytes, found %s", rhs.NodeType())
		}
		n := &hir.BuiltinCall{Name: "concat", Args: []hir.Node{lhs, rhs}}
		n.Typ = types.Bytes
		n.Sp = sp
		return n
	}
	c.internalError(sp, "unhandled binary operator %v", op)
	return poison(sp)
}

func (c *Checker) checkUnary(u ast.UnaryExpr) hir.Node {
	operand := c.checkExpr(u.Operand())
	sp := u.Node.Span()
	switch u.Operator() {
	case token.Minus:
		if !isIntLike(operand.NodeType()) {
			c.typeError(u.Operand().Span(), "operand of unary - must be Int, found %s", operand.NodeType())
		}
		n := &hir.BuiltinCall{Name: "neg", Args: []hir.Node{operand}}
		n.Typ = types.Int
		n.Sp = sp
		return n
	case token.Bang:
		if !types.Equal(operand.NodeType(), types.Bool) {
			c.typeError(u.Operand().Span(), "operand of ! must be Bool, found %s", operand.NodeType())
		}
		n := &hir.BuiltinCall{Name: "not", Args: []hir.Node{operand}}
		n.Typ = types.Bool
		n.Sp = sp
		return n
	}
	c.internalError(sp, "unhandled unary operator")
	return poison(sp)
}

// checkIfExpr narrows the operand of a leading `is` condition in the
// then-branch (and, for a two-variant enum, the complementary variant in
// the else-branch) via the symbol table's overlay (spec.md §4.5, §9).
func (c *Checker) checkIfExpr(f ast.IfExpr) *hir.If {
	cond := c.checkExpr(f.Cond())
	if !types.Equal(cond.NodeType(), types.Bool) {
		c.typeError(f.Cond().Span(), "if condition must be Bool, found %s", cond.NodeType())
	}

	isTest, _ := cond.(*hir.IsTest)

	c.table.PushOverlay()
	if isTest != nil && isTest.Symbol != nil {
		if types.Overlaps(isTest.Target, c.table.TypeOf(isTest.Symbol)) {
			c.table.Narrow(isTest.Symbol, isTest.Target)
		}
	}
	thenAst := f.Then()
	then := c.checkBlock(thenAst)
	c.table.PopOverlay()

	var elseNode hir.Node
	if eb, ok := f.ElseBlock(); ok {
		c.table.PushOverlay()
		if isTest != nil && isTest.Symbol != nil {
			if elseTy, ok := complementType(c.table.TypeOf(isTest.Symbol), isTest.Target); ok {
				c.table.Narrow(isTest.Symbol, elseTy)
			}
		}
		elseNode = c.checkBlock(eb)
		c.table.PopOverlay()
	} else if ei, ok := f.ElseIf(); ok {
		c.table.PushOverlay()
		if isTest != nil && isTest.Symbol != nil {
			if elseTy, ok := complementType(c.table.TypeOf(isTest.Symbol), isTest.Target); ok {
				c.table.Narrow(isTest.Symbol, elseTy)
			}
		}
		elseNode = c.checkIfExpr(ei)
		c.table.PopOverlay()
	}

	var resultType *types.Type
	thenDiverges := isDivergent(then)
	switch {
	case elseNode == nil:
		resultType = types.Nil
	case thenDiverges && isDivergent(elseNode):
		resultType = types.Any
	case thenDiverges:
		resultType = elseNode.NodeType()
	case isDivergent(elseNode):
		resultType = blockType(then)
	default:
		lcs, _ := types.LeastCommonSupertype(blockType(then), elseNode.NodeType())
		resultType = lcs
	}

	n := &hir.If{Cond: cond, Then: then, Else: elseNode}
	n.Typ = resultType
	n.Sp = f.Node.Span()
	return n
}

// complementType computes the else-branch narrowing for `operand is T`
// when declared is an enum with exactly two variants and target is one of
// them — the only case spec.md §4.5 says is "computable".
func complementType(declared, target *types.Type) (*types.Type, bool) {
	if declared.Kind != types.KindEnum || target.Kind != types.KindEnumVariant {
		return nil, false
	}
	if len(declared.Enum.Variants) != 2 {
		return nil, false
	}
	for _, v := range declared.Enum.Variants {
		if v != target.Variant {
			return types.Variant(v), true
		}
	}
	return nil, false
}

func (c *Checker) checkCall(call ast.CallExpr) hir.Node {
	calleeExpr := call.Callee()
	argsAst := call.Args()

	id, ok := calleeExpr.AsIdent()
	if !ok {
		c.typeError(calleeExpr.Span(), "callee must be a function name")
		for _, a := range argsAst {
			c.checkExpr(a)
		}
		return poison(call.Node.Span())
	}

	if isBuiltinName(id.Name()) {
		return c.checkBuiltinCall(id.Name(), call)
	}

	fi, ok := c.funcs[id.Name()]
	if !ok {
		c.nameError(calleeExpr.Span(), "undefined function %q", id.Name())
		for _, a := range argsAst {
			c.checkExpr(a)
		}
		return poison(call.Node.Span())
	}

	hirArgs := make([]hir.Node, 0, len(argsAst))
	for _, a := range argsAst {
		hirArgs = append(hirArgs, c.checkExpr(a))
	}

	if len(hirArgs) != len(fi.Sig.Params) {
		c.typeError(call.Node.Span(), "function %q expects %d argument(s), found %d", id.Name(), len(fi.Sig.Params), len(hirArgs))
	} else {
		for i, a := range hirArgs {
			hirArgs[i] = c.checkAssignable(a, fi.Sig.Params[i], argsAst[i].Span())
		}
	}

	n := &hir.Call{Callee: fi.Symbol, Args: hirArgs}
	n.Typ = fi.Sig.Return
	n.Sp = call.Node.Span()
	return n
}

func isBuiltinName(name string) bool {
	return name == "sha256" || name == "sha256_tree"
}

// checkBuiltinCall types the two hard-coded builtins of spec.md §1/§9:
// `sha256` is variadic over Bytes/Bytes32 (a documented open-question
// decision, see DESIGN.md), `sha256_tree` takes exactly one argument of
// any type and computes the recursive tree hash (GLOSSARY "Tree hash").
func (c *Checker) checkBuiltinCall(name string, call ast.CallExpr) hir.Node {
	argsAst := call.Args()
	args := make([]hir.Node, 0, len(argsAst))
	for _, a := range argsAst {
		args = append(args, c.checkExpr(a))
	}
	sp := call.Node.Span()
	switch name {
	case "sha256":
		for i, a := range args {
			if !isBytesLike(a.NodeType()) {
				c.typeError(argsAst[i].Span(), "sha256 argument must be Bytes, found %s", a.NodeType())
			}
		}
		n := &hir.BuiltinCall{Name: "sha256", Args: args}
		n.Typ = types.Bytes32
		n.Sp = sp
		return n
	case "sha256_tree":
		if len(args) != 1 {
			c.typeError(sp, "sha256_tree expects exactly 1 argument, found %d", len(args))
		}
		n := &hir.BuiltinCall{Name: "sha256_tree", Args: args}
		n.Typ = types.Bytes32
		n.Sp = sp
		return n
	}
	c.internalError(sp, "unknown builtin %q", name)
	return poison(sp)
}

func (c *Checker) checkFieldAccess(fe ast.FieldExpr) hir.Node {
	base := c.checkExpr(fe.Base())
	field := fe.FieldName()
	bt := base.NodeType()
	sp := fe.Node.Span()

	var resultType *types.Type
	switch bt.Kind {
	case types.KindArray:
		switch field {
		case "first":
			resultType = bt.Elem
		case "rest":
			resultType = bt
		default:
			c.typeError(sp, "array type %s has no field %q (use .first/.rest)", bt, field)
			resultType = types.Any
		}
	case types.KindAny:
		resultType = types.Any
	case types.KindStruct, types.KindEnumVariant:
		if f, ok := bt.FieldByName(field); ok {
			resultType = f.Type
		} else {
			c.typeError(sp, "type %s has no field %q", bt, field)
			resultType = types.Any
		}
	default:
		c.typeError(sp, "type %s has no fields", bt)
		resultType = types.Any
	}

	n := &hir.FieldAccess{Base: base, Field: field}
	n.Typ = resultType
	n.Sp = sp
	return n
}

// checkList types a list literal; the empty list is Nil (spec.md §4.5);
// otherwise every element (and every spread array's element type)
// contributes to a running least-common-supertype.
func (c *Checker) checkList(l ast.ListExpr) hir.Node {
	elems := l.Elements()
	sp := l.Node.Span()
	if len(elems) == 0 {
		n := &hir.List{}
		n.Typ = types.Nil
		n.Sp = sp
		return n
	}

	hirElems := make([]hir.ListElement, 0, len(elems))
	var elemType *types.Type
	for i, el := range elems {
		v := c.checkExpr(el.Value)
		var et *types.Type
		if el.Spread {
			switch v.NodeType().Kind {
			case types.KindArray:
				et = v.NodeType().Elem
			case types.KindAny:
				et = types.Any
			default:
				c.typeError(el.Value.Span(), "spread element must be an array, found %s", v.NodeType())
				et = types.Any
			}
		} else {
			et = v.NodeType()
		}
		if i == 0 {
			elemType = et
		} else {
			lcs, _ := types.LeastCommonSupertype(elemType, et)
			elemType = lcs
		}
		hirElems = append(hirElems, hir.ListElement{Value: v, Spread: el.Spread})
	}

	n := &hir.List{Elements: hirElems}
	n.Typ = types.Array(elemType)
	n.Sp = sp
	return n
}

// checkConstruct types `S { ... }` / `E::V { ... }`, requiring every
// declared field exactly once (in any source order, stored in declaration
// order — spec.md §4.5).
func (c *Checker) checkConstruct(con ast.ConstructExpr) hir.Node {
	target := con.Target()
	sp := con.Node.Span()

	var declFields []types.Field
	var resultType *types.Type

	if id, ok := target.AsIdent(); ok {
		st, found := c.structTypes[id.Name()]
		if !found {
			c.nameError(target.Span(), "undefined struct %q", id.Name())
			c.checkFieldValuesOnly(con)
			return poison(sp)
		}
		declFields, resultType = st.Fields, types.Struct(st)
	} else if p, ok := target.AsPath(); ok {
		et, found := c.enumTypes[p.EnumName()]
		if !found {
			c.nameError(target.Span(), "undefined enum %q", p.EnumName())
			c.checkFieldValuesOnly(con)
			return poison(sp)
		}
		var variant *types.EnumVariant
		for _, v := range et.Variants {
			if v.Name == p.VariantName() {
				variant = v
				break
			}
		}
		if variant == nil {
			c.nameError(target.Span(), "enum %q has no variant %q", p.EnumName(), p.VariantName())
			c.checkFieldValuesOnly(con)
			return poison(sp)
		}
		declFields, resultType = variant.Fields, types.Variant(variant)
	} else {
		c.typeError(target.Span(), "invalid construction target")
		c.checkFieldValuesOnly(con)
		return poison(sp)
	}

	type provided struct {
		value hir.Node
		span  token.Span
		used  bool
	}
	given := map[string]*provided{}
	var order []string
	for _, fin := range con.Fields() {
		fname, ok := fin.Name()
		if !ok {
			continue
		}
		val, hasVal := fin.Value()
		var hv hir.Node = poison(fin.Node.Span())
		if hasVal {
			hv = c.checkExpr(val)
		}
		if _, dup := given[fname.Name()]; dup {
			c.typeError(fname.Span(), "field %q provided more than once", fname.Name())
			continue
		}
		given[fname.Name()] = &provided{value: hv, span: fname.Span()}
		order = append(order, fname.Name())
	}

	orderedFields := make([]hir.FieldValue, 0, len(declFields))
	for _, f := range declFields {
		p, ok := given[f.Name]
		if !ok {
			c.typeError(sp, "missing field %q", f.Name)
			orderedFields = append(orderedFields, hir.FieldValue{Name: f.Name, Value: poison(sp)})
			continue
		}
		p.used = true
		orderedFields = append(orderedFields, hir.FieldValue{Name: f.Name, Value: c.checkAssignable(p.value, f.Type, p.span)})
	}
	for _, name := range order {
		if !given[name].used {
			c.typeError(given[name].span, "unknown field %q", name)
		}
	}

	n := &hir.Construct{Fields: orderedFields}
	n.Typ = resultType
	n.Sp = sp
	return n
}

// checkFieldValuesOnly still type-checks field value expressions (for
// their own diagnostics) when the construction target itself was invalid.
func (c *Checker) checkFieldValuesOnly(con ast.ConstructExpr) {
	for _, fin := range con.Fields() {
		if v, ok := fin.Value(); ok {
			c.checkExpr(v)
		}
	}
}

func (c *Checker) checkIs(is ast.IsExpr) hir.Node {
	operand := c.checkExpr(is.Operand())
	target, ok := c.resolveTypeExpr(is.Type())
	if !ok {
		c.nameError(is.Type().Node.Span(), "unknown type %q", is.Type().Name())
		target = types.Any
	}
	var sym *symtab.Symbol
	if id, ok2 := is.Operand().AsIdent(); ok2 {
		if s, found := c.table.Resolve(id.Name()); found {
			sym = s
		}
	}
	n := &hir.IsTest{Operand: operand, Symbol: sym, Target: target}
	n.Typ = types.Bool
	n.Sp = is.Node.Span()
	return n
}

func (c *Checker) checkAs(as ast.AsExpr) hir.Node {
	operand := c.checkExpr(as.Operand())
	target, ok := c.resolveTypeExpr(as.Type())
	if !ok {
		c.nameError(as.Type().Node.Span(), "unknown type %q", as.Type().Name())
		target = types.Any
	}
	if !coercible(operand.NodeType(), target) {
		c.coercionError(as.Node.Span(), "cannot coerce %s to %s", operand.NodeType(), target)
	}
	n := &hir.AsCoerce{Operand: operand}
	n.Typ = target
	n.Sp = as.Node.Span()
	return n
}

// coercible implements spec.md §4.5/§9's layout-compatibility rule for
// `as`: subtypes either way always coerce; Int<->Bytes is the documented
// bit-reinterpreting case; Any<->anything is unchecked (DESIGN.md's open
// question decision).
func coercible(from, to *types.Type) bool {
	if types.Subtype(from, to) || types.Subtype(to, from) {
		return true
	}
	if from.Kind == types.KindAny || to.Kind == types.KindAny {
		return true
	}
	fromBytes := from.Kind == types.KindBytes || from.Kind == types.KindBytes32
	toBytes := to.Kind == types.KindBytes || to.Kind == types.KindBytes32
	if from.Kind == types.KindInt && toBytes {
		return true
	}
	if fromBytes && to.Kind == types.KindInt {
		return true
	}
	return false
}

// isDivergent reports whether n unconditionally exits via `return`,
// meaning it contributes no type to an enclosing `if`'s result
// (spec.md §4.5: "Either branch may also return; such a branch
// contributes no type").
func isDivergent(n hir.Node) bool {
	switch v := n.(type) {
	case *hir.Return:
		return true
	case *hir.Block:
		if v.Tail != nil {
			return isDivergent(v.Tail)
		}
		if len(v.Stmts) > 0 {
			return isDivergent(v.Stmts[len(v.Stmts)-1])
		}
		return false
	case *hir.If:
		if v.Else == nil {
			return false
		}
		return isDivergent(v.Then) && isDivergent(v.Else)
	default:
		return false
	}
}

func blockType(b *hir.Block) *types.Type {
	if b.Tail != nil {
		return b.Tail.NodeType()
	}
	return types.Nil
}
