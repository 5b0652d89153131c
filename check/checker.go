// Package check is Rue's type checker and HIR builder (spec.md §4.4, §4.5).
// It walks the AST facade over the CST and produces a typed hir.Program plus
// a diag.Bag, generalizing the teacher's ASTCompiler
// (compiler/ast_compiler.go): one compileX-shaped method per node kind,
// errors collected rather than panicking through the whole run. There is
// no recover: a panic while checking a function is not turned into a
// diagnostic and ends the compilation.
package check

import (
	"fmt"

	"rue/ast"
	"rue/diag"
	"rue/hir"
	"rue/symtab"
	"rue/syntax"
	"rue/token"
	"rue/types"
)

type funcInfo struct {
	Symbol *symtab.Symbol
	Sig    *types.FuncType
	Params []string
	Node   ast.FunctionItem
}

// Checker owns the symbol table, the nominal-type registry built during
// declaration, and the diagnostic bag. One Checker checks exactly one
// compilation unit.
type Checker struct {
	table *symtab.Table
	bag   *diag.Bag

	structTypes map[string]*types.StructType
	enumTypes   map[string]*types.EnumType
	funcs       map[string]*funcInfo

	structNodes map[string]ast.StructItem
	enumNodes   map[string]ast.EnumItem

	funcOrder []string // declaration order, for deterministic output

	currentReturn *types.Type
}

// Check type-checks prog and returns the resulting HIR program together
// with every diagnostic collected along the way. Codegen callers must
// consult diags.HasErrors() before using prog (spec.md §7).
func Check(prog ast.Program) (*hir.Program, *diag.Bag) {
	c := &Checker{
		table:       symtab.New(),
		bag:         diag.NewBag(),
		structTypes: map[string]*types.StructType{},
		enumTypes:   map[string]*types.EnumType{},
		funcs:       map[string]*funcInfo{},
		structNodes: map[string]ast.StructItem{},
		enumNodes:   map[string]ast.EnumItem{},
	}
	c.declare(prog)

	out := &hir.Program{}
	for _, st := range c.structTypes {
		out.Structs = append(out.Structs, st)
	}
	for _, et := range c.enumTypes {
		out.Enums = append(out.Enums, et)
	}
	for _, name := range c.funcOrder {
		fn := c.checkFunction(c.funcs[name])
		out.Functions = append(out.Functions, fn)
		if name == "main" {
			out.Entry = fn
		}
	}
	return out, c.bag
}

func (c *Checker) nameError(sp token.Span, format string, args ...any) {
	c.bag.Add(diag.NameError{Sp: sp, Message: fmt.Sprintf(format, args...)})
}

func (c *Checker) typeError(sp token.Span, format string, args ...any) {
	c.bag.Add(diag.TypeError{Sp: sp, Message: fmt.Sprintf(format, args...)})
}

func (c *Checker) coercionError(sp token.Span, format string, args ...any) {
	c.bag.Add(diag.CoercionError{Sp: sp, Message: fmt.Sprintf(format, args...)})
}

func (c *Checker) exhaustivenessError(sp token.Span, format string, args ...any) {
	c.bag.Add(diag.ExhaustivenessError{Sp: sp, Message: fmt.Sprintf(format, args...)})
}

func (c *Checker) internalError(sp token.Span, format string, args ...any) {
	c.bag.Add(diag.InternalError{Sp: sp, Message: fmt.Sprintf(format, args...)})
}

func poison(sp token.Span) hir.Node { return hir.NewPoison(sp) }

// spanOfNode is a tiny helper for the rare case a caller only has a raw
// *syntax.Node (error-recovery paths).
func spanOfNode(n *syntax.Node) token.Span {
	if n == nil {
		return token.Span{}
	}
	return n.Span()
}
