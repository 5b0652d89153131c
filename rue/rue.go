// Package rue is the top-level compiler entry point: source text in,
// CLVM bytecode out, wiring lexer → parser → ast → check → lower →
// optimize → clvm the same way the teacher's ASTCompiler.CompileAST
// (compiler/ast_compiler.go) wires its own front end to its bytecode
// emitter (spec.md §7 "Compilation pipeline").
package rue

import (
	"rue/ast"
	"rue/check"
	"rue/clvm"
	"rue/diag"
	"rue/hir"
	"rue/lexer"
	"rue/lir"
	"rue/lower"
	"rue/optimize"
	"rue/parser"
	"rue/syntax"
)

// Result carries every intermediate artifact a caller might want to
// inspect (for the CLI's -dump-* flags) alongside the final bytecode.
type Result struct {
	CST         *syntax.Node
	Program     ast.Program
	HIR         *hir.Program
	LIR         *lir.Program
	Bytecode    []byte
	Diagnostics []diag.Diagnostic
}

// Compile runs the full pipeline over source and returns the emitted
// CLVM bytecode plus every diagnostic collected along the way.
// Diagnostics accumulate across every stage; codegen is skipped once
// the bag already holds an error, per spec.md §7's "never emit
// bytecode for a program with errors" rule.
func Compile(source string) Result {
	bag := diag.NewBag()

	lex := lexer.New(source, bag)
	tokens := lex.Scan()

	cst := parser.Parse(tokens, bag)
	prog := ast.FromCST(cst)

	res := Result{CST: cst, Program: prog, Diagnostics: bag.Diagnostics()}

	hirProg, checkBag := check.Check(prog)
	res.HIR = hirProg
	res.Diagnostics = append(res.Diagnostics, checkBag.Diagnostics()...)
	if bag.HasErrors() || checkBag.HasErrors() {
		return res
	}

	lirProg, lowerBag := lower.Lower(hirProg)
	res.Diagnostics = append(res.Diagnostics, lowerBag.Diagnostics()...)
	if lowerBag.HasErrors() {
		return res
	}

	optProg, optBag := optimize.Optimize(lirProg)
	res.Diagnostics = append(res.Diagnostics, optBag.Diagnostics()...)
	if optBag.HasErrors() {
		return res
	}
	res.LIR = optProg

	program, codegenBag := clvm.Codegen(optProg)
	res.Diagnostics = append(res.Diagnostics, codegenBag.Diagnostics()...)
	if codegenBag.HasErrors() {
		return res
	}

	res.Bytecode = clvm.Serialize(program)
	return res
}
