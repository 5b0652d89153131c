package check

import (
	"testing"

	"rue/ast"
	"rue/diag"
	"rue/lexer"
	"rue/parser"
	"rue/types"
)

func parseProgram(t *testing.T, src string) ast.Program {
	t.Helper()
	bag := diag.NewBag()
	tokens := lexer.New(src, bag).Scan()
	cst := parser.Parse(tokens, bag)
	if bag.HasErrors() {
		t.Fatalf("unexpected parse diagnostics: %v", bag.Diagnostics())
	}
	return ast.FromCST(cst)
}

func TestCheckValidFunctionProducesEntry(t *testing.T) {
	prog := parseProgram(t, `
fun main(x: Int) -> Int {
	x + 1
}
`)
	hirProg, bag := Check(prog)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Diagnostics())
	}
	if hirProg.Entry == nil {
		t.Fatalf("expected main to be recognized as the entry function")
	}
	if hirProg.Entry.ReturnType != types.Int {
		t.Errorf("expected entry return type Int, got %s", hirProg.Entry.ReturnType)
	}
}

func TestCheckReturnTypeMismatchIsAnError(t *testing.T) {
	prog := parseProgram(t, `
fun main(x: Int) -> Int {
	x > 0
}
`)
	_, bag := Check(prog)
	if !bag.HasErrors() {
		t.Errorf("expected a type error for a Bool-typed body with declared return type Int")
	}
}

func TestCheckDuplicateTopLevelNameIsAnError(t *testing.T) {
	prog := parseProgram(t, `
fun main() -> Int {
	0
}
fun main() -> Int {
	1
}
`)
	_, bag := Check(prog)
	if !bag.HasErrors() {
		t.Errorf("expected a name error for a duplicate top-level function name")
	}
}

func TestCheckCallToUndeclaredFunctionIsAnError(t *testing.T) {
	prog := parseProgram(t, `
fun main() -> Int {
	helper()
}
`)
	_, bag := Check(prog)
	if !bag.HasErrors() {
		t.Errorf("expected a name error for a call to an undeclared function")
	}
}

func TestCheckFunctionsMayCallEachOtherRegardlessOfOrder(t *testing.T) {
	prog := parseProgram(t, `
fun main() -> Int {
	helper()
}
fun helper() -> Int {
	1
}
`)
	_, bag := Check(prog)
	if bag.HasErrors() {
		t.Errorf("unexpected diagnostics for forward-referenced function call: %v", bag.Diagnostics())
	}
}
