package rue

import (
	"encoding/hex"
	"testing"
)

func TestCompileSimpleFunctionProducesBytecode(t *testing.T) {
	source := `
fun main(x: Int) -> Int {
	x + 1
}
`
	result := Compile(source)
	for _, d := range result.Diagnostics {
		t.Errorf("unexpected diagnostic: %s", d.Error())
	}
	if len(result.Bytecode) == 0 {
		t.Fatalf("expected non-empty bytecode for a valid program")
	}
	// Sanity: the bytecode should at least be valid CLVM-serialized bytes,
	// i.e. not just the empty-atom marker.
	if hex.EncodeToString(result.Bytecode) == "80" {
		t.Errorf("expected a non-trivial program, got the empty atom")
	}
}

func TestCompileTypeErrorSkipsCodegen(t *testing.T) {
	source := `
fun main(x: Int) -> Int {
	x > 0
}
`
	result := Compile(source)
	if len(result.Bytecode) != 0 {
		t.Errorf("expected no bytecode to be emitted for an ill-typed program")
	}
	if len(result.Diagnostics) == 0 {
		t.Errorf("expected at least one diagnostic for an ill-typed program")
	}
}

func TestCompileParseErrorSkipsCodegen(t *testing.T) {
	source := `fun main(x: Int) -> Int {`
	result := Compile(source)
	if len(result.Bytecode) != 0 {
		t.Errorf("expected no bytecode for a malformed program")
	}
	if len(result.Diagnostics) == 0 {
		t.Errorf("expected at least one diagnostic for a malformed program")
	}
}

// TestCompileHelloWorld is spec.md §8 scenario 1: `main` returning a
// string literal as Bytes must codegen cleanly with no diagnostics.
func TestCompileHelloWorld(t *testing.T) {
	source := `
fun main() -> Bytes {
	"Hello, world!"
}
`
	result := Compile(source)
	for _, d := range result.Diagnostics {
		t.Errorf("unexpected diagnostic: %s", d.Error())
	}
	if len(result.Bytecode) == 0 {
		t.Fatalf("expected non-empty bytecode")
	}
}

// TestCompileFactorialCompilesCleanly is spec.md §8 scenario 2: a
// self-recursive function with an Int parameter and return type.
func TestCompileFactorialCompilesCleanly(t *testing.T) {
	source := `
fun f(n: Int) -> Int {
	if n == 0 {
		1
	} else {
		n * f(n - 1)
	}
}
fun main(n: Int) -> Int {
	f(n)
}
`
	result := Compile(source)
	for _, d := range result.Diagnostics {
		t.Errorf("unexpected diagnostic: %s", d.Error())
	}
	if len(result.Bytecode) == 0 {
		t.Fatalf("expected non-empty bytecode")
	}
}

// TestCompileSubtractionWithoutSpacesStillParses guards against the lexer
// folding the `-` of `n-1` into a negative literal token: written tight
// there is no space to separate them, and the binary subtraction must
// still parse rather than losing its operator.
func TestCompileSubtractionWithoutSpacesStillParses(t *testing.T) {
	source := `
fun main(n: Int) -> Int {
	n-1
}
`
	result := Compile(source)
	for _, d := range result.Diagnostics {
		t.Errorf("unexpected diagnostic: %s", d.Error())
	}
	if len(result.Bytecode) == 0 {
		t.Fatalf("expected non-empty bytecode")
	}
}
