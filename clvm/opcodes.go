// Package clvm turns optimized LIR into an actual CLVM s-expression
// (spec.md §4.8) and serializes it to bytecode. There's no teacher
// analogue for an external VM's wire format — the teacher's vm/ targets
// its own bytecode — so this package is grounded directly in spec.md's
// bytecode layout description and the GLOSSARY's opcode/atom
// definitions.
package clvm

// Opcode numbering is this compiler's own — spec.md constrains only the
// wire *shape* (atoms, pairs, the quote/apply/if skeleton), not specific
// integers, so any consistent table satisfies it (recorded as an Open
// Question resolution in DESIGN.md).
const (
	opQuote  = 1
	opApply  = 2
	opIf     = 3
	opCons   = 4
	opFirst  = 5
	opRest   = 6
	opListp  = 7
	opEq     = 9
	opSha256 = 11
	opConcat = 14
	opStrlen = 15
	opAdd    = 16
	opSub    = 17
	opMul    = 18
	opDiv    = 19
	opMod    = 20
	opGt     = 21
)

var opcodeByName = map[string]int64{
	"first":  opFirst,
	"rest":   opRest,
	"listp":  opListp,
	"=":      opEq,
	"sha256": opSha256,
	"concat": opConcat,
	"strlen": opStrlen,
	"+":      opAdd,
	"-":      opSub,
	"*":      opMul,
	"/":      opDiv,
	"%":      opMod,
	">":      opGt,
}
