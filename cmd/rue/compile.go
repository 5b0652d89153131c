package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"rue/hir"
	"rue/lir"
	"rue/rue"
	"rue/syntax"
)

// compileCmd implements `rue compile <file>`, generalizing the
// teacher's emitBytecodeCmd (cmd_emit_bytecode.go) from Nilan's stack
// bytecode to CLVM serialization, plus the -dump-* inspection flags
// SPEC_FULL.md's AMBIENT STACK section calls for.
type compileCmd struct {
	out      string
	dumpCST  bool
	dumpHIR  bool
	dumpLIR  bool
}

func (*compileCmd) Name() string     { return "compile" }
func (*compileCmd) Synopsis() string { return "Compile a Rue source file to CLVM bytecode" }
func (*compileCmd) Usage() string {
	return `compile [-o out] [-dump-cst] [-dump-hir] [-dump-lir] <file>:
  Compile Rue source to serialized CLVM bytecode.
`
}

func (cmd *compileCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&cmd.out, "o", "", "output file for the compiled bytecode (default: hex to stdout)")
	f.BoolVar(&cmd.dumpCST, "dump-cst", false, "dump the parsed CST as JSON to <input>.cst.json")
	f.BoolVar(&cmd.dumpHIR, "dump-hir", false, "dump the checked HIR as JSON to <input>.hir.json")
	f.BoolVar(&cmd.dumpLIR, "dump-lir", false, "dump the optimized LIR as JSON to <input>.lir.json")
}

func (cmd *compileCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 File not provided\n")
		return subcommands.ExitUsageError
	}
	filename := args[0]

	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to read file: %v\n", err)
		return subcommands.ExitFailure
	}

	result := rue.Compile(string(data))

	if cmd.dumpCST {
		if err := dumpJSON(stem(filename)+".cst.json", func() (string, error) { return syntax.DumpJSON(result.CST) }); err != nil {
			fmt.Fprintf(os.Stderr, "💥 Dump CST error:\n\t%s\n", err)
			return subcommands.ExitFailure
		}
	}
	if cmd.dumpHIR && result.HIR != nil {
		if err := dumpJSON(stem(filename)+".hir.json", func() (string, error) { return hir.DumpJSON(result.HIR) }); err != nil {
			fmt.Fprintf(os.Stderr, "💥 Dump HIR error:\n\t%s\n", err)
			return subcommands.ExitFailure
		}
	}
	if cmd.dumpLIR && result.LIR != nil {
		if err := dumpJSON(stem(filename)+".lir.json", func() (string, error) { return lir.DumpJSON(result.LIR) }); err != nil {
			fmt.Fprintf(os.Stderr, "💥 Dump LIR error:\n\t%s\n", err)
			return subcommands.ExitFailure
		}
	}

	hasErrors := printDiagnostics(result.Diagnostics)
	if hasErrors || result.Bytecode == nil {
		return subcommands.ExitFailure
	}

	// spec.md §6: hex-encoded bytecode to stdout on success; -o
	// redirects that same hex text to a file instead.
	out := hex.EncodeToString(result.Bytecode) + "\n"
	if cmd.out == "" {
		fmt.Print(out)
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(cmd.out, []byte(out), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to write bytecode: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func stem(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[:i]
	}
	return path
}

func dumpJSON(path string, render func() (string, error)) error {
	text, err := render()
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text), 0o644)
}
