package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"rue/rue"
)

// checkCmd runs the full rue.Compile pipeline and reports its
// diagnostics, printing "ok" instead of the bytecode when there are no
// errors; it does not stop after type checking, so diagnostics from
// lowering, optimization and codegen are reported too — useful for
// editor tooling and for SPEC_FULL.md's "never codegen a program with
// errors" rule made explicit as its own command.
type checkCmd struct{}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "Type-check a Rue source file without compiling it" }
func (*checkCmd) Usage() string {
	return `check <file>:
  Report diagnostics for a Rue source file.
`
}
func (*checkCmd) SetFlags(f *flag.FlagSet) {}

func (cmd *checkCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 File not provided\n")
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to read file: %v\n", err)
		return subcommands.ExitFailure
	}

	result := rue.Compile(string(data))
	if printDiagnostics(result.Diagnostics) {
		return subcommands.ExitFailure
	}
	fmt.Println("ok")
	return subcommands.ExitSuccess
}
