package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"

	"rue/rue"
)

// replCmd is an interactive loop over rue.Compile: each accepted entry
// function's worth of source is compiled in isolation and the
// resulting hex bytecode printed, generalizing the teacher's
// replCompiledCmd (cmd_repl_compiled.go) from "compile to Nilan
// bytecode and run it on the stack VM" to "compile to CLVM bytecode
// and print it" — Rue has no runtime of its own to execute against
// (DESIGN.md).
type replCmd struct{}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start an interactive Rue compilation session" }
func (*replCmd) Usage() string {
	return `repl:
  Compile one function at a time and print its CLVM bytecode as hex.
`
}
func (*replCmd) SetFlags(f *flag.FlagSet) {}

func (cmd *replCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rl, err := readline.New(">>> ")
	if err != nil {
		fmt.Println(err)
		return subcommands.ExitFailure
	}
	defer rl.Close()

	fmt.Println("\nWelcome to Rue!")
	fmt.Println("Enter a complete fun/struct/enum item; \"exit\" quits.")

	var buffer strings.Builder
	for {
		if buffer.Len() == 0 {
			rl.SetPrompt(">>> ")
		} else {
			rl.SetPrompt("... ")
		}
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return subcommands.ExitSuccess
		}
		if err != nil {
			fmt.Println(err)
			return subcommands.ExitFailure
		}

		if strings.TrimSpace(line) == "exit" && buffer.Len() == 0 {
			return subcommands.ExitSuccess
		}

		if buffer.Len() > 0 {
			buffer.WriteString("\n")
		}
		buffer.WriteString(line)

		if !braceBalanced(buffer.String()) {
			continue
		}

		source := buffer.String()
		buffer.Reset()

		result := rue.Compile(source)
		if printDiagnostics(result.Diagnostics) {
			continue
		}
		fmt.Println(hex.EncodeToString(result.Bytecode))
	}
}

// braceBalanced is a REPL-only readiness check (no parser state is
// reused across lines, so it can't ask the parser directly): wait for
// more input while curly braces are unbalanced, mirroring the
// teacher's isInputReady brace count (cmd_repl_compiled.go).
func braceBalanced(src string) bool {
	depth := 0
	for _, r := range src {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
		}
	}
	return depth <= 0
}
