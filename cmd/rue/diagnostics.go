package main

import (
	"fmt"
	"os"

	"rue/diag"
)

// printDiagnostics writes one line per diagnostic to stderr, in the
// teacher's `fmt.Fprintln(os.Stderr, error)` style (cmd_run.go,
// cmd_repl.go), and reports whether any of them was an error rather
// than a warning.
func printDiagnostics(diags []diag.Diagnostic) (hasErrors bool) {
	for _, d := range diags {
		fmt.Fprintf(os.Stderr, "%s: %s\n", d.Severity(), d.Error())
		if d.Severity() == diag.SeverityError {
			hasErrors = true
		}
	}
	return hasErrors
}
