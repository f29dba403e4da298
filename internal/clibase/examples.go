// internal/clibase/examples.go
package clibase

import (
	"errors"
	"fmt"
	"io"
)

// ErrPrintedAndExitOK is returned by ParseArgs when --examples was given.
// Apps print the examples and exit 0.
var ErrPrintedAndExitOK = errors.New("examples requested")

// Example is one quickstart entry.
type Example struct {
	Title   string
	Command string
}

// PrintExamples prints the quickstart for a tool.
func PrintExamples(out io.Writer, name string, examples []Example) {
	if out == nil {
		return
	}
	_, _ = fmt.Fprintf(out, "%s: quickstart\n", name)
	for _, ex := range examples {
		_, _ = fmt.Fprintf(out, "\n%s\n  %s\n", ex.Title, ex.Command)
	}
	_, _ = fmt.Fprintln(out, "\nTip: run with --help for all flags.")
}
