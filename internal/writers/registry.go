// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"

	"cdmec/internal/output"
)

// RowArgs is the payload handed to a registered row writer.
type RowArgs struct {
	Sort   bool
	Header bool
	In     <-chan output.Row
}

// RowWriters maps a format name to its handler. Handlers register in init().
var RowWriters = map[string]func(w io.Writer, args RowArgs) error{}

// RegisterRow installs a handler (last wins).
func RegisterRow(format string, fn func(io.Writer, RowArgs) error) { RowWriters[format] = fn }

// WriteRows dispatches to the handler registered for format.
func WriteRows(format string, w io.Writer, args RowArgs) error {
	fn, ok := RowWriters[format]
	if !ok {
		return fmt.Errorf("unknown output format %q (no writer registered)", format)
	}
	return fn(w, args)
}

// Formats lists the registered format names.
func Formats() []string {
	out := make([]string, 0, len(RowWriters))
	for k := range RowWriters {
		out = append(out, k)
	}
	return out
}
