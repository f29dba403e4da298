// Package jsonutil holds the shared JSON document encoder.
package jsonutil

import (
	"encoding/json"
	"io"
)

// Indent is the per-level indentation used for report documents.
const Indent = "    "

// EncodePretty writes v as indented JSON to w. HTML characters are left
// unescaped so reference names such as "aph(3')<>" survive verbatim.
func EncodePretty(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", Indent)
	return enc.Encode(v)
}
