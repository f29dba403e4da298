// internal/writers/jsonl.go
package writers

import (
	"encoding/json"
	"io"

	"cdmec/internal/jsonlutil"
	"cdmec/internal/output"
)

// StartRowJSONLWriter streams each row as one JSON line (v1).
func StartRowJSONLWriter(out io.Writer, bufSize int) (chan<- output.Row, <-chan error) {
	return jsonlutil.Start[output.Row](out, bufSize,
		func(enc *json.Encoder, r output.Row) error {
			return enc.Encode(output.ToAPIRow(r))
		},
		IsBrokenPipe,
	)
}
