// internal/writers/association.go
package writers

import (
	"io"
	"sort"

	"cdmec/internal/output"
)

func drainRows(ch <-chan output.Row) []output.Row {
	list := make([]output.Row, 0, 128)
	for r := range ch {
		list = append(list, r)
	}
	return list
}

// SortRows orders rows by sample, contig, ARG start, then ARG name.
func SortRows(list []output.Row) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.SampleID != b.SampleID {
			return a.SampleID < b.SampleID
		}
		if a.ContigID != b.ContigID {
			return a.ContigID < b.ContigID
		}
		if a.ARGStart != b.ARGStart {
			return a.ARGStart < b.ARGStart
		}
		return a.ARGName < b.ARGName
	})
}

func init() {
	RegisterRow(output.FormatJSON, func(w io.Writer, args RowArgs) error {
		list := drainRows(args.In)
		if args.Sort {
			SortRows(list)
		}
		return output.WriteJSON(w, list)
	})

	RegisterRow(output.FormatJSONL, func(w io.Writer, args RowArgs) error {
		pipe, done := StartRowJSONLWriter(w, 64)
		for r := range args.In {
			pipe <- r
		}
		close(pipe)
		return <-done
	})

	RegisterRow(output.FormatText, func(w io.Writer, args RowArgs) error {
		if args.Sort {
			list := drainRows(args.In)
			SortRows(list)
			return output.WriteTSV(w, list, args.Header)
		}
		return output.StreamTSV(w, args.In, args.Header)
	})

	// Reports only; the stream is drained and discarded.
	RegisterRow(output.FormatNone, func(_ io.Writer, args RowArgs) error {
		for range args.In {
		}
		return nil
	})
}

// StartRowWriter spins up a writer goroutine for association rows. Callers
// send rows, close the channel, then wait on the error channel.
func StartRowWriter(out io.Writer, format string, sort, header bool, bufSize int) (chan<- output.Row, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan output.Row, bufSize)
	errCh := make(chan error, 1)
	go func() {
		err := WriteRows(format, out, RowArgs{Sort: sort, Header: header, In: in})
		if err != nil {
			// keep producers unblocked after a dispatch or write failure
			for range in {
			}
		}
		if IsBrokenPipe(err) {
			err = nil
		}
		errCh <- err
	}()
	return in, errCh
}
