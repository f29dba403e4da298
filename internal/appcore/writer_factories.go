package appcore

import (
	"io"

	"cdmec/internal/output"
	"cdmec/internal/writers"
)

// RowWriterFactory starts the stdout writer for association rows.
type RowWriterFactory struct {
	Format string
	Sort   bool
	Header bool
}

func NewRowWriterFactory(format string, sort, header bool) RowWriterFactory {
	return RowWriterFactory{Format: format, Sort: sort, Header: header}
}

func (w RowWriterFactory) Start(out io.Writer, bufSize int) (chan<- output.Row, <-chan error) {
	format := w.Format
	if format == "" {
		format = output.FormatNone
	}
	return writers.StartRowWriter(out, format, w.Sort, w.Header, bufSize)
}
