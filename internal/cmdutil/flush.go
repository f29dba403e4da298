package cmdutil

import (
	"bufio"
	"flag"
	"fmt"
	"io"

	"cdmec/internal/writers"
)

// Exit codes shared by every tool.
const (
	ExitOK        = 0
	ExitNoMatch   = 1
	ExitUsage     = 2
	ExitIO        = 3
	ExitCancelled = 130
)

// Flush flushes buffered stdout. A broken pipe counts as success; any
// other error is reported on stderr and mapped to ExitIO.
func Flush(outw *bufio.Writer, stderr io.Writer) int {
	if err := outw.Flush(); err != nil && !writers.IsBrokenPipe(err) {
		_, _ = fmt.Fprintln(stderr, err)
		return ExitIO
	}
	return ExitOK
}

// FlushThen flushes and returns code unless the flush itself failed.
func FlushThen(outw *bufio.Writer, stderr io.Writer, code int) int {
	if c := Flush(outw, stderr); c != ExitOK {
		return c
	}
	return code
}

// Usage prints fs usage to outw and returns code (or ExitIO if the flush
// fails).
func Usage(fs *flag.FlagSet, outw *bufio.Writer, stderr io.Writer, code int) int {
	fs.SetOutput(outw)
	fs.Usage()
	return FlushThen(outw, stderr, code)
}
