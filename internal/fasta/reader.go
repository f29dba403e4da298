// internal/fasta/reader.go
package fasta

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record is one FASTA entry (a contig in an assembly).
type Record struct {
	ID  string
	Len int
}

// Stream emits one Record per header with the sequence length summed over
// its lines. Sequences are not retained; the search tool reads the file
// itself.
func Stream(path string) (<-chan Record, <-chan error, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, nil, err
	}
	out := make(chan Record, 16)
	errc := make(chan error, 1)

	go func() {
		defer rc.Close()
		defer close(out)

		r := bufio.NewReader(rc)
		var (
			cur  Record
			have bool
		)
		for {
			line, err := r.ReadBytes('\n')
			line = bytes.TrimRight(line, "\r\n")
			if len(line) > 0 {
				if line[0] == '>' {
					if have {
						out <- cur
					}
					fields := strings.Fields(string(line[1:]))
					if len(fields) == 0 {
						errc <- fmt.Errorf("%s: empty FASTA header", path)
						return
					}
					cur, have = Record{ID: fields[0]}, true
				} else if have {
					cur.Len += len(bytes.TrimSpace(line))
				}
			}
			if err == io.EOF {
				break
			}
			if err != nil {
				errc <- err
				return
			}
		}
		if have {
			out <- cur
		}
		errc <- nil
	}()
	return out, errc, nil
}

// Contigs reads every header of path. It fails on files with no records.
func Contigs(path string) ([]Record, error) {
	ch, errc, err := Stream(path)
	if err != nil {
		return nil, err
	}
	var recs []Record
	for r := range ch {
		recs = append(recs, r)
	}
	if err := <-errc; err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("%s: no FASTA records", path)
	}
	return recs, nil
}

/* ---------------- small helpers ---------------- */

func openReader(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			fh.Close()
			return nil, err
		}
		return struct {
			io.Reader
			io.Closer
		}{Reader: gr, Closer: fh}, nil
	}
	return fh, nil
}
