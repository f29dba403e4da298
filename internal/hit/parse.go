package hit

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// OutFmt is the tabular layout requested from the search tool.
const OutFmt = "6 qseqid sseqid pident length qstart qend sstart send evalue bitscore"

// minFields is the column count of OutFmt.
const minFields = 10

// ParseStats counts what ParseTabular saw.
type ParseStats struct {
	Lines   int // non-blank lines
	Kept    int
	Skipped int // short rows or non-integer query coordinates
}

// ParseTabular reads whitespace-separated rows in OutFmt layout. Blank lines
// and '#' comments are ignored; rows with fewer than ten fields or
// non-integer qstart/qend are skipped and counted. Query coordinates are
// normalized so Start <= End.
func ParseTabular(r io.Reader, kind Kind) ([]Hit, ParseStats, error) {
	var (
		out []Hit
		st  ParseStats
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), 4<<20)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		st.Lines++
		h, ok := parseRow(strings.Fields(line), kind)
		if !ok {
			st.Skipped++
			continue
		}
		out = append(out, h)
		st.Kept++
	}
	if err := sc.Err(); err != nil {
		return nil, st, err
	}
	return out, st, nil
}

func parseRow(f []string, kind Kind) (Hit, bool) {
	if len(f) < minFields {
		return Hit{}, false
	}
	qs, err1 := strconv.Atoi(f[4])
	qe, err2 := strconv.Atoi(f[5])
	if err1 != nil || err2 != nil {
		return Hit{}, false
	}
	h := Hit{
		ContigID: f[0],
		Name:     f[1],
		Start:    min(qs, qe),
		End:      max(qs, qe),
		Kind:     kind,
	}
	// Alignment attributes are informational; a bad value leaves a zero.
	h.Identity, _ = strconv.ParseFloat(f[2], 64)
	h.AlnLength, _ = strconv.Atoi(f[3])
	h.EValue, _ = strconv.ParseFloat(f[8], 64)
	h.BitScore, _ = strconv.ParseFloat(f[9], 64)
	return h, true
}

// LoadFile parses a hit table from disk. Paths ending in ".gz" are
// decompressed on the fly.
func LoadFile(path string, kind Kind) ([]Hit, ParseStats, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, ParseStats{}, err
	}
	defer fh.Close()

	var r io.Reader = fh
	if strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			return nil, ParseStats{}, fmt.Errorf("%s: %w", path, err)
		}
		defer gr.Close()
		r = gr
	}
	hits, st, err := ParseTabular(r, kind)
	if err != nil {
		return nil, st, fmt.Errorf("%s: %w", path, err)
	}
	return hits, st, nil
}
