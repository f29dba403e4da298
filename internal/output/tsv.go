package output

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// WriteTSV writes rows as a summary table.
func WriteTSV(w io.Writer, rows []Row, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for _, r := range rows {
		if _, err := fmt.Fprintln(w, FormatRowTSV(r)); err != nil {
			return err
		}
	}
	return nil
}

// WriteSampleTSV writes a per-sample summary table with its header.
func WriteSampleTSV(w io.Writer, rows []Row) error {
	return WriteTSV(w, rows, true)
}

// StreamTSV writes rows as they arrive.
func StreamTSV(w io.Writer, in <-chan Row, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for r := range in {
		if _, err := fmt.Fprintln(w, FormatRowTSV(r)); err != nil {
			return err
		}
	}
	return nil
}

// ReadSummaryTSV parses a summary table. A leading header line is skipped; blank
// lines are ignored.
func ReadSummaryTSV(r io.Reader) ([]Row, error) {
	var out []Row
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), 4<<20)
	ln := 0
	for sc.Scan() {
		ln++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if ln == 1 && strings.HasPrefix(line, Columns[0]) {
			continue
		}
		row, err := ParseRowTSV(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", ln, err)
		}
		out = append(out, row)
	}
	return out, sc.Err()
}

// WriteCSV writes rows comma-separated with a header (master tables).
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.Fields()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a master table written by WriteCSV. Columns are located by
// header name, so extra or reordered columns are tolerated.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	head, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	pos := make([]int, len(Columns))
	for i, want := range Columns {
		pos[i] = -1
		for j, h := range head {
			if strings.TrimSpace(h) == want {
				pos[i] = j
				break
			}
		}
		if pos[i] < 0 {
			return nil, fmt.Errorf("missing column %q", want)
		}
	}
	var out []Row
	for ln := 2; ; ln++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		f := make([]string, len(Columns))
		for i, p := range pos {
			if p < len(rec) {
				f[i] = rec[p]
			}
		}
		row, err := ParseFields(f)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", ln, err)
		}
		out = append(out, row)
	}
	return out, nil
}

// ReadTable loads a TSV or (".csv") CSV table from disk.
func ReadTable(path string) ([]Row, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	var rows []Row
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		rows, err = ReadCSV(fh)
	} else {
		rows, err = ReadSummaryTSV(fh)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}
