// internal/output/rows.go
package output

import (
	"fmt"
	"strconv"
	"strings"

	"cdmec/internal/engine"
)

// Row is one association as it appears in summary tables: the engine's
// Association flattened and tagged with its sample.
type Row struct {
	SampleID       string
	ContigID       string
	ARGName        string
	ARGStart       int
	ARGEnd         int
	MGEAssociation string
	ProximityBP    int
	Status         string
}

// RowsFrom tags associations with their sample id.
func RowsFrom(sampleID string, list []engine.Association) []Row {
	out := make([]Row, 0, len(list))
	for _, a := range list {
		out = append(out, Row{
			SampleID:       sampleID,
			ContigID:       a.ContigID,
			ARGName:        a.ArgName,
			ARGStart:       a.ArgStart,
			ARGEnd:         a.ArgEnd,
			MGEAssociation: a.MGEDescriptor(),
			ProximityBP:    a.ProximityBP,
			Status:         a.Status,
		})
	}
	return out
}

// Fields returns the row as strings in Columns order.
func (r Row) Fields() []string {
	return []string{
		r.SampleID, r.ContigID, r.ARGName,
		strconv.Itoa(r.ARGStart), strconv.Itoa(r.ARGEnd),
		r.MGEAssociation, strconv.Itoa(r.ProximityBP), r.Status,
	}
}

// FormatRowTSV returns the 8 columns (no trailing newline).
func FormatRowTSV(r Row) string {
	return strings.Join(r.Fields(), "\t")
}

// ParseFields builds a Row from values in Columns order.
func ParseFields(f []string) (Row, error) {
	if len(f) < len(Columns) {
		return Row{}, fmt.Errorf("want %d columns, got %d", len(Columns), len(f))
	}
	var (
		r   Row
		err error
	)
	r.SampleID, r.ContigID, r.ARGName = f[0], f[1], f[2]
	if r.ARGStart, err = strconv.Atoi(strings.TrimSpace(f[3])); err != nil {
		return Row{}, fmt.Errorf("ARG_Start: %w", err)
	}
	if r.ARGEnd, err = strconv.Atoi(strings.TrimSpace(f[4])); err != nil {
		return Row{}, fmt.Errorf("ARG_End: %w", err)
	}
	r.MGEAssociation = f[5]
	if r.ProximityBP, err = strconv.Atoi(strings.TrimSpace(f[6])); err != nil {
		return Row{}, fmt.Errorf("Proximity_bp: %w", err)
	}
	r.Status = strings.Join(f[7:], " ")
	return r, nil
}

// ParseRowTSV parses one summary line. Tab-separated lines are split on
// tabs; anything else falls back to whitespace with the trailing tokens
// joined back into the status label.
func ParseRowTSV(line string) (Row, error) {
	line = strings.TrimRight(line, "\r\n")
	if f := strings.Split(line, "\t"); len(f) == len(Columns) {
		return ParseFields(f)
	}
	return ParseFields(strings.Fields(line))
}

// Embedded reports whether the row's status is the overlap label.
func (r Row) Embedded() bool { return r.Status == engine.StatusEmbedded }
