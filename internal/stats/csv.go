package stats

import (
	"encoding/csv"
	"io"
	"strconv"
)

// Column headers of the ranked tables.
var (
	TopARGHeader = []string{"Resistance_Gene", "Mobile_Occurrence_Count"}
	TopMGEHeader = []string{"MGE_Accession_Info", "Total_Cargo_Genes"}
)

// SignatureHeader is the column order of the signature table.
var SignatureHeader = []string{
	"Gene", "Signature_Distance_bp", "Total_Hits", "Samples_With_Gene",
	"Prevalence_Pct", "Avg_Copies_Per_Genome", "Host",
}

// WriteCounts writes a ranked table with the given header.
func WriteCounts(w io.Writer, header []string, counts []Count) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, c := range counts {
		if err := cw.Write([]string{c.Key, strconv.Itoa(c.N)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSignatures writes signature rows in the given order.
func WriteSignatures(w io.Writer, sigs []Signature) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SignatureHeader); err != nil {
		return err
	}
	for _, s := range sigs {
		rec := []string{
			s.Gene,
			strconv.Itoa(s.DistanceBP),
			strconv.Itoa(s.TotalHits),
			strconv.Itoa(s.Samples),
			strconv.FormatFloat(s.PrevalencePct, 'f', -1, 64),
			strconv.FormatFloat(s.AvgCopies, 'f', -1, 64),
			s.Host,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
