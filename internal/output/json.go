// internal/output/json.go
package output

import (
	"io"

	"cdmec/internal/jsonutil"
	"cdmec/pkg/api"
)

// ToAPIAssociation converts a Row to the stable wire schema (v1).
func ToAPIAssociation(r Row) api.AssociationV1 {
	return api.AssociationV1{
		ARGName:        r.ARGName,
		ContigID:       r.ContigID,
		ARGStart:       r.ARGStart,
		ARGEnd:         r.ARGEnd,
		MGEAssociation: r.MGEAssociation,
		ProximityBP:    r.ProximityBP,
		InferredStatus: r.Status,
	}
}

// ToAPIRow keeps the sample id alongside the association.
func ToAPIRow(r Row) api.RowV1 {
	return api.RowV1{SampleID: r.SampleID, AssociationV1: ToAPIAssociation(r)}
}

// ToAPISample builds the per-sample document. ARGHits is never null.
func ToAPISample(sampleID, runID string, rows []Row) api.SampleV1 {
	doc := api.SampleV1{SampleID: sampleID, RunID: runID, ARGHits: make([]api.AssociationV1, 0, len(rows))}
	for _, r := range rows {
		doc.ARGHits = append(doc.ARGHits, ToAPIAssociation(r))
	}
	return doc
}

// WriteSampleJSON writes the per-sample document (pretty-indented).
func WriteSampleJSON(w io.Writer, sampleID, runID string, rows []Row) error {
	return jsonutil.EncodePretty(w, ToAPISample(sampleID, runID, rows))
}

// WriteJSON writes a single JSON array of v1 rows (pretty-indented).
func WriteJSON(w io.Writer, rows []Row) error {
	out := make([]api.RowV1, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToAPIRow(r))
	}
	return jsonutil.EncodePretty(w, out)
}
