// pkg/api/associations_v1.go
package api

// AssociationV1 is the stable JSON schema for one ARG→MGE association.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
// Key spelling follows the established per-sample report format.
type AssociationV1 struct {
	ARGName        string `json:"ARG_Name"`
	ContigID       string `json:"Contig_ID"`
	ARGStart       int    `json:"ARG_Start"`
	ARGEnd         int    `json:"ARG_End"`
	MGEAssociation string `json:"MGE_Association"` // "name:start-end"
	ProximityBP    int    `json:"Proximity_bp"`    // <0 upstream, >0 downstream, 0 overlap
	InferredStatus string `json:"Inferred_Status"`
}

// SampleV1 is the per-sample report document.
type SampleV1 struct {
	SampleID string          `json:"Sample_ID"`
	RunID    string          `json:"Run_ID,omitempty"`
	ARGHits  []AssociationV1 `json:"ARG_Hits"`
}

// RowV1 is one association tagged with its sample (JSONL stream).
type RowV1 struct {
	SampleID string `json:"Sample_ID"`
	AssociationV1
}
