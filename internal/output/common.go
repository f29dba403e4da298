package output

// TSVHeader is the canonical header row for per-sample summary tables.
// Keep this as the single source of truth; all writers should use it.
const TSVHeader = "Sample_ID\tContig_ID\tARG_Name\tARG_Start\tARG_End\tMGE_Association\tProximity_bp\tInferred_Status"

// Columns is TSVHeader split into names.
var Columns = []string{
	"Sample_ID", "Contig_ID", "ARG_Name", "ARG_Start", "ARG_End",
	"MGE_Association", "Proximity_bp", "Inferred_Status",
}

// Output formats for the association stream.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
	FormatNone  = "none"
)

// Per-sample report file suffixes.
const (
	JSONSuffix    = "_cdmec.json"
	SummarySuffix = "_cdmec_summary.tsv"
)

// ReportPaths returns the JSON and TSV report names for a sample.
func ReportPaths(sampleID string) (jsonPath, tsvPath string) {
	return sampleID + JSONSuffix, sampleID + SummarySuffix
}
