package appcore

import (
	"bytes"
	"context"
	"fmt"

	"cdmec/internal/artifact"
	"cdmec/internal/output"
)

// WriteReports stores <sample>_cdmec.json and <sample>_cdmec_summary.tsv.
func WriteReports(ctx context.Context, st artifact.Store, sampleID, runID string, rows []output.Row) error {
	jsonPath, tsvPath := output.ReportPaths(sampleID)

	var js bytes.Buffer
	if err := output.WriteSampleJSON(&js, sampleID, runID, rows); err != nil {
		return fmt.Errorf("%s: encode json: %w", sampleID, err)
	}
	if err := st.Put(ctx, jsonPath, js.Bytes()); err != nil {
		return fmt.Errorf("%s: write %s: %w", sampleID, jsonPath, err)
	}

	var tsv bytes.Buffer
	if err := output.WriteSampleTSV(&tsv, rows); err != nil {
		return fmt.Errorf("%s: encode tsv: %w", sampleID, err)
	}
	if err := st.Put(ctx, tsvPath, tsv.Bytes()); err != nil {
		return fmt.Errorf("%s: write %s: %w", sampleID, tsvPath, err)
	}
	return nil
}
