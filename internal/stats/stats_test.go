package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cdmec/internal/output"
)

func r(sample, contig, arg, mge string, prox int, status string) output.Row {
	return output.Row{SampleID: sample, ContigID: contig, ARGName: arg, MGEAssociation: mge,
		ProximityBP: prox, Status: status}
}

func master() []output.Row {
	return []output.Row{
		r("S1", "c1", "tetM", "Tn916:1-2", 0, "Embedded within MGE"),
		r("S1", "c1", "ermB", "IS1:5-9", -1000, "MGE-Associated (Upstream)"),
		r("S1", "c2", "tetM", "Tn916:1-2", 500, "MGE-Associated (Downstream)"),
		r("S2", "c1", "vanA", "IS6:3-4", 1001, "Transposon-Associated (Downstream)"),
		r("S2", "c1", "ermB", "Tn916:1-2", 0, "Embedded within MGE"),
		r("S2", "c3", "cfr", "p1:1-9", -9999, "Plasmid-Associated (Upstream)"),
	}
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, Summary{Total: 6, Embedded: 2, Samples: 2, Contigs: 4}, Summarize(master()))
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestTopMobile(t *testing.T) {
	args, mges := TopMobile(master(), MobileWithinBP, TopN)
	// vanA (1001) and cfr (-9999) are outside the window; ±1000 is inside
	assert.Equal(t, []Count{{"tetM", 2}, {"ermB", 2}}, args)
	assert.Equal(t, []Count{{"Tn916:1-2", 3}, {"IS1:5-9", 1}}, mges)

	args, _ = TopMobile(master(), MobileWithinBP, 1)
	assert.Equal(t, []Count{{"tetM", 2}}, args)

	args, _ = TopMobile(master(), 100000, 0)
	assert.Len(t, args, 4)
}

func TestHistogram(t *testing.T) {
	h := NewHistogram(master(), 10000, 100)
	require.Len(t, h.Counts, 100)
	assert.Equal(t, 6, h.Total())
	assert.Zero(t, h.Below+h.Above)
	// 0 falls into the bin starting at 0
	lo, hi := h.Bounds(50)
	assert.InDelta(t, 0, lo, 1e-9)
	assert.InDelta(t, 200, hi, 1e-9)
	assert.Equal(t, 2, h.Counts[50])
	assert.Equal(t, 1, h.Counts[0]) // -9999

	edge := NewHistogram([]output.Row{{ProximityBP: 10}, {ProximityBP: -10}, {ProximityBP: 11}, {ProximityBP: -11}}, 10, 4)
	assert.Equal(t, []int{1, 0, 0, 1}, edge.Counts)
	assert.Equal(t, 1, edge.Below)
	assert.Equal(t, 1, edge.Above)

	var buf bytes.Buffer
	require.NoError(t, edge.Render(&buf, 10))
	assert.Contains(t, buf.String(), "out of range: 1 below, 1 above")
	assert.Equal(t, 3, strings.Count(buf.String(), "\n"))
}

func TestSignatures(t *testing.T) {
	samples := []SampleRows{
		{Source: "a.tsv", Rows: []output.Row{
			{ARGName: "tetM", ProximityBP: 50},
			{ARGName: "tetM", ProximityBP: 50},
			{ARGName: "ermB", ProximityBP: -20},
		}},
		{Source: "b.tsv", Rows: []output.Row{
			{ARGName: "tetM", ProximityBP: 10},
			{ARGName: "ermB", ProximityBP: 30},
		}},
		{Source: "c.tsv"},
		{Source: "d.tsv", Rows: []output.Row{{ARGName: "tetM", ProximityBP: 10}}},
	}
	got := Signatures("Human", samples)
	require.Len(t, got, 2)

	erm := got[0]
	assert.Equal(t, "ermB", erm.Gene)
	assert.Equal(t, -20, erm.DistanceBP) // tie resolves to the smallest
	assert.Equal(t, 2, erm.TotalHits)
	assert.Equal(t, 2, erm.Samples)
	assert.InDelta(t, 50.0, erm.PrevalencePct, 1e-9)
	assert.InDelta(t, 0.5, erm.AvgCopies, 1e-9)

	tet := got[1]
	assert.Equal(t, "Human", tet.Host)
	assert.Equal(t, 10, tet.DistanceBP) // 50 and 10 both twice
	assert.Equal(t, 4, tet.TotalHits)
	assert.Equal(t, 3, tet.Samples)
	assert.InDelta(t, 75.0, tet.PrevalencePct, 1e-9)
	assert.InDelta(t, 1.0, tet.AvgCopies, 1e-9)

	assert.Nil(t, Signatures("Empty", nil))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCounts(&buf, TopARGHeader, []Count{{"aph(3'),x", 3}}))
	assert.Equal(t, "Resistance_Gene,Mobile_Occurrence_Count\n\"aph(3'),x\",3\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteSignatures(&buf, []Signature{{
		Host: "Porcine", Gene: "tetM", DistanceBP: -5, TotalHits: 3, Samples: 2, PrevalencePct: 66.5, AvgCopies: 1,
	}}))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(SignatureHeader, ","), lines[0])
	assert.Equal(t, "tetM,-5,3,2,66.5,1,Porcine", lines[1])
}

func TestWriteReport(t *testing.T) {
	args, mges := TopMobile(master(), MobileWithinBP, TopN)
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, ReportOptions{
		Title: "Cdiff", Within: MobileWithinBP, Summary: Summarize(master()),
		TopARGs: args, TopMGEs: mges, Produced: []string{"Cdiff_Top_ARGs.csv"},
	}))
	out := buf.String()
	assert.Contains(t, out, "SUMMARY REPORT: Cdiff")
	assert.Contains(t, out, "Total Associations Found: 6")
	assert.Contains(t, out, "Embedded (High Risk):     2")
	assert.Contains(t, out, "<=1,000 bp")
	assert.Contains(t, out, "Tn916:1-2")
	assert.Contains(t, out, "Cdiff_Top_ARGs.csv")
	assert.NotContains(t, out, "\x1b[")

	buf.Reset()
	require.NoError(t, WriteReport(&buf, ReportOptions{Title: "none"}))
	assert.Contains(t, buf.String(), "(none)")
}
