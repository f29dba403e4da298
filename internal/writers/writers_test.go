package writers

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cdmec/internal/output"
	"cdmec/pkg/api"
)

func rows() []output.Row {
	return []output.Row{
		{SampleID: "S2", ContigID: "c1", ARGName: "tetM", ARGStart: 100, ARGEnd: 200,
			MGEAssociation: "ISCd1:250-300", ProximityBP: 50, Status: "MGE-Associated (Downstream)"},
		{SampleID: "S1", ContigID: "c9", ARGName: "ermB", ARGStart: 500, ARGEnd: 600,
			MGEAssociation: "Tn916:550-620", ProximityBP: 0, Status: "Embedded within MGE"},
		{SampleID: "S1", ContigID: "c1", ARGName: "vanA", ARGStart: 10, ARGEnd: 90,
			MGEAssociation: "IS6:200-300", ProximityBP: 110, Status: "Transposon-Associated (Downstream)"},
	}
}

func send(t *testing.T, format string, sort, header bool) string {
	t.Helper()
	var buf bytes.Buffer
	in, done := StartRowWriter(&buf, format, sort, header, 1)
	for _, r := range rows() {
		in <- r
	}
	close(in)
	require.NoError(t, <-done)
	return buf.String()
}

func TestTextWriter_HeaderAndSort(t *testing.T) {
	out := send(t, output.FormatText, true, true)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, output.TSVHeader, lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "S1\tc1\tvanA"), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "S1\tc9\termB"), lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "S2\t"), lines[3])
}

func TestTextWriter_StreamKeepsOrder(t *testing.T) {
	out := send(t, output.FormatText, false, false)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "S2\t"))
}

func TestJSONWriter(t *testing.T) {
	var got []api.RowV1
	require.NoError(t, json.Unmarshal([]byte(send(t, output.FormatJSON, true, false)), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "vanA", got[0].ARGName)
}

func TestJSONLWriter_StreamsValidV1(t *testing.T) {
	sc := bufio.NewScanner(strings.NewReader(send(t, output.FormatJSONL, false, false)))
	n := 0
	for sc.Scan() {
		n++
		var v api.RowV1
		require.NoError(t, json.Unmarshal(sc.Bytes(), &v), sc.Text())
		assert.NotEmpty(t, v.SampleID)
		assert.NotEmpty(t, v.InferredStatus)
	}
	assert.Equal(t, 3, n)
}

func TestNoneWriter(t *testing.T) {
	assert.Empty(t, send(t, output.FormatNone, false, true))
}

func TestUnknownFormatError(t *testing.T) {
	var b bytes.Buffer
	in, done := StartRowWriter(&b, "nope-format", false, false, 1)
	in <- rows()[0]
	in <- rows()[1]
	close(in)
	err := <-done
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestFormatsRegistered(t *testing.T) {
	assert.ElementsMatch(t,
		[]string{output.FormatText, output.FormatJSON, output.FormatJSONL, output.FormatNone},
		Formats())
}

func TestIsBrokenPipe(t *testing.T) {
	assert.True(t, IsBrokenPipe(syscall.EPIPE))
	assert.True(t, IsBrokenPipe(fmt.Errorf("write: %w", syscall.ECONNRESET)))
	assert.False(t, IsBrokenPipe(nil))
}
