package appcore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cdmec/internal/artifact"
	"cdmec/internal/engine"
	"cdmec/internal/pipeline"
	"cdmec/internal/search"
	"cdmec/internal/store"
)

func quietLog() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func assoc(arg string, prox int) engine.Association {
	return engine.Association{
		ArgName: arg, ContigID: "c1", ArgStart: 100, ArgEnd: 200,
		MGEName: "ISCd1", MGEStart: 250, MGEEnd: 300,
		ProximityBP: prox, Relation: engine.Downstream, Status: "MGE-Associated (Downstream)",
	}
}

// S1 has two associations, S2 none, S3 fails.
func fixedProc() pipeline.Processor {
	return pipeline.ProcessorFunc(func(_ context.Context, s search.Sample) pipeline.Result {
		r := pipeline.Result{Sample: s}
		switch s.ID {
		case "S1":
			r.Associations = []engine.Association{assoc("tetM", 50), assoc("ermB", 70)}
		case "S3":
			r.Err = errors.New("blastx: exit status 2")
		}
		return r
	})
}

func samples(ids ...string) []search.Sample {
	var out []search.Sample
	for _, id := range ids {
		out = append(out, search.Sample{ID: id})
	}
	return out
}

func TestRun_WritesReportsStoreAndStream(t *testing.T) {
	ctx := context.Background()
	mem := artifact.NewMemoryStore()
	db, err := store.Open(ctx, filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer db.Close()

	var stdout, stderr bytes.Buffer
	code := Run(ctx, &stdout, &stderr, quietLog(),
		Options{RunID: "run-1", Source: "hits", Threshold: 10000, Workers: 2, NoMatchExitCode: 1},
		samples("S1", "S2", "S3"), fixedProc(),
		Sinks{Reports: mem, Store: db},
		NewRowWriterFactory("text", false, true))

	assert.Equal(t, 0, code, stderr.String())

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Sample_ID\t"))
	assert.Equal(t, "S1\tc1\ttetM\t100\t200\tISCd1:250-300\t50\tMGE-Associated (Downstream)", lines[1])

	keys, err := mem.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"S1_cdmec.json", "S1_cdmec_summary.tsv"}, keys)

	js, err := mem.Get(ctx, "S1_cdmec.json")
	require.NoError(t, err)
	assert.Contains(t, string(js), `"Run_ID": "run-1"`)

	rows, err := db.Associations(ctx, "run-1")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	run, err := db.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "hits", run.Source)
}

func TestRun_NoMatchExitCode(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run(context.Background(), &stdout, &stderr, quietLog(),
		Options{RunID: "r", NoMatchExitCode: 1},
		samples("S2"), fixedProc(), Sinks{}, NewRowWriterFactory("none", false, true))
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
}

func TestRun_AllFailed(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run(context.Background(), &stdout, &stderr, quietLog(),
		Options{RunID: "r"}, samples("S3"), fixedProc(), Sinks{}, NewRowWriterFactory("none", false, true))
	assert.Equal(t, 3, code)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var stdout, stderr bytes.Buffer
	code := Run(ctx, &stdout, &stderr, quietLog(),
		Options{RunID: "r"}, samples("S1", "S2"), fixedProc(), Sinks{}, NewRowWriterFactory("jsonl", false, true))
	assert.Equal(t, 130, code)
}
