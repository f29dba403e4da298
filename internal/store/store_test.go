package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cdmec/internal/output"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "cdmec.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func row(sample, arg string, prox int) output.Row {
	return output.Row{
		SampleID: sample, ContigID: "c1", ARGName: arg, ARGStart: 100, ARGEnd: 200,
		MGEAssociation: "IS:1-2", ProximityBP: prox, Status: "MGE-Associated (Upstream)",
	}
}

func TestParseDSN(t *testing.T) {
	cases := []struct {
		in      string
		driver  string
		source  string
		dialect Dialect
	}{
		{"postgres://u:p@localhost/cdmec", "pgx", "postgres://u:p@localhost/cdmec", Postgres},
		{"postgresql://localhost/cdmec", "pgx", "postgresql://localhost/cdmec", Postgres},
		{"sqlite:///tmp/x.db", "sqlite", "/tmp/x.db", SQLite},
		{"results.db", "sqlite", "results.db", SQLite},
	}
	for _, c := range cases {
		d, s, dia, err := ParseDSN(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.driver, d, c.in)
		assert.Equal(t, c.source, s, c.in)
		assert.Equal(t, c.dialect, dia, c.in)
	}
	_, _, _, err := ParseDSN("  ")
	assert.Error(t, err)
}

func TestRebind(t *testing.T) {
	pg := &DB{dialect: Postgres}
	assert.Equal(t, "SELECT a FROM t WHERE x = $1 AND y = $2", pg.rebind("SELECT a FROM t WHERE x = ? AND y = ?"))
	lite := &DB{dialect: SQLite}
	assert.Equal(t, "x = ?", lite.rebind("x = ?"))
	assert.Equal(t, "postgres", Postgres.String())
}

func TestRunRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	started := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, db.SaveRun(ctx, Run{ID: "r1", StartedAt: started, Threshold: 10000, Source: "reports/"}))
	require.NoError(t, db.SaveRun(ctx, Run{ID: "r1", StartedAt: started, Threshold: 5000, Source: "reports/"}))

	got, err := db.GetRun(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, 5000, got.Threshold)
	assert.True(t, started.Equal(got.StartedAt))

	_, err = db.GetRun(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Error(t, db.SaveRun(ctx, Run{}))

	require.NoError(t, db.SaveRun(ctx, Run{ID: "r0", StartedAt: started.Add(-time.Hour), Source: "old/"}))
	runs, err := db.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "r0", runs[0].ID)
	assert.Equal(t, "r1", runs[1].ID)
}

func TestSaveSampleReplacesAndKeepsOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.SaveSample(ctx, "r1", "S1", []output.Row{row("S1", "tetM", 5), row("S1", "ermB", -3)}))
	require.NoError(t, db.SaveSample(ctx, "r1", "S1", []output.Row{row("S1", "vanA", 0), row("S1", "aac6", 7)}))
	require.NoError(t, db.SaveSample(ctx, "r2", "S1", []output.Row{row("S1", "other", 1)}))

	got, err := db.Associations(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "vanA", got[0].ARGName)
	assert.Equal(t, "aac6", got[1].ARGName)
	assert.Equal(t, row("S1", "aac6", 7), got[1])
}

func TestSaveRowsGroupsBySample(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	in := []output.Row{row("S2", "a", 1), row("S1", "b", 2), row("S2", "c", 3)}
	require.NoError(t, db.SaveRows(ctx, "r1", in))

	samples, err := db.Samples(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, []string{"S1", "S2"}, samples)

	got, err := db.Associations(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"b", "a", "c"}, []string{got[0].ARGName, got[1].ARGName, got[2].ARGName})

	empty, err := db.Associations(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
