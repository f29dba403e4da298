package artifact

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exercise(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "S1_cdmec.json", []byte(`{"Sample_ID":"S1"}`)))
	require.NoError(t, s.Put(ctx, "/S1_cdmec_summary.tsv", []byte("hdr\n")))
	require.NoError(t, s.Put(ctx, "S2_cdmec.json", nil))

	got, err := s.Get(ctx, "S1_cdmec.json")
	require.NoError(t, err)
	assert.Equal(t, `{"Sample_ID":"S1"}`, string(got))

	got, err = s.Get(ctx, "S2_cdmec.json")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = s.Get(ctx, "missing.json")
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := s.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"S1_cdmec.json", "S1_cdmec_summary.tsv", "S2_cdmec.json"}, all)

	s1, err := s.List(ctx, "S1_")
	require.NoError(t, err)
	assert.Len(t, s1, 2)

	assert.Error(t, s.Put(ctx, "  ", []byte("x")))
	assert.Error(t, s.Put(ctx, "../escape.json", []byte("x")))
}

func TestMemoryStore(t *testing.T) {
	exercise(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	root := filepath.Join(t.TempDir(), "reports")
	s, err := NewFileStore(root)
	require.NoError(t, err)

	// listing before anything was written
	empty, err := s.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, empty)

	exercise(t, s)

	raw, err := os.ReadFile(filepath.Join(root, "S1_cdmec_summary.tsv"))
	require.NoError(t, err)
	assert.Equal(t, "hdr\n", string(raw))
	assert.Equal(t, root, s.Location())
}

func TestFileStoreNested(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Put(context.Background(), "batch1/S1_cdmec.json", []byte("{}")))
	got, err := s.List(context.Background(), "batch1/")
	require.NoError(t, err)
	assert.Equal(t, []string{"batch1/S1_cdmec.json"}, got)
}

func TestOpen(t *testing.T) {
	s, err := Open("", t.TempDir(), S3Config{})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	_, err = Open(BackendFS, "", S3Config{})
	assert.Error(t, err)

	_, err = Open(BackendS3, "", S3Config{Endpoint: "localhost:9000"})
	assert.ErrorContains(t, err, "access key")

	s, err = Open(BackendS3, "", S3Config{
		Endpoint: "localhost:9000", AccessKey: "k", SecretKey: "s", Bucket: "cdmec", Prefix: "/runs/",
	})
	require.NoError(t, err)
	assert.Equal(t, "s3://cdmec/runs", s.Location())

	_, err = Open("gcs", "", S3Config{})
	assert.Error(t, err)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/json", contentType("a_cdmec.json"))
	assert.Equal(t, "text/tab-separated-values", contentType("a_cdmec_summary.tsv"))
	assert.Equal(t, "text/csv", contentType("x.csv"))
	assert.Equal(t, "application/octet-stream", contentType("x.bin"))
}
