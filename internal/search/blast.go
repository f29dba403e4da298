package search

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"cdmec/internal/hit"
)

// Defaults for the BLAST+ runner.
const (
	DefaultARGTool = "blastx"
	DefaultMGETool = "blastn"
	DefaultEValue  = "1e-5"
	DefaultTimeout = 600 * time.Second
)

// ExecFunc runs name with args and returns its stdout. Stderr is folded into
// the returned error on failure.
type ExecFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// BLAST searches the ARG database with a protein tool and the MGE database
// with a nucleotide tool.
type BLAST struct {
	ARGTool string
	MGETool string
	ARGDB   string
	MGEDB   string
	Threads int
	EValue  string
	Timeout time.Duration

	Exec ExecFunc // nil means os/exec
}

func (b *BLAST) toolAndDB(kind hit.Kind) (string, string) {
	if kind == hit.ARG {
		return firstNonEmpty(b.ARGTool, DefaultARGTool), b.ARGDB
	}
	return firstNonEmpty(b.MGETool, DefaultMGETool), b.MGEDB
}

// Args returns the command line for one search.
func (b *BLAST) Args(query string, kind hit.Kind) (string, []string) {
	tool, db := b.toolAndDB(kind)
	threads := b.Threads
	if threads <= 0 {
		threads = 1
	}
	return tool, []string{
		"-query", query,
		"-db", db,
		"-num_threads", strconv.Itoa(threads),
		"-outfmt", hit.OutFmt,
		"-evalue", firstNonEmpty(b.EValue, DefaultEValue),
	}
}

func (b *BLAST) Search(ctx context.Context, s Sample, kind hit.Kind) ([]hit.Hit, hit.ParseStats, error) {
	if _, db := b.toolAndDB(kind); db == "" {
		return nil, hit.ParseStats{}, fmt.Errorf("%s search for %s: no database configured", kind, s.ID)
	}
	timeout := b.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	query, cleanup, err := plainQuery(s.Path)
	if err != nil {
		return nil, hit.ParseStats{}, fmt.Errorf("%s search for %s: %w", kind, s.ID, err)
	}
	defer cleanup()

	run := b.Exec
	if run == nil {
		run = execCommand
	}
	tool, args := b.Args(query, kind)
	out, err := run(ctx, tool, args...)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, hit.ParseStats{}, fmt.Errorf("%s search for %s: timed out after %s", kind, s.ID, timeout)
		}
		return nil, hit.ParseStats{}, fmt.Errorf("%s search for %s: %w", kind, s.ID, err)
	}
	return hit.ParseTabular(bytes.NewReader(out), kind)
}

// plainQuery returns a path BLAST+ can read. Gzipped assemblies are
// decompressed into a temporary file that cleanup removes.
func plainQuery(path string) (string, func(), error) {
	if !strings.HasSuffix(strings.ToLower(path), ".gz") {
		return path, func() {}, nil
	}
	in, err := os.Open(path)
	if err != nil {
		return "", nil, err
	}
	defer in.Close()
	gr, err := gzip.NewReader(in)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", path, err)
	}
	defer gr.Close()

	tmp, err := os.CreateTemp("", "cdmec-query-*.fa")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = os.Remove(tmp.Name()) }
	if _, err := io.Copy(tmp, gr); err != nil {
		_ = tmp.Close()
		cleanup()
		return "", nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", nil, err
	}
	return tmp.Name(), cleanup, nil
}

func execCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return stdout.Bytes(), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
