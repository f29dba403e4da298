package search

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cdmec/internal/hit"
)

// Precomputed replays saved tabular search output instead of running the
// search tool. For sample S it reads <Dir>/S.arg.tsv and <Dir>/S.mge.tsv
// (optionally gzipped).
type Precomputed struct {
	Dir string
}

// Path returns the first existing hit table for s and kind.
func (p Precomputed) Path(s Sample, kind hit.Kind) (string, error) {
	base := filepath.Join(p.Dir, s.ID+"."+strings.ToLower(kind.String())+".tsv")
	for _, cand := range []string{base, base + ".gz"} {
		if _, err := os.Stat(cand); err == nil {
			return cand, nil
		}
	}
	return "", fmt.Errorf("%s hits for %s: %s not found", kind, s.ID, base)
}

func (p Precomputed) Search(ctx context.Context, s Sample, kind hit.Kind) ([]hit.Hit, hit.ParseStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, hit.ParseStats{}, err
	}
	path, err := p.Path(s, kind)
	if err != nil {
		return nil, hit.ParseStats{}, err
	}
	return hit.LoadFile(path, kind)
}

// Samples lists the sample ids that have an ARG table in Dir, sorted.
func (p Precomputed) Samples() ([]Sample, error) {
	var out []Sample
	for _, pat := range []string{"*.arg.tsv", "*.arg.tsv.gz"} {
		m, err := filepath.Glob(filepath.Join(p.Dir, pat))
		if err != nil {
			return nil, err
		}
		for _, f := range m {
			id := strings.TrimSuffix(strings.TrimSuffix(filepath.Base(f), ".gz"), ".arg.tsv")
			out = append(out, Sample{ID: id})
		}
	}
	return dedupeSorted(out), nil
}
