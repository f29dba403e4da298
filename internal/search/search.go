// Package search runs (or replays) the homology searches that produce ARG
// and MGE hits for one sample.
package search

import (
	"context"

	"cdmec/internal/hit"
)

// Searcher produces the hits of one kind for a sample.
type Searcher interface {
	Search(ctx context.Context, sample Sample, kind hit.Kind) ([]hit.Hit, hit.ParseStats, error)
}

// Sample is one assembly to analyze.
type Sample struct {
	ID   string // file base name up to the first '.'
	Path string // FASTA path (may be empty for precomputed hits)
}
