package pipeline

import (
	"context"
	"fmt"
	"time"

	"cdmec/internal/engine"
	"cdmec/internal/fasta"
	"cdmec/internal/hit"
	"cdmec/internal/runutil"
	"cdmec/internal/search"
)

// SampleProcessor searches both databases for a sample and resolves the
// nearest associations.
type SampleProcessor struct {
	Searcher  search.Searcher
	Resolver  *engine.Resolver
	DedupeCap int // per-sample repeated-hit filter; 0 disables
}

func (p SampleProcessor) Process(ctx context.Context, s search.Sample) Result {
	start := time.Now()
	r := Result{Sample: s}

	fail := func(step string, err error) Result {
		r.Err = fmt.Errorf("%s: %s: %w", s.ID, step, err)
		r.Elapsed = time.Since(start)
		return r
	}

	if s.Path != "" {
		recs, err := fasta.Contigs(s.Path)
		if err != nil {
			return fail("read assembly", err)
		}
		r.Contigs = len(recs)
	}

	args, ast, err := p.Searcher.Search(ctx, s, hit.ARG)
	if err != nil {
		return fail("ARG search", err)
	}
	mges, mst, err := p.Searcher.Search(ctx, s, hit.MGE)
	if err != nil {
		return fail("MGE search", err)
	}
	r.Skipped = ast.Skipped + mst.Skipped

	filter := runutil.NewHitFilter(p.DedupeCap)
	args = filter.Filter(args)
	mges = filter.Filter(mges)
	r.ARGHits, r.MGEHits, r.Dropped = len(args), len(mges), filter.Dropped()

	assoc, err := p.Resolver.Analyze(args, mges)
	if err != nil {
		return fail("resolve", err)
	}
	r.Associations = assoc
	r.Elapsed = time.Since(start)
	return r
}
