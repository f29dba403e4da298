// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"cdmec/internal/engine"
	"cdmec/internal/runutil"
	"cdmec/internal/search"
)

// Config controls the batch.
type Config struct {
	Workers int // concurrent samples; <= 0 means all CPUs
}

// Result is the outcome of one sample.
type Result struct {
	Sample       search.Sample
	Contigs      int // 0 when the FASTA was not read
	ARGHits      int
	MGEHits      int
	Skipped      int // malformed search rows
	Dropped      int // repeated hits removed by the dedupe filter
	Associations []engine.Association
	Elapsed      time.Duration
	Err          error
}

// Processor turns one sample into a Result.
type Processor interface {
	Process(ctx context.Context, s search.Sample) Result
}

// ProcessorFunc adapts a function to Processor.
type ProcessorFunc func(ctx context.Context, s search.Sample) Result

func (f ProcessorFunc) Process(ctx context.Context, s search.Sample) Result { return f(ctx, s) }

// Run processes samples with at most cfg.Workers in flight and calls visit
// from a single goroutine, in the order of samples. A visit error stops
// the batch and is returned; cancellation returns ctx.Err().
func Run(
	ctx context.Context,
	cfg Config,
	samples []search.Sample,
	proc Processor,
	visit func(Result) error,
) error {
	workers := runutil.EffectiveWorkers(cfg.Workers)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type indexed struct {
		i int
		r Result
	}
	results := make(chan indexed, workers*2)

	// Collector: re-sequence results so visit sees input order.
	var verr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		pending := make(map[int]Result, workers)
		next := 0
		for ir := range results {
			pending[ir.i] = ir.r
			for {
				r, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				next++
				if verr != nil {
					continue
				}
				if err := visit(r); err != nil {
					verr = err
					cancel()
				}
			}
		}
	}()

	var g errgroup.Group
	g.SetLimit(workers)
	for i, s := range samples {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			start := time.Now()
			r := proc.Process(ctx, s)
			r.Sample = s
			if r.Elapsed == 0 {
				r.Elapsed = time.Since(start)
			}
			results <- indexed{i: i, r: r}
			return nil
		})
	}
	_ = g.Wait()
	close(results)
	<-done

	if verr != nil {
		return verr
	}
	return ctx.Err()
}
