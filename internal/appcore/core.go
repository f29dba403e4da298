// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"

	"cdmec/internal/artifact"
	"cdmec/internal/cmdutil"
	"cdmec/internal/output"
	"cdmec/internal/pipeline"
	"cdmec/internal/runutil"
	"cdmec/internal/search"
	"cdmec/internal/store"
	"cdmec/internal/writers"
)

type Options struct {
	RunID     string
	Source    string // assemblies or hits directory, recorded with the run
	Threshold int

	Workers       int
	SearchThreads int

	NoMatchExitCode int
}

// Sinks receive each sample's rows besides the stdout stream. Nil sinks
// are skipped.
type Sinks struct {
	Reports artifact.Store
	Store   *store.DB
}

// Summary counts what a batch produced.
type Summary struct {
	Samples      int
	Failed       int
	NoHits       int
	Associations int
}

// Run analyzes samples with proc, writes per-sample reports and store rows,
// streams every row through wf, and returns the process exit code.
//
// Per-sample failures (search, parse, report write) are logged and the
// batch continues. The run fails with ExitIO only when every sample failed.
func Run(
	parent context.Context,
	stdout, stderr io.Writer,
	log *slog.Logger,
	o Options,
	samples []search.Sample,
	proc pipeline.Processor,
	sinks Sinks,
	wf RowWriterFactory,
) int {
	outw := bufio.NewWriter(stdout)
	start := time.Now()

	workers, warns := runutil.ValidateBatch(o.Workers, o.SearchThreads, len(samples), runtime.NumCPU())
	for _, w := range warns {
		log.Warn(w)
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	if sinks.Store != nil {
		run := store.Run{ID: o.RunID, StartedAt: start, Threshold: o.Threshold, Source: o.Source}
		if err := sinks.Store.SaveRun(ctx, run); err != nil {
			fmt.Fprintln(stderr, err)
			return cmdutil.ExitIO
		}
	}

	inCh, writeErr := wf.Start(outw, workers*4)

	var sum Summary
	perr := pipeline.Run(ctx, pipeline.Config{Workers: workers}, samples, proc, func(r pipeline.Result) error {
		sum.Samples++
		id := r.Sample.ID
		if r.Err != nil {
			sum.Failed++
			log.Warn("sample failed", "sample", id, "err", r.Err)
			return nil
		}
		if r.Skipped > 0 {
			log.Warn("skipped malformed search rows", "sample", id, "rows", r.Skipped)
		}
		log.Debug("sample analyzed", "sample", id, "contigs", r.Contigs,
			"arg_hits", r.ARGHits, "mge_hits", r.MGEHits, "dropped", r.Dropped,
			"elapsed", r.Elapsed.Round(time.Millisecond))

		rows := output.RowsFrom(id, r.Associations)
		if len(rows) == 0 {
			sum.NoHits++
			log.Info("Done: no hits", "sample", id)
			return nil
		}
		if sinks.Reports != nil {
			if err := WriteReports(ctx, sinks.Reports, id, o.RunID, rows); err != nil {
				sum.Failed++
				log.Warn("report not written", "sample", id, "err", err)
				return nil
			}
		}
		if sinks.Store != nil {
			if err := sinks.Store.SaveSample(ctx, o.RunID, id, rows); err != nil {
				sum.Failed++
				log.Warn("rows not stored", "sample", id, "err", err)
				return nil
			}
		}
		for _, row := range rows {
			select {
			case inCh <- row:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		sum.Associations += len(rows)
		log.Info("Done", "sample", id, "associations", len(rows))
		return nil
	})

	close(inCh)

	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		return cmdutil.ExitOK
	} else if werr != nil {
		fmt.Fprintln(stderr, werr)
		return cmdutil.ExitIO
	}
	if code := cmdutil.Flush(outw, stderr); code != cmdutil.ExitOK {
		return code
	}

	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return cmdutil.ExitCancelled
		}
		fmt.Fprintln(stderr, perr)
		return cmdutil.ExitIO
	}

	log.Info("batch complete",
		"samples", sum.Samples, "failed", sum.Failed, "no_hits", sum.NoHits,
		"associations", humanize.Comma(int64(sum.Associations)),
		"elapsed", time.Since(start).Round(time.Millisecond))
	if sinks.Reports != nil && sum.Associations > 0 {
		log.Info("reports written", "location", sinks.Reports.Location())
	}

	if sum.Samples > 0 && sum.Failed == sum.Samples {
		return cmdutil.ExitIO
	}
	if sum.Associations == 0 {
		return o.NoMatchExitCode
	}
	return cmdutil.ExitOK
}
