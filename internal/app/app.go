// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"cdmec/internal/appcore"
	"cdmec/internal/artifact"
	"cdmec/internal/cli"
	"cdmec/internal/clibase"
	"cdmec/internal/cliutil"
	"cdmec/internal/cmdutil"
	"cdmec/internal/config"
	"cdmec/internal/engine"
	"cdmec/internal/pipeline"
	"cdmec/internal/search"
	"cdmec/internal/store"
	"cdmec/internal/version"
)

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)

	fs := cli.NewFlagSet("cdmec")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		_, _ = cli.ParseArgs(fs, []string{"-h"})
		return cmdutil.Usage(fs, outw, stderr, cmdutil.ExitOK)
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		switch {
		case errors.Is(err, clibase.ErrPrintedAndExitOK):
			cli.PrintExamples(outw)
			return cmdutil.Flush(outw, stderr)
		case errors.Is(err, flag.ErrHelp):
			return cmdutil.Usage(fs, outw, stderr, cmdutil.ExitOK)
		}
		_, _ = fmt.Fprintln(stderr, err)
		return cmdutil.Usage(fs, outw, stderr, cmdutil.ExitUsage)
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "cdmec version %s\n", version.Version)
		return cmdutil.Flush(outw, stderr)
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return cmdutil.ExitUsage
	}
	opts.Apply(&cfg)
	if err := cfg.Validate(); err != nil {
		_, _ = fmt.Fprintln(stderr, "config:", err)
		return cmdutil.ExitUsage
	}

	log, err := cmdutil.NewLogger(stderr, cmdutil.LogOptions{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Quiet:  opts.Quiet,
		Color:  !opts.NoColor && !color.NoColor,
	})
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return cmdutil.ExitUsage
	}

	samples, source, err := resolveSamples(opts.Inputs, cfg.Search.HitsDir)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return cmdutil.ExitUsage
	}
	if len(samples) == 0 {
		_, _ = fmt.Fprintln(stderr, "No FASTA files found.")
		return cmdutil.ExitNoMatch
	}
	for _, id := range cliutil.DuplicateIDs(samples) {
		log.Warn("duplicate sample id; later reports overwrite earlier ones", "sample", id)
	}

	reports, err := artifact.Open(cfg.Artifact.Backend, cfg.OutputDir, cfg.S3())
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return cmdutil.ExitUsage
	}

	var db *store.DB
	if cfg.StoreDSN != "" {
		db, err = store.Open(parent, cfg.StoreDSN)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return cmdutil.ExitIO
		}
		defer db.Close()
	}

	proc := pipeline.SampleProcessor{
		Searcher:  newSearcher(cfg, log),
		Resolver:  engine.New(engine.Config{Threshold: cfg.Threshold, Rules: cfg.EngineRules()}),
		DedupeCap: cfg.DedupeCap,
	}

	runID := uuid.NewString()
	log.Info("starting batch", "run_id", runID, "samples", len(samples),
		"workers", cfg.Workers, "threshold_bp", cfg.Threshold, "source", source)

	return appcore.Run(parent, stdout, stderr, log,
		appcore.Options{
			RunID:           runID,
			Source:          source,
			Threshold:       cfg.Threshold,
			Workers:         cfg.Workers,
			SearchThreads:   searchThreads(cfg),
			NoMatchExitCode: opts.NoMatchExitCode,
		},
		samples, proc,
		appcore.Sinks{Reports: reports, Store: db},
		appcore.NewRowWriterFactory(opts.Format, opts.Sort, opts.Header),
	)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// resolveSamples lists the samples to analyze. Without assembly inputs the
// hits directory decides which samples exist.
func resolveSamples(inputs []string, hitsDir string) ([]search.Sample, string, error) {
	if len(inputs) == 0 {
		samples, err := search.Precomputed{Dir: hitsDir}.Samples()
		return samples, hitsDir, err
	}
	samples, err := cliutil.ResolveSamples(inputs)
	return samples, strings.Join(inputs, ","), err
}

func newSearcher(cfg config.Config, log *slog.Logger) search.Searcher {
	if dir := cfg.Search.HitsDir; dir != "" {
		log.Debug("using precomputed hit tables", "dir", dir)
		return search.Precomputed{Dir: dir}
	}
	return &search.BLAST{
		ARGTool: cfg.Search.ARGTool,
		MGETool: cfg.Search.MGETool,
		ARGDB:   cfg.Search.ARGDB,
		MGEDB:   cfg.Search.MGEDB,
		Threads: cfg.Search.Threads,
		EValue:  cfg.Search.EValue,
		Timeout: cfg.SearchTimeout(),
	}
}

func searchThreads(cfg config.Config) int {
	if cfg.Search.HitsDir != "" {
		return 0
	}
	return cfg.Search.Threads
}
