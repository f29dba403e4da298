// Package collectapp merges per-sample summary tables into one master CSV.
package collectapp

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/google/uuid"

	"cdmec/internal/artifact"
	"cdmec/internal/clibase"
	"cdmec/internal/cmdutil"
	"cdmec/internal/collectcli"
	"cdmec/internal/config"
	"cdmec/internal/output"
	"cdmec/internal/stats"
	"cdmec/internal/store"
	"cdmec/internal/version"
)

// SummaryPattern is the file suffix picked up from the input store.
const SummaryPattern = "_summary.tsv"

func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)

	fs := collectcli.NewFlagSet("cdmec-collect")
	fs.SetOutput(io.Discard)

	opts, err := collectcli.ParseArgs(fs, argv)
	if err != nil {
		switch {
		case errors.Is(err, clibase.ErrPrintedAndExitOK):
			collectcli.PrintExamples(outw)
			return cmdutil.Flush(outw, stderr)
		case errors.Is(err, flag.ErrHelp):
			return cmdutil.Usage(fs, outw, stderr, cmdutil.ExitOK)
		}
		_, _ = fmt.Fprintln(stderr, err)
		return cmdutil.Usage(fs, outw, stderr, cmdutil.ExitUsage)
	}
	if opts.Version {
		_, _ = fmt.Fprintf(outw, "cdmec-collect version %s\n", version.Version)
		return cmdutil.Flush(outw, stderr)
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return cmdutil.ExitUsage
	}
	backend, dir := cfg.Artifact.Backend, cfg.OutputDir
	if opts.Artifact != "" {
		backend = opts.Artifact
	}
	if opts.Input != "" {
		dir = opts.Input
	}
	dsn := cfg.StoreDSN
	if opts.Set("store") {
		dsn = opts.StoreDSN
	}
	logLevel, logFormat := opts.LogSettings(cfg.Log.Level, cfg.Log.Format)
	log, err := cmdutil.NewLogger(stderr, cmdutil.LogOptions{
		Level: logLevel, Format: logFormat, Quiet: opts.Quiet, Color: !opts.NoColor && !color.NoColor,
	})
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return cmdutil.ExitUsage
	}

	src, err := artifact.Open(backend, dir, cfg.S3())
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return cmdutil.ExitUsage
	}

	log.Info("scanning summaries", "location", src.Location())
	master, files, err := Collect(ctx, src)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return cmdutil.ExitCancelled
		}
		_, _ = fmt.Fprintln(stderr, err)
		return cmdutil.ExitIO
	}
	if files == 0 {
		_, _ = fmt.Fprintf(stderr, "No *%s files found in %s.\n", SummaryPattern, src.Location())
		return cmdutil.ExitNoMatch
	}
	log.Info("merged summaries", "files", files, "rows", humanize.Comma(int64(len(master))))

	masterPath := opts.Prefix + "_Master.csv"
	if err := cmdutil.WriteFile(masterPath, func(w io.Writer) error { return output.WriteCSV(w, master) }); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return cmdutil.ExitIO
	}
	log.Info("created master table", "path", masterPath)

	if dsn != "" {
		runID := uuid.NewString()
		if err := load(ctx, dsn, store.Run{
			ID: runID, StartedAt: time.Now(), Threshold: cfg.Threshold, Source: src.Location(),
		}, master); err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return cmdutil.ExitIO
		}
		log.Info("loaded rows into store", "run_id", runID, "rows", len(master))
	}

	if !opts.NoHist {
		h := stats.NewHistogram(master, opts.Span, opts.Bins)
		_, _ = fmt.Fprintf(outw, "ARG-MGE proximity distribution (%d bins over ±%s bp, %s embedded)\n",
			opts.Bins, humanize.Comma(int64(opts.Span)), humanize.Comma(int64(stats.Summarize(master).Embedded)))
		if err := h.Render(outw, 50); err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return cmdutil.ExitIO
		}
	}
	return cmdutil.Flush(outw, stderr)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// Collect reads every *_summary.tsv in src, in key order, and returns the
// concatenated rows and the number of files read.
func Collect(ctx context.Context, src artifact.Store) ([]output.Row, int, error) {
	keys, err := src.List(ctx, "")
	if err != nil {
		return nil, 0, err
	}
	var (
		master []output.Row
		files  int
	)
	for _, key := range keys {
		if !strings.HasSuffix(key, SummaryPattern) {
			continue
		}
		data, err := src.Get(ctx, key)
		if err != nil {
			return nil, files, fmt.Errorf("%s: %w", key, err)
		}
		rows, err := output.ReadSummaryTSV(bytes.NewReader(data))
		if err != nil {
			return nil, files, fmt.Errorf("%s: %w", key, err)
		}
		master = append(master, rows...)
		files++
	}
	return master, files, nil
}

func load(ctx context.Context, dsn string, run store.Run, rows []output.Row) error {
	db, err := store.Open(ctx, dsn)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.SaveRun(ctx, run); err != nil {
		return err
	}
	return db.SaveRows(ctx, run.ID, rows)
}
