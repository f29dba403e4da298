// Package signatureapp builds per-host distance signatures from summary
// tables.
package signatureapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/fatih/color"
	"golang.org/x/sync/errgroup"

	"cdmec/internal/clibase"
	"cdmec/internal/cmdutil"
	"cdmec/internal/config"
	"cdmec/internal/output"
	"cdmec/internal/runutil"
	"cdmec/internal/signaturecli"
	"cdmec/internal/stats"
	"cdmec/internal/version"
)

func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)

	fs := signaturecli.NewFlagSet("cdmec-signature")
	fs.SetOutput(io.Discard)

	opts, err := signaturecli.ParseArgs(fs, argv)
	if err != nil {
		switch {
		case errors.Is(err, clibase.ErrPrintedAndExitOK):
			signaturecli.PrintExamples(outw)
			return cmdutil.Flush(outw, stderr)
		case errors.Is(err, flag.ErrHelp):
			return cmdutil.Usage(fs, outw, stderr, cmdutil.ExitOK)
		}
		_, _ = fmt.Fprintln(stderr, err)
		return cmdutil.Usage(fs, outw, stderr, cmdutil.ExitUsage)
	}
	if opts.Version {
		_, _ = fmt.Fprintf(outw, "cdmec-signature version %s\n", version.Version)
		return cmdutil.Flush(outw, stderr)
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return cmdutil.ExitUsage
	}
	level, format := opts.LogSettings(cfg.Log.Level, cfg.Log.Format)
	log, err := cmdutil.NewLogger(stderr, cmdutil.LogOptions{
		Level: level, Format: format, Quiet: opts.Quiet, Color: !opts.NoColor && !color.NoColor,
	})
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return cmdutil.ExitUsage
	}

	var all []stats.Signature
	for _, g := range opts.Groups {
		sigs, err := Group(ctx, log, g, opts.Pattern, opts.Workers)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return cmdutil.ExitCancelled
			}
			_, _ = fmt.Fprintln(stderr, err)
			return cmdutil.ExitIO
		}
		all = append(all, sigs...)
	}
	if len(all) == 0 {
		_, _ = fmt.Fprintln(stderr, "No signatures: no host group had readable summaries.")
		return cmdutil.ExitNoMatch
	}

	if err := cmdutil.WriteFile(opts.Output, func(w io.Writer) error {
		return stats.WriteSignatures(w, all)
	}); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return cmdutil.ExitIO
	}
	log.Info("signature table created", "path", opts.Output, "rows", len(all))
	return cmdutil.Flush(outw, stderr)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// Group computes the signatures of one host group. A missing directory or
// one without matching files yields nothing. Unreadable files are logged
// and still count toward the group size.
func Group(ctx context.Context, log *slog.Logger, g signaturecli.Group, pattern string, workers int) ([]stats.Signature, error) {
	if st, err := os.Stat(g.Dir); err != nil || !st.IsDir() {
		log.Warn("host directory missing; skipped", "host", g.Host, "dir", g.Dir)
		return nil, nil
	}
	files, err := filepath.Glob(filepath.Join(g.Dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("%s: bad pattern %q: %w", g.Host, pattern, err)
	}
	if len(files) == 0 {
		log.Warn("no summaries matched; skipped", "host", g.Host, "dir", g.Dir, "pattern", pattern)
		return nil, nil
	}
	sort.Strings(files)
	log.Info("processing host group", "host", g.Host, "files", len(files))

	samples := make([]stats.SampleRows, len(files))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runutil.EffectiveWorkers(workers))
	for i, path := range files {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rows, err := output.ReadTable(path)
			if err != nil {
				log.Warn("unreadable summary counted as empty", "host", g.Host, "err", err)
			}
			samples[i] = stats.SampleRows{Source: filepath.Base(path), Rows: rows}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return stats.Signatures(g.Host, samples), nil
}
