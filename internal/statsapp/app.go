// Package statsapp ranks mobile ARGs and MGE carriers in a master table.
package statsapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/fatih/color"

	"cdmec/internal/clibase"
	"cdmec/internal/cmdutil"
	"cdmec/internal/config"
	"cdmec/internal/output"
	"cdmec/internal/stats"
	"cdmec/internal/statscli"
	"cdmec/internal/version"
)

func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)

	fs := statscli.NewFlagSet("cdmec-stats")
	fs.SetOutput(io.Discard)

	opts, err := statscli.ParseArgs(fs, argv)
	if err != nil {
		switch {
		case errors.Is(err, clibase.ErrPrintedAndExitOK):
			statscli.PrintExamples(outw)
			return cmdutil.Flush(outw, stderr)
		case errors.Is(err, flag.ErrHelp):
			return cmdutil.Usage(fs, outw, stderr, cmdutil.ExitOK)
		}
		_, _ = fmt.Fprintln(stderr, err)
		return cmdutil.Usage(fs, outw, stderr, cmdutil.ExitUsage)
	}
	if opts.Version {
		_, _ = fmt.Fprintf(outw, "cdmec-stats version %s\n", version.Version)
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

	rows, err := output.ReadTable(opts.Input)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "Error:", err)
		return cmdutil.ExitIO
	}
	if err := ctx.Err(); err != nil {
		return cmdutil.ExitCancelled
	}
	log.Debug("loaded master table", "path", opts.Input, "rows", len(rows))

	topARGs, topMGEs := stats.TopMobile(rows, opts.Within, opts.Top)
	argFile := opts.Prefix + "_Top_ARGs.csv"
	mgeFile := opts.Prefix + "_Top_MGEs.csv"
	for _, t := range []struct {
		path   string
		header []string
		counts []stats.Count
	}{
		{argFile, stats.TopARGHeader, topARGs},
		{mgeFile, stats.TopMGEHeader, topMGEs},
	} {
		err := cmdutil.WriteFile(t.path, func(w io.Writer) error {
			return stats.WriteCounts(w, t.header, t.counts)
		})
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return cmdutil.ExitIO
		}
		log.Debug("wrote table", "path", t.path, "rows", len(t.counts))
	}

	if err := stats.WriteReport(outw, stats.ReportOptions{
		Title:    opts.Prefix,
		Within:   opts.Within,
		Color:    !opts.NoColor && !color.NoColor,
		TopARGs:  topARGs,
		TopMGEs:  topMGEs,
		Summary:  stats.Summarize(rows),
		Produced: []string{argFile, mgeFile},
	}); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return cmdutil.ExitIO
	}
	return cmdutil.Flush(outw, stderr)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
