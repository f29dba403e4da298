// Package collectcli parses flags for cdmec-collect.
package collectcli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"cdmec/internal/clibase"
	"cdmec/internal/cliutil"
	"cdmec/internal/engine"
)

// Defaults mirrored in usage text.
const (
	DefaultPrefix = "MyReport"
	DefaultBins   = 100
)

type Options struct {
	clibase.Common

	Input    string // report directory (fs) or key prefix (s3)
	Prefix   string
	Artifact string // "" keeps the configured backend
	StoreDSN string
	Bins     int
	Span     int
	NoHist   bool
}

func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clibase.UsageCommon(fs, name, "merge per-sample summaries into a master table", func(out io.Writer, def func(string) string) {
		fmt.Fprintln(out, "Usage:")
		fmt.Fprintf(out, "  %s -i cdmec_analysis_reports/ -o Study1\n", name)
		fmt.Fprintf(out, "  %s --artifact s3 --store cdmec.db -o Study1\n", name)

		fmt.Fprintln(out, "\nInput:")
		fmt.Fprintln(out, "  -i, --input dir             Directory holding *_summary.tsv (default: configured output dir)")
		fmt.Fprintln(out, "      --artifact string       Read summaries from: fs | s3 (default: configured backend)")

		fmt.Fprintln(out, "\nOutput:")
		fmt.Fprintf(out, "  -o, --output prefix         Writes <prefix>_Master.csv [%s]\n", def("output"))
		fmt.Fprintln(out, "      --store dsn             Also load rows into sqlite (path) or postgres:// DSN")
		fmt.Fprintf(out, "      --bins int              Proximity histogram bins [%s]\n", def("bins"))
		fmt.Fprintf(out, "      --span int              Histogram covers [-span, span] bp [%s]\n", def("span"))
		fmt.Fprintf(out, "      --no-histogram          Skip the histogram [%s]\n", def("no-histogram"))
	})
	return fs
}

func PrintExamples(out io.Writer) {
	clibase.PrintExamples(out, "cdmec-collect", []clibase.Example{
		{Title: "Merge a batch into Study1_Master.csv and show the proximity histogram:", Command: "cdmec-collect -i cdmec_analysis_reports -o Study1"},
		{Title: "Load the merged rows into Postgres as well:", Command: "cdmec-collect -i reports -o Study1 --store postgres://cdmec@localhost/cdmec"},
	})
}

func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var (
		o            Options
		help         bool
		showExamples bool
	)
	clibase.Register(fs, &o.Common)

	fs.StringVar(&o.Input, "input", "", "directory holding *_summary.tsv")
	fs.StringVar(&o.Input, "i", "", "alias of --input")
	fs.StringVar(&o.Prefix, "output", DefaultPrefix, "output prefix")
	fs.StringVar(&o.Prefix, "o", DefaultPrefix, "alias of --output")
	fs.StringVar(&o.Artifact, "artifact", "", "summary source: fs | s3")
	fs.StringVar(&o.StoreDSN, "store", "", "association store DSN")
	fs.IntVar(&o.Bins, "bins", DefaultBins, "histogram bins")
	fs.IntVar(&o.Span, "span", engine.DefaultThreshold, "histogram half-width (bp)")
	fs.BoolVar(&o.NoHist, "no-histogram", false, "skip the histogram [false]")
	fs.BoolVar(&help, "h", false, "show this help [false]")
	fs.BoolVar(&showExamples, "examples", false, "show quickstart examples and exit [false]")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return o, err
	}
	if showExamples {
		return o, clibase.ErrPrintedAndExitOK
	}
	if help {
		return o, flag.ErrHelp
	}
	if o.Version {
		return o, nil
	}
	o.Capture(fs)
	if err := clibase.Validate(&o.Common); err != nil {
		return o, err
	}

	switch {
	case len(posArgs) > 1, len(posArgs) == 1 && o.Input != "":
		return o, errors.New("give a single input directory")
	case len(posArgs) == 1:
		o.Input = posArgs[0]
	}
	switch o.Artifact {
	case "", "fs", "s3":
	default:
		return o, fmt.Errorf("invalid --artifact %q", o.Artifact)
	}
	if o.Prefix == "" {
		return o, errors.New("--output prefix must not be empty")
	}
	if o.Bins <= 0 || o.Span <= 0 {
		return o, errors.New("--bins and --span must be > 0")
	}
	return o, nil
}
