// Package statscli parses flags for cdmec-stats.
package statscli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"cdmec/internal/clibase"
	"cdmec/internal/cliutil"
	"cdmec/internal/stats"
)

const DefaultPrefix = "Cdiff_Analysis"

type Options struct {
	clibase.Common

	Input  string // master CSV (or summary TSV)
	Prefix string
	Within int
	Top    int
}

func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clibase.UsageCommon(fs, name, "rank mobile ARGs and MGE carriers", func(out io.Writer, def func(string) string) {
		fmt.Fprintln(out, "Usage:")
		fmt.Fprintf(out, "  %s -i Study1_Master.csv -o Study1\n", name)

		fmt.Fprintln(out, "\nInput:")
		fmt.Fprintln(out, "  -i, --input file            Master CSV from cdmec-collect (or a summary TSV)")

		fmt.Fprintln(out, "\nReport:")
		fmt.Fprintf(out, "  -o, --output prefix         Writes <prefix>_Top_ARGs.csv and <prefix>_Top_MGEs.csv [%s]\n", def("output"))
		fmt.Fprintf(out, "      --within int            Mobile when |proximity| <= within bp [%s]\n", def("within"))
		fmt.Fprintf(out, "      --top int               Rows per ranked table (0=all) [%s]\n", def("top"))
	})
	return fs
}

func PrintExamples(out io.Writer) {
	clibase.PrintExamples(out, "cdmec-stats", []clibase.Example{
		{Title: "Top-10 tables for a merged study:", Command: "cdmec-stats -i Study1_Master.csv -o Study1"},
		{Title: "Stricter mobility window, top 25:", Command: "cdmec-stats -i Study1_Master.csv --within 500 --top 25"},
	})
}

func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var (
		o            Options
		help         bool
		showExamples bool
	)
	clibase.Register(fs, &o.Common)

	fs.StringVar(&o.Input, "input", "", "master CSV")
	fs.StringVar(&o.Input, "i", "", "alias of --input")
	fs.StringVar(&o.Prefix, "output", DefaultPrefix, "output prefix")
	fs.StringVar(&o.Prefix, "o", DefaultPrefix, "alias of --output")
	fs.IntVar(&o.Within, "within", stats.MobileWithinBP, "mobility window (bp)")
	fs.IntVar(&o.Top, "top", stats.TopN, "rows per ranked table")
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
		return o, errors.New("give a single input table")
	case len(posArgs) == 1:
		o.Input = posArgs[0]
	}
	if o.Input == "" {
		return o, clibase.ErrNoInput
	}
	if o.Prefix == "" {
		return o, errors.New("--output prefix must not be empty")
	}
	if o.Within < 0 {
		return o, errors.New("--within must be ≥ 0")
	}
	if o.Top < 0 {
		return o, errors.New("--top must be ≥ 0")
	}
	return o, nil
}
