// Package signaturecli parses flags for cdmec-signature.
package signaturecli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"cdmec/internal/clibase"
	"cdmec/internal/cliutil"
)

// Defaults mirrored in usage text.
const (
	DefaultPattern = "*.tsv"
	DefaultOutput  = "one_health_spatial_signatures.csv"
)

// Group is one host label and the directory holding its summaries.
type Group struct {
	Host string
	Dir  string
}

type Options struct {
	clibase.Common

	Groups  []Group
	Pattern string
	Workers int
	Output  string
}

func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clibase.UsageCommon(fs, name, "per-host ARG distance signatures", func(out io.Writer, def func(string) string) {
		fmt.Fprintln(out, "Usage:")
		fmt.Fprintf(out, "  %s\n", name)
		fmt.Fprintf(out, "  %s -g Porcine=pig_reports -g Human=clinical_reports\n", name)

		fmt.Fprintln(out, "\nGroups:")
		fmt.Fprintln(out, "  -g, --group Host=dir        Host group (repeatable; replaces the three defaults)")
		fmt.Fprintf(out, "  -p, --porcine dir           Porcine summaries [%s]\n", def("porcine"))
		fmt.Fprintf(out, "  -e, --environment dir       Environment summaries [%s]\n", def("environment"))
		fmt.Fprintf(out, "  -u, --human dir             Human summaries [%s]\n", def("human"))
		fmt.Fprintf(out, "      --pattern glob          Summary file pattern in each dir [%s]\n", def("pattern"))

		fmt.Fprintln(out, "\nOutput:")
		fmt.Fprintf(out, "  -o, --output file           Signature CSV [%s]\n", def("output"))
		fmt.Fprintf(out, "  -w, --workers int           Files read in parallel (0=all CPUs) [%s]\n", def("workers"))
	})
	return fs
}

func PrintExamples(out io.Writer) {
	clibase.PrintExamples(out, "cdmec-signature", []clibase.Example{
		{Title: "Default One Health layout (animal/env/human report dirs):", Command: "cdmec-signature"},
		{Title: "Custom host groups:", Command: "cdmec-signature -g Bovine=cow_reports -g Human=ward7_reports -o ward7.csv"},
	})
}

func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var (
		o                       Options
		groups                  []string
		porcine, environ, human string
		help, showExamples      bool
	)
	clibase.Register(fs, &o.Common)

	clibase.StringSlice(fs, &groups, "host group Host=dir (repeatable)", "group", "g")
	fs.StringVar(&porcine, "porcine", "animal_fna_cdmec", "porcine summaries")
	fs.StringVar(&porcine, "p", "animal_fna_cdmec", "alias of --porcine")
	fs.StringVar(&environ, "environment", "env_fna_cdmec", "environment summaries")
	fs.StringVar(&environ, "e", "env_fna_cdmec", "alias of --environment")
	fs.StringVar(&human, "human", "human_fna_cdmec", "human summaries")
	fs.StringVar(&human, "u", "human_fna_cdmec", "alias of --human")
	fs.StringVar(&o.Pattern, "pattern", DefaultPattern, "summary file glob")
	fs.StringVar(&o.Output, "output", DefaultOutput, "signature CSV")
	fs.StringVar(&o.Output, "o", DefaultOutput, "alias of --output")
	fs.IntVar(&o.Workers, "workers", 0, "parallel file reads (0=all CPUs)")
	fs.IntVar(&o.Workers, "w", 0, "alias of --workers")
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
	if len(posArgs) > 0 {
		return o, fmt.Errorf("unexpected arguments: %s", strings.Join(posArgs, " "))
	}

	if len(groups) == 0 {
		o.Groups = []Group{
			{Host: "Porcine", Dir: porcine},
			{Host: "Environment", Dir: environ},
			{Host: "Human", Dir: human},
		}
	}
	seen := map[string]bool{}
	for _, g := range groups {
		host, dir, ok := strings.Cut(g, "=")
		host, dir = strings.TrimSpace(host), strings.TrimSpace(dir)
		if !ok || host == "" || dir == "" {
			return o, fmt.Errorf("invalid --group %q (want Host=dir)", g)
		}
		if seen[host] {
			return o, fmt.Errorf("duplicate --group host %q", host)
		}
		seen[host] = true
		o.Groups = append(o.Groups, Group{Host: host, Dir: dir})
	}

	if strings.TrimSpace(o.Pattern) == "" {
		return o, errors.New("--pattern must not be empty")
	}
	if o.Output == "" {
		return o, errors.New("--output must not be empty")
	}
	if o.Workers < 0 {
		return o, errors.New("--workers must be ≥ 0")
	}
	return o, nil
}
