// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"cdmec/internal/clibase"
	"cdmec/internal/cliutil"
	"cdmec/internal/config"
	"cdmec/internal/output"
)

// Options holds all cdmec flags and arguments.
type Options struct {
	clibase.Common

	// Input
	Inputs  []string // FASTA files, globs or directories
	HitsDir string

	// Search
	ARGDB        string
	MGEDB        string
	BlastThreads int
	EValue       string
	TimeoutSecs  int

	// Association
	Threshold int
	DedupeCap int

	// Batch
	Workers int

	// Output
	OutDir          string
	Artifact        string
	StoreDSN        string
	Format          string // text|json|jsonl|none
	Sort            bool
	Header          bool
	NoMatchExitCode int
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clibase.UsageCommon(fs, name, "ARG/MGE genomic context classifier", func(out io.Writer, def func(string) string) {
		fmt.Fprintln(out, "Usage:")
		fmt.Fprintf(out, "  %s [options] -i assemblies/\n", name)
		fmt.Fprintf(out, "  %s [options] sample1.fasta sample2.fna.gz\n", name)
		fmt.Fprintf(out, "  %s [options] --hits-dir precomputed/\n", name)

		fmt.Fprintln(out, "\nInput:")
		fmt.Fprintln(out, "  -i, --input path            Assembly directory or FASTA file (repeatable; positionals too)")
		fmt.Fprintln(out, "      --hits-dir dir          Read <sample>.arg.tsv/.mge.tsv instead of running BLAST")

		fmt.Fprintln(out, "\nSearch:")
		fmt.Fprintf(out, "      --arg-db string         ARG protein database [%s]\n", def("arg-db"))
		fmt.Fprintf(out, "      --mge-db string         MGE nucleotide database [%s]\n", def("mge-db"))
		fmt.Fprintf(out, "  -bt, --blast-threads int    Threads per BLAST call [%s]\n", def("blast-threads"))
		fmt.Fprintf(out, "      --evalue string         E-value cutoff [%s]\n", def("evalue"))
		fmt.Fprintf(out, "      --timeout int           Per-search timeout in seconds [%s]\n", def("timeout"))

		fmt.Fprintln(out, "\nAssociation:")
		fmt.Fprintf(out, "      --threshold int         Max ARG-MGE distance in bp [%s]\n", def("threshold"))
		fmt.Fprintf(out, "      --dedupe-cap int        Drop repeated hits (LRU capacity, 0=off) [%s]\n", def("dedupe-cap"))

		fmt.Fprintln(out, "\nPerformance:")
		fmt.Fprintf(out, "  -t, --workers int           Samples processed in parallel (0=all CPUs) [%s]\n", def("workers"))

		fmt.Fprintln(out, "\nOutput:")
		fmt.Fprintf(out, "  -o, --outdir dir            Per-sample report directory [%s]\n", def("outdir"))
		fmt.Fprintf(out, "      --artifact string       Report sink: fs | s3 [%s]\n", def("artifact"))
		fmt.Fprintln(out, "      --store dsn             Also load rows into sqlite (path) or postgres:// DSN")
		fmt.Fprintf(out, "      --format string         Stdout stream: text | json | jsonl | none [%s]\n", def("format"))
		fmt.Fprintf(out, "      --sort                  Sort the stream deterministically [%s]\n", def("sort"))
		fmt.Fprintf(out, "      --no-header             Suppress header line [%s]\n", def("no-header"))
		fmt.Fprintf(out, "      --no-match-exit-code int  Exit code when no associations found [%s]\n", def("no-match-exit-code"))
	})
	return fs
}

// PrintExamples prints a short quickstart.
func PrintExamples(out io.Writer) {
	clibase.PrintExamples(out, "cdmec", []clibase.Example{
		{Title: "Classify every assembly in a directory, 4 samples at a time:", Command: "cdmec -i assemblies/ -o reports/ -t 4 -bt 2"},
		{Title: "Replay saved BLAST tables and stream TSV to stdout:", Command: "cdmec --hits-dir hits/ --format text --sort > all.tsv"},
		{Title: "Tighter window, results also loaded into SQLite:", Command: "cdmec --threshold 5000 --store cdmec.db assemblies/*.fna.gz"},
	})
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var (
		o            Options
		help         bool
		showExamples bool
		noHeader     bool
	)
	d := config.Defaults()

	clibase.Register(fs, &o.Common)

	clibase.StringSlice(fs, &o.Inputs, "assembly directory or FASTA file (repeatable)", "input", "i")
	fs.StringVar(&o.HitsDir, "hits-dir", "", "precomputed hit tables directory")

	fs.StringVar(&o.ARGDB, "arg-db", d.Search.ARGDB, "ARG protein database")
	fs.StringVar(&o.MGEDB, "mge-db", d.Search.MGEDB, "MGE nucleotide database")
	fs.IntVar(&o.BlastThreads, "blast-threads", d.Search.Threads, "threads per BLAST call")
	fs.IntVar(&o.BlastThreads, "bt", d.Search.Threads, "alias of --blast-threads")
	fs.StringVar(&o.EValue, "evalue", d.Search.EValue, "E-value cutoff")
	fs.IntVar(&o.TimeoutSecs, "timeout", d.Search.TimeoutSecs, "per-search timeout (s)")

	fs.IntVar(&o.Threshold, "threshold", d.Threshold, "max ARG-MGE distance (bp)")
	fs.IntVar(&o.DedupeCap, "dedupe-cap", d.DedupeCap, "repeated-hit filter capacity (0=off)")

	fs.IntVar(&o.Workers, "workers", d.Workers, "parallel samples (0=all CPUs)")
	fs.IntVar(&o.Workers, "t", d.Workers, "alias of --workers")

	fs.StringVar(&o.OutDir, "outdir", d.OutputDir, "per-sample report directory")
	fs.StringVar(&o.OutDir, "o", d.OutputDir, "alias of --outdir")
	fs.StringVar(&o.Artifact, "artifact", d.Artifact.Backend, "report sink: fs | s3")
	fs.StringVar(&o.StoreDSN, "store", "", "association store DSN")
	fs.StringVar(&o.Format, "format", output.FormatNone, "stdout stream format")
	fs.BoolVar(&o.Sort, "sort", false, "sort the stream [false]")
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line [false]")
	fs.IntVar(&o.NoMatchExitCode, "no-match-exit-code", 0, "exit code when no associations found [0]")

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
	o.Header = !noHeader
	o.Inputs = append(o.Inputs, posArgs...)

	if err := clibase.Validate(&o.Common); err != nil {
		return o, err
	}
	return o, o.validate()
}

func (o *Options) validate() error {
	if len(o.Inputs) == 0 && o.HitsDir == "" {
		return errors.New("provide assemblies (-i/--input or positionals) or --hits-dir")
	}
	switch {
	case o.Threshold < 0:
		return errors.New("--threshold must be ≥ 0")
	case o.Workers < 0:
		return errors.New("--workers must be ≥ 0")
	case o.BlastThreads < 0:
		return errors.New("--blast-threads must be ≥ 0")
	case o.TimeoutSecs <= 0:
		return errors.New("--timeout must be > 0")
	case o.DedupeCap < 0:
		return errors.New("--dedupe-cap must be ≥ 0")
	}
	switch o.Format {
	case output.FormatText, output.FormatJSON, output.FormatJSONL, output.FormatNone:
	default:
		return fmt.Errorf("invalid --format %q", o.Format)
	}
	switch o.Artifact {
	case "fs", "s3":
	default:
		return fmt.Errorf("invalid --artifact %q", o.Artifact)
	}
	if o.NoMatchExitCode < 0 || o.NoMatchExitCode > 255 {
		return errors.New("--no-match-exit-code must be between 0 and 255")
	}
	return nil
}

// Apply overlays flags given on the command line onto cfg.
func (o Options) Apply(cfg *config.Config) {
	if o.Set("hits-dir") {
		cfg.Search.HitsDir = o.HitsDir
	}
	if o.Set("arg-db") {
		cfg.Search.ARGDB = o.ARGDB
	}
	if o.Set("mge-db") {
		cfg.Search.MGEDB = o.MGEDB
	}
	if o.Set("blast-threads", "bt") {
		cfg.Search.Threads = o.BlastThreads
	}
	if o.Set("evalue") {
		cfg.Search.EValue = o.EValue
	}
	if o.Set("timeout") {
		cfg.Search.TimeoutSecs = o.TimeoutSecs
	}
	if o.Set("threshold") {
		cfg.Threshold = o.Threshold
	}
	if o.Set("dedupe-cap") {
		cfg.DedupeCap = o.DedupeCap
	}
	if o.Set("workers", "t") {
		cfg.Workers = o.Workers
	}
	if o.Set("outdir", "o") {
		cfg.OutputDir = o.OutDir
	}
	if o.Set("artifact") {
		cfg.Artifact.Backend = o.Artifact
	}
	if o.Set("store") {
		cfg.StoreDSN = o.StoreDSN
	}
	cfg.Log.Level, cfg.Log.Format = o.LogSettings(cfg.Log.Level, cfg.Log.Format)
}
