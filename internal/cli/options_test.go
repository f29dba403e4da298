// internal/cli/options_test.go
package cli

import (
	"errors"
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cdmec/internal/clibase"
	"cdmec/internal/config"
)

func newFS() *flag.FlagSet { return flag.NewFlagSet("test", flag.ContinueOnError) }

func mustParse(t *testing.T, args ...string) Options {
	t.Helper()
	opts, err := ParseArgs(newFS(), args)
	require.NoError(t, err)
	return opts
}

func TestInputsFromFlagsAndPositionals(t *testing.T) {
	o := mustParse(t, "-i", "asm/", "--input", "x.fa", "-t", "4", "-bt", "2", "y.fna")
	assert.Equal(t, []string{"asm/", "x.fa", "y.fna"}, o.Inputs)
	assert.Equal(t, 4, o.Workers)
	assert.Equal(t, 2, o.BlastThreads)
	assert.True(t, o.Header)
	assert.Equal(t, "none", o.Format)
}

func TestHitsDirAlone(t *testing.T) {
	o := mustParse(t, "--hits-dir", "hits", "--format", "jsonl", "--no-header")
	assert.Equal(t, "hits", o.HitsDir)
	assert.False(t, o.Header)
}

func TestErrors(t *testing.T) {
	cases := [][]string{
		{},
		{"--threshold", "-1", "x.fa"},
		{"--workers", "-1", "x.fa"},
		{"--format", "fasta", "x.fa"},
		{"--artifact", "gcs", "x.fa"},
		{"--no-match-exit-code", "300", "x.fa"},
		{"--log-format", "xml", "x.fa"},
		{"--timeout", "0", "x.fa"},
	}
	for _, args := range cases {
		_, err := ParseArgs(newFS(), args)
		assert.Error(t, err, "%v", args)
	}
}

func TestHelpVersionExamples(t *testing.T) {
	_, err := ParseArgs(newFS(), []string{"-h"})
	assert.True(t, errors.Is(err, flag.ErrHelp))

	_, err = ParseArgs(newFS(), []string{"--examples"})
	assert.ErrorIs(t, err, clibase.ErrPrintedAndExitOK)

	o, err := ParseArgs(newFS(), []string{"--version"})
	require.NoError(t, err)
	assert.True(t, o.Version)
}

func TestApplyOnlyExplicitFlags(t *testing.T) {
	cfg := config.Defaults()
	cfg.Threshold = 2500 // from a config file
	cfg.Workers = 6

	o := mustParse(t, "-t", "3", "--store", "runs.db", "--log-level", "debug", "x.fa")
	o.Apply(&cfg)

	assert.Equal(t, 2500, cfg.Threshold, "unset flag must not clobber config")
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "runs.db", cfg.StoreDSN)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "./cdmec_analysis_reports", cfg.OutputDir)

	o = mustParse(t, "-o", "out", "--threshold", "100", "--hits-dir", "h")
	o.Apply(&cfg)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, 100, cfg.Threshold)
	assert.Equal(t, "h", cfg.Search.HitsDir)

	o = mustParse(t, "--threshold", "0", "--hits-dir", "h")
	o.Apply(&cfg)
	assert.Equal(t, 0, cfg.Threshold)
}
