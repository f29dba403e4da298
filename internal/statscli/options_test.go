package statscli

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cdmec/internal/clibase"
)

func parse(args ...string) (Options, error) {
	return ParseArgs(flag.NewFlagSet("t", flag.ContinueOnError), args)
}

func TestParse(t *testing.T) {
	o, err := parse("-i", "m.csv")
	require.NoError(t, err)
	assert.Equal(t, Options{Common: o.Common, Input: "m.csv", Prefix: "Cdiff_Analysis", Within: 1000, Top: 10}, o)

	o, err = parse("--within", "500", "--top", "0", "-o", "S1", "m.csv")
	require.NoError(t, err)
	assert.Equal(t, "m.csv", o.Input)
	assert.Equal(t, 500, o.Within)
	assert.Equal(t, 0, o.Top)
}

func TestParseErrors(t *testing.T) {
	_, err := parse()
	assert.ErrorIs(t, err, clibase.ErrNoInput)

	for _, args := range [][]string{
		{"-i", "a", "b"},
		{"--within", "-1", "a"},
		{"--top", "-2", "a"},
	} {
		_, err := parse(args...)
		assert.Error(t, err, "%v", args)
	}
}
