package collectcli

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(args ...string) (Options, error) {
	return ParseArgs(flag.NewFlagSet("t", flag.ContinueOnError), args)
}

func TestDefaults(t *testing.T) {
	o, err := parse("-i", "reports")
	require.NoError(t, err)
	assert.Equal(t, "reports", o.Input)
	assert.Equal(t, "MyReport", o.Prefix)
	assert.Equal(t, 100, o.Bins)
	assert.Equal(t, 10000, o.Span)
	assert.False(t, o.Set("input"))
	assert.True(t, o.Set("i"))
}

func TestPositionalInput(t *testing.T) {
	o, err := parse("-o", "Study1", "reports")
	require.NoError(t, err)
	assert.Equal(t, "reports", o.Input)
	assert.Equal(t, "Study1", o.Prefix)
}

func TestErrors(t *testing.T) {
	for _, args := range [][]string{
		{"a", "b"},
		{"-i", "a", "b"},
		{"--artifact", "gcs"},
		{"--bins", "0"},
		{"-o", ""},
	} {
		_, err := parse(args...)
		assert.Error(t, err, "%v", args)
	}
}
