package signaturecli

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(args ...string) (Options, error) {
	return ParseArgs(flag.NewFlagSet("t", flag.ContinueOnError), args)
}

func TestDefaultGroups(t *testing.T) {
	o, err := parse("-u", "clinical")
	require.NoError(t, err)
	assert.Equal(t, []Group{
		{Host: "Porcine", Dir: "animal_fna_cdmec"},
		{Host: "Environment", Dir: "env_fna_cdmec"},
		{Host: "Human", Dir: "clinical"},
	}, o.Groups)
	assert.Equal(t, "*.tsv", o.Pattern)
	assert.Equal(t, "one_health_spatial_signatures.csv", o.Output)
}

func TestCustomGroups(t *testing.T) {
	o, err := parse("-g", "Bovine=cow", "--group", " Human = ward7 ")
	require.NoError(t, err)
	assert.Equal(t, []Group{{Host: "Bovine", Dir: "cow"}, {Host: "Human", Dir: "ward7"}}, o.Groups)
}

func TestErrors(t *testing.T) {
	for _, args := range [][]string{
		{"-g", "nodir"},
		{"-g", "=x"},
		{"-g", "A=x", "-g", "A=y"},
		{"--pattern", " "},
		{"-w", "-1"},
		{"stray"},
	} {
		_, err := parse(args...)
		assert.Error(t, err, "%v", args)
	}
}
