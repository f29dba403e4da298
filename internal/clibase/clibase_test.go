package clibase

import (
	"bytes"
	"flag"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndSetFlags(t *testing.T) {
	fs := flag.NewFlagSet("x", flag.ContinueOnError)
	var c Common
	Register(fs, &c)
	var groups []string
	StringSlice(fs, &groups, "host group", "group", "g")

	require.NoError(t, fs.Parse([]string{"-q", "--log-format", "json", "--group", "A=a", "-g", "B=b"}))
	assert.True(t, c.Quiet)
	assert.Equal(t, "json", c.LogFormat)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, []string{"A=a", "B=b"}, groups)
	require.NoError(t, Validate(&c))

	set := SetFlags(fs)
	assert.True(t, set["q"])
	assert.False(t, set["quiet"])
	assert.True(t, AnySet(set, "quiet", "q"))
	assert.False(t, AnySet(set, "config"))

	c.Capture(fs)
	assert.True(t, c.Set("quiet", "q"))
	lvl, format := c.LogSettings("warn", "text")
	assert.Equal(t, "warn", lvl, "unset flag keeps configured level")
	assert.Equal(t, "json", format)
}

func TestValidateCommon(t *testing.T) {
	assert.Error(t, Validate(&Common{LogFormat: "xml", LogLevel: "info"}))
	assert.Error(t, Validate(&Common{LogFormat: "text", LogLevel: "loud"}))
}

func TestUsageAndExamples(t *testing.T) {
	fs := flag.NewFlagSet("cdmec", flag.ContinueOnError)
	var c Common
	Register(fs, &c)
	var buf bytes.Buffer
	fs.SetOutput(&buf)
	UsageCommon(fs, "cdmec", "ARG/MGE context", func(out io.Writer, def func(string) string) {
		_, _ = io.WriteString(out, "EXTRA "+def("log-level")+"\n")
	})
	fs.Usage()
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "cdmec – ARG/MGE context"))
	assert.Contains(t, out, "EXTRA info")
	assert.Contains(t, out, "--log-format string")

	buf.Reset()
	PrintExamples(&buf, "cdmec", []Example{{Title: "Replay hits:", Command: "cdmec --hits-dir hits/"}})
	assert.Contains(t, buf.String(), "cdmec: quickstart\n\nReplay hits:\n  cdmec --hits-dir hits/\n")
	PrintExamples(nil, "cdmec", nil)
}
