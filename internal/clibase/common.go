// internal/clibase/common.go
package clibase

import (
	"errors"
	"flag"
	"fmt"
)

// Common holds CLI fields shared by every cdmec tool.
type Common struct {
	ConfigPath string
	LogLevel   string
	LogFormat  string
	NoColor    bool
	Quiet      bool
	Version    bool

	set map[string]bool
}

// Capture records which flags were given on the command line. Call it
// after fs.Parse.
func (c *Common) Capture(fs *flag.FlagSet) { c.set = SetFlags(fs) }

// Set reports whether any of names was given on the command line.
func (c Common) Set(names ...string) bool { return AnySet(c.set, names...) }

// LogSettings returns the configured log level and format, replaced by
// --log-level/--log-format when those were given.
func (c Common) LogSettings(level, format string) (string, string) {
	if c.Set("log-level") {
		level = c.LogLevel
	}
	if c.Set("log-format") {
		format = c.LogFormat
	}
	return level, format
}

// sliceValue appends each value to a *[]string (for repeatable flags).
type sliceValue struct{ dst *[]string }

func (s *sliceValue) String() string {
	if s.dst == nil {
		return ""
	}
	return fmt.Sprint(*s.dst)
}

func (s *sliceValue) Set(v string) error {
	*s.dst = append(*s.dst, v)
	return nil
}

// StringSlice registers a repeatable string flag under every name.
func StringSlice(fs *flag.FlagSet, dst *[]string, usage string, names ...string) {
	v := &sliceValue{dst: dst}
	for i, n := range names {
		if i == 0 {
			fs.Var(v, n, usage)
			continue
		}
		fs.Var(v, n, "alias of --"+names[0])
	}
}

// Register wires shared flags onto fs.
func Register(fs *flag.FlagSet, c *Common) {
	fs.StringVar(&c.ConfigPath, "config", "", "YAML configuration file")
	fs.StringVar(&c.LogLevel, "log-level", "info", "log level: debug | info | warn | error [info]")
	fs.StringVar(&c.LogFormat, "log-format", "text", "log format on stderr: text | json [text]")
	fs.BoolVar(&c.NoColor, "no-color", false, "disable colored output [false]")

	fs.BoolVar(&c.Quiet, "quiet", false, "suppress non-essential messages [false]")
	fs.BoolVar(&c.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&c.Version, "v", false, "print version and exit [false]")
	fs.BoolVar(&c.Version, "version", false, "print version and exit [false]")
}

// Validate applies shared CLI invariants used by all tools.
func Validate(c *Common) error {
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid --log-format %q", c.LogFormat)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error", "DEBUG", "INFO", "WARN", "ERROR":
	default:
		return fmt.Errorf("invalid --log-level %q", c.LogLevel)
	}
	return nil
}

// SetFlags returns the names of flags given on the command line. Aliases
// are reported under the name actually used.
func SetFlags(fs *flag.FlagSet) map[string]bool {
	m := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { m[f.Name] = true })
	return m
}

// AnySet reports whether any of names was given.
func AnySet(set map[string]bool, names ...string) bool {
	for _, n := range names {
		if set[n] {
			return true
		}
	}
	return false
}

// ErrNoInput is returned when a tool has nothing to work on.
var ErrNoInput = errors.New("no input given")
