// Package cliutil splits and expands command-line arguments.
package cliutil

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cdmec/internal/search"
)

// BoolFlags returns names of flags that don't require a value.
func BoolFlags(fs *flag.FlagSet) map[string]bool {
	m := map[string]bool{}
	fs.VisitAll(func(f *flag.Flag) {
		if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
			m[f.Name] = true
		}
	})
	return m
}

// SplitFlagsAndPositionals separates flag-like args from positionals,
// preserving '-','--','--x=y' semantics. Use before fs.Parse(flagArgs).
func SplitFlagsAndPositionals(fs *flag.FlagSet, argv []string) (flagArgs, posArgs []string) {
	boolFlags := BoolFlags(fs)
	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		if arg == "--" {
			posArgs = append(posArgs, argv[i+1:]...)
			break
		}
		if arg == "-" {
			posArgs = append(posArgs, arg)
			continue
		}
		if strings.HasPrefix(arg, "-") {
			if strings.Contains(arg, "=") {
				flagArgs = append(flagArgs, arg)
				continue
			}
			name := strings.TrimLeft(arg, "-")
			if eq := strings.IndexByte(name, '='); eq >= 0 {
				name = name[:eq]
			}
			needsVal := !boolFlags[name]
			flagArgs = append(flagArgs, arg)
			if needsVal && i+1 < len(argv) {
				flagArgs = append(flagArgs, argv[i+1])
				i++
			}
			continue
		}
		posArgs = append(posArgs, arg)
	}
	return
}

func hasGlobMeta(s string) bool { return strings.ContainsAny(s, "*?[") }

// ExpandPositionals expands any globs among path-like positionals.
func ExpandPositionals(posArgs []string) ([]string, error) {
	var out []string
	for _, a := range posArgs {
		if a == "-" {
			out = append(out, a)
			continue
		}
		if hasGlobMeta(a) {
			m, err := filepath.Glob(a)
			if err != nil {
				return nil, fmt.Errorf("bad glob %q: %v", a, err)
			}
			if len(m) == 0 {
				return nil, fmt.Errorf("no input matched %q", a)
			}
			out = append(out, m...)
		} else {
			out = append(out, a)
		}
	}
	return out, nil
}

// ResolveSamples turns inputs (FASTA files, globs or directories) into
// samples. Directories contribute every FASTA file directly inside them.
// The result keeps argument order; repeated paths are dropped.
func ResolveSamples(inputs []string) ([]search.Sample, error) {
	paths, err := ExpandPositionals(inputs)
	if err != nil {
		return nil, err
	}
	var out []search.Sample
	seen := map[string]bool{}
	add := func(s search.Sample) {
		if seen[s.Path] {
			return
		}
		seen[s.Path] = true
		out = append(out, s)
	}
	for _, p := range paths {
		if p == "-" {
			return nil, fmt.Errorf("reading assemblies from stdin is not supported")
		}
		st, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !st.IsDir() {
			add(search.SampleFromPath(p))
			continue
		}
		found, err := search.DiscoverFASTA(p)
		if err != nil {
			return nil, err
		}
		for _, s := range found {
			add(s)
		}
	}
	return out, nil
}

// DuplicateIDs lists sample ids shared by more than one input, in first-seen
// order.
func DuplicateIDs(samples []search.Sample) []string {
	count := map[string]int{}
	var order []string
	for _, s := range samples {
		if count[s.ID] == 0 {
			order = append(order, s.ID)
		}
		count[s.ID]++
	}
	var dups []string
	for _, id := range order {
		if count[id] > 1 {
			dups = append(dups, id)
		}
	}
	return dups
}
