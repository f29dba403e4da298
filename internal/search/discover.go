package search

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FASTAExtensions are the suffixes DiscoverFASTA accepts (each also with .gz).
var FASTAExtensions = []string{".fa", ".fasta", ".fna"}

// DiscoverFASTA lists FASTA files directly under dir as samples, sorted by
// path.
func DiscoverFASTA(dir string) ([]Sample, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	var out []Sample
	for _, e := range entries {
		if e.IsDir() || !IsFASTA(e.Name()) {
			continue
		}
		out = append(out, SampleFromPath(filepath.Join(dir, e.Name())))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// IsFASTA reports whether name carries a FASTA extension.
func IsFASTA(name string) bool {
	name = strings.TrimSuffix(strings.ToLower(name), ".gz")
	for _, ext := range FASTAExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// SampleFromPath derives the sample id from the base name up to its first
// dot ("SRR123.contigs.fa" → "SRR123").
func SampleFromPath(path string) Sample {
	base := filepath.Base(path)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	return Sample{ID: base, Path: path}
}

func dedupeSorted(in []Sample) []Sample {
	sort.Slice(in, func(i, j int) bool { return in[i].ID < in[j].ID })
	var out []Sample
	for _, s := range in {
		if len(out) > 0 && out[len(out)-1].ID == s.ID {
			continue
		}
		out = append(out, s)
	}
	return out
}
