package stats

import (
	"sort"
	"strings"

	"cdmec/internal/output"
)

// Report defaults.
const (
	MobileWithinBP = 1000
	TopN           = 10
)

// Count is one ranked entry.
type Count struct {
	Key string
	N   int
}

// Summary holds headline numbers for a master table.
type Summary struct {
	Total    int
	Embedded int
	Samples  int
	Contigs  int
}

// Summarize counts rows, embedded rows and distinct samples/contigs.
func Summarize(rows []output.Row) Summary {
	s := Summary{Total: len(rows)}
	samples := map[string]struct{}{}
	contigs := map[string]struct{}{}
	for _, r := range rows {
		if r.Embedded() {
			s.Embedded++
		}
		samples[r.SampleID] = struct{}{}
		contigs[r.SampleID+"\x00"+r.ContigID] = struct{}{}
	}
	s.Samples, s.Contigs = len(samples), len(contigs)
	return s
}

// Mobile keeps rows whose |proximity| is at most within.
func Mobile(rows []output.Row, within int) []output.Row {
	out := make([]output.Row, 0, len(rows))
	for _, r := range rows {
		if abs(r.ProximityBP) <= within {
			out = append(out, r)
		}
	}
	return out
}

// TopMobile ranks ARG names and MGE descriptors among mobile rows. Ties keep
// first-seen order; n <= 0 returns every key.
func TopMobile(rows []output.Row, within, n int) (args, mges []Count) {
	mobile := Mobile(rows, within)
	args = rank(mobile, func(r output.Row) string { return r.ARGName }, n)
	mges = rank(mobile, func(r output.Row) string { return r.MGEAssociation }, n)
	return args, mges
}

func rank(rows []output.Row, key func(output.Row) string, n int) []Count {
	idx := map[string]int{}
	var out []Count
	for _, r := range rows {
		k := strings.TrimSpace(key(r))
		if i, ok := idx[k]; ok {
			out[i].N++
			continue
		}
		idx[k] = len(out)
		out = append(out, Count{Key: k, N: 1})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].N > out[j].N })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
