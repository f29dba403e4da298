package stats

import (
	"sort"

	"cdmec/internal/output"
)

// SampleRows is one sample's summary table.
type SampleRows struct {
	Source string
	Rows   []output.Row
}

// Signature summarizes one gene within a host group.
type Signature struct {
	Host          string
	Gene          string
	DistanceBP    int // modal proximity, smallest value among ties
	TotalHits     int
	Samples       int // samples carrying the gene
	PrevalencePct float64
	AvgCopies     float64 // hits per sample in the group
}

// Signatures aggregates a host group. Every entry of samples counts toward
// the group size, including samples without rows. Output is sorted by gene.
func Signatures(host string, samples []SampleRows) []Signature {
	total := len(samples)
	if total == 0 {
		return nil
	}
	type acc struct {
		hits    int
		sources map[string]struct{}
		prox    map[int]int
	}
	genes := map[string]*acc{}
	for _, s := range samples {
		for _, r := range s.Rows {
			a := genes[r.ARGName]
			if a == nil {
				a = &acc{sources: map[string]struct{}{}, prox: map[int]int{}}
				genes[r.ARGName] = a
			}
			a.hits++
			a.sources[s.Source] = struct{}{}
			a.prox[r.ProximityBP]++
		}
	}

	out := make([]Signature, 0, len(genes))
	for gene, a := range genes {
		out = append(out, Signature{
			Host:          host,
			Gene:          gene,
			DistanceBP:    mode(a.prox),
			TotalHits:     a.hits,
			Samples:       len(a.sources),
			PrevalencePct: float64(len(a.sources)) / float64(total) * 100,
			AvgCopies:     float64(a.hits) / float64(total),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Gene < out[j].Gene })
	return out
}

func mode(counts map[int]int) int {
	best, bestN, first := 0, -1, true
	for v, n := range counts {
		if first || n > bestN || (n == bestN && v < best) {
			best, bestN, first = v, n, false
		}
	}
	return best
}
