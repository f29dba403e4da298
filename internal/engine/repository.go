package engine

import "cdmec/internal/hit"

// ContigIndex maps a contig id to its hits in input order.
type ContigIndex map[string][]hit.Hit

// GroupByContig indexes hits by ContigID. Every hit lands in exactly one
// group and relative input order is preserved, which the resolver's
// first-seen tie-break depends on.
func GroupByContig(hits []hit.Hit) ContigIndex {
	idx := make(ContigIndex)
	for _, h := range hits {
		idx[h.ContigID] = append(idx[h.ContigID], h)
	}
	return idx
}

// Contigs returns the number of distinct contigs.
func (idx ContigIndex) Contigs() int { return len(idx) }
