// internal/runutil/dedupe.go
package runutil

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"cdmec/internal/hit"
)

// HitFilter drops exact repeats of a hit (same contig, reference entry,
// span and kind). Memory is bounded by an LRU of the most recent keys, so
// repeats further apart than the capacity slip through.
type HitFilter struct {
	seen    *lru.Cache[hit.Key, struct{}]
	dropped int
}

// NewHitFilter returns nil when capacity <= 0; a nil filter keeps everything.
func NewHitFilter(capacity int) *HitFilter {
	if capacity <= 0 {
		return nil
	}
	c, err := lru.New[hit.Key, struct{}](capacity)
	if err != nil {
		return nil
	}
	return &HitFilter{seen: c}
}

// Keep reports whether h has not been seen before and records it.
func (f *HitFilter) Keep(h hit.Hit) bool {
	if f == nil {
		return true
	}
	k := h.Key()
	if f.seen.Contains(k) {
		f.seen.Get(k) // refresh recency
		f.dropped++
		return false
	}
	f.seen.Add(k, struct{}{})
	return true
}

// Filter returns the hits Keep accepts, in order.
func (f *HitFilter) Filter(hits []hit.Hit) []hit.Hit {
	if f == nil {
		return hits
	}
	out := hits[:0:0]
	for _, h := range hits {
		if f.Keep(h) {
			out = append(out, h)
		}
	}
	return out
}

// Dropped returns the number of repeats removed so far.
func (f *HitFilter) Dropped() int {
	if f == nil {
		return 0
	}
	return f.dropped
}
