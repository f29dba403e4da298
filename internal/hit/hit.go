// Package hit holds typed homology detections on assembled contigs and the
// parser that turns tabular search output into them.
package hit

import (
	"errors"
	"fmt"
)

// Kind tells which reference database produced a hit.
type Kind int

const (
	ARG Kind = iota // antibiotic resistance gene
	MGE             // mobile genetic element
)

func (k Kind) String() string {
	switch k {
	case ARG:
		return "ARG"
	case MGE:
		return "MGE"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ErrInvalidInterval reports a hit whose start lies after its end.
var ErrInvalidInterval = errors.New("invalid interval")

// Hit is one homology detection on a contig. Start and End are inclusive
// query coordinates with Start <= End. Hits are passed by value and never
// mutated after parsing.
type Hit struct {
	ContigID string
	Name     string
	Start    int
	End      int
	Kind     Kind

	// Alignment attributes carried through from tabular output (zero when
	// the source did not provide them).
	Identity  float64
	AlnLength int
	EValue    float64
	BitScore  float64
}

// Length returns the number of bases covered by the hit (inclusive).
func (h Hit) Length() int { return h.End - h.Start + 1 }

// Validate checks the interval invariant.
func (h Hit) Validate() error {
	if h.Start > h.End {
		return fmt.Errorf("%w: %s %q on %q: start %d > end %d",
			ErrInvalidInterval, h.Kind, h.Name, h.ContigID, h.Start, h.End)
	}
	return nil
}

// Key identifies a hit by location and reference entry.
type Key struct {
	ContigID string
	Name     string
	Start    int
	End      int
	Kind     Kind
}

func (h Hit) Key() Key {
	return Key{ContigID: h.ContigID, Name: h.Name, Start: h.Start, End: h.End, Kind: h.Kind}
}
