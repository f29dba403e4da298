package engine

// Relation is the raw positional relation of an MGE interval to an ARG
// interval.
type Relation int

const (
	Overlapping Relation = iota
	Upstream
	Downstream
	InternalOverlap
)

// String returns the label used inside status strings and report rows.
func (r Relation) String() string {
	switch r {
	case Overlapping:
		return "Overlapping"
	case Upstream:
		return "Upstream"
	case Downstream:
		return "Downstream"
	case InternalOverlap:
		return "Internal Overlap"
	}
	return "Unknown"
}

// Embedded reports whether the relation counts as any overlap.
func (r Relation) Embedded() bool { return r == Overlapping || r == InternalOverlap }

// Interval is an inclusive [Start, End] span with Start <= End.
type Interval struct {
	Start, End int
}

// Distance returns the signed gap from arg to mge and their relation.
// Negative means the MGE ends before the ARG starts, positive means it
// starts after the ARG ends, zero means the intervals overlap or touch.
// Callers guarantee Start <= End on both intervals.
func Distance(arg, mge Interval) (int, Relation) {
	switch {
	case max(arg.Start, mge.Start) < min(arg.End, mge.End):
		return 0, Overlapping
	case mge.End < arg.Start:
		return -(arg.Start - mge.End), Upstream
	case arg.End < mge.Start:
		return mge.Start - arg.End, Downstream
	}
	return 0, InternalOverlap
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
