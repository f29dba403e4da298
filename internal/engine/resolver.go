package engine

import (
	"fmt"
	"math"

	"cdmec/internal/hit"
)

// DefaultThreshold bounds the search window in base pairs.
const DefaultThreshold = 10000

// ErrInvalidInterval is returned when a hit with Start > End reaches the
// resolver. Upstream parsing normalizes coordinates, so this signals a bug
// there rather than bad input.
var ErrInvalidInterval = hit.ErrInvalidInterval

// Association links one ARG hit to its nearest qualifying MGE hit.
type Association struct {
	ArgName  string
	ContigID string
	ArgStart int
	ArgEnd   int

	MGEName  string
	MGEStart int
	MGEEnd   int

	ProximityBP int
	Relation    Relation
	Status      string
}

// MGEDescriptor renders the chosen MGE as "name:start-end".
func (a Association) MGEDescriptor() string {
	return fmt.Sprintf("%s:%d-%d", a.MGEName, a.MGEStart, a.MGEEnd)
}

// Config parameterizes a Resolver.
type Config struct {
	Threshold int    // max |proximity| in bp; 0 keeps only embedded MGEs
	Rules     []Rule // nil means DefaultRules()
}

// Resolver picks the nearest MGE per ARG hit.
type Resolver struct {
	threshold int
	rules     []Rule
}

func New(c Config) *Resolver {
	if c.Threshold < 0 {
		c.Threshold = 0
	}
	if c.Rules == nil {
		c.Rules = DefaultRules()
	}
	return &Resolver{threshold: c.Threshold, rules: c.Rules}
}

// Threshold returns the search window in base pairs.
func (r *Resolver) Threshold() int { return r.threshold }

// Resolve emits at most one Association per ARG hit, in ARG input order.
//
// A candidate replaces the current best only if it is within the threshold
// and strictly closer, so the first of several equidistant candidates wins.
// The status is computed when a candidate becomes best and is not revisited.
func (r *Resolver) Resolve(args []hit.Hit, mges ContigIndex) ([]Association, error) {
	var out []Association
	for _, arg := range args {
		if err := arg.Validate(); err != nil {
			return nil, err
		}
		cands, ok := mges[arg.ContigID]
		if !ok {
			continue
		}
		a, found, err := r.nearest(arg, cands)
		if err != nil {
			return nil, err
		}
		if found {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *Resolver) nearest(arg hit.Hit, cands []hit.Hit) (Association, bool, error) {
	var (
		best     *hit.Hit
		bestAbs  = math.MaxInt
		signed   int
		relation Relation
		status   string
	)
	ai := Interval{Start: arg.Start, End: arg.End}
	for i := range cands {
		m := &cands[i]
		if err := m.Validate(); err != nil {
			return Association{}, false, err
		}
		d, rel := Distance(ai, Interval{Start: m.Start, End: m.End})
		ad := abs(d)
		if ad > r.threshold || ad >= bestAbs {
			continue
		}
		best, bestAbs, signed, relation = m, ad, d, rel
		status = Classify(r.rules, rel, m.Name)
	}
	if best == nil {
		return Association{}, false, nil
	}
	return Association{
		ArgName:     arg.Name,
		ContigID:    arg.ContigID,
		ArgStart:    arg.Start,
		ArgEnd:      arg.End,
		MGEName:     best.Name,
		MGEStart:    best.Start,
		MGEEnd:      best.End,
		ProximityBP: signed,
		Relation:    relation,
		Status:      status,
	}, true, nil
}

// Analyze indexes mges and resolves args against them.
func (r *Resolver) Analyze(args, mges []hit.Hit) ([]Association, error) {
	return r.Resolve(args, GroupByContig(mges))
}
