package runutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cdmec/internal/hit"
)

func TestValidateBatch(t *testing.T) {
	w, warns := ValidateBatch(0, 0, 100, 8)
	assert.Equal(t, 8, w)
	assert.Empty(t, warns)

	w, warns = ValidateBatch(16, 1, 3, 8)
	assert.Equal(t, 3, w, "clamped to sample count")
	assert.Empty(t, warns)

	w, warns = ValidateBatch(4, 4, 10, 8)
	assert.Equal(t, 4, w)
	assert.Equal(t, []string{"4 workers × 4 search threads oversubscribes 8 CPUs"}, warns)
}

func TestEffectiveWorkers(t *testing.T) {
	assert.Equal(t, 3, EffectiveWorkers(3))
	assert.Positive(t, EffectiveWorkers(0))
}

func TestHitFilter(t *testing.T) {
	a := hit.Hit{ContigID: "c1", Name: "tetM", Start: 1, End: 9, Kind: hit.ARG}
	b := hit.Hit{ContigID: "c1", Name: "tetM", Start: 1, End: 10, Kind: hit.ARG}

	f := NewHitFilter(8)
	got := f.Filter([]hit.Hit{a, b, a, a})
	assert.Equal(t, []hit.Hit{a, b}, got)
	assert.Equal(t, 2, f.Dropped())
}

func TestHitFilterDisabled(t *testing.T) {
	var f *HitFilter = NewHitFilter(0)
	assert.Nil(t, f)
	in := []hit.Hit{{Name: "x"}, {Name: "x"}}
	assert.Equal(t, in, f.Filter(in))
	assert.True(t, f.Keep(in[0]))
	assert.Zero(t, f.Dropped())
}

func TestHitFilterBounded(t *testing.T) {
	f := NewHitFilter(1)
	a := hit.Hit{Name: "a"}
	b := hit.Hit{Name: "b"}
	assert.True(t, f.Keep(a))
	assert.True(t, f.Keep(b)) // evicts a
	assert.True(t, f.Keep(a))
}
