package stats

import (
	"fmt"
	"io"
	"strings"

	"cdmec/internal/output"
)

// Histogram bins proximity values over [-Span, Span].
type Histogram struct {
	Span   int
	Counts []int
	Below  int // values < -Span
	Above  int // values > Span
}

// NewHistogram bins rows' proximities into n equal-width bins. The last bin
// is closed on the right.
func NewHistogram(rows []output.Row, span, n int) Histogram {
	if n <= 0 {
		n = 100
	}
	if span <= 0 {
		span = 1
	}
	h := Histogram{Span: span, Counts: make([]int, n)}
	width := float64(2*span) / float64(n)
	for _, r := range rows {
		v := r.ProximityBP
		switch {
		case v < -span:
			h.Below++
		case v > span:
			h.Above++
		default:
			i := int(float64(v+span) / width)
			if i >= n {
				i = n - 1
			}
			h.Counts[i]++
		}
	}
	return h
}

// Bounds returns the [lo, hi) edges of bin i.
func (h Histogram) Bounds(i int) (lo, hi float64) {
	width := float64(2*h.Span) / float64(len(h.Counts))
	lo = float64(-h.Span) + float64(i)*width
	return lo, lo + width
}

// Total counts every binned value.
func (h Histogram) Total() int {
	t := 0
	for _, c := range h.Counts {
		t += c
	}
	return t
}

// Render draws one line per non-empty bin with a bar scaled to width.
func (h Histogram) Render(w io.Writer, width int) error {
	if width <= 0 {
		width = 50
	}
	peak := 0
	for _, c := range h.Counts {
		peak = max(peak, c)
	}
	for i, c := range h.Counts {
		if c == 0 {
			continue
		}
		lo, hi := h.Bounds(i)
		bar := c * width / peak
		if bar == 0 {
			bar = 1
		}
		if _, err := fmt.Fprintf(w, "%8.0f..%-8.0f %6d %s\n", lo, hi, c, strings.Repeat("#", bar)); err != nil {
			return err
		}
	}
	if h.Below+h.Above > 0 {
		if _, err := fmt.Fprintf(w, "out of range: %d below, %d above\n", h.Below, h.Above); err != nil {
			return err
		}
	}
	return nil
}
