package stats

import "fmt"

// MaxHistogramBins caps the bin count; fewer bins are used when the
// column has fewer distinct values.
const MaxHistogramBins = 200

// HistogramData holds equal-width bins over a column: n+1 edges and n
// counts.
type HistogramData struct {
	Column string
	Edges  []float64
	Counts []int
}

// Histogram bins a column with bin count min(distinct values,
// MaxHistogramBins).
func Histogram(column string, xs []float64) (HistogramData, error) {
	if len(xs) == 0 {
		return HistogramData{}, fmt.Errorf("column %q: %w", column, ErrNotEnoughData)
	}

	min, max := xs[0], xs[0]
	distinct := make(map[float64]struct{}, len(xs))
	for _, x := range xs {
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
		distinct[x] = struct{}{}
	}

	bins := len(distinct)
	if bins > MaxHistogramBins {
		bins = MaxHistogramBins
	}

	h := HistogramData{
		Column: column,
		Edges:  make([]float64, bins+1),
		Counts: make([]int, bins),
	}
	if min == max {
		// All values equal: one bin holding everything.
		h.Edges = []float64{min, min}
		h.Counts = []int{len(xs)}
		return h, nil
	}

	width := (max - min) / float64(bins)
	for i := range h.Edges {
		h.Edges[i] = min + float64(i)*width
	}
	h.Edges[bins] = max // avoid float drift on the last edge
	for _, x := range xs {
		idx := int((x - min) / width)
		if idx >= bins {
			idx = bins - 1
		}
		h.Counts[idx]++
	}
	return h, nil
}

// MaxCount returns the largest bin count, used to scale bar rendering.
func (h HistogramData) MaxCount() int {
	max := 0
	for _, c := range h.Counts {
		if c > max {
			max = c
		}
	}
	return max
}
