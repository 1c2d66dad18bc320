// Package stats shapes column data for the numeric library and
// consumes its outputs: descriptive summaries, histograms,
// correlation, regression, ANOVA, and AIC-based distribution fitting.
package stats

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// ErrNotEnoughData is returned when an analysis needs more
// observations than the column provides.
var ErrNotEnoughData = errors.New("not enough data")

// Description is the descriptive-statistics summary of one column.
type Description struct {
	Column string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// Describe summarizes one column of values.
func Describe(column string, xs []float64) (Description, error) {
	if len(xs) == 0 {
		return Description{}, fmt.Errorf("column %q: %w", column, ErrNotEnoughData)
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	d := Description{
		Column: column,
		Count:  len(xs),
		Mean:   stat.Mean(xs, nil),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Q1:     stat.Quantile(0.25, stat.Empirical, sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Q3:     stat.Quantile(0.75, stat.Empirical, sorted, nil),
	}
	if len(xs) > 1 {
		d.Std = stat.StdDev(xs, nil)
	}
	return d, nil
}

// String renders the summary in the layout shown in the results
// overlay.
func (d Description) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:\n", d.Column)
	fmt.Fprintf(&b, "  count  %d\n", d.Count)
	fmt.Fprintf(&b, "  mean   %g\n", d.Mean)
	fmt.Fprintf(&b, "  std    %g\n", d.Std)
	fmt.Fprintf(&b, "  min    %g\n", d.Min)
	fmt.Fprintf(&b, "  25%%    %g\n", d.Q1)
	fmt.Fprintf(&b, "  50%%    %g\n", d.Median)
	fmt.Fprintf(&b, "  75%%    %g\n", d.Q3)
	fmt.Fprintf(&b, "  max    %g\n", d.Max)
	return b.String()
}

// CategoricalDescription summarizes a non-numeric column: non-null
// count, distinct values, and the most frequent value.
type CategoricalDescription struct {
	Column string
	Count  int
	Unique int
	Top    string
	Freq   int
}

// DescribeCategorical summarizes one column of text values. Frequency
// ties break to the lexically smaller value, keeping the output
// deterministic.
func DescribeCategorical(column string, values []string) (CategoricalDescription, error) {
	if len(values) == 0 {
		return CategoricalDescription{}, fmt.Errorf("column %q: %w", column, ErrNotEnoughData)
	}
	counts := make(map[string]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	d := CategoricalDescription{Column: column, Count: len(values), Unique: len(counts)}
	for v, n := range counts {
		if n > d.Freq || (n == d.Freq && v < d.Top) {
			d.Top, d.Freq = v, n
		}
	}
	return d, nil
}

// String renders the categorical summary for the results overlay.
func (d CategoricalDescription) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:\n", d.Column)
	fmt.Fprintf(&b, "  count  %d\n", d.Count)
	fmt.Fprintf(&b, "  unique %d\n", d.Unique)
	fmt.Fprintf(&b, "  top    %s\n", d.Top)
	fmt.Fprintf(&b, "  freq   %d\n", d.Freq)
	return b.String()
}
