package stats

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"gonum.org/v1/gonum/stat"
)

// CorrelationMatrix is a symmetric Pearson correlation matrix over the
// selected columns.
type CorrelationMatrix struct {
	Columns []string
	Values  [][]float64 // Values[i][j] = corr(Columns[i], Columns[j])
}

// Correlate computes pairwise Pearson correlations. Columns must be
// row-aligned (see dataframe.FloatColumns); at least two rows and two
// columns are required.
func Correlate(names []string, cols [][]float64) (*CorrelationMatrix, error) {
	if len(names) < 2 {
		return nil, fmt.Errorf("correlation needs at least two columns")
	}
	if len(cols) != len(names) {
		return nil, fmt.Errorf("got %d columns for %d names", len(cols), len(names))
	}
	for _, col := range cols {
		if len(col) < 2 {
			return nil, ErrNotEnoughData
		}
	}

	m := &CorrelationMatrix{
		Columns: names,
		Values:  make([][]float64, len(names)),
	}
	for i := range names {
		m.Values[i] = make([]float64, len(names))
		m.Values[i][i] = 1
	}
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			r := stat.Correlation(cols[i], cols[j], nil)
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m, nil
}

// String renders the matrix as an aligned text grid.
func (m *CorrelationMatrix) String() string {
	nameWidth := 0
	for _, n := range m.Columns {
		if len(n) > nameWidth {
			nameWidth = len(n)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%*s", nameWidth, "")
	for _, n := range m.Columns {
		fmt.Fprintf(&b, "  %8s", truncate(n, 8))
	}
	b.WriteString("\n")
	for i, n := range m.Columns {
		fmt.Fprintf(&b, "%-*s", nameWidth, n)
		for j := range m.Columns {
			fmt.Fprintf(&b, "  %8.4f", m.Values[i][j])
		}
		if i < len(m.Columns)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// truncate shortens a column name to n display cells without cutting
// a multibyte rune.
func truncate(s string, n int) string {
	if runewidth.StringWidth(s) <= n {
		return s
	}
	return runewidth.Truncate(s, n, "…")
}
