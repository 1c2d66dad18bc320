// Package plot renders analysis output to image files. It is a thin
// shell around gonum/plot; the file extension picks the encoder.
package plot

import (
	"errors"
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"

	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/tably/tably/internal/stats"
)

// SampleLimit caps the number of points drawn into one plot. Larger
// inputs are sampled deterministically and the plot title notes it.
// Set once at startup from configuration.
var SampleLimit = 250_000

// ErrUnsupportedImageFormat is returned for save paths that are not
// .png, .jpg, or .jpeg.
var ErrUnsupportedImageFormat = errors.New("unsupported image format")

func checkFormat(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedImageFormat, filepath.Ext(path))
	}
}

// sample returns at most limit values, drawn with a fixed seed so the
// same input always renders the same plot.
func sample(xs []float64, limit int) ([]float64, bool) {
	if len(xs) <= limit {
		return xs, false
	}
	rng := rand.New(rand.NewSource(1))
	out := make([]float64, limit)
	for i, idx := range rng.Perm(len(xs))[:limit] {
		out[i] = xs[idx]
	}
	return out, true
}

// SaveHistogram writes a histogram of one column.
func SaveHistogram(column string, xs []float64, bins int, path string) error {
	if err := checkFormat(path); err != nil {
		return err
	}
	if len(xs) == 0 {
		return fmt.Errorf("column %q: no numeric values to plot", column)
	}
	xs, sampled := sample(xs, SampleLimit)

	p := gplot.New()
	p.Title.Text = "Histogram: " + column
	if sampled {
		p.Title.Text += fmt.Sprintf(" (sampled %d rows)", SampleLimit)
	}
	p.X.Label.Text = column
	p.Y.Label.Text = "count"

	h, err := plotter.NewHist(plotter.Values(xs), bins)
	if err != nil {
		return err
	}
	p.Add(h)
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

// SaveScatter writes a scatter plot of two row-aligned columns.
func SaveScatter(xcol, ycol string, xs, ys []float64, path string) error {
	if err := checkFormat(path); err != nil {
		return err
	}
	if len(xs) != len(ys) {
		return fmt.Errorf("column lengths differ: %d vs %d", len(xs), len(ys))
	}
	if len(xs) == 0 {
		return fmt.Errorf("columns %q/%q: no numeric value pairs to plot", xcol, ycol)
	}

	n := len(xs)
	sampled := n > SampleLimit
	idxs := make([]int, n)
	for i := range idxs {
		idxs[i] = i
	}
	if sampled {
		rng := rand.New(rand.NewSource(1))
		idxs = rng.Perm(n)[:SampleLimit]
	}
	pts := make(plotter.XYs, len(idxs))
	for i, idx := range idxs {
		pts[i].X = xs[idx]
		pts[i].Y = ys[idx]
	}

	p := gplot.New()
	p.Title.Text = fmt.Sprintf("Scatter: %s / %s", xcol, ycol)
	if sampled {
		p.Title.Text += fmt.Sprintf(" (sampled %d rows)", SampleLimit)
	}
	p.X.Label.Text = xcol
	p.Y.Label.Text = ycol

	s, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	p.Add(s)
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

// corrGrid adapts a correlation matrix to the heat-map grid interface.
type corrGrid struct {
	m *stats.CorrelationMatrix
}

func (g corrGrid) Dims() (int, int)   { return len(g.m.Columns), len(g.m.Columns) }
func (g corrGrid) X(c int) float64    { return float64(c) }
func (g corrGrid) Y(r int) float64    { return float64(r) }
func (g corrGrid) Z(c, r int) float64 { return g.m.Values[r][c] }

// SaveCorrelationHeatmap writes the correlation matrix as a heat map
// with column names on both axes.
func SaveCorrelationHeatmap(m *stats.CorrelationMatrix, path string) error {
	if err := checkFormat(path); err != nil {
		return err
	}

	p := gplot.New()
	p.Title.Text = "Correlation matrix"
	pal := moreland.SmoothBlueRed().Palette(255)
	p.Add(plotter.NewHeatMap(corrGrid{m: m}, pal))
	p.NominalX(m.Columns...)
	p.NominalY(m.Columns...)
	return p.Save(6*vg.Inch, 5*vg.Inch, path)
}
