package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// RegressionResult holds a simple linear regression of y on x.
type RegressionResult struct {
	XColumn   string
	YColumn   string
	Slope     float64
	Intercept float64
	R         float64 // Pearson correlation of x and y
	P         float64 // two-sided p-value for slope != 0
	StdErr    float64 // standard error of the slope
	N         int
}

// LinearRegression fits y = intercept + slope*x. x and y must be
// row-aligned and contain at least three observations (the t-test
// needs n-2 degrees of freedom).
func LinearRegression(xcol, ycol string, xs, ys []float64) (RegressionResult, error) {
	if len(xs) != len(ys) {
		return RegressionResult{}, fmt.Errorf("column lengths differ: %d vs %d", len(xs), len(ys))
	}
	n := len(xs)
	if n < 3 {
		return RegressionResult{}, ErrNotEnoughData
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	if math.IsNaN(slope) || math.IsInf(slope, 0) {
		return RegressionResult{}, fmt.Errorf("degenerate x column %q", xcol)
	}
	r := stat.Correlation(xs, ys, nil)

	// Standard error of the slope from the residual and x sums of
	// squares.
	meanX := stat.Mean(xs, nil)
	var sse, ssx float64
	for i := range xs {
		resid := ys[i] - (intercept + slope*xs[i])
		sse += resid * resid
		dx := xs[i] - meanX
		ssx += dx * dx
	}
	if ssx == 0 {
		return RegressionResult{}, fmt.Errorf("degenerate x column %q", xcol)
	}
	stderr := math.Sqrt(sse / float64(n-2) / ssx)

	p := 1.0
	if stderr > 0 {
		tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 2)}
		t := math.Abs(slope / stderr)
		p = 2 * tDist.Survival(t)
	} else if slope != 0 {
		p = 0
	}

	return RegressionResult{
		XColumn:   xcol,
		YColumn:   ycol,
		Slope:     slope,
		Intercept: intercept,
		R:         r,
		P:         p,
		StdErr:    stderr,
		N:         n,
	}, nil
}

// String renders the regression summary for the results overlay.
func (r RegressionResult) String() string {
	return fmt.Sprintf(
		"%s ~ %s (n=%d)\n  slope      %g\n  intercept  %g\n  r          %g\n  p-value    %g\n  std err    %g",
		r.YColumn, r.XColumn, r.N, r.Slope, r.Intercept, r.R, r.P, r.StdErr,
	)
}
