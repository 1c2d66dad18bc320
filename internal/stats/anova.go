package stats

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ANOVAResult holds a one-way analysis of variance across column
// groups.
type ANOVAResult struct {
	Columns   []string
	F         float64
	P         float64
	DFBetween int
	DFWithin  int
}

// OneWayANOVA tests whether the group means differ. Each group is one
// selected column; at least two groups with two observations each are
// required.
func OneWayANOVA(names []string, groups [][]float64) (ANOVAResult, error) {
	if len(groups) < 2 {
		return ANOVAResult{}, fmt.Errorf("ANOVA needs at least two columns")
	}

	total := 0
	var grandSum float64
	for _, g := range groups {
		if len(g) < 2 {
			return ANOVAResult{}, ErrNotEnoughData
		}
		total += len(g)
		for _, x := range g {
			grandSum += x
		}
	}
	grandMean := grandSum / float64(total)

	var ssBetween, ssWithin float64
	for _, g := range groups {
		mean := stat.Mean(g, nil)
		d := mean - grandMean
		ssBetween += float64(len(g)) * d * d
		for _, x := range g {
			dx := x - mean
			ssWithin += dx * dx
		}
	}

	dfBetween := len(groups) - 1
	dfWithin := total - len(groups)
	if ssWithin == 0 {
		return ANOVAResult{}, fmt.Errorf("zero within-group variance")
	}

	f := (ssBetween / float64(dfBetween)) / (ssWithin / float64(dfWithin))
	fDist := distuv.F{D1: float64(dfBetween), D2: float64(dfWithin)}
	p := fDist.Survival(f)

	return ANOVAResult{
		Columns:   names,
		F:         f,
		P:         p,
		DFBetween: dfBetween,
		DFWithin:  dfWithin,
	}, nil
}

// String renders the ANOVA summary for the results overlay.
func (a ANOVAResult) String() string {
	return fmt.Sprintf(
		"One-way ANOVA over %d groups\n  F(%d, %d)  %g\n  p-value    %g",
		len(a.Columns), a.DFBetween, a.DFWithin, a.F, a.P,
	)
}
