package stats

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// FitResult is one candidate distribution scored against a column.
type FitResult struct {
	Name      string
	Params    []Param
	LogLik    float64
	NumParams int
	AIC       float64 // 2k - 2 ln L
}

// Param is one named, estimated distribution parameter.
type Param struct {
	Name  string
	Value float64
}

// FitSummary is the outcome of fitting the fixed candidate set: the
// winner by minimal AIC plus every candidate whose support admitted
// the data.
type FitSummary struct {
	Column string
	Best   FitResult
	All    []FitResult
}

// candidate estimates parameters for one family and returns the log
// density function, or ok=false when the data lies outside the
// family's support or the estimate degenerates.
type candidate struct {
	name string
	fit  func(xs []float64, min, max, mean, variance float64) (params []Param, logProb func(float64) float64, ok bool)
}

var candidates = []candidate{
	{"normal", fitNormal},
	{"exponential", fitExponential},
	{"pareto", fitPareto},
	{"log-normal", fitLogNormal},
	{"gamma", fitGamma},
	{"beta", fitBeta},
	{"uniform", fitUniform},
	{"double-weibull", fitDoubleWeibull},
}

// FitBestDistribution scores the fixed candidate set against the
// column and picks the minimal AIC. Degenerate input (fewer than two
// values, or zero variance) is an error, reported like any other
// analysis failure.
func FitBestDistribution(column string, xs []float64) (FitSummary, error) {
	if len(xs) < 2 {
		return FitSummary{}, fmt.Errorf("column %q: %w", column, ErrNotEnoughData)
	}
	mean := stat.Mean(xs, nil)
	variance := stat.Variance(xs, nil)
	if variance == 0 {
		return FitSummary{}, fmt.Errorf("column %q has zero variance", column)
	}
	min, max := xs[0], xs[0]
	for _, x := range xs {
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
	}

	summary := FitSummary{Column: column}
	for _, c := range candidates {
		params, logProb, ok := c.fit(xs, min, max, mean, variance)
		if !ok {
			continue
		}
		logLik := 0.0
		valid := true
		for _, x := range xs {
			lp := logProb(x)
			if math.IsNaN(lp) || math.IsInf(lp, 1) {
				valid = false
				break
			}
			if math.IsInf(lp, -1) {
				valid = false
				break
			}
			logLik += lp
		}
		if !valid {
			continue
		}
		k := len(params)
		summary.All = append(summary.All, FitResult{
			Name:      c.name,
			Params:    params,
			LogLik:    logLik,
			NumParams: k,
			AIC:       2*float64(k) - 2*logLik,
		})
	}
	if len(summary.All) == 0 {
		return FitSummary{}, fmt.Errorf("column %q: no candidate distribution admits the data", column)
	}

	sort.SliceStable(summary.All, func(i, j int) bool {
		return summary.All[i].AIC < summary.All[j].AIC
	})
	summary.Best = summary.All[0]
	return summary, nil
}

func fitNormal(xs []float64, min, max, mean, variance float64) ([]Param, func(float64) float64, bool) {
	sigma := math.Sqrt(variance)
	d := distuv.Normal{Mu: mean, Sigma: sigma}
	return []Param{{"mu", mean}, {"sigma", sigma}}, d.LogProb, true
}

func fitExponential(xs []float64, min, max, mean, variance float64) ([]Param, func(float64) float64, bool) {
	if min < 0 || mean <= 0 {
		return nil, nil, false
	}
	d := distuv.Exponential{Rate: 1 / mean}
	return []Param{{"rate", d.Rate}}, d.LogProb, true
}

func fitPareto(xs []float64, min, max, mean, variance float64) ([]Param, func(float64) float64, bool) {
	if min <= 0 {
		return nil, nil, false
	}
	var logSum float64
	for _, x := range xs {
		logSum += math.Log(x / min)
	}
	if logSum <= 0 {
		return nil, nil, false
	}
	alpha := float64(len(xs)) / logSum
	d := distuv.Pareto{Xm: min, Alpha: alpha}
	return []Param{{"xm", min}, {"alpha", alpha}}, d.LogProb, true
}

func fitLogNormal(xs []float64, min, max, mean, variance float64) ([]Param, func(float64) float64, bool) {
	if min <= 0 {
		return nil, nil, false
	}
	logs := make([]float64, len(xs))
	for i, x := range xs {
		logs[i] = math.Log(x)
	}
	mu := stat.Mean(logs, nil)
	sigma := math.Sqrt(stat.Variance(logs, nil))
	if sigma == 0 {
		return nil, nil, false
	}
	d := distuv.LogNormal{Mu: mu, Sigma: sigma}
	return []Param{{"mu", mu}, {"sigma", sigma}}, d.LogProb, true
}

func fitGamma(xs []float64, min, max, mean, variance float64) ([]Param, func(float64) float64, bool) {
	if min <= 0 {
		return nil, nil, false
	}
	// Method of moments: shape = mean^2/var, rate = mean/var.
	alpha := mean * mean / variance
	beta := mean / variance
	if alpha <= 0 || beta <= 0 {
		return nil, nil, false
	}
	d := distuv.Gamma{Alpha: alpha, Beta: beta}
	return []Param{{"shape", alpha}, {"rate", beta}}, d.LogProb, true
}

func fitBeta(xs []float64, min, max, mean, variance float64) ([]Param, func(float64) float64, bool) {
	if min <= 0 || max >= 1 {
		return nil, nil, false
	}
	// Method of moments on (0,1) data.
	common := mean*(1-mean)/variance - 1
	if common <= 0 {
		return nil, nil, false
	}
	alpha := mean * common
	beta := (1 - mean) * common
	d := distuv.Beta{Alpha: alpha, Beta: beta}
	return []Param{{"alpha", alpha}, {"beta", beta}}, d.LogProb, true
}

func fitUniform(xs []float64, min, max, mean, variance float64) ([]Param, func(float64) float64, bool) {
	if max <= min {
		return nil, nil, false
	}
	d := distuv.Uniform{Min: min, Max: max}
	return []Param{{"min", min}, {"max", max}}, d.LogProb, true
}

// fitDoubleWeibull fits the symmetric ("double") Weibull about the
// sample median: |x-c| ~ Weibull(shape, scale), density halved on each
// side. The shape comes from the standard MLE fixed-point iteration.
func fitDoubleWeibull(xs []float64, min, max, mean, variance float64) ([]Param, func(float64) float64, bool) {
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)
	center := stat.Quantile(0.5, stat.Empirical, sorted, nil)

	abs := make([]float64, 0, len(xs))
	for _, x := range xs {
		d := math.Abs(x - center)
		if d > 0 {
			abs = append(abs, d)
		}
	}
	if len(abs) < 2 {
		return nil, nil, false
	}

	shape, ok := weibullShapeMLE(abs)
	if !ok {
		return nil, nil, false
	}
	var sum float64
	for _, y := range abs {
		sum += math.Pow(y, shape)
	}
	scale := math.Pow(sum/float64(len(abs)), 1/shape)
	if scale <= 0 {
		return nil, nil, false
	}

	logProb := func(x float64) float64 {
		y := math.Abs(x-center) / scale
		if y == 0 {
			// Density at the center is finite only for shape >= 1;
			// nudge off zero to keep the likelihood finite either way.
			y = 1e-12
		}
		return math.Log(shape/2) - math.Log(scale) + (shape-1)*math.Log(y) - math.Pow(y, shape)
	}
	return []Param{{"center", center}, {"shape", shape}, {"scale", scale}}, logProb, true
}

// weibullShapeMLE solves the Weibull shape MLE by fixed-point
// iteration on positive data.
func weibullShapeMLE(ys []float64) (float64, bool) {
	n := float64(len(ys))
	var meanLog float64
	for _, y := range ys {
		meanLog += math.Log(y)
	}
	meanLog /= n

	k := 1.0
	for i := 0; i < 50; i++ {
		var sumPow, sumPowLog float64
		for _, y := range ys {
			p := math.Pow(y, k)
			sumPow += p
			sumPowLog += p * math.Log(y)
		}
		if sumPow == 0 {
			return 0, false
		}
		next := 1 / (sumPowLog/sumPow - meanLog)
		if math.IsNaN(next) || math.IsInf(next, 0) || next <= 0 {
			return 0, false
		}
		if math.Abs(next-k) < 1e-9 {
			k = next
			break
		}
		k = next
	}
	return k, true
}

// String renders the fit summary: the winner with parameters, then
// every candidate ranked by AIC.
func (s FitSummary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Best fit for %q: %s (AIC %.2f)\n", s.Column, s.Best.Name, s.Best.AIC)
	for _, p := range s.Best.Params {
		fmt.Fprintf(&b, "  %-7s %g\n", p.Name, p.Value)
	}
	b.WriteString("\nRanking:\n")
	for i, r := range s.All {
		fmt.Fprintf(&b, "  %2d. %-14s AIC %.2f\n", i+1, r.Name, r.AIC)
	}
	return b.String()
}
