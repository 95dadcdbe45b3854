package engine

import (
	"math"

	domainStats "statcalc/domain/stats"
)

// Quantile interpolates linearly between adjacent order statistics at rank
// (n-1)*q (the R-7 estimator). sorted must be ascending; q is clamped to [0,1]
// and a NaN q yields NaN.
func Quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 || math.IsNaN(q) {
		return math.NaN()
	}
	q = math.Max(0, math.Min(1, q))

	pos := float64(n-1) * q
	base := int(math.Floor(pos))
	rest := pos - float64(base)

	if base+1 < n {
		return sorted[base] + rest*(sorted[base+1]-sorted[base])
	}
	return sorted[base]
}

// Quantiles computes Q1, Q2 and Q3 with Quantile and the interquartile range.
// Callers validate the minimum count (4) at parse time.
func Quantiles(seq domainStats.Sequence) domainStats.QuantileResult {
	sorted := seq.Sorted()
	if len(sorted) == 0 {
		return domainStats.QuantileResult{}
	}

	q1 := Quantile(sorted, 0.25)
	q2 := Quantile(sorted, 0.5)
	q3 := Quantile(sorted, 0.75)

	return domainStats.QuantileResult{
		Values: seq.Values(),
		Sorted: sorted,
		Q1:     q1,
		Q2:     q2,
		Q3:     q3,
		IQR:    q3 - q1,
	}
}
