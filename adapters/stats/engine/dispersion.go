package engine

import (
	"math"

	"github.com/montanaflynn/stats"

	domainStats "statcalc/domain/stats"
)

// Coefficient-of-variation thresholds for the qualitative band
const (
	lowVariationCV      = 0.1
	moderateVariationCV = 0.3
)

// StdDev computes the population standard deviation (divisor n, not n-1)
func StdDev(seq domainStats.Sequence) domainStats.StdDevResult {
	values := seq.Values()
	if len(values) == 0 {
		return domainStats.StdDevResult{}
	}

	mean, _ := stats.Mean(values)
	variance, _ := stats.PopulationVariance(values)
	stdDev := math.Sqrt(variance)
	cv := coefficientOfVariation(stdDev, mean)

	return domainStats.StdDevResult{
		Values:    values,
		Mean:      mean,
		Variance:  variance,
		StdDev:    stdDev,
		CV:        cv,
		Variation: ClassifyVariation(cv),
	}
}

// coefficientOfVariation is stdDev / |mean|. A zero mean gives 0 when there
// is no spread at all and +Inf otherwise.
func coefficientOfVariation(stdDev, mean float64) float64 {
	if mean == 0 {
		if stdDev == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return stdDev / math.Abs(mean)
}

// ClassifyVariation maps a coefficient of variation onto low / moderate / high
func ClassifyVariation(cv float64) domainStats.Variation {
	switch {
	case cv < lowVariationCV:
		return domainStats.VariationLow
	case cv < moderateVariationCV:
		return domainStats.VariationModerate
	default:
		return domainStats.VariationHigh
	}
}
