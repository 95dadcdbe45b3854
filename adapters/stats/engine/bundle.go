package engine

import (
	"github.com/montanaflynn/stats"

	domainStats "statcalc/domain/stats"
)

// ComputeBundle gathers the statistics a chart renderer consumes so it never
// has to derive one itself
func ComputeBundle(seq domainStats.Sequence) domainStats.Bundle {
	sorted := seq.Sorted()
	n := len(sorted)
	if n == 0 {
		return domainStats.Bundle{}
	}

	// stats only errors on empty input, excluded above
	minimum, _ := stats.Min(sorted)
	maximum, _ := stats.Max(sorted)

	return domainStats.Bundle{
		Count:  n,
		Mean:   Mean(seq).Mean,
		Median: Median(seq).Median,
		StdDev: StdDev(seq).StdDev,
		Min:    minimum,
		Max:    maximum,
		Sorted: sorted,
	}
}
