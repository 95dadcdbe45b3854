package engine

import (
	"github.com/montanaflynn/stats"

	domainStats "statcalc/domain/stats"
)

// Mean computes sum / count over the sequence
func Mean(seq domainStats.Sequence) domainStats.MeanResult {
	values := seq.Values()
	if len(values) == 0 {
		return domainStats.MeanResult{}
	}

	// stats only errors on empty input, excluded above
	sum, _ := stats.Sum(values)

	return domainStats.MeanResult{
		Values: values,
		Sum:    sum,
		Count:  len(values),
		Mean:   sum / float64(len(values)),
	}
}

// Median takes the middle order statistic, or the average of the two middle
// ones for an even count. The sorted copy is kept to report their positions.
func Median(seq domainStats.Sequence) domainStats.MedianResult {
	values := seq.Values()
	n := len(values)
	if n == 0 {
		return domainStats.MedianResult{}
	}

	// stats only errors on empty input, excluded above
	median, _ := stats.Median(values)
	sorted := seq.Sorted()

	result := domainStats.MedianResult{
		Values: values,
		Sorted: sorted,
		Median: median,
		Even:   n%2 == 0,
	}

	if result.Even {
		result.Middle = []domainStats.MiddleValue{
			{Position: n / 2, Value: sorted[n/2-1]},
			{Position: n/2 + 1, Value: sorted[n/2]},
		}
	} else {
		result.Middle = []domainStats.MiddleValue{
			{Position: n/2 + 1, Value: sorted[n/2]},
		}
	}

	return result
}

// Mode reports every value sharing the highest frequency, in first-occurrence
// order. With two or more distinct values that all tie there is no mode; a
// single repeated value is always a mode.
func Mode(seq domainStats.Sequence) domainStats.ModeResult {
	if seq.Len() == 0 {
		return domainStats.ModeResult{}
	}

	table := domainStats.NewFrequencyTable(seq)
	maxFreq := table.MaxCount()

	var modes []float64
	for _, entry := range table.Entries() {
		if entry.Count == maxFreq {
			modes = append(modes, entry.Value)
		}
	}

	result := domainStats.ModeResult{
		Values:      seq.Values(),
		Frequencies: table.Entries(),
		Frequency:   maxFreq,
	}

	if table.Distinct() >= 2 && len(modes) == table.Distinct() {
		result.NoMode = true
		return result
	}

	result.Modes = modes
	return result
}
