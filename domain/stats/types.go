package stats

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// ============================================================================
// INPUT PRIMITIVES
// ============================================================================

// Sequence is an ordered, validated list of finite numbers.
// INVARIANTS:
// - never empty when produced by Parse, ParseTokens or NewSequence
// - every element is finite (no NaN / Inf)
// - never mutated after construction; accessors hand out copies
type Sequence struct {
	values []float64
}

// NewSequence validates values and wraps them in a Sequence
func NewSequence(values ...float64) (Sequence, error) {
	if len(values) == 0 {
		return Sequence{}, noDataError("")
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Sequence{}, invalidNumberError(i+1, formatValue(v))
		}
	}
	return Sequence{values: append([]float64(nil), values...)}, nil
}

// MustSequence is NewSequence for fixed data known to be valid
func MustSequence(values ...float64) Sequence {
	seq, err := NewSequence(values...)
	if err != nil {
		panic(fmt.Sprintf("stats: invalid sequence: %v", err))
	}
	return seq
}

// Len returns the number of observations
func (s Sequence) Len() int {
	return len(s.values)
}

// Values returns a copy of the observations in input order
func (s Sequence) Values() []float64 {
	return append([]float64(nil), s.values...)
}

// Sorted returns an ascending copy of the observations
func (s Sequence) Sorted() []float64 {
	sorted := s.Values()
	sort.Float64s(sorted)
	return sorted
}

// MarshalJSON encodes the sequence as a plain array
func (s Sequence) MarshalJSON() ([]byte, error) {
	if s.values == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.values)
}

// ============================================================================
// FREQUENCY TABLE
// ============================================================================

// FrequencyEntry is one distinct value and how often it occurred
type FrequencyEntry struct {
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// FrequencyTable counts occurrences by exact value equality.
// Entries iterate in first-occurrence order.
type FrequencyTable struct {
	entries []FrequencyEntry
	index   map[float64]int
}

// NewFrequencyTable builds the table for a sequence
func NewFrequencyTable(seq Sequence) FrequencyTable {
	table := FrequencyTable{index: make(map[float64]int, seq.Len())}
	for _, v := range seq.values {
		if i, ok := table.index[v]; ok {
			table.entries[i].Count++
			continue
		}
		table.index[v] = len(table.entries)
		table.entries = append(table.entries, FrequencyEntry{Value: v, Count: 1})
	}
	return table
}

// Entries returns the distinct values with their counts
func (t FrequencyTable) Entries() []FrequencyEntry {
	return append([]FrequencyEntry(nil), t.entries...)
}

// Count returns how often v occurred
func (t FrequencyTable) Count(v float64) int {
	if i, ok := t.index[v]; ok {
		return t.entries[i].Count
	}
	return 0
}

// Distinct returns the number of distinct values
func (t FrequencyTable) Distinct() int {
	return len(t.entries)
}

// MaxCount returns the highest frequency in the table
func (t FrequencyTable) MaxCount() int {
	max := 0
	for _, e := range t.entries {
		if e.Count > max {
			max = e.Count
		}
	}
	return max
}

// ============================================================================
// RESULT RECORDS
// ============================================================================

// MeanResult is the arithmetic mean with the terms it was derived from
type MeanResult struct {
	Values []float64 `json:"values"`
	Sum    float64   `json:"sum"`
	Count  int       `json:"count"`
	Mean   float64   `json:"mean"`
}

// MiddleValue is an order statistic used by the median
type MiddleValue struct {
	Position int     `json:"position"` // 1-based rank in the sorted sequence
	Value    float64 `json:"value"`
}

// MedianResult is the median plus the order statistics that produced it
type MedianResult struct {
	Values []float64     `json:"values"`
	Sorted []float64     `json:"sorted"`
	Median float64       `json:"median"`
	Even   bool          `json:"even"`
	Middle []MiddleValue `json:"middle"` // two entries when Even, one otherwise
}

// ModeResult lists the most frequent values.
// NoMode is set when at least two distinct values exist and all of them tie.
type ModeResult struct {
	Values      []float64        `json:"values"`
	Frequencies []FrequencyEntry `json:"frequencies"`
	Modes       []float64        `json:"modes"`
	Frequency   int              `json:"frequency"`
	NoMode      bool             `json:"no_mode"`
}

// Variation is the qualitative spread band derived from the coefficient of variation
type Variation string

const (
	VariationLow      Variation = "low"
	VariationModerate Variation = "moderate"
	VariationHigh     Variation = "high"
)

// StdDevResult is the population standard deviation and its intermediates
type StdDevResult struct {
	Values    []float64 `json:"values"`
	Mean      float64   `json:"mean"`
	Variance  float64   `json:"variance"` // population variance, divisor n
	StdDev    float64   `json:"std_dev"`
	CV        float64   `json:"-"` // +Inf for a zero mean with non-zero spread
	Variation Variation `json:"variation"`
}

// QuantileResult holds the interpolated quartiles
type QuantileResult struct {
	Values []float64 `json:"values"`
	Sorted []float64 `json:"sorted"`
	Q1     float64   `json:"q1"`
	Q2     float64   `json:"q2"`
	Q3     float64   `json:"q3"`
	IQR    float64   `json:"iqr"`
}

// Bundle is everything a chart renderer needs to draw one bar per observation
// plus mean, median and mean±stddev reference annotations.
type Bundle struct {
	Count  int       `json:"count"`
	Mean   float64   `json:"mean"`
	Median float64   `json:"median"`
	StdDev float64   `json:"standard_deviation"`
	Min    float64   `json:"min"`
	Max    float64   `json:"max"`
	Sorted []float64 `json:"sorted"`
}

// BandLower is the lower edge of the ±1 stddev band
func (b Bundle) BandLower() float64 {
	return b.Mean - b.StdDev
}

// BandUpper is the upper edge of the ±1 stddev band
func (b Bundle) BandUpper() float64 {
	return b.Mean + b.StdDev
}
