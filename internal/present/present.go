// Package present turns engine results into the labelled, rounded breakdowns
// shown by the web pages and the CLI. Numbers are never recomputed here.
package present

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"statcalc/adapters/stats/engine"
	"statcalc/domain/stats"
)

// Line is one labelled row of a breakdown. Rows with an empty label are plain text.
type Line struct {
	Label string `json:"label,omitempty"`
	Value string `json:"value"`
}

// Breakdown is a formatted result
type Breakdown struct {
	Title string `json:"title"`
	Lines []Line `json:"lines"`
	Note  string `json:"note,omitempty"`
}

// String renders the breakdown as plain text, one row per line
func (b Breakdown) String() string {
	var sb strings.Builder
	for _, line := range b.Lines {
		if line.Label != "" {
			sb.WriteString(line.Label)
			sb.WriteString(": ")
		}
		sb.WriteString(line.Value)
		sb.WriteString("\n")
	}
	if b.Note != "" {
		sb.WriteString(b.Note)
		sb.WriteString("\n")
	}
	return sb.String()
}

func (b *Breakdown) add(label, value string) {
	b.Lines = append(b.Lines, Line{Label: label, Value: value})
}

// Fixed rounds half away from zero to the given number of decimals
func Fixed(v float64, decimals int) string {
	scale := math.Pow(10, float64(decimals))
	rounded := math.Round(v*scale) / scale
	if rounded == 0 {
		rounded = 0 // drop negative zero
	}
	return strconv.FormatFloat(rounded, 'f', decimals, 64)
}

// Number formats a statistic with two decimals
func Number(v float64) string {
	return Fixed(v, 2)
}

// Plain prints a value the way it was typed: shortest round-trip form
func Plain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// List joins values in their plain form
func List(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = Plain(v)
	}
	return strings.Join(parts, ", ")
}

func times(n int) string {
	if n == 1 {
		return "1 time"
	}
	return fmt.Sprintf("%d times", n)
}

// Mean formats a mean result
func Mean(r stats.MeanResult) Breakdown {
	b := Breakdown{Title: "Mean"}
	b.add("Numbers", List(r.Values))
	b.add("Sum", Number(r.Sum))
	b.add("Count", strconv.Itoa(r.Count))
	b.add("Mean", Number(r.Mean))
	return b
}

// Median formats a median result with the order statistics it used
func Median(r stats.MedianResult) Breakdown {
	b := Breakdown{Title: "Median"}
	b.add("Original", List(r.Values))
	b.add("Sorted", List(r.Sorted))
	b.add("Median", Number(r.Median))
	switch {
	case r.Even && len(r.Middle) == 2:
		b.Note = fmt.Sprintf("(Average of %s and %s)", Plain(r.Middle[0].Value), Plain(r.Middle[1].Value))
	case len(r.Middle) == 1:
		b.Note = fmt.Sprintf("(Middle value at position %d)", r.Middle[0].Position)
	}
	return b
}

// Mode formats a mode result with the full frequency listing
func Mode(r stats.ModeResult) Breakdown {
	b := Breakdown{Title: "Mode"}
	b.add("Numbers", List(r.Values))
	b.add("Frequencies", "")
	for _, entry := range r.Frequencies {
		b.add("", fmt.Sprintf("%s: %s", Plain(entry.Value), times(entry.Count)))
	}

	switch {
	case r.NoMode:
		b.add("Mode", "No mode (all values appear equally)")
	case len(r.Modes) > 1:
		b.add("Modes", fmt.Sprintf("%s (each appears %s)", List(r.Modes), times(r.Frequency)))
	case len(r.Modes) == 1:
		b.add("Mode", fmt.Sprintf("%s (appears %s)", Plain(r.Modes[0]), times(r.Frequency)))
	}
	return b
}

// VariationText describes a variation band in words
func VariationText(v stats.Variation) string {
	switch v {
	case stats.VariationLow:
		return "Low variation (values are close together)"
	case stats.VariationModerate:
		return "Moderate variation"
	default:
		return "High variation (values are spread out)"
	}
}

// StdDev formats a standard deviation result
func StdDev(r stats.StdDevResult) Breakdown {
	b := Breakdown{Title: "Standard Deviation"}
	b.add("Numbers", List(r.Values))
	b.add("Mean", Number(r.Mean))
	b.add("Variance", Number(r.Variance))
	b.add("Standard Deviation", Number(r.StdDev))
	b.Note = VariationText(r.Variation)
	return b
}

// Quantiles formats quartiles and the IQR
func Quantiles(r stats.QuantileResult) Breakdown {
	b := Breakdown{Title: "Quartiles"}
	b.add("Numbers", List(r.Values))
	b.add("Sorted", List(r.Sorted))
	b.add("Q1 (25th percentile)", Number(r.Q1))
	b.add("Q2 (50th percentile - Median)", Number(r.Q2))
	b.add("Q3 (75th percentile)", Number(r.Q3))
	b.add("Interquartile Range (IQR)", Number(r.IQR))
	b.Note = fmt.Sprintf("25%% of values are below %s, 50%% below %s, 75%% below %s",
		Number(r.Q1), Number(r.Q2), Number(r.Q3))
	return b
}

// Bundle formats summary statistics, suffixing each measurement with unit
func Bundle(r stats.Bundle, unit string) Breakdown {
	withUnit := func(v float64) string {
		if unit == "" {
			return Number(v)
		}
		return Number(v) + " " + unit
	}

	b := Breakdown{Title: "Summary Statistics"}
	b.add("Count", strconv.Itoa(r.Count))
	b.add("Mean", withUnit(r.Mean))
	b.add("Median", withUnit(r.Median))
	b.add("Standard Deviation", withUnit(r.StdDev))
	b.add("Minimum", withUnit(r.Min))
	b.add("Maximum", withUnit(r.Max))
	return b
}

// Result formats whichever statistic an engine result carries
func Result(r engine.Result) Breakdown {
	switch {
	case r.Mean != nil:
		return Mean(*r.Mean)
	case r.Median != nil:
		return Median(*r.Median)
	case r.Mode != nil:
		return Mode(*r.Mode)
	case r.StdDev != nil:
		return StdDev(*r.StdDev)
	case r.Quantiles != nil:
		return Quantiles(*r.Quantiles)
	case r.Bundle != nil:
		return Bundle(*r.Bundle, "")
	}
	return Breakdown{Title: r.Operation.Title()}
}
