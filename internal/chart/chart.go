package chart

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"

	"statcalc/domain/core"
	"statcalc/domain/stats"
	"statcalc/internal/present"
)

// Options controls the labels of a bar chart
type Options struct {
	Unit         string
	DatasetLabel string
	XTitle       string
	YTitle       string
	BarPrefix    string // bar label prefix, bars are numbered from 1
}

// HeightOptions reproduces the height visualizer labelling
func HeightOptions() Options {
	return Options{
		Unit:         "cm",
		DatasetLabel: "Height (cm)",
		XTitle:       "Individuals (sorted by height)",
		YTitle:       "Height (cm)",
		BarPrefix:    "P",
	}
}

// Line is a horizontal reference annotation
type Line struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// Band is a shaded horizontal region
type Band struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Label string  `json:"label"`
}

// Overlay is drawn on top of the bars: the stddev band first, then the lines
type Overlay struct {
	Mean   Line `json:"mean"`
	Median Line `json:"median"`
	Band   Band `json:"band"`

	ObservedBandShare float64 `json:"observed_band_share"` // fraction of bars inside the band
	ExpectedBandShare float64 `json:"expected_band_share"` // same fraction under a normal model
}

// Spec is the full description a browser-side chart library renders.
// Bars are in ascending order; nothing here needs to be recomputed client-side.
type Spec struct {
	ID           core.ChartID `json:"id"`
	Type         string       `json:"type"`
	Labels       []string     `json:"labels"`
	Data         []float64    `json:"data"`
	DatasetLabel string       `json:"dataset_label"`
	XTitle       string       `json:"x_title"`
	YTitle       string       `json:"y_title"`
	Unit         string       `json:"unit"`
	Overlay      Overlay      `json:"overlay"`
	Stats        stats.Bundle `json:"stats"`
}

// Build derives a bar chart spec from a statistics bundle
func Build(bundle stats.Bundle, opts Options) Spec {
	labels := make([]string, len(bundle.Sorted))
	for i := range bundle.Sorted {
		labels[i] = fmt.Sprintf("%s%d", opts.BarPrefix, i+1)
	}

	return Spec{
		ID:           core.NewChartID(),
		Type:         "bar",
		Labels:       labels,
		Data:         append([]float64(nil), bundle.Sorted...),
		DatasetLabel: opts.DatasetLabel,
		XTitle:       opts.XTitle,
		YTitle:       opts.YTitle,
		Unit:         opts.Unit,
		Overlay:      buildOverlay(bundle, opts.Unit),
		Stats:        bundle,
	}
}

func buildOverlay(bundle stats.Bundle, unit string) Overlay {
	lower, upper := bundle.BandLower(), bundle.BandUpper()

	return Overlay{
		Mean:   Line{Value: bundle.Mean, Label: fmt.Sprintf("Mean: %s%s", present.Fixed(bundle.Mean, 1), unit)},
		Median: Line{Value: bundle.Median, Label: fmt.Sprintf("Median: %s%s", present.Fixed(bundle.Median, 1), unit)},
		Band:   Band{Lower: lower, Upper: upper, Label: "±1 Std Dev"},

		ObservedBandShare: observedShare(bundle.Sorted, lower, upper),
		ExpectedBandShare: expectedShare(bundle.Mean, bundle.StdDev),
	}
}

// observedShare is the fraction of values within [lower, upper]
func observedShare(values []float64, lower, upper float64) float64 {
	if len(values) == 0 {
		return 0
	}
	inside := 0
	for _, v := range values {
		if v >= lower && v <= upper {
			inside++
		}
	}
	return float64(inside) / float64(len(values))
}

// expectedShare is P(mean-sd <= X <= mean+sd) for X ~ N(mean, sd).
// Zero spread puts every value on the mean, so the share is 1.
func expectedShare(mean, sd float64) float64 {
	if sd <= 0 {
		return 1
	}
	dist := distuv.Normal{Mu: mean, Sigma: sd}
	return dist.CDF(mean+sd) - dist.CDF(mean-sd)
}
