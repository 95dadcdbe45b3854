package lesson

import (
	"strings"

	"statcalc/adapters/stats/engine"
	"statcalc/internal/present"
)

// SampleHeights is the demo data set loaded by the height visualizer
var SampleHeights = []float64{
	170.2, 165.8, 178.5, 172.1, 169.7, 175.3, 167.9, 181.2, 173.6, 168.4,
	176.8, 171.5, 179.1, 166.3, 174.7, 170.9, 177.4, 169.2, 175.8, 168.7,
	172.8, 176.1, 174.3, 171.8, 178.9, 167.5, 173.2, 175.6, 170.7, 177.9,
	169.5, 174.1, 172.4, 176.7, 168.8, 175.2, 171.3, 178.6, 173.9, 170.4,
}

// SampleHeightsText is SampleHeights one value per line, ready for the textarea
func SampleHeightsText() string {
	return Lines(SampleHeights)
}

// Lines formats values one per line
func Lines(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = present.Plain(v)
	}
	return strings.Join(parts, "\n")
}

type exampleDefinition struct {
	id         string
	title      string
	operation  engine.Operation
	data       []float64
	highlights func(engine.Result) []present.Line
}

var exampleDefinitions = []exampleDefinition{
	{
		id:        "water-consumption",
		title:     "Daily water consumption per household (litres)",
		operation: engine.OpMean,
		data:      []float64{180, 220, 195, 210, 185, 200, 175, 225, 190, 205},
		highlights: func(r engine.Result) []present.Line {
			return []present.Line{{Label: "Mean", Value: present.Fixed(r.Mean.Mean, 1)}}
		},
	},
	{
		id:        "household-income",
		title:     "Monthly household income (thousands of rupees)",
		operation: engine.OpMedian,
		data:      []float64{15, 18, 22, 25, 28, 30, 32, 35, 38, 40, 42, 45, 48, 52, 55, 65, 75, 85, 120, 180},
		highlights: func(r engine.Result) []present.Line {
			return []present.Line{{Label: "Median", Value: "₹" + present.Plain(r.Median.Median) + "k"}}
		},
	},
	{
		id:        "pds-waiting-time",
		title:     "Ration shop waiting times (minutes)",
		operation: engine.OpMedian,
		data:      []float64{5, 8, 12, 15, 18, 20, 22, 25, 28, 30, 32, 35, 38, 42, 45, 48, 55, 65, 90, 120},
		highlights: func(r engine.Result) []present.Line {
			return []present.Line{{Label: "Median", Value: present.Plain(r.Median.Median) + " minutes"}}
		},
	},
	{
		id:        "air-quality",
		title:     "Air quality index across ten days",
		operation: engine.OpStdDev,
		data:      []float64{45, 65, 85, 95, 120, 150, 180, 200, 250, 300},
		highlights: func(r engine.Result) []present.Line {
			return []present.Line{
				{Label: "Mean", Value: present.Fixed(r.StdDev.Mean, 0)},
				{Label: "Standard Deviation", Value: present.Fixed(r.StdDev.StdDev, 1)},
			}
		},
	},
	{
		id:        "exam-scores",
		title:     "Exam scores of fifteen students",
		operation: engine.OpQuantiles,
		data:      []float64{45, 52, 58, 63, 67, 72, 75, 78, 82, 85, 87, 90, 92, 94, 96},
		highlights: func(r engine.Result) []present.Line {
			q := r.Quantiles
			return []present.Line{
				{Label: "Q1", Value: present.Fixed(q.Q1, 0) + " marks"},
				{Label: "Q2", Value: present.Fixed(q.Q2, 0) + " marks"},
				{Label: "Q3", Value: present.Fixed(q.Q3, 0) + " marks"},
			}
		},
	},
}

var exercises = []Exercise{
	{
		ID:        "test-scores-mean",
		Title:     "Average test score",
		Prompt:    "Seven students scored 85, 92, 78, 95, 88, 84 and 88. What is the mean score? (2 decimals)",
		Operation: engine.OpMean,
		Data:      []float64{85, 92, 78, 95, 88, 84, 88},
		Answer:    87.14,
	},
	{
		ID:        "property-median",
		Title:     "Median property price",
		Prompt:    "Six flats sold for 32, 38, 45, 48, 52 and 60 lakh. What is the median price in lakh?",
		Operation: engine.OpMedian,
		Data:      []float64{32, 38, 45, 48, 52, 60},
		Answer:    46.5,
	},
	{
		ID:        "class-size-mode",
		Title:     "Most common class size",
		Prompt:    "Eight classrooms hold 28, 30, 32, 30, 27, 30, 29 and 31 students. What is the mode?",
		Operation: engine.OpMode,
		Data:      []float64{28, 30, 32, 30, 27, 30, 29, 31},
		Answer:    30,
	},
	{
		ID:        "temp-stddev",
		Title:     "Spread of daily temperatures",
		Prompt:    "Ten afternoon readings (°C): 24, 22, 26, 25, 28, 23, 25, 27, 24, 26. What is the standard deviation? (1 decimal)",
		Operation: engine.OpStdDev,
		Data:      []float64{24, 22, 26, 25, 28, 23, 25, 27, 24, 26},
		Answer:    1.7,
	},
	{
		ID:        "salary-q2",
		Title:     "Middle salary",
		Prompt:    "Starting salaries: 32000, 38000, 41000, 44000, 47000, 55000. What is Q2?",
		Operation: engine.OpQuantiles,
		Data:      []float64{32000, 38000, 41000, 44000, 47000, 55000},
		Answer:    42500,
	},
}
