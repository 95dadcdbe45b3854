package engine

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statcalc/domain/core"
	"statcalc/domain/stats"
)

const tolerance = 1e-9

func TestMean_EqualsSumOverCount(t *testing.T) {
	inputs := [][]float64{
		{1},
		{1, 2, 3, 4},
		{180, 220, 195, 210, 185, 200, 175, 225, 190, 205},
		{-2.5, 0, 2.5, 1e6, -1e6},
		{0.1, 0.2, 0.3},
	}

	for _, values := range inputs {
		r := Mean(stats.MustSequence(values...))

		sum := 0.0
		for _, v := range values {
			sum += v
		}
		assert.Equal(t, len(values), r.Count)
		assert.InDelta(t, sum, r.Sum, tolerance)
		assert.InDelta(t, sum/float64(len(values)), r.Mean, tolerance)
	}
}

func TestMean_WaterConsumption(t *testing.T) {
	r := Mean(stats.MustSequence(180, 220, 195, 210, 185, 200, 175, 225, 190, 205))
	assert.InDelta(t, 1985.0, r.Sum, tolerance)
	assert.InDelta(t, 198.5, r.Mean, tolerance)
}

func TestMedian_OddAndEven(t *testing.T) {
	odd := Median(stats.MustSequence(7, 1, 3))
	assert.False(t, odd.Even)
	assert.Equal(t, 3.0, odd.Median)
	assert.Equal(t, []stats.MiddleValue{{Position: 2, Value: 3}}, odd.Middle)
	assert.Equal(t, []float64{1, 3, 7}, odd.Sorted)
	assert.Equal(t, []float64{7, 1, 3}, odd.Values)

	even := Median(stats.MustSequence(4, 1, 3, 2))
	assert.True(t, even.Even)
	assert.Equal(t, 2.5, even.Median)
	assert.Equal(t, []stats.MiddleValue{{Position: 2, Value: 2}, {Position: 3, Value: 3}}, even.Middle)
}

func TestMedian_KeepsInputOrder(t *testing.T) {
	seq := stats.MustSequence(10, 40, 20, 30)
	r := Median(seq)
	assert.Equal(t, 25.0, r.Median)
	assert.Equal(t, []float64{10, 40, 20, 30}, r.Values)
	assert.Equal(t, []float64{10, 40, 20, 30}, seq.Values())
	assert.Equal(t, []stats.MiddleValue{{Position: 2, Value: 20}, {Position: 3, Value: 30}}, r.Middle)
}

func TestMedian_MatchesCentralOrderStatistics(t *testing.T) {
	incomes := []float64{15, 18, 22, 25, 28, 30, 32, 35, 38, 40, 42, 45, 48, 52, 55, 65, 75, 85, 120, 180}
	assert.Equal(t, 41.0, Median(stats.MustSequence(incomes...)).Median)

	waits := []float64{5, 8, 12, 15, 18, 20, 22, 25, 28, 30, 32, 35, 38, 42, 45, 48, 55, 65, 90, 120}
	assert.Equal(t, 31.0, Median(stats.MustSequence(waits...)).Median)
}

func TestMedian_PermutationInvariant(t *testing.T) {
	values := []float64{9, 2, 7, 4, 4, 11, 0.5, -3, 8}
	want := Median(stats.MustSequence(values...)).Median

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		shuffled := append([]float64(nil), values...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, Median(stats.MustSequence(shuffled...)).Median)
	}
}

func TestMode(t *testing.T) {
	tests := []struct {
		name      string
		values    []float64
		modes     []float64
		frequency int
		noMode    bool
	}{
		{name: "two of three tie", values: []float64{1, 1, 2, 2, 3}, modes: []float64{1, 2}, frequency: 2},
		{name: "all distinct", values: []float64{1, 2, 3}, frequency: 1, noMode: true},
		{name: "single repeated value", values: []float64{5, 5, 5}, modes: []float64{5}, frequency: 3},
		{name: "single value", values: []float64{4}, modes: []float64{4}, frequency: 1},
		{name: "all distinct values tie twice", values: []float64{1, 2, 1, 2}, frequency: 2, noMode: true},
		{name: "unique mode", values: []float64{3, 30, 30, 28, 30, 31}, modes: []float64{30}, frequency: 3},
		{name: "first occurrence order", values: []float64{9, 2, 2, 9, 1}, modes: []float64{9, 2}, frequency: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Mode(stats.MustSequence(tt.values...))
			assert.Equal(t, tt.noMode, r.NoMode)
			assert.Equal(t, tt.frequency, r.Frequency)
			if tt.noMode {
				assert.Empty(t, r.Modes)
			} else {
				assert.Equal(t, tt.modes, r.Modes)
			}
		})
	}
}

func TestMode_ReportsFrequencies(t *testing.T) {
	r := Mode(stats.MustSequence(1, 1, 2, 2, 3))
	assert.Equal(t, []stats.FrequencyEntry{{Value: 1, Count: 2}, {Value: 2, Count: 2}, {Value: 3, Count: 1}}, r.Frequencies)
}

func TestStdDev_Population(t *testing.T) {
	r := StdDev(stats.MustSequence(2, 4, 4, 4, 5, 5, 7, 9))
	assert.InDelta(t, 5.0, r.Mean, tolerance)
	assert.InDelta(t, 4.0, r.Variance, tolerance)
	assert.InDelta(t, 2.0, r.StdDev, tolerance)
	assert.InDelta(t, 0.4, r.CV, tolerance)
	assert.Equal(t, stats.VariationHigh, r.Variation)
}

func TestStdDev_AirQuality(t *testing.T) {
	r := StdDev(stats.MustSequence(45, 65, 85, 95, 120, 150, 180, 200, 250, 300))
	assert.InDelta(t, 149.0, r.Mean, tolerance)

	sq := 0.0
	for _, v := range r.Values {
		sq += (v - 149) * (v - 149)
	}
	assert.InDelta(t, math.Sqrt(sq/10), r.StdDev, tolerance)
}

func TestStdDev_VariationBands(t *testing.T) {
	tests := []struct {
		values []float64
		want   stats.Variation
	}{
		{[]float64{100, 101, 99, 100}, stats.VariationLow},
		{[]float64{80, 100, 120}, stats.VariationModerate},
		{[]float64{1, 10, 100}, stats.VariationHigh},
		{[]float64{-100, -101, -99}, stats.VariationLow},
		{[]float64{7, 7, 7}, stats.VariationLow},
		{[]float64{-1, 1}, stats.VariationHigh},
		{[]float64{0, 0}, stats.VariationLow},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StdDev(stats.MustSequence(tt.values...)).Variation, "values %v", tt.values)
	}
}

func TestClassifyVariation_Thresholds(t *testing.T) {
	assert.Equal(t, stats.VariationLow, ClassifyVariation(0.0999))
	assert.Equal(t, stats.VariationModerate, ClassifyVariation(0.1))
	assert.Equal(t, stats.VariationModerate, ClassifyVariation(0.2999))
	assert.Equal(t, stats.VariationHigh, ClassifyVariation(0.3))
	assert.Equal(t, stats.VariationHigh, ClassifyVariation(math.Inf(1)))
}

func TestQuantiles_Interpolated(t *testing.T) {
	r := Quantiles(stats.MustSequence(8, 7, 6, 5, 4, 3, 2, 1))
	assert.InDelta(t, 2.75, r.Q1, tolerance)
	assert.InDelta(t, 4.5, r.Q2, tolerance)
	assert.InDelta(t, 6.25, r.Q3, tolerance)
	assert.InDelta(t, 3.5, r.IQR, tolerance)
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7, 8}, r.Sorted)
}

func TestQuantiles_ExamScores(t *testing.T) {
	r := Quantiles(stats.MustSequence(45, 52, 58, 63, 67, 72, 75, 78, 82, 85, 87, 90, 92, 94, 96))
	assert.InDelta(t, 65.0, r.Q1, tolerance)
	assert.InDelta(t, 78.0, r.Q2, tolerance)
	assert.InDelta(t, 88.5, r.Q3, tolerance)
}

func TestQuantiles_IQRNeverNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		values := make([]float64, 4+rng.Intn(20))
		for j := range values {
			values[j] = rng.NormFloat64() * 50
		}
		r := Quantiles(stats.MustSequence(values...))
		assert.GreaterOrEqual(t, r.IQR, 0.0)
		assert.LessOrEqual(t, r.Q1, r.Q2)
		assert.LessOrEqual(t, r.Q2, r.Q3)
	}
}

func TestQuantile_Bounds(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}
	assert.Equal(t, 1.0, Quantile(sorted, 0))
	assert.Equal(t, 4.0, Quantile(sorted, 1))
	assert.Equal(t, 4.0, Quantile(sorted, 1.5), "q is clamped")
	assert.Equal(t, 1.0, Quantile(sorted, -1), "q is clamped")
	assert.Equal(t, 5.0, Quantile([]float64{5}, 0.75))
	assert.True(t, math.IsNaN(Quantile(nil, 0.5)))
	assert.True(t, math.IsNaN(Quantile(sorted, math.NaN())))
}

func TestQuantile_MedianAgreesWithMedian(t *testing.T) {
	for _, values := range [][]float64{{1, 2, 3, 4}, {3, 9, 1, 4, 5}, {10, 20, 30, 40, 50, 60}} {
		seq := stats.MustSequence(values...)
		assert.InDelta(t, Median(seq).Median, Quantiles(seq).Q2, tolerance)
	}
}

func TestComputeBundle(t *testing.T) {
	seq := stats.MustSequence(172, 165, 181, 170)
	b := ComputeBundle(seq)

	assert.Equal(t, 4, b.Count)
	assert.InDelta(t, 172.0, b.Mean, tolerance)
	assert.InDelta(t, 171.0, b.Median, tolerance)
	assert.InDelta(t, StdDev(seq).StdDev, b.StdDev, tolerance)
	assert.Equal(t, 165.0, b.Min)
	assert.Equal(t, 181.0, b.Max)
	assert.Equal(t, []float64{165, 170, 172, 181}, b.Sorted)
	assert.InDelta(t, b.Mean-b.StdDev, b.BandLower(), tolerance)
	assert.InDelta(t, b.Mean+b.StdDev, b.BandUpper(), tolerance)
	assert.Equal(t, []float64{172, 165, 181, 170}, seq.Values(), "input order untouched")
}

func TestCheckAnswer(t *testing.T) {
	assert.True(t, CheckAnswer(42.4, 42.5))
	assert.False(t, CheckAnswer(30, 42.5))
	assert.InDelta(t, 2.125, Tolerance(42.5), tolerance)

	assert.Equal(t, 0.1, Tolerance(1), "minimum tolerance applies")
	assert.True(t, CheckAnswer(1.7, 1.7))
	assert.True(t, CheckAnswer(1.75, 1.7))
	assert.False(t, CheckAnswer(1.9, 1.7))
	assert.True(t, CheckAnswer(-9.6, -10), "tolerance uses |correct|")

	check := Check(87, 87.14)
	assert.True(t, check.Correct)
	assert.Equal(t, 87.14, check.Expected)
}

func TestIdempotence(t *testing.T) {
	seq := stats.MustSequence(3, 1, 4, 1, 5, 9, 2, 6)
	assert.Equal(t, Mean(seq), Mean(seq))
	assert.Equal(t, Median(seq), Median(seq))
	assert.Equal(t, Mode(seq), Mode(seq))
	assert.Equal(t, StdDev(seq), StdDev(seq))
	assert.Equal(t, Quantiles(seq), Quantiles(seq))
	assert.Equal(t, ComputeBundle(seq), ComputeBundle(seq))
	assert.Equal(t, []float64{3, 1, 4, 1, 5, 9, 2, 6}, seq.Values())
}

func TestEmptySequenceYieldsZeroResults(t *testing.T) {
	var seq stats.Sequence
	assert.Equal(t, stats.MeanResult{}, Mean(seq))
	assert.Equal(t, stats.MedianResult{}, Median(seq))
	assert.Equal(t, stats.ModeResult{}, Mode(seq))
	assert.Equal(t, stats.StdDevResult{}, StdDev(seq))
	assert.Equal(t, stats.QuantileResult{}, Quantiles(seq))
	assert.Equal(t, stats.Bundle{}, ComputeBundle(seq))
}

func TestEngine_Run(t *testing.T) {
	e := NewEngine()

	r, err := e.Run(OpMean, "1, 2, 3")
	require.NoError(t, err)
	assert.Equal(t, OpMean, r.Operation)
	assert.Equal(t, 3, r.Count)
	require.NotNil(t, r.Mean)
	assert.Equal(t, 2.0, r.Mean.Mean)
	assert.Nil(t, r.Median)

	_, err = e.Run(OpQuantiles, "1,2,3")
	assert.ErrorIs(t, err, core.ErrInsufficientData)

	_, err = e.Run(OpBundle, "-5,3")
	assert.ErrorIs(t, err, core.ErrNonPositiveValue)

	r, err = e.Run(OpBundle, "170\n180")
	require.NoError(t, err)
	require.NotNil(t, r.Bundle)
	assert.Equal(t, 175.0, r.Bundle.Mean)

	_, err = e.Run(Operation("variance"), "1,2")
	assert.ErrorIs(t, err, core.ErrUnknownOperation)
}

func TestEngine_StrictParsing(t *testing.T) {
	_, err := NewEngine().Run(OpMean, "1, 2cm")
	require.NoError(t, err)

	_, err = NewEngine(WithStrictParsing(true)).Run(OpMean, "1, 2cm")
	assert.ErrorIs(t, err, core.ErrInvalidNumber)
}

func TestEngine_RunTokens(t *testing.T) {
	e := NewEngine()
	r, err := e.RunTokens(OpMedian, []string{"5", "", "1", "3"}, stats.CalculatorOptions())
	require.NoError(t, err)
	assert.Equal(t, 3.0, r.Median.Median)

	_, err = e.RunTokens(OpMedian, []string{"", " "}, stats.CalculatorOptions())
	assert.ErrorIs(t, err, core.ErrNoData)
}

func TestParseOperation(t *testing.T) {
	for _, op := range Operations() {
		parsed, err := ParseOperation(" " + string(op) + " ")
		require.NoError(t, err)
		assert.Equal(t, op, parsed)
		assert.NotEmpty(t, op.Title())
	}

	op, err := ParseOperation("STDDEV")
	require.NoError(t, err)
	assert.Equal(t, OpStdDev, op)

	_, err = ParseOperation("mean-input")
	assert.True(t, core.IsUnknownOperationError(err))
}

func TestOperationOptions(t *testing.T) {
	assert.Equal(t, 4, OpQuantiles.Options().MinimumCount)
	assert.True(t, OpBundle.Options().RequirePositive)
	assert.Equal(t, stats.CommaThenNewline, OpBundle.Options().Delimiter)
	assert.Equal(t, stats.CommaOnly, OpMean.Options().Delimiter)
	assert.True(t, NewEngine(WithStrictParsing(true)).OptionsFor(OpMode).Strict)
}

func TestEngine_MinimumCountOverride(t *testing.T) {
	e := NewEngine(WithMinimumCount(OpQuantiles, 5), WithMinimumCount(OpBundle, 0))
	assert.Equal(t, 5, e.OptionsFor(OpQuantiles).MinimumCount)
	assert.Equal(t, 2, e.OptionsFor(OpBundle).MinimumCount)

	_, err := e.Run(OpQuantiles, "1,2,3,4")
	assert.ErrorIs(t, err, core.ErrInsufficientData)
}
