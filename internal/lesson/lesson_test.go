package lesson

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statcalc/adapters/stats/engine"
	"statcalc/domain/core"
	"statcalc/domain/stats"
	"statcalc/internal/present"
)

func newCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog(engine.NewEngine())
	require.NoError(t, err)
	return c
}

func highlight(t *testing.T, c *Catalog, id string) []present.Line {
	t.Helper()
	ex, err := c.Example(id)
	require.NoError(t, err)
	return ex.Highlights
}

func TestExamples_Figures(t *testing.T) {
	c := newCatalog(t)

	assert.Equal(t, []present.Line{{Label: "Mean", Value: "198.5"}}, highlight(t, c, "water-consumption"))
	assert.Equal(t, []present.Line{{Label: "Median", Value: "₹41k"}}, highlight(t, c, "household-income"))
	assert.Equal(t, []present.Line{{Label: "Median", Value: "31 minutes"}}, highlight(t, c, "pds-waiting-time"))
	assert.Equal(t, []present.Line{
		{Label: "Mean", Value: "149"},
		{Label: "Standard Deviation", Value: "78.9"},
	}, highlight(t, c, "air-quality"))
	assert.Equal(t, []present.Line{
		{Label: "Q1", Value: "65 marks"},
		{Label: "Q2", Value: "78 marks"},
		{Label: "Q3", Value: "89 marks"},
	}, highlight(t, c, "exam-scores"))

	_, err := c.Example("transport")
	assert.ErrorIs(t, err, core.ErrExampleNotFound)
	assert.Len(t, c.Examples(), len(exampleDefinitions))
}

func TestExercises_AnswersMatchTheirData(t *testing.T) {
	c := newCatalog(t)
	e := engine.NewEngine()

	for _, ex := range c.Exercises() {
		seq, err := stats.NewSequence(ex.Data...)
		require.NoError(t, err)
		r, err := e.Compute(ex.Operation, seq)
		require.NoError(t, err)

		var got float64
		switch ex.Operation {
		case engine.OpMean:
			got = r.Mean.Mean
		case engine.OpMedian:
			got = r.Median.Median
		case engine.OpMode:
			require.Len(t, r.Mode.Modes, 1)
			got = r.Mode.Modes[0]
		case engine.OpStdDev:
			got = r.StdDev.StdDev
		case engine.OpQuantiles:
			got = r.Quantiles.Q2
		}
		assert.True(t, engine.CheckAnswer(got, ex.Answer), "exercise %s: computed %v, published %v", ex.ID, got, ex.Answer)
	}
}

func TestCheck_Feedback(t *testing.T) {
	c := newCatalog(t)

	fb, err := c.Check("test-scores-mean", "87.1")
	require.NoError(t, err)
	assert.True(t, fb.Valid)
	assert.True(t, fb.Correct)
	assert.Equal(t, "✅ Correct!", fb.Message)
	assert.Equal(t, "test-scores-mean", fb.ExerciseID)

	fb, err = c.Check("property-median", "40")
	require.NoError(t, err)
	assert.False(t, fb.Correct)
	assert.Equal(t, "❌ Try again. Correct answer: 46.5", fb.Message)

	fb, err = c.Check("salary-q2", "44000")
	require.NoError(t, err)
	assert.True(t, fb.Correct, "within 5%% of 42500")

	fb, err = c.Check("class-size-mode", "thirty")
	require.NoError(t, err)
	assert.False(t, fb.Valid)
	assert.Equal(t, "Please enter a number", fb.Message)

	fb, err = c.Check("temp-stddev", "1.75cm")
	require.NoError(t, err)
	assert.True(t, fb.Valid, "leading number is read")
	assert.True(t, fb.Correct)

	_, err = c.Check("nope", "1")
	assert.ErrorIs(t, err, core.ErrExerciseNotFound)
	assert.True(t, core.IsNotFoundError(err))
}

func TestLessons_Rendered(t *testing.T) {
	c := newCatalog(t)

	for _, op := range []engine.Operation{engine.OpMean, engine.OpMedian, engine.OpMode, engine.OpStdDev, engine.OpQuantiles} {
		assert.NotEmpty(t, c.Lesson(string(op)), "lesson for %s", op)
	}
	heights := string(c.Lesson("heights"))
	assert.Contains(t, heights, "<h2")
	assert.Contains(t, heights, "<strong>mean</strong>")
	assert.Empty(t, c.Lesson("unknown"))
}

func TestRenderMarkdown(t *testing.T) {
	out := string(RenderMarkdown([]byte("# Title\n\nSome *text*.\n")))
	assert.Contains(t, out, `<h1 id="title">Title</h1>`)
	assert.Contains(t, out, "<em>text</em>")
}

func TestSampleHeights(t *testing.T) {
	assert.Len(t, SampleHeights, 40)

	seq, err := stats.Parse(SampleHeightsText(), stats.HeightOptions())
	require.NoError(t, err)
	assert.Equal(t, SampleHeights, seq.Values())
	assert.Equal(t, 40, strings.Count(SampleHeightsText(), "\n")+1)
}
