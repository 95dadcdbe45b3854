// Package lesson holds the teaching material around the calculators: worked
// examples computed live by the engine, practice exercises with known answers,
// and the explanatory text rendered from markdown.
package lesson

import (
	"embed"
	"html/template"
	"path"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"statcalc/adapters/stats/engine"
	"statcalc/domain/core"
	"statcalc/domain/stats"
	"statcalc/internal/present"
)

//go:embed lessons/*.md
var lessonFiles embed.FS

// Example is a worked example whose figures come from the engine
type Example struct {
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	Operation  engine.Operation `json:"operation"`
	Data       []float64        `json:"data"`
	Highlights []present.Line   `json:"highlights"`
	Result     engine.Result    `json:"result"`
}

// Exercise is a practice question with a published answer
type Exercise struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Prompt    string           `json:"prompt"`
	Operation engine.Operation `json:"operation"`
	Data      []float64        `json:"data"`
	Answer    float64          `json:"-"`
}

// Feedback is the outcome of checking a typed answer
type Feedback struct {
	ExerciseID string             `json:"exercise_id,omitempty"`
	Valid      bool               `json:"valid"`
	Correct    bool               `json:"correct"`
	Message    string             `json:"message"`
	Check      engine.AnswerCheck `json:"check"`
}

// Catalog is the read-only set of examples, exercises and lessons
type Catalog struct {
	examples      []Example
	exampleIndex  map[string]int
	exercises     []Exercise
	exerciseIndex map[string]int
	lessons       map[string]template.HTML
}

// NewCatalog computes every worked example and renders the lessons
func NewCatalog(eng *engine.Engine) (*Catalog, error) {
	c := &Catalog{
		exampleIndex:  make(map[string]int),
		exerciseIndex: make(map[string]int),
		lessons:       make(map[string]template.HTML),
	}

	for _, def := range exampleDefinitions {
		seq, err := stats.NewSequence(def.data...)
		if err != nil {
			return nil, err
		}
		result, err := eng.Compute(def.operation, seq)
		if err != nil {
			return nil, err
		}
		c.exampleIndex[def.id] = len(c.examples)
		c.examples = append(c.examples, Example{
			ID:         def.id,
			Title:      def.title,
			Operation:  def.operation,
			Data:       def.data,
			Highlights: def.highlights(result),
			Result:     result,
		})
	}

	for _, ex := range exercises {
		c.exerciseIndex[ex.ID] = len(c.exercises)
		c.exercises = append(c.exercises, ex)
	}

	entries, err := lessonFiles.ReadDir("lessons")
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		src, err := lessonFiles.ReadFile(path.Join("lessons", entry.Name()))
		if err != nil {
			return nil, err
		}
		c.lessons[strings.TrimSuffix(entry.Name(), ".md")] = RenderMarkdown(src)
	}

	return c, nil
}

// RenderMarkdown converts lesson markdown to HTML
func RenderMarkdown(src []byte) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return template.HTML(markdown.ToHTML(src, p, renderer))
}

// Examples returns the worked examples in display order
func (c *Catalog) Examples() []Example {
	return append([]Example(nil), c.examples...)
}

// Example returns one worked example
func (c *Catalog) Example(id string) (Example, error) {
	i, ok := c.exampleIndex[id]
	if !ok {
		return Example{}, core.ErrExampleNotFound
	}
	return c.examples[i], nil
}

// Exercises returns the practice exercises in display order
func (c *Catalog) Exercises() []Exercise {
	return append([]Exercise(nil), c.exercises...)
}

// Exercise returns one practice exercise
func (c *Catalog) Exercise(id string) (Exercise, error) {
	i, ok := c.exerciseIndex[id]
	if !ok {
		return Exercise{}, core.ErrExerciseNotFound
	}
	return c.exercises[i], nil
}

// Lesson returns the rendered explanation for a topic (an operation name or "heights")
func (c *Catalog) Lesson(topic string) template.HTML {
	return c.lessons[topic]
}

// Check compares a typed answer with the exercise's published answer.
// The answer is read leniently, the way a number input is.
func (c *Catalog) Check(id, rawAnswer string) (Feedback, error) {
	ex, err := c.Exercise(id)
	if err != nil {
		return Feedback{}, err
	}
	feedback := CheckAnswer(rawAnswer, ex.Answer)
	feedback.ExerciseID = id
	return feedback, nil
}

// CheckAnswer compares a typed answer with a known correct value
func CheckAnswer(rawAnswer string, correct float64) Feedback {
	answer, ok := stats.ParseNumber(rawAnswer, false)
	if !ok {
		return Feedback{Message: "Please enter a number"}
	}

	check := engine.Check(answer, correct)
	feedback := Feedback{Valid: true, Correct: check.Correct, Check: check}
	if check.Correct {
		feedback.Message = "✅ Correct!"
	} else {
		feedback.Message = "❌ Try again. Correct answer: " + present.Plain(correct)
	}
	return feedback
}
