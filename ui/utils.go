package ui

import (
	"html/template"
	"net/http"

	json "github.com/goccy/go-json"

	"statcalc/adapters/stats/engine"
	"statcalc/internal/chart"
	"statcalc/internal/lesson"
	"statcalc/internal/present"
)

// calculatorView is one calculator card: its lesson, the typed input and the outcome
type calculatorView struct {
	Operation   engine.Operation
	Title       string
	Lesson      template.HTML
	Placeholder string
	Input       string
	Result      *present.Breakdown
	Error       string
}

type exerciseView struct {
	lesson.Exercise
	Answer   string
	Feedback *lesson.Feedback
}

type indexView struct {
	Title       string
	Calculators []calculatorView
	Examples    []lesson.Example
	Exercises   []exerciseView
}

type heightsView struct {
	Title   string
	Lesson  template.HTML
	Input   string
	Error   string
	Summary *present.Breakdown
	Chart   *chart.Spec
}

// calculatorOperations are the cards on the index page, in display order
var calculatorOperations = []engine.Operation{
	engine.OpMean,
	engine.OpMedian,
	engine.OpMode,
	engine.OpStdDev,
	engine.OpQuantiles,
}

func isCalculator(op engine.Operation) bool {
	for _, candidate := range calculatorOperations {
		if candidate == op {
			return true
		}
	}
	return false
}

func placeholder(op engine.Operation) string {
	if op == engine.OpQuantiles {
		return "e.g., 12, 15, 18, 22, 25, 28, 30"
	}
	return "e.g., 10, 20, 30, 40, 50"
}

func (a *App) newCalculatorView(op engine.Operation) calculatorView {
	return calculatorView{
		Operation:   op,
		Title:       op.Title(),
		Lesson:      a.catalog.Lesson(string(op)),
		Placeholder: placeholder(op),
	}
}

// newIndexView builds the index page; calc and ex, when set, replace the
// blank card or exercise with the same identity
func (a *App) newIndexView(calc *calculatorView, ex *exerciseView) indexView {
	view := indexView{
		Title:    "Summary Statistics",
		Examples: a.catalog.Examples(),
	}

	for _, op := range calculatorOperations {
		if calc != nil && calc.Operation == op {
			view.Calculators = append(view.Calculators, *calc)
			continue
		}
		view.Calculators = append(view.Calculators, a.newCalculatorView(op))
	}

	for _, exercise := range a.catalog.Exercises() {
		if ex != nil && ex.ID == exercise.ID {
			view.Exercises = append(view.Exercises, *ex)
			continue
		}
		view.Exercises = append(view.Exercises, exerciseView{Exercise: exercise})
	}
	return view
}

func (a *App) newHeightsView() heightsView {
	return heightsView{
		Title:  "Height Visualizer",
		Lesson: a.catalog.Lesson("heights"),
	}
}

// writeJSON writes v with the given status
func (a *App) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		a.logger.Error("failed to encode JSON response: %v", err)
		http.Error(w, "encoding failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
