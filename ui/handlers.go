package ui

import (
	stderrors "errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"statcalc/adapters/stats/engine"
	"statcalc/domain/core"
	"statcalc/domain/stats"
	"statcalc/internal/chart"
	"statcalc/internal/errors"
	"statcalc/internal/lesson"
	"statcalc/internal/present"
	"statcalc/ui/templates/fragments"
)

// handleIndex renders the calculators, worked examples and exercises
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	a.renderTemplate(w, fragments.IndexPage, a.newIndexView(nil, nil))
}

// handleCalculate runs one calculator on the posted input
func (a *App) handleCalculate(w http.ResponseWriter, r *http.Request) {
	op, err := engine.ParseOperation(chi.URLParam(r, "operation"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if !isCalculator(op) {
		http.Error(w, "No calculator for "+string(op), http.StatusNotFound)
		return
	}
	if !a.parseForm(w, r) {
		return
	}

	view := a.newCalculatorView(op)
	view.Input = r.FormValue("input")

	status := http.StatusOK
	result, err := a.engine.Run(op, view.Input)
	if err != nil {
		verr, ok := stats.AsValidationError(err)
		if !ok {
			a.logger.Error("calculation %s failed: %v", op, err)
			http.Error(w, "calculation failed", http.StatusInternalServerError)
			return
		}
		view.Error = verr.Message
		status = http.StatusUnprocessableEntity
	} else {
		breakdown := present.Result(result)
		view.Result = &breakdown
	}

	if isHTMX(r) {
		// htmx only swaps 2xx responses; the error is in the fragment
		a.renderPartial(w, fragments.CalculatorResult, view)
		return
	}
	a.renderStatus(w, status, fragments.IndexPage, a.newIndexView(&view, nil))
}

// handleCheckExercise grades a typed answer against an exercise
func (a *App) handleCheckExercise(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	exercise, err := a.catalog.Exercise(id)
	if err != nil {
		http.Error(w, "Exercise not found", http.StatusNotFound)
		return
	}
	if !a.parseForm(w, r) {
		return
	}

	answer := r.FormValue("answer")
	feedback, err := a.catalog.Check(id, answer)
	if err != nil {
		a.logger.Error("checking exercise %s failed: %v", id, err)
		http.Error(w, "check failed", http.StatusInternalServerError)
		return
	}

	view := exerciseView{Exercise: exercise, Answer: answer, Feedback: &feedback}
	if isHTMX(r) {
		a.renderPartial(w, fragments.ExerciseFeedback, view)
		return
	}
	a.renderTemplate(w, fragments.IndexPage, a.newIndexView(nil, &view))
}

// handleHeights renders the visualizer with whichever chart is active
func (a *App) handleHeights(w http.ResponseWriter, r *http.Request) {
	view := a.newHeightsView()
	if handle, ok := a.charts.Active(); ok {
		spec := handle.Spec
		summary := present.Bundle(spec.Stats, spec.Unit)
		view.Chart = &spec
		view.Summary = &summary
	}
	a.renderTemplate(w, fragments.HeightsPage, view)
}

// handleVisualize computes summary statistics for the posted heights and
// replaces the active chart. Invalid input leaves the previous chart in place.
func (a *App) handleVisualize(w http.ResponseWriter, r *http.Request) {
	if !a.parseForm(w, r) {
		return
	}

	view := a.newHeightsView()
	view.Input = r.FormValue("heights")

	status := http.StatusOK
	result, err := a.engine.Run(engine.OpBundle, view.Input)
	switch {
	case err != nil:
		verr, ok := stats.AsValidationError(err)
		if !ok {
			a.logger.Error("visualization failed: %v", err)
			http.Error(w, "visualization failed", http.StatusInternalServerError)
			return
		}
		view.Error = verr.Message
		status = http.StatusUnprocessableEntity
	default:
		handle := a.charts.Replace(chart.Build(*result.Bundle, chart.HeightOptions()))
		summary := present.Bundle(handle.Spec.Stats, handle.Spec.Unit)
		view.Chart = &handle.Spec
		view.Summary = &summary
		a.logger.Debug("chart %s installed (%d bars)", handle.ID(), len(handle.Spec.Data))
	}

	a.renderHeights(w, r, status, view)
}

// handleClearHeights disposes the active chart and empties the input
func (a *App) handleClearHeights(w http.ResponseWriter, r *http.Request) {
	a.charts.Clear()
	if !isHTMX(r) {
		http.Redirect(w, r, "/heights", http.StatusSeeOther)
		return
	}
	a.renderPartial(w, fragments.HeightsPanel, a.newHeightsView())
}

// handleSampleHeights fills the input with the sample data set without
// computing anything
func (a *App) handleSampleHeights(w http.ResponseWriter, r *http.Request) {
	view := a.newHeightsView()
	view.Input = lesson.SampleHeightsText()

	status := http.StatusOK
	if a.samples != nil {
		text, err := a.loadSamples(r)
		if err != nil {
			a.logger.Warn("sample source %s unusable: %v", a.samples.Name(), err)
			status = sampleErrorStatus(err)
			view.Error = err.Error()
			if status == http.StatusInternalServerError {
				view.Error = "Loading sample data failed"
			}
		} else {
			view.Input = text
		}
	}

	a.renderHeights(w, r, status, view)
}

// sampleErrorStatus maps a sample source failure onto an HTTP status: bad
// data is 422, an unreadable or misconfigured source is 503
func sampleErrorStatus(err error) int {
	if core.IsValidationError(err) {
		return http.StatusUnprocessableEntity
	}
	switch errors.GetCode(err) {
	case errors.CodeSourceError, errors.CodeConfigInvalid, errors.CodeExternalService:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// loadSamples reads the configured sample source and validates it as heights
func (a *App) loadSamples(r *http.Request) (string, error) {
	tokens, err := a.samples.Tokens(r.Context())
	if err != nil {
		return "", err
	}
	seq, err := stats.ParseTokens(tokens, a.engine.OptionsFor(engine.OpBundle))
	if err != nil {
		return "", err
	}
	return lesson.Lines(seq.Values()), nil
}

func (a *App) renderHeights(w http.ResponseWriter, r *http.Request, status int, view heightsView) {
	if isHTMX(r) {
		a.renderPartial(w, fragments.HeightsPanel, view)
		return
	}
	a.renderStatus(w, status, fragments.HeightsPage, view)
}

// handleChart returns the chart spec while it is the active one
func (a *App) handleChart(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseChartID(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	handle, err := a.charts.Get(id)
	if err != nil {
		http.Error(w, "Chart not found", http.StatusNotFound)
		return
	}
	a.writeJSON(w, http.StatusOK, handle.Spec)
}

func (a *App) handleActiveChart(w http.ResponseWriter, r *http.Request) {
	handle, ok := a.charts.Active()
	if !ok {
		http.Error(w, "No active chart", http.StatusNotFound)
		return
	}
	a.writeJSON(w, http.StatusOK, handle.Spec)
}

// parseForm answers 413 or 400 itself when the form cannot be read
func (a *App) parseForm(w http.ResponseWriter, r *http.Request) bool {
	err := r.ParseForm()
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
		return false
	}
	http.Error(w, "Invalid form data", http.StatusBadRequest)
	return false
}
