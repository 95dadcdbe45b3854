// Package fragments provides template name constants for the UI pages and HTMX fragments
package fragments

// Full pages
const (
	IndexPage   = "index.html"
	HeightsPage = "heights.html"
)

// HTMX fragments, each defined in templates/fragments
const (
	CalculatorResult = "calculator_result.html"
	ExerciseFeedback = "exercise_feedback.html"
	HeightsPanel     = "heights_panel.html" // input form, summary and chart
)

// IsFragment reports whether a template name is a fragment rather than a page
func IsFragment(name string) bool {
	return name != IndexPage && name != HeightsPage
}
